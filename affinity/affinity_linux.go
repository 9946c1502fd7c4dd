//go:build linux && cgo
// +build linux,cgo

// File: affinity/affinity_linux.go
//
// Linux implementation of worker-goroutine CPU pinning, via
// pthread_setaffinity_np against the calling OS thread. The task
// manager calls this only after runtime.LockOSThread(), so the pin
// lands on the exact OS thread carrying the worker goroutine that asked
// for it.

package affinity

/*
#define _GNU_SOURCE
#include <sched.h>
#include <pthread.h>
#include <errno.h>

// Pin the calling thread to the given logical CPU.
int pfunc_setaffinity(int cpu) {
	cpu_set_t set;
	CPU_ZERO(&set);
	CPU_SET(cpu, &set);
	return pthread_setaffinity_np(pthread_self(), sizeof(set), &set);
}
*/
import "C"
import "fmt"

// setAffinityPlatform pins the calling OS thread to cpuID.
func setAffinityPlatform(cpuID int) error {
	ret := C.pfunc_setaffinity(C.int(cpuID))
	if ret != 0 {
		return fmt.Errorf("affinity: pthread_setaffinity_np failed, code %d", ret)
	}
	return nil
}
