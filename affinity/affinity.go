// File: affinity/affinity.go
//
// Platform-neutral API for CPU affinity. Platform-specific implementations
// are located in separate files (affinity_linux.go, affinity_windows.go,
// etc.) guarded by build tags. The task manager uses this package to pin
// worker goroutines to specific CPUs: each worker calls
// runtime.LockOSThread() before PinWorker, so the pin affects the exact
// OS thread carrying that goroutine rather than whichever thread happens
// to be running it at the time.

package affinity

import "runtime"

// SetAffinity pins the calling OS thread to a given logical CPU/core on
// supported platforms. On unsupported platforms it returns an error.
func SetAffinity(cpuID int) error {
	return setAffinityPlatform(cpuID)
}

// PinWorker pins the calling OS thread to CPU (workerID mod NumCPU()).
// Callers must have already called runtime.LockOSThread() so the pin
// sticks to this goroutine's carrier thread for its lifetime.
func PinWorker(workerID int) error {
	n := runtime.NumCPU()
	if n <= 0 {
		n = 1
	}
	return SetAffinity(workerID % n)
}
