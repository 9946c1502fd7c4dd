//go:build windows
// +build windows

// File: affinity/affinity_windows.go
//
// Windows implementation of worker-goroutine CPU pinning, via
// SetThreadAffinityMask against the calling OS thread. The task manager
// calls this only after runtime.LockOSThread(), so the mask applies to
// the exact OS thread carrying the worker goroutine that asked for it.

package affinity

import (
	"syscall"
)

// setAffinityPlatform pins the calling OS thread to cpuID.
func setAffinityPlatform(cpuID int) error {
	kernel32 := syscall.NewLazyDLL("kernel32.dll")
	procSetThreadAffinityMask := kernel32.NewProc("SetThreadAffinityMask")
	procGetCurrentThread := kernel32.NewProc("GetCurrentThread")
	hThread, _, _ := procGetCurrentThread.Call()
	mask := uintptr(1) << cpuID
	ret, _, err := procSetThreadAffinityMask.Call(hThread, mask)
	if ret == 0 {
		return err
	}
	return nil
}
