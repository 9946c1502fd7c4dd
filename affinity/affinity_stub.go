//go:build !windows && (!linux || !cgo)
// +build !windows
// +build !linux !cgo

// File: affinity/affinity_stub.go
//
// Stub for platforms where worker-goroutine CPU pinning has no known
// syscall in this tree. WithAffinity still works, but every worker's
// pin attempt fails and is logged as a warning rather than pinned.

package affinity

import "errors"

// setAffinityPlatform always fails: no pinning syscall is wired up for
// this platform.
func setAffinityPlatform(cpuID int) error {
	return errors.New("affinity: not supported on this platform")
}
