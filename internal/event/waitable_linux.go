//go:build linux

package event

import (
	"math"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/momentics/pfunc/internal/atomics"
)

// futexWaitOp/futexWakeOp are the plain FUTEX_WAIT/FUTEX_WAKE operations
// (not the _PRIVATE variants); they work on process-private event words
// as well, at the cost of the kernel's shared-mapping lookup.
const (
	futexWaitOp = 0
	futexWakeOp = 1
)

// Waitable is a completion event with a futex fast path: if the state
// has already left ACTIVE_INCOMPLETE by the time Wait is called, no
// syscall happens at all.
type Waitable struct {
	base
}

// NewWaitable returns a Waitable event in the INACTIVE state.
func NewWaitable() *Waitable { return &Waitable{} }

// Wait blocks until the event is no longer ACTIVE_INCOMPLETE, then
// decrements the waiter count; the last observer recycles the event.
func (w *Waitable) Wait() {
	for atomics.ReadWithFence(&w.state) == activeIncomplete {
		futexWait(&w.state, activeIncomplete)
	}
	if atomics.FetchAndAdd32(&w.waiters, -1) == 1 {
		atomics.WriteWithFence(&w.state, inactive)
	}
}

// Notify marks the event complete and wakes every futex sleeper.
func (w *Waitable) Notify() {
	atomics.MemFence()
	atomics.FetchAndStore32(&w.state, activeComplete)
	futexWake(&w.state, math.MaxInt32)
}

func futexWait(addr *int32, expected int32) {
	_, _, errno := unix.Syscall(unix.SYS_FUTEX,
		uintptr(unsafe.Pointer(addr)),
		uintptr(futexWaitOp),
		uintptr(expected))
	// EAGAIN means the value already changed before the kernel looked;
	// EINTR means a spurious wake. Both are handled by the caller's loop
	// re-checking the state, not by retrying here.
	_ = errno
}

func futexWake(addr *int32, n int32) {
	unix.Syscall(unix.SYS_FUTEX,
		uintptr(unsafe.Pointer(addr)),
		uintptr(futexWakeOp),
		uintptr(n))
}
