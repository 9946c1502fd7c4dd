//go:build !linux

package event

import (
	"sync"

	"github.com/momentics/pfunc/internal/atomics"
)

// Waitable is a completion event backed by a mutex-guarded condition
// variable on platforms without a futex syscall.
type Waitable struct {
	base
	mu   sync.Mutex
	cond *sync.Cond
}

// NewWaitable returns a Waitable event in the INACTIVE state.
func NewWaitable() *Waitable {
	w := &Waitable{}
	w.cond = sync.NewCond(&w.mu)
	return w
}

// Wait blocks until the event is no longer ACTIVE_INCOMPLETE, then
// decrements the waiter count; the last observer recycles the event.
func (w *Waitable) Wait() {
	if atomics.ReadWithFence(&w.state) == activeIncomplete {
		w.mu.Lock()
		for atomics.ReadWithFence(&w.state) == activeIncomplete {
			w.cond.Wait()
		}
		w.mu.Unlock()
	}
	if atomics.FetchAndAdd32(&w.waiters, -1) == 1 {
		atomics.WriteWithFence(&w.state, inactive)
	}
}

// Notify marks the event complete and wakes every condvar sleeper.
func (w *Waitable) Notify() {
	atomics.MemFence()
	w.mu.Lock()
	atomics.WriteWithFence(&w.state, activeComplete)
	w.cond.Broadcast()
	w.mu.Unlock()
}
