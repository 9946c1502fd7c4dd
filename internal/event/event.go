// Package event implements two completion event kinds: testable
// (polling only) and waitable (sleep/wake). Both share a three-state
// contract: INACTIVE, ACTIVE_INCOMPLETE, ACTIVE_COMPLETE, with waiters
// counted down to the point of recycling the event back to INACTIVE.
//
// License: Apache-2.0
package event

import "github.com/momentics/pfunc/internal/atomics"

const (
	inactive int32 = iota
	activeIncomplete
	activeComplete
)

// Completable is the interface a Task's embedded event satisfies,
// whether testable or waitable. Exactly one is active per task, chosen
// by Attribute.Nested at spawn time.
type Completable interface {
	Reset(numWaiters int32)
	Notify()
	Test() bool
}

// base holds the shared state machine. Embedded, never used directly.
type base struct {
	state   int32
	waiters int32
}

// Reset reactivates the event for nwait observers.
func (b *base) Reset(nwait int32) {
	atomics.WriteWithFence(&b.waiters, nwait)
	atomics.WriteWithFence(&b.state, activeIncomplete)
}

// Peek reports completion without consuming a waiter slot. Scheduling
// loops that must repeatedly check "is the awaited task done yet" while
// they do other work use Peek, not Test - Test is reserved for the one
// call per distinct waiter that the NumWaiters countdown is counting.
func (b *base) Peek() bool {
	return atomics.ReadWithFence(&b.state) != activeIncomplete
}

// Test reports completion, decrementing the waiter count exactly once
// per caller on the transition out of ACTIVE_COMPLETE. The event is
// recycled to INACTIVE when the last waiter observes completion.
func (b *base) Test() bool {
	switch atomics.ReadWithFence(&b.state) {
	case activeIncomplete:
		return false
	case inactive:
		return true
	default:
		if atomics.FetchAndAdd32(&b.waiters, -1) == 1 {
			atomics.WriteWithFence(&b.state, inactive)
		}
		return true
	}
}

// Testable is the polling-only completion event: wait() is forbidden by
// construction (the type simply has no Wait method).
type Testable struct {
	base
}

// NewTestable returns a Testable event in the INACTIVE state.
func NewTestable() *Testable { return &Testable{} }

// Notify marks the event complete. Testable events have no sleepers to
// wake, so this is just a fenced state transition.
func (t *Testable) Notify() {
	atomics.MemFence()
	atomics.WriteWithFence(&t.state, activeComplete)
}
