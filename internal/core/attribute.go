// Package core holds the concrete, caller-owned value types the rest of
// the runtime operates on: Attribute, Group and Task. It is kept free of
// any dependency on internal/queueset or internal/taskmgr so those
// packages can both import core without an import cycle; the group
// barrier's STEAL variant reaches back into the task manager through a
// plain function value supplied by the caller, not an import.
//
// License: Apache-2.0
package core

import (
	"math"

	"github.com/momentics/pfunc/api"
)

// Attribute is an immutable value type once a Task has been spawned with
// it. Builder methods return a modified copy, never mutate the receiver.
type Attribute struct {
	QueueNumber int
	Priority    int
	NumWaiters  int32
	Nested      bool
	Grouped     bool
	Level       int64
}

// DefaultAttribute returns the baseline attribute set: current queue,
// minimum priority, a single waiter, nested (testable) completion,
// ungrouped, spawn-tree level zero.
func DefaultAttribute() Attribute {
	return Attribute{
		QueueNumber: api.CurrentQueue,
		Priority:    math.MinInt,
		NumWaiters:  1,
		Nested:      true,
		Grouped:     false,
		Level:       0,
	}
}

// WithQueueNumber returns a copy targeting queue q (or api.CurrentQueue).
func (a Attribute) WithQueueNumber(q int) Attribute { a.QueueNumber = q; return a }

// WithPriority returns a copy with the given total-order priority value
// (used only by the prio policy's comparator).
func (a Attribute) WithPriority(p int) Attribute { a.Priority = p; return a }

// WithNumWaiters returns a copy that delivers n completion notices
// instead of the default one.
func (a Attribute) WithNumWaiters(n int32) Attribute { a.NumWaiters = n; return a }

// WithNested returns a copy selecting a testable (true) or waitable
// (false) completion event.
func (a Attribute) WithNested(nested bool) Attribute { a.Nested = nested; return a }

// WithGrouped returns a copy that joins a group and acquires a rank at
// spawn time.
func (a Attribute) WithGrouped(grouped bool) Attribute { a.Grouped = grouped; return a }

// WithLevel returns a copy at the given spawn-tree depth, consulted by
// the Cilk-deque predicates.
func (a Attribute) WithLevel(level int64) Attribute { a.Level = level; return a }
