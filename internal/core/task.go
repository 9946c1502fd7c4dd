package core

import (
	"fmt"
	"runtime/debug"

	"github.com/momentics/pfunc/api"
	"github.com/momentics/pfunc/internal/event"
)

// Functor is the unit of work a Task carries. Ownership stays with the
// caller: the runtime holds only a non-owning *Task pointer and never
// copies or outlives the functor beyond Run. ctx exposes the running
// worker's thread id, this task's group rank/size, and a collective
// Barrier operation - see TaskContext.
type Functor func(ctx *TaskContext) error

// Task is the irreducible unit of work. Its lifetime is owned by the
// caller, who must keep it alive until Wait or Test observes completion.
// The completion event is reset on every Spawn, so a Task value may be
// reused for repeated spawn/wait cycles.
type Task struct {
	Attr    Attribute
	Group   *Group
	Functor Functor
	Rank    uint32
	Size    uint32
	Err     error

	testable *event.Testable
	waitable *event.Waitable
	nested   bool
}

// ResetForSpawn (re)activates the task's completion event according to
// attr.Nested and attr.NumWaiters, and records attr as the task's
// current attribute. Called once per Spawn, before the task is queued.
func (t *Task) ResetForSpawn(attr Attribute) {
	t.Attr = attr
	t.Err = nil
	t.nested = attr.Nested
	if attr.Nested {
		if t.testable == nil {
			t.testable = event.NewTestable()
		}
		t.testable.Reset(attr.NumWaiters)
	} else {
		if t.waitable == nil {
			t.waitable = event.NewWaitable()
		}
		t.waitable.Reset(attr.NumWaiters)
	}
}

// Nested reports whether the task's active event is testable (true) or
// waitable (false).
func (t *Task) Nested() bool { return t.nested }

// Notify signals completion on whichever event kind is active.
func (t *Task) Notify() {
	if t.nested {
		t.testable.Notify()
	} else {
		t.waitable.Notify()
	}
}

// Test is the non-blocking completion check, valid for either event
// kind (a waitable event may still be polled via Test; only Wait is
// forbidden on a testable one).
func (t *Task) Test() bool {
	if t.nested {
		return t.testable.Test()
	}
	return t.waitable.Test()
}

// Peek reports completion without consuming a waiter slot. Scheduling
// loops poll Peek while looking for other work to do and call Test
// exactly once, at the point they commit to having observed completion.
func (t *Task) Peek() bool {
	if t.nested {
		return t.testable.Peek()
	}
	return t.waitable.Peek()
}

// WaitEvent blocks on the waitable completion event. Callers must check
// Nested() first: blocking on a testable task's (nonexistent) waitable
// event is a contract violation, not a recoverable error.
func (t *Task) WaitEvent() {
	t.waitable.Wait()
}

// Run executes the functor, capturing a panic or returned error into Err
// rather than propagating it - the completion event still fires, and
// the error is re-raised the next time a caller observes completion via
// the task manager's Wait/Test.
func (t *Task) Run(ctx *TaskContext) {
	defer func() {
		if r := recover(); r != nil {
			t.Err = api.NewError(api.ErrCodeTaskError, "task panicked").
				WithCause(fmt.Errorf("%v", r)).
				WithContext("stack", string(debug.Stack()))
		}
	}()
	if t.Functor == nil {
		return
	}
	if err := t.Functor(ctx); err != nil {
		t.Err = api.NewError(api.ErrCodeTaskError, "task returned an error").
			WithCause(err)
	}
}

// Snapshot is the exact subset of a Task the per-worker current-task
// cache copies: three scalars plus a Group pointer. Functor and the
// completion event are never aliased across this boundary.
type Snapshot struct {
	ThreadID  int
	GroupRank uint32
	GroupSize uint32
	Group     *Group
}

// SnapshotOf narrows t into the cache's Snapshot representation.
func SnapshotOf(threadID int, t *Task) Snapshot {
	return Snapshot{
		ThreadID:  threadID,
		GroupRank: t.Rank,
		GroupSize: t.Size,
		Group:     t.Group,
	}
}
