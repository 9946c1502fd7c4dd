package core

import "context"

// TaskContext is handed to a running functor. It is the Go-idiomatic
// realization of what the runtime internally calls the current-task
// cache: rather than exposing implicit per-thread state that the
// functor reaches for through a global accessor, the exact subset a
// functor is allowed to read - thread id, group rank, group size, a
// collective Barrier operation, and the ability to spawn/wait/test
// nested tasks on its own worker's queue - is passed in explicitly.
// This is the narrowing spec.md's Design Notes call for: no aliasing of
// the functor or completion event across the cache boundary, because
// neither is ever placed in TaskContext to begin with.
type TaskContext struct {
	// Context carries cancellation/deadline signals a long-running
	// functor may select on, independent of task completion.
	Context context.Context

	ThreadID  int
	GroupRank uint32
	GroupSize uint32

	group  *Group
	onSpin func()

	spawn func(child *Task, attr Attribute, group *Group, fn Functor) error
	wait  func(child *Task) error
	test  func(child *Task) bool
}

// NewTaskContext builds the context passed to a functor from the
// narrowed cache Snapshot of the task currently running on a worker,
// never from the Task itself - so the functor and completion event can
// never leak into TaskContext by construction. onSpin is invoked on
// every spin iteration of a BarrierSteal group barrier; SPIN and WAIT
// groups ignore it. spawn/wait/test are the task manager's own
// operations, bound to this worker's queue of origin, handed in as
// plain closures so core never imports the task manager package.
func NewTaskContext(
	ctx context.Context,
	snap Snapshot,
	onSpin func(),
	spawn func(child *Task, attr Attribute, group *Group, fn Functor) error,
	wait func(child *Task) error,
	test func(child *Task) bool,
) *TaskContext {
	return &TaskContext{
		Context:   ctx,
		ThreadID:  snap.ThreadID,
		GroupRank: snap.GroupRank,
		GroupSize: snap.GroupSize,
		group:     snap.Group,
		onSpin:    onSpin,
		spawn:     spawn,
		wait:      wait,
		test:      test,
	}
}

// Barrier performs one collective synchronization round over this
// task's group. A task spawned without Attribute.Grouped has no group
// and Barrier is a no-op.
func (c *TaskContext) Barrier() {
	if c.group == nil {
		return
	}
	c.group.Barrier(c.onSpin)
}

// Spawn queues child under attr, joining group if attr.Grouped, and
// runs fn when a worker retrieves it. attr.QueueNumber of CurrentQueue
// resolves to this functor's own worker queue, giving nested spawns the
// same locality a flat, top-level Spawn on the same worker would get.
func (c *TaskContext) Spawn(child *Task, attr Attribute, group *Group, fn Functor) error {
	return c.spawn(child, attr, group, fn)
}

// Wait blocks the calling functor until child completes. For a nested
// child it helps the task manager make progress on other work in the
// meantime rather than idling; a non-nested child's waitable event is
// slept on directly.
func (c *TaskContext) Wait(child *Task) error {
	return c.wait(child)
}

// Test is the non-blocking completion check for a nested task.
func (c *TaskContext) Test(child *Task) bool {
	return c.test(child)
}
