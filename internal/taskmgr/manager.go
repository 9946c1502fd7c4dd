// Package taskmgr implements the task manager: a fixed pool of worker
// goroutines pulling from a shared task queue set through the
// predicate-gated protocol, plus the nested progress-wait and
// progress-barrier scheduling tiers that let a blocked caller make
// useful progress instead of idling. Each worker probes its own queue
// first and falls back to stealing from the rest, backing off
// geometrically across attempts before yielding the goroutine.
//
// License: Apache-2.0
package taskmgr

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/momentics/pfunc/api"
	"github.com/momentics/pfunc/internal/core"
	"github.com/momentics/pfunc/internal/pfconfig"
	"github.com/momentics/pfunc/internal/queueset"
)

// Manager owns the task queue set and the worker pool reading from it.
// A zero Manager is not usable; construct one with New or NewFromConfig.
type Manager struct {
	queues *queueset.Set
	policy api.Policy

	maxAttempts atomic.Int64
	rrQueue     atomic.Int64

	workers   []*worker
	startupWG sync.WaitGroup
	wg        sync.WaitGroup
	closed    atomic.Bool

	affinity    bool
	affinityMap []int
	logger      *zap.Logger
}

// New builds a Manager and blocks until every worker goroutine has
// started (and, if WithAffinity was given, attempted its pin) before
// returning - callers never race a Spawn against a worker pool that
// hasn't finished standing up.
func New(opts ...Option) (*Manager, error) {
	o := defaultOptions()
	for _, f := range opts {
		f(&o)
	}
	if o.numQueues <= 0 {
		o.numQueues = 1
	}
	if o.maxAttempts <= 0 {
		o.maxAttempts = 1
	}
	if o.logger == nil {
		l, err := zap.NewProduction()
		if err != nil {
			l = zap.NewNop()
		}
		o.logger = l
	}

	m := &Manager{
		queues:      queueset.New(o.policy, o.numQueues),
		policy:      o.policy,
		affinity:    o.affinity,
		affinityMap: o.affinityMap,
		logger:      o.logger,
	}
	m.maxAttempts.Store(o.maxAttempts)

	counts := threadCounts(o.threadsPerQueue, o.numQueues)
	total := 0
	for _, c := range counts {
		total += c
	}
	m.workers = make([]*worker, 0, total)
	id := 0
	for q, c := range counts {
		for i := 0; i < c; i++ {
			m.workers = append(m.workers, &worker{id: id, primaryQueue: q, mgr: m})
			id++
		}
	}

	m.startupWG.Add(len(m.workers))
	m.wg.Add(len(m.workers))
	for _, w := range m.workers {
		go w.run()
	}
	m.startupWG.Wait()

	m.logger.Info("task manager started",
		zap.Int("workers", len(m.workers)),
		zap.Int("queues", o.numQueues),
		zap.String("policy", o.policy.String()),
		zap.Bool("affinity", o.affinity))
	return m, nil
}

// NewFromConfig builds a Manager from a loaded pfconfig.Config, with
// opts applied after (and able to override) the config-derived options.
func NewFromConfig(cfg pfconfig.Config, opts ...Option) (*Manager, error) {
	base := []Option{
		WithNumQueues(cfg.NumQueues),
		WithThreadsPerQueue(repeatN(cfg.ThreadsPerQueue, cfg.NumQueues)...),
		WithPolicy(cfg.Policy),
		WithMaxAttempts(int64(cfg.MaxAttempts)),
	}
	if cfg.Affinity {
		base = append(base, WithAffinity())
	}
	return New(append(base, opts...)...)
}

func threadCounts(given []int, numQueues int) []int {
	counts := make([]int, numQueues)
	for i := range counts {
		counts[i] = 1
	}
	for i := 0; i < len(given) && i < numQueues; i++ {
		if given[i] > 0 {
			counts[i] = given[i]
		}
	}
	return counts
}

func repeatN(v, n int) []int {
	if n <= 0 {
		n = 1
	}
	out := make([]int, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// MaxAttempts reports the current first-pass spin-attempt bound.
func (m *Manager) MaxAttempts() int64 { return m.maxAttempts.Load() }

// SetMaxAttempts changes the first-pass spin-attempt bound that every
// subsequent getTaskWithBackoff call starts from. n < 1 is clamped to 1.
func (m *Manager) SetMaxAttempts(n int64) {
	if n < 1 {
		n = 1
	}
	m.maxAttempts.Store(n)
}

// NumQueues reports the queue set's width.
func (m *Manager) NumQueues() int { return m.queues.NumQueues() }

// getTaskWithBackoff is the attempt-bounded geometric back-off spec.md
// §4.E names: spin for up to attempts probes of the queue set, then
// yield the OS thread and halve attempts (floor 1), repeating forever
// until a task is found or stop reports true.
func (m *Manager) getTaskWithBackoff(startQueue int, family queueset.Family, current *core.Task, stop func() bool) *core.Task {
	attempts := m.maxAttempts.Load()
	for {
		for n := int64(0); n < attempts; n++ {
			if stop != nil && stop() {
				return nil
			}
			if t := m.queues.Get(startQueue, family, current); t != nil {
				return t
			}
		}
		if stop != nil && stop() {
			return nil
		}
		runtime.Gosched()
		attempts /= 2
		if attempts < 1 {
			attempts = 1
		}
	}
}

// runTask builds the TaskContext for t and runs it on behalf of
// threadID (a worker id, or -1 for a non-worker caller helping out of
// Wait/WaitAny), notifying t's completion event afterward.
func (m *Manager) runTask(threadID, primaryQueue int, t *core.Task) {
	snap := core.SnapshotOf(threadID, t)
	ctx := core.NewTaskContext(
		context.Background(),
		snap,
		func() { m.progressBarrier(primaryQueue, t) },
		func(child *core.Task, attr core.Attribute, group *core.Group, fn core.Functor) error {
			return m.spawnInto(primaryQueue, child, attr, group, fn)
		},
		func(child *core.Task) error { return m.waitFromWorker(primaryQueue, child) },
		func(child *core.Task) bool { return child.Test() },
	)
	t.Run(ctx)
	t.Notify()
}

// progressBarrier is the innermost scheduling tier: one non-blocking
// probe of the Barrier family on primaryQueue, run as the onSpin
// callback of a BarrierSteal group's spin loop so a worker stuck at a
// barrier executes other groups' work instead of idling.
func (m *Manager) progressBarrier(primaryQueue int, current *core.Task) {
	if t := m.queues.Get(primaryQueue, queueset.Barrier, current); t != nil {
		m.runTask(-1, primaryQueue, t)
	}
}

// progressWait is the middle scheduling tier: while target has not
// completed, pull and run Waiting-family tasks from startQueue. Used
// for nested (testable) tasks, whose completion event cannot itself be
// slept on.
func (m *Manager) progressWait(startQueue int, target *core.Task) {
	stop := func() bool { return m.closed.Load() || target.Peek() }
	for {
		if target.Test() {
			return
		}
		t := m.getTaskWithBackoff(startQueue, queueset.Waiting, target, stop)
		if t == nil {
			if m.closed.Load() {
				return
			}
			continue
		}
		m.runTask(-1, startQueue, t)
	}
}

// spawnInto queues child for execution: it joins group (acquiring a
// rank) if attr.Grouped, resets its completion event per attr, and
// lands on attr.QueueNumber, or callerQueue if that is api.CurrentQueue.
func (m *Manager) spawnInto(callerQueue int, child *core.Task, attr core.Attribute, group *core.Group, fn core.Functor) error {
	if m.closed.Load() {
		return api.ErrManagerClosed
	}
	if child == nil {
		return api.NewError(api.ErrCodeInvalidArguments, "nil task")
	}
	q := attr.QueueNumber
	if q == api.CurrentQueue {
		q = callerQueue
	}
	if q < 0 || q >= m.queues.NumQueues() {
		return api.ErrInvalidQueue
	}

	child.Functor = fn
	child.Group = nil
	if group != nil && attr.Grouped {
		child.Group = group
		child.Rank = group.JoinGroup()
		child.Size = group.Size
	} else {
		child.Rank = 0
		child.Size = 0
	}
	child.ResetForSpawn(attr)
	m.queues.Put(q, child)
	return nil
}

// waitFromWorker blocks a worker goroutine (or another goroutine
// already running inside a task's functor) until t completes: a
// waitable (non-nested) task sleeps on its futex/condvar event
// directly, while a nested task is driven through progressWait, which
// pulls and runs other Waiting-family tasks from callerQueue while it
// spins, since its event supports only polling. This is the re-entrant
// scheduling tier spec.md §4.E names "progress-wait" - it is only safe
// to steal work this way from a goroutine the task manager already
// owns.
func (m *Manager) waitFromWorker(callerQueue int, t *core.Task) error {
	if t == nil {
		return api.NewError(api.ErrCodeInvalidArguments, "nil task")
	}
	if !t.Nested() {
		t.WaitEvent()
		return t.Err
	}
	m.progressWait(callerQueue, t)
	return t.Err
}

// waitFromOutsider blocks an external, non-worker goroutine (the
// application's main goroutine, or any caller of the public
// TaskManager.Wait/WaitAll that is not itself running inside a task)
// until t completes. Per spec.md §4.E, such a caller "simply yields in
// a loop until the event tests true; it does not pull work" - unlike
// waitFromWorker, it never reaches into the queue set, so it can never
// race a real worker for a task or disturb policy ordering observed by
// other callers.
func (m *Manager) waitFromOutsider(t *core.Task) error {
	if t == nil {
		return api.NewError(api.ErrCodeInvalidArguments, "nil task")
	}
	if !t.Nested() {
		t.WaitEvent()
		return t.Err
	}
	for !t.Test() {
		if m.closed.Load() {
			return t.Err
		}
		runtime.Gosched()
	}
	return t.Err
}

func (m *Manager) nextOrigin() int {
	n := m.queues.NumQueues()
	i := int(m.rrQueue.Add(1) - 1)
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// Spawn queues t for execution under attr, joining group if
// attr.Grouped. Safe to call from any goroutine, worker or not.
func (m *Manager) Spawn(t *core.Task, attr core.Attribute, group *core.Group, fn core.Functor) error {
	return m.spawnInto(m.nextOrigin(), t, attr, group, fn)
}

// Wait blocks the calling goroutine until t completes. The caller is
// treated as an outsider to the worker pool (spec.md §4.E): it never
// pulls and runs other queued tasks while waiting, even when t's
// completion event is poll-only. Code running inside a task's own
// functor should call TaskContext.Wait instead, which is entitled to
// make progress on other work while it spins.
func (m *Manager) Wait(t *core.Task) error {
	return m.waitFromOutsider(t)
}

// Test is the non-blocking completion check.
func (m *Manager) Test(t *core.Task) bool {
	if t == nil {
		return true
	}
	return t.Test()
}

// WaitAll waits for every task in order, returning the first error
// observed (if any) only after every task has completed.
func (m *Manager) WaitAll(tasks []*core.Task) error {
	var firstErr error
	for _, t := range tasks {
		if err := m.Wait(t); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// WaitAny blocks until at least one task in tasks completes, returning
// its index and error. It does not guarantee anything about the
// remaining tasks' state.
func (m *Manager) WaitAny(tasks []*core.Task) (int, error) {
	if len(tasks) == 0 {
		return -1, api.NewError(api.ErrCodeInvalidArguments, "empty task list")
	}
	origin := m.nextOrigin()
	stop := func() bool {
		if m.closed.Load() {
			return true
		}
		for _, t := range tasks {
			if t.Peek() {
				return true
			}
		}
		return false
	}
	for {
		for i, t := range tasks {
			if t.Peek() {
				t.Test()
				return i, t.Err
			}
		}
		got := m.getTaskWithBackoff(origin, queueset.Regular, nil, stop)
		if got == nil {
			if m.closed.Load() {
				return -1, api.ErrManagerClosed
			}
			continue
		}
		m.runTask(-1, origin, got)
	}
}

// TestAll polls every task once, returning whether all are complete
// alongside the per-task completion snapshot.
func (m *Manager) TestAll(tasks []*core.Task) (bool, []bool) {
	completed := make([]bool, len(tasks))
	all := true
	for i, t := range tasks {
		completed[i] = t.Test()
		if !completed[i] {
			all = false
		}
	}
	return all, completed
}

// Close idempotently shuts the manager down: every worker finishes its
// current task, observes closure through getTaskWithBackoff's stop
// check, and exits. Safe to call concurrently with in-flight Spawn
// calls from other goroutines, which then observe ErrManagerClosed.
func (m *Manager) Close() error {
	if !m.closed.CompareAndSwap(false, true) {
		return nil
	}
	m.wg.Wait()
	m.logger.Info("task manager closed")
	return nil
}
