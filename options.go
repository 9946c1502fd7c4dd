package pfunc

import (
	"go.uber.org/zap"

	"github.com/momentics/pfunc/internal/taskmgr"
)

// Option customizes TaskManager construction.
type Option = taskmgr.Option

// WithNumQueues sets the number of task queues (and, absent
// WithThreadsPerQueue, the number of worker goroutines: one per queue).
func WithNumQueues(n int) Option { return taskmgr.WithNumQueues(n) }

// WithThreadsPerQueue assigns counts[i] worker goroutines to queue i.
// A shorter slice than NumQueues leaves the remaining queues at one
// worker each.
func WithThreadsPerQueue(counts ...int) Option { return taskmgr.WithThreadsPerQueue(counts...) }

// WithPolicy selects the scheduling policy for every queue in the set.
func WithPolicy(p Policy) Option { return taskmgr.WithPolicy(p) }

// WithMaxAttempts sets the initial spin-attempt bound for the
// back-off loop's first pass.
func WithMaxAttempts(n int64) Option { return taskmgr.WithMaxAttempts(n) }

// WithAffinity pins worker i's OS thread to cpus[i % len(cpus)], or to
// CPU i mod runtime.NumCPU() with no cpus given.
func WithAffinity(cpus ...int) Option { return taskmgr.WithAffinity(cpus...) }

// WithLogger overrides the manager's structured logger.
func WithLogger(l *zap.Logger) Option { return taskmgr.WithLogger(l) }
