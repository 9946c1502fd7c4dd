package taskmgr

import (
	"runtime"

	"go.uber.org/zap"

	"github.com/momentics/pfunc/api"
)

// options collects constructor-time choices before New resolves them
// into a concrete Manager, in the functional-options shape.
type options struct {
	numQueues       int
	threadsPerQueue []int
	policy          api.Policy
	maxAttempts     int64
	affinity        bool
	affinityMap     []int
	logger          *zap.Logger
}

func defaultOptions() options {
	return options{
		numQueues:   runtime.NumCPU(),
		policy:      api.Cilk,
		maxAttempts: 2_000_000,
	}
}

// Option customizes Manager construction.
type Option func(*options)

// WithNumQueues sets the number of task queues (and, absent
// WithThreadsPerQueue, the number of worker goroutines: one per queue).
func WithNumQueues(n int) Option {
	return func(o *options) { o.numQueues = n }
}

// WithThreadsPerQueue assigns counts[i] worker goroutines to queue i,
// all sharing that queue as their primary. A shorter slice than
// NumQueues leaves the remaining queues at one worker each.
func WithThreadsPerQueue(counts ...int) Option {
	return func(o *options) { o.threadsPerQueue = counts }
}

// WithPolicy selects the scheduling policy for every queue in the set.
func WithPolicy(p api.Policy) Option {
	return func(o *options) { o.policy = p }
}

// WithMaxAttempts sets the initial spin-attempt bound for
// getTaskWithBackoff's first pass before it starts halving.
func WithMaxAttempts(n int64) Option {
	return func(o *options) { o.maxAttempts = n }
}

// WithAffinity pins worker i's OS thread to cpus[i % len(cpus)]. With no
// cpus given, worker i pins to CPU i mod runtime.NumCPU().
func WithAffinity(cpus ...int) Option {
	return func(o *options) {
		o.affinity = true
		o.affinityMap = cpus
	}
}

// WithLogger overrides the manager's structured logger. The default is
// a production zap.Logger; pass zap.NewNop() to silence it entirely.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}
