// Package queueset implements the task queue set: N per-queue
// containers, one per policy (LIFO, FIFO, priority, Cilk work-stealing
// deque), behind a predicate-gated Get/Put protocol. Each container is
// a lock-guarded structure whose shape depends on the policy; Get walks
// queues starting at a given index, wrapping mod N, applying the own
// predicate at the home index and the steal predicate everywhere else,
// stopping at the first hit or after one full pass.
//
// License: Apache-2.0
package queueset

import (
	"github.com/momentics/pfunc/api"
	"github.com/momentics/pfunc/internal/core"
)

// container is the per-queue storage every policy implements. get
// inspects only the policy's current head for the relevant end (steal
// selects the far end for Cilk deques; it is ignored by the other three
// policies, whose own and steal ends coincide) and pops on success.
type container interface {
	put(t *core.Task)
	get(pred Predicate, steal bool) (*core.Task, bool)
}

// Set is a family of N per-queue containers sharing one scheduling
// policy.
type Set struct {
	policy     api.Policy
	containers []container
}

// New builds a Set of n queues under the given policy.
func New(policy api.Policy, n int) *Set {
	if n <= 0 {
		n = 1
	}
	cs := make([]container, n)
	for i := range cs {
		switch policy {
		case api.Lifo:
			cs[i] = newLifoQueue()
		case api.Fifo:
			cs[i] = newFifoQueue()
		case api.Prio:
			cs[i] = newPrioQueue()
		default:
			cs[i] = newCilkDeque()
		}
	}
	return &Set{policy: policy, containers: cs}
}

// NumQueues reports N.
func (s *Set) NumQueues() int { return len(s.containers) }

// Policy reports the scheduling policy this set was built with.
func (s *Set) Policy() api.Policy { return s.policy }

// Put pushes t onto queue q's owning end. q must be in [0, NumQueues()).
func (s *Set) Put(q int, t *core.Task) {
	s.containers[q].put(t)
}

// Get attempts to acquire a task starting at queue q, wrapping mod N.
// family selects Regular, Waiting or Barrier; current is the task the
// calling worker is blocked on (ignored for Regular, where it may be nil).
// Returns nil after one full pass finds nothing acceptable.
func (s *Set) Get(q int, family Family, current *core.Task) *core.Task {
	n := len(s.containers)
	var pred Predicate
	switch family {
	case Waiting:
		pred = waitingPredicate(s.policy, current)
	case Barrier:
		pred = barrierPredicate(s.policy, current)
	default:
		pred = regularPredicate()
	}
	for i := 0; i < n; i++ {
		idx := (q + i) % n
		steal := idx != q
		if t, ok := s.containers[idx].get(pred, steal); ok {
			return t
		}
	}
	return nil
}
