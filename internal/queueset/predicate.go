package queueset

import (
	"github.com/momentics/pfunc/api"
	"github.com/momentics/pfunc/internal/core"
)

// Predicate decides whether candidate may be handed to the calling
// worker at a given scheduling point. Predicates are always evaluated
// against only the queue's current head (own end or steal end); a
// predicate that returns false leaves candidate in place and Set.Get
// moves on to the next queue.
type Predicate func(candidate *core.Task) bool

// Family selects which of the three predicate contexts a Get call uses.
type Family int

const (
	// Regular is used by an idle worker: always true.
	Regular Family = iota
	// Waiting is used by a worker blocked on a specific task's
	// completion (progress-wait).
	Waiting
	// Barrier is used by a worker spinning inside a STEAL barrier
	// (progress-barrier); additionally refuses same-group candidates.
	Barrier
)

func regularPredicate() Predicate {
	return func(*core.Task) bool { return true }
}

// waitingPredicate implements the Waiting family per spec.md's table:
// lifo/fifo always true, cilk requires candidate.Level >= current.Level
// (never steal a shallower task, which would blow the activation
// stack), prio requires the candidate not outrank the awaited task
// (prevents priority-inversion deadlock).
func waitingPredicate(policy api.Policy, current *core.Task) Predicate {
	switch policy {
	case api.Cilk:
		currentLevel := current.Attr.Level
		return func(candidate *core.Task) bool {
			return candidate.Attr.Level >= currentLevel
		}
	case api.Prio:
		currentPriority := current.Attr.Priority
		return func(candidate *core.Task) bool {
			return currentPriority >= candidate.Attr.Priority
		}
	default: // Lifo, Fifo
		return func(*core.Task) bool { return true }
	}
}

// barrierPredicate is the Waiting predicate with the extra same-group
// refusal: a worker spinning inside a group's STEAL barrier must never
// execute another member of that same cohort, or the barrier can never
// complete.
func barrierPredicate(policy api.Policy, current *core.Task) Predicate {
	waiting := waitingPredicate(policy, current)
	return func(candidate *core.Task) bool {
		if !waiting(candidate) {
			return false
		}
		return candidate.Group != current.Group
	}
}
