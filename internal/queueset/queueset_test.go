package queueset

import (
	"testing"

	"github.com/momentics/pfunc/api"
	"github.com/momentics/pfunc/internal/core"
)

func mkTask(priority int, level int64) *core.Task {
	t := &core.Task{}
	t.Attr = core.Attribute{Priority: priority, Level: level}
	return t
}

func TestFifoOrder(t *testing.T) {
	s := New(api.Fifo, 1)
	a, b, c := mkTask(0, 0), mkTask(0, 0), mkTask(0, 0)
	s.Put(0, a)
	s.Put(0, b)
	s.Put(0, c)
	for i, want := range []*core.Task{a, b, c} {
		if got := s.Get(0, Regular, nil); got != want {
			t.Fatalf("pop %d = %p, want %p (arrival order)", i, got, want)
		}
	}
}

func TestLifoOrder(t *testing.T) {
	s := New(api.Lifo, 1)
	a, b, c := mkTask(0, 0), mkTask(0, 0), mkTask(0, 0)
	s.Put(0, a)
	s.Put(0, b)
	s.Put(0, c)
	for i, want := range []*core.Task{c, b, a} {
		if got := s.Get(0, Regular, nil); got != want {
			t.Fatalf("pop %d = %p, want %p (reverse arrival order)", i, got, want)
		}
	}
}

func TestPrioOrder(t *testing.T) {
	s := New(api.Prio, 1)
	low, high, mid := mkTask(1, 0), mkTask(3, 0), mkTask(2, 0)
	s.Put(0, low)
	s.Put(0, high)
	s.Put(0, mid)
	for i, want := range []*core.Task{high, mid, low} {
		if got := s.Get(0, Regular, nil); got != want {
			t.Fatalf("pop %d = %p, want %p (non-increasing priority)", i, got, want)
		}
	}
}

func TestCilkOwnEndOrder(t *testing.T) {
	s := New(api.Cilk, 1)
	a, b, c := mkTask(0, 0), mkTask(0, 0), mkTask(0, 0)
	s.Put(0, a)
	s.Put(0, b)
	s.Put(0, c)
	// Own end (queue index == probed index) pops the front, i.e.
	// reverse arrival order, matching the owning worker's own-queue get.
	for i, want := range []*core.Task{c, b, a} {
		if got := s.Get(0, Regular, nil); got != want {
			t.Fatalf("pop %d = %p, want %p (own end, reverse arrival)", i, got, want)
		}
	}
}

func TestCilkStealEndOrder(t *testing.T) {
	s := New(api.Cilk, 2)
	a, b := mkTask(0, 0), mkTask(0, 0)
	s.Put(1, a)
	s.Put(1, b)
	// Probing from queue 0 treats queue 1 as a steal target: the back
	// of the deque, i.e. arrival order (oldest first).
	if got := s.Get(0, Regular, nil); got != a {
		t.Fatalf("first steal = %p, want %p (oldest)", got, a)
	}
	if got := s.Get(0, Regular, nil); got != b {
		t.Fatalf("second steal = %p, want %p", got, b)
	}
}

func TestEmptyQueueSetGetReturnsNil(t *testing.T) {
	s := New(api.Fifo, 4)
	if got := s.Get(0, Regular, nil); got != nil {
		t.Fatalf("Get on an empty set = %v, want nil", got)
	}
}

// TestCilkWaitingPredicateDeniesShallowerTask realizes spec.md §8's
// "waiting predicate denial" scenario: a worker blocked on a task at
// level 5 must accept a deeper child (level >= 5) but refuse a
// shallower, unrelated task (level < 5) sitting at the same queue head.
func TestCilkWaitingPredicateDeniesShallowerTask(t *testing.T) {
	s := New(api.Cilk, 1)
	current := mkTask(0, 5) // the task being awaited

	shallow := mkTask(0, 4) // posted first, unrelated task C
	s.Put(0, shallow)
	if got := s.Get(0, Waiting, current); got != nil {
		t.Fatalf("Waiting probe returned %p for a shallower candidate, want nil (refused)", got)
	}

	// The refused candidate is still at the head; pop it back out with
	// the Regular predicate so the deeper child can be queued and
	// probed on its own, matching the container's "inspect only the
	// current head" contract.
	if got := s.Get(0, Regular, current); got != shallow {
		t.Fatalf("Regular probe did not drain the refused candidate")
	}

	deep := mkTask(0, 6) // child B, acceptable to steal while awaiting level 5
	s.Put(0, deep)
	if got := s.Get(0, Waiting, current); got != deep {
		t.Fatalf("Waiting probe = %p, want %p (deep child, level >= current)", got, deep)
	}
}

// TestPrioWaitingPredicateAvoidsInversion realizes spec.md §8's
// "priority anti-deadlock" scenario: a worker waiting on a task must
// never pick up a candidate that outranks it (which would itself block
// behind something the awaited task cannot help drain).
func TestPrioWaitingPredicateAvoidsInversion(t *testing.T) {
	s := New(api.Prio, 1)
	current := mkTask(2, 0) // the task being awaited, priority 2

	higher := mkTask(5, 0)
	s.Put(0, higher)
	if got := s.Get(0, Waiting, current); got != nil {
		t.Fatalf("Waiting probe returned a higher-priority candidate, want refusal")
	}
}

// TestBarrierPredicateRefusesSameGroup realizes the STEAL barrier's
// extra rule: a worker spinning inside a group's barrier must never
// execute another member of its own cohort.
func TestBarrierPredicateRefusesSameGroup(t *testing.T) {
	s := New(api.Fifo, 1)
	g1 := core.NewGroup("g1", 2, api.BarrierSteal)
	g2 := core.NewGroup("g2", 2, api.BarrierSteal)

	current := mkTask(0, 0)
	current.Group = g1

	sibling := mkTask(0, 0)
	sibling.Group = g1
	s.Put(0, sibling)
	if got := s.Get(0, Barrier, current); got != nil {
		t.Fatalf("Barrier probe accepted a same-group candidate, want refusal")
	}

	// Drain the refused sibling, then confirm a different group's task
	// is accepted.
	s.Get(0, Regular, nil)
	outsider := mkTask(0, 0)
	outsider.Group = g2
	s.Put(0, outsider)
	if got := s.Get(0, Barrier, current); got != outsider {
		t.Fatalf("Barrier probe = %p, want %p (different group)", got, outsider)
	}
}
