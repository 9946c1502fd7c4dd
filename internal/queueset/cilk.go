package queueset

import (
	"container/list"
	"sync"

	"github.com/momentics/pfunc/internal/core"
)

// cilkDeque is the Cilk-style work-stealing deque: put and the owning
// worker's get both touch the front; thieves touch the back. A
// container/list doubly-linked list gives O(1) operations at both ends
// under the single mutex the predicate-gated protocol requires (the
// critical section is the inspect-and-pop, not a free-standing
// lock-free race as in a classical Chase-Lev deque).
type cilkDeque struct {
	mu sync.Mutex
	l  *list.List
}

func newCilkDeque() *cilkDeque {
	return &cilkDeque{l: list.New()}
}

func (d *cilkDeque) put(t *core.Task) {
	d.mu.Lock()
	d.l.PushFront(t)
	d.mu.Unlock()
}

func (d *cilkDeque) get(pred Predicate, steal bool) (*core.Task, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var e *list.Element
	if steal {
		e = d.l.Back()
	} else {
		e = d.l.Front()
	}
	if e == nil {
		return nil, false
	}
	t := e.Value.(*core.Task)
	if !pred(t) {
		return nil, false
	}
	d.l.Remove(e)
	return t, true
}
