package queueset

import (
	"sync"

	"github.com/momentics/pfunc/internal/core"
)

// lifoQueue offers stack semantics: put and get both touch the top.
type lifoQueue struct {
	mu    sync.Mutex
	items []*core.Task
}

func newLifoQueue() *lifoQueue { return &lifoQueue{} }

func (q *lifoQueue) put(t *core.Task) {
	q.mu.Lock()
	q.items = append(q.items, t)
	q.mu.Unlock()
}

func (q *lifoQueue) get(pred Predicate, _ bool) (*core.Task, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil, false
	}
	top := q.items[len(q.items)-1]
	if !pred(top) {
		return nil, false
	}
	q.items = q.items[:len(q.items)-1]
	return top, true
}
