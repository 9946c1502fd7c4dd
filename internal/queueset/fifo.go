package queueset

import (
	"sync"

	eapacheq "github.com/eapache/queue"

	"github.com/momentics/pfunc/internal/core"
)

// fifoQueue offers queue semantics on top of eapache/queue's ring
// buffer: put appends at the back, get inspects and pops the front.
type fifoQueue struct {
	mu sync.Mutex
	q  *eapacheq.Queue
}

func newFifoQueue() *fifoQueue {
	return &fifoQueue{q: eapacheq.New()}
}

func (f *fifoQueue) put(t *core.Task) {
	f.mu.Lock()
	f.q.Add(t)
	f.mu.Unlock()
}

func (f *fifoQueue) get(pred Predicate, _ bool) (*core.Task, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.q.Length() == 0 {
		return nil, false
	}
	front := f.q.Peek().(*core.Task)
	if !pred(front) {
		return nil, false
	}
	f.q.Remove()
	return front, true
}
