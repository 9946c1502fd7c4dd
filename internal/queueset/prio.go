package queueset

import (
	"sync"

	"github.com/emirpasic/gods/trees/redblacktree"

	"github.com/momentics/pfunc/internal/core"
)

// prioKey orders a red-black tree by (priority, insertion sequence), so
// ties break in arrival order the way KnightChaser-vrunq's scheduler
// orders its vruntime tree by (vruntime, task ID).
type prioKey struct {
	priority int
	seq      uint64
}

func comparePrioKey(a, b any) int {
	ka, kb := a.(prioKey), b.(prioKey)
	switch {
	case ka.priority < kb.priority:
		return -1
	case ka.priority > kb.priority:
		return 1
	// Among equal priorities the earlier arrival sorts higher, so the
	// rightmost node is the oldest task of the top priority.
	case ka.seq < kb.seq:
		return 1
	case ka.seq > kb.seq:
		return -1
	default:
		return 0
	}
}

// prioQueue is a max-heap over Attribute.Priority, backed by an
// emirpasic/gods red-black tree: put and get both touch the maximum
// element (the tree's rightmost node).
type prioQueue struct {
	mu   sync.Mutex
	tree *redblacktree.Tree
	seq  uint64
}

func newPrioQueue() *prioQueue {
	return &prioQueue{tree: redblacktree.NewWith(comparePrioKey)}
}

func (p *prioQueue) put(t *core.Task) {
	p.mu.Lock()
	p.seq++
	p.tree.Put(prioKey{priority: t.Attr.Priority, seq: p.seq}, t)
	p.mu.Unlock()
}

func (p *prioQueue) get(pred Predicate, _ bool) (*core.Task, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	node := p.tree.Right()
	if node == nil {
		return nil, false
	}
	t := node.Value.(*core.Task)
	if !pred(t) {
		return nil, false
	}
	p.tree.Remove(node.Key)
	return t, true
}
