package core

import (
	"sync"

	"github.com/momentics/pfunc/api"
	"github.com/momentics/pfunc/internal/atomics"
)

// Group holds collective-barrier membership for a named set of tasks.
// Invariant: RankToken always equals the count of joined-minus-left
// members (spec.md invariant 5).
type Group struct {
	ID   string
	Size uint32
	Kind api.BarrierKind

	rankToken uint64 // atomic fetch-and-add

	lockWord int32 // spin-trylock word, SPIN variant only
	phase    int32 // SPIN variant phase flag
	spinN    uint32

	mu    sync.Mutex // WAIT variant count/phase guard
	cond  *sync.Cond
	waitN uint32
	waitP int32
}

// NewGroup constructs a group of the given nominal size and barrier
// flavor. size must be >= 1.
func NewGroup(id string, size uint32, kind api.BarrierKind) *Group {
	g := &Group{ID: id, Size: size, Kind: kind}
	g.cond = sync.NewCond(&g.mu)
	return g
}

// JoinGroup atomically returns the next rank (the pre-increment value of
// rankToken).
func (g *Group) JoinGroup() uint32 {
	return uint32(atomics.FetchAndAdd64(&g.rankToken, 1))
}

// LeaveGroup atomically decrements rankToken.
func (g *Group) LeaveGroup() {
	atomics.FetchAndAdd64(&g.rankToken, ^uint64(0))
}

// Barrier performs one collective synchronization round. progress is
// invoked on every spin iteration of a BarrierSteal group instead of
// idling; SPIN and WAIT groups ignore it. A group of size <= 1 returns
// immediately (spec.md boundary behavior).
func (g *Group) Barrier(progress func()) {
	if g.Size <= 1 {
		return
	}
	switch g.Kind {
	case api.BarrierSpin:
		g.spinBarrier(nil)
	case api.BarrierSteal:
		g.spinBarrier(progress)
	case api.BarrierWait:
		g.condBarrier()
	}
}

// spinBarrier implements both SPIN (progress == nil) and STEAL
// (progress != nil) variants: identical phase/count protocol, differing
// only in what the non-releaser does while the phase has not flipped.
func (g *Group) spinBarrier(progress func()) {
	for atomics.CAS32(&g.lockWord, 0, 1) != 0 {
		// spin-trylock
	}
	snapshot := atomics.ReadWithFence(&g.phase)
	g.spinN++
	if g.spinN == g.Size {
		g.spinN = 0
		atomics.WriteWithFence(&g.phase, snapshot+1)
		atomics.WriteWithFence(&g.lockWord, 0)
		return
	}
	atomics.WriteWithFence(&g.lockWord, 0)
	for atomics.ReadWithFence(&g.phase) == snapshot {
		if progress != nil {
			progress()
		}
	}
}

// condBarrier implements the WAIT variant: the non-releaser sleeps on a
// condition variable keyed by phase; the releaser broadcasts.
func (g *Group) condBarrier() {
	g.mu.Lock()
	snapshot := g.waitP
	g.waitN++
	if g.waitN == g.Size {
		g.waitN = 0
		g.waitP++
		g.cond.Broadcast()
		g.mu.Unlock()
		return
	}
	for g.waitP == snapshot {
		g.cond.Wait()
	}
	g.mu.Unlock()
}
