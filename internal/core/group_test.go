package core

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/momentics/pfunc/api"
)

func TestJoinLeaveGroupRoundTrip(t *testing.T) {
	g := NewGroup("g", 4, api.BarrierSpin)
	r0 := g.JoinGroup()
	r1 := g.JoinGroup()
	if r0 != 0 || r1 != 1 {
		t.Fatalf("ranks = (%d, %d), want (0, 1)", r0, r1)
	}
	g.LeaveGroup()
	g.LeaveGroup()
	// rankToken must return to its prior value (0) once every joiner
	// has left (spec.md §8 round-trip property).
	r2 := g.JoinGroup()
	if r2 != 0 {
		t.Fatalf("rank after round trip = %d, want 0", r2)
	}
}

func TestBarrierSizeOneIsNoOp(t *testing.T) {
	g := NewGroup("solo", 1, api.BarrierSpin)
	done := make(chan struct{})
	go func() {
		g.Barrier(nil)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Barrier on a size-1 group must return immediately")
	}
	<-done
}

func TestSpinBarrierReleasesAllMembers(t *testing.T) {
	const n = 8
	g := NewGroup("spin", n, api.BarrierSpin)
	var before, after int32
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			atomic.AddInt32(&before, 1)
			g.Barrier(nil)
			// Every participant's pre-barrier increment of `before`
			// must be visible to every participant after the barrier.
			if atomic.LoadInt32(&before) != n {
				t.Errorf("before = %d after barrier, want %d", atomic.LoadInt32(&before), n)
			}
			atomic.AddInt32(&after, 1)
		}()
	}
	wg.Wait()
	if after != n {
		t.Fatalf("after = %d, want %d", after, n)
	}
}

func TestWaitBarrierReleasesAllMembers(t *testing.T) {
	const n = 6
	g := NewGroup("wait", n, api.BarrierWait)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			g.Barrier(nil)
		}()
	}
	wg.Wait()
}

func TestStealBarrierInvokesProgress(t *testing.T) {
	const n = 3
	g := NewGroup("steal", n, api.BarrierSteal)
	var spins int32
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n-1; i++ {
		go func() {
			defer wg.Done()
			g.Barrier(func() { atomic.AddInt32(&spins, 1) })
		}()
	}
	// The last member arrives only once a non-releasing member has spun
	// through progress, so it is always the releaser.
	go func() {
		defer wg.Done()
		for atomic.LoadInt32(&spins) == 0 {
			runtime.Gosched()
		}
		g.Barrier(func() { atomic.AddInt32(&spins, 1) })
	}()
	wg.Wait()
	if atomic.LoadInt32(&spins) == 0 {
		t.Fatal("progress was never invoked by a waiting STEAL barrier member")
	}
}
