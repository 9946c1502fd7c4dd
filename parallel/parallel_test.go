package parallel_test

import (
	"sync"
	"testing"

	"github.com/momentics/pfunc"
	"github.com/momentics/pfunc/parallel"
)

func newTM(t *testing.T) *pfunc.TaskManager {
	t.Helper()
	tm, err := pfunc.New(pfunc.WithNumQueues(2), pfunc.WithThreadsPerQueue(2, 2))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = tm.Close() })
	return tm
}

func TestParallelForVisitsEveryIndexExactlyOnce(t *testing.T) {
	tm := newTM(t)
	const n = 1000
	var mu sync.Mutex
	seen := make([]int, n)
	err := parallel.ParallelFor(tm, 0, n, 16, func(lo, hi int) {
		mu.Lock()
		for i := lo; i < hi; i++ {
			seen[i]++
		}
		mu.Unlock()
	})
	if err != nil {
		t.Fatalf("ParallelFor: %v", err)
	}
	for i, c := range seen {
		if c != 1 {
			t.Fatalf("index %d visited %d times, want 1", i, c)
		}
	}
}

func TestParallelReduceSum(t *testing.T) {
	tm := newTM(t)
	const n = 500
	sum, err := parallel.ParallelReduce(tm, 0, n, 8, 0,
		func(lo, hi, acc int) int {
			for i := lo; i < hi; i++ {
				acc += i
			}
			return acc
		},
		func(left, right int) int { return left + right },
	)
	if err != nil {
		t.Fatalf("ParallelReduce: %v", err)
	}
	want := n * (n - 1) / 2
	if sum != want {
		t.Fatalf("sum = %d, want %d", sum, want)
	}
}

func TestParallelWhileRunsEveryItem(t *testing.T) {
	tm := newTM(t)
	items := make([]int, 200)
	for i := range items {
		items[i] = i
	}
	var mu sync.Mutex
	var total int
	err := parallel.ParallelWhile(tm, items, func(item int) {
		mu.Lock()
		total += item
		mu.Unlock()
	})
	if err != nil {
		t.Fatalf("ParallelWhile: %v", err)
	}
	want := 0
	for _, v := range items {
		want += v
	}
	if total != want {
		t.Fatalf("total = %d, want %d", total, want)
	}
}
