// Package parallel offers thin generic helpers built on top of the
// public pfunc.TaskManager API: ParallelFor, ParallelReduce and
// ParallelWhile - recursive range bisection spawning one half and
// executing the other inline, or one task per input item. This package
// is example-program material layered on the runtime, not part of the
// runtime itself.
//
// License: Apache-2.0
package parallel

import "github.com/momentics/pfunc"

// Runner is satisfied by both *pfunc.TaskManager and *pfunc.TaskContext:
// it lets these helpers spawn and wait on nested tasks identically
// whether called from ordinary code or from inside a running task.
type Runner interface {
	Spawn(t *pfunc.Task, attr pfunc.Attribute, group *pfunc.Group, fn pfunc.Functor) error
	Wait(t *pfunc.Task) error
}

var _ Runner = (*pfunc.TaskManager)(nil)
var _ Runner = (*pfunc.TaskContext)(nil)

func nestedAttr() pfunc.Attribute {
	return pfunc.NewAttribute().WithNested(true)
}

// ParallelFor recursively bisects [lo, hi) until a subrange is no
// larger than grain, spawning the right half and running the left half
// inline, then waiting - the same split-spawn-recurse-wait shape as the
// original parallel_for, generalized from a Space/arity model to a
// plain integer range.
func ParallelFor(r Runner, lo, hi, grain int, body func(lo, hi int)) error {
	if grain < 1 {
		grain = 1
	}
	if hi-lo <= grain {
		body(lo, hi)
		return nil
	}
	mid := lo + (hi-lo)/2

	var right pfunc.Task
	if err := r.Spawn(&right, nestedAttr(), nil, func(ctx *pfunc.TaskContext) error {
		return ParallelFor(ctx, mid, hi, grain, body)
	}); err != nil {
		return err
	}

	if err := ParallelFor(r, lo, mid, grain, body); err != nil {
		return err
	}
	return r.Wait(&right)
}

// ParallelReduce is ParallelFor with a combiner: body computes a
// partial result over a leaf subrange seeded with identity, and
// combine merges a left result with a right result. The merge order is
// always (left, right), matching a left-to-right fold.
func ParallelReduce[T any](r Runner, lo, hi, grain int, identity T, body func(lo, hi int, acc T) T, combine func(left, right T) T) (T, error) {
	if grain < 1 {
		grain = 1
	}
	if hi-lo <= grain {
		return body(lo, hi, identity), nil
	}
	mid := lo + (hi-lo)/2

	var right pfunc.Task
	var rightResult T
	if err := r.Spawn(&right, nestedAttr(), nil, func(ctx *pfunc.TaskContext) error {
		res, err := ParallelReduce(ctx, mid, hi, grain, identity, body, combine)
		rightResult = res
		return err
	}); err != nil {
		return identity, err
	}

	leftResult, err := ParallelReduce(r, lo, mid, grain, identity, body, combine)
	if err != nil {
		return identity, err
	}
	if err := r.Wait(&right); err != nil {
		return identity, err
	}
	return combine(leftResult, rightResult), nil
}

// ParallelWhile spawns one task per item in items, runs body on each,
// and waits for all of them - the same "one task per input element,
// then wait_all" shape as the original parallel_while, generalized from
// an InputIterator range to a plain slice.
func ParallelWhile[T any](r Runner, items []T, body func(item T)) error {
	tasks := make([]pfunc.Task, len(items))
	for i := range items {
		item := items[i]
		if err := r.Spawn(&tasks[i], nestedAttr(), nil, func(ctx *pfunc.TaskContext) error {
			body(item)
			return nil
		}); err != nil {
			return err
		}
	}
	var firstErr error
	for i := range tasks {
		if err := r.Wait(&tasks[i]); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
