// Package pfunc is a task-parallel execution runtime: a fixed pool of
// worker goroutines draining a policy-selected task queue set (LIFO,
// FIFO, priority, or Cilk-style work-stealing), with completion events,
// task groups, and collective barriers layered on top.
//
// A functor running inside a task never reaches for implicit global
// state; instead it receives a *TaskContext carrying its thread id,
// group rank/size, and nested Spawn/Wait/Test/Barrier operations bound
// to its own worker.
//
// License: Apache-2.0
package pfunc
