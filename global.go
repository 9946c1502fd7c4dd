package pfunc

import "sync"

// Process-wide manager slot. spec.md's Design Notes recommend replacing
// a raw global pointer with an explicit, configured context plus thin
// global sugar on top - Register/Default and the package-level
// Spawn/Wait/Test/WaitAll/WaitAny/TestAll below are that sugar. There is
// no package-level Barrier: a barrier is collective over one task's
// group, reached only through that task's own *TaskContext inside its
// functor. Nothing internal to the runtime consults this slot; it
// exists purely for callers who want one implicit manager for an entire
// process.
var (
	defaultMu  sync.RWMutex
	defaultMgr *TaskManager
)

// Register installs tm as the process-wide default manager, replacing
// whatever was registered before.
func Register(tm *TaskManager) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultMgr = tm
}

// Default returns the registered manager, or ErrUninitialized if none
// has been registered yet.
func Default() (*TaskManager, error) {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	if defaultMgr == nil {
		return nil, ErrUninitialized
	}
	return defaultMgr, nil
}

// Spawn forwards to the registered manager's Spawn.
func Spawn(t *Task, attr Attribute, group *Group, fn Functor) error {
	tm, err := Default()
	if err != nil {
		return err
	}
	return tm.Spawn(t, attr, group, fn)
}

// Wait forwards to the registered manager's Wait.
func Wait(t *Task) error {
	tm, err := Default()
	if err != nil {
		return err
	}
	return tm.Wait(t)
}

// Test forwards to the registered manager's Test.
func Test(t *Task) bool {
	tm, err := Default()
	if err != nil {
		return false
	}
	return tm.Test(t)
}

// WaitAll forwards to the registered manager's WaitAll.
func WaitAll(tasks []*Task) error {
	tm, err := Default()
	if err != nil {
		return err
	}
	return tm.WaitAll(tasks)
}

// WaitAny forwards to the registered manager's WaitAny.
func WaitAny(tasks []*Task) (int, error) {
	tm, err := Default()
	if err != nil {
		return -1, err
	}
	return tm.WaitAny(tasks)
}

// TestAll forwards to the registered manager's TestAll.
func TestAll(tasks []*Task) (bool, []bool) {
	tm, err := Default()
	if err != nil {
		return false, make([]bool, len(tasks))
	}
	return tm.TestAll(tasks)
}
