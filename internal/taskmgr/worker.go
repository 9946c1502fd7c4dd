package taskmgr

import (
	"runtime"

	"go.uber.org/zap"

	"github.com/momentics/pfunc/affinity"
	"github.com/momentics/pfunc/internal/queueset"
)

// worker owns exactly one primary queue and runs the primary work loop:
// pull a task under the Regular predicate, run it, repeat, until the
// manager closes. Its only mutable, goroutine-local state is what it
// keeps on its own stack - the struct itself is written once at
// construction and read-only for the rest of its life.
type worker struct {
	id           int
	primaryQueue int
	mgr          *Manager
}

// run is the primary work loop (component 4.E's outermost scheduling
// tier). It optionally pins its carrier OS thread before reporting
// start-up completion, then loops pulling and running Regular-family
// tasks from its own queue until getTaskWithBackoff observes shutdown.
func (w *worker) run() {
	defer w.mgr.wg.Done()

	if w.mgr.affinity {
		runtime.LockOSThread()
		cpu := w.id % runtime.NumCPU()
		var err error
		if len(w.mgr.affinityMap) > 0 {
			cpu = w.mgr.affinityMap[w.id%len(w.mgr.affinityMap)]
			err = affinity.SetAffinity(cpu)
		} else {
			err = affinity.PinWorker(w.id)
		}
		if err != nil {
			w.mgr.logger.Warn("cpu affinity pin failed",
				zap.Int("worker", w.id), zap.Int("cpu", cpu), zap.Error(err))
		}
	}
	w.mgr.startupWG.Done()

	stop := func() bool { return w.mgr.closed.Load() }
	for {
		t := w.mgr.getTaskWithBackoff(w.primaryQueue, queueset.Regular, nil, stop)
		if t == nil {
			return
		}
		w.mgr.runTask(w.id, w.primaryQueue, t)
	}
}
