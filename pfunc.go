package pfunc

import (
	"github.com/momentics/pfunc/api"
	"github.com/momentics/pfunc/internal/core"
	"github.com/momentics/pfunc/internal/pfconfig"
	"github.com/momentics/pfunc/internal/taskmgr"
)

// Type aliases bring the core runtime vocabulary to the package root, so
// callers never import internal/core or api directly.
type (
	Task        = core.Task
	Attribute   = core.Attribute
	Group       = core.Group
	TaskContext = core.TaskContext
	Functor     = core.Functor
	Policy      = api.Policy
	BarrierKind = api.BarrierKind
	Error       = api.Error
	ErrorCode   = api.ErrorCode
	Config      = pfconfig.Config
)

// Policy values.
const (
	Cilk = api.Cilk
	Fifo = api.Fifo
	Lifo = api.Lifo
	Prio = api.Prio
)

// BarrierKind values.
const (
	BarrierSpin  = api.BarrierSpin
	BarrierWait  = api.BarrierWait
	BarrierSteal = api.BarrierSteal
)

// CurrentQueue is the sentinel Attribute.QueueNumber meaning "wherever
// the spawning call originates from" - the spawning worker's own
// primary queue, or a round-robin pick for a non-worker caller.
const CurrentQueue = api.CurrentQueue

// Error kinds.
const (
	ErrCodeInvalidArguments = api.ErrCodeInvalidArguments
	ErrCodeOutOfMemory      = api.ErrCodeOutOfMemory
	ErrCodeSystemError      = api.ErrCodeSystemError
	ErrCodeTaskError        = api.ErrCodeTaskError
	ErrCodeUninitialized    = api.ErrCodeUninitialized
)

// Sentinel errors.
var (
	ErrUninitialized  = api.ErrUninitialized
	ErrManagerClosed  = api.ErrManagerClosed
	ErrInvalidQueue   = api.ErrInvalidQueue
	ErrDoubleNotify   = api.ErrDoubleNotify
	ErrWaitAfterDrain = api.ErrWaitAfterDrain
)

// NewAttribute returns the default Attribute: current queue, minimum
// priority (math.MinInt), one waiter, nested (testable) completion, ungrouped, level zero.
func NewAttribute() Attribute { return core.DefaultAttribute() }

// NewGroup constructs a barrier group of the given nominal size and
// flavor. size must be >= 1.
func NewGroup(id string, size uint32, kind BarrierKind) *Group {
	return core.NewGroup(id, size, kind)
}

// TaskManager is the task-parallel runtime facade: a worker pool over a
// task queue set, exposing Spawn/Wait/Test/WaitAll/WaitAny/TestAll,
// SetMaxAttempts and Close.
type TaskManager struct {
	*taskmgr.Manager
}

// New constructs a TaskManager and blocks until every worker has
// started.
func New(opts ...Option) (*TaskManager, error) {
	m, err := taskmgr.New(opts...)
	if err != nil {
		return nil, err
	}
	return &TaskManager{m}, nil
}

// NewFromConfig builds a TaskManager from a loaded Config, with opts
// applied (and able to override config-derived settings) afterward.
func NewFromConfig(cfg Config, opts ...Option) (*TaskManager, error) {
	m, err := taskmgr.NewFromConfig(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &TaskManager{m}, nil
}

// LoadConfig reads a construction profile from a YAML file, or returns
// the built-in defaults for an empty or unreadable path.
func LoadConfig(path string) Config {
	return pfconfig.Load(path)
}
