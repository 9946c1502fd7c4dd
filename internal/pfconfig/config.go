// Package pfconfig loads a TaskManager's default construction profile
// from YAML, the way KnightChaser-vrunq's internal/sched/config.go loads
// its scheduler tuning knobs: sane defaults, overridden only by whatever
// the file actually specifies, with nonsense values clamped back to a
// default rather than propagated into the runtime.
//
// License: Apache-2.0
package pfconfig

import (
	"os"
	"runtime"

	yaml "github.com/goccy/go-yaml"

	"github.com/momentics/pfunc/api"
)

// Config is a TaskManager's construction profile.
type Config struct {
	NumQueues       int        `yaml:"num_queues"`
	ThreadsPerQueue int        `yaml:"threads_per_queue"`
	MaxAttempts     int        `yaml:"max_attempts"`
	Policy          api.Policy `yaml:"-"`
	PolicyName      string     `yaml:"policy"`
	Affinity        bool       `yaml:"affinity"`
}

// defaultConfig mirrors spec.md's attempt-bound default (2,000,000) and
// picks one thread per logical CPU, one queue per thread group.
func defaultConfig() Config {
	return Config{
		NumQueues:       runtime.NumCPU(),
		ThreadsPerQueue: 1,
		MaxAttempts:     2_000_000,
		Policy:          api.Cilk,
		PolicyName:      "cilk",
		Affinity:        false,
	}
}

// Load reads a YAML profile and overrides defaults; an empty path or a
// missing file yields defaults only, never an error.
func Load(path string) Config {
	cfg := defaultConfig()
	if path == "" {
		return cfg
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}
	_ = yaml.Unmarshal(data, &cfg)

	// sanity clamps
	if cfg.NumQueues <= 0 {
		cfg.NumQueues = defaultConfig().NumQueues
	}
	if cfg.ThreadsPerQueue <= 0 {
		cfg.ThreadsPerQueue = 1
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 2_000_000
	}
	cfg.Policy = parsePolicy(cfg.PolicyName)
	return cfg
}

func parsePolicy(name string) api.Policy {
	switch name {
	case "fifo":
		return api.Fifo
	case "lifo":
		return api.Lifo
	case "prio":
		return api.Prio
	case "cilk", "":
		return api.Cilk
	default:
		return api.Cilk
	}
}
