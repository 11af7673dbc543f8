package pipeline

import (
	"sync"

	"github.com/feedguard/feedguard/internal/model"
)

// Metrics tracks pipeline activity counters. Safe for concurrent use.
type Metrics struct {
	mu            sync.Mutex
	runs          int64
	failures      int64
	stageFailures map[model.Stage]int64
	actions       map[model.Action]int64
}

// NewMetrics creates an empty metrics set
func NewMetrics() *Metrics {
	return &Metrics{
		stageFailures: make(map[model.Stage]int64),
		actions:       make(map[model.Action]int64),
	}
}

func (m *Metrics) recordRun(action model.Action) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs++
	m.actions[action]++
}

func (m *Metrics) recordFailure(stage model.Stage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs++
	m.failures++
	m.stageFailures[stage]++
}

// Snapshot returns a copy of the current counters
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := MetricsSnapshot{
		Runs:          m.runs,
		Failures:      m.failures,
		StageFailures: make(map[model.Stage]int64, len(m.stageFailures)),
		Actions:       make(map[model.Action]int64, len(m.actions)),
	}
	for k, v := range m.stageFailures {
		snap.StageFailures[k] = v
	}
	for k, v := range m.actions {
		snap.Actions[k] = v
	}
	return snap
}

// Reset zeroes all counters
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = 0
	m.failures = 0
	m.stageFailures = make(map[model.Stage]int64)
	m.actions = make(map[model.Action]int64)
}

// MetricsSnapshot is a point-in-time copy of the counters
type MetricsSnapshot struct {
	Runs          int64                  `json:"analyses_total"`
	Failures      int64                  `json:"failures_total"`
	StageFailures map[model.Stage]int64  `json:"failures_by_stage"`
	Actions       map[model.Action]int64 `json:"interventions_by_type"`
}
