package timer

import (
	"time"

	"github.com/and161185/checkpoint-timer/model"
)

// NoopTimer is a drop-in Timer that records nothing. Mutating operations are
// no-ops that never fail, every query returns the empty answer, and String
// renders nothing. It disables instrumentation without call-site branching.
type NoopTimer struct{}

// NewNoop constructs a NoopTimer.
func NewNoop() *NoopTimer { return &NoopTimer{} }

func (*NoopTimer) Start() error                                       { return nil }
func (*NoopTimer) Checkpoint(string, ...CheckpointOption) error       { return nil }
func (*NoopTimer) Finish() error                                      { return nil }
func (*NoopTimer) Reset()                                             {}
func (*NoopTimer) IsRunning() bool                                    { return false }
func (*NoopTimer) Checkpoints() []model.Checkpoint                    { return nil }
func (*NoopTimer) Diff(string, string) *time.Duration                 { return nil }
func (*NoopTimer) Time() (*time.Duration, error)                      { return nil, nil }
func (*NoopTimer) ElapsedTime() (*time.Duration, error)               { return nil, nil }
func (*NoopTimer) LastCheckpointDuration() (*time.Duration, error)    { return nil, nil }
func (*NoopTimer) AverageCheckpointTime(string) *time.Duration        { return nil }
func (*NoopTimer) MemoryDiff(string, string) (*int64, error)          { return nil, nil }
func (*NoopTimer) TotalMemoryDiff() (*int64, error)                   { return nil, nil }
func (*NoopTimer) LastMemoryDiff() (*int64, error)                    { return nil, nil }
func (*NoopTimer) AverageCheckpointMemoryDiff(string) (*int64, error) { return nil, nil }
func (*NoopTimer) CurrentMemoryUsage() (*int64, error)                { return nil, nil }
func (*NoopTimer) MemoryProfilingEnabled() bool                       { return false }
func (*NoopTimer) String() string                                     { return "" }
