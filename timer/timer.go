// Package timer records named checkpoints during a single logical operation
// and answers derived-metric queries over them: elapsed time, diffs between
// checkpoints, and averages across repeated checkpoint names.
//
// A Timer measures exactly one timeline, synchronously. Instances are not
// safe for concurrent use: all methods assume exclusive, sequential access by
// one goroutine. Callers that share a timer must serialize access externally
// (see the registry package).
package timer

import (
	"errors"
	"fmt"
	"time"

	"github.com/and161185/checkpoint-timer/model"
)

var (
	ErrAlreadyRunning          = errors.New("timer already running")
	ErrNotRunning              = errors.New("timer not running")
	ErrStillRunning            = errors.New("timer still running")
	ErrReservedName            = errors.New("checkpoint names \"start\" and \"end\" are reserved")
	ErrMemoryProfilingDisabled = errors.New("memory profiling disabled")
)

// Timer is the capability surface of a checkpoint timer.
//
// Queries distinguish two failure shapes: misuse of the lifecycle state
// machine is an error, while a lookup that has no answer (unknown identifier,
// fewer than two checkpoints sharing a name) returns a nil pointer and no
// error.
type Timer interface {
	// Start discards any previously recorded checkpoints, records the
	// "start" checkpoint and flips the timer to running.
	Start() error
	// Checkpoint records a named checkpoint. The id is auto-generated
	// unless supplied via WithID.
	Checkpoint(name string, opts ...CheckpointOption) error
	// Finish records the "end" checkpoint and flips the timer to not
	// running.
	Finish() error
	// Reset clears all checkpoints and forces the timer to not running,
	// regardless of prior state.
	Reset()

	IsRunning() bool
	// Checkpoints returns the recorded checkpoints in insertion order.
	Checkpoints() []model.Checkpoint

	// Diff resolves two identifiers (checkpoint name or id, latest
	// occurrence wins) and returns to.Time minus from.Time. The sign
	// follows argument order, not chronological order. Nil when either
	// lookup misses.
	Diff(from, to string) *time.Duration
	// Time returns the start-to-end duration, exactly Diff("start","end").
	Time() (*time.Duration, error)
	// ElapsedTime returns the time since the "start" checkpoint.
	ElapsedTime() (*time.Duration, error)
	// LastCheckpointDuration returns the time since the most recent
	// checkpoint.
	LastCheckpointDuration() (*time.Duration, error)
	// AverageCheckpointTime returns the mean of the consecutive pairwise
	// deltas among checkpoints sharing name. Unrelated checkpoints
	// recorded in between do not contribute. Nil when fewer than two
	// checkpoints share the name.
	AverageCheckpointTime(name string) *time.Duration

	// MemoryDiff mirrors Diff over the recorded memory usage, in bytes.
	MemoryDiff(from, to string) (*int64, error)
	// TotalMemoryDiff returns the start-to-end memory delta.
	TotalMemoryDiff() (*int64, error)
	// LastMemoryDiff returns live memory usage minus the most recent
	// checkpoint's recorded usage.
	LastMemoryDiff() (*int64, error)
	// AverageCheckpointMemoryDiff mirrors AverageCheckpointTime over
	// recorded memory usage.
	AverageCheckpointMemoryDiff(name string) (*int64, error)
	// CurrentMemoryUsage samples live memory at call time and returns the
	// delta against the "start" checkpoint's recorded usage.
	CurrentMemoryUsage() (*int64, error)

	MemoryProfilingEnabled() bool

	// String renders the recorded checkpoints as a report. Empty while the
	// timer is running.
	fmt.Stringer
}

// Config carries construction options for a timer.
type Config struct {
	// MemoryProfiling enables per-checkpoint memory snapshots and the
	// memory-gated queries. Immutable for the instance's lifetime.
	MemoryProfiling bool
	// RenderMode selects the String() output format.
	RenderMode model.Mode
}

// Option mutates Config.
type Option func(*Config)

// WithMemoryProfiling enables memory snapshots for every checkpoint.
func WithMemoryProfiling() Option {
	return func(c *Config) { c.MemoryProfiling = true }
}

// WithRenderMode sets the String() output format. The mode is injected by
// the caller; the timer never inspects the environment to pick one.
func WithRenderMode(m model.Mode) Option {
	return func(c *Config) { c.RenderMode = m }
}

type checkpointConfig struct {
	id string
}

// CheckpointOption mutates per-checkpoint settings.
type CheckpointOption func(*checkpointConfig)

// WithID supplies a custom checkpoint id. Uniqueness is the caller's
// responsibility: colliding ids resolve to the most recently recorded match
// in all lookups.
func WithID(id string) CheckpointOption {
	return func(c *checkpointConfig) { c.id = id }
}
