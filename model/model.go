// Package model contains core data types for the project.
package model

import "time"

// Reserved checkpoint names. They are produced by the timer lifecycle
// transitions only; user-supplied names must never collide with them.
const (
	CheckpointStart = "start"
	CheckpointEnd   = "end"
)

// Mode selects the rendering target for reports.
type Mode string

const (
	ModeTerminal Mode = "terminal" // ModeTerminal renders fixed-width text tables.
	ModeMarkup   Mode = "markup"   // ModeMarkup renders HTML tables.
)

// Checkpoint represents a single recorded instant. Immutable once recorded.
type Checkpoint struct {
	Name       string    // Semantic label, not required to be unique.
	ID         string    // Unique identifier; auto-generated when not supplied.
	Time       time.Time // Capture time; carries the monotonic clock reading.
	Memory     *int64    // Process memory usage in bytes, nil unless memory profiling is enabled.
	MemoryPeak *int64    // Peak process memory usage in bytes, same gating as Memory.
}

// Row is one line of the per-checkpoint report table.
type Row struct {
	Name       string
	Duration   time.Duration // Time since the previous checkpoint; zero for the "start" row.
	Elapsed    time.Duration // Time since the "start" checkpoint.
	Percent    float64       // Duration as a share of total time, 0..100.
	MemoryDiff *int64        // Memory delta against the previous checkpoint.
	MemoryPeak *int64
}

// AverageRow is one line of the per-name aggregate table.
type AverageRow struct {
	Name              string
	Count             int            // Number of checkpoints recorded under Name.
	AverageDuration   *time.Duration // nil when fewer than two occurrences.
	AverageMemoryDiff *int64         // nil when fewer than two occurrences or no memory data.
	MemoryEnabled     bool
}
