// Package render turns a finished timer's checkpoint sequence into
// human-readable tables: a per-checkpoint detail table and a per-name
// average table, serialized as fixed-width text or HTML.
//
// The renderer is a pure function of the checkpoint data and an injected
// output mode; it never inspects the environment to decide how to render.
package render

import (
	"errors"
	"time"

	"github.com/and161185/checkpoint-timer/model"
)

// ErrNotFinished is returned when report data is requested while the bound
// timer is still running.
var ErrNotFinished = errors.New("timer not finished")

// Source is the read-only query surface the renderer needs from a timer.
type Source interface {
	IsRunning() bool
	Checkpoints() []model.Checkpoint
	AverageCheckpointTime(name string) *time.Duration
	AverageCheckpointMemoryDiff(name string) (*int64, error)
	MemoryProfilingEnabled() bool
}

// Renderer formats the checkpoints of a single timer. It holds a non-owning
// reference to the timer plus formatting constants; it keeps no other state.
type Renderer struct {
	src Source

	mode         model.Mode
	milliseconds bool
	includeCSS   bool
	minColWidth  int
	maxColWidth  int
}

// Option mutates renderer settings.
type Option func(*Renderer)

// WithMode selects text or HTML output for String.
func WithMode(m model.Mode) Option {
	return func(r *Renderer) { r.mode = m }
}

// WithMilliseconds formats durations as milliseconds with one decimal place
// instead of seconds with four.
func WithMilliseconds() Option {
	return func(r *Renderer) { r.milliseconds = true }
}

// WithCSS controls whether HTML output is prefixed with a generated
// stylesheet block. Enabled by default.
func WithCSS(enabled bool) Option {
	return func(r *Renderer) { r.includeCSS = enabled }
}

// WithMaxColumnWidth caps the width of text-table columns. Names exceeding
// the cap are truncated with a trailing ellipsis.
func WithMaxColumnWidth(w int) Option {
	return func(r *Renderer) { r.maxColWidth = w }
}

// New binds a renderer to src.
func New(src Source, opts ...Option) *Renderer {
	r := &Renderer{
		src:         src,
		mode:        model.ModeTerminal,
		includeCSS:  true,
		minColWidth: 8,
		maxColWidth: 40,
	}
	for _, o := range opts {
		if o != nil {
			o(r)
		}
	}
	return r
}

// FormattedData computes the per-checkpoint detail rows. The first row (the
// "start" checkpoint) always reports zero duration and percent; every row
// reports elapsed time against the first checkpoint.
func (r *Renderer) FormattedData() ([]model.Row, error) {
	if r.src.IsRunning() {
		return nil, ErrNotFinished
	}
	cps := r.src.Checkpoints()
	if len(cps) == 0 {
		return nil, nil
	}

	total := cps[len(cps)-1].Time.Sub(cps[0].Time)

	rows := make([]model.Row, 0, len(cps))
	for i, cp := range cps {
		row := model.Row{Name: cp.Name, MemoryPeak: cp.MemoryPeak}
		if i > 0 {
			prev := cps[i-1]
			row.Duration = cp.Time.Sub(prev.Time)
			if total > 0 {
				row.Percent = float64(row.Duration) / float64(total) * 100
			}
			row.Elapsed = cp.Time.Sub(cps[0].Time)
			if cp.Memory != nil && prev.Memory != nil {
				d := *cp.Memory - *prev.Memory
				row.MemoryDiff = &d
			}
		} else if cp.Memory != nil {
			var zero int64
			row.MemoryDiff = &zero
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// AverageData computes per-name aggregates over the distinct checkpoint
// names, excluding the synthetic "start" and "end" checkpoints, in order of
// first appearance.
func (r *Renderer) AverageData() ([]model.AverageRow, error) {
	if r.src.IsRunning() {
		return nil, ErrNotFinished
	}

	memEnabled := r.src.MemoryProfilingEnabled()

	var names []string
	counts := make(map[string]int)
	for _, cp := range r.src.Checkpoints() {
		if cp.Name == model.CheckpointStart || cp.Name == model.CheckpointEnd {
			continue
		}
		if counts[cp.Name] == 0 {
			names = append(names, cp.Name)
		}
		counts[cp.Name]++
	}

	rows := make([]model.AverageRow, 0, len(names))
	for _, name := range names {
		row := model.AverageRow{
			Name:            name,
			Count:           counts[name],
			AverageDuration: r.src.AverageCheckpointTime(name),
			MemoryEnabled:   memEnabled,
		}
		if memEnabled {
			avg, err := r.src.AverageCheckpointMemoryDiff(name)
			if err == nil {
				row.AverageMemoryDiff = avg
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// String renders the full report in the configured mode. Empty while the
// bound timer is still running or when rendering fails.
func (r *Renderer) String() string {
	if r.src.IsRunning() {
		return ""
	}
	var out string
	var err error
	if r.mode == model.ModeMarkup {
		out, err = r.HTML()
	} else {
		out, err = r.Text()
	}
	if err != nil {
		return ""
	}
	return out
}
