package timer

import (
	"fmt"
	"time"

	"github.com/and161185/checkpoint-timer/internal/memory"
	"github.com/and161185/checkpoint-timer/model"
	"github.com/and161185/checkpoint-timer/render"
)

// BasicTimer is the standard Timer implementation. Not safe for concurrent
// use; see the package documentation.
type BasicTimer struct {
	checkpoints     []model.Checkpoint
	running         bool
	memoryProfiling bool
	renderMode      model.Mode
	seq             int

	// capture hooks, replaceable in tests
	now    func() time.Time
	sample func() (usage, peak int64)
}

// New constructs an idle timer: not running, no checkpoints.
func New(opts ...Option) *BasicTimer {
	cfg := Config{RenderMode: model.ModeTerminal}
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}
	return &BasicTimer{
		memoryProfiling: cfg.MemoryProfiling,
		renderMode:      cfg.RenderMode,
		now:             time.Now,
		sample:          memory.Sample,
	}
}

// record appends a checkpoint captured at the current instant.
func (t *BasicTimer) record(name, id string) {
	if id == "" {
		id = fmt.Sprintf("cp-%d", t.seq)
	}
	t.seq++

	cp := model.Checkpoint{Name: name, ID: id, Time: t.now()}
	if t.memoryProfiling {
		usage, peak := t.sample()
		cp.Memory = &usage
		cp.MemoryPeak = &peak
	}
	t.checkpoints = append(t.checkpoints, cp)
}

// Start implements Timer.
func (t *BasicTimer) Start() error {
	if t.running {
		return ErrAlreadyRunning
	}
	t.checkpoints = nil
	t.seq = 0
	t.record(model.CheckpointStart, "")
	t.running = true
	return nil
}

// Checkpoint implements Timer.
func (t *BasicTimer) Checkpoint(name string, opts ...CheckpointOption) error {
	if !t.running {
		return ErrNotRunning
	}
	if name == model.CheckpointStart || name == model.CheckpointEnd {
		return fmt.Errorf("%w: %q", ErrReservedName, name)
	}

	var cfg checkpointConfig
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}
	t.record(name, cfg.id)
	return nil
}

// Finish implements Timer.
func (t *BasicTimer) Finish() error {
	if !t.running {
		return ErrNotRunning
	}
	t.record(model.CheckpointEnd, "")
	t.running = false
	return nil
}

// Reset implements Timer.
func (t *BasicTimer) Reset() {
	t.checkpoints = nil
	t.seq = 0
	t.running = false
}

// IsRunning implements Timer.
func (t *BasicTimer) IsRunning() bool { return t.running }

// MemoryProfilingEnabled implements Timer.
func (t *BasicTimer) MemoryProfilingEnabled() bool { return t.memoryProfiling }

// Checkpoints returns a copy of the recorded checkpoints in insertion order.
func (t *BasicTimer) Checkpoints() []model.Checkpoint {
	out := make([]model.Checkpoint, len(t.checkpoints))
	copy(out, t.checkpoints)
	return out
}

// lookup resolves an identifier against checkpoint names and ids, scanning
// from most recent to oldest so that re-used names resolve to the latest
// occurrence.
func (t *BasicTimer) lookup(idOrName string) *model.Checkpoint {
	for i := len(t.checkpoints) - 1; i >= 0; i-- {
		cp := &t.checkpoints[i]
		if cp.Name == idOrName || cp.ID == idOrName {
			return cp
		}
	}
	return nil
}

// Diff implements Timer.
func (t *BasicTimer) Diff(from, to string) *time.Duration {
	a := t.lookup(from)
	b := t.lookup(to)
	if a == nil || b == nil {
		return nil
	}
	d := b.Time.Sub(a.Time)
	return &d
}

// Time implements Timer.
func (t *BasicTimer) Time() (*time.Duration, error) {
	if t.running {
		return nil, ErrStillRunning
	}
	return t.Diff(model.CheckpointStart, model.CheckpointEnd), nil
}

// ElapsedTime implements Timer.
func (t *BasicTimer) ElapsedTime() (*time.Duration, error) {
	if !t.running {
		return nil, ErrNotRunning
	}
	start := t.lookup(model.CheckpointStart)
	if start == nil {
		return nil, nil
	}
	d := t.now().Sub(start.Time)
	return &d, nil
}

// LastCheckpointDuration implements Timer.
func (t *BasicTimer) LastCheckpointDuration() (*time.Duration, error) {
	if !t.running {
		return nil, ErrNotRunning
	}
	if len(t.checkpoints) == 0 {
		return nil, nil
	}
	last := t.checkpoints[len(t.checkpoints)-1]
	d := t.now().Sub(last.Time)
	return &d, nil
}

// filter returns the checkpoints whose name matches exactly, order preserved.
func (t *BasicTimer) filter(name string) []model.Checkpoint {
	var out []model.Checkpoint
	for _, cp := range t.checkpoints {
		if cp.Name == name {
			out = append(out, cp)
		}
	}
	return out
}

// AverageCheckpointTime implements Timer.
func (t *BasicTimer) AverageCheckpointTime(name string) *time.Duration {
	matched := t.filter(name)
	if len(matched) < 2 {
		return nil
	}
	var sum time.Duration
	for i := 1; i < len(matched); i++ {
		sum += matched[i].Time.Sub(matched[i-1].Time)
	}
	avg := sum / time.Duration(len(matched)-1)
	return &avg
}

// MemoryDiff implements Timer.
func (t *BasicTimer) MemoryDiff(from, to string) (*int64, error) {
	if !t.memoryProfiling {
		return nil, ErrMemoryProfilingDisabled
	}
	a := t.lookup(from)
	b := t.lookup(to)
	if a == nil || b == nil || a.Memory == nil || b.Memory == nil {
		return nil, nil
	}
	d := *b.Memory - *a.Memory
	return &d, nil
}

// TotalMemoryDiff implements Timer.
func (t *BasicTimer) TotalMemoryDiff() (*int64, error) {
	if !t.memoryProfiling {
		return nil, ErrMemoryProfilingDisabled
	}
	if t.running {
		return nil, ErrStillRunning
	}
	return t.MemoryDiff(model.CheckpointStart, model.CheckpointEnd)
}

// LastMemoryDiff implements Timer.
func (t *BasicTimer) LastMemoryDiff() (*int64, error) {
	if !t.memoryProfiling {
		return nil, ErrMemoryProfilingDisabled
	}
	if !t.running {
		return nil, ErrNotRunning
	}
	if len(t.checkpoints) == 0 {
		return nil, nil
	}
	last := t.checkpoints[len(t.checkpoints)-1]
	if last.Memory == nil {
		return nil, nil
	}
	usage, _ := t.sample()
	d := usage - *last.Memory
	return &d, nil
}

// AverageCheckpointMemoryDiff implements Timer.
func (t *BasicTimer) AverageCheckpointMemoryDiff(name string) (*int64, error) {
	if !t.memoryProfiling {
		return nil, ErrMemoryProfilingDisabled
	}
	matched := t.filter(name)
	if len(matched) < 2 {
		return nil, nil
	}
	var sum int64
	for i := 1; i < len(matched); i++ {
		if matched[i].Memory == nil || matched[i-1].Memory == nil {
			return nil, nil
		}
		sum += *matched[i].Memory - *matched[i-1].Memory
	}
	avg := sum / int64(len(matched)-1)
	return &avg, nil
}

// CurrentMemoryUsage implements Timer.
func (t *BasicTimer) CurrentMemoryUsage() (*int64, error) {
	if !t.memoryProfiling {
		return nil, ErrMemoryProfilingDisabled
	}
	if !t.running {
		return nil, ErrNotRunning
	}
	start := t.lookup(model.CheckpointStart)
	if start == nil || start.Memory == nil {
		return nil, nil
	}
	usage, _ := t.sample()
	d := usage - *start.Memory
	return &d, nil
}

// String renders the report in the timer's configured mode. Empty while the
// timer is running.
func (t *BasicTimer) String() string {
	if t.running {
		return ""
	}
	return render.New(t, render.WithMode(t.renderMode)).String()
}
