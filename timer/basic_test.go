package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/and161185/checkpoint-timer/model"
)

// fakeEnv replaces the timer's capture hooks with deterministic values.
type fakeEnv struct {
	now   time.Time
	usage int64
	peak  int64
}

func (e *fakeEnv) advance(d time.Duration) { e.now = e.now.Add(d) }

func newTestTimer(opts ...Option) (*BasicTimer, *fakeEnv) {
	env := &fakeEnv{now: time.Unix(1700000000, 0)}
	tm := New(opts...)
	tm.now = func() time.Time { return env.now }
	tm.sample = func() (int64, int64) { return env.usage, env.peak }
	return tm, env
}

func TestStartFinish_RecordsBoundaryCheckpoints(t *testing.T) {
	tm, _ := newTestTimer()

	require.NoError(t, tm.Start())
	require.True(t, tm.IsRunning())
	require.NoError(t, tm.Finish())
	require.False(t, tm.IsRunning())

	cps := tm.Checkpoints()
	require.Len(t, cps, 2)
	require.Equal(t, model.CheckpointStart, cps[0].Name)
	require.Equal(t, model.CheckpointEnd, cps[1].Name)
}

func TestStart_AlreadyRunning(t *testing.T) {
	tm, _ := newTestTimer()

	require.NoError(t, tm.Start())
	require.ErrorIs(t, tm.Start(), ErrAlreadyRunning)
}

func TestStart_DiscardsPreviousRun(t *testing.T) {
	tm, _ := newTestTimer()

	require.NoError(t, tm.Start())
	require.NoError(t, tm.Checkpoint("op"))
	require.NoError(t, tm.Finish())
	require.Len(t, tm.Checkpoints(), 3)

	require.NoError(t, tm.Start())
	cps := tm.Checkpoints()
	require.Len(t, cps, 1)
	require.Equal(t, model.CheckpointStart, cps[0].Name)
}

func TestCheckpoint_NotRunning(t *testing.T) {
	tm, _ := newTestTimer()

	require.ErrorIs(t, tm.Checkpoint("op"), ErrNotRunning)

	require.NoError(t, tm.Start())
	require.NoError(t, tm.Finish())
	require.ErrorIs(t, tm.Checkpoint("op"), ErrNotRunning)
}

func TestCheckpoint_ReservedNames(t *testing.T) {
	tm, _ := newTestTimer()
	require.NoError(t, tm.Start())

	require.ErrorIs(t, tm.Checkpoint(model.CheckpointStart), ErrReservedName)
	require.ErrorIs(t, tm.Checkpoint(model.CheckpointEnd), ErrReservedName)
	require.Len(t, tm.Checkpoints(), 1)
}

func TestCheckpoint_IDs(t *testing.T) {
	tm, _ := newTestTimer()
	require.NoError(t, tm.Start())
	require.NoError(t, tm.Checkpoint("op"))
	require.NoError(t, tm.Checkpoint("op", WithID("custom")))

	cps := tm.Checkpoints()
	require.Equal(t, "cp-1", cps[1].ID)
	require.Equal(t, "custom", cps[2].ID)
}

func TestFinish_NotRunning(t *testing.T) {
	tm, _ := newTestTimer()
	require.ErrorIs(t, tm.Finish(), ErrNotRunning)
}

func TestReset(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(tm *BasicTimer)
	}{
		{"before_start", func(tm *BasicTimer) {}},
		{"mid_run", func(tm *BasicTimer) {
			_ = tm.Start()
			_ = tm.Checkpoint("op")
		}},
		{"after_finish", func(tm *BasicTimer) {
			_ = tm.Start()
			_ = tm.Finish()
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm, _ := newTestTimer()
			tt.prepare(tm)

			tm.Reset()

			require.False(t, tm.IsRunning())
			require.Empty(t, tm.Checkpoints())
		})
	}
}

func TestDiff_SignFollowsArgumentOrder(t *testing.T) {
	tm, env := newTestTimer()
	require.NoError(t, tm.Start())
	require.NoError(t, tm.Checkpoint("a"))
	env.advance(250 * time.Millisecond)
	require.NoError(t, tm.Checkpoint("b"))

	forward := tm.Diff("a", "b")
	backward := tm.Diff("b", "a")
	require.NotNil(t, forward)
	require.NotNil(t, backward)
	require.Equal(t, 250*time.Millisecond, *forward)
	require.Equal(t, -*forward, *backward)
}

func TestDiff_LatestOccurrenceWins(t *testing.T) {
	tm, env := newTestTimer()
	require.NoError(t, tm.Start())
	require.NoError(t, tm.Checkpoint("loop"))
	env.advance(time.Second)
	require.NoError(t, tm.Checkpoint("mark"))
	env.advance(time.Second)
	require.NoError(t, tm.Checkpoint("loop"))

	// "loop" resolves to its latest occurrence, one second after "mark"
	d := tm.Diff("mark", "loop")
	require.NotNil(t, d)
	require.Equal(t, time.Second, *d)
}

func TestDiff_MatchesByID(t *testing.T) {
	tm, env := newTestTimer()
	require.NoError(t, tm.Start())
	require.NoError(t, tm.Checkpoint("op", WithID("first")))
	env.advance(3 * time.Second)
	require.NoError(t, tm.Checkpoint("op", WithID("second")))

	d := tm.Diff("first", "second")
	require.NotNil(t, d)
	require.Equal(t, 3*time.Second, *d)
}

func TestDiff_UnknownIdentifier(t *testing.T) {
	tm, _ := newTestTimer()
	require.NoError(t, tm.Start())
	require.NoError(t, tm.Checkpoint("a"))

	require.Nil(t, tm.Diff("a", "missing"))
	require.Nil(t, tm.Diff("missing", "a"))
}

func TestTime(t *testing.T) {
	tm, env := newTestTimer()

	// fresh timer: not running, no checkpoints, no answer
	v, err := tm.Time()
	require.NoError(t, err)
	require.Nil(t, v)

	require.NoError(t, tm.Start())
	_, err = tm.Time()
	require.ErrorIs(t, err, ErrStillRunning)

	env.advance(42 * time.Millisecond)
	require.NoError(t, tm.Finish())

	v, err = tm.Time()
	require.NoError(t, err)
	require.NotNil(t, v)

	d := tm.Diff(model.CheckpointStart, model.CheckpointEnd)
	require.NotNil(t, d)
	require.Equal(t, *d, *v)
}

func TestElapsedTime(t *testing.T) {
	tm, env := newTestTimer()

	_, err := tm.ElapsedTime()
	require.ErrorIs(t, err, ErrNotRunning)

	require.NoError(t, tm.Start())
	env.advance(1500 * time.Millisecond)

	v, err := tm.ElapsedTime()
	require.NoError(t, err)
	require.NotNil(t, v)
	require.Equal(t, 1500*time.Millisecond, *v)
}

func TestLastCheckpointDuration(t *testing.T) {
	tm, env := newTestTimer()

	_, err := tm.LastCheckpointDuration()
	require.ErrorIs(t, err, ErrNotRunning)

	require.NoError(t, tm.Start())
	env.advance(time.Second)
	require.NoError(t, tm.Checkpoint("op"))
	env.advance(200 * time.Millisecond)

	v, err := tm.LastCheckpointDuration()
	require.NoError(t, err)
	require.NotNil(t, v)
	require.Equal(t, 200*time.Millisecond, *v)
}

func TestAverageCheckpointTime(t *testing.T) {
	tm, env := newTestTimer()
	require.NoError(t, tm.Start())

	// "op" at relative times 0ms, +1ms, +3ms, +6ms with unrelated
	// checkpoints interleaved; intervals 1ms, 2ms, 3ms, mean 2ms.
	require.NoError(t, tm.Checkpoint("op"))
	env.advance(500 * time.Microsecond)
	require.NoError(t, tm.Checkpoint("unrelated"))
	env.advance(500 * time.Microsecond)
	require.NoError(t, tm.Checkpoint("op"))
	env.advance(2 * time.Millisecond)
	require.NoError(t, tm.Checkpoint("op"))
	env.advance(time.Millisecond)
	require.NoError(t, tm.Checkpoint("unrelated"))
	env.advance(2 * time.Millisecond)
	require.NoError(t, tm.Checkpoint("op"))

	avg := tm.AverageCheckpointTime("op")
	require.NotNil(t, avg)
	require.Equal(t, 2*time.Millisecond, *avg)
}

func TestAverageCheckpointTime_TooFewMatches(t *testing.T) {
	tm, _ := newTestTimer()
	require.NoError(t, tm.Start())
	require.NoError(t, tm.Checkpoint("op"))

	require.Nil(t, tm.AverageCheckpointTime("op"))
	require.Nil(t, tm.AverageCheckpointTime("missing"))
}

func TestMemoryQueries_Disabled(t *testing.T) {
	tm, _ := newTestTimer()
	require.NoError(t, tm.Start())
	require.NoError(t, tm.Checkpoint("op"))

	_, err := tm.MemoryDiff(model.CheckpointStart, "op")
	require.ErrorIs(t, err, ErrMemoryProfilingDisabled)
	_, err = tm.TotalMemoryDiff()
	require.ErrorIs(t, err, ErrMemoryProfilingDisabled)
	_, err = tm.LastMemoryDiff()
	require.ErrorIs(t, err, ErrMemoryProfilingDisabled)
	_, err = tm.AverageCheckpointMemoryDiff("op")
	require.ErrorIs(t, err, ErrMemoryProfilingDisabled)
	_, err = tm.CurrentMemoryUsage()
	require.ErrorIs(t, err, ErrMemoryProfilingDisabled)

	require.Nil(t, tm.Checkpoints()[0].Memory)
	require.Nil(t, tm.Checkpoints()[0].MemoryPeak)
}

func TestMemoryProfiling_SnapshotsAndDiffs(t *testing.T) {
	tm, env := newTestTimer(WithMemoryProfiling())
	require.True(t, tm.MemoryProfilingEnabled())

	env.usage, env.peak = 1000, 2000
	require.NoError(t, tm.Start())

	env.usage, env.peak = 1600, 2600
	require.NoError(t, tm.Checkpoint("op"))

	cps := tm.Checkpoints()
	require.NotNil(t, cps[1].Memory)
	require.NotNil(t, cps[1].MemoryPeak)
	require.Equal(t, int64(1600), *cps[1].Memory)
	require.Equal(t, int64(2600), *cps[1].MemoryPeak)

	d, err := tm.MemoryDiff(model.CheckpointStart, "op")
	require.NoError(t, err)
	require.NotNil(t, d)
	require.Equal(t, int64(600), *d)

	// live queries sample memory at call time
	env.usage = 2000
	cur, err := tm.CurrentMemoryUsage()
	require.NoError(t, err)
	require.NotNil(t, cur)
	require.Equal(t, int64(1000), *cur)

	last, err := tm.LastMemoryDiff()
	require.NoError(t, err)
	require.NotNil(t, last)
	require.Equal(t, int64(400), *last)

	_, err = tm.TotalMemoryDiff()
	require.ErrorIs(t, err, ErrStillRunning)

	env.usage = 2500
	require.NoError(t, tm.Finish())

	total, err := tm.TotalMemoryDiff()
	require.NoError(t, err)
	require.NotNil(t, total)
	require.Equal(t, int64(1500), *total)

	_, err = tm.CurrentMemoryUsage()
	require.ErrorIs(t, err, ErrNotRunning)
	_, err = tm.LastMemoryDiff()
	require.ErrorIs(t, err, ErrNotRunning)
}

func TestAverageCheckpointMemoryDiff(t *testing.T) {
	tm, env := newTestTimer(WithMemoryProfiling())
	require.NoError(t, tm.Start())

	env.usage = 100
	require.NoError(t, tm.Checkpoint("op"))
	env.usage = 400
	require.NoError(t, tm.Checkpoint("op"))
	env.usage = 500
	require.NoError(t, tm.Checkpoint("op"))

	avg, err := tm.AverageCheckpointMemoryDiff("op")
	require.NoError(t, err)
	require.NotNil(t, avg)
	require.Equal(t, int64(200), *avg)

	few, err := tm.AverageCheckpointMemoryDiff("missing")
	require.NoError(t, err)
	require.Nil(t, few)
}

func TestString_EmptyWhileRunning(t *testing.T) {
	tm, _ := newTestTimer()
	require.NoError(t, tm.Start())
	require.Equal(t, "", tm.String())

	require.NoError(t, tm.Finish())
	require.NotEmpty(t, tm.String())
}

func TestString_ModeSelectsOutput(t *testing.T) {
	text, _ := newTestTimer(WithRenderMode(model.ModeTerminal))
	require.NoError(t, text.Start())
	require.NoError(t, text.Finish())
	require.Contains(t, text.String(), "Checkpoints")
	require.NotContains(t, text.String(), "<table")

	markup, _ := newTestTimer(WithRenderMode(model.ModeMarkup))
	require.NoError(t, markup.Start())
	require.NoError(t, markup.Finish())
	require.Contains(t, markup.String(), "<table")
}
