package loop_test

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/plus3/puyo/board"
	"github.com/plus3/puyo/loop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBoard(t *testing.T, cfg board.Config) *board.Board {
	t.Helper()
	b, err := board.New(cfg, board.WithRand(rand.New(rand.NewPCG(5, 8))))
	require.NoError(t, err)
	return b
}

type countingSystem struct {
	executeCount int
	lastDelta    float64
	sleepDur     time.Duration
}

func (s *countingSystem) Execute(frame *loop.Frame) {
	s.executeCount++
	s.lastDelta = frame.DeltaTime
	if s.sleepDur > 0 {
		time.Sleep(s.sleepDur)
	}
}

func TestSchedulerOrder(t *testing.T) {
	scheduler := loop.NewScheduler(newBoard(t, board.DefaultConfig()), nil)

	var order []string
	scheduler.Register(loop.SystemFunc(func(frame *loop.Frame) {
		order = append(order, "first")
		frame.Defer(func() { order = append(order, "deferred") })
	}))
	scheduler.Register(loop.SystemFunc(func(frame *loop.Frame) {
		order = append(order, "second")
	}))

	scheduler.Once(0.016)
	assert.Equal(t, []string{"first", "second", "deferred"}, order)
}

func TestSchedulerStats(t *testing.T) {
	scheduler := loop.NewScheduler(newBoard(t, board.DefaultConfig()), nil)

	fast := &countingSystem{}
	slow := &countingSystem{sleepDur: 2 * time.Millisecond}
	scheduler.Register(fast)
	scheduler.Register(slow)

	stats := scheduler.Stats()
	assert.Equal(t, 2, stats.SystemCount)
	assert.Zero(t, stats.Systems[0].MinDuration)

	for i := 0; i < 3; i++ {
		scheduler.Once(0.5)
	}

	assert.Equal(t, 3, fast.executeCount)
	assert.Equal(t, 0.5, fast.lastDelta)

	stats = scheduler.Stats()
	assert.Equal(t, int64(6), stats.TotalExecutions)
	assert.Equal(t, int64(3), stats.Frames)
	require.Len(t, stats.Systems, 2)
	assert.Equal(t, "countingSystem", stats.Systems[0].Name)
	assert.Equal(t, int64(3), stats.Systems[1].ExecutionCount)
	assert.GreaterOrEqual(t, stats.Systems[1].MinDuration, 2*time.Millisecond)
	assert.GreaterOrEqual(t, stats.Systems[1].MaxDuration, stats.Systems[1].MinDuration)
	assert.GreaterOrEqual(t, stats.Systems[1].TotalDuration, 6*time.Millisecond)
}

func TestSchedulerRun(t *testing.T) {
	scheduler := loop.NewScheduler(newBoard(t, board.DefaultConfig()), nil)
	sys := &countingSystem{}
	scheduler.Register(sys)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()
	scheduler.Run(ctx, 5*time.Millisecond)

	assert.Greater(t, sys.executeCount, 0)
	assert.Greater(t, sys.lastDelta, 0.0)
}

func TestInputSystem(t *testing.T) {
	b := newBoard(t, board.DefaultConfig())
	intents := &loop.Intents{}
	scheduler := loop.NewScheduler(b, nil)
	scheduler.Register(&loop.InputSystem{Intents: intents})

	intents.Push(loop.IntentLeft)
	intents.Push(loop.IntentLeft)
	intents.Push(loop.IntentFastFallOn)
	scheduler.Once(0)

	p, ok := b.Active()
	require.True(t, ok)
	assert.Equal(t, 0, p[0].X)
	assert.True(t, b.FastFall())
	assert.Empty(t, intents.Drain())

	intents.Push(loop.IntentHardDrop)
	scheduler.Once(0)
	assert.Equal(t, 1, b.Stats().PairsLocked)
	assert.False(t, b.FastFall())
}

func TestFallSystemReportsGameOver(t *testing.T) {
	cfg := board.DefaultConfig()
	cfg.Width, cfg.Height = 2, 1
	b := newBoard(t, cfg)

	var scores []int
	scheduler := loop.NewScheduler(b, nil)
	scheduler.Register(&loop.FallSystem{OnGameOver: func(score int) { scores = append(scores, score) }})

	scheduler.Once(1)
	scheduler.Once(1)
	assert.Equal(t, []int{0}, scores)
	assert.Equal(t, board.StateOver, b.State())
}

func TestFallSystemReportsHardDropGameOver(t *testing.T) {
	cfg := board.DefaultConfig()
	cfg.Width, cfg.Height = 2, 1
	b := newBoard(t, cfg)

	var inputErrs []error
	var scores []int
	intents := &loop.Intents{}
	scheduler := loop.NewScheduler(b, nil)
	scheduler.Register(&loop.InputSystem{Intents: intents, OnError: func(err error) { inputErrs = append(inputErrs, err) }})
	scheduler.Register(&loop.FallSystem{OnGameOver: func(score int) { scores = append(scores, score) }})

	intents.Push(loop.IntentHardDrop)
	scheduler.Once(0)
	scheduler.Once(0)

	require.Len(t, inputErrs, 1)
	assert.ErrorIs(t, inputErrs[0], board.ErrSpawnBlocked)
	assert.Equal(t, []int{0}, scores)
}

func TestFallSystemReportsEachBoard(t *testing.T) {
	cfg := board.DefaultConfig()
	cfg.Width, cfg.Height = 2, 1

	var scores []int
	scheduler := loop.NewScheduler(newBoard(t, cfg), nil)
	scheduler.Register(&loop.FallSystem{OnGameOver: func(score int) { scores = append(scores, score) }})

	scheduler.Once(1)
	scheduler.Once(1)
	scheduler.SetBoard(newBoard(t, cfg))
	scheduler.Once(1)
	scheduler.Once(1)

	assert.Equal(t, []int{0, 0}, scores)
}

func TestSchedulerSetBoard(t *testing.T) {
	first := newBoard(t, board.DefaultConfig())
	second := newBoard(t, board.DefaultConfig())
	scheduler := loop.NewScheduler(first, nil)

	var seen []*board.Board
	scheduler.Register(loop.SystemFunc(func(frame *loop.Frame) { seen = append(seen, frame.Board) }))

	scheduler.Once(0)
	scheduler.SetBoard(second)
	scheduler.Once(0)

	assert.Same(t, first, seen[0])
	assert.Same(t, second, seen[1])
	assert.Same(t, second, scheduler.Board())
}
