package loop

import (
	"context"
	"reflect"
	"time"

	"github.com/plus3/puyo/board"
	"go.uber.org/zap"
)

// System is one unit of per-frame work.
type System interface {
	Execute(frame *Frame)
}

// SystemFunc adapts a function to System.
type SystemFunc func(frame *Frame)

func (f SystemFunc) Execute(frame *Frame) { f(frame) }

// SchedulerStats summarizes every pass the scheduler has made.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Frames          int64
	Systems         []SystemStats
}

// SystemStats holds the timings of one registered system. MinDuration is
// zero until the system has run at least once.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type entry struct {
	system System
	timing SystemStats
}

func (e *entry) record(d time.Duration) {
	t := &e.timing
	if t.ExecutionCount == 0 || d < t.MinDuration {
		t.MinDuration = d
	}
	t.MaxDuration = max(t.MaxDuration, d)
	t.LastDuration = d
	t.TotalDuration += d
	t.ExecutionCount++
	t.AvgDuration = t.TotalDuration / time.Duration(t.ExecutionCount)
}

// Scheduler runs registered systems in order against a board.
type Scheduler struct {
	board   *board.Board
	log     *zap.Logger
	entries []*entry
	frames  int64
}

// NewScheduler creates a scheduler bound to b. A nil logger disables logging.
func NewScheduler(b *board.Board, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{board: b, log: log}
}

// Board returns the board systems currently operate on.
func (s *Scheduler) Board() *board.Board {
	return s.board
}

// SetBoard swaps the board, as hosts do on restart. Statistics are kept.
func (s *Scheduler) SetBoard(b *board.Board) {
	s.board = b
}

// Register appends a system; systems execute in registration order.
func (s *Scheduler) Register(system System) {
	e := &entry{system: system, timing: SystemStats{Name: systemName(system)}}
	s.entries = append(s.entries, e)
	s.log.Debug("system registered", zap.String("system", e.timing.Name))
}

func systemName(system System) string {
	t := reflect.TypeOf(system)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}

// Once runs every system against the board with delta time dt, then the
// callbacks they deferred.
func (s *Scheduler) Once(dt float64) {
	frame := newFrame(dt, s.board)
	for _, e := range s.entries {
		start := time.Now()
		e.system.Execute(frame)
		e.record(time.Since(start))
	}
	frame.flush()
	s.frames++
}

// Run calls Once every interval, passing the measured wall time since the
// previous call, until ctx is done.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Once(now.Sub(last).Seconds())
			last = now
		}
	}
}

// Stats returns a copy of the accumulated timings.
func (s *Scheduler) Stats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.entries),
		Frames:      s.frames,
		Systems:     make([]SystemStats, 0, len(s.entries)),
	}
	for _, e := range s.entries {
		stats.Systems = append(stats.Systems, e.timing)
		stats.TotalExecutions += e.timing.ExecutionCount
	}
	return stats
}
