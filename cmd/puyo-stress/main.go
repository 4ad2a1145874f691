package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/plus3/puyo/board"
	"github.com/plus3/puyo/config"
	"github.com/plus3/puyo/loop"
	"go.uber.org/zap"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	seed := flag.Uint64("seed", 1, "Seed for piece generation and bot input.")
	width := flag.Int("width", 6, "Board width in columns.")
	height := flag.Int("height", 12, "Board height in rows.")
	frame := flag.Duration("frame", time.Second/60, "Simulated time advanced per update.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	log, err := config.NewLogger(config.LoggingConfig{Level: "info", Format: "console"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cfg := board.DefaultConfig()
	cfg.Width, cfg.Height = *width, *height

	report := &Report{
		Duration:       *duration,
		Seed:           *seed,
		Width:          *width,
		Height:         *height,
		Frame:          *frame,
		GCPauseMetrics: *gcPauseMetrics,
	}

	log.Info("starting puyo stress test", zap.Uint64("seed", *seed), zap.Duration("duration", *duration))
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	if err := runStress(ctx, cfg, *seed, *frame, report, log); err != nil {
		log.Fatal("stress test failed", zap.Error(err))
	}
	log.Info("simulation finished", zap.Int64("updates", report.TotalUpdates), zap.Int("games", report.Games))

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatal("failed to generate report", zap.Error(err))
	}
	fmt.Println("--- End of Report ---")
}

// runStress drives a bot-controlled board until ctx is done, restarting it
// after every game over and folding each game's counters into report.
func runStress(ctx context.Context, cfg board.Config, seed uint64, frame time.Duration, report *Report, log *zap.Logger) error {
	gameSeed := seed
	newBoard := func() (*board.Board, error) {
		gameSeed++
		return board.New(cfg, board.WithRand(rand.New(rand.NewPCG(gameSeed, seed))))
	}
	b, err := newBoard()
	if err != nil {
		return err
	}

	intents := &loop.Intents{}
	scheduler := loop.NewScheduler(b, log)
	scheduler.Register(&botSystem{intents: intents, rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))})
	scheduler.Register(&loop.InputSystem{Intents: intents})
	scheduler.Register(&loop.FallSystem{})

	runtime.ReadMemStats(&report.MemStatsStart)
	startTime := time.Now()
	dt := frame.Seconds()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			updateStart := time.Now()
			scheduler.Once(dt)
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
			report.TotalUpdates++

			if current := scheduler.Board(); current.State() == board.StateOver {
				report.addGame(current)
				log.Debug("game over", zap.Int("score", current.Score()), zap.Int("games", report.Games))
				next, err := newBoard()
				if err != nil {
					return err
				}
				intents.Drain()
				scheduler.SetBoard(next)
			}
		}
	}
	report.addGame(scheduler.Board())

	report.TotalTime = time.Since(startTime)
	report.UpdateTime.Finalize()
	report.Scheduler = scheduler.Stats()
	runtime.ReadMemStats(&report.MemStatsEnd)
	return nil
}

// botSystem plays randomly: it nudges and turns the pair and hard drops it
// every few frames.
type botSystem struct {
	intents *loop.Intents
	rng     *rand.Rand
	frames  int
}

func (s *botSystem) Execute(frame *loop.Frame) {
	s.frames++
	switch s.rng.IntN(4) {
	case 0:
		s.intents.Push(loop.IntentLeft)
	case 1:
		s.intents.Push(loop.IntentRight)
	case 2:
		s.intents.Push(loop.IntentRotate)
	}
	if s.frames%8 == 0 {
		s.intents.Push(loop.IntentHardDrop)
	}
}
