package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/puyo/board"
	"github.com/plus3/puyo/config"
	"github.com/plus3/puyo/loop"
	"github.com/plus3/puyo/sound"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := flag.String("config", os.Getenv("PUYO_CONFIG"), "path to a TOML config file")
	logPath := flag.String("log", "", "write logs to this file instead of discarding them")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if *logPath != "" {
		cfg.Logging.Output = *logPath
	}
	// The terminal belongs to the game, so logs only go to a file.
	log := zap.NewNop()
	if cfg.Logging.Output != "" {
		cfg.Logging.Format = "json"
		if log, err = config.NewLogger(cfg.Logging); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
	}
	defer log.Sync()

	boardCfg, err := cfg.Board.ToBoard()
	if err != nil {
		return err
	}

	player, err := sound.New(cfg.Audio, log)
	if err != nil {
		log.Warn("audio initialization failed", zap.Error(err))
	}
	defer player.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	seed := cfg.Board.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	newBoard := func() (*board.Board, error) {
		return board.New(boardCfg,
			board.WithRand(rand.New(rand.NewPCG(seed, seed>>1|1))),
			board.WithLogger(log),
			board.WithListener(player),
		)
	}
	b, err := newBoard()
	if err != nil {
		return err
	}

	intents := &loop.Intents{}
	scheduler := loop.NewScheduler(b, log)
	scheduler.Register(&loop.InputSystem{
		Intents: intents,
		OnError: func(err error) { log.Debug("hard drop", zap.Error(err)) },
	})
	scheduler.Register(&loop.FallSystem{
		OnGameOver: func(score int) { log.Info("game over", zap.Int("score", score)) },
	})
	scheduler.Register(&renderSystem{screen: screen})

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	go screen.ChannelEvents(events, quit)

	tps := cfg.Display.TPS
	if tps <= 0 {
		tps = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(tps))
	defer ticker.Stop()
	last := time.Now()

	log.Info("starting", zap.Uint64("seed", seed))
	for {
		select {
		case ev := <-events:
			switch handleEvent(ev, intents) {
			case actionQuit:
				close(quit)
				log.Info("stopped", zap.Int("score", scheduler.Board().Score()))
				return nil
			case actionRestart:
				seed++
				nb, err := newBoard()
				if err != nil {
					return err
				}
				intents.Drain()
				scheduler.SetBoard(nb)
			case actionResize:
				screen.Sync()
			}
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			scheduler.Once(dt)
		}
	}
}
