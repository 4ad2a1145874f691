package main

import (
	"flag"
	"fmt"
	"os"

	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/puyo/config"
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
	debug := flag.Bool("debug", false, "show the ImGui debug overlay (F1 toggles)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	player, err := sound.New(cfg.Audio, log)
	if err != nil {
		// Non-fatal, the game runs without sound.
		log.Warn("audio initialization failed", zap.Error(err))
	}
	defer player.Close()

	var backend *ebitenbackend.EbitenBackend
	width, height := windowSize(cfg)
	if *debug {
		backend = ebitenbackend.NewEbitenBackend()
		backend.CreateWindow(cfg.Display.Title, 1280, 800)
		imgui.CurrentIO().SetIniFilename("")
	} else {
		ebiten.SetWindowSize(width, height)
		ebiten.SetWindowTitle(cfg.Display.Title)
	}
	ebiten.SetTPS(cfg.Display.TPS)

	game, err := newGame(cfg, log, player, backend)
	if err != nil {
		return err
	}

	log.Info("starting",
		zap.String("config", *cfgPath),
		zap.Int("width", cfg.Board.Width),
		zap.Int("height", cfg.Board.Height),
		zap.Bool("debug", *debug),
		zap.Bool("audio", player.Enabled()))

	if err := ebiten.RunGame(game); err != nil {
		return err
	}
	log.Info("stopped", zap.Int("score", game.scheduler.Board().Score()))
	return nil
}

func windowSize(cfg *config.Config) (int, int) {
	cell := cfg.Display.CellSize
	return (cfg.Board.Width+sidePanelCells)*cell + 2*margin, cfg.Board.Height*cell + 2*margin
}
