package main

import (
	"math/rand/v2"

	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/puyo/board"
	"github.com/plus3/puyo/config"
	"github.com/plus3/puyo/debugui"
	"github.com/plus3/puyo/loop"
	"github.com/plus3/puyo/sound"
	"go.uber.org/zap"
)

// Game implements ebiten.Game on top of the loop scheduler.
type Game struct {
	cfg      *config.Config
	boardCfg board.Config
	log      *zap.Logger
	player   *sound.Player
	seed     uint64
	restarts uint64

	scheduler *loop.Scheduler
	intents   *loop.Intents
	history   *debugui.ChainHistory

	imguiBackend *ebitenbackend.EbitenBackend
	overlay      *debugui.Overlay
}

func newGame(cfg *config.Config, log *zap.Logger, player *sound.Player, backend *ebitenbackend.EbitenBackend) (*Game, error) {
	boardCfg, err := cfg.Board.ToBoard()
	if err != nil {
		return nil, err
	}

	seed := cfg.Board.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	g := &Game{
		cfg:          cfg,
		boardCfg:     boardCfg,
		log:          log,
		player:       player,
		seed:         seed,
		intents:      &loop.Intents{},
		history:      debugui.NewChainHistory(32),
		imguiBackend: backend,
	}

	b, err := g.newBoard()
	if err != nil {
		return nil, err
	}

	g.scheduler = loop.NewScheduler(b, log)
	g.scheduler.Register(&loop.InputSystem{
		Intents: g.intents,
		OnError: func(err error) { log.Debug("hard drop", zap.Error(err)) },
	})
	g.scheduler.Register(&loop.FallSystem{
		OnGameOver: func(score int) { log.Info("game over", zap.Int("score", score), zap.Uint64("seed", g.boardSeed())) },
	})

	if backend != nil {
		g.overlay = debugui.NewOverlay(
			debugui.NewBoardInspector(g.scheduler.Board),
			g.history,
			debugui.NewPerformanceStats(g.scheduler, 120),
		)
		g.scheduler.Register(&overlaySystem{overlay: g.overlay})
	}
	return g, nil
}

func (g *Game) boardSeed() uint64 {
	return g.seed + g.restarts
}

func (g *Game) newBoard() (*board.Board, error) {
	seed := g.boardSeed()
	return board.New(g.boardCfg,
		board.WithRand(rand.New(rand.NewPCG(seed, seed>>1|1))),
		board.WithLogger(g.log.With(zap.Uint64("seed", seed))),
		board.WithListener(g.player),
		board.WithListener(g.history),
	)
}

func (g *Game) restart() {
	g.restarts++
	b, err := g.newBoard()
	if err != nil {
		g.log.Error("restart failed", zap.Error(err))
		return
	}
	g.intents.Drain()
	g.scheduler.SetBoard(b)
	g.log.Info("restarted", zap.Uint64("seed", g.boardSeed()))
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.restart()
	}
	if g.overlay != nil && inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.overlay.Toggle()
	}
	collectIntents(g.intents)

	if g.imguiBackend != nil {
		g.imguiBackend.BeginFrame()
	}
	g.scheduler.Once(1.0 / float64(ebiten.TPS()))
	if g.imguiBackend != nil {
		g.imguiBackend.EndFrame()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	drawSnapshot(screen, g.scheduler.Board().Snapshot(), g.cfg.Display.CellSize)

	if g.imguiBackend != nil {
		g.imguiBackend.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.imguiBackend != nil {
		g.imguiBackend.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

func collectIntents(intents *loop.Intents) {
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) {
		intents.Push(loop.IntentLeft)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyRight) {
		intents.Push(loop.IntentRight)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) || inpututil.IsKeyJustPressed(ebiten.KeyZ) {
		intents.Push(loop.IntentRotate)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDown) {
		intents.Push(loop.IntentFastFallOn)
	}
	if inpututil.IsKeyJustReleased(ebiten.KeyDown) {
		intents.Push(loop.IntentFastFallOff)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		intents.Push(loop.IntentHardDrop)
	}
}

// overlaySystem defers ImGui rendering until every other system has run.
type overlaySystem struct {
	overlay *debugui.Overlay
}

func (s *overlaySystem) Execute(frame *loop.Frame) {
	dt := float32(frame.DeltaTime)
	frame.Defer(func() { s.overlay.Render(dt) })
}
