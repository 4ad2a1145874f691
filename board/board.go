package board

import (
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"
)

// Config describes the shape and pace of a game.
type Config struct {
	Width  int
	Height int
	Colors []Color

	// FallInterval and FastFallInterval are in seconds.
	FallInterval     float64
	FastFallInterval float64

	// SplitDrop compacts the grid right after a lock so that half of a pair
	// resting on a ledge falls on its own.
	SplitDrop bool
}

// DefaultConfig returns the classic 6x12 four-color setup.
func DefaultConfig() Config {
	return Config{
		Width:            6,
		Height:           12,
		Colors:           append([]Color(nil), DefaultPalette...),
		FallInterval:     0.5,
		FastFallInterval: 0.05,
	}
}

// Validate reports why c cannot produce a playable board.
func (c Config) Validate() error {
	if c.Width < 2 || c.Height < 1 {
		return fmt.Errorf("%w: grid %dx%d, need at least 2x1", ErrInvalidConfig, c.Width, c.Height)
	}
	if len(c.Colors) == 0 {
		return fmt.Errorf("%w: empty palette", ErrInvalidConfig)
	}
	seen := make(map[Color]bool, len(c.Colors))
	for _, col := range c.Colors {
		if col == None {
			return fmt.Errorf("%w: palette contains none", ErrInvalidConfig)
		}
		if seen[col] {
			return fmt.Errorf("%w: duplicate color %s", ErrInvalidConfig, col)
		}
		seen[col] = true
	}
	if c.FallInterval <= 0 || c.FastFallInterval <= 0 {
		return fmt.Errorf("%w: fall intervals must be positive", ErrInvalidConfig)
	}
	return nil
}

// State is the lifecycle phase of a board.
type State int

const (
	StatePlaying State = iota
	StateOver
)

func (s State) String() string {
	if s == StateOver {
		return "over"
	}
	return "playing"
}

// Stats are counters accumulated over the board's lifetime.
type Stats struct {
	Ticks        int64
	PairsLocked  int
	Passes       int
	CellsCleared int
	LongestChain int
}

// Option customizes a Board at construction.
type Option func(*Board)

// WithRand sets the source used to pick pair colors.
func WithRand(r *rand.Rand) Option {
	return func(b *Board) { b.rng = r }
}

// WithLogger sets the logger used for lock, chain and game-over records.
func WithLogger(l *zap.Logger) Option {
	return func(b *Board) { b.log = l }
}

// WithListener registers l to receive board events.
func WithListener(l Listener) Option {
	return func(b *Board) { b.listeners = append(b.listeners, l) }
}

// Board is the game engine: grid, falling pair, chain resolution and score.
// It is not safe for concurrent use.
type Board struct {
	cfg  Config
	grid *grid

	active Pair
	next   Pair

	timer    float64
	fastFall bool
	score    int
	state    State

	rng       *rand.Rand
	log       *zap.Logger
	listeners []Listener
	resolver  *resolver
	stats     Stats
}

// New creates a board with an empty grid, an active pair at the spawn point
// and a next pair queued.
func New(cfg Config, opts ...Option) (*Board, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Colors = append([]Color(nil), cfg.Colors...)

	b := &Board{
		cfg:      cfg,
		grid:     newGrid(cfg.Width, cfg.Height),
		resolver: newResolver(cfg.Width * cfg.Height),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.rng == nil {
		b.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if b.log == nil {
		b.log = zap.NewNop()
	}

	b.active = b.newPair()
	b.next = b.newPair()

	b.log.Debug("board created",
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Int("colors", len(cfg.Colors)))
	return b, nil
}

func (b *Board) newPair() Pair {
	colors := b.cfg.Colors
	return spawnPair(b.cfg.Width, colors[b.rng.IntN(len(colors))], colors[b.rng.IntN(len(colors))])
}

func (b *Board) emit(e Event) {
	for _, l := range b.listeners {
		l.OnEvent(e)
	}
}

func (b *Board) checkPair() {
	if !b.active.Adjacent() {
		panic(fmt.Sprintf("board: active pair not adjacent: %+v", b.active))
	}
}

// Move shifts the active pair one column left (dx = -1) or right (dx = +1).
// The move is all or nothing; it returns false when either piece is blocked,
// when dx is any other value, or when the game is over.
func (b *Board) Move(dx int) bool {
	if b.state == StateOver || (dx != -1 && dx != 1) {
		return false
	}
	moved := b.active.shifted(dx, 0)
	if !moved.fits(b.grid) {
		return false
	}
	b.active = moved
	b.checkPair()
	return true
}

// Rotate turns the active pair a quarter turn. A blocked rotation leaves the
// pair untouched and returns false.
func (b *Board) Rotate() bool {
	if b.state == StateOver {
		return false
	}
	rotated, ok := b.active.rotated(b.grid)
	if !ok {
		return false
	}
	b.active = rotated
	b.checkPair()
	return true
}

// SetFastFall selects the fast fall interval for subsequent ticks.
func (b *Board) SetFastFall(on bool) {
	b.fastFall = on
}

// Tick advances the fall timer by dt seconds and performs at most one fall
// step once the current interval has elapsed. Time beyond the interval is
// discarded, not carried into the next step.
//
// Tick returns ErrSpawnBlocked on the step that ends the game and
// ErrGameOver on every call after that.
func (b *Board) Tick(dt float64) error {
	if b.state == StateOver {
		return ErrGameOver
	}
	b.stats.Ticks++

	b.timer += dt
	interval := b.cfg.FallInterval
	if b.fastFall {
		interval = b.cfg.FastFallInterval
	}
	if b.timer < interval {
		return nil
	}
	b.timer = 0
	return b.Step()
}

// Step drops the active pair one row, or locks it if either piece is
// supported. It ignores the fall timer.
func (b *Board) Step() error {
	_, err := b.step()
	return err
}

// HardDrop steps until the active pair locks.
func (b *Board) HardDrop() error {
	for {
		locked, err := b.step()
		if err != nil || locked {
			return err
		}
	}
}

func (b *Board) step() (bool, error) {
	if b.state == StateOver {
		return false, ErrGameOver
	}
	if down := b.active.shifted(0, 1); down.fits(b.grid) {
		b.active = down
		return false, nil
	}
	return true, b.lock()
}

func (b *Board) lock() error {
	for _, p := range b.active {
		if b.grid.IsOccupied(p.X, p.Y) {
			panic(fmt.Sprintf("board: locking onto occupied cell (%d,%d)", p.X, p.Y))
		}
		if err := b.grid.set(p.X, p.Y, p.Color); err != nil {
			panic(fmt.Sprintf("board: locking active pair: %v", err))
		}
	}
	b.stats.PairsLocked++
	b.log.Debug("pair locked",
		zap.Int("x0", b.active[0].X), zap.Int("y0", b.active[0].Y),
		zap.Int("x1", b.active[1].X), zap.Int("y1", b.active[1].Y))
	b.emit(Event{Kind: EventLock, Pair: b.active, Score: b.score})

	if b.cfg.SplitDrop {
		b.grid.compact()
	}
	b.resolve()

	b.fastFall = false
	b.timer = 0

	if !b.next.fits(b.grid) {
		b.state = StateOver
		b.active = Pair{}
		b.log.Info("game over", zap.Int("score", b.score), zap.Int("pairs", b.stats.PairsLocked))
		b.emit(Event{Kind: EventGameOver, Score: b.score})
		return ErrSpawnBlocked
	}
	b.active = b.next
	b.next = b.newPair()
	b.emit(Event{Kind: EventSpawn, Pair: b.active, Score: b.score})
	return nil
}

// Resolve runs chain resolution on the current grid until no group of
// MinGroupSize or more remains, adding each pass's points to the score.
func (b *Board) Resolve() Chain {
	return b.resolve()
}

func (b *Board) resolve() Chain {
	var chain Chain
	for {
		pass, ok := b.resolver.pass(b.grid)
		if !ok {
			break
		}
		b.score += pass.Points
		b.grid.compact()
		chain.Passes = append(chain.Passes, pass)

		b.stats.Passes++
		b.stats.CellsCleared += pass.Cleared
		b.log.Debug("chain pass",
			zap.Int("chain", len(chain.Passes)),
			zap.Int("groups", len(pass.Groups)),
			zap.Int("cleared", pass.Cleared),
			zap.Int("score", b.score))
		b.emit(Event{
			Kind:    EventClear,
			Pass:    len(chain.Passes),
			Cleared: pass.Cleared,
			Points:  pass.Points,
			Score:   b.score,
		})
	}
	if n := chain.Length(); n > 0 {
		if n > b.stats.LongestChain {
			b.stats.LongestChain = n
		}
		b.log.Info("chain resolved",
			zap.Int("length", n),
			zap.Int("cleared", chain.Cleared()),
			zap.Int("score", b.score))
	}
	return chain
}

// Place writes c into an empty cell. It is meant for puzzle setups and does
// not trigger resolution.
func (b *Board) Place(x, y int, c Color) error {
	if c == None {
		return fmt.Errorf("place (%d,%d): color none", x, y)
	}
	if !b.grid.InBounds(x, y) {
		return fmt.Errorf("place: %w: (%d,%d)", ErrOutOfBounds, x, y)
	}
	if b.grid.IsOccupied(x, y) {
		return fmt.Errorf("place (%d,%d): %w", x, y, ErrOccupied)
	}
	if b.state == StatePlaying {
		for _, p := range b.active {
			if p.X == x && p.Y == y {
				return fmt.Errorf("place (%d,%d): %w by active pair", x, y, ErrOccupied)
			}
		}
	}
	return b.grid.set(x, y, c)
}

// Width returns the number of grid columns.
func (b *Board) Width() int { return b.cfg.Width }

// Height returns the number of grid rows.
func (b *Board) Height() int { return b.cfg.Height }

// Config returns a copy of the board's configuration.
func (b *Board) Config() Config {
	cfg := b.cfg
	cfg.Colors = append([]Color(nil), b.cfg.Colors...)
	return cfg
}

// CellAt returns the locked color at (x, y).
func (b *Board) CellAt(x, y int) (Color, error) { return b.grid.CellAt(x, y) }

// IsOccupied reports whether (x, y) holds a locked color.
func (b *Board) IsOccupied(x, y int) bool { return b.grid.IsOccupied(x, y) }

// Active returns the falling pair. The second result is false once the game is over.
func (b *Board) Active() (Pair, bool) { return b.active, b.state == StatePlaying }

// Next returns the queued pair.
func (b *Board) Next() Pair { return b.next }

// Ghost returns where the active pair would lock if dropped now. It returns
// the zero Pair once the game is over.
func (b *Board) Ghost() Pair {
	if b.state == StateOver {
		return Pair{}
	}
	g := b.active
	for {
		down := g.shifted(0, 1)
		if !down.fits(b.grid) {
			return g
		}
		g = down
	}
}

// Score returns the accumulated score.
func (b *Board) Score() int { return b.score }

// FastFall reports whether the fast fall interval is in effect.
func (b *Board) FastFall() bool { return b.fastFall }

// State returns the lifecycle phase.
func (b *Board) State() State { return b.state }

// Stats returns a copy of the lifetime counters.
func (b *Board) Stats() Stats { return b.stats }

// Snapshot is a copy of everything a renderer needs for one frame.
type Snapshot struct {
	Width, Height int
	Cells         [][]Color
	Active        Pair
	Ghost         Pair
	HasActive     bool
	Next          Pair
	Score         int
	FastFall      bool
	State         State
}

// Snapshot copies the current board state.
func (b *Board) Snapshot() Snapshot {
	s := Snapshot{
		Width:    b.cfg.Width,
		Height:   b.cfg.Height,
		Cells:    b.grid.Rows(),
		Next:     b.next,
		Score:    b.score,
		FastFall: b.fastFall,
		State:    b.state,
	}
	if b.state == StatePlaying {
		s.Active = b.active
		s.Ghost = b.Ghost()
		s.HasActive = true
	}
	return s
}
