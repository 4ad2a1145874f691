package loop

import "github.com/plus3/puyo/board"

// Intent is a host-neutral player command collected by an input adapter.
type Intent int

const (
	IntentLeft Intent = iota
	IntentRight
	IntentRotate
	IntentFastFallOn
	IntentFastFallOff
	IntentHardDrop
)

// Intents buffers player commands between frames.
type Intents struct {
	queue []Intent
}

// Push records an intent for the next frame.
func (q *Intents) Push(i Intent) {
	q.queue = append(q.queue, i)
}

// Drain returns the buffered intents in arrival order and empties the buffer.
func (q *Intents) Drain() []Intent {
	out := q.queue
	q.queue = nil
	return out
}

// InputSystem applies buffered intents to the board.
type InputSystem struct {
	Intents *Intents

	// OnError receives errors from hard drops; nil ignores them.
	OnError func(error)
}

func (s *InputSystem) Execute(frame *Frame) {
	for _, intent := range s.Intents.Drain() {
		switch intent {
		case IntentLeft:
			frame.Board.Move(-1)
		case IntentRight:
			frame.Board.Move(1)
		case IntentRotate:
			frame.Board.Rotate()
		case IntentFastFallOn:
			frame.Board.SetFastFall(true)
		case IntentFastFallOff:
			frame.Board.SetFastFall(false)
		case IntentHardDrop:
			if err := frame.Board.HardDrop(); err != nil && s.OnError != nil {
				s.OnError(err)
			}
		}
	}
}

// FallSystem advances the board clock by the frame's delta time.
type FallSystem struct {
	// OnGameOver is invoked once per board, on the frame it ends, whichever
	// system caused the end.
	OnGameOver func(score int)

	reported *board.Board
}

func (s *FallSystem) Execute(frame *Frame) {
	b := frame.Board
	// Tick only fails once the board is over, which is checked below.
	b.Tick(frame.DeltaTime)
	if b.State() != board.StateOver || s.reported == b || s.OnGameOver == nil {
		return
	}
	s.reported = b
	score := b.Score()
	frame.Defer(func() { s.OnGameOver(score) })
}
