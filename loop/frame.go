package loop

import "github.com/plus3/puyo/board"

// Frame is handed to every system during one scheduler pass.
type Frame struct {
	DeltaTime float64
	Board     *board.Board

	deferred []func()
}

func newFrame(dt float64, b *board.Board) *Frame {
	return &Frame{
		DeltaTime: dt,
		Board:     b,
	}
}

// Defer queues fn to run after every system has executed for this frame.
func (f *Frame) Defer(fn func()) {
	f.deferred = append(f.deferred, fn)
}

func (f *Frame) flush() {
	for i := 0; i < len(f.deferred); i++ {
		f.deferred[i]()
	}
	f.deferred = nil
}
