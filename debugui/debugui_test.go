package debugui_test

import (
	"testing"

	"github.com/plus3/puyo/board"
	"github.com/plus3/puyo/debugui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChainHistory(t *testing.T) {
	h := debugui.NewChainHistory(2)

	h.OnEvent(board.Event{Kind: board.EventLock})
	h.OnEvent(board.Event{Kind: board.EventSpawn})
	assert.Empty(t, h.Records(), "locks without clears are not chains")

	h.OnEvent(board.Event{Kind: board.EventLock})
	h.OnEvent(board.Event{Kind: board.EventClear, Pass: 1, Cleared: 4, Points: 40})
	h.OnEvent(board.Event{Kind: board.EventClear, Pass: 2, Cleared: 5, Points: 50})
	h.OnEvent(board.Event{Kind: board.EventSpawn})

	records := h.Records()
	require.Len(t, records, 1)
	assert.Equal(t, debugui.ChainRecord{Lock: 2, Passes: 2, Cleared: 9, Points: 90}, records[0])

	for i := 0; i < 3; i++ {
		h.OnEvent(board.Event{Kind: board.EventLock})
		h.OnEvent(board.Event{Kind: board.EventClear, Pass: 1, Cleared: 4, Points: 40})
		h.OnEvent(board.Event{Kind: board.EventGameOver})
	}
	records = h.Records()
	require.Len(t, records, 2)
	assert.Equal(t, 4, records[0].Lock)
	assert.Equal(t, 5, records[1].Lock)
}

func TestChainHistoryFromBoard(t *testing.T) {
	h := debugui.NewChainHistory(10)
	cfg := board.DefaultConfig()
	cfg.Colors = []board.Color{board.Green}
	b, err := board.New(cfg, board.WithListener(h))
	require.NoError(t, err)
	require.NoError(t, b.Place(2, 11, board.Green))
	require.NoError(t, b.Place(3, 11, board.Green))

	require.NoError(t, b.HardDrop())
	records := h.Records()
	require.Len(t, records, 1)
	assert.Equal(t, 4, records[0].Cleared)
	assert.Equal(t, b.Score(), records[0].Points)
}

func TestFrameHistory(t *testing.T) {
	f := debugui.NewFrameHistory(3)
	assert.Zero(t, f.Average())

	f.Add(0.010)
	assert.InDelta(t, 10.0, f.Average(), 1e-4)

	f.Add(0.020)
	f.Add(0.030)
	f.Add(0.040)
	assert.InDelta(t, 30.0, f.Average(), 1e-4)
}

type countingWindow struct{ renders int }

func (w *countingWindow) Render(float32) { w.renders++ }

func TestOverlayToggle(t *testing.T) {
	w := &countingWindow{}
	o := debugui.NewOverlay(w)
	assert.True(t, o.Visible())

	o.Render(0.016)
	o.Toggle()
	o.Render(0.016)
	assert.False(t, o.Visible())
	assert.Equal(t, 1, w.renders)
}
