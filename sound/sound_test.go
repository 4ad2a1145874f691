package sound_test

import (
	"testing"
	"time"

	"github.com/plus3/puyo/board"
	"github.com/plus3/puyo/config"
	"github.com/plus3/puyo/sound"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCueFor(t *testing.T) {
	tests := []struct {
		name  string
		event board.Event
		hz    float64
		ok    bool
	}{
		{"lock", board.Event{Kind: board.EventLock}, 220, true},
		{"first pass", board.Event{Kind: board.EventClear, Pass: 1}, 440, true},
		{"seventh pass is an octave up", board.Event{Kind: board.EventClear, Pass: 7}, 880, true},
		{"game over", board.Event{Kind: board.EventGameOver}, 110, true},
		{"spawn is silent", board.Event{Kind: board.EventSpawn}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cue, ok := sound.CueFor(tt.event, 440)
			assert.Equal(t, tt.ok, ok)
			assert.InDelta(t, tt.hz, cue.Hz, 1e-9)
			if ok {
				assert.Greater(t, cue.Duration, time.Duration(0))
			}
		})
	}
}

func TestChainCuesRise(t *testing.T) {
	prev := 0.0
	for pass := 1; pass <= 5; pass++ {
		cue, ok := sound.CueFor(board.Event{Kind: board.EventClear, Pass: pass}, 440)
		require.True(t, ok)
		assert.Greater(t, cue.Hz, prev)
		prev = cue.Hz
	}
}

func TestDisabledPlayerIsSilent(t *testing.T) {
	p, err := sound.New(config.AudioConfig{Enabled: false, BaseHz: 440}, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, p.Enabled())

	p.OnEvent(board.Event{Kind: board.EventClear, Pass: 1})
	p.Play(sound.Cue{Hz: 440, Duration: time.Millisecond})
	p.Close()
}
