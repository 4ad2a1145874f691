// Package sound plays short sine-tone cues for board events.
package sound

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/plus3/puyo/board"
	"github.com/plus3/puyo/config"
	"go.uber.org/zap"
)

const sampleRate = beep.SampleRate(44100)

// Cue is a single tone.
type Cue struct {
	Hz       float64
	Duration time.Duration
}

// CueFor returns the tone for e. Each chain pass sounds two semitones above
// the previous one; events without a sound return false.
func CueFor(e board.Event, baseHz float64) (Cue, bool) {
	switch e.Kind {
	case board.EventLock:
		return Cue{Hz: baseHz / 2, Duration: 20 * time.Millisecond}, true
	case board.EventClear:
		step := float64(2 * (e.Pass - 1))
		return Cue{Hz: baseHz * math.Pow(2, step/12), Duration: 120 * time.Millisecond}, true
	case board.EventGameOver:
		return Cue{Hz: baseHz / 4, Duration: 400 * time.Millisecond}, true
	default:
		return Cue{}, false
	}
}

// Player is a board.Listener that turns events into cues on the speaker.
type Player struct {
	enabled bool
	baseHz  float64
	log     *zap.Logger
}

// New initializes the speaker when audio is enabled. A speaker failure is
// not fatal: the returned player stays silent and the error is returned for
// the caller to log.
func New(cfg config.AudioConfig, log *zap.Logger) (*Player, error) {
	p := &Player{baseHz: cfg.BaseHz, log: log}
	if !cfg.Enabled {
		return p, nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return p, err
	}
	p.enabled = true
	return p, nil
}

// Enabled reports whether cues reach the speaker.
func (p *Player) Enabled() bool {
	return p.enabled
}

func (p *Player) OnEvent(e board.Event) {
	if !p.enabled {
		return
	}
	cue, ok := CueFor(e, p.baseHz)
	if !ok {
		return
	}
	p.Play(cue)
}

// Play queues cue on the speaker.
func (p *Player) Play(cue Cue) {
	if !p.enabled {
		return
	}
	sine, err := generators.SineTone(sampleRate, cue.Hz)
	if err != nil {
		p.log.Debug("tone rejected", zap.Float64("hz", cue.Hz), zap.Error(err))
		return
	}
	speaker.Play(beep.Take(sampleRate.N(cue.Duration), sine))
}

// Close releases the speaker.
func (p *Player) Close() {
	if p.enabled {
		speaker.Close()
		p.enabled = false
	}
}
