package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/plus3/puyo/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStatsFinalize(t *testing.T) {
	s := Stats{Samples: []time.Duration{3 * time.Millisecond, time.Millisecond, 2 * time.Millisecond}}
	s.Finalize()

	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 3*time.Millisecond, s.Max)
	assert.Equal(t, 2*time.Millisecond, s.Avg)

	empty := Stats{}
	empty.Finalize()
	assert.Zero(t, empty.Avg)
}

func TestRunStress(t *testing.T) {
	cfg := board.DefaultConfig()
	cfg.Width, cfg.Height = 4, 4

	report := &Report{Width: 4, Height: 4}
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	require.NoError(t, runStress(ctx, cfg, 7, 100*time.Millisecond, report, zap.NewNop()))

	assert.Positive(t, report.TotalUpdates)
	assert.Len(t, report.UpdateTime.Samples, int(report.TotalUpdates))
	// A bot hard dropping on a 4x4 board loses quickly and is restarted.
	assert.Greater(t, report.Games, 1)
	assert.Positive(t, report.PairsLocked)
	require.NotNil(t, report.Scheduler)
	assert.Equal(t, 3, report.Scheduler.SystemCount)
}

func TestReportGenerate(t *testing.T) {
	report := &Report{
		Duration:     time.Second,
		Seed:         3,
		Width:        6,
		Height:       12,
		Games:        2,
		TotalScore:   90,
		LongestChain: 2,
	}
	var buf bytes.Buffer
	require.NoError(t, report.Generate(&buf))

	out := buf.String()
	assert.Contains(t, out, "# Puyo Stress Test Report")
	assert.Contains(t, out, "**Board:** 6x12")
	assert.Contains(t, out, "**Average Score:** 45.0")
	assert.Contains(t, out, "**Longest Chain:** 2")
	assert.NotContains(t, out, "## Systems")
}
