package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/puyo/board"
	"github.com/plus3/puyo/loop"
)

type Report struct {
	// Configuration
	Duration time.Duration
	Seed     uint64
	Width    int
	Height   int
	Frame    time.Duration

	// Results
	TotalUpdates   int64
	TotalTime      time.Duration
	UpdateTime     Stats
	Games          int
	PairsLocked    int
	Passes         int
	CellsCleared   int
	LongestChain   int
	BestScore      int
	TotalScore     int64
	Scheduler      *loop.SchedulerStats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

// addGame folds the counters of a finished (or interrupted) board into the report.
func (r *Report) addGame(b *board.Board) {
	stats := b.Stats()
	r.Games++
	r.PairsLocked += stats.PairsLocked
	r.Passes += stats.Passes
	r.CellsCleared += stats.CellsCleared
	r.LongestChain = max(r.LongestChain, stats.LongestChain)
	r.BestScore = max(r.BestScore, b.Score())
	r.TotalScore += int64(b.Score())
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Puyo Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Seed:** {{.Seed}}
- **Board:** {{.Width}}x{{.Height}}
- **Simulated Frame:** {{.Frame}}

## Gameplay
- **Games Played:** {{.Games}}
- **Pairs Locked:** {{.PairsLocked}}
- **Chain Passes:** {{.Passes}}
- **Cells Cleared:** {{.CellsCleared}}
- **Longest Chain:** {{.LongestChain}}
- **Best Score:** {{.BestScore}}
- **Average Score:** {{avg .TotalScore .Games}}

## Performance Results
- **Total Updates:** {{.TotalUpdates}}
- **Total Test Time:** {{.TotalTime}}
- **Update Time (Frame):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}
{{with .Scheduler}}
## Systems
{{range .Systems}}- {{.Name}}: {{.ExecutionCount}} runs, avg {{.AvgDuration}}, max {{.MaxDuration}}
{{end}}{{end}}
## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}
`

	fm := template.FuncMap{
		"avg": func(total int64, n int) string {
			if n == 0 {
				return "N/A"
			}
			return fmt.Sprintf("%.1f", float64(total)/float64(n))
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
