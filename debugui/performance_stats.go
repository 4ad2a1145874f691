package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/puyo/loop"
)

// FrameHistory is a fixed ring of frame times in milliseconds.
type FrameHistory struct {
	samples []float32
	index   int
	filled  int
}

func NewFrameHistory(frames int) *FrameHistory {
	return &FrameHistory{samples: make([]float32, frames)}
}

// Add records a frame time given in seconds.
func (f *FrameHistory) Add(deltaTime float32) {
	f.samples[f.index] = deltaTime * 1000.0
	f.index = (f.index + 1) % len(f.samples)
	if f.filled < len(f.samples) {
		f.filled++
	}
}

// Average returns the mean of recorded frame times in milliseconds.
func (f *FrameHistory) Average() float32 {
	if f.filled == 0 {
		return 0
	}
	var total float32
	for _, s := range f.samples {
		total += s
	}
	return total / float32(f.filled)
}

// PerformanceStats shows frame timing and per-system scheduler statistics.
type PerformanceStats struct {
	scheduler *loop.Scheduler
	history   *FrameHistory
}

func NewPerformanceStats(scheduler *loop.Scheduler, historyFrames int) *PerformanceStats {
	return &PerformanceStats{
		scheduler: scheduler,
		history:   NewFrameHistory(historyFrames),
	}
}

func (ps *PerformanceStats) Render(deltaTime float32) {
	ps.history.Add(deltaTime)

	imgui.SetNextWindowPosV(imgui.NewVec2(10, 530), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(360, 240), imgui.CondOnce)

	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	avg := ps.history.Average()
	fps := float32(0)
	if avg > 0 {
		fps = 1000.0 / avg
	}
	imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, fps))

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.history.samples[0], int32(len(ps.history.samples)))

	stats := ps.scheduler.Stats()
	imgui.Text(fmt.Sprintf("Frames: %d", stats.Frames))

	if imgui.TreeNodeStr("System Details") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SystemStatsTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableSetupColumn("Last")
			imgui.TableHeadersRow()

			for _, sys := range stats.Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(sys.Name)
				imgui.TableNextColumn()
				imgui.Text(sys.AvgDuration.String())
				imgui.TableNextColumn()
				imgui.Text(sys.MaxDuration.String())
				imgui.TableNextColumn()
				imgui.Text(sys.LastDuration.String())
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}
