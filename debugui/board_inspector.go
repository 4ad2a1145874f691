package debugui

import (
	"fmt"
	"image/color"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/puyo/board"
)

// Palette maps piece colors to display colors. Hosts share it so the
// inspector matches the game view.
var Palette = map[board.Color]color.RGBA{
	board.Red:    {230, 60, 60, 255},
	board.Blue:   {60, 110, 230, 255},
	board.Green:  {60, 190, 90, 255},
	board.Yellow: {235, 210, 60, 255},
	board.Purple: {160, 80, 210, 255},
}

// BoardInspector shows score, state, counters and a miniature of the grid.
type BoardInspector struct {
	board func() *board.Board
}

// NewBoardInspector takes a getter so the window follows board restarts.
func NewBoardInspector(current func() *board.Board) *BoardInspector {
	return &BoardInspector{board: current}
}

func (bi *BoardInspector) Render(deltaTime float32) {
	b := bi.board()
	if b == nil {
		return
	}

	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(280, 280), imgui.CondOnce)

	if !imgui.BeginV("Board", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	snap := b.Snapshot()
	stats := b.Stats()

	imgui.Text(fmt.Sprintf("Score: %d", snap.Score))
	imgui.Text(fmt.Sprintf("State: %s", snap.State))
	fast := snap.FastFall
	if imgui.Checkbox("Fast fall", &fast) {
		b.SetFastFall(fast)
	}
	imgui.Separator()
	imgui.Text(fmt.Sprintf("Pairs locked: %d", stats.PairsLocked))
	imgui.Text(fmt.Sprintf("Passes: %d", stats.Passes))
	imgui.Text(fmt.Sprintf("Cells cleared: %d", stats.CellsCleared))
	imgui.Text(fmt.Sprintf("Longest chain: %d", stats.LongestChain))
	imgui.Separator()
	imgui.Text(fmt.Sprintf("Next: %s / %s", snap.Next[0].Color, snap.Next[1].Color))

	const cell = 10
	drawList := imgui.WindowDrawList()
	origin := imgui.CursorScreenPos()
	for y, row := range snap.Cells {
		for x, c := range row {
			if c == board.None {
				continue
			}
			drawCell(drawList, origin, x, y, cell, Palette[c])
		}
	}
	if snap.HasActive {
		for _, p := range snap.Active {
			drawCell(drawList, origin, p.X, p.Y, cell, Palette[p.Color])
		}
	}
	frame := imgui.ColorU32Vec4(imgui.NewVec4(0.5, 0.5, 0.5, 1))
	drawList.AddRect(origin, imgui.NewVec2(origin.X+float32(snap.Width*cell), origin.Y+float32(snap.Height*cell)), frame)

	imgui.End()
}

func drawCell(drawList *imgui.DrawList, origin imgui.Vec2, x, y, size int, c color.RGBA) {
	lo := imgui.NewVec2(origin.X+float32(x*size), origin.Y+float32(y*size))
	hi := imgui.NewVec2(lo.X+float32(size-1), lo.Y+float32(size-1))
	col := imgui.ColorU32Vec4(imgui.NewVec4(float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, 1))
	drawList.AddRectFilled(lo, hi, col)
}
