package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/puyo/board"
	"github.com/plus3/puyo/debugui"
	"github.com/plus3/puyo/loop"
)

const (
	originX = 1
	originY = 1
	// Each cell is two columns wide so pieces look round in a terminal.
	cellCols = 2
)

var (
	wellStyle  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	textStyle  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	ghostStyle = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
)

func colorStyle(c board.Color) tcell.Style {
	rgb := debugui.Palette[c]
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(rgb.R), int32(rgb.G), int32(rgb.B)))
}

// renderSystem draws the board after the other systems have run.
type renderSystem struct {
	screen tcell.Screen
}

func (s *renderSystem) Execute(frame *loop.Frame) {
	snap := frame.Board.Snapshot()
	frame.Defer(func() {
		drawSnapshot(s.screen, snap)
		s.screen.Show()
	})
}

func drawSnapshot(screen tcell.Screen, snap board.Snapshot) {
	screen.Clear()

	right := originX + 1 + snap.Width*cellCols
	bottom := originY + snap.Height
	for y := originY; y <= bottom; y++ {
		screen.SetContent(originX, y, '│', nil, wellStyle)
		screen.SetContent(right, y, '│', nil, wellStyle)
	}
	for x := originX; x <= right; x++ {
		screen.SetContent(x, bottom, '─', nil, wellStyle)
	}
	screen.SetContent(originX, bottom, '└', nil, wellStyle)
	screen.SetContent(right, bottom, '┘', nil, wellStyle)

	for y, row := range snap.Cells {
		for x, c := range row {
			if c != board.None {
				drawCell(screen, x, y, "()", colorStyle(c))
			}
		}
	}

	if snap.HasActive {
		for _, p := range snap.Ghost {
			drawCell(screen, p.X, p.Y, "::", ghostStyle)
		}
		for _, p := range snap.Active {
			drawCell(screen, p.X, p.Y, "()", colorStyle(p.Color))
		}
	}

	panel := right + 3
	drawText(screen, panel, originY, "NEXT", textStyle)
	for i, p := range snap.Next {
		drawText(screen, panel, originY+1+i, "()", colorStyle(p.Color))
	}
	drawText(screen, panel, originY+4, "SCORE", textStyle)
	drawText(screen, panel, originY+5, fmt.Sprintf("%d", snap.Score), textStyle)

	if snap.State == board.StateOver {
		drawText(screen, panel, originY+7, "GAME OVER", textStyle)
		drawText(screen, panel, originY+8, "r: restart  q: quit", textStyle)
	}
}

func drawCell(screen tcell.Screen, x, y int, glyph string, style tcell.Style) {
	drawText(screen, originX+1+x*cellCols, originY+y, glyph, style)
}

func drawText(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		screen.SetContent(x+i, y, r, nil, style)
	}
}
