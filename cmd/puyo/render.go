package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/puyo/board"
	"github.com/plus3/puyo/debugui"
)

const (
	margin         = 20
	sidePanelCells = 3
)

var (
	backgroundColor = color.RGBA{16, 16, 24, 255}
	wellColor       = color.RGBA{90, 90, 110, 255}
)

func drawSnapshot(screen *ebiten.Image, snap board.Snapshot, cell int) {
	screen.Fill(backgroundColor)

	size := float32(cell)
	wellW := float32(snap.Width) * size
	wellH := float32(snap.Height) * size
	vector.StrokeRect(screen, margin-2, margin-2, wellW+4, wellH+4, 2, wellColor, false)

	for y, row := range snap.Cells {
		for x, c := range row {
			if c != board.None {
				drawPiece(screen, x, y, cell, debugui.Palette[c])
			}
		}
	}

	if snap.HasActive {
		for _, p := range snap.Ghost {
			drawPiece(screen, p.X, p.Y, cell, fade(debugui.Palette[p.Color], 70))
		}
		for _, p := range snap.Active {
			drawPiece(screen, p.X, p.Y, cell, debugui.Palette[p.Color])
		}
	}

	panelX := margin + int(wellW) + cell/2
	ebitenutil.DebugPrintAt(screen, "NEXT", panelX, margin)
	for i, p := range snap.Next {
		cx := float32(panelX) + size/2
		cy := float32(margin+16) + float32(i)*size + size/2
		vector.DrawFilledCircle(screen, cx, cy, size/2-2, debugui.Palette[p.Color], true)
	}

	ebitenutil.DebugPrintAt(screen, "SCORE", panelX, margin+16+3*cell)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d", snap.Score), panelX, margin+32+3*cell)

	if snap.State == board.StateOver {
		ebitenutil.DebugPrintAt(screen, "GAME OVER", margin+10, margin+int(wellH)/2-10)
		ebitenutil.DebugPrintAt(screen, "Press R to restart", margin+10, margin+int(wellH)/2+10)
	}
}

func drawPiece(screen *ebiten.Image, x, y, cell int, clr color.RGBA) {
	size := float32(cell)
	cx := float32(margin) + float32(x)*size + size/2
	cy := float32(margin) + float32(y)*size + size/2
	vector.DrawFilledCircle(screen, cx, cy, size/2-2, clr, true)
}

// fade returns c at alpha a, keeping the premultiplied invariant.
func fade(c color.RGBA, a uint8) color.RGBA {
	scale := func(v uint8) uint8 { return uint8(uint16(v) * uint16(a) / 255) }
	return color.RGBA{scale(c.R), scale(c.G), scale(c.B), a}
}
