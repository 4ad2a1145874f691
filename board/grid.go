package board

import "fmt"

// Point is a cell coordinate. Y grows downward; row 0 is the top.
type Point struct {
	X, Y int
}

// grid is a fixed W×H array of cells stored row-major.
type grid struct {
	w, h  int
	cells []Color
}

func newGrid(w, h int) *grid {
	return &grid{w: w, h: h, cells: make([]Color, w*h)}
}

func (g *grid) index(x, y int) int {
	return y*g.w + x
}

func (g *grid) point(i int) Point {
	return Point{X: i % g.w, Y: i / g.w}
}

// Width returns the number of columns.
func (g *grid) Width() int { return g.w }

// Height returns the number of rows.
func (g *grid) Height() int { return g.h }

// InBounds reports whether (x, y) addresses a cell of the grid.
func (g *grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.w && y >= 0 && y < g.h
}

// CellAt returns the color at (x, y), or None for an empty cell.
func (g *grid) CellAt(x, y int) (Color, error) {
	if !g.InBounds(x, y) {
		return None, fmt.Errorf("%w: (%d,%d) on %dx%d grid", ErrOutOfBounds, x, y, g.w, g.h)
	}
	return g.cells[g.index(x, y)], nil
}

// IsOccupied reports whether (x, y) holds a color. Callers check bounds first;
// an out-of-bounds coordinate is never reported as occupied.
func (g *grid) IsOccupied(x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	return g.cells[g.index(x, y)] != None
}

// free reports whether a piece may occupy (x, y).
func (g *grid) free(x, y int) bool {
	return g.InBounds(x, y) && g.cells[g.index(x, y)] == None
}

func (g *grid) set(x, y int, c Color) error {
	if !g.InBounds(x, y) {
		return fmt.Errorf("%w: (%d,%d) on %dx%d grid", ErrOutOfBounds, x, y, g.w, g.h)
	}
	g.cells[g.index(x, y)] = c
	return nil
}

// Count returns the number of occupied cells.
func (g *grid) Count() int {
	n := 0
	for _, c := range g.cells {
		if c != None {
			n++
		}
	}
	return n
}

// compact drops every occupied cell to the bottom of its column, keeping the
// top-to-bottom order of the survivors. It reports whether anything moved.
func (g *grid) compact() bool {
	moved := false
	for x := 0; x < g.w; x++ {
		dst := g.h - 1
		for y := g.h - 1; y >= 0; y-- {
			c := g.cells[g.index(x, y)]
			if c == None {
				continue
			}
			if y != dst {
				g.cells[g.index(x, dst)] = c
				g.cells[g.index(x, y)] = None
				moved = true
			}
			dst--
		}
	}
	return moved
}

// Rows returns a copy of the grid as rows of colors, top row first.
func (g *grid) Rows() [][]Color {
	rows := make([][]Color, g.h)
	for y := range rows {
		rows[y] = make([]Color, g.w)
		copy(rows[y], g.cells[y*g.w:(y+1)*g.w])
	}
	return rows
}
