package board

// Piece is a single colored cell that is still falling.
type Piece struct {
	Point
	Color Color
}

// Pair is two adjacent falling pieces moved and rotated as one unit.
type Pair [2]Piece

func spawnPair(w int, a, b Color) Pair {
	return Pair{
		{Point: Point{X: w/2 - 1, Y: 0}, Color: a},
		{Point: Point{X: w / 2, Y: 0}, Color: b},
	}
}

// Horizontal reports whether both pieces share a row.
func (p Pair) Horizontal() bool {
	return p[0].Y == p[1].Y
}

// Adjacent reports whether the pieces touch orthogonally.
func (p Pair) Adjacent() bool {
	dx := p[0].X - p[1].X
	dy := p[0].Y - p[1].Y
	return (dy == 0 && (dx == 1 || dx == -1)) || (dx == 0 && (dy == 1 || dy == -1))
}

// Colors returns the colors of both pieces in pair order.
func (p Pair) Colors() [2]Color {
	return [2]Color{p[0].Color, p[1].Color}
}

// shifted returns the pair translated by (dx, dy).
func (p Pair) shifted(dx, dy int) Pair {
	for i := range p {
		p[i].X += dx
		p[i].Y += dy
	}
	return p
}

// fits reports whether both pieces sit on free in-bounds cells of g.
func (p Pair) fits(g *grid) bool {
	return g.free(p[0].X, p[0].Y) && g.free(p[1].X, p[1].Y)
}

// rotated returns the pair after one rotation against g, and whether the
// rotation was legal. Horizontal pairs raise the right piece above the left
// one; vertical pairs swing the lower piece to the right of the upper one,
// falling back to the left.
func (p Pair) rotated(g *grid) (Pair, bool) {
	if p.Horizontal() {
		pivot, moving := 0, 1
		if p[1].X < p[0].X {
			pivot, moving = 1, 0
		}
		target := Point{X: p[pivot].X, Y: p[pivot].Y - 1}
		if !g.free(target.X, target.Y) {
			return p, false
		}
		p[moving].Point = target
		return p, true
	}

	upper, lower := 0, 1
	if p[1].Y < p[0].Y {
		upper, lower = 1, 0
	}
	for _, dx := range [2]int{1, -1} {
		target := Point{X: p[upper].X + dx, Y: p[upper].Y}
		if g.free(target.X, target.Y) {
			p[lower].Point = target
			return p, true
		}
	}
	return p, false
}
