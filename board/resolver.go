package board

import "github.com/kamstrup/intmap"

const (
	// MinGroupSize is the smallest connected group that is cleared.
	MinGroupSize = 4
	// PointsPerCell is the score awarded for each cleared cell.
	PointsPerCell = 10
)

// Pass is one detect-remove round of chain resolution.
type Pass struct {
	Groups  [][]Point
	Cleared int
	Points  int
}

// Chain is the sequence of passes triggered by a single lock or Resolve call.
type Chain struct {
	Passes []Pass
}

// Length returns the number of passes that removed cells.
func (c Chain) Length() int {
	return len(c.Passes)
}

// Cleared returns the total number of removed cells.
func (c Chain) Cleared() int {
	n := 0
	for _, p := range c.Passes {
		n += p.Cleared
	}
	return n
}

// Points returns the total score awarded by the chain.
func (c Chain) Points() int {
	n := 0
	for _, p := range c.Passes {
		n += p.Points
	}
	return n
}

// resolver finds same-colored groups with an iterative flood fill. Its
// buffers are reused between passes.
type resolver struct {
	visited *intmap.Set[int]
	stack   []int
}

func newResolver(cells int) *resolver {
	return &resolver{
		visited: intmap.NewSet[int](cells),
		stack:   make([]int, 0, cells),
	}
}

// groups returns every maximal 4-connected group of same-colored cells,
// discovered in row-major order of their first cell.
func (r *resolver) groups(g *grid) [][]Point {
	r.visited.Clear()

	var out [][]Point
	for i, c := range g.cells {
		if c == None || r.visited.Has(i) {
			continue
		}
		out = append(out, r.fill(g, i, c))
	}
	return out
}

func (r *resolver) fill(g *grid, start int, c Color) []Point {
	var group []Point

	r.visited.Add(start)
	r.stack = append(r.stack[:0], start)
	for len(r.stack) > 0 {
		i := r.stack[len(r.stack)-1]
		r.stack = r.stack[:len(r.stack)-1]

		p := g.point(i)
		group = append(group, p)

		for _, d := range [4]Point{{0, 1}, {1, 0}, {0, -1}, {-1, 0}} {
			nx, ny := p.X+d.X, p.Y+d.Y
			if !g.InBounds(nx, ny) {
				continue
			}
			n := g.index(nx, ny)
			if g.cells[n] != c || r.visited.Has(n) {
				continue
			}
			r.visited.Add(n)
			r.stack = append(r.stack, n)
		}
	}
	return group
}

// pass removes every group of at least MinGroupSize cells at once. It
// returns false when nothing qualified. Gravity is left to the caller.
func (r *resolver) pass(g *grid) (Pass, bool) {
	var pass Pass
	for _, group := range r.groups(g) {
		if len(group) < MinGroupSize {
			continue
		}
		pass.Groups = append(pass.Groups, group)
		pass.Cleared += len(group)
	}
	if pass.Cleared == 0 {
		return Pass{}, false
	}

	for _, group := range pass.Groups {
		for _, p := range group {
			g.cells[g.index(p.X, p.Y)] = None
		}
	}
	pass.Points = pass.Cleared * PointsPerCell
	return pass, true
}
