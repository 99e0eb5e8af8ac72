package maze

import (
	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/stack"
)

// Rand is the subset of *rand.Rand the generators draw from.
type Rand interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// neighborMove is an unvisited neighbor reachable by opening one wall.
type neighborMove struct {
	dir Direction
	to  Coord
}

// Carve turns a fully walled grid into a perfect maze with a randomized
// depth-first backtracker rooted at (0,0). Every cell is visited once and
// exactly Cells()-1 passages are opened.
func Carve(g *Grid, rng Rand) {
	start := Coord{I: 0, K: 0}
	visited := mapset.New[Coord]()
	visited.Put(start)

	cells := stack.New[Coord]()
	cells.Push(start)

	candidates := make([]neighborMove, 0, len(directions))
	for cells.Size() > 0 {
		cur := cells.Peek()

		candidates = candidates[:0]
		for _, d := range directions {
			next := cur.Step(d)
			if g.InBounds(next) && !visited.Has(next) {
				candidates = append(candidates, neighborMove{dir: d, to: next})
			}
		}

		if len(candidates) == 0 {
			cells.Pop()
			continue
		}

		pick := candidates[rng.Intn(len(candidates))]
		g.Open(cur, pick.dir)
		visited.Put(pick.to)
		cells.Push(pick.to)
	}
}
