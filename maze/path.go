package maze

import (
	"fmt"
	"slices"

	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"
)

// ShortestPath runs a breadth-first search from start and returns the cells of
// a shortest path to goal, both ends included. Neighbors are expanded in
// Directions() order, which fixes the tie-break between equal-length paths.
// ErrNoPath is returned when goal cannot be reached.
func ShortestPath(g *Grid, start, goal Coord) ([]Coord, error) {
	if !g.InBounds(start) || !g.InBounds(goal) {
		return nil, fmt.Errorf("%w: start %v goal %v", ErrOutOfBounds, start, goal)
	}

	prev := make(map[Coord]Coord)
	seen := mapset.New[Coord]()
	seen.Put(start)

	q := queue.New[Coord]()
	q.Enqueue(start)

	for !q.Empty() {
		cur := q.Dequeue()
		if cur == goal {
			break
		}

		for _, d := range directions {
			if g.HasWall(cur, d) {
				continue
			}
			next := cur.Step(d)
			if !g.InBounds(next) || seen.Has(next) {
				continue
			}
			seen.Put(next)
			prev[next] = cur
			q.Enqueue(next)
		}
	}

	if _, found := prev[goal]; !found && goal != start {
		return nil, ErrNoPath
	}

	path := []Coord{goal}
	for cur := goal; cur != start; {
		cur = prev[cur]
		path = append(path, cur)
	}
	slices.Reverse(path)
	return path, nil
}
