package maze

// InjectLoops opens extra walls on top of a carved maze to create cycles.
// It makes floor(cells*ratio) attempts; each picks a random cell and opens the
// first in-bounds wall found in a shuffled direction order. An attempt on a
// cell with no remaining inner walls is wasted. Returns the number of
// passages actually opened.
func InjectLoops(g *Grid, ratio float64, rng Rand) int {
	if ratio <= 0 {
		return 0
	}

	attempts := int(float64(g.Cells()) * ratio)
	opened := 0
	for range attempts {
		c := Coord{I: rng.Intn(g.nx), K: rng.Intn(g.nz)}

		dirs := Directions()
		rng.Shuffle(len(dirs), func(a, b int) { dirs[a], dirs[b] = dirs[b], dirs[a] })

		for _, d := range dirs {
			if !g.InBounds(c.Step(d)) {
				continue
			}
			if g.HasWall(c, d) {
				g.Open(c, d)
				opened++
				break
			}
		}
	}
	return opened
}
