package maze

import (
	"github.com/zyedidia/generic/mapset"
)

// ChooseHazards samples trap cells from every cell that is neither on path nor
// the origin. floor(eligible*density) cells are drawn without replacement.
func ChooseHazards(g *Grid, path []Coord, density float64, rng Rand) mapset.Set[Coord] {
	hazards := mapset.New[Coord]()
	if density <= 0 {
		return hazards
	}

	excluded := mapset.New[Coord]()
	excluded.Put(Coord{I: 0, K: 0})
	for _, c := range path {
		excluded.Put(c)
	}

	eligible := make([]Coord, 0, g.Cells())
	for k := 0; k < g.nz; k++ {
		for i := 0; i < g.nx; i++ {
			c := Coord{I: i, K: k}
			if !excluded.Has(c) {
				eligible = append(eligible, c)
			}
		}
	}

	count := min(max(int(float64(len(eligible))*density), 0), len(eligible))

	// Partial Fisher-Yates: the first count slots become the sample.
	for n := 0; n < count; n++ {
		j := n + rng.Intn(len(eligible)-n)
		eligible[n], eligible[j] = eligible[j], eligible[n]
		hazards.Put(eligible[n])
	}
	return hazards
}
