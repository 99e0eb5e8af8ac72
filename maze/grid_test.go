package maze

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zyedidia/generic/mapset"
)

// assertSymmetric checks every in-bounds wall bit against its mirror in the neighbor.
func assertSymmetric(t *testing.T, g *Grid) {
	t.Helper()
	for k := 0; k < g.Height(); k++ {
		for i := 0; i < g.Width(); i++ {
			c := Coord{I: i, K: k}
			for _, d := range Directions() {
				next := c.Step(d)
				if !g.InBounds(next) {
					assert.True(t, g.HasWall(c, d), "boundary wall %v missing at %v", d, c)
					continue
				}
				assert.Equal(t, g.HasWall(c, d), g.HasWall(next, d.Opposite()), "asymmetric wall %v at %v", d, c)
			}
		}
	}
}

func TestNewGrid(t *testing.T) {
	t.Run("All walls present", func(t *testing.T) {
		g, err := NewGrid(4, 3)
		require.NoError(t, err)
		assert.Equal(t, 4, g.Width())
		assert.Equal(t, 3, g.Height())
		assert.Equal(t, 12, g.Cells())
		assert.Equal(t, 0, g.Passages())
		for k := 0; k < 3; k++ {
			for i := 0; i < 4; i++ {
				assert.Equal(t, North|South|East|West, g.Walls(Coord{I: i, K: k}))
			}
		}
	})

	t.Run("Invalid dimensions", func(t *testing.T) {
		for _, dims := range [][2]int{{0, 3}, {3, 0}, {-1, 4}, {maxDimension + 1, 2}} {
			_, err := NewGrid(dims[0], dims[1])
			assert.ErrorIs(t, err, ErrInvalidDimension)
		}
	})
}

func TestDirections(t *testing.T) {
	for _, d := range Directions() {
		assert.Equal(t, d, d.Opposite().Opposite())
		di, dk := d.Offset()
		oi, ok := d.Opposite().Offset()
		assert.Equal(t, -di, oi)
		assert.Equal(t, -dk, ok)
	}
	assert.Equal(t, "N", North.String())
	assert.Equal(t, Coord{I: 2, K: 2}, Coord{I: 2, K: 3}.Step(North))
	assert.Equal(t, Coord{I: 3, K: 3}, Coord{I: 2, K: 3}.Step(East))

	t.Run("Order cannot be changed by callers", func(t *testing.T) {
		dirs := Directions()
		dirs[0], dirs[3] = dirs[3], dirs[0]
		assert.Equal(t, [4]Direction{North, South, East, West}, Directions())
	})
}

func TestOpen(t *testing.T) {
	g, err := NewGrid(3, 3)
	require.NoError(t, err)

	t.Run("Clears both sides", func(t *testing.T) {
		assert.True(t, g.Open(Coord{I: 1, K: 1}, East))
		assert.False(t, g.HasWall(Coord{I: 1, K: 1}, East))
		assert.False(t, g.HasWall(Coord{I: 2, K: 1}, West))
		assert.Equal(t, 1, g.Passages())
		assertSymmetric(t, g)
	})

	t.Run("Boundary is left untouched", func(t *testing.T) {
		assert.False(t, g.Open(Coord{I: 0, K: 0}, North))
		assert.False(t, g.Open(Coord{I: 2, K: 2}, East))
		assert.True(t, g.HasWall(Coord{I: 0, K: 0}, North))
		assert.Equal(t, 1, g.Passages())
	})

	t.Run("Reachable follows passages", func(t *testing.T) {
		assert.Equal(t, 2, g.Reachable(Coord{I: 1, K: 1}))
		assert.Equal(t, 1, g.Reachable(Coord{I: 0, K: 0}))
		assert.Equal(t, 0, g.Reachable(Coord{I: 5, K: 0}))
	})
}

func TestRender(t *testing.T) {
	g, err := NewGrid(2, 2)
	require.NoError(t, err)
	Carve(g, rand.New(rand.NewSource(3)))

	out := g.String()
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	assert.Len(t, lines, 5)
	assert.Equal(t, "+---+---+", lines[0])
	assert.Equal(t, "+---+---+", lines[4])

	path, err := ShortestPath(g, Coord{I: 0, K: 0}, Coord{I: 1, K: 1})
	require.NoError(t, err)
	drawn := g.Render(path, mapset.New[Coord]())
	assert.Equal(t, len(path), strings.Count(drawn, " . "))
}
