package document

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zyedidia/generic/mapset"

	"github.com/beka-birhanu/vinom-mazegen/maze"
)

func sampleDocument(t *testing.T) *Document {
	t.Helper()
	g, err := maze.NewGrid(3, 2)
	require.NoError(t, err)
	g.Open(maze.Coord{I: 0, K: 0}, maze.East)
	g.Open(maze.Coord{I: 1, K: 0}, maze.East)
	g.Open(maze.Coord{I: 2, K: 0}, maze.South)
	g.Open(maze.Coord{I: 0, K: 0}, maze.South)
	g.Open(maze.Coord{I: 0, K: 1}, maze.East)

	start, goal := maze.Coord{I: 0, K: 0}, maze.Coord{I: 2, K: 1}
	path, err := maze.ShortestPath(g, start, goal)
	require.NoError(t, err)

	hazards := mapset.New[maze.Coord]()
	for k := 0; k < 2; k++ {
		for i := 0; i < 3; i++ {
			c := maze.Coord{I: i, K: k}
			if c != start && !containsCoord(path, c) {
				hazards.Put(c)
				break
			}
		}
	}

	return New(Params{
		ID:         "maze_test_001",
		Difficulty: "test",
		CellSize:   2.5,
		Grid:       g,
		Start:      start,
		Goal:       goal,
		Path:       path,
		Hazards:    hazards,
	})
}

func containsCoord(path []maze.Coord, c maze.Coord) bool {
	for _, p := range path {
		if p == c {
			return true
		}
	}
	return false
}

func TestNew(t *testing.T) {
	d := sampleDocument(t)

	assert.Equal(t, "maze_test_001", d.ID)
	assert.Equal(t, Size{NX: 3, NZ: 2, CellSize: 2.5}, d.Size)
	assert.Equal(t, 1, d.Layers)
	assert.Equal(t, Anchor{Layer: 0, I: 0, K: 0}, d.Start)
	assert.Equal(t, Anchor{Layer: 0, I: 2, K: 1}, d.Goal)
	assert.Equal(t, Point{I: 0, K: 0}, d.ShortestPath[0])
	assert.Equal(t, Point{I: 2, K: 1}, d.ShortestPath[len(d.ShortestPath)-1])

	require.Len(t, d.Cells, 2)
	for k, row := range d.Cells {
		require.Len(t, row, 3)
		for i, c := range row {
			assert.Equal(t, i, c.I)
			assert.Equal(t, k, c.K)
		}
	}

	t.Run("Outer walls are present", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			assert.True(t, d.Cells[0][i].Walls.N)
			assert.True(t, d.Cells[1][i].Walls.S)
		}
		for k := 0; k < 2; k++ {
			assert.True(t, d.Cells[k][0].Walls.W)
			assert.True(t, d.Cells[k][2].Walls.E)
		}
	})

	t.Run("Path steps are open", func(t *testing.T) {
		for n := 1; n < len(d.ShortestPath); n++ {
			a, b := d.ShortestPath[n-1], d.ShortestPath[n]
			from := d.Cells[a.K][a.I].Walls
			switch {
			case b.I == a.I+1:
				assert.False(t, from.E)
			case b.I == a.I-1:
				assert.False(t, from.W)
			case b.K == a.K+1:
				assert.False(t, from.S)
			case b.K == a.K-1:
				assert.False(t, from.N)
			}
		}
	})

	assert.Equal(t, 1, d.Traps())
	assert.True(t, d.Cells[1][0].Trap)
	assert.Len(t, d.ShortestPath, 4)
}

func TestMarshal(t *testing.T) {
	d := sampleDocument(t)
	data, err := Marshal(d)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{"id", "difficulty", "size", "layers", "start", "goal", "shortestPath", "cells"} {
		assert.Contains(t, raw, key)
	}

	cells := raw["cells"].([]any)
	first := cells[0].([]any)[0].(map[string]any)
	assert.Contains(t, first, "walls")
	assert.Contains(t, first, "trap")
	assert.Contains(t, first["walls"].(map[string]any), "N")

	back, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, d, back)

	again, err := Marshal(sampleDocument(t))
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestSchema(t *testing.T) {
	data, err := json.Marshal(Schema())
	require.NoError(t, err)
	assert.Contains(t, string(data), "shortestPath")
	assert.Contains(t, string(data), "cellSize")
	assert.Contains(t, string(data), "Maze Document")
}

func TestRender(t *testing.T) {
	out, err := sampleDocument(t).Render()
	require.NoError(t, err)

	want := "+---+---+---+\n" +
		"| .   .   . |\n" +
		"+   +---+   +\n" +
		"| x     | . |\n" +
		"+---+---+---+\n"
	assert.Equal(t, want, out)

	_, err = (&Document{}).Render()
	assert.ErrorIs(t, err, maze.ErrInvalidDimension)
}
