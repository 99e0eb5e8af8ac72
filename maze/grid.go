/*
Package maze provides tools for carving and solving rectangular grid mazes.

A Grid stores one wall mask per cell. Walls are always removed in pairs, so
the grid graph stays symmetric: if a cell is open towards a neighbor, the
neighbor is open back towards the cell.

The package carves perfect mazes with a randomized depth-first backtracker,
injects extra passages to create loops, finds breadth-first shortest paths and
samples hazard cells off the critical path. All randomness comes from a Rand
supplied by the caller so a seed reproduces the same maze.
*/
package maze

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zyedidia/generic/mapset"
)

const (
	maxDimension = 512
)

// Maze errors.
var (
	ErrInvalidDimension = errors.New("invalid maze dimensions")
	ErrOutOfBounds      = errors.New("cell is out of the maze")
	ErrNoPath           = errors.New("goal is unreachable from start")
)

// Direction is a wall bit. A Direction value may also hold a set of bits.
type Direction uint8

// Cardinal directions.
const (
	North Direction = 1 << iota
	South
	East
	West

	allWalls = North | South | East | West
)

var directions = [4]Direction{North, South, East, West}

// Directions returns the fixed enumeration order used by every traversal.
// The result is a copy.
func Directions() [4]Direction {
	return directions
}

// Offset returns the unit step for d as (di, dk).
func (d Direction) Offset() (int, int) {
	switch d {
	case North:
		return 0, -1
	case South:
		return 0, 1
	case East:
		return 1, 0
	case West:
		return -1, 0
	}
	return 0, 0
}

// Opposite returns the direction pointing back.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	}
	return 0
}

// String returns the single letter name of d.
func (d Direction) String() string {
	switch d {
	case North:
		return "N"
	case South:
		return "S"
	case East:
		return "E"
	case West:
		return "W"
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

// Coord is a cell position: I is the column, K is the row.
type Coord struct {
	I int
	K int
}

// Step returns the coordinate one cell away in direction d.
func (c Coord) Step(d Direction) Coord {
	di, dk := d.Offset()
	return Coord{I: c.I + di, K: c.K + dk}
}

// Grid is an nz x nx lattice of wall masks, indexed walls[k][i].
type Grid struct {
	nx    int
	nz    int
	walls [][]Direction
}

// NewGrid allocates a grid with every wall present.
func NewGrid(nx, nz int) (*Grid, error) {
	if min(nx, nz) <= 0 || max(nx, nz) > maxDimension {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimension, nx, nz)
	}

	walls := make([][]Direction, nz)
	for k := range walls {
		walls[k] = make([]Direction, nx)
		for i := range walls[k] {
			walls[k][i] = allWalls
		}
	}

	return &Grid{nx: nx, nz: nz, walls: walls}, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.nx
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.nz
}

// Cells returns the total number of cells.
func (g *Grid) Cells() int {
	return g.nx * g.nz
}

// InBounds reports whether c lies inside the grid.
func (g *Grid) InBounds(c Coord) bool {
	return c.I >= 0 && c.I < g.nx && c.K >= 0 && c.K < g.nz
}

// Walls returns the wall mask of c.
func (g *Grid) Walls(c Coord) Direction {
	return g.walls[c.K][c.I]
}

// HasWall reports whether a wall blocks movement from c towards d.
func (g *Grid) HasWall(c Coord, d Direction) bool {
	return g.walls[c.K][c.I]&d != 0
}

// Open removes the wall between c and its neighbor in direction d.
// Both sides are cleared together; nothing changes when the neighbor is
// outside the grid. It reports whether the grid was modified.
func (g *Grid) Open(c Coord, d Direction) bool {
	next := c.Step(d)
	if !g.InBounds(c) || !g.InBounds(next) {
		return false
	}

	g.walls[c.K][c.I] &^= d
	g.walls[next.K][next.I] &^= d.Opposite()
	return true
}

// Passages counts the open passages between adjacent cells.
func (g *Grid) Passages() int {
	count := 0
	for k := 0; k < g.nz; k++ {
		for i := 0; i < g.nx; i++ {
			// South and East only, so each passage is counted once.
			c := Coord{I: i, K: k}
			if k+1 < g.nz && !g.HasWall(c, South) {
				count++
			}
			if i+1 < g.nx && !g.HasWall(c, East) {
				count++
			}
		}
	}
	return count
}

// Reachable returns the number of cells reachable from start over open passages.
func (g *Grid) Reachable(start Coord) int {
	if !g.InBounds(start) {
		return 0
	}

	seen := mapset.New[Coord]()
	seen.Put(start)
	frontier := []Coord{start}
	for len(frontier) > 0 {
		cur := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]
		for _, d := range directions {
			next := cur.Step(d)
			if g.HasWall(cur, d) || !g.InBounds(next) || seen.Has(next) {
				continue
			}
			seen.Put(next)
			frontier = append(frontier, next)
		}
	}
	return seen.Size()
}

// String provides a textual representation of the maze.
func (g *Grid) String() string {
	return g.Render(nil, mapset.New[Coord]())
}

// Render draws the maze, marking path cells with '.' and hazards with 'x'.
func (g *Grid) Render(path []Coord, hazards mapset.Set[Coord]) string {
	onPath := mapset.New[Coord]()
	for _, c := range path {
		onPath.Put(c)
	}

	var b strings.Builder

	// Top boundary
	b.WriteString("+" + strings.Repeat("---+", g.nx) + "\n")

	for k := 0; k < g.nz; k++ {
		b.WriteString("|")
		for i := 0; i < g.nx; i++ {
			c := Coord{I: i, K: k}
			switch {
			case hazards.Has(c):
				b.WriteString(" x ")
			case onPath.Has(c):
				b.WriteString(" . ")
			default:
				b.WriteString("   ")
			}
			if g.HasWall(c, East) {
				b.WriteString("|")
			} else {
				b.WriteString(" ")
			}
		}
		b.WriteString("\n+")
		for i := 0; i < g.nx; i++ {
			if g.HasWall(Coord{I: i, K: k}, South) {
				b.WriteString("---+")
			} else {
				b.WriteString("   +")
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}
