// Package document defines the maze document consumed by the rendering front end.
package document

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
	"github.com/zyedidia/generic/mapset"

	"github.com/beka-birhanu/vinom-mazegen/maze"
)

const (
	layerCount  = 1
	groundLayer = 0
)

// Size describes the grid dimensions and the renderer's cell scale.
type Size struct {
	NX       int     `json:"nx" jsonschema:"minimum=1"`
	NZ       int     `json:"nz" jsonschema:"minimum=1"`
	CellSize float64 `json:"cellSize"`
}

// Anchor is a layered cell reference used for start and goal.
type Anchor struct {
	Layer int `json:"layer"`
	I     int `json:"i"`
	K     int `json:"k"`
}

// Point is a cell reference on the shortest path.
type Point struct {
	I int `json:"i"`
	K int `json:"k"`
}

// Walls flags are true when a wall blocks that side of the cell.
type Walls struct {
	N bool `json:"N"`
	S bool `json:"S"`
	E bool `json:"E"`
	W bool `json:"W"`
}

// Cell is one grid cell as exported.
type Cell struct {
	I     int   `json:"i"`
	K     int   `json:"k"`
	Walls Walls `json:"walls"`
	Trap  bool  `json:"trap"`
}

// Document is the complete exported maze. Cells is indexed [k][i].
type Document struct {
	ID           string   `json:"id"`
	Difficulty   string   `json:"difficulty"`
	Size         Size     `json:"size"`
	Layers       int      `json:"layers"`
	Start        Anchor   `json:"start"`
	Goal         Anchor   `json:"goal"`
	ShortestPath []Point  `json:"shortestPath"`
	Cells        [][]Cell `json:"cells"`
}

// Params carries everything New needs to package one build.
type Params struct {
	ID         string
	Difficulty string
	CellSize   float64
	Grid       *maze.Grid
	Start      maze.Coord
	Goal       maze.Coord
	Path       []maze.Coord
	Hazards    mapset.Set[maze.Coord]
}

// New snapshots a finished grid into a Document.
func New(p Params) *Document {
	g := p.Grid

	path := make([]Point, len(p.Path))
	for n, c := range p.Path {
		path[n] = Point{I: c.I, K: c.K}
	}

	cells := make([][]Cell, g.Height())
	for k := range cells {
		cells[k] = make([]Cell, g.Width())
		for i := range cells[k] {
			c := maze.Coord{I: i, K: k}
			cells[k][i] = Cell{
				I: i,
				K: k,
				Walls: Walls{
					N: g.HasWall(c, maze.North),
					S: g.HasWall(c, maze.South),
					E: g.HasWall(c, maze.East),
					W: g.HasWall(c, maze.West),
				},
				Trap: p.Hazards.Has(c),
			}
		}
	}

	return &Document{
		ID:           p.ID,
		Difficulty:   p.Difficulty,
		Size:         Size{NX: g.Width(), NZ: g.Height(), CellSize: p.CellSize},
		Layers:       layerCount,
		Start:        Anchor{Layer: groundLayer, I: p.Start.I, K: p.Start.K},
		Goal:         Anchor{Layer: groundLayer, I: p.Goal.I, K: p.Goal.K},
		ShortestPath: path,
		Cells:        cells,
	}
}

// Traps counts the trap cells.
func (d *Document) Traps() int {
	n := 0
	for _, row := range d.Cells {
		for _, c := range row {
			if c.Trap {
				n++
			}
		}
	}
	return n
}

// Render rebuilds the wall graph of d and draws it with the path and traps marked.
func (d *Document) Render() (string, error) {
	g, err := maze.NewGrid(d.Size.NX, d.Size.NZ)
	if err != nil {
		return "", err
	}

	traps := mapset.New[maze.Coord]()
	for k, row := range d.Cells {
		for i, c := range row {
			at := maze.Coord{I: i, K: k}
			if !c.Walls.S {
				g.Open(at, maze.South)
			}
			if !c.Walls.E {
				g.Open(at, maze.East)
			}
			if c.Trap {
				traps.Put(at)
			}
		}
	}

	path := make([]maze.Coord, len(d.ShortestPath))
	for n, p := range d.ShortestPath {
		path[n] = maze.Coord{I: p.I, K: p.K}
	}
	return g.Render(path, traps), nil
}

// Marshal encodes d as indented JSON.
func Marshal(d *Document) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// Unmarshal decodes a JSON maze document.
func Unmarshal(data []byte) (*Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Schema reflects the JSON Schema of Document for renderer-side validation.
func Schema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		DoNotReference: true,
	}
	schema := reflector.Reflect(new(Document))
	schema.Title = "Maze Document"
	schema.Description = "Grid maze with walls, traps and the shortest start to goal path."
	return schema
}

// Record pairs a document with the provenance of its build.
type Record struct {
	Document *Document
	Seed     int64
	BatchID  string // Empty for single builds
}
