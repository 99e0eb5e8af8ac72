// Package service runs maze builds and batches on top of the maze package.
package service

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/beka-birhanu/vinom-mazegen/document"
	"github.com/beka-birhanu/vinom-mazegen/maze"
	"github.com/beka-birhanu/vinom-mazegen/preset"
	"github.com/beka-birhanu/vinom-mazegen/service/i"
	"github.com/sirupsen/logrus"
)

const (
	idSuffixRange = 1_000_000
)

// Build errors.
var (
	ErrUnreachableGoal = errors.New("no path found from start to goal")
)

var _ i.MazeBuilder = &Generator{}

// Generator assembles maze documents. It keeps no state between builds.
type Generator struct {
	logger logrus.FieldLogger
	carve  func(*maze.Grid, maze.Rand)
}

// NewGenerator returns a Generator that logs through logger.
func NewGenerator(logger logrus.FieldLogger) *Generator {
	return &Generator{
		logger: logger,
		carve:  maze.Carve,
	}
}

// Build carves, loops, solves and traps one maze. The random sequence is
// drawn from a single generator seeded with seed, so equal inputs give equal
// documents. When id is empty one is derived as maze_<difficulty>_<n>.
func (g *Generator) Build(cfg preset.Config, seed int64, id string) (*document.Document, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	grid, err := maze.NewGrid(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(seed))
	g.carve(grid, rng)

	loops := 0
	if cfg.ExtraOpenRatio > 0 {
		loops = maze.InjectLoops(grid, cfg.ExtraOpenRatio, rng)
	}

	fields := logrus.Fields{
		"difficulty": cfg.Name,
		"size":       fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"seed":       seed,
	}

	start := maze.Coord{I: 0, K: 0}
	goal := maze.Coord{I: cfg.Width - 1, K: cfg.Height - 1}
	path, err := maze.ShortestPath(grid, start, goal)
	if err != nil {
		g.logger.WithFields(fields).WithError(err).Error("maze has no solution")
		return nil, fmt.Errorf("%w: difficulty=%s size=%dx%d seed=%d: %v", ErrUnreachableGoal, cfg.Name, cfg.Width, cfg.Height, seed, err)
	}

	hazards := maze.ChooseHazards(grid, path, cfg.TrapDensity, rng)

	if id == "" {
		id = fmt.Sprintf("maze_%s_%d", cfg.Name, rng.Intn(idSuffixRange))
	}

	g.logger.WithFields(fields).WithFields(logrus.Fields{
		"id":       id,
		"passages": grid.Passages(),
		"loops":    loops,
		"pathLen":  len(path),
		"traps":    hazards.Size(),
	}).Debug("maze built")

	return document.New(document.Params{
		ID:         id,
		Difficulty: cfg.Name,
		CellSize:   cfg.CellSize,
		Grid:       grid,
		Start:      start,
		Goal:       goal,
		Path:       path,
		Hazards:    hazards,
	}), nil
}
