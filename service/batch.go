package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/beka-birhanu/vinom-mazegen/document"
	"github.com/beka-birhanu/vinom-mazegen/preset"
	"github.com/beka-birhanu/vinom-mazegen/service/i"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	defaultWorkers = 1
	baseSeedRange  = 1_000_000_000
)

// Batch errors.
var (
	ErrInvalidCount = errors.New("batch count must be positive")
	ErrMissingStore = errors.New("batch requires a maze store")
)

var _ i.BatchRunner = &Batch{}

// Batch drives repeated builds of one difficulty and persists each document.
type Batch struct {
	presets  *preset.Registry
	builder  i.MazeBuilder
	store    i.MazeStore
	workers  int
	logger   logrus.FieldLogger
	baseSeed func() int64
}

// BatchConfig holds the dependencies of a Batch.
type BatchConfig struct {
	Presets *preset.Registry // Defaults to preset.Defaults()
	Builder i.MazeBuilder
	Store   i.MazeStore
	Workers int // Concurrent builds; at least one
	Logger  logrus.FieldLogger
}

// NewBatch validates c and returns a Batch.
func NewBatch(c BatchConfig) (*Batch, error) {
	if c.Store == nil {
		return nil, ErrMissingStore
	}
	if c.Presets == nil {
		c.Presets = preset.Defaults()
	}
	if c.Logger == nil {
		c.Logger = logrus.StandardLogger()
	}
	if c.Builder == nil {
		c.Builder = NewGenerator(c.Logger)
	}
	if c.Workers < 1 {
		c.Workers = defaultWorkers
	}

	return &Batch{
		presets:  c.Presets,
		builder:  c.Builder,
		store:    c.Store,
		workers:  c.Workers,
		logger:   c.Logger,
		baseSeed: func() int64 { return rand.Int63n(baseSeedRange) },
	}, nil
}

// Run builds req.Count mazes with seeds base+index and ids
// maze_<difficulty>_<index>. Builds run on a bounded worker pool; the first
// failure cancels the rest and is returned.
func (b *Batch) Run(ctx context.Context, req i.BatchRequest) (*i.BatchResult, error) {
	cfg, err := b.presets.Lookup(req.Difficulty)
	if err != nil {
		return nil, err
	}
	if req.Count < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCount, req.Count)
	}

	base := b.baseSeed()
	if req.Seed != nil {
		base = *req.Seed
	}

	result := &i.BatchResult{
		BatchID:    uuid.New(),
		Difficulty: cfg.Name,
		BaseSeed:   base,
		Mazes:      make([]i.BatchItem, req.Count),
	}

	logger := b.logger.WithFields(logrus.Fields{
		"batch":      result.BatchID,
		"difficulty": cfg.Name,
		"baseSeed":   base,
	})
	logger.WithField("count", req.Count).Info("generating mazes")

	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(b.workers)
	for idx := range req.Count {
		grp.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			seed := base + int64(idx)
			doc, err := b.builder.Build(cfg, seed, fmt.Sprintf("maze_%s_%03d", cfg.Name, idx))
			if err != nil {
				return err
			}

			loc, err := b.store.Save(ctx, document.Record{
				Document: doc,
				Seed:     seed,
				BatchID:  result.BatchID.String(),
			})
			if err != nil {
				return fmt.Errorf("saving %s: %w", doc.ID, err)
			}

			result.Mazes[idx] = i.BatchItem{ID: doc.ID, Seed: seed, Location: loc}
			logger.WithField("location", loc).Debug("maze saved")
			return nil
		})
	}

	if err := grp.Wait(); err != nil {
		logger.WithError(err).Error("batch aborted")
		return nil, err
	}
	return result, nil
}
