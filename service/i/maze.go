package i

import (
	"context"

	"github.com/beka-birhanu/vinom-mazegen/document"
	"github.com/beka-birhanu/vinom-mazegen/preset"
)

// MazeBuilder builds one maze document from a configuration and seed.
type MazeBuilder interface {
	// Build runs the full pipeline. An empty id asks the builder to derive one.
	Build(cfg preset.Config, seed int64, id string) (*document.Document, error)
}

// MazeStore persists finished maze documents.
type MazeStore interface {
	// Save writes the record and returns where it was stored.
	Save(ctx context.Context, rec document.Record) (string, error)
}

// MazeReader loads previously stored maze documents.
type MazeReader interface {
	// ByID returns the stored record with the given document id.
	ByID(ctx context.Context, id string) (*document.Record, error)
}

// MazeCache caches encoded documents of deterministic builds.
type MazeCache interface {
	// Get returns the cached payload and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores the payload under key.
	Set(ctx context.Context, key string, payload []byte) error

	// Lock takes a short lived lock on key so only one caller builds a missing entry.
	Lock(ctx context.Context, key string) (func(), error)
}
