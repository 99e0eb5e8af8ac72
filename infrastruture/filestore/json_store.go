// Package filestore writes maze documents as JSON files, one per document id.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/beka-birhanu/vinom-mazegen/document"
	"github.com/beka-birhanu/vinom-mazegen/service/i"
)

// ErrInvalidID is returned for ids that cannot be used as a file name.
var ErrInvalidID = errors.New("invalid maze id for file name")

var _ i.MazeStore = &JSONStore{}

// JSONStore saves documents under Dir as <id>.json.
type JSONStore struct {
	dir string
}

// NewJSONStore returns a store rooted at dir. The directory is created on first save.
func NewJSONStore(dir string) *JSONStore {
	return &JSONStore{dir: dir}
}

// Save writes the document through a temp file and rename, returning the final path.
func (s *JSONStore) Save(ctx context.Context, rec document.Record) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	id := rec.Document.ID
	if err := checkID(id); err != nil {
		return "", err
	}

	data, err := document.Marshal(rec.Document)
	if err != nil {
		return "", fmt.Errorf("marshal maze %s: %w", id, err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	path := filepath.Join(s.dir, id+".json")
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return "", fmt.Errorf("write temp maze file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("replace maze file: %w", err)
	}

	return path, nil
}

// Load reads a document previously written by Save.
func (s *JSONStore) Load(id string) (*document.Document, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.dir, id+".json"))
	if err != nil {
		return nil, err
	}
	return document.Unmarshal(data)
}

// checkID rejects ids that would resolve outside the store directory.
func checkID(id string) error {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}
