package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beka-birhanu/vinom-mazegen/document"
	"github.com/beka-birhanu/vinom-mazegen/preset"
	"github.com/beka-birhanu/vinom-mazegen/service/i"
)

type memoryStore struct {
	sync.Mutex
	records map[string]document.Record
	failOn  string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{records: make(map[string]document.Record)}
}

func (m *memoryStore) Save(_ context.Context, rec document.Record) (string, error) {
	if rec.Document.ID == m.failOn {
		return "", errors.New("disk full")
	}
	m.Lock()
	defer m.Unlock()
	m.records[rec.Document.ID] = rec
	return "mem://" + rec.Document.ID, nil
}

func newTestBatch(t *testing.T, store i.MazeStore, workers int) *Batch {
	t.Helper()
	b, err := NewBatch(BatchConfig{Store: store, Workers: workers, Logger: quietLogger()})
	require.NoError(t, err)
	return b
}

func TestBatchRun(t *testing.T) {
	seed := int64(500)

	t.Run("Seeds and ids follow the index", func(t *testing.T) {
		store := newMemoryStore()
		res, err := newTestBatch(t, store, 3).Run(context.Background(), i.BatchRequest{Difficulty: "medium", Count: 5, Seed: &seed})
		require.NoError(t, err)

		assert.Equal(t, int64(500), res.BaseSeed)
		assert.Equal(t, "medium", res.Difficulty)
		require.Len(t, res.Mazes, 5)
		for idx, item := range res.Mazes {
			id := fmt.Sprintf("maze_medium_%03d", idx)
			assert.Equal(t, id, item.ID)
			assert.Equal(t, seed+int64(idx), item.Seed)
			assert.Equal(t, "mem://"+id, item.Location)

			rec := store.records[id]
			assert.Equal(t, res.BatchID.String(), rec.BatchID)
			assert.Equal(t, seed+int64(idx), rec.Seed)
		}
	})

	t.Run("Worker count does not change output", func(t *testing.T) {
		serial, parallel := newMemoryStore(), newMemoryStore()
		_, err := newTestBatch(t, serial, 1).Run(context.Background(), i.BatchRequest{Difficulty: "hard", Count: 4, Seed: &seed})
		require.NoError(t, err)
		_, err = newTestBatch(t, parallel, 4).Run(context.Background(), i.BatchRequest{Difficulty: "hard", Count: 4, Seed: &seed})
		require.NoError(t, err)

		for id, rec := range serial.records {
			want, err := document.Marshal(rec.Document)
			require.NoError(t, err)
			got, err := document.Marshal(parallel.records[id].Document)
			require.NoError(t, err)
			assert.Equal(t, want, got, id)
		}
	})

	t.Run("Matches a single build with the same seed", func(t *testing.T) {
		store := newMemoryStore()
		_, err := newTestBatch(t, store, 2).Run(context.Background(), i.BatchRequest{Difficulty: "easy", Count: 2, Seed: &seed})
		require.NoError(t, err)

		cfg, err := preset.Defaults().Lookup("easy")
		require.NoError(t, err)
		single, err := NewGenerator(quietLogger()).Build(cfg, seed+1, "maze_easy_001")
		require.NoError(t, err)
		assert.Equal(t, single, store.records["maze_easy_001"].Document)
	})

	t.Run("Random base seed", func(t *testing.T) {
		b := newTestBatch(t, newMemoryStore(), 1)
		b.baseSeed = func() int64 { return 42 }
		res, err := b.Run(context.Background(), i.BatchRequest{Difficulty: "easy", Count: 1})
		require.NoError(t, err)
		assert.Equal(t, int64(42), res.BaseSeed)
		assert.Equal(t, int64(42), res.Mazes[0].Seed)
	})
}

func TestBatchErrors(t *testing.T) {
	t.Run("Unknown difficulty fails before any build", func(t *testing.T) {
		store := newMemoryStore()
		_, err := newTestBatch(t, store, 1).Run(context.Background(), i.BatchRequest{Difficulty: "nightmare", Count: 3})
		assert.ErrorIs(t, err, preset.ErrUnknownDifficulty)
		assert.Empty(t, store.records)
	})

	t.Run("Count must be positive", func(t *testing.T) {
		_, err := newTestBatch(t, newMemoryStore(), 1).Run(context.Background(), i.BatchRequest{Difficulty: "easy", Count: 0})
		assert.ErrorIs(t, err, ErrInvalidCount)
	})

	t.Run("Store failure aborts the batch", func(t *testing.T) {
		store := newMemoryStore()
		store.failOn = "maze_easy_001"
		_, err := newTestBatch(t, store, 1).Run(context.Background(), i.BatchRequest{Difficulty: "easy", Count: 4})
		assert.ErrorContains(t, err, "saving maze_easy_001: disk full")
	})

	t.Run("Cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := newTestBatch(t, newMemoryStore(), 2).Run(ctx, i.BatchRequest{Difficulty: "easy", Count: 3})
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("Store is required", func(t *testing.T) {
		_, err := NewBatch(BatchConfig{})
		assert.ErrorIs(t, err, ErrMissingStore)
	})
}
