package i

import (
	"context"

	"github.com/google/uuid"
)

// BatchRequest asks for Count mazes of one difficulty.
type BatchRequest struct {
	Difficulty string
	Count      int
	Seed       *int64 // Base seed; chosen at random when nil
}

// BatchItem describes one persisted maze of a batch.
type BatchItem struct {
	ID       string `json:"id"`
	Seed     int64  `json:"seed"`
	Location string `json:"location"`
}

// BatchResult lists a finished batch in index order.
type BatchResult struct {
	BatchID    uuid.UUID   `json:"batchId"`
	Difficulty string      `json:"difficulty"`
	BaseSeed   int64       `json:"baseSeed"`
	Mazes      []BatchItem `json:"mazes"`
}

// BatchRunner generates and persists batches of mazes.
type BatchRunner interface {
	Run(ctx context.Context, req BatchRequest) (*BatchResult, error)
}
