// Package mazeapi exposes maze generation over HTTP.
package mazeapi

import (
	"github.com/beka-birhanu/vinom-mazegen/preset"
)

// BatchRequest represents a request to generate and store a batch of mazes.
type BatchRequest struct {
	Difficulty string `json:"difficulty" binding:"required"`
	Count      int    `json:"count" binding:"required,min=1"`
	Seed       *int64 `json:"seed"`
}

// PresetsResponse lists the difficulty tiers the server can build.
type PresetsResponse struct {
	Presets []preset.Config `json:"presets"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}
