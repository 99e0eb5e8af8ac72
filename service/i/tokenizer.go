package i

import (
	"time"
)

// Tokenizer issues and verifies the operator tokens guarding batch routes.
type Tokenizer interface {
	// Generate signs a token for subject that expires after ttl.
	Generate(subject string, ttl time.Duration) (string, error)

	// Decode validates a token and returns its claims.
	Decode(token string) (map[string]interface{}, error)
}
