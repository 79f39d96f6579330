package store

import (
	"context"

	"riskreport-backend/domain/report"
)

// ArtifactStore loads a single account's pre-computed analysis artifact.
// Implementations must be safe for concurrent use; handlers call Load on
// every request and rely on the store for caching.
type ArtifactStore interface {
	Load(ctx context.Context, accountID string) (*report.Document, error)
}
