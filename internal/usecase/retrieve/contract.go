package retrieve

import (
	"context"

	"github.com/ktravel-lab/tripchat/internal/domain"
)

// Repository defines the storage contract for place retrieval.
type Repository interface {
	// TopK returns the nearest records of one domain collection at or above
	// minScore.
	TopK(
		ctx context.Context, dom domain.PlaceDomain,
		vector []float32, k int, minScore float64,
	) ([]domain.Match, error)

	// Sample returns up to n records from a domain collection.
	Sample(ctx context.Context, dom domain.PlaceDomain, n int) ([]domain.SearchCandidate, error)
}

// Embedder vectorizes query variants.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
