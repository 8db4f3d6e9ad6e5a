// Package retrieve fans a set of query variants out across the place domains
// and fuses vector similarity with keyword overlap into a single best result.
package retrieve

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/ktravel-lab/tripchat/internal/domain"
	"github.com/ktravel-lab/tripchat/internal/metrics"
)

const (
	topK           = 5
	minVectorScore = 0.3
)

// Service is the multi-domain retriever.
type Service struct {
	repo   Repository
	embed  Embedder
	logger *zap.Logger
}

// New creates a retrieval service.
func New(repo Repository, embed Embedder, logger *zap.Logger) *Service {
	return &Service{repo: repo, embed: embed, logger: logger}
}

// Search runs every variant against every domain and returns the qualifying
// per-domain bests plus the single overall best. A failing variant is logged
// and skipped; a domain whose variants all fail contributes nothing. The
// caller detects "no candidate" via a nil Best.
func (s *Service) Search(
	ctx context.Context, variants []string, domains []domain.PlaceDomain,
) domain.RetrievalOutcome {
	// One goroutine per domain searched; the pool width is bounded by the
	// domain count (at most three).
	bests := make([]*domain.SearchCandidate, len(domains))
	var wg sync.WaitGroup
	for i, dom := range domains {
		wg.Add(1)
		go func(slot int, dom domain.PlaceDomain) {
			defer wg.Done()
			bests[slot] = s.searchDomain(ctx, dom, variants)
		}(i, dom)
	}
	wg.Wait()

	out := domain.RetrievalOutcome{ByDomain: make(map[domain.PlaceDomain]domain.SearchCandidate)}
	for i, dom := range domains {
		if best := bests[i]; best != nil && best.Qualifies() {
			out.ByDomain[dom] = *best
		}
	}
	out.Best = pickOverallBest(out.ByDomain)
	return out
}

// Sample returns up to n records from one domain for the random
// recommendation branch.
func (s *Service) Sample(ctx context.Context, dom domain.PlaceDomain, n int) ([]domain.SearchCandidate, error) {
	return s.repo.Sample(ctx, dom, n)
}

// searchDomain tries every variant against one domain and returns the
// candidate with the highest combined score, or nil when nothing was found.
func (s *Service) searchDomain(
	ctx context.Context, dom domain.PlaceDomain, variants []string,
) *domain.SearchCandidate {
	var best *domain.SearchCandidate

	for _, variant := range variants {
		emb, err := s.embed.Embed(ctx, variant)
		if err != nil {
			s.skipVariant(dom, variant, "embed", err)
			continue
		}

		matches, err := s.repo.TopK(ctx, dom, emb.Embedding, topK, minVectorScore)
		if err != nil {
			s.skipVariant(dom, variant, "search", err)
			continue
		}

		queryWords := wordSet(variant)
		for _, m := range matches {
			metrics.RetrievalCandidatesTotal.WithLabelValues(string(dom)).Inc()
			overlap := jaccard(queryWords, wordSet(m.Payload.Title))
			c := domain.NewCandidate(dom, m.ID, m.Score, overlap, m.Payload)
			if best == nil || c.CombinedScore > best.CombinedScore {
				best = &c
			}
		}
	}

	return best
}

func (s *Service) skipVariant(dom domain.PlaceDomain, variant, stage string, err error) {
	metrics.VariantFailuresTotal.WithLabelValues(string(dom)).Inc()
	s.logger.Warn("variant skipped",
		zap.String("domain", string(dom)),
		zap.String("variant", variant),
		zap.String("stage", stage),
		zap.Error(err),
	)
}

// pickOverallBest selects the highest-scoring qualifying candidate across
// domains. Ties break by domain priority: festival > attraction > restaurant.
func pickOverallBest(byDomain map[domain.PlaceDomain]domain.SearchCandidate) *domain.SearchCandidate {
	var best *domain.SearchCandidate
	for _, dom := range domain.DomainPriority() {
		c, ok := byDomain[dom]
		if !ok {
			continue
		}
		if best == nil || c.CombinedScore > best.CombinedScore {
			c := c
			best = &c
		}
	}
	return best
}
