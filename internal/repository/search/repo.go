// Package search retrieves place records from the per-domain vector indexes.
package search

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/ktravel-lab/tripchat/internal/db"
	"github.com/ktravel-lab/tripchat/internal/domain"
)

// payloadFields are the hash fields returned for every hit.
var payloadFields = []string{
	"title", "description", "address", "phone", "hours",
	"start_date", "end_date", "latitude", "longitude",
}

// store is the consumer interface for search operations.
type store interface {
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	SearchList(ctx context.Context, index, query string, offset, limit int, fields []string) (*db.SearchResult, error)
	SearchCount(ctx context.Context, index, query string) (int, error)
}

// Repo implements retrieve.Repository over the FT indexes.
type Repo struct {
	store store
}

// New creates a search repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// TopK runs a KNN search against one domain collection and returns hits at
// or above minScore.
func (r *Repo) TopK(
	ctx context.Context, dom domain.PlaceDomain,
	vector []float32, k int, minScore float64,
) ([]domain.Match, error) {
	q := &db.KNNQuery{
		IndexName:    indexName(dom),
		Vector:       vector,
		K:            k,
		ReturnFields: append([]string{"__vector_score"}, payloadFields...),
	}

	sr, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search knn %s: %w", dom, err)
	}

	matches := make([]domain.Match, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		if entry.Score < minScore {
			continue
		}
		matches = append(matches, domain.Match{
			ID:      strings.TrimPrefix(entry.Key, keyPrefix(dom)),
			Score:   entry.Score,
			Payload: parsePayload(entry.Fields),
		})
	}

	return matches, nil
}

// Sample returns up to n records from a domain collection starting at a
// randomized offset. Used by the random-recommendation branch, which only
// exposes titles.
func (r *Repo) Sample(ctx context.Context, dom domain.PlaceDomain, n int) ([]domain.SearchCandidate, error) {
	index := indexName(dom)

	total, err := r.store.SearchCount(ctx, index, "*")
	if err != nil {
		return nil, fmt.Errorf("count %s: %w", dom, err)
	}
	if total == 0 {
		return nil, nil
	}

	offset := 0
	if total > n {
		offset = rand.Intn(total - n + 1)
	}

	sr, err := r.store.SearchList(ctx, index, "*", offset, n, payloadFields)
	if err != nil {
		return nil, fmt.Errorf("sample %s: %w", dom, err)
	}

	out := make([]domain.SearchCandidate, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		id := strings.TrimPrefix(entry.Key, keyPrefix(dom))
		out = append(out, domain.NewCandidate(dom, id, 0, 0, parsePayload(entry.Fields)))
	}

	return out, nil
}

func keyPrefix(dom domain.PlaceDomain) string {
	return fmt.Sprintf("%s%s:", domain.KeyPrefix, dom)
}

func indexName(dom domain.PlaceDomain) string {
	return fmt.Sprintf("%s%s:idx", domain.KeyPrefix, dom)
}

func parsePayload(fields map[string]string) domain.Payload {
	p := domain.Payload{
		Title:       fields["title"],
		Description: fields["description"],
		Address:     fields["address"],
		Phone:       fields["phone"],
		Hours:       fields["hours"],
		StartDate:   fields["start_date"],
		EndDate:     fields["end_date"],
	}
	if v, err := strconv.ParseFloat(fields["latitude"], 64); err == nil {
		p.Latitude = v
	}
	if v, err := strconv.ParseFloat(fields["longitude"], 64); err == nil {
		p.Longitude = v
	}
	return p
}
