// Package session resolves bearer session tokens to user ids. Token issuance
// lives in a separate service; this repository only reads the shared store.
package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/ktravel-lab/tripchat/internal/db"
	"github.com/ktravel-lab/tripchat/internal/domain"
)

const tokenPrefix = domain.KeyPrefix + "session:"

// store is the consumer interface for session lookup.
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
}

// Repo validates session tokens against the shared store.
type Repo struct {
	store store
}

// New creates a session repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Validate resolves a token to the owning user id.
// Returns domain.ErrInvalidSession when the token is unknown or expired.
func (r *Repo) Validate(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, domain.ErrInvalidSession
	}

	data, err := r.store.Get(ctx, tokenPrefix+token)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return 0, domain.ErrInvalidSession
		}
		return 0, fmt.Errorf("read session: %w", err)
	}

	userID, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse session user id: %w", domain.ErrInvalidSession)
	}

	return userID, nil
}
