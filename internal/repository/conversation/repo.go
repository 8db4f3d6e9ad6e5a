// Package conversation persists chat exchanges and serves history reads.
package conversation

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/ktravel-lab/tripchat/internal/domain"
)

const (
	seqKey        = domain.KeyPrefix + "convers:seq"
	conversPrefix = domain.KeyPrefix + "convers:"
	historyPrefix = domain.KeyPrefix + "user:"
)

// store is the consumer interface for conversation persistence.
type store interface {
	Incr(ctx context.Context, key string) (int64, error)
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	ZAdd(ctx context.Context, key string, score float64, member string) error
	ZRevRange(ctx context.Context, key string, start, stop int64) ([]string, error)
}

// Repo implements the conversation store: append-only rows plus a per-user
// history index ordered by creation time.
type Repo struct {
	store store
}

// New creates a conversation repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Append writes one exchange and returns the stored conversation. The row is
// written before it is linked into the history index.
func (r *Repo) Append(ctx context.Context, userID int64, question, response string) (domain.Conversation, error) {
	id, err := r.store.Incr(ctx, seqKey)
	if err != nil {
		return domain.Conversation{}, fmt.Errorf("next conversation id: %w", err)
	}

	now := time.Now().UTC()
	conv := domain.Conversation{
		ID:        id,
		UserID:    userID,
		Question:  question,
		Response:  response,
		CreatedAt: now,
	}

	fields := map[string]string{
		"user_id":    strconv.FormatInt(userID, 10),
		"question":   question,
		"response":   response,
		"created_at": now.Format(time.RFC3339Nano),
	}
	if err := r.store.HSet(ctx, conversKey(id), fields); err != nil {
		return domain.Conversation{}, fmt.Errorf("write conversation %d: %w", id, err)
	}

	if err := r.store.ZAdd(ctx, historyKey(userID), float64(now.UnixNano()), strconv.FormatInt(id, 10)); err != nil {
		return domain.Conversation{}, fmt.Errorf("index conversation %d: %w", id, err)
	}

	return conv, nil
}

// History returns up to limit conversations for a user, most recent first.
func (r *Repo) History(ctx context.Context, userID int64, limit int) ([]domain.Conversation, error) {
	if limit <= 0 {
		return nil, nil
	}

	ids, err := r.store.ZRevRange(ctx, historyKey(userID), 0, int64(limit-1))
	if err != nil {
		return nil, fmt.Errorf("read history index: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = conversPrefix + id
	}

	rows, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("read conversations: %w", err)
	}

	out := make([]domain.Conversation, 0, len(rows))
	for i, fields := range rows {
		if len(fields) == 0 {
			continue // row expired or deleted out of band
		}
		conv, err := parseConversation(ids[i], fields)
		if err != nil {
			return nil, err
		}
		out = append(out, conv)
	}

	return out, nil
}

func parseConversation(id string, fields map[string]string) (domain.Conversation, error) {
	conversID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return domain.Conversation{}, fmt.Errorf("parse conversation id %q: %w", id, err)
	}
	userID, _ := strconv.ParseInt(fields["user_id"], 10, 64)
	createdAt, err := time.Parse(time.RFC3339Nano, fields["created_at"])
	if err != nil {
		return domain.Conversation{}, fmt.Errorf("parse created_at for conversation %s: %w", id, err)
	}
	return domain.Conversation{
		ID:        conversID,
		UserID:    userID,
		Question:  fields["question"],
		Response:  fields["response"],
		CreatedAt: createdAt,
	}, nil
}

func conversKey(id int64) string {
	return conversPrefix + strconv.FormatInt(id, 10)
}

func historyKey(userID int64) string {
	return fmt.Sprintf("%s%d:convers", historyPrefix, userID)
}
