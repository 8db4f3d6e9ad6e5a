package session

import (
	"context"
	"errors"
	"testing"

	"github.com/ktravel-lab/tripchat/internal/db"
	"github.com/ktravel-lab/tripchat/internal/domain"
)

type mockStore struct {
	values map[string][]byte
	err    error
}

func (m *mockStore) Get(_ context.Context, key string) ([]byte, error) {
	if m.err != nil {
		return nil, m.err
	}
	v, ok := m.values[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func TestValidate(t *testing.T) {
	repo := New(&mockStore{values: map[string][]byte{
		domain.KeyPrefix + "session:tok123": []byte("42"),
		domain.KeyPrefix + "session:junk":   []byte("not-a-number"),
	}})

	t.Run("valid token", func(t *testing.T) {
		id, err := repo.Validate(context.Background(), "tok123")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id != 42 {
			t.Errorf("user id = %d, want 42", id)
		}
	})

	t.Run("empty token", func(t *testing.T) {
		if _, err := repo.Validate(context.Background(), ""); !errors.Is(err, domain.ErrInvalidSession) {
			t.Errorf("expected ErrInvalidSession, got %v", err)
		}
	})

	t.Run("unknown token", func(t *testing.T) {
		if _, err := repo.Validate(context.Background(), "nope"); !errors.Is(err, domain.ErrInvalidSession) {
			t.Errorf("expected ErrInvalidSession, got %v", err)
		}
	})

	t.Run("corrupt value", func(t *testing.T) {
		if _, err := repo.Validate(context.Background(), "junk"); !errors.Is(err, domain.ErrInvalidSession) {
			t.Errorf("expected ErrInvalidSession, got %v", err)
		}
	})
}

func TestValidate_StoreError(t *testing.T) {
	repo := New(&mockStore{err: errors.New("conn refused")})

	_, err := repo.Validate(context.Background(), "tok")
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, domain.ErrInvalidSession) {
		t.Error("store failures must not masquerade as invalid sessions")
	}
}
