package chi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ktravel-lab/tripchat/internal/domain"
)

type mockSessions struct {
	userID int64
	err    error
	token  string
}

func (m *mockSessions) Validate(_ context.Context, token string) (int64, error) {
	m.token = token
	if m.err != nil {
		return 0, m.err
	}
	return m.userID, nil
}

func TestSessionAuth_ValidToken(t *testing.T) {
	sessions := &mockSessions{userID: 77}

	var gotID int64
	var gotOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, gotOK = UserID(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/api/chat/history", nil)
	req.Header.Set("Authorization", "Bearer tok123")
	rec := httptest.NewRecorder()

	SessionAuthMiddleware(sessions)(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !gotOK || gotID != 77 {
		t.Errorf("UserID = (%d, %v), want (77, true)", gotID, gotOK)
	}
	if sessions.token != "tok123" {
		t.Errorf("validated token %q, want tok123", sessions.token)
	}
}

func TestSessionAuth_MissingHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/chat/history", nil)
	rec := httptest.NewRecorder()

	called := false
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true })
	SessionAuthMiddleware(&mockSessions{})(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if called {
		t.Error("handler must not run without a session")
	}
}

func TestSessionAuth_WrongScheme(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/chat/history", nil)
	req.Header.Set("Authorization", "Basic abc")
	rec := httptest.NewRecorder()

	SessionAuthMiddleware(&mockSessions{})(http.NotFoundHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestSessionAuth_InvalidSession(t *testing.T) {
	sessions := &mockSessions{err: domain.ErrInvalidSession}
	req := httptest.NewRequest(http.MethodGet, "/api/chat/history", nil)
	req.Header.Set("Authorization", "Bearer expired")
	rec := httptest.NewRecorder()

	SessionAuthMiddleware(sessions)(http.NotFoundHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestSessionAuth_StoreError(t *testing.T) {
	sessions := &mockSessions{err: errors.New("db down")}
	req := httptest.NewRequest(http.MethodGet, "/api/chat/history", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rec := httptest.NewRecorder()

	SessionAuthMiddleware(sessions)(http.NotFoundHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestSessionAuth_ExemptPaths(t *testing.T) {
	for _, path := range []string{"/health", "/metrics"} {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			rec := httptest.NewRecorder()

			called := false
			next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true })
			SessionAuthMiddleware(&mockSessions{err: domain.ErrInvalidSession})(next).ServeHTTP(rec, req)

			if !called {
				t.Errorf("%s must bypass authentication", path)
			}
		})
	}
}
