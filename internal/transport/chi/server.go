// Package chi exposes the HTTP API: the NDJSON chat stream, conversation
// history, health, and metrics.
package chi

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/bytedance/sonic"
	chirouter "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	chatuc "github.com/ktravel-lab/tripchat/internal/usecase/chat"
)

const (
	maxMessageRunes     = 2000
	maxBodyBytes        = 64 << 10
	defaultHistoryLimit = 50
	maxHistoryLimit     = 200
)

// Pinger reports database reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthChecker verifies the embedding provider is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Server handles the chat API endpoints.
type Server struct {
	chat      *chatuc.Service
	db        Pinger
	embedding HealthChecker
	logger    *zap.Logger
}

// NewServer creates an HTTP API server. embedding can be nil.
func NewServer(chat *chatuc.Service, db Pinger, embedding HealthChecker, logger *zap.Logger) *Server {
	return &Server{chat: chat, db: db, embedding: embedding, logger: logger}
}

// Routes mounts all endpoints on the router.
func (s *Server) Routes(r chirouter.Router) {
	r.Post("/api/chat/send/stream", s.SendStream)
	r.Get("/api/chat/history", s.History)
	r.Get("/health", s.HealthCheck)
	r.Handle("/metrics", promhttp.Handler())
}

type sendRequest struct {
	Message string `json:"message"`
}

// SendStream handles POST /api/chat/send/stream. The response is
// newline-delimited JSON: status and chunk events while the pipeline runs,
// then exactly one done or error event.
func (s *Server) SendStream(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "failed to read request body")
		return
	}

	var req sendRequest
	if err := sonic.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body: "+err.Error())
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "message is required")
		return
	}
	if utf8.RuneCountInString(req.Message) > maxMessageRunes {
		writeError(w, http.StatusBadRequest, "validation_failed",
			"message must be at most "+strconv.Itoa(maxMessageRunes)+" characters")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		s.logger.Error("response writer does not support flushing")
		writeError(w, http.StatusInternalServerError, "internal_error", "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "application/x-ndjson; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	s.chat.Stream(r.Context(), userID, req.Message, newStreamEmitter(w, flusher))
}

type historyItem struct {
	ConversationID int64  `json:"conversation_id"`
	Message        string `json:"message"`
	Response       string `json:"response"`
	CreatedAt      string `json:"created_at"`
}

type historyResponse struct {
	Items []historyItem `json:"items"`
	Total int           `json:"total"`
}

// History handles GET /api/chat/history. Returns the user's most recent
// conversations, newest first.
func (s *Server) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxHistoryLimit {
			writeError(w, http.StatusBadRequest, "validation_failed",
				"limit must be between 1 and "+strconv.Itoa(maxHistoryLimit))
			return
		}
		limit = n
	}

	convs, err := s.chat.History(r.Context(), userID, limit)
	if err != nil {
		s.logger.Error("history lookup failed", zap.Int64("user_id", userID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	items := make([]historyItem, len(convs))
	for i, c := range convs {
		items[i] = historyItem{
			ConversationID: c.ID,
			Message:        c.Question,
			Response:       c.Response,
			CreatedAt:      c.CreatedAt.UTC().Format(time.RFC3339),
		}
	}

	writeJSON(w, http.StatusOK, historyResponse{Items: items, Total: len(items)})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]string)

	status := http.StatusOK
	if err := s.db.Ping(r.Context()); err != nil {
		checks["database"] = "error"
		status = http.StatusServiceUnavailable
	} else {
		checks["database"] = "ok"
	}

	if s.embedding != nil {
		if err := s.embedding.HealthCheck(r.Context()); err != nil {
			checks["embedding"] = "error"
			status = http.StatusServiceUnavailable
		} else {
			checks["embedding"] = "ok"
		}
	}

	overall := "ok"
	if status != http.StatusOK {
		overall = "degraded"
	}

	writeJSON(w, status, map[string]any{"status": overall, "checks": checks})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	data, err := sonic.Marshal(v)
	if err != nil {
		return
	}
	_, _ = w.Write(data)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{
		"code":    code,
		"message": message,
	})
}
