// Package chat orchestrates one request through classification, retrieval,
// streaming generation, and persistence, emitting the wire-level event
// sequence along the way.
package chat

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ktravel-lab/tripchat/internal/domain"
	"github.com/ktravel-lab/tripchat/internal/metrics"
)

// Status messages sent before generation starts.
const (
	msgSearching  = "Searching for matching places..."
	msgRandom     = "Picking places you might like..."
	msgGenerating = "Writing your answer..."

	msgNoCandidate     = "I couldn't find a place matching your question. Try a different name or area."
	msgGenerationError = "Something went wrong while writing the answer. Please try again."
	msgSampleError     = "I couldn't pick recommendations right now. Please try again."
)

// Service runs the chat pipeline.
type Service struct {
	classifier Classifier
	expander   Expander
	retriever  Retriever
	completer  Completer
	convs      ConversationStore
	logger     *zap.Logger
	chunkDelay time.Duration
}

// New creates the pipeline service. It fails when the prompt table does not
// cover every reachable (intent, domain) pair.
func New(
	classifier Classifier,
	expander Expander,
	retriever Retriever,
	completer Completer,
	convs ConversationStore,
	logger *zap.Logger,
) (*Service, error) {
	if err := validatePromptTable(); err != nil {
		return nil, err
	}
	return &Service{
		classifier: classifier,
		expander:   expander,
		retriever:  retriever,
		completer:  completer,
		convs:      convs,
		logger:     logger,
	}, nil
}

// WithChunkDelay sets an optional pacing delay between chunk emissions. The
// delay smooths perceived latency and never reorders fragments.
func (s *Service) WithChunkDelay(d time.Duration) *Service {
	s.chunkDelay = d
	return s
}

// History returns the most recent conversations for a user.
func (s *Service) History(ctx context.Context, userID int64, limit int) ([]domain.Conversation, error) {
	return s.convs.History(ctx, userID, limit)
}

// Stream handles one inbound message end to end. Exactly one terminal event
// (done or error) is emitted unless the caller disconnects first; on
// disconnect or cancellation nothing is persisted.
func (s *Service) Stream(ctx context.Context, userID int64, message string, emit Emitter) {
	q := s.classifier.Classify(message)
	s.logger.Info("message classified",
		zap.String("intent", string(q.Intent)),
		zap.Int("requested_count", q.RequestedCount),
		zap.Bool("restaurant_hint", q.RestaurantHint),
	)

	var (
		best    *domain.SearchCandidate
		results []domain.SearchCandidate
		sampled []domain.SearchCandidate
	)

	switch q.Intent {
	case domain.IntentPlaceSearch:
		if err := emit.Emit(domain.NewStatus(domain.EventSearching, msgSearching)); err != nil {
			s.finish(q, "cancelled")
			return
		}

		variants := s.expander.Variants(q.Keyword)
		out := s.retriever.Search(ctx, variants, q.SearchDomains())
		if out.Best == nil {
			s.logger.Info("retrieval exhausted",
				zap.String("keyword", q.Keyword),
				zap.Error(domain.ErrNoCandidate),
			)
			s.fail(q, emit, msgNoCandidate)
			return
		}
		best = out.Best
		results = out.Candidates()

		if err := emit.Emit(domain.NewFound(*best)); err != nil {
			s.finish(q, "cancelled")
			return
		}

	case domain.IntentRecommendation:
		if err := emit.Emit(domain.NewStatus(domain.EventRandom, msgRandom)); err != nil {
			s.finish(q, "cancelled")
			return
		}

		var err error
		sampled, err = s.retriever.Sample(ctx, q.SampleDomain(), q.RequestedCount)
		if err != nil {
			s.logger.Error("recommendation sampling failed", zap.Error(err))
			s.fail(q, emit, msgSampleError)
			return
		}
		if len(sampled) == 0 {
			s.fail(q, emit, msgNoCandidate)
			return
		}
		results = sampled

	case domain.IntentComparison, domain.IntentGeneralAdvice:
		// No retrieval; straight to generation.
	}

	if err := emit.Emit(domain.NewStatus(domain.EventGenerating, msgGenerating)); err != nil {
		s.finish(q, "cancelled")
		return
	}

	full, err := s.generate(ctx, q, best, sampled, emit)
	if err != nil {
		if ctx.Err() != nil {
			// Client gone; no terminal event can be delivered and nothing
			// is persisted.
			s.finish(q, "cancelled")
			return
		}
		s.logger.Error("generation failed", zap.Error(err))
		s.fail(q, emit, msgGenerationError)
		return
	}

	// Persistence phase, entered only after generation completed in full.
	conversID := int64(0)
	if conv, err := s.convs.Append(ctx, userID, message, full); err != nil {
		// The answer is already streamed and is not retracted; the exchange
		// is simply absent from history. Signalled via convers_id 0.
		metrics.PersistFailuresTotal.Inc()
		s.logger.Error("conversation not persisted", zap.Int64("user_id", userID), zap.Error(err))
	} else {
		conversID = conv.ID
	}

	markers := s.buildMarkers(q, best)
	if err := emit.Emit(domain.NewDone(full, conversID, results, markers)); err != nil {
		s.finish(q, "cancelled")
		return
	}
	s.finish(q, "done")
}

// generate runs the pure generation phase: stream fragments to the caller in
// arrival order while accumulating the full response. No side effects beyond
// emission.
func (s *Service) generate(
	ctx context.Context,
	q domain.ClassifiedQuery,
	best *domain.SearchCandidate,
	sampled []domain.SearchCandidate,
	emit Emitter,
) (string, error) {
	prompt := buildPrompt(q, best, sampled)

	start := time.Now()
	var buf strings.Builder

	err := s.completer.StreamComplete(ctx, prompt, genParams[q.Intent], func(chunk string) error {
		if chunk == "" {
			return nil
		}
		if err := emit.Emit(domain.NewChunk(chunk)); err != nil {
			return err
		}
		buf.WriteString(chunk)
		metrics.ChatChunksTotal.Inc()

		if s.chunkDelay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.chunkDelay):
			}
		}
		return nil
	})

	metrics.GenerationDuration.WithLabelValues(string(q.Intent)).Observe(time.Since(start).Seconds())

	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// buildMarkers projects the fused result(s) onto map markers. The random
// recommendation branch exposes titles only, so it yields no markers.
func (s *Service) buildMarkers(q domain.ClassifiedQuery, best *domain.SearchCandidate) []domain.MapMarker {
	if q.Intent != domain.IntentPlaceSearch || best == nil {
		return nil
	}
	return domain.BuildMarkers([]domain.SearchCandidate{*best})
}

// fail emits the single terminal error event. Nothing is persisted on this
// path.
func (s *Service) fail(q domain.ClassifiedQuery, emit Emitter, message string) {
	if err := emit.Emit(domain.NewError(message)); err != nil {
		s.finish(q, "cancelled")
		return
	}
	s.finish(q, "error")
}

func (s *Service) finish(q domain.ClassifiedQuery, status string) {
	metrics.ChatRequestsTotal.WithLabelValues(string(q.Intent), status).Inc()
}
