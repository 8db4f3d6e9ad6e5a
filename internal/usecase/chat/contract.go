package chat

import (
	"context"

	"github.com/ktravel-lab/tripchat/internal/domain"
)

// Classifier maps raw text to an intent plus extracted parameters.
type Classifier interface {
	Classify(text string) domain.ClassifiedQuery
}

// Expander rewrites a search keyword into retrieval variants.
type Expander interface {
	Normalize(q string) string
	Variants(q string) []string
}

// Retriever searches the place domains.
type Retriever interface {
	Search(ctx context.Context, variants []string, domains []domain.PlaceDomain) domain.RetrievalOutcome
	Sample(ctx context.Context, dom domain.PlaceDomain, n int) ([]domain.SearchCandidate, error)
}

// Completer streams generated text fragments for a prompt.
type Completer interface {
	StreamComplete(ctx context.Context, prompt string, params domain.GenParams, fn func(chunk string) error) error
}

// ConversationStore persists completed exchanges.
type ConversationStore interface {
	Append(ctx context.Context, userID int64, question, response string) (domain.Conversation, error)
	History(ctx context.Context, userID int64, limit int) ([]domain.Conversation, error)
}

// Emitter delivers stream events to the caller. Emit returns an error when
// the caller is gone; the pipeline aborts on the first such error.
type Emitter interface {
	Emit(ev domain.Event) error
}
