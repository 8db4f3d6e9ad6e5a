package domain

import "errors"

var (
	// ErrNoCandidate signals that no domain produced a qualifying result.
	ErrNoCandidate = errors.New("no matching place found")
	// ErrInvalidSession signals a missing or expired session token.
	ErrInvalidSession = errors.New("invalid session")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrCompletionProviderError signals a text generation provider failure.
	ErrCompletionProviderError = errors.New("completion provider error")
)
