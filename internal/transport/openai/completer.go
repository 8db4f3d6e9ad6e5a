package openai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/ktravel-lab/tripchat/internal/domain"
	"github.com/ktravel-lab/tripchat/internal/metrics"
)

// Completer streams chat completions from the OpenAI-compatible API.
type Completer struct {
	client   *openai.Client
	model    string
	provider string
	logger   *zap.Logger
}

// CompleterConfig holds the completion provider settings.
type CompleterConfig struct {
	APIKey   string
	BaseURL  string
	Model    string
	Provider string
	Logger   *zap.Logger
}

// NewCompleter creates an OpenAI-compatible streaming completion provider.
func NewCompleter(cfg *CompleterConfig) *Completer {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Completer{
		client:   openai.NewClientWithConfig(clientCfg),
		model:    cfg.Model,
		provider: cfg.Provider,
		logger:   cfg.Logger,
	}
}

// StreamComplete submits the prompt and forwards generated fragments to fn in
// arrival order. fn returning an error aborts the stream; that error is
// returned unwrapped so the caller can distinguish its own aborts from
// provider failures.
func (c *Completer) StreamComplete(
	ctx context.Context, prompt string, params domain.GenParams, fn func(chunk string) error,
) error {
	req := openai.ChatCompletionRequest{
		Model:       c.model,
		MaxTokens:   params.MaxTokens,
		Temperature: params.Temperature,
		Stream:      true,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}

	start := time.Now()

	stream, err := c.client.CreateChatCompletionStream(ctx, req)
	if err != nil {
		metrics.CompletionRequestsTotal.WithLabelValues(c.model, "error").Inc()
		return parseAPIError(err, domain.ErrCompletionProviderError)
	}
	defer stream.Close()

	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			metrics.CompletionRequestsTotal.WithLabelValues(c.model, "error").Inc()
			return parseAPIError(err, domain.ErrCompletionProviderError)
		}
		if len(resp.Choices) == 0 {
			continue
		}
		delta := resp.Choices[0].Delta.Content
		if delta == "" {
			continue
		}
		if err := fn(delta); err != nil {
			return err
		}
	}

	metrics.CompletionRequestsTotal.WithLabelValues(c.model, "success").Inc()
	c.logger.Debug("completion stream finished",
		zap.String("model", c.model),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (c *Completer) HealthCheck(ctx context.Context) error {
	if _, err := c.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}
