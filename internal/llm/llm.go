// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package llm adapts text-generation providers to a single Complete call.
// A single-turn request is one user message; refinement sends the whole
// transcript. There is no streaming and no automatic retry.
package llm

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/time/rate"

	"github.com/pdiddy/ir-outreach/pkg/types"
)

// DefaultMaxTokens is used when a request leaves MaxTokens unset.
const DefaultMaxTokens = 1024

// Request is one call to the generation service.
type Request struct {
	Messages  []types.Turn
	MaxTokens int
}

// Prompt builds a single-turn request.
func Prompt(text string, maxTokens int) Request {
	return Request{
		Messages:  []types.Turn{{Role: types.RoleUser, Content: text}},
		MaxTokens: maxTokens,
	}
}

// Client completes a request and returns the model's text.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// ClientFunc adapts a function to Client.
type ClientFunc func(ctx context.Context, req Request) (string, error)

// Complete calls f.
func (f ClientFunc) Complete(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

// NewClient returns the adapter named by cfg.Provider, throttled when
// cfg.RequestsPerMinute is set.
func NewClient(cfg types.LLMConfig) (Client, error) {
	var (
		c   Client
		err error
	)
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", "anthropic", "claude":
		c, err = NewAnthropicClient(cfg)
	case "openai":
		c, err = NewOpenAIClient(cfg)
	default:
		return nil, fmt.Errorf("unknown llm provider %q (want anthropic or openai)", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	return WithRateLimit(c, cfg.RequestsPerMinute, cfg.Burst), nil
}

// RateLimited waits on a token bucket before each call.
type RateLimited struct {
	Next    Client
	Limiter *rate.Limiter
}

// WithRateLimit wraps c so it makes at most rpm calls per minute with the
// given burst. A non-positive rpm returns c unchanged.
func WithRateLimit(c Client, rpm, burst int) Client {
	if rpm <= 0 {
		return c
	}
	if burst <= 0 {
		burst = 1
	}
	return &RateLimited{
		Next:    c,
		Limiter: rate.NewLimiter(rate.Limit(float64(rpm)/60.0), burst),
	}
}

// Complete waits for a token, then delegates.
func (r *RateLimited) Complete(ctx context.Context, req Request) (string, error) {
	if err := r.Limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}
	return r.Next.Complete(ctx, req)
}

func maxTokens(req Request, fallback int) int64 {
	if req.MaxTokens > 0 {
		return int64(req.MaxTokens)
	}
	if fallback > 0 {
		return int64(fallback)
	}
	return DefaultMaxTokens
}

func validate(req Request) error {
	if len(req.Messages) == 0 {
		return fmt.Errorf("request has no messages")
	}
	return nil
}
