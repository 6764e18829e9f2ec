// Package chain implements the provider fallback chain: an ordered list of
// generative backends tried once each, in sequence, until one succeeds.
// The chain is the resilience mechanism; there are no per-provider retries.
package chain

import (
	"context"
	"errors"
	"time"

	"campus-assistant-be/pkg/llm"

	"go.uber.org/zap"
)

// ErrAllProvidersFailed is returned when every provider in the chain failed.
// Callers must have a deterministic non-generative fallback and must never
// surface this error text to the end user.
var ErrAllProvidersFailed = errors.New("all llm providers failed")

type Chain struct {
	providers   []llm.Provider
	callTimeout time.Duration
	logger      *zap.Logger
}

func New(providers []llm.Provider, callTimeout time.Duration, logger *zap.Logger) *Chain {
	if callTimeout == 0 {
		callTimeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Chain{
		providers:   providers,
		callTimeout: callTimeout,
		logger:      logger,
	}
}

// Len reports how many providers the chain holds.
func (c *Chain) Len() int {
	return len(c.providers)
}

// Generate asks each provider in order for a completion, one attempt each.
// A timeout is treated identically to any other provider failure: the chain
// moves on. When the list is exhausted it returns ErrAllProvidersFailed.
func (c *Chain) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	if len(c.providers) == 0 {
		return "", ErrAllProvidersFailed
	}

	for _, provider := range c.providers {
		if ctx.Err() != nil {
			// Overall deadline exceeded; no point trying the rest.
			c.logger.Warn("llm chain aborted, deadline exceeded",
				zap.String("provider", provider.Name()))
			return "", ErrAllProvidersFailed
		}

		callCtx, cancel := context.WithTimeout(ctx, c.callTimeout)
		answer, err := provider.Generate(callCtx, prompt, options...)
		cancel()

		if err != nil {
			c.logger.Warn("llm provider failed, trying next",
				zap.String("provider", provider.Name()),
				zap.Error(err))
			continue
		}
		if answer == "" {
			c.logger.Warn("llm provider returned empty answer, trying next",
				zap.String("provider", provider.Name()))
			continue
		}
		return answer, nil
	}

	return "", ErrAllProvidersFailed
}
