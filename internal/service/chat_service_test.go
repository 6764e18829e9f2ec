package service

import (
	"context"
	"testing"
	"time"

	"campus-assistant-be/internal/dto"
	"campus-assistant-be/internal/repository/memory"
	"campus-assistant-be/pkg/rag"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResolver struct {
	result *rag.Result
	calls  int
}

func (r *fakeResolver) Resolve(ctx context.Context, query string) *rag.Result {
	r.calls++
	return r.result
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func TestAskRejectsBlankQuestion(t *testing.T) {
	resolver := &fakeResolver{result: &rag.Result{}}
	svc := NewChatService(resolver, nil, nopLogger{})

	_, err := svc.Ask(context.Background(), &dto.AskRequest{Question: "   "})

	require.Error(t, err)
	fiberErr, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusBadRequest, fiberErr.Code)
	assert.Zero(t, resolver.calls)
}

func TestAskMapsResolverResult(t *testing.T) {
	resolver := &fakeResolver{result: &rag.Result{
		AnswerText:      "La secretaría atiende de 08h00 a 16h30.",
		Source:          rag.SourceFAQ,
		Method:          rag.MethodFaqExacta,
		Confidence:      0.92,
		RelatedQuestion: "cual es el horario de atencion",
	}}
	svc := NewChatService(resolver, nil, nopLogger{})

	res, err := svc.Ask(context.Background(), &dto.AskRequest{Question: "¿Cuál es el horario?"})

	require.NoError(t, err)
	assert.Equal(t, "La secretaría atiende de 08h00 a 16h30.", res.Answer)
	assert.Equal(t, "faq", res.Source)
	assert.Equal(t, rag.MethodFaqExacta, res.Method)
	assert.Equal(t, 0.92, res.Confidence)
	assert.Equal(t, "cual es el horario de atencion", res.RelatedQuestion)
	assert.False(t, res.Cached)
}

func TestAskCachesByNormalizedQuestion(t *testing.T) {
	resolver := &fakeResolver{result: &rag.Result{
		AnswerText: "respuesta",
		Source:     rag.SourceFAQ,
		Method:     rag.MethodFaqExacta,
	}}
	cache := memory.NewResolutionCache(time.Minute)
	svc := NewChatService(resolver, cache, nopLogger{})

	first, err := svc.Ask(context.Background(), &dto.AskRequest{Question: "¿Dónde queda la biblioteca?"})
	require.NoError(t, err)
	assert.False(t, first.Cached)

	// Accent and punctuation variants share one cache entry.
	second, err := svc.Ask(context.Background(), &dto.AskRequest{Question: "donde queda la biblioteca"})
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, 1, resolver.calls)

	cache.Flush()

	third, err := svc.Ask(context.Background(), &dto.AskRequest{Question: "donde queda la biblioteca"})
	require.NoError(t, err)
	assert.False(t, third.Cached)
	assert.Equal(t, 2, resolver.calls)
}
