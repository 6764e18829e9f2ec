package service

import (
	"context"
	"strings"

	"campus-assistant-be/internal/dto"
	"campus-assistant-be/internal/pkg/logger"
	"campus-assistant-be/internal/repository/memory"
	"campus-assistant-be/pkg/rag"

	"github.com/gofiber/fiber/v2"
)

// Resolver is the retrieval pipeline seen from the service layer.
type Resolver interface {
	Resolve(ctx context.Context, query string) *rag.Result
}

type IChatService interface {
	Ask(ctx context.Context, req *dto.AskRequest) (*dto.AskResponse, error)
}

type chatService struct {
	resolver Resolver
	cache    *memory.ResolutionCache
	logger   logger.ILogger
}

func NewChatService(
	resolver Resolver,
	cache *memory.ResolutionCache,
	sysLogger logger.ILogger,
) IChatService {
	return &chatService{
		resolver: resolver,
		cache:    cache,
		logger:   sysLogger,
	}
}

func (s *chatService) Ask(ctx context.Context, req *dto.AskRequest) (*dto.AskResponse, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "question must not be empty")
	}

	if s.cache != nil {
		if cached, found := s.cache.Get(question); found {
			s.logger.Debug("chat", "Resolution cache hit", map[string]interface{}{
				"method": cached.Method,
			})
			return toAskResponse(cached, true), nil
		}
	}

	result := s.resolver.Resolve(ctx, question)

	s.logger.Info("chat", "Question resolved", map[string]interface{}{
		"source":     string(result.Source),
		"method":     result.Method,
		"confidence": result.Confidence,
	})

	if s.cache != nil {
		s.cache.Set(question, result)
	}

	return toAskResponse(result, false), nil
}

func toAskResponse(result *rag.Result, cached bool) *dto.AskResponse {
	return &dto.AskResponse{
		Answer:          result.AnswerText,
		Source:          string(result.Source),
		Method:          result.Method,
		Confidence:      result.Confidence,
		RelatedQuestion: result.RelatedQuestion,
		Cached:          cached,
	}
}
