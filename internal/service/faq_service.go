package service

import (
	"context"
	"time"

	"campus-assistant-be/internal/dto"
	"campus-assistant-be/internal/entity"
	"campus-assistant-be/internal/pkg/logger"
	"campus-assistant-be/internal/repository/specification"
	"campus-assistant-be/internal/repository/unitofwork"
	"campus-assistant-be/pkg/embedding"
	"campus-assistant-be/pkg/events"
	"campus-assistant-be/pkg/lexical"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// duplicateQuestionBar is the lexical similarity above which a new question
// is considered a rewording of an existing active entry.
const duplicateQuestionBar = 0.8

type IFaqService interface {
	Create(ctx context.Context, req *dto.CreateFaqRequest) (*dto.FaqResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateFaqRequest) (*dto.FaqResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetAll(ctx context.Context) ([]*dto.FaqResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.FaqResponse, error)
}

type faqService struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.Provider
	publisherService  IPublisherService
	logger            logger.ILogger
}

func NewFaqService(
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.Provider,
	publisherService IPublisherService,
	sysLogger logger.ILogger,
) IFaqService {
	return &faqService{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		publisherService:  publisherService,
		logger:            sysLogger,
	}
}

func (s *faqService) Create(ctx context.Context, req *dto.CreateFaqRequest) (*dto.FaqResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Duplicate guard: an almost identical question would make exact-match
	// resolution ambiguous between two curated answers.
	existing, err := uow.FaqRepository().FindAllActive(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range existing {
		if lexical.Ratio(req.Question, e.Question) >= duplicateQuestionBar {
			return nil, fiber.NewError(fiber.StatusConflict,
				"a very similar question already exists: "+e.Question)
		}
	}

	faq := &entity.FaqEntry{
		Id:        uuid.New(),
		Question:  req.Question,
		Answer:    req.Answer,
		Category:  req.Category,
		Keywords:  req.Keywords,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	s.embed(ctx, faq)

	if err := uow.FaqRepository().Create(ctx, faq); err != nil {
		return nil, err
	}

	s.publishChange(ctx, events.ChangeFAQCreated, faq.Id.String())
	return toFaqResponse(faq), nil
}

func (s *faqService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateFaqRequest) (*dto.FaqResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	faq, err := uow.FaqRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if faq == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "faq entry not found")
	}

	questionChanged := faq.Question != req.Question
	answerChanged := faq.Answer != req.Answer

	faq.Question = req.Question
	faq.Answer = req.Answer
	faq.Category = req.Category
	faq.Keywords = req.Keywords
	if req.IsActive != nil {
		faq.IsActive = *req.IsActive
	}
	now := time.Now()
	faq.UpdatedAt = &now

	if questionChanged || answerChanged {
		s.embed(ctx, faq)
	}

	if err := uow.FaqRepository().Update(ctx, faq); err != nil {
		return nil, err
	}

	s.publishChange(ctx, events.ChangeFAQUpdated, faq.Id.String())
	return toFaqResponse(faq), nil
}

func (s *faqService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	faq, err := uow.FaqRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if faq == nil {
		return fiber.NewError(fiber.StatusNotFound, "faq entry not found")
	}

	if err := uow.FaqRepository().Delete(ctx, id); err != nil {
		return err
	}

	s.publishChange(ctx, events.ChangeFAQDisabled, id.String())
	return nil
}

func (s *faqService) GetAll(ctx context.Context) ([]*dto.FaqResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	faqs, err := uow.FaqRepository().FindAll(ctx, specification.OrderBy{Field: "created_at", Desc: true})
	if err != nil {
		return nil, err
	}

	result := make([]*dto.FaqResponse, len(faqs))
	for i, f := range faqs {
		result[i] = toFaqResponse(f)
	}
	return result, nil
}

func (s *faqService) Show(ctx context.Context, id uuid.UUID) (*dto.FaqResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	faq, err := uow.FaqRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if faq == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "faq entry not found")
	}
	return toFaqResponse(faq), nil
}

// embed computes the entry's vector synchronously. A provider failure is not
// fatal: the entry is stored without an embedding and stays reachable
// through the exact and lexical matching stages.
func (s *faqService) embed(ctx context.Context, faq *entity.FaqEntry) {
	vector, err := s.embeddingProvider.Embed(ctx, faq.EmbeddingText())
	if err != nil {
		s.logger.Warn("faq", "Embedding failed, entry stored without vector", map[string]interface{}{
			"faq_id": faq.Id.String(),
			"error":  err.Error(),
		})
		faq.EmbeddingValue = nil
		return
	}
	faq.EmbeddingValue = vector
}

func (s *faqService) publishChange(ctx context.Context, change, entityId string) {
	if s.publisherService == nil {
		return
	}
	if err := s.publisherService.PublishKnowledgeChanged(ctx, change, entityId); err != nil {
		s.logger.Error("faq", "Failed to publish knowledge change", map[string]interface{}{
			"change": change,
			"error":  err.Error(),
		})
	}
}

func toFaqResponse(f *entity.FaqEntry) *dto.FaqResponse {
	return &dto.FaqResponse{
		Id:        f.Id,
		Question:  f.Question,
		Answer:    f.Answer,
		Category:  f.Category,
		Keywords:  f.Keywords,
		IsActive:  f.IsActive,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}
