package service

import (
	"context"
	"time"

	"campus-assistant-be/internal/dto"
	"campus-assistant-be/internal/entity"
	"campus-assistant-be/internal/pkg/logger"
	"campus-assistant-be/internal/repository/unitofwork"
	"campus-assistant-be/pkg/embedding"
	"campus-assistant-be/pkg/events"
	"campus-assistant-be/pkg/utils"

	"github.com/google/uuid"
)

type IDocumentService interface {
	Import(ctx context.Context, req *dto.ImportDocumentsRequest) (*dto.ImportDocumentsResponse, error)
}

type documentService struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.Provider
	publisherService  IPublisherService
	logger            logger.ILogger
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.Provider,
	publisherService IPublisherService,
	sysLogger logger.ILogger,
) IDocumentService {
	return &documentService{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		publisherService:  publisherService,
		logger:            sysLogger,
	}
}

// Import splits each item into chunks, embeds them and stores everything in
// one transaction. With Replace set, previous chunks from the same origin
// are soft-deleted first so a re-crawl never leaves stale content behind.
func (s *documentService) Import(ctx context.Context, req *dto.ImportDocumentsRequest) (*dto.ImportDocumentsResponse, error) {
	var newChunks []*entity.DocumentChunk

	for _, item := range req.Items {
		pieces := utils.ChunkDocument(item.Content)
		for i, piece := range pieces {
			chunk := &entity.DocumentChunk{
				Id:         uuid.New(),
				Content:    piece,
				Origin:     req.Origin,
				SourceURL:  req.SourceURL,
				Category:   item.Category,
				ChunkIndex: i,
				IsActive:   true,
				CreatedAt:  time.Now(),
			}

			vector, err := s.embeddingProvider.Embed(ctx, piece)
			if err != nil {
				// Stored without a vector; lexical scoring still covers it.
				s.logger.Warn("document", "Embedding failed for chunk", map[string]interface{}{
					"chunk_index": i,
					"error":       err.Error(),
				})
			} else {
				chunk.EmbeddingValue = vector
			}

			newChunks = append(newChunks, chunk)
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if req.Replace {
		if err := uow.DocumentRepository().DeleteByOrigin(ctx, req.Origin); err != nil {
			return nil, err
		}
	}
	if err := uow.DocumentRepository().CreateBulk(ctx, newChunks); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("document", "Documents imported", map[string]interface{}{
		"origin": req.Origin,
		"items":  len(req.Items),
		"chunks": len(newChunks),
	})

	if s.publisherService != nil {
		if err := s.publisherService.PublishKnowledgeChanged(ctx, events.ChangeDocsImported, req.Origin); err != nil {
			s.logger.Error("document", "Failed to publish knowledge change", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return &dto.ImportDocumentsResponse{
		Imported: len(req.Items),
		Chunks:   len(newChunks),
	}, nil
}
