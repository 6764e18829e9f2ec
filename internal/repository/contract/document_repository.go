package contract

import (
	"context"

	"campus-assistant-be/internal/entity"
	"campus-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
)

type DocumentRepository interface {
	Create(ctx context.Context, chunk *entity.DocumentChunk) error
	CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteByOrigin soft-deletes every chunk from one origin so a fresh
	// import fully replaces the previous crawl.
	DeleteByOrigin(ctx context.Context, origin string) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DocumentChunk, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentChunk, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	FindAllActive(ctx context.Context) ([]*entity.DocumentChunk, error)
}
