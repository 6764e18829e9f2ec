package contract

import (
	"context"

	"campus-assistant-be/internal/entity"
	"campus-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
)

type FaqRepository interface {
	Create(ctx context.Context, faq *entity.FaqEntry) error
	Update(ctx context.Context, faq *entity.FaqEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.FaqEntry, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FaqEntry, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// FindAllActive returns the entries visible to the resolution pipeline.
	FindAllActive(ctx context.Context) ([]*entity.FaqEntry, error)
}
