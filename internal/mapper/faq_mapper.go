package mapper

import (
	"encoding/json"
	"time"

	"campus-assistant-be/internal/entity"
	"campus-assistant-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type FaqMapper struct{}

func NewFaqMapper() *FaqMapper {
	return &FaqMapper{}
}

func (m *FaqMapper) ToEntity(e *model.FaqEntry) *entity.FaqEntry {
	if e == nil {
		return nil
	}

	var deletedAt *time.Time
	if e.DeletedAt.Valid {
		t := e.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	var keywords []string
	if len(e.Keywords) > 0 {
		// Malformed keyword JSON is tolerated as an empty list.
		_ = json.Unmarshal(e.Keywords, &keywords)
	}

	return &entity.FaqEntry{
		Id:             e.Id,
		Question:       e.Question,
		Answer:         e.Answer,
		Category:       e.Category,
		Keywords:       keywords,
		EmbeddingValue: e.EmbeddingValue.Slice(),
		IsActive:       e.IsActive,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
		IsDeleted:      e.DeletedAt.Valid,
	}
}

func (m *FaqMapper) ToModel(e *entity.FaqEntry) *model.FaqEntry {
	if e == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if e.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *e.DeletedAt, Valid: true}
	} else if e.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	var keywords datatypes.JSON
	if len(e.Keywords) > 0 {
		if raw, err := json.Marshal(e.Keywords); err == nil {
			keywords = raw
		}
	}

	return &model.FaqEntry{
		Id:             e.Id,
		Question:       e.Question,
		Answer:         e.Answer,
		Category:       e.Category,
		Keywords:       keywords,
		EmbeddingValue: pgvector.NewVector(e.EmbeddingValue),
		IsActive:       e.IsActive,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
	}
}

func (m *FaqMapper) ToEntities(entries []*model.FaqEntry) []*entity.FaqEntry {
	entities := make([]*entity.FaqEntry, len(entries))
	for i, e := range entries {
		entities[i] = m.ToEntity(e)
	}
	return entities
}
