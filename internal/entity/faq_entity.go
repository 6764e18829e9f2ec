package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type FaqEntry struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Question       string
	Answer         string
	Category       string
	Keywords       []string
	EmbeddingValue []float32
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}

// EmbeddingText is the combined form indexed for semantic retrieval. The
// question and answer are embedded together so paraphrased queries can match
// on either side of the pair.
func (f *FaqEntry) EmbeddingText() string {
	return fmt.Sprintf("Pregunta: %s\nRespuesta: %s", f.Question, f.Answer)
}
