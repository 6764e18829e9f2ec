package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateFaqRequest struct {
	Question string   `json:"question" validate:"required,min=5,max=500"`
	Answer   string   `json:"answer" validate:"required,min=5"`
	Category string   `json:"category" validate:"max=100"`
	Keywords []string `json:"keywords,omitempty" validate:"max=20"`
}

type UpdateFaqRequest struct {
	Question string   `json:"question" validate:"required,min=5,max=500"`
	Answer   string   `json:"answer" validate:"required,min=5"`
	Category string   `json:"category" validate:"max=100"`
	Keywords []string `json:"keywords,omitempty" validate:"max=20"`
	IsActive *bool    `json:"is_active,omitempty"`
}

type FaqResponse struct {
	Id        uuid.UUID  `json:"id"`
	Question  string     `json:"question"`
	Answer    string     `json:"answer"`
	Category  string     `json:"category,omitempty"`
	Keywords  []string   `json:"keywords,omitempty"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
