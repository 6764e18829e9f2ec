package dto

type AskRequest struct {
	Question string `json:"question" validate:"required,min=1,max=1000"`
}

type AskResponse struct {
	Answer          string  `json:"answer"`
	Source          string  `json:"source"` // "system" | "faq" | "document" | "llm"
	Method          string  `json:"method"`
	Confidence      float64 `json:"confidence"`
	RelatedQuestion string  `json:"related_question,omitempty"`
	Cached          bool    `json:"cached,omitempty"`
}
