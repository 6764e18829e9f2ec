package dto

type DocumentItem struct {
	Content  string `json:"content" validate:"required,min=20"`
	Category string `json:"category" validate:"max=100"`
}

type ImportDocumentsRequest struct {
	Origin    string         `json:"origin" validate:"required,oneof=web pdf"`
	SourceURL string         `json:"source_url" validate:"max=500"`
	Replace   bool           `json:"replace"` // drop previous chunks from this origin first
	Items     []DocumentItem `json:"items" validate:"required,min=1,dive"`
}

type ImportDocumentsResponse struct {
	Imported int `json:"imported"`
	Chunks   int `json:"chunks"`
}
