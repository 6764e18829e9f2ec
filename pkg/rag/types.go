// Package rag implements the cascading answer-resolution pipeline: the
// decision process that picks, for each incoming query, the cheapest and
// most reliable source of truth before falling back to generative synthesis.
package rag

import "context"

// Origin identifies where a retrievable document came from.
type Origin string

const (
	OriginFAQ Origin = "faq"
	OriginWeb Origin = "web"
	OriginPDF Origin = "pdf"
)

// Source classifies what ultimately produced an answer.
type Source string

const (
	SourceSystem   Source = "system"
	SourceFAQ      Source = "faq"
	SourceDocument Source = "document"
	SourceLLM      Source = "llm"
)

// Document is a unit of retrievable content. For FAQ entries, Question and
// Answer carry the original curated pair and Text holds the combined
// "Pregunta: ...\nRespuesta: ..." form used for embedding.
type Document struct {
	ID        string
	Text      string
	Origin    Origin
	Question  string
	Answer    string
	Category  string
	Embedding []float32
}

// IsFAQ reports whether the document carries a curated structured answer.
func (d Document) IsFAQ() bool {
	return d.Origin == OriginFAQ
}

// Store is the pipeline's read view of the knowledge base.
type Store interface {
	// ActiveDocuments returns every active document: curated FAQ entries
	// plus unstructured web/pdf chunks.
	ActiveDocuments(ctx context.Context) ([]Document, error)
}

// Result is the final output of a resolution. Constructed once per query,
// immutable, returned to the caller.
type Result struct {
	AnswerText      string
	Source          Source
	Method          string
	Confidence      float64
	RelatedQuestion string
}

// Method tags, one per terminal pipeline stage. Kept stable: they are the
// observability surface callers depend on.
const (
	MethodFueraDeContexto  = "fuera_de_contexto"
	MethodIntencionBasica  = "intencion_basica"
	MethodFaqExacta        = "faq_exacta"
	MethodFaqSemantica     = "faq_semantica"
	MethodFaqSecundaria    = "faq_secundaria"
	MethodDocumento        = "documento"
	MethodLLMRestringido   = "llm_restringido"
	MethodSinCoincidencias = "sin_coincidencias_validas"
	MethodSinContexto      = "sin_contexto_relevante"
)
