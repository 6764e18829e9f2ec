package rag

import (
	"context"
	"errors"
	"testing"

	"campus-assistant-be/pkg/lexical"
	"campus-assistant-be/pkg/llm"
	"campus-assistant-be/pkg/llm/chain"
	"campus-assistant-be/pkg/rag/gate"
	"campus-assistant-be/pkg/rag/intent"
	"campus-assistant-be/pkg/rag/response"
	"campus-assistant-be/pkg/vectorindex"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeStore struct {
	docs []Document
	err  error
}

func (s *fakeStore) ActiveDocuments(ctx context.Context) ([]Document, error) {
	return s.docs, s.err
}

type fakeEmbedder struct {
	vector []float32
	err    error
}

func (e *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return e.vector, e.err
}

type docSource struct {
	docs []Document
}

func (s *docSource) ActiveRecords(ctx context.Context) ([]vectorindex.Record, error) {
	var records []vectorindex.Record
	for _, d := range s.docs {
		if d.Embedding != nil {
			records = append(records, vectorindex.Record{ID: d.ID, Embedding: d.Embedding})
		}
	}
	return records, nil
}

type scriptedLLM struct {
	reply string
	err   error
	calls int
}

func (p *scriptedLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	p.calls++
	return p.reply, p.err
}

func (p *scriptedLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	p.calls++
	return p.reply, p.err
}

func (p *scriptedLLM) Name() string { return "scripted" }

func newTestResolver(t *testing.T, docs []Document, storeErr error, provider llm.Provider, embedVec []float32, embedErr error) *Resolver {
	t.Helper()

	contextGate, err := gate.New(gate.DefaultConfig())
	require.NoError(t, err)

	manager := vectorindex.NewManager(&docSource{docs: docs}, vectorindex.MetricCosine, zap.NewNop())

	var providers []llm.Provider
	if provider != nil {
		providers = []llm.Provider{provider}
	}

	return NewResolver(
		contextGate,
		intent.NewClassifier(),
		&fakeStore{docs: docs, err: storeErr},
		manager,
		&fakeEmbedder{vector: embedVec, err: embedErr},
		chain.New(providers, 0, zap.NewNop()),
		nil,
		DefaultConfig(),
		zap.NewNop(),
	)
}

func TestResolveOutOfContext(t *testing.T) {
	r := newTestResolver(t, nil, nil, nil, nil, nil)

	result := r.Resolve(context.Background(), "quien gano el mundial de futbol")

	assert.Equal(t, SourceSystem, result.Source)
	assert.Equal(t, MethodFueraDeContexto, result.Method)
	assert.Equal(t, response.OutOfContext, result.AnswerText)
}

func TestResolveBasicIntent(t *testing.T) {
	store := &fakeStore{}
	r := newTestResolver(t, nil, nil, nil, nil, nil)
	r.store = store

	result := r.Resolve(context.Background(), "hola")

	assert.Equal(t, SourceSystem, result.Source)
	assert.Equal(t, MethodIntencionBasica, result.Method)
	assert.NotEmpty(t, result.AnswerText)
	assert.Equal(t, 1.0, result.Confidence)
}

func TestResolveExactFAQ(t *testing.T) {
	faq := Document{
		ID:       "faq-1",
		Origin:   OriginFAQ,
		Question: "cual es el horario de atencion",
		Answer:   "La secretaría atiende de 08h00 a 16h30.",
	}
	r := newTestResolver(t, []Document{faq}, nil, nil, nil, nil)

	result := r.Resolve(context.Background(), "¿Cuál es el horario de atención?")

	assert.Equal(t, SourceFAQ, result.Source)
	assert.Equal(t, MethodFaqExacta, result.Method)
	assert.Equal(t, faq.Answer, result.AnswerText)
	assert.Equal(t, faq.Question, result.RelatedQuestion)
	assert.InDelta(t, 1.0, result.Confidence, 1e-9)
}

func TestResolveSemanticFAQ(t *testing.T) {
	faq := Document{
		ID:        "faq-1",
		Origin:    OriginFAQ,
		Question:  "como me inscribo en la universidad",
		Answer:    "La inscripción se realiza en línea durante el periodo de matrículas.",
		Text:      "Pregunta: como me inscribo en la universidad\nRespuesta: La inscripción se realiza en línea.",
		Embedding: []float32{1, 0, 0},
	}
	query := "informacion sobre el proceso de admision"
	r := newTestResolver(t, []Document{faq}, nil, nil, []float32{1, 0, 0}, nil)

	// Guard: the wording must not already clear the exact-match bar.
	require.Less(t, lexical.Ratio(query, faq.Question), r.cfg.ExactThreshold)

	result := r.Resolve(context.Background(), query)

	assert.Equal(t, SourceFAQ, result.Source)
	assert.Equal(t, MethodFaqSemantica, result.Method)
	assert.Equal(t, faq.Answer, result.AnswerText)
	assert.Equal(t, faq.Question, result.RelatedQuestion)
	assert.InDelta(t, 0.8, result.Confidence, 1e-6)
}

func TestResolveDocumentSynthesis(t *testing.T) {
	doc := Document{
		ID:        "web-1",
		Origin:    OriginWeb,
		Text:      "los laboratorios de computacion estan abiertos de lunes a viernes de 08h00 a 17h00",
		Category:  "Laboratorios",
		Embedding: []float32{1, 0, 0},
	}
	provider := &scriptedLLM{reply: "Los laboratorios de computación abren de lunes a viernes, de 08h00 a 17h00."}
	r := newTestResolver(t, []Document{doc}, nil, provider, []float32{1, 0, 0}, nil)

	result := r.Resolve(context.Background(), "horario de los laboratorios de computacion")

	assert.Equal(t, SourceDocument, result.Source)
	assert.Equal(t, MethodDocumento, result.Method)
	assert.Equal(t, provider.reply, result.AnswerText)
	assert.Equal(t, 1, provider.calls)
}

func TestResolveDocumentExcerptFallback(t *testing.T) {
	doc := Document{
		ID:        "web-1",
		Origin:    OriginWeb,
		Text:      "los laboratorios de computacion estan abiertos de lunes a viernes de 08h00 a 17h00",
		Category:  "Laboratorios",
		Embedding: []float32{1, 0, 0},
	}
	provider := &scriptedLLM{err: errors.New("provider down")}
	r := newTestResolver(t, []Document{doc}, nil, provider, []float32{1, 0, 0}, nil)

	result := r.Resolve(context.Background(), "horario de los laboratorios de computacion")

	assert.Equal(t, SourceDocument, result.Source)
	assert.Equal(t, MethodDocumento, result.Method)
	assert.Equal(t, doc.Text, result.AnswerText)
}

func TestResolveSecondaryFAQ(t *testing.T) {
	faq := Document{
		ID:       "faq-1",
		Origin:   OriginFAQ,
		Question: "cual es el horario de atencion los sabados",
		Answer:   "Los sábados no hay atención presencial.",
	}
	query := "horario de atencion"
	r := newTestResolver(t, []Document{faq}, nil, nil, nil, nil)

	// Guard: the score must land between the secondary and exact bars.
	score := lexical.Ratio(query, faq.Question)
	require.GreaterOrEqual(t, score, r.cfg.SecondaryThreshold)
	require.Less(t, score, r.cfg.ExactThreshold)

	result := r.Resolve(context.Background(), query)

	assert.Equal(t, SourceFAQ, result.Source)
	assert.Equal(t, MethodFaqSecundaria, result.Method)
	assert.Equal(t, faq.Answer, result.AnswerText)
	assert.InDelta(t, score, result.Confidence, 1e-9)
}

func TestResolveLexicalSupplementKeepsBestScored(t *testing.T) {
	target := Document{
		ID:       "web-target",
		Origin:   OriginWeb,
		Text:     "los laboratorios de computacion estan abiertos de lunes a viernes de 08h00 a 17h00",
		Category: "Laboratorios",
	}
	fillers := []Document{
		{ID: "web-1", Origin: OriginWeb, Text: "los laboratorios de electronica requieren reserva previa del docente"},
		{ID: "web-2", Origin: OriginWeb, Text: "los laboratorios de quimica permanecen cerrados durante el feriado"},
		{ID: "web-3", Origin: OriginWeb, Text: "los laboratorios de fisica comparten equipos con otras carreras"},
		{ID: "web-4", Origin: OriginWeb, Text: "los laboratorios de redes disponen de treinta estaciones de trabajo"},
		{ID: "web-5", Origin: OriginWeb, Text: "los laboratorios de idiomas atienden solo con cita confirmada"},
	}
	// The strongest match is listed after TopK weaker ones; no document
	// carries an embedding, so retrieval is lexical-only.
	docs := append(append([]Document{}, fillers...), target)
	query := "los laboratorios de computacion estan abiertos de lunes a viernes"
	r := newTestResolver(t, docs, nil, nil, nil, nil)

	// Guards: every filler clears the supplement floor but not the fused
	// bar; only the target's fused score terminates at the document stage.
	targetScore := lexical.Ratio(query, lexical.Prefix(target.Text, r.cfg.PrefixLength))
	require.Greater(t, targetScore*r.cfg.Weights.Lexical, r.cfg.CombinedThreshold)
	for _, d := range fillers {
		score := lexical.Ratio(query, lexical.Prefix(d.Text, r.cfg.PrefixLength))
		require.GreaterOrEqual(t, score, r.cfg.LexicalFloor)
		require.Less(t, score, targetScore)
		require.LessOrEqual(t, score*r.cfg.Weights.Lexical, r.cfg.CombinedThreshold)
	}

	result := r.Resolve(context.Background(), query)

	assert.Equal(t, SourceDocument, result.Source)
	assert.Equal(t, MethodDocumento, result.Method)
	assert.Equal(t, target.Text, result.AnswerText)
}

func TestResolveNoCandidates(t *testing.T) {
	r := newTestResolver(t, nil, nil, nil, nil, nil)

	result := r.Resolve(context.Background(), "informacion sobre la universidad")

	assert.Equal(t, SourceSystem, result.Source)
	assert.Equal(t, MethodSinCoincidencias, result.Method)
	assert.Equal(t, response.NoValidMatches, result.AnswerText)
}

func TestResolveStoreErrorDegradesToRefusal(t *testing.T) {
	r := newTestResolver(t, nil, errors.New("db down"), nil, nil, nil)

	result := r.Resolve(context.Background(), "informacion sobre la universidad")

	assert.Equal(t, SourceSystem, result.Source)
	assert.Equal(t, MethodSinCoincidencias, result.Method)
}

func TestResolveRelevanceGateRefusal(t *testing.T) {
	// Candidates clear the semantic floor but not the best-candidate bar,
	// and the query shares almost no text with the retrieved chunks.
	docs := []Document{
		{ID: "web-1", Origin: OriginWeb, Text: "08h30 10h30 12h30 14h30 16h30", Embedding: []float32{0.36, 0.933, 0}},
		{ID: "web-2", Origin: OriginWeb, Text: "07h00 09h00 11h00 13h00 15h00", Embedding: []float32{0.36, 0, 0.933}},
	}
	query := "temario de la materia de calculo avanzado"
	r := newTestResolver(t, docs, nil, nil, []float32{1, 0, 0}, nil)

	for _, d := range docs {
		require.Less(t, lexical.Ratio(query, lexical.Prefix(d.Text, r.cfg.PrefixLength)), r.cfg.RelevanceFloor)
	}

	result := r.Resolve(context.Background(), query)

	assert.Equal(t, SourceSystem, result.Source)
	assert.Equal(t, MethodSinContexto, result.Method)
	assert.Equal(t, response.OutOfContext, result.AnswerText)
}

func TestResolveRestrictedSynthesis(t *testing.T) {
	// A valid academic pattern bypasses the relevance gate even when the
	// retrieved chunks barely overlap the query lexically.
	docs := []Document{
		{ID: "web-1", Origin: OriginWeb, Text: "08h30 10h30 12h30 14h30 16h30", Category: "Horarios", Embedding: []float32{0.36, 0.933, 0}},
		{ID: "web-2", Origin: OriginWeb, Text: "07h00 09h00 11h00 13h00 15h00", Category: "Horarios", Embedding: []float32{0.36, 0, 0.933}},
	}
	provider := &scriptedLLM{reply: "La ESPE está ubicada en Sangolquí, junto al campus principal."}
	r := newTestResolver(t, docs, nil, provider, []float32{1, 0, 0}, nil)

	result := r.Resolve(context.Background(), "donde queda la espe")

	assert.Equal(t, SourceLLM, result.Source)
	assert.Equal(t, MethodLLMRestringido, result.Method)
	assert.Equal(t, provider.reply, result.AnswerText)
}

func TestResolveSynthesisOffDomainRejected(t *testing.T) {
	docs := []Document{
		{ID: "web-1", Origin: OriginWeb, Text: "08h30 10h30 12h30 14h30 16h30", Embedding: []float32{0.36, 0.933, 0}},
		{ID: "web-2", Origin: OriginWeb, Text: "07h00 09h00 11h00 13h00 15h00", Embedding: []float32{0.36, 0, 0.933}},
	}
	provider := &scriptedLLM{reply: "No tengo esa respuesta disponible."}
	r := newTestResolver(t, docs, nil, provider, []float32{1, 0, 0}, nil)

	result := r.Resolve(context.Background(), "donde queda la espe")

	assert.Equal(t, SourceSystem, result.Source)
	assert.Equal(t, MethodSinContexto, result.Method)
	assert.Equal(t, response.OutOfContext, result.AnswerText)
}

func TestResolveSynthesisChainExhausted(t *testing.T) {
	docs := []Document{
		{ID: "web-1", Origin: OriginWeb, Text: "08h30 10h30 12h30 14h30 16h30", Embedding: []float32{0.36, 0.933, 0}},
		{ID: "web-2", Origin: OriginWeb, Text: "07h00 09h00 11h00 13h00 15h00", Embedding: []float32{0.36, 0, 0.933}},
	}
	provider := &scriptedLLM{err: errors.New("provider down")}
	r := newTestResolver(t, docs, nil, provider, []float32{1, 0, 0}, nil)

	result := r.Resolve(context.Background(), "donde queda la espe")

	assert.Equal(t, SourceSystem, result.Source)
	assert.Equal(t, MethodSinCoincidencias, result.Method)
	assert.Equal(t, response.NoValidMatches, result.AnswerText)
}
