package rag

import (
	"context"
	"sort"
	"strings"
	"time"

	"campus-assistant-be/pkg/embedding"
	"campus-assistant-be/pkg/lexical"
	"campus-assistant-be/pkg/llm/chain"
	"campus-assistant-be/pkg/rag/fusion"
	"campus-assistant-be/pkg/rag/gate"
	"campus-assistant-be/pkg/rag/intent"
	"campus-assistant-be/pkg/rag/prompt"
	"campus-assistant-be/pkg/rag/reformulator"
	"campus-assistant-be/pkg/rag/response"
	"campus-assistant-be/pkg/vectorindex"

	"go.uber.org/zap"
)

// Config carries the pipeline's thresholds and weights. The numeric values
// are empirically tuned configuration, not load-bearing invariants; they are
// loaded from the environment and validated against a labeled question set
// before deployment.
type Config struct {
	// ExactThreshold terminates at the structured exact-match stage.
	ExactThreshold float64
	// SecondaryThreshold is the softer bar of the late structured fallback.
	SecondaryThreshold float64
	// CombinedThreshold is the fused-score bar of the best-candidate stage.
	CombinedThreshold float64
	// DocumentLexicalBar gates document-backed synthesis on a prefix check.
	DocumentLexicalBar float64
	// RelevanceFloor is the mean-prefix-similarity minimum before the final
	// generative fallback may run.
	RelevanceFloor float64
	// SemanticFloor is the per-candidate bar used when deciding whether
	// semantic retrieval was dense enough to stand alone.
	SemanticFloor float64
	// LexicalFloor filters lexical supplement candidates.
	LexicalFloor float64
	// MinSemanticCandidates below which lexical supplements are added.
	MinSemanticCandidates int

	TopK          int
	PrefixLength  int
	ExcerptLength int
	Weights       fusion.Weights

	// OverallTimeout bounds one whole resolution, retrieval plus every
	// provider call. On expiry the pipeline still returns a deterministic
	// answer through its non-generative fallbacks.
	OverallTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		ExactThreshold:        0.75,
		SecondaryThreshold:    0.60,
		CombinedThreshold:     0.30,
		DocumentLexicalBar:    0.25,
		RelevanceFloor:        0.15,
		SemanticFloor:         0.35,
		LexicalFloor:          0.30,
		MinSemanticCandidates: 2,
		TopK:                  5,
		PrefixLength:          200,
		ExcerptLength:         400,
		Weights:               fusion.DefaultWeights(),
		OverallTimeout:        20 * time.Second,
	}
}

// Resolver orchestrates the cascading decision process. Each stage either
// terminates with a Result or passes control to the next; no path raises an
// error for a "no good answer" outcome.
type Resolver struct {
	gate     *gate.Gate
	intents  *intent.Classifier
	store    Store
	index    *vectorindex.Manager
	embedder embedding.Provider
	chain    *chain.Chain
	restyle  *reformulator.Reformulator
	cfg      Config
	logger   *zap.Logger
}

func NewResolver(
	contextGate *gate.Gate,
	classifier *intent.Classifier,
	store Store,
	index *vectorindex.Manager,
	embedder embedding.Provider,
	generationChain *chain.Chain,
	restyle *reformulator.Reformulator,
	cfg Config,
	logger *zap.Logger,
) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		gate:     contextGate,
		intents:  classifier,
		store:    store,
		index:    index,
		embedder: embedder,
		chain:    generationChain,
		restyle:  restyle,
		cfg:      cfg,
		logger:   logger,
	}
}

// Resolve runs the full cascade for one non-empty query. Invalid (empty)
// queries are rejected at the service boundary before reaching here.
func (r *Resolver) Resolve(ctx context.Context, query string) *Result {
	if r.cfg.OverallTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.OverallTimeout)
		defer cancel()
	}

	// 1. Context gate: out-of-domain with no pattern override is terminal.
	verdict := r.gate.Evaluate(query)
	if !verdict.InDomain && !verdict.OverrideValid {
		return &Result{
			AnswerText: response.OutOfContext,
			Source:     SourceSystem,
			Method:     MethodFueraDeContexto,
		}
	}

	// 2. Intent short-circuit for conversational filler.
	if _, canned, ok := r.intents.Classify(query); ok {
		return &Result{
			AnswerText: canned,
			Source:     SourceSystem,
			Method:     MethodIntencionBasica,
			Confidence: 1,
		}
	}

	docs, err := r.store.ActiveDocuments(ctx)
	if err != nil {
		// Degraded mode: no structured or lexical candidates, semantic
		// retrieval may still work off the published snapshot.
		r.logger.Error("knowledge store unavailable", zap.Error(err))
	}
	byID := make(map[string]Document, len(docs))
	var faqs []Document
	for _, d := range docs {
		byID[d.ID] = d
		if d.IsFAQ() {
			faqs = append(faqs, d)
		}
	}

	// 3. Exact structured match against every active FAQ question.
	bestFAQ, bestFAQScore := r.bestFAQMatch(query, faqs)
	if bestFAQScore >= r.cfg.ExactThreshold {
		return r.faqResult(ctx, query, bestFAQ, bestFAQScore, MethodFaqExacta)
	}

	// 4. Semantic retrieval over the index snapshot.
	semantic := r.semanticCandidates(ctx, query)

	// 5. Hybrid fusion, supplementing with lexical candidates when the
	// semantic side came back too sparse.
	var lexicalCands []fusion.Candidate
	if fusion.CountAbove(semantic, r.cfg.SemanticFloor) < r.cfg.MinSemanticCandidates {
		lexicalCands = r.lexicalCandidates(query, docs)
	}
	candidates := fusion.Merge(semantic, lexicalCands, r.cfg.Weights)

	// 6. Best-candidate decision.
	if len(candidates) > 0 && candidates[0].Combined > r.cfg.CombinedThreshold {
		if doc, ok := byID[candidates[0].DocumentID]; ok {
			if doc.IsFAQ() {
				return r.faqResult(ctx, query, doc, candidates[0].Combined, MethodFaqSemantica)
			}
			prefixScore := lexical.Ratio(query, lexical.Prefix(doc.Text, r.cfg.PrefixLength))
			if prefixScore >= r.cfg.DocumentLexicalBar {
				return r.documentResult(ctx, query, doc, candidates[0].Combined)
			}
		}
	}

	// 7. Secondary structured fallback, softer bar than stage 3.
	if bestFAQScore >= r.cfg.SecondaryThreshold {
		return r.faqResult(ctx, query, bestFAQ, bestFAQScore, MethodFaqSecundaria)
	}

	if len(candidates) == 0 {
		return &Result{
			AnswerText: response.NoValidMatches,
			Source:     SourceSystem,
			Method:     MethodSinCoincidencias,
		}
	}

	// 8. Relevance gate before the generative fallback.
	meanRelevance := r.meanPrefixSimilarity(query, candidates, byID)
	if meanRelevance < r.cfg.RelevanceFloor && !verdict.OverrideValid {
		return &Result{
			AnswerText: response.OutOfContext,
			Source:     SourceSystem,
			Method:     MethodSinContexto,
		}
	}

	// 9. Final restricted synthesis over every retrieved excerpt.
	return r.restrictedSynthesis(ctx, query, candidates, byID, meanRelevance)
}

// bestFAQMatch scans every active FAQ question with the lexical matcher and
// keeps the single best score for both the exact and the secondary stage.
func (r *Resolver) bestFAQMatch(query string, faqs []Document) (Document, float64) {
	var best Document
	bestScore := 0.0
	for _, faq := range faqs {
		score := lexical.Ratio(query, faq.Question)
		if score > bestScore {
			best = faq
			bestScore = score
		}
	}
	return best, bestScore
}

func (r *Resolver) semanticCandidates(ctx context.Context, query string) []fusion.Candidate {
	if r.index == nil || r.embedder == nil {
		return nil
	}
	snapshot, err := r.index.EnsureBuilt(ctx)
	if err != nil {
		// Previous snapshot (possibly nil) keeps serving; log and move on.
		r.logger.Warn("vector index not rebuilt for this query", zap.Error(err))
	}
	if snapshot.Len() == 0 {
		return nil
	}

	vector, err := r.embedder.Embed(ctx, query)
	if err != nil {
		// Embedding failure degrades to lexical-only scoring.
		r.logger.Warn("query embedding failed, degrading to lexical scoring", zap.Error(err))
		return nil
	}

	hits := snapshot.Search(vector, r.cfg.TopK)
	candidates := make([]fusion.Candidate, 0, len(hits))
	for _, hit := range hits {
		candidates = append(candidates, fusion.Candidate{
			DocumentID: hit.ID,
			Semantic:   hit.Score,
		})
	}
	return candidates
}

// lexicalCandidates scores documents with the string matcher: FAQ entries
// against their curated question, chunks against their content prefix.
func (r *Resolver) lexicalCandidates(query string, docs []Document) []fusion.Candidate {
	var candidates []fusion.Candidate
	for _, doc := range docs {
		var score float64
		if doc.IsFAQ() {
			score = lexical.Ratio(query, doc.Question)
		} else {
			score = lexical.Ratio(query, lexical.Prefix(doc.Text, r.cfg.PrefixLength))
		}
		if score >= r.cfg.LexicalFloor {
			candidates = append(candidates, fusion.Candidate{
				DocumentID: doc.ID,
				Lexical:    score,
			})
		}
	}
	// The floor can admit more than TopK; truncation must keep the
	// best-scored supplements, not the first in store order.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Lexical > candidates[j].Lexical
	})
	if len(candidates) > r.cfg.TopK {
		candidates = candidates[:r.cfg.TopK]
	}
	return candidates
}

func (r *Resolver) meanPrefixSimilarity(query string, candidates []fusion.Candidate, byID map[string]Document) float64 {
	if len(candidates) == 0 {
		return 0
	}
	var sum float64
	for _, c := range candidates {
		doc := byID[c.DocumentID]
		sum += lexical.Ratio(query, lexical.Prefix(doc.Text, r.cfg.PrefixLength))
	}
	return sum / float64(len(candidates))
}

// faqResult is the terminal path for structured answers. Reformulation is a
// presentation step only: it never changes source, method or confidence, and
// any failure keeps the curated answer verbatim.
func (r *Resolver) faqResult(ctx context.Context, query string, faq Document, confidence float64, method string) *Result {
	answer := faq.Answer
	if r.restyle != nil {
		answer = r.restyle.Reformulate(ctx, faq.Answer, query)
	}
	return &Result{
		AnswerText:      answer,
		Source:          SourceFAQ,
		Method:          method,
		Confidence:      confidence,
		RelatedQuestion: faq.Question,
	}
}

// documentResult synthesizes from a single unstructured document. When the
// chain is exhausted the document's own excerpt is the deterministic
// fallback; the user never sees a provider error.
func (r *Resolver) documentResult(ctx context.Context, query string, doc Document, confidence float64) *Result {
	excerpt := lexical.Prefix(doc.Text, r.cfg.ExcerptLength)
	if len(excerpt) < len(doc.Text) {
		excerpt += "..."
	}

	answer := excerpt
	if r.chain != nil {
		generated, err := r.chain.Generate(ctx, prompt.RestrictedDocument(query, prompt.Excerpt{
			Title: doc.Category,
			Text:  excerpt,
		}))
		if err == nil {
			answer = generated
		} else {
			r.logger.Warn("document synthesis failed, returning excerpt", zap.Error(err))
		}
	}

	return &Result{
		AnswerText: answer,
		Source:     SourceDocument,
		Method:     MethodDocumento,
		Confidence: confidence,
	}
}

// restrictedSynthesis is the last generative stage: all retrieved excerpts
// in one prompt, answer only from context. The generated text must still
// mention at least one domain term or the refusal wins.
func (r *Resolver) restrictedSynthesis(ctx context.Context, query string, candidates []fusion.Candidate, byID map[string]Document, confidence float64) *Result {
	excerpts := make([]prompt.Excerpt, 0, len(candidates))
	for _, c := range candidates {
		doc, ok := byID[c.DocumentID]
		if !ok {
			continue
		}
		title := doc.Question
		if title == "" {
			title = doc.Category
		}
		excerpts = append(excerpts, prompt.Excerpt{
			Title: title,
			Text:  lexical.Prefix(doc.Text, r.cfg.ExcerptLength),
		})
	}

	if r.chain == nil || len(excerpts) == 0 {
		return &Result{
			AnswerText: response.NoValidMatches,
			Source:     SourceSystem,
			Method:     MethodSinCoincidencias,
		}
	}

	generated, err := r.chain.Generate(ctx, prompt.RestrictedContext(query, excerpts))
	if err != nil {
		return &Result{
			AnswerText: response.NoValidMatches,
			Source:     SourceSystem,
			Method:     MethodSinCoincidencias,
		}
	}

	if !r.onDomain(generated) {
		return &Result{
			AnswerText: response.OutOfContext,
			Source:     SourceSystem,
			Method:     MethodSinContexto,
		}
	}

	return &Result{
		AnswerText: generated,
		Source:     SourceLLM,
		Method:     MethodLLMRestringido,
		Confidence: confidence,
	}
}

// onDomain checks the generated text for at least one domain-indicator term
// from the gate's allow-list.
func (r *Resolver) onDomain(text string) bool {
	normalized := lexical.Normalize(text)
	for _, term := range r.gate.AllowTerms() {
		if term != "" && strings.Contains(normalized, term) {
			return true
		}
	}
	return false
}
