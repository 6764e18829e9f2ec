// Package reformulator restyles structured answers through the generation
// chain without ever blocking answer delivery: any failure, including an
// exhausted provider chain, falls back to the original text verbatim.
package reformulator

import (
	"context"
	"regexp"
	"strings"

	"campus-assistant-be/pkg/llm"
	"campus-assistant-be/pkg/llm/chain"
	"campus-assistant-be/pkg/rag/prompt"

	"go.uber.org/zap"
)

// numberPattern captures digit sequences including times like "8:00"; a
// rewrite that drops any of them is considered to have altered the facts.
var numberPattern = regexp.MustCompile(`\d+(?:[:.,]\d+)*`)

type Reformulator struct {
	chain  *chain.Chain
	logger *zap.Logger

	// minLengthRatio rejects rewrites that shrink below this fraction of
	// the original, a cheap signal that content was dropped.
	minLengthRatio float64
}

func New(generationChain *chain.Chain, logger *zap.Logger) *Reformulator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reformulator{
		chain:          generationChain,
		logger:         logger,
		minLengthRatio: 0.4,
	}
}

// Reformulate returns a style-only rewrite of originalAnswer, or the
// original verbatim when generation fails or the rewrite does not preserve
// the original's facts.
func (r *Reformulator) Reformulate(ctx context.Context, originalAnswer, query string) string {
	if r.chain == nil || r.chain.Len() == 0 {
		return originalAnswer
	}

	rewritten, err := r.chain.Generate(ctx,
		prompt.Reformulation(originalAnswer, query),
		llm.WithTemperature(0.3),
	)
	if err != nil {
		r.logger.Warn("reformulation failed, using verbatim answer", zap.Error(err))
		return originalAnswer
	}

	rewritten = strings.TrimSpace(rewritten)
	if !r.preservesFacts(originalAnswer, rewritten) {
		r.logger.Warn("reformulation rejected, facts not preserved",
			zap.Int("original_len", len(originalAnswer)),
			zap.Int("rewritten_len", len(rewritten)))
		return originalAnswer
	}
	return rewritten
}

// preservesFacts applies the factual-consistency heuristics: non-empty,
// length above the floor, and every digit sequence of the original retained.
func (r *Reformulator) preservesFacts(original, rewritten string) bool {
	if rewritten == "" {
		return false
	}
	if float64(len(rewritten)) < float64(len(original))*r.minLengthRatio {
		return false
	}
	for _, num := range numberPattern.FindAllString(original, -1) {
		if !strings.Contains(rewritten, num) {
			return false
		}
	}
	return true
}
