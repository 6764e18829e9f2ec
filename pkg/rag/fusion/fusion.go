// Package fusion merges semantic and lexical retrieval scores into one
// ranking. Semantic evidence is weighted higher than lexical evidence, and
// lexical candidates only supplement the list when semantic retrieval came
// back too sparse.
package fusion

import "sort"

// Method tags how a candidate was scored.
type Method string

const (
	MethodSemantic Method = "semantic"
	MethodLexical  Method = "lexical"
	MethodExact    Method = "exact"
)

// Candidate is an ephemeral per-query scoring record.
type Candidate struct {
	DocumentID string
	Semantic   float64
	Lexical    float64
	Combined   float64
	Method     Method
}

// Weights fixes the combined-score derivation. Defaults keep the weighting
// the department tuned against its labeled question set.
type Weights struct {
	Semantic float64
	Lexical  float64
}

func DefaultWeights() Weights {
	return Weights{Semantic: 0.8, Lexical: 0.4}
}

// Merge combines semantic candidates with lexical supplements, de-duplicated
// by document id (semantic evidence wins a collision), each candidate's
// combined score derived from its own component and weight. The result is
// sorted by decreasing combined score; ties keep insertion order, since
// retrieval order reflects index proximity.
func Merge(semantic, lexical []Candidate, w Weights) []Candidate {
	merged := make([]Candidate, 0, len(semantic)+len(lexical))
	seen := make(map[string]bool, len(semantic))

	for _, c := range semantic {
		c.Method = MethodSemantic
		c.Combined = clamp(c.Semantic * w.Semantic)
		merged = append(merged, c)
		seen[c.DocumentID] = true
	}
	for _, c := range lexical {
		if seen[c.DocumentID] {
			continue
		}
		c.Method = MethodLexical
		c.Combined = clamp(c.Lexical * w.Lexical)
		merged = append(merged, c)
		seen[c.DocumentID] = true
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Combined > merged[j].Combined
	})
	return merged
}

// CountAbove reports how many candidates have a component score at or above
// the bar; the pipeline uses it to decide whether semantic retrieval was
// dense enough to stand alone.
func CountAbove(candidates []Candidate, bar float64) int {
	n := 0
	for _, c := range candidates {
		if c.Semantic >= bar {
			n++
		}
	}
	return n
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
