package fusion

import "testing"

func TestMergeWeightsAndOrder(t *testing.T) {
	semantic := []Candidate{
		{DocumentID: "a", Semantic: 0.9},
		{DocumentID: "b", Semantic: 0.5},
	}
	lexical := []Candidate{
		{DocumentID: "c", Lexical: 0.95},
	}

	got := Merge(semantic, lexical, DefaultWeights())
	if len(got) != 3 {
		t.Fatalf("Merge returned %d candidates, want 3", len(got))
	}

	// a: 0.9*0.8 = 0.72, b: 0.5*0.8 = 0.40, c: 0.95*0.4 = 0.38
	wantOrder := []string{"a", "b", "c"}
	for i, id := range wantOrder {
		if got[i].DocumentID != id {
			t.Errorf("position %d = %s, want %s", i, got[i].DocumentID, id)
		}
	}
	if diff := got[0].Combined - 0.72; diff < -1e-9 || diff > 1e-9 {
		t.Errorf("top combined = %.3f, want 0.72", got[0].Combined)
	}
	if got[0].Method != MethodSemantic || got[2].Method != MethodLexical {
		t.Errorf("method tags wrong: %v / %v", got[0].Method, got[2].Method)
	}
}

func TestMergeDeduplicatesByDocumentID(t *testing.T) {
	semantic := []Candidate{{DocumentID: "a", Semantic: 0.6}}
	lexical := []Candidate{{DocumentID: "a", Lexical: 0.99}, {DocumentID: "b", Lexical: 0.5}}

	got := Merge(semantic, lexical, DefaultWeights())
	if len(got) != 2 {
		t.Fatalf("Merge returned %d candidates, want 2", len(got))
	}
	if got[0].DocumentID != "a" || got[0].Method != MethodSemantic {
		t.Errorf("semantic evidence should win the collision, got %+v", got[0])
	}
}

// Ties in combined score keep insertion order.
func TestMergeStableTieBreak(t *testing.T) {
	semantic := []Candidate{
		{DocumentID: "first", Semantic: 0.5},
		{DocumentID: "second", Semantic: 0.5},
	}

	got := Merge(semantic, nil, DefaultWeights())
	if got[0].DocumentID != "first" || got[1].DocumentID != "second" {
		t.Errorf("tie-break reordered candidates: %s, %s", got[0].DocumentID, got[1].DocumentID)
	}
}

// Increasing the semantic score of a candidate never decreases its combined
// score.
func TestMergeMonotone(t *testing.T) {
	w := DefaultWeights()
	prev := -1.0
	for s := 0.0; s <= 1.0; s += 0.05 {
		got := Merge([]Candidate{{DocumentID: "a", Semantic: s}}, nil, w)
		if got[0].Combined < prev {
			t.Fatalf("combined decreased: semantic %.2f gave %.3f < %.3f", s, got[0].Combined, prev)
		}
		prev = got[0].Combined
	}
}

func TestMergeNeverNegative(t *testing.T) {
	got := Merge([]Candidate{{DocumentID: "a", Semantic: -0.4}}, nil, DefaultWeights())
	if got[0].Combined < 0 {
		t.Errorf("combined = %.3f, want >= 0", got[0].Combined)
	}
}

func TestCountAbove(t *testing.T) {
	candidates := []Candidate{
		{Semantic: 0.9}, {Semantic: 0.4}, {Semantic: 0.35}, {Semantic: 0.1},
	}
	if got := CountAbove(candidates, 0.35); got != 3 {
		t.Errorf("CountAbove = %d, want 3", got)
	}
}
