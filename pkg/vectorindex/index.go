// Package vectorindex provides an in-memory nearest-neighbor structure over
// knowledge-base embeddings. A built index is an immutable snapshot; rebuilds
// construct a new snapshot and atomically replace the old one, so readers
// never observe a half-built index.
package vectorindex

import (
	"math"
	"sort"
)

// Metric selects how stored vectors are compared.
type Metric int

const (
	// MetricCosine scores by inner product over unit vectors.
	MetricCosine Metric = iota
	// MetricL2 scores by euclidean distance, converted to a similarity.
	MetricL2
)

// Record is one indexable unit: a document id plus its embedding.
type Record struct {
	ID        string
	Embedding []float32
}

// Hit is a search result. Score is a normalized similarity in [0,1],
// regardless of the metric the snapshot was built with.
type Hit struct {
	ID    string
	Score float64
}

// Snapshot is a flat index over a fixed set of records. Immutable once built.
type Snapshot struct {
	metric    Metric
	dimension int
	ids       []string
	vectors   [][]float32
	skipped   int
}

// Build constructs a snapshot from the given records. Records with a missing
// embedding or a dimension that disagrees with the first valid record are
// skipped, never a build failure; Skipped() reports how many were dropped.
// All stored vectors are normalized to unit length.
func Build(records []Record, metric Metric) *Snapshot {
	s := &Snapshot{metric: metric}
	for _, rec := range records {
		if len(rec.Embedding) == 0 {
			s.skipped++
			continue
		}
		if s.dimension == 0 {
			s.dimension = len(rec.Embedding)
		}
		if len(rec.Embedding) != s.dimension {
			s.skipped++
			continue
		}
		s.ids = append(s.ids, rec.ID)
		s.vectors = append(s.vectors, normalize(rec.Embedding))
	}
	return s
}

// Len reports how many records the snapshot indexes.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ids)
}

// Skipped reports how many records were excluded during the build.
func (s *Snapshot) Skipped() int {
	if s == nil {
		return 0
	}
	return s.skipped
}

// Dimension reports the embedding width the snapshot was built with.
func (s *Snapshot) Dimension() int {
	if s == nil {
		return 0
	}
	return s.dimension
}

// Search returns up to k nearest neighbors ordered by decreasing similarity.
// An empty, unbuilt or dimension-mismatched query yields no hits, never an
// error. Ties keep insertion order.
func (s *Snapshot) Search(query []float32, k int) []Hit {
	if s == nil || len(s.ids) == 0 || k <= 0 {
		return nil
	}
	if len(query) != s.dimension {
		return nil
	}

	q := normalize(query)
	hits := make([]Hit, 0, len(s.ids))
	for i, vec := range s.vectors {
		hits = append(hits, Hit{ID: s.ids[i], Score: s.similarity(q, vec)})
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits
}

// similarity converts the metric's raw value to a similarity in [0,1].
// Both vectors are unit length, so cosine is a plain inner product and the
// L2 distance d relates to it by cos = 1 - d^2/2.
func (s *Snapshot) similarity(a, b []float32) float64 {
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}

	var cos float64
	switch s.metric {
	case MetricL2:
		d2 := 2 - 2*dot
		if d2 < 0 {
			d2 = 0
		}
		cos = 1 - d2/2
	default:
		cos = dot
	}

	if cos < 0 {
		return 0
	}
	if cos > 1 {
		return 1
	}
	return cos
}

func normalize(vec []float32) []float32 {
	var magnitude float64
	for _, v := range vec {
		magnitude += float64(v) * float64(v)
	}
	magnitude = math.Sqrt(magnitude)
	if magnitude == 0 {
		return vec
	}
	out := make([]float32, len(vec))
	for i, v := range vec {
		out[i] = float32(float64(v) / magnitude)
	}
	return out
}
