// Package embedding wraps external embedding models behind a single
// provider contract. Vectors are always returned normalized to unit length
// so cosine similarity reduces to an inner product downstream.
package embedding

import (
	"context"
	"math"
)

// Provider turns text into a fixed-length numeric vector.
type Provider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Normalize scales a vector to unit length. Zero vectors are returned as-is.
func Normalize(vec []float32) []float32 {
	var magnitude float64
	for _, v := range vec {
		magnitude += float64(v) * float64(v)
	}
	magnitude = math.Sqrt(magnitude)
	if magnitude == 0 {
		return vec
	}
	normalized := make([]float32, len(vec))
	for i, v := range vec {
		normalized[i] = float32(float64(v) / magnitude)
	}
	return normalized
}
