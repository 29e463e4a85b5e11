// Package retrieval implements the in-memory knowledge cache and the
// similarity-based retrieval engine behind the reply assistant.
package retrieval

import "math"

// CosineSimilarity computes the cosine similarity between two vectors.
// Returns 0 when the vectors have different lengths, are empty, or either
// has zero magnitude.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, magA, magB float64
	for i := range a {
		dot += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}

	if magA == 0 || magB == 0 {
		return 0
	}

	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}
