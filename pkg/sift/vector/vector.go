package vector

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/innerlog/sift/pkg/sift/internalerr"
)

// Cosine computes the cosine similarity of two vectors. Mismatched lengths
// are a caller precondition violation and fail; a zero-norm vector yields 0
// rather than dividing by zero.
func Cosine(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", internalerr.ErrLengthMismatch, len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

// ParseEmbedding decodes a JSON number array into a vector.
func ParseEmbedding(data string) ([]float64, error) {
	var embedding []float64
	if err := json.Unmarshal([]byte(data), &embedding); err != nil {
		return nil, fmt.Errorf("parse embedding: %w", err)
	}
	return embedding, nil
}

// SerializeEmbedding encodes a vector as a JSON number array.
func SerializeEmbedding(embedding []float64) (string, error) {
	data, err := json.Marshal(embedding)
	if err != nil {
		return "", fmt.Errorf("serialize embedding: %w", err)
	}
	return string(data), nil
}

// Candidate pairs an external identifier with its embedding.
type Candidate struct {
	ID        string
	Embedding []float64
}

// Similarity is a scored candidate.
type Similarity struct {
	ID         string
	Similarity float64
}

// FindMostSimilar scores every candidate against the query embedding and
// returns the top matches by descending similarity. A candidate whose length
// mismatches the query fails the whole call; vectors are expected to come
// from one embedding model.
func FindMostSimilar(query []float64, candidates []Candidate, limit int) ([]Similarity, error) {
	if limit <= 0 {
		limit = 5
	}

	results := make([]Similarity, 0, len(candidates))
	for _, cand := range candidates {
		sim, err := Cosine(query, cand.Embedding)
		if err != nil {
			return nil, fmt.Errorf("candidate %s: %w", cand.ID, err)
		}
		results = append(results, Similarity{ID: cand.ID, Similarity: sim})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}
