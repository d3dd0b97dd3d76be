package keywords

import (
	"sort"
	"time"
)

// Jaccard computes set similarity between two keyword lists: intersection
// size over union size. Either list being empty yields 0.
func Jaccard(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	setA := make(map[string]struct{}, len(a))
	for _, w := range a {
		setA[w] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, w := range b {
		setB[w] = struct{}{}
	}

	intersection := 0
	for w := range setA {
		if _, ok := setB[w]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// Entry is a prior journal record considered for related-entry lookup.
type Entry struct {
	ID        string
	Keywords  []string
	Content   string
	CreatedAt time.Time
}

// Match is a related entry with its similarity score and a short preview.
type Match struct {
	ID         string
	Similarity float64
	Preview    string
}

// minRelatedSimilarity filters out weakly related entries.
const minRelatedSimilarity = 0.2

const previewLen = 100

// FindRelated ranks entries by keyword-set similarity to the target keywords.
// This is the cheap, embedding-free retrieval path; entries below 20%
// similarity are dropped.
func FindRelated(target []string, entries []Entry, limit int) []Match {
	if len(target) == 0 || len(entries) == 0 {
		return nil
	}
	if limit <= 0 {
		limit = 5
	}

	var matches []Match
	for _, entry := range entries {
		sim := Jaccard(target, entry.Keywords)
		if sim <= minRelatedSimilarity {
			continue
		}
		matches = append(matches, Match{
			ID:         entry.ID,
			Similarity: sim,
			Preview:    preview(entry.Content),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

func preview(content string) string {
	runes := []rune(content)
	if len(runes) <= previewLen {
		return content
	}
	return string(runes[:previewLen]) + "..."
}
