package store

import (
	"context"
	"time"

	"github.com/innerlog/sift/pkg/sift/mood"
	"github.com/innerlog/sift/pkg/sift/sentiment"
)

// Store persists journal entries and their analysis results for the batch
// tools (backfill, topic discovery) and embedding retrieval. The interactive
// analyzers never touch it; they are pure functions over their inputs.
type Store interface {
	Close() error

	// Entries
	UpsertEntry(ctx context.Context, e Entry) error
	GetEntry(ctx context.Context, id string) (Entry, error)
	ListEntries(ctx context.Context) ([]Entry, error)
	EntriesMissingSentiment(ctx context.Context) ([]Entry, error)
	UpdateSentiment(ctx context.Context, id string, score sentiment.BatchScore, label sentiment.Label) error
	UpdateMood(ctx context.Context, id string, m mood.Mood) error

	// Embeddings
	UpsertEmbedding(ctx context.Context, e Embedding) error
	ListEmbeddings(ctx context.Context) ([]Embedding, error)
}

// Entry is a stored journal entry with its analysis fields. An empty
// SentimentLabel marks an entry that has not been scored yet; the sentiment
// score is on the batch -100..100 scale at this boundary (the interactive
// -1..1 score converts via sentiment.Score.Batch before landing here).
type Entry struct {
	ID             string
	Content        string
	Mood           mood.Mood
	SentimentScore sentiment.BatchScore
	SentimentLabel sentiment.Label
	Keywords       []string
	CreatedAt      time.Time
}

// Embedding is a stored entry embedding, serialized as a JSON number array,
// tagged with the model that produced it. Vectors from different models are
// not comparable.
type Embedding struct {
	EntryID   string
	Vector    string
	Model     string
	UpdatedAt time.Time
}
