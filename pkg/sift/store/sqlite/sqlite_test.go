package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/innerlog/sift/pkg/sift/internalerr"
	"github.com/innerlog/sift/pkg/sift/mood"
	"github.com/innerlog/sift/pkg/sift/sentiment"
	"github.com/innerlog/sift/pkg/sift/store"
)

func openTestStore(t *testing.T) store.Store {
	t.Helper()
	st, err := Open(context.Background(), filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestEntryRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	e := store.Entry{
		ID:             "e1",
		Content:        "walked along the river",
		Mood:           mood.Calm,
		SentimentScore: 35,
		SentimentLabel: sentiment.Positive,
		Keywords:       []string{"river", "walk"},
		CreatedAt:      time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC),
	}
	if err := st.UpsertEntry(ctx, e); err != nil {
		t.Fatalf("UpsertEntry: %v", err)
	}

	got, err := st.GetEntry(ctx, "e1")
	if err != nil {
		t.Fatalf("GetEntry: %v", err)
	}
	if got.Content != e.Content || got.Mood != e.Mood {
		t.Errorf("GetEntry = %+v", got)
	}
	if got.SentimentScore != 35 || got.SentimentLabel != sentiment.Positive {
		t.Errorf("sentiment round trip = %d %s", got.SentimentScore, got.SentimentLabel)
	}
	if len(got.Keywords) != 2 || got.Keywords[0] != "river" {
		t.Errorf("keywords = %v", got.Keywords)
	}
	if !got.CreatedAt.Equal(e.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, e.CreatedAt)
	}
}

func TestGetEntryNotFound(t *testing.T) {
	st := openTestStore(t)

	_, err := st.GetEntry(context.Background(), "missing")
	if !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestUpsertEntryOverwrites(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	st.UpsertEntry(ctx, store.Entry{ID: "e1", Content: "v1"})
	if err := st.UpsertEntry(ctx, store.Entry{ID: "e1", Content: "v2"}); err != nil {
		t.Fatalf("second UpsertEntry: %v", err)
	}

	got, _ := st.GetEntry(ctx, "e1")
	if got.Content != "v2" {
		t.Errorf("content = %q, want v2", got.Content)
	}
}

func TestEntriesMissingSentiment(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	st.UpsertEntry(ctx, store.Entry{ID: "scored", Content: "x", SentimentLabel: sentiment.Neutral})
	st.UpsertEntry(ctx, store.Entry{ID: "unscored", Content: "y"})

	pending, err := st.EntriesMissingSentiment(ctx)
	if err != nil {
		t.Fatalf("EntriesMissingSentiment: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != "unscored" {
		t.Errorf("pending = %v, want just the unscored entry", pending)
	}
}

func TestUpdateSentimentAndMood(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	st.UpsertEntry(ctx, store.Entry{ID: "e1", Content: "x"})

	if err := st.UpdateSentiment(ctx, "e1", -60, sentiment.Negative); err != nil {
		t.Fatalf("UpdateSentiment: %v", err)
	}
	if err := st.UpdateMood(ctx, "e1", mood.Sad); err != nil {
		t.Fatalf("UpdateMood: %v", err)
	}

	got, _ := st.GetEntry(ctx, "e1")
	if got.SentimentScore != -60 || got.SentimentLabel != sentiment.Negative || got.Mood != mood.Sad {
		t.Errorf("after updates: %+v", got)
	}

	if err := st.UpdateSentiment(ctx, "missing", 0, sentiment.Neutral); !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestListEntriesOrdered(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	st.UpsertEntry(ctx, store.Entry{ID: "b", Content: "second", CreatedAt: base.Add(time.Hour)})
	st.UpsertEntry(ctx, store.Entry{ID: "a", Content: "first", CreatedAt: base})

	entries, err := st.ListEntries(ctx)
	if err != nil {
		t.Fatalf("ListEntries: %v", err)
	}
	if len(entries) != 2 || entries[0].ID != "a" {
		t.Errorf("order = %v", entries)
	}
}

func TestEmbeddingRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	st.UpsertEntry(ctx, store.Entry{ID: "e1", Content: "x"})
	err := st.UpsertEmbedding(ctx, store.Embedding{EntryID: "e1", Vector: "[0.1,0.2]", Model: "nomic-embed-text"})
	if err != nil {
		t.Fatalf("UpsertEmbedding: %v", err)
	}

	// Upsert replaces the stored vector.
	err = st.UpsertEmbedding(ctx, store.Embedding{EntryID: "e1", Vector: "[0.3,0.4]", Model: "nomic-embed-text"})
	if err != nil {
		t.Fatalf("second UpsertEmbedding: %v", err)
	}

	embeddings, err := st.ListEmbeddings(ctx)
	if err != nil {
		t.Fatalf("ListEmbeddings: %v", err)
	}
	if len(embeddings) != 1 {
		t.Fatalf("got %d embeddings, want 1", len(embeddings))
	}
	if embeddings[0].Vector != "[0.3,0.4]" {
		t.Errorf("vector = %q, want replaced value", embeddings[0].Vector)
	}
	if embeddings[0].Model != "nomic-embed-text" {
		t.Errorf("model = %q", embeddings[0].Model)
	}
}
