package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/innerlog/sift/pkg/sift/internalerr"
	"github.com/innerlog/sift/pkg/sift/mood"
	"github.com/innerlog/sift/pkg/sift/sentiment"
	"github.com/innerlog/sift/pkg/sift/store"
)

func TestUpsertAndGetEntry(t *testing.T) {
	m := New()
	ctx := context.Background()

	e := store.Entry{ID: "e1", Content: "first entry", SentimentLabel: sentiment.Positive, SentimentScore: 40}
	if err := m.UpsertEntry(ctx, e); err != nil {
		t.Fatalf("UpsertEntry: %v", err)
	}

	got, err := m.GetEntry(ctx, "e1")
	if err != nil {
		t.Fatalf("GetEntry: %v", err)
	}
	if got.Content != "first entry" || got.SentimentScore != 40 {
		t.Errorf("GetEntry = %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt not defaulted")
	}
}

func TestGetEntryNotFound(t *testing.T) {
	m := New()

	_, err := m.GetEntry(context.Background(), "missing")
	if !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestListEntriesOrdered(t *testing.T) {
	m := New()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	m.UpsertEntry(ctx, store.Entry{ID: "b", Content: "second", CreatedAt: base.Add(time.Hour)})
	m.UpsertEntry(ctx, store.Entry{ID: "a", Content: "first", CreatedAt: base})

	entries, err := m.ListEntries(ctx)
	if err != nil {
		t.Fatalf("ListEntries: %v", err)
	}
	if len(entries) != 2 || entries[0].ID != "a" || entries[1].ID != "b" {
		t.Errorf("ListEntries order = %v", entries)
	}
}

func TestEntriesMissingSentiment(t *testing.T) {
	m := New()
	ctx := context.Background()

	m.UpsertEntry(ctx, store.Entry{ID: "scored", Content: "x", SentimentLabel: sentiment.Neutral})
	m.UpsertEntry(ctx, store.Entry{ID: "unscored", Content: "y"})

	pending, err := m.EntriesMissingSentiment(ctx)
	if err != nil {
		t.Fatalf("EntriesMissingSentiment: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != "unscored" {
		t.Errorf("pending = %v, want just the unscored entry", pending)
	}
}

func TestUpdateSentiment(t *testing.T) {
	m := New()
	ctx := context.Background()

	m.UpsertEntry(ctx, store.Entry{ID: "e1", Content: "x"})
	if err := m.UpdateSentiment(ctx, "e1", -55, sentiment.Negative); err != nil {
		t.Fatalf("UpdateSentiment: %v", err)
	}

	got, _ := m.GetEntry(ctx, "e1")
	if got.SentimentScore != -55 || got.SentimentLabel != sentiment.Negative {
		t.Errorf("after update: %+v", got)
	}

	if err := m.UpdateSentiment(ctx, "missing", 0, sentiment.Neutral); !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestUpdateMood(t *testing.T) {
	m := New()
	ctx := context.Background()

	m.UpsertEntry(ctx, store.Entry{ID: "e1", Content: "x"})
	if err := m.UpdateMood(ctx, "e1", mood.Calm); err != nil {
		t.Fatalf("UpdateMood: %v", err)
	}

	got, _ := m.GetEntry(ctx, "e1")
	if got.Mood != mood.Calm {
		t.Errorf("mood = %s, want calm", got.Mood)
	}
}

func TestUpsertEntryKeepsCreatedAt(t *testing.T) {
	m := New()
	ctx := context.Background()
	created := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

	m.UpsertEntry(ctx, store.Entry{ID: "e1", Content: "v1", CreatedAt: created})
	m.UpsertEntry(ctx, store.Entry{ID: "e1", Content: "v2"})

	got, _ := m.GetEntry(ctx, "e1")
	if got.Content != "v2" {
		t.Errorf("content = %q, want v2", got.Content)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want preserved %v", got.CreatedAt, created)
	}
}

func TestEmbeddings(t *testing.T) {
	m := New()
	ctx := context.Background()

	err := m.UpsertEmbedding(ctx, store.Embedding{EntryID: "e1", Vector: "[1,0]", Model: "nomic-embed-text"})
	if err != nil {
		t.Fatalf("UpsertEmbedding: %v", err)
	}
	m.UpsertEmbedding(ctx, store.Embedding{EntryID: "e2", Vector: "[0,1]", Model: "nomic-embed-text"})

	embeddings, err := m.ListEmbeddings(ctx)
	if err != nil {
		t.Fatalf("ListEmbeddings: %v", err)
	}
	if len(embeddings) != 2 {
		t.Fatalf("got %d embeddings, want 2", len(embeddings))
	}
	if embeddings[0].EntryID != "e1" || embeddings[1].EntryID != "e2" {
		t.Errorf("order = %v", embeddings)
	}
	if embeddings[0].UpdatedAt.IsZero() {
		t.Error("UpdatedAt not defaulted")
	}
}
