package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/innerlog/sift/pkg/sift/internalerr"
	"github.com/innerlog/sift/pkg/sift/mood"
	"github.com/innerlog/sift/pkg/sift/sentiment"
	"github.com/innerlog/sift/pkg/sift/store"
)

// memStore is an in-memory Store implementation for tests and small batch
// runs.
type memStore struct {
	mu         sync.RWMutex
	entries    map[string]store.Entry
	embeddings map[string]store.Embedding
}

// New creates an empty in-memory store.
func New() store.Store {
	return &memStore{
		entries:    make(map[string]store.Entry),
		embeddings: make(map[string]store.Embedding),
	}
}

func (m *memStore) Close() error { return nil }

func (m *memStore) UpsertEntry(ctx context.Context, e store.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.entries[e.ID]; ok && e.CreatedAt.IsZero() {
		e.CreatedAt = existing.CreatedAt
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	m.entries[e.ID] = e
	return nil
}

func (m *memStore) GetEntry(ctx context.Context, id string) (store.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[id]
	if !ok {
		return store.Entry{}, fmt.Errorf("entry %s: %w", id, internalerr.ErrNotFound)
	}
	return e, nil
}

func (m *memStore) ListEntries(ctx context.Context) ([]store.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sortedEntries(func(store.Entry) bool { return true }), nil
}

func (m *memStore) EntriesMissingSentiment(ctx context.Context) ([]store.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sortedEntries(func(e store.Entry) bool { return e.SentimentLabel == "" }), nil
}

func (m *memStore) UpdateSentiment(ctx context.Context, id string, score sentiment.BatchScore, label sentiment.Label) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[id]
	if !ok {
		return fmt.Errorf("entry %s: %w", id, internalerr.ErrNotFound)
	}
	e.SentimentScore = score
	e.SentimentLabel = label
	m.entries[id] = e
	return nil
}

func (m *memStore) UpdateMood(ctx context.Context, id string, md mood.Mood) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[id]
	if !ok {
		return fmt.Errorf("entry %s: %w", id, internalerr.ErrNotFound)
	}
	e.Mood = md
	m.entries[id] = e
	return nil
}

func (m *memStore) UpsertEmbedding(ctx context.Context, e store.Embedding) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = time.Now().UTC()
	}
	m.embeddings[e.EntryID] = e
	return nil
}

func (m *memStore) ListEmbeddings(ctx context.Context) ([]store.Embedding, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	embeddings := make([]store.Embedding, 0, len(m.embeddings))
	for _, e := range m.embeddings {
		embeddings = append(embeddings, e)
	}
	sort.Slice(embeddings, func(i, j int) bool {
		return embeddings[i].EntryID < embeddings[j].EntryID
	})
	return embeddings, nil
}

func (m *memStore) sortedEntries(keep func(store.Entry) bool) []store.Entry {
	var entries []store.Entry
	for _, e := range m.entries {
		if keep(e) {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].ID < entries[j].ID
		}
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})
	return entries
}
