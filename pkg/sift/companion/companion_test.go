package companion

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/innerlog/sift/internal/ollama"
	"github.com/innerlog/sift/pkg/sift/store"
	"github.com/innerlog/sift/pkg/sift/store/memstore"
)

func modelServer(t *testing.T, generate string, embedding []float64) *ollama.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tags":
			w.WriteHeader(http.StatusOK)
		case "/api/generate":
			json.NewEncoder(w).Encode(map[string]string{"response": generate})
		case "/api/embeddings":
			json.NewEncoder(w).Encode(map[string][]float64{"embedding": embedding})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return &ollama.Client{BaseURL: srv.URL}
}

func discard() *log.Logger { return log.New(io.Discard, "", 0) }

func TestFollowUpQuestion(t *testing.T) {
	client := modelServer(t, "What made that moment feel different from the rest of your week?", nil)
	st := memstore.New()
	st.UpsertEntry(context.Background(), store.Entry{ID: "e1", Content: "a good day"})

	c := New(client, st, discard())
	got := c.FollowUpQuestion(context.Background(), "e1")
	if got != "What made that moment feel different from the rest of your week?" {
		t.Errorf("FollowUpQuestion = %q", got)
	}
}

func TestFollowUpQuestionFallbackNoClient(t *testing.T) {
	c := New(nil, memstore.New(), discard())
	if got := c.FollowUpQuestion(context.Background(), "e1"); got != FallbackFollowUp {
		t.Errorf("FollowUpQuestion = %q, want fallback", got)
	}
}

func TestFollowUpQuestionFallbackDownServer(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c := New(&ollama.Client{BaseURL: srv.URL}, memstore.New(), discard())

	if got := c.FollowUpQuestion(context.Background(), "e1"); got != FallbackFollowUp {
		t.Errorf("FollowUpQuestion = %q, want fallback", got)
	}
}

func TestFollowUpQuestionFallbackEmptyResponse(t *testing.T) {
	client := modelServer(t, "  ", nil)
	c := New(client, memstore.New(), discard())

	if got := c.FollowUpQuestion(context.Background(), "e1"); got != FallbackFollowUp {
		t.Errorf("FollowUpQuestion = %q, want fallback for blank response", got)
	}
}

func TestSimilarEntries(t *testing.T) {
	client := modelServer(t, "", []float64{1, 0})
	st := memstore.New()
	ctx := context.Background()

	base := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	st.UpsertEntry(ctx, store.Entry{ID: "close", Content: "about work", CreatedAt: base})
	st.UpsertEntry(ctx, store.Entry{ID: "far", Content: "about cooking", CreatedAt: base})
	st.UpsertEmbedding(ctx, store.Embedding{EntryID: "close", Vector: "[1,0]"})
	st.UpsertEmbedding(ctx, store.Embedding{EntryID: "far", Vector: "[0,1]"})

	c := New(client, st, discard())
	got := c.SimilarEntries(ctx, "how is work going", 5, "")
	if len(got) != 2 {
		t.Fatalf("got %d results, want 2", len(got))
	}
	if got[0].Entry.ID != "close" {
		t.Errorf("best match = %s, want close", got[0].Entry.ID)
	}
	if got[0].Similarity <= got[1].Similarity {
		t.Error("results not sorted by similarity")
	}
}

func TestSimilarEntriesExcludesEntry(t *testing.T) {
	client := modelServer(t, "", []float64{1, 0})
	st := memstore.New()
	ctx := context.Background()

	st.UpsertEntry(ctx, store.Entry{ID: "self", Content: "x"})
	st.UpsertEmbedding(ctx, store.Embedding{EntryID: "self", Vector: "[1,0]"})

	c := New(client, st, discard())
	if got := c.SimilarEntries(ctx, "query", 5, "self"); len(got) != 0 {
		t.Errorf("got %v, want the excluded entry filtered out", got)
	}
}

func TestSimilarEntriesEmbedFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c := New(&ollama.Client{BaseURL: srv.URL}, memstore.New(), discard())

	if got := c.SimilarEntries(context.Background(), "query", 5, ""); got != nil {
		t.Errorf("got %v, want nil on embed failure", got)
	}
}

func TestSimilarEntriesSkipsBadVectors(t *testing.T) {
	client := modelServer(t, "", []float64{1, 0})
	st := memstore.New()
	ctx := context.Background()

	st.UpsertEntry(ctx, store.Entry{ID: "good", Content: "x"})
	st.UpsertEntry(ctx, store.Entry{ID: "bad", Content: "y"})
	st.UpsertEmbedding(ctx, store.Embedding{EntryID: "good", Vector: "[1,0]"})
	st.UpsertEmbedding(ctx, store.Embedding{EntryID: "bad", Vector: "not json"})

	c := New(client, st, discard())
	got := c.SimilarEntries(ctx, "query", 5, "")
	if len(got) != 1 || got[0].Entry.ID != "good" {
		t.Errorf("got %v, want just the parseable entry", got)
	}
}

func TestStoreEntryEmbedding(t *testing.T) {
	client := modelServer(t, "", []float64{0.5, 0.5})
	st := memstore.New()
	ctx := context.Background()

	st.UpsertEntry(ctx, store.Entry{ID: "e1", Content: "entry text"})

	c := New(client, st, discard())
	c.StoreEntryEmbedding(ctx, "e1", "entry text")

	embeddings, err := st.ListEmbeddings(ctx)
	if err != nil {
		t.Fatalf("ListEmbeddings: %v", err)
	}
	if len(embeddings) != 1 {
		t.Fatalf("got %d embeddings, want 1", len(embeddings))
	}
	if embeddings[0].Vector != "[0.5,0.5]" {
		t.Errorf("stored vector = %q", embeddings[0].Vector)
	}
}

func TestStoreEntryEmbeddingFailureSwallowed(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	st := memstore.New()

	c := New(&ollama.Client{BaseURL: srv.URL}, st, discard())
	c.StoreEntryEmbedding(context.Background(), "e1", "text")

	embeddings, _ := st.ListEmbeddings(context.Background())
	if len(embeddings) != 0 {
		t.Errorf("got %d embeddings, want none after failure", len(embeddings))
	}
}
