package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/innerlog/sift/pkg/sift/sentiment"
)

func testServer(t *testing.T, generate string, embedding []float64) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tags":
			w.WriteHeader(http.StatusOK)
		case "/api/generate":
			var req generateRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Errorf("bad generate request: %v", err)
			}
			if req.Stream {
				t.Error("generate request asked for streaming")
			}
			json.NewEncoder(w).Encode(generateResponse{Response: generate})
		case "/api/embeddings":
			json.NewEncoder(w).Encode(embedResponse{Embedding: embedding})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAvailable(t *testing.T) {
	srv := testServer(t, "", nil)
	c := &Client{BaseURL: srv.URL}

	if !c.Available(context.Background()) {
		t.Error("Available = false against a live server")
	}
}

func TestAvailableDownServer(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c := &Client{BaseURL: srv.URL}

	if c.Available(context.Background()) {
		t.Error("Available = true against a closed server")
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		response string
		want     sentiment.Label
	}{
		{"POSITIVE", sentiment.Positive},
		{"The sentiment is NEGATIVE.", sentiment.Negative},
		{"neutral", sentiment.Neutral},
		{"I cannot tell", sentiment.Neutral},
	}
	for _, tt := range tests {
		srv := testServer(t, tt.response, nil)
		c := &Client{BaseURL: srv.URL}

		got, err := c.Classify(context.Background(), "some journal text")
		if err != nil {
			t.Fatalf("Classify: %v", err)
		}
		if got != tt.want {
			t.Errorf("Classify with response %q = %s, want %s", tt.response, got, tt.want)
		}
	}
}

func TestSuggestDistortions(t *testing.T) {
	srv := testServer(t, "all-or-nothing, catastrophizing", nil)
	c := &Client{BaseURL: srv.URL}

	got, err := c.SuggestDistortions(context.Background(), "journal text")
	if err != nil {
		t.Fatalf("SuggestDistortions: %v", err)
	}
	if !strings.Contains(got, "catastrophizing") {
		t.Errorf("response = %q", got)
	}
}

func TestEmbed(t *testing.T) {
	srv := testServer(t, "", []float64{0.1, 0.2, 0.3})
	c := &Client{BaseURL: srv.URL}

	got, err := c.Embed(context.Background(), "journal text")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(got) != 3 || got[0] != 0.1 {
		t.Errorf("Embed = %v", got)
	}
}

func TestEmbedEmptyResponse(t *testing.T) {
	srv := testServer(t, "", nil)
	c := &Client{BaseURL: srv.URL}

	if _, err := c.Embed(context.Background(), "journal text"); err == nil {
		t.Error("expected error for empty embedding")
	}
}

func TestGenerateServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	c := &Client{BaseURL: srv.URL}

	if _, err := c.Generate(context.Background(), "prompt", GenerateOptions{}); err == nil {
		t.Error("expected error for HTTP 500")
	}
}

func TestGenerateModelError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(generateResponse{Error: "model not found"})
	}))
	t.Cleanup(srv.Close)
	c := &Client{BaseURL: srv.URL}

	if _, err := c.Generate(context.Background(), "prompt", GenerateOptions{}); err == nil {
		t.Error("expected error from payload error field")
	}
}

func TestDefaults(t *testing.T) {
	c := &Client{}
	if c.baseURL() != defaultBaseURL {
		t.Errorf("baseURL = %q", c.baseURL())
	}
	if c.model() != defaultModel {
		t.Errorf("model = %q", c.model())
	}
	if c.embedModel() != defaultEmbedModel {
		t.Errorf("embedModel = %q", c.embedModel())
	}
}

func TestBaseURLTrimsSlash(t *testing.T) {
	c := &Client{BaseURL: "http://host:11434/"}
	if c.baseURL() != "http://host:11434" {
		t.Errorf("baseURL = %q, want trailing slash trimmed", c.baseURL())
	}
}
