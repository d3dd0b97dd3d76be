// Package companion provides the reflective conversation layer: follow-up
// questions after writing, and retrieval of semantically similar past entries
// to ground those questions in. Everything here is best-effort; when the model
// endpoint is down the caller gets a canned fallback or an empty slice, never
// an error that would block journaling.
package companion

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/innerlog/sift/internal/ollama"
	"github.com/innerlog/sift/pkg/sift/sentiment"
	"github.com/innerlog/sift/pkg/sift/store"
	"github.com/innerlog/sift/pkg/sift/vector"
)

// FallbackFollowUp is returned when no model is reachable.
const FallbackFollowUp = "How are you feeling about what you've written?"

const (
	contextEntries  = 5
	previewChars    = 100
	followUpTimeout = 15 * time.Second
)

// Companion generates reflective follow-up questions and retrieves similar
// past entries.
type Companion struct {
	Client *ollama.Client
	Store  store.Store
	Logger *log.Logger
}

// New creates a Companion over the given model client and store.
func New(client *ollama.Client, st store.Store, logger *log.Logger) *Companion {
	return &Companion{Client: client, Store: st, Logger: logger}
}

// FollowUpQuestion asks the model for one open-ended question about the entry
// the user just wrote, using recent entries as context. Any failure yields the
// fallback question.
func (c *Companion) FollowUpQuestion(ctx context.Context, entryID string) string {
	if c.Client == nil || !c.Client.Available(ctx) {
		return FallbackFollowUp
	}

	prompt := fmt.Sprintf(`You are a compassionate companion for a mood journal app. Ask ONE thoughtful, open-ended follow-up question about the user's most recent entry. Be warm and non-judgmental, keep it to 1-2 sentences, and do not give advice.

%s

Follow-up question:`, c.journalContext(ctx, entryID))

	response, err := c.Client.Generate(ctx, prompt, ollama.GenerateOptions{
		Temperature: 0.8,
		NumPredict:  120,
		Timeout:     followUpTimeout,
	})
	if err != nil {
		c.logf("companion: follow-up generation failed: %v", err)
		return FallbackFollowUp
	}
	if answer := strings.TrimSpace(response); answer != "" {
		return answer
	}
	return FallbackFollowUp
}

// SimilarEntry pairs a past entry with its similarity to a query.
type SimilarEntry struct {
	Entry      store.Entry
	Similarity float64
}

// SimilarEntries embeds the query and ranks stored entries by cosine
// similarity, excluding excludeID. Failures return an empty slice.
func (c *Companion) SimilarEntries(ctx context.Context, query string, limit int, excludeID string) []SimilarEntry {
	if c.Client == nil || c.Store == nil {
		return nil
	}
	if limit <= 0 {
		limit = 5
	}

	queryVec, err := c.Client.Embed(ctx, query)
	if err != nil {
		c.logf("companion: query embedding failed: %v", err)
		return nil
	}

	embeddings, err := c.Store.ListEmbeddings(ctx)
	if err != nil {
		c.logf("companion: listing embeddings failed: %v", err)
		return nil
	}

	var results []SimilarEntry
	for _, emb := range embeddings {
		if emb.EntryID == excludeID {
			continue
		}
		vec, err := vector.ParseEmbedding(emb.Vector)
		if err != nil {
			c.logf("companion: bad embedding for entry %s: %v", emb.EntryID, err)
			continue
		}
		sim, err := vector.Cosine(queryVec, vec)
		if err != nil {
			// Vector from a different model; skip rather than fail the lookup.
			continue
		}
		entry, err := c.Store.GetEntry(ctx, emb.EntryID)
		if err != nil {
			continue
		}
		results = append(results, SimilarEntry{Entry: entry, Similarity: sim})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// StoreEntryEmbedding embeds content and persists it for entryID. Failure is
// logged and swallowed so entry creation never depends on the model endpoint.
func (c *Companion) StoreEntryEmbedding(ctx context.Context, entryID, content string) {
	if c.Client == nil || c.Store == nil {
		return
	}

	vec, err := c.Client.Embed(ctx, content)
	if err != nil {
		c.logf("companion: embedding entry %s failed: %v", entryID, err)
		return
	}
	serialized, err := vector.SerializeEmbedding(vec)
	if err != nil {
		c.logf("companion: serializing embedding for entry %s failed: %v", entryID, err)
		return
	}
	if err := c.Store.UpsertEmbedding(ctx, store.Embedding{
		EntryID: entryID,
		Vector:  serialized,
		Model:   c.Client.EmbedModel,
	}); err != nil {
		c.logf("companion: storing embedding for entry %s failed: %v", entryID, err)
	}
}

// journalContext renders the most recent entries as prompt context, leading
// with the entry under discussion.
func (c *Companion) journalContext(ctx context.Context, entryID string) string {
	if c.Store == nil {
		return "The user has not written any journal entries yet."
	}
	entries, err := c.Store.ListEntries(ctx)
	if err != nil || len(entries) == 0 {
		return "The user has not written any journal entries yet."
	}

	// ListEntries is oldest-first; take the tail.
	if len(entries) > contextEntries {
		entries = entries[len(entries)-contextEntries:]
	}

	current := entries[len(entries)-1]
	if entryID != "" {
		for _, e := range entries {
			if e.ID == entryID {
				current = e
				break
			}
		}
	}

	var b strings.Builder
	b.WriteString("Recent journal entries:\n\n")
	fmt.Fprintf(&b, "Most recent entry (%s, %s):\n%q\n",
		current.CreatedAt.Format("2006-01-02"), describeLabel(current.SentimentLabel), current.Content)

	rest := 0
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		if e.ID == current.ID {
			continue
		}
		if rest == 0 {
			b.WriteString("\nPrevious entries:\n")
		}
		fmt.Fprintf(&b, "- %s %s: %q\n",
			e.CreatedAt.Format("2006-01-02"), describeLabel(e.SentimentLabel), preview(e.Content))
		rest++
	}
	return b.String()
}

func describeLabel(label sentiment.Label) string {
	switch label {
	case sentiment.Positive:
		return "positive"
	case sentiment.Negative:
		return "negative"
	default:
		return "neutral"
	}
}

func preview(content string) string {
	runes := []rune(content)
	if len(runes) <= previewChars {
		return content
	}
	return string(runes[:previewChars]) + "..."
}

func (c *Companion) logf(format string, args ...any) {
	if c.Logger != nil {
		c.Logger.Printf(format, args...)
	}
}
