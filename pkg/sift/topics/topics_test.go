package topics

import (
	"sync"
	"testing"

	"github.com/innerlog/sift/pkg/sift/sentiment"
)

func entriesWith(keywords []string, sentiments ...sentiment.BatchScore) []Entry {
	entries := make([]Entry, len(sentiments))
	for i, s := range sentiments {
		entries[i] = Entry{Keywords: keywords, Sentiment: s}
	}
	return entries
}

func TestDiscoverTooFewEntries(t *testing.T) {
	d := NewDiscoverer()

	entries := entriesWith([]string{"work", "meeting", "project"}, 10, 20)
	if got := d.Discover(entries); got != nil {
		t.Errorf("Discover(2 entries) = %v, want nil", got)
	}
}

func TestDiscoverCluster(t *testing.T) {
	d := NewDiscoverer()

	entries := entriesWith([]string{"work", "meeting", "project"}, 50, 50, -10)
	got := d.Discover(entries)
	if len(got) != 1 {
		t.Fatalf("Discover returned %d topics, want 1", len(got))
	}

	topic := got[0]
	if topic.ID == "" {
		t.Error("topic has no ID")
	}
	if topic.Name != "Work & Career" {
		t.Errorf("Name = %q, want Work & Career", topic.Name)
	}
	if len(topic.Keywords) != 3 {
		t.Errorf("Keywords = %v, want 3 members", topic.Keywords)
	}
	if topic.Keywords[0] != "work" {
		t.Errorf("seed = %q, want work", topic.Keywords[0])
	}
	if topic.EntryCount != 3 {
		t.Errorf("EntryCount = %d, want 3", topic.EntryCount)
	}
	if topic.AverageSentiment != 30 {
		t.Errorf("AverageSentiment = %d, want 30", topic.AverageSentiment)
	}
}

func TestDiscoverNoCoOccurrence(t *testing.T) {
	d := NewDiscoverer()

	entries := []Entry{
		{Keywords: []string{"alpha", "bravo"}},
		{Keywords: []string{"charlie", "delta"}},
		{Keywords: []string{"echo", "foxtrot"}},
	}
	if got := d.Discover(entries); len(got) != 0 {
		t.Errorf("Discover(disjoint keywords) = %v, want none", got)
	}
}

func TestDiscoverFallbackName(t *testing.T) {
	d := NewDiscoverer()

	entries := entriesWith([]string{"guitar", "practice", "lessons"}, 10, 10, 10)
	got := d.Discover(entries)
	if len(got) != 1 {
		t.Fatalf("Discover returned %d topics, want 1", len(got))
	}
	if got[0].Name != "Guitar & More" {
		t.Errorf("Name = %q, want Guitar & More", got[0].Name)
	}
}

func TestDiscoverUniqueIDs(t *testing.T) {
	d := NewDiscoverer()

	entries := []Entry{
		{Keywords: []string{"work", "meeting", "project"}, Sentiment: 10},
		{Keywords: []string{"work", "meeting", "project"}, Sentiment: 10},
		{Keywords: []string{"guitar", "practice", "lessons"}, Sentiment: 20},
		{Keywords: []string{"guitar", "practice", "lessons"}, Sentiment: 20},
	}
	got := d.Discover(entries)
	if len(got) != 2 {
		t.Fatalf("Discover returned %d topics, want 2", len(got))
	}
	if got[0].ID == got[1].ID {
		t.Error("topic IDs are not unique")
	}
}

func TestDiscoverConcurrent(t *testing.T) {
	d := NewDiscoverer()
	entries := entriesWith([]string{"work", "meeting", "project"}, 10, 20, 30)

	const workers = 8
	ids := make(chan string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := d.Discover(entries)
			if len(got) != 1 {
				t.Errorf("Discover returned %d topics, want 1", len(got))
				return
			}
			ids <- got[0].ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]struct{})
	for id := range ids {
		if _, dup := seen[id]; dup {
			t.Errorf("duplicate topic ID %s across concurrent calls", id)
		}
		seen[id] = struct{}{}
	}
}

func TestDiscoverUsedKeywordsNotReseeded(t *testing.T) {
	d := NewDiscoverer()

	// Every keyword lands in the first cluster; no second topic can form
	// from leftovers.
	entries := entriesWith([]string{"work", "meeting", "project", "team"}, 5, 5, 5)
	got := d.Discover(entries)
	if len(got) != 1 {
		t.Errorf("Discover returned %d topics, want 1", len(got))
	}
}

func TestTopicName(t *testing.T) {
	tests := []struct {
		keywords []string
		want     string
	}{
		{[]string{"guitar"}, "Guitar"},
		{[]string{"guitar", "practice"}, "Guitar & practice"},
		{[]string{"mom", "dinner", "weekend"}, "Family & Relationships"},
		{[]string{"gym", "running", "morning"}, "Health & Wellness"},
		{[]string{"writing", "draft", "chapter"}, "Creative Pursuits"},
		{[]string{"random", "cluster", "words"}, "Random & More"},
	}
	for _, tt := range tests {
		if got := topicName(tt.keywords); got != tt.want {
			t.Errorf("topicName(%v) = %q, want %q", tt.keywords, got, tt.want)
		}
	}
}
