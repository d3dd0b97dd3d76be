package topics

import (
	"crypto/rand"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/innerlog/sift/pkg/sift/sentiment"
)

// Entry is one journal record's contribution to topic discovery: its
// extracted keywords and stored batch-scale sentiment.
type Entry struct {
	Keywords  []string
	Sentiment sentiment.BatchScore
}

// Topic is a named keyword cluster discovered across entries. EntryCount is
// the maximum individual keyword frequency among members, an approximation of
// the true entry count kept for cheapness, not a set intersection.
type Topic struct {
	ID               string
	Name             string
	Keywords         []string
	EntryCount       int
	AverageSentiment int
}

// minEntries is the smallest batch worth clustering.
const minEntries = 3

// maxTopics caps discovery output.
const maxTopics = 8

// Discoverer clusters keywords into topics via co-occurrence. Topic IDs are
// minted with a monotonic ULID source; the mutex makes a single Discoverer
// safe for concurrent Discover calls.
type Discoverer struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// NewDiscoverer creates a topic discoverer.
func NewDiscoverer() *Discoverer {
	return &Discoverer{entropy: ulid.Monotonic(rand.Reader, 0)}
}

// coCounts tracks directed first-seen co-occurrence counts for one keyword,
// preserving discovery order for stable ranking.
type coCounts struct {
	counts map[string]int
	order  []string
}

func (c *coCounts) inc(word string) {
	if c.counts[word] == 0 {
		c.order = append(c.order, word)
	}
	c.counts[word]++
}

// Discover builds a keyword co-occurrence graph across entries and greedily
// clusters it: the most frequent unused keyword seeds a topic, pulling in up
// to four keywords that co-occur with it at least twice. Fewer than three
// entries yields nothing.
func (d *Discoverer) Discover(entries []Entry) []Topic {
	if len(entries) < minEntries {
		return nil
	}

	coOccurrence := make(map[string]*coCounts)
	type sentStat struct {
		sum   int
		count int
	}
	stats := make(map[string]*sentStat)
	var statOrder []string

	for _, entry := range entries {
		for i, word1 := range entry.Keywords {
			co := coOccurrence[word1]
			if co == nil {
				co = &coCounts{counts: make(map[string]int)}
				coOccurrence[word1] = co
			}

			stat := stats[word1]
			if stat == nil {
				stat = &sentStat{}
				stats[word1] = stat
				statOrder = append(statOrder, word1)
			}
			stat.sum += int(entry.Sentiment)
			stat.count++

			// Directed first-seen pairs; later-seen words never point back,
			// so each unordered pair is booked once per entry.
			for _, word2 := range entry.Keywords[i+1:] {
				co.inc(word2)
			}
		}
	}

	seeds := make([]string, len(statOrder))
	copy(seeds, statOrder)
	sort.SliceStable(seeds, func(i, j int) bool {
		return stats[seeds[i]].count > stats[seeds[j]].count
	})

	used := make(map[string]struct{})
	var result []Topic

	for _, seed := range seeds {
		if _, taken := used[seed]; taken {
			continue
		}
		co := coOccurrence[seed]
		if co == nil {
			continue
		}

		var related []string
		for _, word := range co.order {
			if _, taken := used[word]; taken {
				continue
			}
			if co.counts[word] >= 2 {
				related = append(related, word)
			}
		}
		sort.SliceStable(related, func(i, j int) bool {
			return co.counts[related[i]] > co.counts[related[j]]
		})
		if len(related) > 4 {
			related = related[:4]
		}

		if len(related) < 2 {
			continue
		}

		members := append([]string{seed}, related...)
		for _, w := range members {
			used[w] = struct{}{}
		}

		var meanSum float64
		entryCount := 0
		for _, w := range members {
			stat := stats[w]
			meanSum += float64(stat.sum) / float64(stat.count)
			if stat.count > entryCount {
				entryCount = stat.count
			}
		}
		avgSentiment := int(math.Round(meanSum / float64(len(members))))

		result = append(result, Topic{
			ID:               d.newID(),
			Name:             topicName(members),
			Keywords:         members,
			EntryCount:       entryCount,
			AverageSentiment: avgSentiment,
		})

		if len(result) >= maxTopics {
			break
		}
	}

	return result
}

// newID mints a topic ID. The monotonic entropy source is stateful, so
// minting is serialized.
func (d *Discoverer) newID() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return ulid.MustNew(ulid.Now(), d.entropy).String()
}

// Theme dictionaries for naming clusters of three or more keywords, checked
// in priority order.
var themes = []struct {
	name  string
	words []string
}{
	{"Work & Career", []string{"work", "meeting", "project", "team", "office", "job"}},
	{"Family & Relationships", []string{"family", "mom", "dad", "sister", "brother", "kids"}},
	{"Health & Wellness", []string{"health", "exercise", "gym", "fitness", "running"}},
	{"Creative Pursuits", []string{"music", "art", "writing", "creative", "book"}},
}

func topicName(keywords []string) string {
	main := capitalize(keywords[0])

	if len(keywords) == 1 {
		return main
	}
	if len(keywords) == 2 {
		return main + " & " + keywords[1]
	}

	for _, theme := range themes {
		for _, kw := range keywords {
			lower := strings.ToLower(kw)
			for _, tw := range theme.words {
				if lower == tw {
					return theme.name
				}
			}
		}
	}

	return main + " & More"
}

func capitalize(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + word[1:]
}
