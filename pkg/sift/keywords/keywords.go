package keywords

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/innerlog/sift/pkg/sift/textclean"
)

// minTextLen is the shortest text worth extracting from; anything under it
// returns no keywords or entities.
const minTextLen = 10

// DefaultMaxKeywords is the keyword cap applied when the caller passes a
// non-positive maximum.
const DefaultMaxKeywords = 5

var defaultStopwords = []string{
	"i", "me", "my", "myself", "we", "our", "ours", "ourselves", "you",
	"your", "yours", "yourself", "yourselves", "he", "him", "his",
	"himself", "she", "her", "hers", "herself", "it", "its", "itself",
	"they", "them", "their", "theirs", "themselves", "what", "which",
	"who", "whom", "this", "that", "these", "those", "am", "is", "are",
	"was", "were", "be", "been", "being", "have", "has", "had", "having",
	"do", "does", "did", "doing", "a", "an", "the", "and", "but", "if",
	"or", "because", "as", "until", "while", "of", "at", "by", "for",
	"with", "about", "against", "between", "into", "through", "during",
	"before", "after", "above", "below", "to", "from", "up", "down", "in",
	"out", "on", "off", "over", "under", "again", "further", "then",
	"once", "here", "there", "when", "where", "why", "how", "all", "both",
	"each", "few", "more", "most", "other", "some", "such", "no", "nor",
	"not", "only", "own", "same", "so", "than", "too", "very", "s", "t",
	"can", "will", "just", "don", "should", "now", "today", "yesterday",
	"tomorrow", "also", "im", "ive", "id", "ill", "youre", "youve",
	"youll", "youd", "hes", "shes", "theyre", "theyve", "theyll", "theyd",
	"whos", "whats", "wheres", "whens", "whys", "hows", "isnt", "arent",
	"wasnt", "werent", "hasnt", "havent", "hadnt", "doesnt", "dont",
	"didnt", "wont", "wouldnt", "shant", "shouldnt", "cant", "cannot",
	"couldnt", "mustnt", "lets", "thats", "heres", "theres",
}

var (
	tokenSplitRe = regexp.MustCompile(`\W+`)
	numericRe    = regexp.MustCompile(`^\d+$`)
)

// Extractor pulls ranked keywords out of journal text using term frequency
// weighted by a simplified IDF. There is no corpus behind the IDF: words
// repeated a few times are rewarded over ultra-frequent ones, which works
// well enough on single entries.
type Extractor struct {
	stopwords map[string]struct{}
}

// NewExtractor creates an extractor with the built-in English stopword set.
func NewExtractor() *Extractor {
	return NewExtractorWithStopwords(defaultStopwords)
}

// NewExtractorWithStopwords creates an extractor with a custom stopword list.
func NewExtractorWithStopwords(stopwords []string) *Extractor {
	stops := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		stops[strings.ToLower(w)] = struct{}{}
	}
	return &Extractor{stopwords: stops}
}

// Keywords returns up to max ranked keywords from text. Text under 10
// characters yields nil.
func (e *Extractor) Keywords(text string, max int) []string {
	if len(strings.TrimSpace(text)) < minTextLen {
		return nil
	}
	if max <= 0 {
		max = DefaultMaxKeywords
	}

	clean := strings.ToLower(textclean.ForKeywords(text))

	var words []string
	for _, tok := range tokenSplitRe.Split(clean, -1) {
		if len(tok) <= 2 {
			continue
		}
		if _, stop := e.stopwords[tok]; stop {
			continue
		}
		if numericRe.MatchString(tok) {
			continue
		}
		words = append(words, tok)
	}
	if len(words) == 0 {
		return nil
	}

	freq := make(map[string]int)
	var order []string
	for _, w := range words {
		if freq[w] == 0 {
			order = append(order, w)
		}
		freq[w]++
	}

	totalWords := float64(len(words))
	score := func(w string) float64 {
		f := freq[w]
		tf := float64(f) / totalWords
		idf := 1.5
		if f > 3 {
			idf = 1.0 / math.Log(float64(f)+1)
		}
		return tf * idf * float64(f)
	}

	sort.SliceStable(order, func(i, j int) bool {
		return score(order[i]) > score(order[j])
	})

	if len(order) > max {
		order = order[:max]
	}
	return order
}

var (
	capitalizedRe  = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+){0,2}\b`)
	sentenceLeadRe = regexp.MustCompile(`^(The|This|That|Today|Tomorrow|Yesterday|Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday|January|February|March|April|May|June|July|August|September|October|November|December)`)
	quotedRe       = regexp.MustCompile(`"([^"]+)"`)
)

// maxEntities caps the entity list per text.
const maxEntities = 10

// Entities extracts likely named entities via two passes: runs of 1-3
// capitalized words (minus sentence starters, day and month names), then
// double-quoted phrases. Results are deduplicated in discovery order.
func Entities(text string) []string {
	if len(strings.TrimSpace(text)) < minTextLen {
		return nil
	}

	seen := make(map[string]struct{})
	var entities []string
	add := func(entity string) {
		if _, dup := seen[entity]; dup {
			return
		}
		seen[entity] = struct{}{}
		entities = append(entities, entity)
	}

	for _, match := range capitalizedRe.FindAllString(text, -1) {
		if len(match) > 2 && !sentenceLeadRe.MatchString(match) {
			add(match)
		}
	}

	for _, match := range quotedRe.FindAllStringSubmatch(text, -1) {
		quoted := match[1]
		if len(quoted) > 2 && len(quoted) < 50 {
			add(quoted)
		}
	}

	if len(entities) > maxEntities {
		entities = entities[:maxEntities]
	}
	return entities
}
