package lexicon

import (
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Lexicon holds fixed positive/negative word lists and scores text by
// counting occurrences. Two matching strategies are exposed:
//
//   - CountTokens: split the text on non-word runs and membership-test each
//     token. A word counts once per token occurrence; punctuation-adjacent
//     words ("sad.", "sad,") still match because the splitter eats the
//     punctuation.
//   - CountMatches: scan the text with a word-boundary regex per lexicon
//     word, counting every match.
//
// The two strategies disagree on contractions and hyphenated words. Both are
// intentional and keyed to their call sites (interactive scoring vs the
// offline batch path); do not unify them.
type Lexicon struct {
	positive map[string]struct{}
	negative map[string]struct{}

	posPatterns []*regexp.Regexp
	negPatterns []*regexp.Regexp
}

// Counts is the outcome of a lexicon scan.
type Counts struct {
	Positive int
	Negative int
}

// Total returns the combined number of matched words.
func (c Counts) Total() int {
	return c.Positive + c.Negative
}

var defaultPositive = []string{
	"happy", "joy", "love", "excellent", "good", "great", "wonderful",
	"amazing", "fantastic", "awesome", "beautiful", "best", "better",
	"grateful", "thankful", "excited", "thrilled", "delighted", "pleased",
	"enjoy", "enjoyed", "fun", "nice", "lovely", "perfect", "success",
	"successful", "accomplish", "achieved", "proud", "confidence", "hopeful",
	"optimistic", "positive", "blessed", "calm", "peaceful", "relaxed",
	"comfortable", "satisfied", "smile", "laugh", "laughing",
}

var defaultNegative = []string{
	"sad", "angry", "hate", "terrible", "bad", "awful", "horrible", "worst",
	"disappointed", "depressed", "anxious", "worried", "stress", "stressed",
	"frustrated", "annoyed", "upset", "hurt", "pain", "painful", "difficult",
	"hard", "struggle", "struggling", "fail", "failed", "failure", "lost",
	"miss", "lonely", "alone", "cry", "crying", "tears", "unhappy",
	"miserable", "scared", "fear", "afraid", "nervous", "overwhelmed",
	"exhausted", "tired", "sick",
}

// batchNegative is the negative list used by the offline batch path. It grew
// separately from defaultNegative: it carries extra despair and anger words
// (ill, weak, regret, guilt, shame, worthless, helpless, hopeless, mad,
// furious) and drops a few the interactive list kept (painful, lost, miss,
// alone, tears). Batch re-scores of stored entries depend on this exact list;
// do not fold it into defaultNegative.
var batchNegative = []string{
	"sad", "angry", "hate", "terrible", "bad", "awful", "horrible", "worst",
	"disappointed", "depressed", "anxious", "worried", "stress", "stressed",
	"frustrated", "upset", "unhappy", "lonely", "afraid", "fear", "scared",
	"nervous", "pain", "hurt", "cry", "crying", "fail", "failed", "failure",
	"difficult", "hard", "struggle", "struggling", "overwhelming",
	"overwhelmed", "tired", "exhausted", "sick", "ill", "weak", "miserable",
	"regret", "guilt", "shame", "embarrassed", "rejected", "worthless",
	"helpless", "hopeless", "annoyed", "irritated", "mad", "furious",
}

var tokenSplitRe = regexp.MustCompile(`\W+`)

// New creates a lexicon with the built-in English word lists.
func New() *Lexicon {
	return FromWords(defaultPositive, defaultNegative)
}

// NewBatch creates the lexicon variant used for offline batch scoring: the
// same positive list, paired with the batch negative list.
func NewBatch() *Lexicon {
	return FromWords(defaultPositive, batchNegative)
}

// FromWords creates a lexicon from custom word lists. Words are lowercased.
func FromWords(positive, negative []string) *Lexicon {
	lex := &Lexicon{
		positive: make(map[string]struct{}, len(positive)),
		negative: make(map[string]struct{}, len(negative)),
	}
	for _, w := range positive {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		lex.positive[w] = struct{}{}
		lex.posPatterns = append(lex.posPatterns, wordPattern(w))
	}
	for _, w := range negative {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		lex.negative[w] = struct{}{}
		lex.negPatterns = append(lex.negPatterns, wordPattern(w))
	}
	return lex
}

// LoadFromYAML loads custom word lists from a YAML file.
//
// Expected format:
//
//	positive: [happy, joy, love]
//	negative: [sad, angry, hate]
func LoadFromYAML(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config struct {
		Positive []string `yaml:"positive"`
		Negative []string `yaml:"negative"`
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	return FromWords(config.Positive, config.Negative), nil
}

func wordPattern(word string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(word) + `\b`)
}

// CountTokens scores text by splitting on non-word runs and membership-testing
// each token against the word lists.
func (l *Lexicon) CountTokens(text string) Counts {
	var counts Counts
	for _, tok := range tokenSplitRe.Split(strings.ToLower(text), -1) {
		if _, ok := l.positive[tok]; ok {
			counts.Positive++
		}
		if _, ok := l.negative[tok]; ok {
			counts.Negative++
		}
	}
	return counts
}

// CountMatches scores text by scanning it with a word-boundary regex per
// lexicon word, counting every occurrence.
func (l *Lexicon) CountMatches(text string) Counts {
	lower := strings.ToLower(text)
	var counts Counts
	for _, re := range l.posPatterns {
		counts.Positive += len(re.FindAllStringIndex(lower, -1))
	}
	for _, re := range l.negPatterns {
		counts.Negative += len(re.FindAllStringIndex(lower, -1))
	}
	return counts
}

// Size reports how many positive and negative words the lexicon carries.
func (l *Lexicon) Size() (positive, negative int) {
	return len(l.positive), len(l.negative)
}
