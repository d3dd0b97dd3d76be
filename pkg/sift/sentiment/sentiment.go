package sentiment

import (
	"context"
	"log"
	"math"
	"regexp"
	"strings"

	"github.com/innerlog/sift/pkg/sift/lexicon"
	"github.com/innerlog/sift/pkg/sift/textclean"
)

// Label is the coarse sentiment class of a text.
type Label string

const (
	Positive Label = "POSITIVE"
	Negative Label = "NEGATIVE"
	Neutral  Label = "NEUTRAL"
)

// Score is sentiment intensity on the interactive -1..1 scale. Sign indicates
// polarity.
type Score float64

// BatchScore is sentiment intensity on the offline batch -100..100 integer
// scale. The two scales are distinct types on purpose: callers must not mix
// them, and conversion goes through Batch.
type BatchScore int

// Batch converts an interactive score to the batch scale (x100, rounded,
// clamped). This is the only sanctioned conversion between the two scales and
// belongs at the persistence boundary.
func (s Score) Batch() BatchScore {
	v := int(math.Round(float64(s) * 100))
	if v > 100 {
		v = 100
	}
	if v < -100 {
		v = -100
	}
	return BatchScore(v)
}

// Result is the outcome of sentiment analysis. Confidence is 0..1, Normalized
// is the signed intensity; Label is always consistent with the sign and
// magnitude of Normalized.
type Result struct {
	Label      Label
	Confidence float64
	Normalized Score
}

var neutralResult = Result{Label: Neutral, Confidence: 0.5, Normalized: 0}

// Classifier is the optional remote classification capability. Availability
// is probed separately from classification so callers can skip the expensive
// call entirely when the model is down.
type Classifier interface {
	Available(ctx context.Context) bool
	Classify(ctx context.Context, text string) (Label, error)
}

// maxClassifyChars bounds the prefix sent to the remote classifier.
const maxClassifyChars = 500

// Analyzer scores journal text. A nil Classifier means lexicon-only
// operation; a failing classifier degrades to the lexicon path and never
// surfaces an error. The batch path carries its own word lists; when
// BatchLexicon is nil, AnalyzeBatch falls back to Lexicon before the
// built-in batch lists.
type Analyzer struct {
	Lexicon      *lexicon.Lexicon
	BatchLexicon *lexicon.Lexicon
	Classifier   Classifier
	Logger       *log.Logger
}

// NewAnalyzer creates an analyzer with the built-in lexicons and an optional
// remote classifier.
func NewAnalyzer(classifier Classifier) *Analyzer {
	return &Analyzer{
		Lexicon:      lexicon.New(),
		BatchLexicon: lexicon.NewBatch(),
		Classifier:   classifier,
	}
}

// Analyze scores text on the interactive scale. Degenerate input (under 3
// non-whitespace characters after markdown stripping) is neutral with 0.5
// confidence, not an error.
func (a *Analyzer) Analyze(ctx context.Context, text string) Result {
	if len(strings.TrimSpace(text)) < 3 {
		return neutralResult
	}

	clean := textclean.ForSentiment(text)
	if len(clean) < 3 {
		return neutralResult
	}

	if a.Classifier != nil && a.Classifier.Available(ctx) {
		label, err := a.Classifier.Classify(ctx, truncate(clean, maxClassifyChars))
		if err == nil {
			return a.fromLabel(clean, label)
		}
		a.logf("sentiment: remote classification failed, falling back to lexicon: %v", err)
	}

	return a.analyzeLexicon(clean)
}

// fromLabel builds a result from a remote label, deriving confidence from the
// lexicon signal on the same text: a strong lexicon magnitude backs the
// remote label with 0.8, otherwise 0.6.
func (a *Analyzer) fromLabel(clean string, label Label) Result {
	lex := a.analyzeLexicon(clean)

	confidence := 0.6
	if math.Abs(float64(lex.Normalized)) > 0.3 {
		confidence = 0.8
	}

	var normalized Score
	switch label {
	case Positive:
		normalized = Score(confidence)
	case Negative:
		normalized = Score(-confidence)
	case Neutral:
		normalized = 0
	}

	return Result{Label: label, Confidence: confidence, Normalized: normalized}
}

// analyzeLexicon is the deterministic fallback path: ratio-based scoring over
// the positive/negative word counts.
func (a *Analyzer) analyzeLexicon(text string) Result {
	counts := a.lexicon().CountTokens(text)
	total := counts.Total()
	if total == 0 {
		return neutralResult
	}

	positiveRatio := float64(counts.Positive) / float64(total)
	negativeRatio := float64(counts.Negative) / float64(total)

	var label Label
	var normalized float64

	switch {
	case positiveRatio > 0.6:
		label = Positive
		normalized = math.Min(positiveRatio, 0.95)
	case negativeRatio > 0.6:
		label = Negative
		normalized = -math.Min(negativeRatio, 0.95)
	default:
		label = Neutral
		normalized = positiveRatio - negativeRatio
	}

	return Result{
		Label:      label,
		Confidence: math.Max(0.5, math.Abs(normalized)),
		Normalized: Score(normalized),
	}
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// AnalyzeBatch scores text on the batch -100..100 scale. This is the offline
// variant used when re-scoring stored entries in bulk: word-boundary match
// counting over the raw text, percentage scoring, x20 amplification, clamped.
// It never calls the remote classifier.
func (a *Analyzer) AnalyzeBatch(text string) (BatchScore, Label) {
	if len(strings.TrimSpace(text)) < 3 {
		return 0, Neutral
	}

	lower := strings.ToLower(text)
	counts := a.batchLexicon().CountMatches(lower)

	totalWords := len(whitespaceRe.Split(lower, -1))
	if totalWords < 1 {
		totalWords = 1
	}

	raw := float64(counts.Positive-counts.Negative) / float64(totalWords) * 100
	score := int(math.Round(raw * 20))
	if score > 100 {
		score = 100
	}
	if score < -100 {
		score = -100
	}

	label := Neutral
	if score > 20 {
		label = Positive
	} else if score < -20 {
		label = Negative
	}

	return BatchScore(score), label
}

func (a *Analyzer) lexicon() *lexicon.Lexicon {
	if a.Lexicon != nil {
		return a.Lexicon
	}
	return lexicon.New()
}

// batchLexicon prefers the dedicated batch lists, then a custom interactive
// lexicon, then the built-in batch lists.
func (a *Analyzer) batchLexicon() *lexicon.Lexicon {
	if a.BatchLexicon != nil {
		return a.BatchLexicon
	}
	if a.Lexicon != nil {
		return a.Lexicon
	}
	return lexicon.NewBatch()
}

func (a *Analyzer) logf(format string, args ...any) {
	if a.Logger != nil {
		a.Logger.Printf(format, args...)
		return
	}
	log.Printf(format, args...)
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
