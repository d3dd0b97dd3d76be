package reframe

import (
	"regexp"
	"strings"

	"github.com/innerlog/sift/pkg/sift/distortion"
)

// Result bundles reframing guidance for a set of detected distortions:
// alternative interpretations, Socratic prompts for self-examination, and
// positive sentences lifted verbatim from the entry as anchors.
type Result struct {
	Distortions     []distortion.Distortion
	Reframes        []string
	Socratics       []string
	PositiveAnchors []string
}

// pair is the canned reframe/Socratic question for one distortion type.
type pair struct {
	reframe  string
	socratic string
}

var genericPair = pair{
	reframe:  "Try viewing this situation from a different angle or perspective.",
	socratic: "What alternative explanations exist for what happened?",
}

// pairFor maps each distortion type to its guidance. The five rule-detected
// types get tailored pairs; the remaining types share the generic pair until
// dedicated wording exists for them.
func pairFor(typ distortion.Type) pair {
	switch typ {
	case distortion.AllOrNothing:
		return pair{
			reframe:  "Consider: What shades of gray exist between these extremes? What partial successes or progress have you made?",
			socratic: "What evidence supports a more balanced view of this situation?",
		}
	case distortion.Overgeneralization:
		return pair{
			reframe:  "Reframe: This is one situation, not a pattern. What other times have things worked differently?",
			socratic: "Can you think of exceptions to this pattern? What makes this specific instance unique?",
		}
	case distortion.Magnification:
		return pair{
			reframe:  "Reality check: In a year, how much will this matter? What's the most likely outcome, not the worst?",
			socratic: "If a friend told you this, what would you say? What's a realistic assessment?",
		}
	case distortion.ShouldStatements:
		return pair{
			reframe:  `Replace "should" with "I prefer" or "it would be nice if." Remove pressure and guilt.`,
			socratic: `Who says it "should" be this way? What would be a more flexible expectation?`,
		}
	case distortion.EmotionalReasoning:
		return pair{
			reframe:  "Separate feelings from facts: Just because you feel something doesn't make it objectively true.",
			socratic: "What objective evidence exists beyond this feeling? What would an outside observer see?",
		}
	case distortion.MentalFilter,
		distortion.DisqualifyingPositive,
		distortion.JumpingToConclusions,
		distortion.Labeling,
		distortion.Personalization:
		return genericPair
	default:
		return genericPair
	}
}

const (
	// maxSuggestions caps reframes and Socratics independently.
	maxSuggestions = 3
	// maxAnchors caps positive anchor sentences.
	maxAnchors = 3
	// minAnchorSentenceLen filters fragments out of anchor scanning.
	minAnchorSentenceLen = 10
)

// Generate maps detected distortions to reframing suggestions and Socratic
// questions (deduplicated, up to three each) and extracts positive anchor
// sentences from the text. No distortions means no suggestions, regardless of
// the text.
func Generate(distortions []distortion.Distortion, text string) Result {
	var reframes, socratics []string
	for _, dist := range distortions {
		p := pairFor(dist.Type)
		reframes = append(reframes, p.reframe)
		socratics = append(socratics, p.socratic)
	}

	return Result{
		Distortions:     distortions,
		Reframes:        dedupeCap(reframes, maxSuggestions),
		Socratics:       dedupeCap(socratics, maxSuggestions),
		PositiveAnchors: positiveAnchors(text),
	}
}

var positivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(grateful|thankful|appreciate|accomplished|proud|success|achieved|happy|joy)\b`),
	regexp.MustCompile(`(?i)\b(better|improved|progress|growing|learned|realized)\b`),
	regexp.MustCompile(`(?i)\b(love|care|support|help|friend|family)\b`),
}

var sentenceSplitRe = regexp.MustCompile(`[.!?]+`)

// positiveAnchors collects up to three sentences carrying gratitude, growth,
// or relational language, verbatim, as evidence to hold on to.
func positiveAnchors(text string) []string {
	var anchors []string
	for _, sentence := range sentenceSplitRe.Split(text, -1) {
		if len(strings.TrimSpace(sentence)) <= minAnchorSentenceLen {
			continue
		}
		for _, pattern := range positivePatterns {
			if pattern.MatchString(sentence) {
				anchors = append(anchors, strings.TrimSpace(sentence))
				break
			}
		}
		if len(anchors) >= maxAnchors {
			break
		}
	}
	return anchors
}

// dedupeCap removes duplicates preserving first-seen order and caps the list.
func dedupeCap(items []string, limit int) []string {
	seen := make(map[string]struct{}, len(items))
	var out []string
	for _, item := range items {
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
		if len(out) >= limit {
			break
		}
	}
	return out
}
