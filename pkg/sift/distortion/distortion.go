package distortion

import (
	"context"
	"log"
	"regexp"
	"sort"
	"strings"
)

// Type identifies a CBT cognitive distortion. The set is closed: dispatch
// over it with a switch covering every constant rather than comparing raw
// strings.
type Type string

const (
	AllOrNothing          Type = "all-or-nothing"
	Overgeneralization    Type = "overgeneralization"
	MentalFilter          Type = "mental-filter"
	DisqualifyingPositive Type = "disqualifying-positive"
	JumpingToConclusions  Type = "jumping-to-conclusions"
	Magnification         Type = "magnification"
	EmotionalReasoning    Type = "emotional-reasoning"
	ShouldStatements      Type = "should-statements"
	Labeling              Type = "labeling"
	Personalization       Type = "personalization"
)

// Distortion is one detected thinking pattern with the sentence that
// triggered it.
type Distortion struct {
	Type        Type
	Label       string
	Confidence  float64
	Excerpt     string
	Explanation string
}

// Advisor is the optional remote capability consulted when the local rules
// are inconclusive. It returns the model's free-text naming of distortions;
// parsing stays local and defensive.
type Advisor interface {
	Available(ctx context.Context) bool
	SuggestDistortions(ctx context.Context, text string) (string, error)
}

const (
	// minTextLen gates detection; shorter text carries no usable signal.
	minTextLen = 10
	// minSentenceLen filters fragments out of the sentence split.
	minSentenceLen = 5
	// maxExcerptChars bounds the excerpt attached to each detection.
	maxExcerptChars = 100
	// maxAdvisorChars bounds the prefix sent to the remote advisor.
	maxAdvisorChars = 400
	// maxDistortions caps the final result.
	maxDistortions = 5
	// advisorThreshold: the advisor only runs when local rules found fewer
	// detections than this.
	advisorThreshold = 3
)

// family is one rule-based classifier: any pattern matching a sentence emits
// a detection with the family's fixed tuple.
type family struct {
	typ         Type
	label       string
	confidence  float64
	explanation string
	patterns    []*regexp.Regexp
	// requireWord must appear (lowercased substring) in the sentence for a
	// match to count.
	requireWord string
	// firstOnly limits the family to a single detection on the first
	// matching sentence.
	firstOnly bool
}

var families = []family{
	{
		typ:         AllOrNothing,
		label:       "All-or-Nothing Thinking",
		confidence:  0.7,
		explanation: "Viewing situations in black-and-white categories without middle ground.",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(always|never|every|all|nothing|no one|everyone)\b`),
			regexp.MustCompile(`(?i)\b(completely|totally|absolutely|entirely)\s+(failed|ruined|destroyed|perfect)`),
		},
	},
	{
		typ:         Overgeneralization,
		label:       "Overgeneralization",
		confidence:  0.65,
		explanation: "Drawing broad conclusions from a single event or limited evidence.",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(always happens?|never works?|every time|typical)\b`),
			regexp.MustCompile(`(?i)\b(again|once again)\b`),
		},
		requireWord: "never",
	},
	{
		typ:         ShouldStatements,
		label:       "Should Statements",
		confidence:  0.6,
		explanation: `Using "should" or "must" statements can create guilt and pressure.`,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(should|shouldn't|ought to|must|have to|need to|supposed to)\b`),
		},
		firstOnly: true,
	},
	{
		typ:         Magnification,
		label:       "Catastrophizing",
		confidence:  0.68,
		explanation: "Magnifying negatives and expecting the worst-case scenario.",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(disaster|catastrophe|terrible|awful|worst|horrible|ruined)\b`),
			regexp.MustCompile(`(?i)\b(can't stand|unbearable|intolerable)\b`),
		},
	},
	{
		typ:         EmotionalReasoning,
		label:       "Emotional Reasoning",
		confidence:  0.62,
		explanation: `Assuming that feelings reflect reality ("I feel it, so it must be true").`,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(feel|felt|feeling)\s+(like|that).+\b(therefore|so|must be)\b`),
			regexp.MustCompile(`(?i)because\s+i\s+feel`),
		},
	},
}

var sentenceSplitRe = regexp.MustCompile(`[.!?]+`)

// splitSentences breaks text on terminal punctuation, dropping fragments.
func splitSentences(text string, minLen int) []string {
	var sentences []string
	for _, s := range sentenceSplitRe.Split(text, -1) {
		if len(strings.TrimSpace(s)) > minLen {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// Detector finds cognitive distortions with rule-based regex families,
// optionally augmented by a remote advisor pass when the rules are
// inconclusive. Advisor failures are logged and swallowed.
type Detector struct {
	Advisor Advisor
	Logger  *log.Logger
}

// NewDetector creates a detector with an optional remote advisor.
func NewDetector(advisor Advisor) *Detector {
	return &Detector{Advisor: advisor}
}

// Detect returns up to five distortions found in text, deduplicated by type
// and sorted by descending confidence. Text under 10 characters yields nil.
func (d *Detector) Detect(ctx context.Context, text string) []Distortion {
	if len(strings.TrimSpace(text)) < minTextLen {
		return nil
	}

	sentences := splitSentences(text, minSentenceLen)
	var found []Distortion

	for _, fam := range families {
		emitted := false
		for _, sentence := range sentences {
			if fam.requireWord != "" && !strings.Contains(strings.ToLower(sentence), fam.requireWord) {
				continue
			}
			for _, pattern := range fam.patterns {
				if !pattern.MatchString(sentence) {
					continue
				}
				if !fam.firstOnly || !emitted {
					found = append(found, Distortion{
						Type:        fam.typ,
						Label:       fam.label,
						Confidence:  fam.confidence,
						Excerpt:     excerpt(strings.TrimSpace(sentence)),
						Explanation: fam.explanation,
					})
					emitted = true
				}
				break
			}
		}
	}

	if len(found) < advisorThreshold && d.Advisor != nil && d.Advisor.Available(ctx) {
		supplemental, err := d.consultAdvisor(ctx, text)
		if err != nil {
			d.logf("distortion: advisor pass failed: %v", err)
		} else {
			found = append(found, supplemental...)
		}
	}

	return dedupe(found)
}

// consultAdvisor sends a bounded prefix to the remote model and parses its
// free-text answer by substring matching against the closed family list.
// Unrecognized output simply contributes nothing.
func (d *Detector) consultAdvisor(ctx context.Context, text string) ([]Distortion, error) {
	prefix := truncate(text, maxAdvisorChars)

	response, err := d.Advisor.SuggestDistortions(ctx, prefix)
	if err != nil {
		return nil, err
	}
	answer := strings.ToLower(strings.TrimSpace(response))

	var supplemental []Distortion
	if strings.Contains(answer, "all-or-nothing") || strings.Contains(answer, "black") {
		supplemental = append(supplemental, Distortion{
			Type:        AllOrNothing,
			Label:       "All-or-Nothing Thinking",
			Confidence:  0.75,
			Excerpt:     excerpt(prefix),
			Explanation: "Viewing situations in extremes without middle ground.",
		})
	}
	if strings.Contains(answer, "overgeneralization") {
		supplemental = append(supplemental, Distortion{
			Type:        Overgeneralization,
			Label:       "Overgeneralization",
			Confidence:  0.73,
			Excerpt:     excerpt(prefix),
			Explanation: "Drawing broad conclusions from limited evidence.",
		})
	}
	if strings.Contains(answer, "catastroph") {
		supplemental = append(supplemental, Distortion{
			Type:        Magnification,
			Label:       "Catastrophizing",
			Confidence:  0.72,
			Excerpt:     excerpt(prefix),
			Explanation: "Expecting the worst-case scenario.",
		})
	}
	return supplemental, nil
}

// dedupe keeps one detection per type (a later entry replaces an earlier one
// of the same type), preserves first-insertion type order, then sorts by
// descending confidence and caps the result.
func dedupe(found []Distortion) []Distortion {
	byType := make(map[Type]Distortion, len(found))
	var order []Type
	for _, dist := range found {
		if _, seen := byType[dist.Type]; !seen {
			order = append(order, dist.Type)
		}
		byType[dist.Type] = dist
	}

	unique := make([]Distortion, 0, len(order))
	for _, typ := range order {
		unique = append(unique, byType[typ])
	}

	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].Confidence > unique[j].Confidence
	})
	if len(unique) > maxDistortions {
		unique = unique[:maxDistortions]
	}
	return unique
}

func (d *Detector) logf(format string, args ...any) {
	if d.Logger != nil {
		d.Logger.Printf(format, args...)
		return
	}
	log.Printf(format, args...)
}

func excerpt(s string) string {
	return truncate(s, maxExcerptChars)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
