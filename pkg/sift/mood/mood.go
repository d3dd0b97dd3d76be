package mood

import (
	"strings"

	"github.com/innerlog/sift/pkg/sift/sentiment"
)

// Mood is a closed category set, more nuanced than the positive/negative/
// neutral sentiment label.
type Mood string

const (
	Sad      Mood = "sad"
	Anxious  Mood = "anxious"
	Stressed Mood = "stressed"
	Excited  Mood = "excited"
	Calm     Mood = "calm"
	Angry    Mood = "angry"
	Happy    Mood = "happy"
	Neutral  Mood = "neutral"
)

// Keyword lists are matched as substrings, not whole words, so stems like
// "meditat" catch "meditate"/"meditating". Category order is the tie-break:
// on equal counts the earlier list wins.
var categories = []struct {
	mood     Mood
	keywords []string
}{
	{Sad, []string{
		"sad", "sadness", "depressed", "depression", "hopeless", "worthless",
		"lonely", "alone", "crying", "cry", "tears", "hurt", "pain",
		"miserable", "devastated", "heartbroken", "grief", "sorrow",
		"unhappy", "down", "low",
	}},
	{Anxious, []string{
		"anxious", "anxiety", "worried", "worry", "nervous", "panic",
		"scared", "fear", "afraid", "terrified", "uneasy", "tense",
		"restless", "overwhelmed",
	}},
	{Stressed, []string{
		"stressed", "stress", "overwhelmed", "pressure", "deadline", "busy",
		"exhausted", "tired", "drained", "burnt out", "burnout",
		"overworked", "swamped", "hectic", "chaotic",
	}},
	{Excited, []string{
		"excited", "excitement", "thrilled", "amazing", "awesome",
		"incredible", "fantastic", "wonderful", "great news", "can't wait",
		"looking forward", "pumped", "stoked", "enthusiastic",
	}},
	{Calm, []string{
		"calm", "peaceful", "relaxed", "serene", "tranquil", "content",
		"at peace", "centered", "balanced", "grounded", "meditat", "zen",
		"composed", "settled",
	}},
	{Angry, []string{
		"angry", "anger", "furious", "mad", "frustrated", "annoyed",
		"irritated", "rage", "outraged", "infuriated", "pissed", "upset",
		"livid", "enraged",
	}},
	{Happy, []string{
		"happy", "happiness", "joy", "joyful", "glad", "delighted",
		"pleased", "grateful", "thankful", "blessed", "cheerful", "content",
		"satisfied", "great day", "wonderful", "excellent", "good day",
		"productive",
	}},
}

// Detect classifies the mood of text given its interactive-scale sentiment
// score. A positive keyword mood (excited/calm/happy) is overridden to sad
// when the sentiment is strongly negative (< -0.5); this guards against
// sarcastic or mixed text that happens to contain a positive keyword.
func Detect(text string, score sentiment.Score) Mood {
	return detect(text,
		float64(score) < -0.5,
		float64(score) > 0.3,
		float64(score) < -0.3,
	)
}

// DetectBatch is the batch-scale variant of Detect, with thresholds on the
// -100..100 integer scale (< -50 override, +/-30 fallback). The two threshold
// sets are kept separate per scale rather than calibrated to one another.
func DetectBatch(text string, score sentiment.BatchScore) Mood {
	return detect(text,
		int(score) < -50,
		int(score) > 30,
		int(score) < -30,
	)
}

func detect(text string, strongNegative, fallbackHappy, fallbackSad bool) Mood {
	lower := strings.ToLower(text)

	top := Neutral
	topCount := 0
	for _, cat := range categories {
		count := 0
		for _, kw := range cat.keywords {
			if strings.Contains(lower, kw) {
				count++
			}
		}
		if count > topCount {
			top = cat.mood
			topCount = count
		}
	}

	if topCount >= 1 {
		if (top == Excited || top == Calm || top == Happy) && strongNegative {
			return Sad
		}
		return top
	}

	switch {
	case fallbackHappy:
		return Happy
	case fallbackSad:
		return Sad
	default:
		return Neutral
	}
}
