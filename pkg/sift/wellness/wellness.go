package wellness

import (
	"sort"
	"strings"
	"time"

	"github.com/innerlog/sift/pkg/sift/mood"
	"github.com/innerlog/sift/pkg/sift/sentiment"
)

// RecommendationType categorizes a wellness suggestion.
type RecommendationType string

const (
	Breathing  RecommendationType = "breathing"
	Meditation RecommendationType = "meditation"
	Activity   RecommendationType = "activity"
	Prompt     RecommendationType = "prompt"
	Resource   RecommendationType = "resource"
	Insight    RecommendationType = "insight"
)

// Priority orders recommendations for display.
type Priority int

const (
	High Priority = iota
	Medium
	Low
)

// Recommendation is one personalized wellness suggestion.
type Recommendation struct {
	ID          string
	Type        RecommendationType
	Title       string
	Description string
	Icon        string
	Duration    string
	URL         string
	Priority    Priority
}

// RecentEntry is the slice of a journal entry the recommender looks at.
type RecentEntry struct {
	Mood           mood.Mood
	Content        string
	SentimentScore sentiment.BatchScore
	CreatedAt      time.Time
}

// MoodPattern summarizes how often a mood occurred over a period.
type MoodPattern struct {
	Mood             mood.Mood
	Frequency        int
	AverageSentiment int
}

const (
	// mentionThreshold: a theme must show up in this many recent entries
	// before it drives a recommendation.
	mentionThreshold = 3
	// trendWindow is how many recent entries feed the sentiment trend.
	trendWindow = 7
	// patternThreshold: a mood must repeat this often to surface an insight.
	patternThreshold = 5
)

// GenerateRecommendations derives wellness suggestions from recent entries
// and mood patterns: theme mention counts (anxiety, stress, sadness), the
// recent sentiment trend on the batch scale, and the dominant mood. Output is
// sorted by priority.
func GenerateRecommendations(recent []RecentEntry, patterns []MoodPattern) []Recommendation {
	var recs []Recommendation

	var trendSum int
	window := len(recent)
	if window > trendWindow {
		window = trendWindow
	}
	for _, e := range recent[:window] {
		trendSum += int(e.SentimentScore)
	}
	negativeTrend := false
	positiveTrend := false
	if window > 0 {
		avg := float64(trendSum) / float64(window)
		negativeTrend = avg < -20
		positiveTrend = avg > 50
	}

	anxietyMentions := countEntries(recent, func(e RecentEntry) bool {
		lower := strings.ToLower(e.Content)
		return e.Mood == mood.Anxious ||
			strings.Contains(lower, "anxious") ||
			strings.Contains(lower, "anxiety") ||
			strings.Contains(lower, "worried")
	})
	stressMentions := countEntries(recent, func(e RecentEntry) bool {
		lower := strings.ToLower(e.Content)
		return strings.Contains(lower, "stress") ||
			strings.Contains(lower, "overwhelm") ||
			strings.Contains(lower, "pressure")
	})
	sadnessMentions := countEntries(recent, func(e RecentEntry) bool {
		lower := strings.ToLower(e.Content)
		return e.Mood == mood.Sad ||
			strings.Contains(lower, "sad") ||
			strings.Contains(lower, "depressed")
	})

	if anxietyMentions >= mentionThreshold {
		recs = append(recs,
			Recommendation{
				ID: "breathing-exercise-anxiety", Type: Breathing, Priority: High,
				Title:       "4-7-8 Breathing Technique",
				Description: "A proven breathing exercise to quickly calm anxiety. Breathe in for 4, hold for 7, exhale for 8.",
				Icon:        "🫁", Duration: "3 min",
			},
			Recommendation{
				ID: "grounding-5-4-3-2-1", Type: Activity, Priority: High,
				Title:       "5-4-3-2-1 Grounding Exercise",
				Description: "Ground yourself in the present moment by identifying 5 things you see, 4 you touch, 3 you hear, 2 you smell, and 1 you taste.",
				Icon:        "🌍", Duration: "5 min",
			})
	}

	if stressMentions >= mentionThreshold {
		recs = append(recs,
			Recommendation{
				ID: "progressive-muscle-relaxation", Type: Activity, Priority: High,
				Title:       "Progressive Muscle Relaxation",
				Description: "Systematically tense and relax muscle groups to release physical tension and mental stress.",
				Icon:        "💆", Duration: "10 min",
			},
			Recommendation{
				ID: "time-management-prompt", Type: Prompt, Priority: Medium,
				Title:       "Reflect on Time Management",
				Description: "Journal prompt: What three things are causing you the most stress? Which of these can you delegate, postpone, or eliminate?",
				Icon:        "⏰",
			})
	}

	if sadnessMentions >= mentionThreshold || negativeTrend {
		recs = append(recs,
			Recommendation{
				ID: "gratitude-practice", Type: Prompt, Priority: High,
				Title:       "Gratitude Journaling",
				Description: "Write down three things you're grateful for today, no matter how small. Research shows this can improve mood over time.",
				Icon:        "🙏", Duration: "5 min",
			},
			Recommendation{
				ID: "self-compassion-exercise", Type: Meditation, Priority: Medium,
				Title:       "Self-Compassion Meditation",
				Description: "A guided meditation to treat yourself with kindness during difficult times.",
				Icon:        "💝", Duration: "8 min",
			},
			Recommendation{
				ID: "reach-out-reminder", Type: Activity, Priority: High,
				Title:       "Connect with Someone",
				Description: "Consider reaching out to a friend, family member, or mental health professional. Connection is powerful.",
				Icon:        "🤝",
			})
	}

	if positiveTrend {
		recs = append(recs, Recommendation{
			ID: "celebrate-wins", Type: Prompt, Priority: Medium,
			Title:       "Celebrate Your Progress",
			Description: "You've been doing great! Reflect on what's been working well and how you can maintain this positive momentum.",
			Icon:        "🎉",
		})
	}

	// Always-relevant baseline suggestions.
	recs = append(recs,
		Recommendation{
			ID: "mindful-breathing", Type: Breathing, Priority: Medium,
			Title:       "Box Breathing",
			Description: "Simple 4-4-4-4 breathing pattern used by Navy SEALs to stay calm under pressure.",
			Icon:        "📦", Duration: "3 min",
		},
		Recommendation{
			ID: "daily-check-in", Type: Prompt, Priority: Low,
			Title:       "Daily Emotional Check-In",
			Description: "How are you really feeling today? Name the emotion, notice where you feel it in your body, and accept it without judgment.",
			Icon:        "💭", Duration: "3 min",
		},
		Recommendation{
			ID: "nature-walk", Type: Activity, Priority: Low,
			Title:       "Take a Nature Walk",
			Description: "Even 10 minutes in nature can significantly reduce stress and improve mood.",
			Icon:        "🌳", Duration: "10 min",
		})

	if top := dominantPattern(patterns); top != nil && top.Frequency >= patternThreshold {
		recs = append(recs, Recommendation{
			ID: "pattern-insight", Type: Insight, Priority: Medium,
			Title:       "Your Most Common Mood: " + string(top.Mood),
			Description: "You've felt " + string(top.Mood) + " repeatedly in recent entries. Understanding patterns is the first step to positive change.",
			Icon:        "📊",
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Priority < recs[j].Priority
	})
	return recs
}

func countEntries(entries []RecentEntry, match func(RecentEntry) bool) int {
	count := 0
	for _, e := range entries {
		if match(e) {
			count++
		}
	}
	return count
}

func dominantPattern(patterns []MoodPattern) *MoodPattern {
	var top *MoodPattern
	for i := range patterns {
		if top == nil || patterns[i].Frequency > top.Frequency {
			top = &patterns[i]
		}
	}
	return top
}
