package wellness

import "math/rand"

// BreathingExercise is a guided breathing technique from the built-in catalog.
type BreathingExercise struct {
	ID          string
	Name        string
	Description string
	Steps       []string
	Duration    string
	Benefits    []string
}

// BreathingExercises is the built-in catalog of guided techniques.
var BreathingExercises = []BreathingExercise{
	{
		ID:          "4-7-8-breathing",
		Name:        "4-7-8 Breathing",
		Description: "Promotes relaxation and helps with anxiety",
		Steps: []string{
			"Exhale completely through your mouth",
			"Inhale through your nose for 4 seconds",
			"Hold your breath for 7 seconds",
			"Exhale through your mouth for 8 seconds",
			"Repeat 4 times",
		},
		Duration: "3-5 min",
		Benefits: []string{"Reduces anxiety", "Helps with sleep", "Lowers blood pressure"},
	},
	{
		ID:          "box-breathing",
		Name:        "Box Breathing",
		Description: "Used by Navy SEALs to stay calm",
		Steps: []string{
			"Inhale for 4 seconds",
			"Hold for 4 seconds",
			"Exhale for 4 seconds",
			"Hold for 4 seconds",
			"Repeat 4 times",
		},
		Duration: "3-5 min",
		Benefits: []string{"Improves focus", "Reduces stress", "Enhances performance"},
	},
	{
		ID:          "alternate-nostril",
		Name:        "Alternate Nostril Breathing",
		Description: "Balances the nervous system",
		Steps: []string{
			"Close right nostril with thumb",
			"Inhale through left nostril",
			"Close left nostril, release right",
			"Exhale through right nostril",
			"Inhale through right, then switch",
			"Repeat for 5 minutes",
		},
		Duration: "5-10 min",
		Benefits: []string{"Balances emotions", "Improves focus", "Reduces stress"},
	},
}

// PromptCategory groups journaling prompts by theme.
type PromptCategory struct {
	Category string
	Prompts  []string
}

// JournalingPrompts is the built-in prompt catalog.
var JournalingPrompts = []PromptCategory{
	{
		Category: "gratitude",
		Prompts: []string{
			"What are three things you're grateful for today?",
			"Who in your life are you most grateful for and why?",
			"What small pleasure made you smile today?",
			"What's something you take for granted that you're thankful for?",
		},
	},
	{
		Category: "reflection",
		Prompts: []string{
			"What did you learn about yourself today?",
			"What challenged you today and how did you respond?",
			"If today was a chapter in your life story, what would it be titled?",
			"What would you do differently if you could replay today?",
		},
	},
	{
		Category: "growth",
		Prompts: []string{
			"What's one small step you can take toward your goals tomorrow?",
			"What skill would you like to develop and why?",
			"How have you grown in the past month?",
			"What fear are you ready to face?",
		},
	},
	{
		Category: "self-compassion",
		Prompts: []string{
			"What would you say to a friend feeling the way you do?",
			"How can you be kinder to yourself today?",
			"What are three things you like about yourself?",
			"What does self-care look like for you right now?",
		},
	},
	{
		Category: "emotional",
		Prompts: []string{
			"What emotion are you feeling right now? Where do you feel it in your body?",
			"What made you feel most alive today?",
			"What's weighing on your mind?",
			"If your feelings could speak, what would they say?",
		},
	},
}

// RandomPrompt picks a prompt from the named category, or from the whole
// catalog when category is empty or unknown.
func RandomPrompt(category string) string {
	if category != "" {
		for _, pc := range JournalingPrompts {
			if pc.Category == category {
				return pc.Prompts[rand.Intn(len(pc.Prompts))]
			}
		}
	}

	var all []string
	for _, pc := range JournalingPrompts {
		all = append(all, pc.Prompts...)
	}
	return all[rand.Intn(len(all))]
}
