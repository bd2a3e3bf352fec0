package ai

import "strings"

// Crisis screening happens before any other processing and before any
// external call. Substring matching is deliberately blunt: false positives
// cost a gentle resource message, false negatives cost much more.
var crisisKeywords = []string{
	"kill myself", "end my life", "suicide", "want to die",
	"self-harm", "cutting myself", "overdose", "no reason to live",
}

const CrisisResponse = `I hear that you're going through something really painful right now. I want you to know that matters, and you matter.

While I'm here to help with NVC practice, what you're describing deserves support from someone trained in crisis care. Please consider reaching out:

988 Suicide & Crisis Lifeline: Call or text 988 (available 24/7)
Crisis Text Line: Text HOME to 741741

Would you like to continue our conversation, or would you prefer some space right now?`

func DetectCrisis(message string) bool {
	lower := strings.ToLower(message)
	for _, keyword := range crisisKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
