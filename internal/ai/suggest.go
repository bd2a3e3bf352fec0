package ai

import "strings"

const maxSuggestions = 3

// Fixed vocabularies scanned for in assistant replies. Order matters only
// in that the first three matches win.
var feelingVocabulary = []string{
	"frustrated", "angry", "sad", "anxious", "worried", "scared",
	"hurt", "disappointed", "overwhelmed", "lonely", "confused",
	"peaceful", "joyful", "grateful", "hopeful", "excited", "relieved",
}

var needVocabulary = []string{
	"connection", "understanding", "respect", "autonomy", "safety",
	"support", "appreciation", "consideration", "belonging", "rest",
	"honesty", "trust", "meaning", "competence", "ease",
}

type Suggestions struct {
	Feelings []string `json:"feelings,omitempty"`
	Needs    []string `json:"needs,omitempty"`
	FollowUp string   `json:"followUp,omitempty"`
}

// ExtractSuggestions scans text for up to three feeling and three need
// keywords.
func ExtractSuggestions(text string) Suggestions {
	lower := strings.ToLower(text)

	return Suggestions{
		Feelings: matchVocabulary(lower, feelingVocabulary),
		Needs:    matchVocabulary(lower, needVocabulary),
	}
}

func matchVocabulary(lower string, vocabulary []string) []string {
	var matched []string
	for _, word := range vocabulary {
		if strings.Contains(lower, word) {
			matched = append(matched, word)
			if len(matched) == maxSuggestions {
				break
			}
		}
	}
	return matched
}
