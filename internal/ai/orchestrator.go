package ai

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/cedarpath/practice-api/internal/config"
)

// Completer is the external model edge. Only the orchestrator talks to it.
type Completer interface {
	Complete(ctx context.Context, system string, turns []Turn) (string, error)
}

var (
	ErrNotConfigured  = errors.New("ai service not configured")
	ErrServiceFailure = errors.New("ai service error")
)

type Orchestrator struct {
	completer Completer
	log       *zap.SugaredLogger
}

// NewOrchestrator builds the chat orchestrator. A nil completer means no
// API key is configured: chat fails with ErrNotConfigured and summaries
// fall back to keyword extraction.
func NewOrchestrator(completer Completer, log *zap.SugaredLogger) *Orchestrator {
	return &Orchestrator{
		completer: completer,
		log:       log.Named("ai"),
	}
}

type ChatResult struct {
	Message        string      `json:"message"`
	Suggestions    Suggestions `json:"suggestions"`
	CrisisDetected bool        `json:"crisisDetected"`
}

// Chat runs one practice turn. Crisis screening short-circuits before the
// model is consulted.
func (o *Orchestrator) Chat(ctx context.Context, message string, cc ChatContext) (*ChatResult, error) {
	if DetectCrisis(message) {
		return &ChatResult{
			Message:        CrisisResponse,
			Suggestions:    Suggestions{},
			CrisisDetected: true,
		}, nil
	}

	if o.completer == nil {
		return nil, ErrNotConfigured
	}

	turns := append([]Turn{}, cc.History...)
	turns = append(turns, Turn{Role: "user", Content: message})
	if len(turns) > config.AIMaxHistory {
		turns = turns[len(turns)-config.AIMaxHistory:]
	}

	reply, err := o.completer.Complete(ctx, BuildSystemPrompt(cc), turns)
	if err != nil {
		// Upstream detail stays in the logs, not the response.
		o.log.Errorw("completion failed", "error", err)
		return nil, ErrServiceFailure
	}

	return &ChatResult{
		Message:     reply,
		Suggestions: ExtractSuggestions(reply),
	}, nil
}

// Summary is the structured OFNR extraction of a session transcript.
type Summary struct {
	Observation   *string  `json:"observation"`
	Feelings      []string `json:"feelings"`
	Needs         []string `json:"needs"`
	Request       *string  `json:"request"`
	KeyInsights   []string `json:"keyInsights"`
	PracticeNotes string   `json:"practiceNotes"`
}

// Summarize asks the model to extract OFNR components from the transcript,
// falling back to keyword extraction when the model is unavailable or its
// reply does not parse.
func (o *Orchestrator) Summarize(ctx context.Context, turns []Turn) *Summary {
	if len(turns) == 0 {
		return &Summary{
			Feelings:      []string{},
			Needs:         []string{},
			KeyInsights:   []string{},
			PracticeNotes: "Session in progress or no messages recorded.",
		}
	}

	if o.completer == nil {
		return keywordSummary(turns)
	}

	reply, err := o.completer.Complete(ctx, "", []Turn{{Role: "user", Content: summaryPrompt(turns)}})
	if err != nil {
		o.log.Warnw("summary completion failed, falling back to keywords", "error", err)
		return keywordSummary(turns)
	}

	jsonStr, err := extractJSON(reply)
	if err != nil {
		return keywordSummary(turns)
	}

	var summary Summary
	if err := json.Unmarshal([]byte(jsonStr), &summary); err != nil {
		return keywordSummary(turns)
	}
	return &summary
}

func keywordSummary(turns []Turn) *Summary {
	var all strings.Builder
	for _, t := range turns {
		all.WriteString(t.Content)
		all.WriteString(" ")
	}
	suggestions := ExtractSuggestions(all.String())

	feelings := suggestions.Feelings
	if feelings == nil {
		feelings = []string{}
	}
	needs := suggestions.Needs
	if needs == nil {
		needs = []string{}
	}

	return &Summary{
		Feelings:      feelings,
		Needs:         needs,
		KeyInsights:   []string{},
		PracticeNotes: "Summary generated from conversation keywords.",
	}
}

// extractJSON finds the first complete JSON object in a string.
func extractJSON(s string) (string, error) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return "", errors.New("no JSON object found in response")
	}
	return s[start : end+1], nil
}
