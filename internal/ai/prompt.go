package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Turn is one exchange in the conversation history.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Ref accepts the client's loose shapes for feelings, needs and scenarios:
// either a bare string or an object carrying id/label/title.
type Ref struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Title string `json:"title"`

	raw string
}

func (r *Ref) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		r.raw = s
		return nil
	}

	type plain Ref
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = Ref(p)
	return nil
}

// Display prefers label, then title, then id, then the raw string.
func (r Ref) Display() string {
	switch {
	case r.Label != "":
		return r.Label
	case r.Title != "":
		return r.Title
	case r.ID != "":
		return r.ID
	default:
		return r.raw
	}
}

func displayList(refs []Ref) string {
	parts := make([]string, 0, len(refs))
	for _, r := range refs {
		parts = append(parts, r.Display())
	}
	return strings.Join(parts, ", ")
}

const systemPrompt = `You are a compassionate NVC (Nonviolent Communication) facilitator helping someone practice the OFNR framework: Observation, Feeling, Need, Request.

YOUR ROLE:
- Guide users through identifying observations (facts without judgment)
- Help them connect to genuine feelings (not thoughts disguised as feelings)
- Assist in uncovering underlying universal human needs
- Support formulating clear, doable requests

COMMUNICATION STYLE:
- Warm, empathetic, non-judgmental
- Use reflective listening ("It sounds like...", "I'm hearing that...")
- Ask open-ended questions
- Validate emotions before moving forward
- Be patient and allow space for processing

KEY NVC PRINCIPLES:
1. OBSERVATIONS vs EVALUATIONS: Help distinguish "She arrived at 9:15" (observation) from "She's always late" (evaluation)
2. FEELINGS vs FAUX FEELINGS: Real feelings (sad, anxious, joyful) vs thoughts-as-feelings (abandoned, rejected, unappreciated)
3. NEEDS are universal: connection, autonomy, meaning, safety, etc. - not strategies
4. REQUESTS are specific, positive, doable - not demands

CONVERSATION FLOW:
1. Start by understanding their situation
2. Gently guide them to observations
3. Help identify feelings (suggest options if they're stuck)
4. Connect feelings to needs
5. Eventually explore requests (but don't rush)

SAFETY:
- If someone expresses self-harm, suicidal thoughts, or crisis content, acknowledge their pain empathetically and gently suggest professional resources
- You are NOT a therapist - remind users of this if appropriate
- For relationship abuse, prioritize safety over NVC process

RESPONSE FORMAT:
- Keep responses concise (2-4 sentences typically)
- One question or reflection at a time
- You may suggest specific feelings or needs when helpful
- Use the user's own words when reflecting back

Remember: The goal is not perfection but practice. Celebrate attempts and gently guide refinements.`

// ChatContext carries what the user selected in the UI plus prior turns.
type ChatContext struct {
	SelectedFeelings []Ref  `json:"selectedFeelings"`
	SelectedNeeds    []Ref  `json:"selectedNeeds"`
	History          []Turn `json:"history"`
}

// BuildSystemPrompt appends the selection context, when present, to the
// static persona instructions.
func BuildSystemPrompt(cc ChatContext) string {
	var parts []string
	if len(cc.SelectedFeelings) > 0 {
		parts = append(parts, "User has selected these feelings: "+displayList(cc.SelectedFeelings))
	}
	if len(cc.SelectedNeeds) > 0 {
		parts = append(parts, "User has identified these needs: "+displayList(cc.SelectedNeeds))
	}

	if len(parts) == 0 {
		return systemPrompt
	}
	return systemPrompt + "\n\nCONTEXT:\n" + strings.Join(parts, "\n")
}

// SessionContext seeds the opening greeting for a new practice session.
type SessionContext struct {
	Feelings []Ref
	Needs    []Ref
	Scenario *Ref
}

// Greeting builds the opening assistant message for a session type.
func Greeting(sessionType string, ctx SessionContext) string {
	switch sessionType {
	case "empathy":
		return "Let's practice giving empathy to someone else. Think of a person you'd like to understand better. What did they say or do that you're trying to make sense of?"
	case "prep":
		return "I'll help you prepare for an upcoming conversation. Who would you like to talk to, and what's the topic? Let's start by getting clear on what you're hoping to communicate."
	case "scenario":
		if ctx.Scenario != nil {
			return fmt.Sprintf("Let's work through this scenario: %q\n\nHow would you like to approach this situation?", ctx.Scenario.Display())
		}
		return "Tell me about a situation you'd like to practice handling with NVC. It could be something from the past, present, or a hypothetical scenario you're worried about."
	default: // self-empathy
		var b strings.Builder
		b.WriteString("Hello! I'm here to help you practice self-empathy using NVC. ")
		if len(ctx.Feelings) > 0 {
			fmt.Fprintf(&b, "I see you've identified feeling %s. ", displayList(ctx.Feelings))
		}
		if len(ctx.Needs) > 0 {
			fmt.Fprintf(&b, "And you're noticing needs for %s. ", displayList(ctx.Needs))
		}
		b.WriteString("What situation is bringing up these feelings for you? Take your time - I'm here to listen.")
		return b.String()
	}
}

func summaryPrompt(turns []Turn) string {
	var transcript strings.Builder
	for _, t := range turns {
		fmt.Fprintf(&transcript, "%s: %s\n", t.Role, t.Content)
	}

	return fmt.Sprintf(`Analyze this NVC practice conversation and extract the OFNR components.

CONVERSATION:
%s
Respond in this exact JSON format:
{
  "observation": "The specific situation or trigger (or null if not identified)",
  "feelings": ["list", "of", "feelings", "identified"],
  "needs": ["list", "of", "needs", "identified"],
  "request": "Any request formulated (or null if not yet)",
  "keyInsights": ["key insight 1", "key insight 2"],
  "practiceNotes": "Brief note on what went well and areas for continued practice"
}`, transcript.String())
}
