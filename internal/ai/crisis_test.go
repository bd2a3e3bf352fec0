package ai

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetectCrisis(t *testing.T) {
	cases := []struct {
		name    string
		message string
		want    bool
	}{
		{"plain keyword", "I want to kill myself", true},
		{"uppercase", "SOMETIMES I THINK ABOUT SUICIDE", true},
		{"embedded in sentence", "lately there's no reason to live anymore", true},
		{"self-harm hyphenated", "I've been thinking about self-harm", true},
		{"ordinary frustration", "I'm so frustrated with my coworker", false},
		{"empty", "", false},
		{"near-miss wording", "this deadline is killing me", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, DetectCrisis(tc.message))
		})
	}
}
