package store

import (
	"gorm.io/datatypes"

	"github.com/cedarpath/practice-api/internal/models"
)

// SessionPatch is a partial update: nil fields leave the stored value
// untouched. Keeping the merge a pure function makes the null-coalescing
// semantics testable without a database.
type SessionPatch struct {
	Feelings        *datatypes.JSON
	Needs           *datatypes.JSON
	Messages        *datatypes.JSON
	Summary         *datatypes.JSON
	DurationSeconds *int
	Completed       *bool
}

func ApplySessionPatch(s models.PracticeSession, p SessionPatch) models.PracticeSession {
	if p.Feelings != nil {
		s.Feelings = *p.Feelings
	}
	if p.Needs != nil {
		s.Needs = *p.Needs
	}
	if p.Messages != nil {
		s.Messages = *p.Messages
	}
	if p.Summary != nil {
		s.Summary = *p.Summary
	}
	if p.DurationSeconds != nil {
		s.DurationSeconds = p.DurationSeconds
	}
	if p.Completed != nil {
		s.Completed = *p.Completed
	}
	return s
}
