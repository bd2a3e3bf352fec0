package models

import (
	"time"

	"gorm.io/datatypes"
)

// PracticeSession belongs to exactly one identity: a signed-in user or an
// unregistered guest token. Feelings, needs and messages are stored as raw
// JSON arrays so the client shape round-trips untouched.
type PracticeSession struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	UserID  *string `gorm:"size:64;index" json:"user_id,omitempty"`
	GuestID *string `gorm:"size:64;index" json:"guest_id,omitempty"`

	Type       string `gorm:"size:20;not null;default:'self-empathy'" json:"type"`
	ScenarioID string `gorm:"size:64" json:"scenario_id,omitempty"`

	Feelings datatypes.JSON `gorm:"default:'[]'" json:"feelings"`
	Needs    datatypes.JSON `gorm:"default:'[]'" json:"needs"`
	Messages datatypes.JSON `gorm:"default:'[]'" json:"messages"`

	Summary         datatypes.JSON `json:"summary,omitempty"`
	DurationSeconds *int           `json:"duration_seconds,omitempty"`

	Completed bool `gorm:"default:false" json:"completed"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SessionType string

const (
	SessionSelfEmpathy SessionType = "self-empathy"
	SessionEmpathy     SessionType = "empathy"
	SessionPrep        SessionType = "prep"
	SessionScenario    SessionType = "scenario"
)

func ValidSessionType(s string) bool {
	switch SessionType(s) {
	case SessionSelfEmpathy, SessionEmpathy, SessionPrep, SessionScenario:
		return true
	}
	return false
}
