package models

import (
	"time"

	"gorm.io/datatypes"
)

// UserProgress is keyed by identity (user id or guest id). The row is
// created lazily on first read.
type UserProgress struct {
	UserID string `gorm:"primaryKey;size:64" json:"user_id"`

	CurrentStreak int `gorm:"default:0" json:"current_streak"`
	LongestStreak int `gorm:"default:0" json:"longest_streak"`
	TotalSessions int `gorm:"default:0" json:"total_sessions"`
	TotalCheckIns int `gorm:"default:0" json:"total_check_ins"`

	// Calendar date of the last check-in, YYYY-MM-DD.
	LastActivityDate string `gorm:"size:10" json:"last_activity_date,omitempty"`

	FeelingCounts datatypes.JSON `gorm:"default:'{}'" json:"feeling_counts"`
	NeedCounts    datatypes.JSON `gorm:"default:'{}'" json:"need_counts"`
	Insights      datatypes.JSON `gorm:"default:'[]'" json:"insights"`

	UpdatedAt time.Time `json:"updated_at"`
}
