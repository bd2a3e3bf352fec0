package models

import (
	"time"

	"gorm.io/datatypes"
)

// CheckIn is one per identity per calendar day. The uniqueness lives in the
// database, not the application: NULL identity columns stay out of each
// other's index, mirroring separate UNIQUE(user_id, date) and
// UNIQUE(guest_id, date) constraints.
type CheckIn struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID  *string `gorm:"size:64;uniqueIndex:idx_checkin_user_date" json:"user_id,omitempty"`
	GuestID *string `gorm:"size:64;uniqueIndex:idx_checkin_guest_date" json:"guest_id,omitempty"`

	// Calendar date, YYYY-MM-DD.
	Date string `gorm:"size:10;not null;index;uniqueIndex:idx_checkin_user_date;uniqueIndex:idx_checkin_guest_date" json:"date"`

	Feelings datatypes.JSON `gorm:"not null" json:"feelings"`
	Needs    datatypes.JSON `json:"needs,omitempty"`

	EnergyLevel *int   `json:"energy_level,omitempty"`
	Notes       string `gorm:"size:2000" json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
