package models

import "time"

// Appointment rows carry the denormalized service and client snapshot from
// the booking form. IDs are generated strings ("apt_..."), not autoincrement.
type Appointment struct {
	ID string `gorm:"primaryKey;size:40" json:"id"`

	ServiceName     string `gorm:"size:100;not null" json:"service_name"`
	ServiceDuration int    `json:"service_duration"`
	ServiceType     string `gorm:"size:50" json:"service_type,omitempty"`

	Date string `gorm:"size:60;not null;index" json:"date"`
	Time string `gorm:"size:20;not null" json:"time"`

	ClientName  string `gorm:"size:200;not null" json:"client_name"`
	ClientEmail string `gorm:"size:100;not null;index" json:"client_email"`
	ClientPhone string `gorm:"size:30" json:"client_phone,omitempty"`
	ClientNotes string `gorm:"size:2000" json:"client_notes,omitempty"`

	Status string `gorm:"size:20;default:'pending';index" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

func ValidAppointmentStatus(s string) bool {
	switch AppointmentStatus(s) {
	case AppointmentPending, AppointmentConfirmed, AppointmentCancelled:
		return true
	}
	return false
}
