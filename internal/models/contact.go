package models

import "time"

type Contact struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name    string `gorm:"size:200;not null;index" json:"name"`
	Email   string `gorm:"size:100;not null;index" json:"email"`
	Phone   string `gorm:"size:30" json:"phone,omitempty"`
	Message string `gorm:"type:text;not null" json:"message"`

	Status string `gorm:"size:20;default:'new'" json:"status"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
