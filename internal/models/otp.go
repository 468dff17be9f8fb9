package models

import "time"

// OTP is the single live one-time code for an email address. The
// unique index on Email enforces at most one outstanding code per
// identity; issuing a new code replaces the row.
type OTP struct {
	ID        uint      `gorm:"primaryKey"`
	Email     string    `gorm:"uniqueIndex;size:255;not null"`
	CodeHash  string    `gorm:"size:255;not null"`
	Attempts  int       `gorm:"not null;default:0"`
	ExpiresAt time.Time `gorm:"index;not null"`
	CreatedAt time.Time
}
