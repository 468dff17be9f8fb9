package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AttendancePresent = "PRESENT"
	AttendanceLate    = "LATE"
	AttendanceAbsent  = "ABSENT"
)

// Attendance holds one day's check-in/check-out state for one user.
// Date is normalized to local midnight; the composite unique index
// guarantees at most one row per (user, day).
type Attendance struct {
	ID        uuid.UUID  `gorm:"type:char(36);primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:char(36);not null;uniqueIndex:idx_attendance_user_date" json:"userId"`
	Date      time.Time  `gorm:"not null;uniqueIndex:idx_attendance_user_date" json:"date"`
	CheckIn   time.Time  `gorm:"not null" json:"checkInTime"`
	CheckOut  *time.Time `json:"checkOutTime,omitempty"`
	WorkHours *float64   `gorm:"type:decimal(6,4)" json:"workHours,omitempty"`
	Status    string     `gorm:"size:20;not null" json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func (a *Attendance) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
