package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	LeavePending  = "PENDING"
	LeaveApproved = "APPROVED"
	LeaveRejected = "REJECTED"
)

type LeaveType struct {
	ID                 uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	Name               string    `gorm:"size:120;not null" json:"name"`
	Code               string    `gorm:"uniqueIndex;size:10;not null" json:"code"`
	Description        string    `gorm:"size:500" json:"description,omitempty"`
	DefaultAnnualQuota int       `gorm:"not null" json:"defaultAnnualQuota"`
	Paid               bool      `gorm:"not null;default:true" json:"isPaid"`
	Active             bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

func (t *LeaveType) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

type LeaveRequest struct {
	ID          uuid.UUID  `gorm:"type:char(36);primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:char(36);index;not null" json:"userId"`
	LeaveTypeID uuid.UUID  `gorm:"type:char(36);index;not null" json:"leaveTypeId"`
	LeaveType   *LeaveType `gorm:"foreignKey:LeaveTypeID" json:"leaveType,omitempty"`
	StartDate   time.Time  `gorm:"not null" json:"startDate"`
	EndDate     time.Time  `gorm:"not null" json:"endDate"`
	TotalDays   int        `gorm:"not null" json:"totalDays"`
	Reason      string     `gorm:"size:500;not null" json:"reason"`
	Status      string     `gorm:"size:20;index;not null" json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (r *LeaveRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
