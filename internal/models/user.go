package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin    = "ADMIN"
	RoleHR       = "HR"
	RoleEmployee = "EMPLOYEE"
)

type User struct {
	ID           uuid.UUID   `gorm:"type:char(36);primaryKey" json:"id"`
	EmployeeCode string      `gorm:"uniqueIndex;size:20;not null" json:"employeeId"`
	Email        string      `gorm:"uniqueIndex;size:255;not null" json:"email"`
	FirstName    string      `gorm:"size:120;not null" json:"firstName"`
	LastName     string      `gorm:"size:120;not null" json:"lastName"`
	Role         string      `gorm:"size:20;not null;default:EMPLOYEE" json:"role"`
	Designation  string      `gorm:"size:120" json:"designation,omitempty"`
	DepartmentID *uuid.UUID  `gorm:"type:char(36);index" json:"departmentId,omitempty"`
	Department   *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Phone        string      `gorm:"size:50" json:"phone,omitempty"`
	Active       bool        `gorm:"not null;default:true" json:"isActive"`
	JoinedAt     time.Time   `json:"joiningDate"`
	LastLoginAt  *time.Time  `json:"lastLogin,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
