package domain

import "time"

type StaffRole string

const (
	RoleAdmin      StaffRole = "admin"
	RoleManager    StaffRole = "manager"
	RoleTechnician StaffRole = "technician"
)

type Staff struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name" validate:"required"`
	Email        string     `json:"email" validate:"required,email" gorm:"uniqueIndex"`
	PasswordHash string     `json:"-"`
	Role         StaffRole  `json:"role"`
	Phone        string     `json:"phone,omitempty"`
	Active       bool       `json:"active"`

	FailedLoginAttempts int        `json:"-"`
	LockedUntil         *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Staff) TableName() string { return "staff_members" }
