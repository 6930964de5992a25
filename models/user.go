package models

import (
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
	RoleHR       Role = "hr"
)

type User struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
	Username           string         `gorm:"uniqueIndex;not null;size:100" json:"username"`
	FullName           string         `gorm:"not null;size:200" json:"full_name"`
	PasswordHash       string         `gorm:"not null" json:"-"`
	Role               Role           `gorm:"not null;size:20" json:"role"`
	MustChangePassword bool           `gorm:"default:true" json:"must_change_password"`
	ManagerID          *uint          `gorm:"index" json:"manager_id"`
	Manager            *User          `gorm:"foreignKey:ManagerID" json:"manager,omitempty"`
}

func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}

func (u *User) IsManager() bool {
	return u.Role == RoleManager
}

func (u *User) IsHR() bool {
	return u.Role == RoleHR
}

func (u *User) IsEmployee() bool {
	return u.Role == RoleEmployee
}

func (u *User) CanResolveRequests() bool {
	return u.IsManager()
}

func (u *User) CanViewAllRequests() bool {
	return u.IsManager() || u.IsHR()
}

func (u *User) CanExport() bool {
	return u.IsManager() || u.IsHR()
}
