package models

import (
	"time"
)

// OvertimeBalance keeps the running overtime account of a single user.
// Positive hours are owed to the user, negative hours are owed by the user.
// Rows are created during provisioning together with the user; the request
// workflow only ever updates BalanceHours.
type OvertimeBalance struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	UserID       uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	User         *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	BalanceHours float64   `gorm:"not null;default:0" json:"balance_hours"`
}
