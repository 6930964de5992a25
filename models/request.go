package models

import (
	"time"

	"gorm.io/gorm"
)

type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

type CompensationMode string

const (
	// CompensationStandard applies to employee-initiated requests: balance
	// changes by the stored hours, nothing more.
	CompensationStandard CompensationMode = "1:1"
	// CompensationForced applies to manager-forced overtime: the balance is
	// credited with hours multiplied by 1.5 at assignment time.
	CompensationForced CompensationMode = "1:1.5"
)

// ForcedMultiplier is applied to the balance when a manager forces overtime.
// The stored hours stay unmultiplied.
const ForcedMultiplier = 1.5

type OvertimeRequest struct {
	ID                 uint             `gorm:"primaryKey" json:"id"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
	DeletedAt          gorm.DeletedAt   `gorm:"index" json:"-"`
	UserID             uint             `gorm:"not null;index" json:"user_id"`
	User               *User            `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ManagerID          uint             `gorm:"not null;index" json:"manager_id"`
	Manager            *User            `gorm:"foreignKey:ManagerID" json:"manager,omitempty"`
	RequestDate        time.Time        `gorm:"not null;type:date;index" json:"request_date"`
	Hours              float64          `gorm:"not null" json:"hours"`
	CompensationMode   CompensationMode `gorm:"not null;size:10" json:"compensation_mode"`
	IsManagerInitiated bool             `gorm:"not null;default:false" json:"is_manager_initiated"`
	Status             RequestStatus    `gorm:"not null;size:20;index" json:"status"`
}

func (r *OvertimeRequest) IsPending() bool {
	return r.Status == StatusPending
}

// RequestFilter narrows request listings; zero values mean "no filter".
type RequestFilter struct {
	UserID    uint
	ManagerID uint
	Status    RequestStatus
	Month     int
	Year      int
}
