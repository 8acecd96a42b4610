package model

import (
	"time"

	"github.com/google/uuid"
)

// Profile holds the identity attributes kept by the auth collaborator.
type Profile struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	FullName  string    `gorm:"type:varchar(255)" json:"full_name"`
	Email     string    `gorm:"type:varchar(255)" json:"email"`
	Phone     string    `gorm:"type:varchar(32)" json:"phone"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

type UserRoleRow struct {
	UserID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Role   UserRole  `gorm:"type:varchar(32);primaryKey"`
}

func (UserRoleRow) TableName() string {
	return "user_roles"
}

// WorkerProfile is the brief shown in assignment dropdowns.
type WorkerProfile struct {
	UserID   uuid.UUID `json:"user_id"`
	FullName string    `json:"full_name"`
	Email    string    `json:"email"`
	Phone    string    `json:"phone,omitempty"`
}
