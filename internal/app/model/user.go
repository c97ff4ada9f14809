package model

import (
	"time"

	"gorm.io/gorm"
)

// User is an operator account. Every wizard session and document generation
// runs under an authenticated operator.
type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`              // operator ID
	Email        string         `gorm:"uniqueIndex;not null" json:"email"` // login email
	PasswordHash string         `gorm:"not null" json:"-"`                 // bcrypt hash
	Name         string         `gorm:"not null" json:"name"`              // display name
	CreatedAt    time.Time      `json:"created_at"`                        // creation time
	UpdatedAt    time.Time      `json:"updated_at"`                        // last update time
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                    // soft delete time
}

func (User) TableName() string {
	return "users"
}
