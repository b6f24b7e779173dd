package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Account is a registered user identity, credential-holding or federated.
// Credential material is excluded from every JSON rendering.
type Account struct {
	ID                  uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	Name                string     `json:"name" gorm:"size:255;not null"`
	Email               string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash        string     `json:"-" gorm:"size:255;not null"`
	Contact             string     `json:"contact,omitempty" gorm:"size:10"`
	DOB                 string     `json:"dob,omitempty" gorm:"column:dob;size:10"`
	Role                string     `json:"role" gorm:"size:16;not null"`
	Active              bool       `json:"isActive" gorm:"not null;index"`
	GoogleID            string     `json:"googleId,omitempty" gorm:"size:128"`
	ProfilePicture      string     `json:"profilePicture,omitempty" gorm:"size:1024"`
	ResetTokenHash      *string    `json:"-" gorm:"size:64;index"`
	ResetTokenExpiresAt *time.Time `json:"-"`
	LastLogin           *time.Time `json:"lastLogin,omitempty"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

// BeforeCreate sets the UUID and defaults before inserting the record.
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Role == "" {
		a.Role = RoleUser
	}
	return nil
}

// IsAdmin reports whether the account carries the admin role.
func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// NormalizeEmail canonicalises an email for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
