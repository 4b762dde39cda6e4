// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a member of the skill-swap marketplace.
type User struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	FirstName           string    `gorm:"size:64;not null" json:"first_name"`
	LastName            string    `gorm:"size:64;not null" json:"last_name"`
	Email               string    `gorm:"size:120;unique;not null" json:"email"`
	PasswordHash        string    `gorm:"size:256;not null" json:"-"`
	Location            string    `gorm:"size:100" json:"location"`
	ProfilePhoto        string    `gorm:"size:200" json:"profile_photo"`
	Availability        string    `gorm:"size:200" json:"availability"`
	IsPublic            bool      `gorm:"default:true" json:"is_public"`
	IsAdmin             bool      `gorm:"default:false" json:"is_admin"`
	IsBanned            bool      `gorm:"default:false" json:"is_banned"`
	UnreadNotifications int       `gorm:"default:0" json:"unread_notifications"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`

	// Relationships
	SkillsOffered []Skill       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"skills_offered,omitempty"`
	SkillsWanted  []SkillWanted `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"skills_wanted,omitempty"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

// FullName returns the user's display name.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// UserSummary is the compact user representation embedded in swap payloads.
type UserSummary struct {
	ID           uint   `json:"id"`
	FullName     string `json:"full_name"`
	ProfilePhoto string `json:"profile_photo"`
	Availability string `json:"availability,omitempty"`
}

// Summary returns the compact representation of the user.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:           u.ID,
		FullName:     u.FullName(),
		ProfilePhoto: u.ProfilePhoto,
	}
}
