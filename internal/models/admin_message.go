package models

import "time"

// AdminMessage is a platform-wide announcement authored by an administrator.
type AdminMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedBy uint      `gorm:"not null" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Author User `gorm:"foreignKey:CreatedBy" json:"author,omitempty"`
}

// TableName specifies the table name for GORM
func (AdminMessage) TableName() string {
	return "admin_messages"
}
