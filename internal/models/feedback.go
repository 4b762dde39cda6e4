package models

import "time"

// Feedback is a rating a user leaves for the counterpart of a completed swap.
// The composite unique index keeps the one-review-per-direction rule safe
// under concurrent submissions.
type Feedback struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	FromUserID    uint      `gorm:"not null;uniqueIndex:idx_feedback_swap_from" json:"from_user_id"`
	ToUserID      uint      `gorm:"not null;index" json:"to_user_id"`
	SwapRequestID uint      `gorm:"not null;uniqueIndex:idx_feedback_swap_from" json:"swap_request_id"`
	Rating        int       `gorm:"not null" json:"rating"`
	Comment       string    `gorm:"type:text" json:"comment"`
	CreatedAt     time.Time `json:"created_at"`

	// Relationships
	FromUser User `gorm:"foreignKey:FromUserID" json:"from_user,omitempty"`
	ToUser   User `gorm:"foreignKey:ToUserID" json:"to_user,omitempty"`
}

// TableName specifies the table name for GORM
func (Feedback) TableName() string {
	return "feedback"
}
