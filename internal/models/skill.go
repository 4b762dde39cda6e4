package models

import "time"

// SkillCategories is the set of categories offered by the UI. The category
// column itself is an open string so imported data is never rejected.
var SkillCategories = []string{
	"design", "development", "marketing", "business", "languages",
	"music", "sports", "cooking", "photography", "writing", "other",
}

// Skill is a skill a user offers to teach.
type Skill struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Category  string    `gorm:"size:50;index" json:"category"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (Skill) TableName() string {
	return "skills"
}

// SkillWanted is a skill a user wants to learn.
type SkillWanted struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Category  string    `gorm:"size:50;index" json:"category"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (SkillWanted) TableName() string {
	return "skills_wanted"
}
