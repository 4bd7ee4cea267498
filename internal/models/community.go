package models

import "time"

// Community is a discussion space inside the Initiative Hub. The
// MentorInstruction is the persona handed verbatim to the text-generation
// service when a member refines an idea in this community.
type Community struct {
	ID                string    `gorm:"type:char(36);primaryKey" json:"id"`
	Name              string    `gorm:"size:255;not null;index" json:"name"`
	Description       string    `gorm:"size:1024" json:"description"`
	LeaderName        string    `gorm:"size:255" json:"leaderName"`
	MentorInstruction string    `gorm:"type:text" json:"mentorInstruction"`
	Icon              string    `gorm:"size:64" json:"icon,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// TableName overrides the table name for Community
func (Community) TableName() string {
	return "communities"
}
