package models

import "time"

// Opportunity categories. "All" is a filter value only, never stored.
const (
	CategoryAll        = "All"
	CategoryInternship = "Internship"
	CategoryFunding    = "Funding"
	CategoryMentorship = "Mentorship"
	CategoryCommunity  = "Community"
)

// ValidCategory reports whether category is a storable opportunity category.
func ValidCategory(category string) bool {
	switch category {
	case CategoryInternship, CategoryFunding, CategoryMentorship, CategoryCommunity:
		return true
	}
	return false
}

// Opportunity is a gated catalog item: visible progress toward it is a pure
// function of the viewer's score against RequiredScore.
type Opportunity struct {
	ID            string    `gorm:"type:char(36);primaryKey" json:"id"`
	Title         string    `gorm:"size:255;not null" json:"title"`
	Description   string    `gorm:"size:1024" json:"description"`
	Sponsor       string    `gorm:"size:255" json:"sponsor"`
	RequiredScore int64     `gorm:"not null;default:0;index" json:"requiredScore"`
	Category      string    `gorm:"size:32;not null;index" json:"category"`
	URL           string    `gorm:"size:512" json:"url"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// TableName overrides the table name for Opportunity
func (Opportunity) TableName() string {
	return "opportunities"
}
