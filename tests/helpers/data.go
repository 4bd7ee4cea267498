package helpers

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/momentumafrica/momentum-api/internal/models"
)

// CreateTestProfile creates a user profile with the given score
func CreateTestProfile(t *testing.T, db *gorm.DB, displayName, role string, score int64) models.UserProfile {
	t.Helper()
	profile := models.UserProfile{
		ID:          uuid.NewString(),
		Email:       displayName + "@example.test",
		DisplayName: displayName,
		Role:        role,
		Score:       score,
		AvatarURL:   "https://picsum.photos/seed/" + displayName + "/200/200",
	}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("Failed to create profile: %v", err)
	}
	return profile
}

// CreateTestCommunity creates a community
func CreateTestCommunity(t *testing.T, db *gorm.DB, name string) models.Community {
	t.Helper()
	community := models.Community{
		ID:                uuid.NewString(),
		Name:              name,
		Description:       "Test community",
		LeaderName:        "Test Leader",
		MentorInstruction: "You are a test mentor.",
	}
	if err := db.Create(&community).Error; err != nil {
		t.Fatalf("Failed to create community: %v", err)
	}
	return community
}

// CreateTestPost creates a post in a community
func CreateTestPost(t *testing.T, db *gorm.DB, communityID string, author models.UserProfile, idea string) models.Post {
	t.Helper()
	post := models.Post{
		ID:           uuid.NewString(),
		CommunityID:  communityID,
		AuthorID:     author.ID,
		AuthorName:   author.DisplayName,
		AuthorAvatar: author.AvatarURL,
		Title:        idea,
		Idea:         idea,
	}
	if err := db.Create(&post).Error; err != nil {
		t.Fatalf("Failed to create post: %v", err)
	}
	return post
}

// CreateTestOpportunity creates an opportunity with the given threshold
func CreateTestOpportunity(t *testing.T, db *gorm.DB, title, category string, requiredScore int64) models.Opportunity {
	t.Helper()
	opp := models.Opportunity{
		ID:            uuid.NewString(),
		Title:         title,
		Description:   "Test opportunity",
		Sponsor:       "Test Sponsor",
		RequiredScore: requiredScore,
		Category:      category,
	}
	if err := db.Create(&opp).Error; err != nil {
		t.Fatalf("Failed to create opportunity: %v", err)
	}
	return opp
}

// CreateTestActivationCode creates an unredeemed activation code
func CreateTestActivationCode(t *testing.T, db *gorm.DB, code string, bonus int64) models.ActivationCode {
	t.Helper()
	ac := models.ActivationCode{
		Code:  code,
		Bonus: bonus,
	}
	if err := db.Create(&ac).Error; err != nil {
		t.Fatalf("Failed to create activation code: %v", err)
	}
	return ac
}
