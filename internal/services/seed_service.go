package services

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/momentumafrica/momentum-api/data"
	"github.com/momentumafrica/momentum-api/internal/logger"
	"github.com/momentumafrica/momentum-api/internal/models"
)

type seedCommunity struct {
	Name              string `json:"name"`
	Description       string `json:"description"`
	LeaderName        string `json:"leaderName"`
	MentorInstruction string `json:"mentorInstruction"`
}

type seedOpportunity struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Sponsor       string `json:"sponsor"`
	RequiredScore int64  `json:"requiredScore"`
	Category      string `json:"category"`
	URL           string `json:"url"`
}

// Seed fills the communities and opportunities tables from the embedded
// fixtures when they are empty. Tables that already hold rows are left alone,
// so it is safe to run on every boot.
func Seed(log *logger.Logger, db *gorm.DB) error {
	if err := seedCommunities(log, db); err != nil {
		return err
	}
	return seedOpportunities(log, db)
}

func seedCommunities(log *logger.Logger, db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Community{}).Count(&count).Error; err != nil {
		return fmt.Errorf("counting communities: %w", err)
	}
	if count > 0 {
		return nil
	}

	var fixtures []seedCommunity
	if err := json.Unmarshal(data.SeedCommunities, &fixtures); err != nil {
		return fmt.Errorf("parsing community fixtures: %w", err)
	}

	communities := make([]models.Community, 0, len(fixtures))
	for _, f := range fixtures {
		communities = append(communities, models.Community{
			ID:                uuid.NewString(),
			Name:              f.Name,
			Description:       f.Description,
			LeaderName:        f.LeaderName,
			MentorInstruction: f.MentorInstruction,
		})
	}
	if err := db.Create(&communities).Error; err != nil {
		return fmt.Errorf("seeding communities: %w", err)
	}
	log.Info("seeded communities", "count", len(communities))
	return nil
}

func seedOpportunities(log *logger.Logger, db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Opportunity{}).Count(&count).Error; err != nil {
		return fmt.Errorf("counting opportunities: %w", err)
	}
	if count > 0 {
		return nil
	}

	var fixtures []seedOpportunity
	if err := json.Unmarshal(data.SeedOpportunities, &fixtures); err != nil {
		return fmt.Errorf("parsing opportunity fixtures: %w", err)
	}

	opportunities := make([]models.Opportunity, 0, len(fixtures))
	for _, f := range fixtures {
		if !models.ValidCategory(f.Category) {
			return fmt.Errorf("opportunity fixture %q has invalid category %q", f.Title, f.Category)
		}
		opportunities = append(opportunities, models.Opportunity{
			ID:            uuid.NewString(),
			Title:         f.Title,
			Description:   f.Description,
			Sponsor:       f.Sponsor,
			RequiredScore: f.RequiredScore,
			Category:      f.Category,
			URL:           f.URL,
		})
	}
	if err := db.Create(&opportunities).Error; err != nil {
		return fmt.Errorf("seeding opportunities: %w", err)
	}
	log.Info("seeded opportunities", "count", len(opportunities))
	return nil
}
