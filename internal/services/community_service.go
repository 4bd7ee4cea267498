package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/momentumafrica/momentum-api/internal/models"
	"github.com/momentumafrica/momentum-api/internal/types"
)

// ListCommunities returns all discussion spaces ordered by name, matching
// the hub's community picker.
func ListCommunities(db *gorm.DB) ([]models.Community, error) {
	var communities []models.Community
	if err := db.Order("name asc").Find(&communities).Error; err != nil {
		return nil, types.StoreUnavailable(err)
	}
	return communities, nil
}

// GetCommunity fetches one community by id.
func GetCommunity(db *gorm.DB, id string) (models.Community, error) {
	var community models.Community
	if err := db.Where("id = ?", id).First(&community).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Community{}, types.NotFound("community not found")
		}
		return models.Community{}, types.StoreUnavailable(err)
	}
	return community, nil
}
