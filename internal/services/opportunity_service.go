package services

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/momentumafrica/momentum-api/internal/models"
	"github.com/momentumafrica/momentum-api/internal/score"
	"github.com/momentumafrica/momentum-api/internal/types"
)

// ListOpportunities returns the full catalog in its canonical order:
// threshold ascending, creation order breaking ties. The unlock evaluator
// relies on this order being stable across reads.
func ListOpportunities(db *gorm.DB) ([]models.Opportunity, error) {
	var items []models.Opportunity
	if err := db.Order("required_score asc, created_at asc").Find(&items).Error; err != nil {
		return nil, types.StoreUnavailable(err)
	}
	return items, nil
}

// EvaluateOpportunities reads the catalog and applies the unlock policy for
// a viewer. Anonymous viewers evaluate with score 0 and no privilege.
func EvaluateOpportunities(db *gorm.DB, userScore int64, isPrivileged bool, opts score.EvaluateOptions) ([]score.EvaluatedOpportunity, error) {
	items, err := ListOpportunities(db)
	if err != nil {
		return nil, err
	}
	return score.Evaluate(items, userScore, isPrivileged, opts), nil
}

// OpportunityInput is the admin upsert payload. RequiredScore accepts both
// JSON numbers and strings. An empty ID creates a new item.
type OpportunityInput struct {
	ID            string           `json:"id,omitempty"`
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	Sponsor       string           `json:"sponsor"`
	RequiredScore types.FlexUint64 `json:"requiredScore"`
	Category      string           `json:"category"`
	URL           string           `json:"url"`
}

func (in *OpportunityInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return &types.CustomError{
			Code:    fiber.StatusBadRequest,
			Message: "title is required",
			Type:    "validation",
		}
	}
	if !models.ValidCategory(in.Category) {
		return &types.CustomError{
			Code:    fiber.StatusBadRequest,
			Message: fmt.Sprintf("invalid category %q", in.Category),
			Type:    "validation",
		}
	}
	return nil
}

// UpsertOpportunities creates or updates catalog items and returns how many
// rows were written.
func UpsertOpportunities(db *gorm.DB, inputs []OpportunityInput) (int, error) {
	written := 0

	err := db.Transaction(func(tx *gorm.DB) error {
		for i := range inputs {
			in := &inputs[i]
			if err := in.validate(); err != nil {
				return err
			}

			item := models.Opportunity{
				ID:            in.ID,
				Title:         strings.TrimSpace(in.Title),
				Description:   in.Description,
				Sponsor:       in.Sponsor,
				RequiredScore: int64(in.RequiredScore.Uint64()),
				Category:      in.Category,
				URL:           in.URL,
			}
			if item.ID == "" {
				item.ID = uuid.NewString()
				if err := tx.Create(&item).Error; err != nil {
					return err
				}
			} else {
				result := tx.Model(&models.Opportunity{}).Where("id = ?", item.ID).Updates(map[string]interface{}{
					"title":          item.Title,
					"description":    item.Description,
					"sponsor":        item.Sponsor,
					"required_score": item.RequiredScore,
					"category":       item.Category,
					"url":            item.URL,
				})
				if result.Error != nil {
					return result.Error
				}
				if result.RowsAffected == 0 {
					return types.NotFound(fmt.Sprintf("opportunity %s not found", item.ID))
				}
			}
			written++
		}
		return nil
	})

	if err != nil {
		if ce, ok := err.(*types.CustomError); ok {
			return 0, ce
		}
		return 0, types.StoreUnavailable(err)
	}
	return written, nil
}

// DeleteOpportunity removes one catalog item.
func DeleteOpportunity(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Opportunity{})
	if result.Error != nil {
		return types.StoreUnavailable(result.Error)
	}
	if result.RowsAffected == 0 {
		return types.NotFound("opportunity not found")
	}
	return nil
}
