package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/momentumafrica/momentum-api/internal/models"
	"github.com/momentumafrica/momentum-api/internal/score"
	"github.com/momentumafrica/momentum-api/internal/types"
)

// SignupInput completes account creation after the identity provider has
// authenticated the user. ActivationCode is optional.
type SignupInput struct {
	DisplayName    string `json:"displayName"`
	Role           string `json:"role"`
	ActivationCode string `json:"activationCode,omitempty"`
}

// CompleteSignup creates the platform profile for a freshly authenticated
// user. The score is bootstrapped with the signup bonus, plus the stored
// bonus of a valid activation code; code redemption and profile creation
// are one transaction so a code cannot be spent twice.
func CompleteSignup(db *gorm.DB, userID, email string, in SignupInput) (models.UserProfile, error) {
	displayName := strings.TrimSpace(in.DisplayName)
	if displayName == "" {
		return models.UserProfile{}, &types.CustomError{
			Code:    fiber.StatusBadRequest,
			Message: "displayName is required",
			Type:    "validation",
		}
	}
	role := in.Role
	if role == "" {
		role = models.RoleStudent
	}
	if !models.ValidRole(role) {
		return models.UserProfile{}, &types.CustomError{
			Code:    fiber.StatusBadRequest,
			Message: fmt.Sprintf("invalid role %q", role),
			Type:    "validation",
		}
	}

	conflict := &types.CustomError{
		Code:    fiber.StatusConflict,
		Message: "profile already exists",
		Type:    "conflict",
	}

	var profile models.UserProfile

	err := db.Transaction(func(tx *gorm.DB) error {
		var existing models.UserProfile
		err := tx.Where("id = ?", userID).First(&existing).Error
		if err == nil {
			return conflict
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		bootstrap := score.Points(score.ReasonSignupBonus)

		if code := strings.TrimSpace(in.ActivationCode); code != "" {
			var ac models.ActivationCode
			err := lockForUpdate(tx).
				Where("code = ?", code).
				First(&ac).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				return &types.CustomError{
					Code:    fiber.StatusBadRequest,
					Message: "invalid activation code",
					Type:    "validation",
				}
			case err != nil:
				return err
			case ac.Redeemed():
				return &types.CustomError{
					Code:    fiber.StatusBadRequest,
					Message: "activation code already redeemed",
					Type:    "validation",
				}
			}

			now := time.Now().UTC()
			if err := tx.Model(&ac).Updates(map[string]interface{}{
				"redeemed_by": userID,
				"redeemed_at": now,
			}).Error; err != nil {
				return err
			}
			bootstrap += ac.Bonus
		}

		profile = models.UserProfile{
			ID:          userID,
			Email:       email,
			DisplayName: displayName,
			Role:        role,
			Score:       bootstrap,
			AvatarURL:   fmt.Sprintf("https://picsum.photos/seed/%s/200/200", userID),
		}
		// Two racing signups both pass the existence check; the loser's
		// unique-key violation is the same conflict.
		if err := tx.Create(&profile).Error; err != nil {
			if isDuplicateKey(err) {
				return conflict
			}
			return err
		}
		return nil
	})

	if err != nil {
		var ce *types.CustomError
		if errors.As(err, &ce) {
			return models.UserProfile{}, ce
		}
		return models.UserProfile{}, types.StoreUnavailable(err)
	}

	return profile, nil
}

// isDuplicateKey recognizes a unique-constraint violation across the
// supported dialects, whether or not the driver translates it.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || // sqlite
		strings.Contains(msg, "Duplicate entry") || // mysql, mariadb
		strings.Contains(msg, "duplicate key") // postgres, sqlserver
}

// GetProfile fetches a user's profile by id.
func GetProfile(db *gorm.DB, userID string) (models.UserProfile, error) {
	var profile models.UserProfile
	if err := db.Where("id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.UserProfile{}, types.NotFound("user profile not found")
		}
		return models.UserProfile{}, types.StoreUnavailable(err)
	}
	return profile, nil
}

// ProfileUpdate carries the editable profile fields; nil pointers leave the
// stored value untouched.
type ProfileUpdate struct {
	DisplayName *string           `json:"displayName,omitempty"`
	ResumeURL   *string           `json:"resumeUrl,omitempty"`
	AvatarURL   *string           `json:"avatarUrl,omitempty"`
	Socials     map[string]string `json:"socials,omitempty"`
}

// UpdateProfile applies a partial profile edit and returns the new record.
// Score and role are deliberately not editable here.
func UpdateProfile(db *gorm.DB, userID string, upd ProfileUpdate) (models.UserProfile, error) {
	updates := make(map[string]interface{})
	if upd.DisplayName != nil {
		name := strings.TrimSpace(*upd.DisplayName)
		if name == "" {
			return models.UserProfile{}, &types.CustomError{
				Code:    fiber.StatusBadRequest,
				Message: "displayName cannot be empty",
				Type:    "validation",
			}
		}
		updates["display_name"] = name
	}
	if upd.ResumeURL != nil {
		updates["resume_url"] = *upd.ResumeURL
	}
	if upd.AvatarURL != nil {
		updates["avatar_url"] = *upd.AvatarURL
	}
	if upd.Socials != nil {
		raw, err := json.Marshal(upd.Socials)
		if err != nil {
			return models.UserProfile{}, err
		}
		socials := models.JSON{}
		if err := socials.Scan(raw); err != nil {
			return models.UserProfile{}, err
		}
		updates["socials"] = socials
	}

	if len(updates) > 0 {
		result := db.Model(&models.UserProfile{}).Where("id = ?", userID).Updates(updates)
		if result.Error != nil {
			return models.UserProfile{}, types.StoreUnavailable(result.Error)
		}
		if result.RowsAffected == 0 {
			return models.UserProfile{}, types.NotFound("user profile not found")
		}
	}

	return GetProfile(db, userID)
}

// Leaderboard returns the top users by score, descending.
func Leaderboard(db *gorm.DB, limit int) ([]models.UserProfile, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	var users []models.UserProfile
	if err := db.Order("score desc").Limit(limit).Find(&users).Error; err != nil {
		return nil, types.StoreUnavailable(err)
	}
	return users, nil
}

// ActivationCodeInput is an admin-supplied voucher definition. A zero bonus
// falls back to the standard activation bonus.
type ActivationCodeInput struct {
	Code  string           `json:"code"`
	Bonus types.FlexUint64 `json:"bonus,omitempty"`
}

// CreateActivationCodes stores new single-use codes.
func CreateActivationCodes(db *gorm.DB, inputs []ActivationCodeInput) (int, error) {
	codes := make([]models.ActivationCode, 0, len(inputs))
	for _, in := range inputs {
		code := strings.TrimSpace(in.Code)
		if code == "" {
			return 0, &types.CustomError{
				Code:    fiber.StatusBadRequest,
				Message: "code is required",
				Type:    "validation",
			}
		}
		bonus := int64(in.Bonus.Uint64())
		if bonus == 0 {
			bonus = score.Points(score.ReasonActivationCode)
		}
		codes = append(codes, models.ActivationCode{Code: code, Bonus: bonus})
	}

	if len(codes) == 0 {
		return 0, nil
	}
	if err := db.Create(&codes).Error; err != nil {
		return 0, types.StoreUnavailable(err)
	}
	return len(codes), nil
}
