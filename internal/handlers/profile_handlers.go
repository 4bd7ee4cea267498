package handlers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/momentumafrica/momentum-api/internal/logger"
	"github.com/momentumafrica/momentum-api/internal/models"
	"github.com/momentumafrica/momentum-api/internal/services"
	"github.com/momentumafrica/momentum-api/internal/types"
)

// ProfileHandler handles profile and leaderboard routes
type ProfileHandler struct {
	DB   *gorm.DB
	Log  *logger.Logger
	Blob *services.BlobService
}

// profileView is a profile plus the derived score standing.
type profileView struct {
	models.UserProfile
	Tier     string  `json:"tier"`
	Progress float64 `json:"tierProgress"`
}

func viewOf(p models.UserProfile) profileView {
	standing := services.StandingFor(p.Score)
	return profileView{UserProfile: p, Tier: standing.Tier.Name, Progress: standing.Progress}
}

// CompleteSignup handles POST /api/signup/complete
// @Summary Complete signup
// @Description Creates the platform profile for a fresh identity and applies signup bonuses
// @Tags Profile
// @Accept json
// @Produce json
// @Param body body services.SignupInput true "Signup details"
// @Success 201 {object} models.UserProfile
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /signup/complete [post]
func (h *ProfileHandler) CompleteSignup(c *fiber.Ctx) error {
	s, err := requireSession(c)
	if err != nil {
		return err
	}

	var in services.SignupInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	profile, err := services.CompleteSignup(h.DB, s.UserID, s.Email, in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(viewOf(profile))
}

// GetProfile handles GET /api/profile
// @Summary Get own profile
// @Description Returns the caller's profile with tier standing
// @Tags Profile
// @Produce json
// @Success 200 {object} models.UserProfile
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /profile [get]
func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	s, err := requireSession(c)
	if err != nil {
		return err
	}

	profile, err := services.GetProfile(h.DB, s.UserID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(viewOf(profile))
}

// UpdateProfile handles PUT /api/profile
// @Summary Update own profile
// @Description Partial update of display name, links and socials
// @Tags Profile
// @Accept json
// @Produce json
// @Param body body services.ProfileUpdate true "Fields to update"
// @Success 200 {object} models.UserProfile
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /profile [put]
func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	s, err := requireSession(c)
	if err != nil {
		return err
	}

	var upd services.ProfileUpdate
	if err := c.BodyParser(&upd); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	profile, err := services.UpdateProfile(h.DB, s.UserID, upd)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(viewOf(profile))
}

// UploadAvatar handles POST /api/profile/avatar
// @Summary Upload avatar
// @Description Stores the avatar image and updates the profile URL
// @Tags Profile
// @Accept multipart/form-data
// @Produce json
// @Param avatar formData file true "Avatar image"
// @Success 200 {object} models.UserProfile
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 502 {object} utils.ErrorResponseStruct
// @Router /profile/avatar [post]
func (h *ProfileHandler) UploadAvatar(c *fiber.Ctx) error {
	s, err := requireSession(c)
	if err != nil {
		return err
	}
	if h.Blob == nil {
		return &types.CustomError{
			Code:    fiber.StatusNotImplemented,
			Message: "Avatar storage is not configured",
			Type:    types.TypeRemoteServiceFailed,
		}
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Form file 'avatar' is required")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return fiber.NewError(fiber.StatusBadRequest, "Avatar must be an image")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Unable to read uploaded file")
	}
	defer file.Close()

	prev, err := services.GetProfile(h.DB, s.UserID)
	if err != nil {
		return err
	}

	key := fmt.Sprintf("avatars/%s%s", s.UserID, strings.ToLower(filepath.Ext(fileHeader.Filename)))
	url, err := h.Blob.Upload(c.UserContext(), key, contentType, file)
	if err != nil {
		return types.RemoteServiceFailure("avatar storage", err)
	}

	profile, err := services.UpdateProfile(h.DB, s.UserID, services.ProfileUpdate{AvatarURL: &url})
	if err != nil {
		return err
	}

	// A re-upload with a different extension leaves the old object behind;
	// best effort, a stale avatar object is not worth failing the request.
	if oldKey, ok := h.Blob.ObjectKey(prev.AvatarURL); ok && oldKey != key {
		if err := h.Blob.Delete(c.UserContext(), oldKey); err != nil {
			h.Log.Warn("Failed to delete replaced avatar", "key", oldKey, "error", err)
		}
	}
	return c.Status(fiber.StatusOK).JSON(viewOf(profile))
}

// Leaderboard handles GET /api/leaderboard
// @Summary Leaderboard
// @Description Top profiles by score, with tier standing
// @Tags Profile
// @Produce json
// @Param limit query int false "Max entries (default 10, cap 100)"
// @Success 200 {array} models.UserProfile
// @Failure 503 {object} utils.ErrorResponseStruct
// @Router /leaderboard [get]
func (h *ProfileHandler) Leaderboard(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)

	profiles, err := services.Leaderboard(h.DB, limit)
	if err != nil {
		return err
	}

	views := make([]profileView, 0, len(profiles))
	for _, p := range profiles {
		views = append(views, viewOf(p))
	}
	return c.Status(fiber.StatusOK).JSON(views)
}
