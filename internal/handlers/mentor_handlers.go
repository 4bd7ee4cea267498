package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/momentumafrica/momentum-api/internal/logger"
	"github.com/momentumafrica/momentum-api/internal/score"
	"github.com/momentumafrica/momentum-api/internal/services"
)

// MentorHandler handles the AI mentor routes
type MentorHandler struct {
	DB     *gorm.DB
	Log    *logger.Logger
	Mentor *services.MentorService
}

type refineBody struct {
	CommunityID string `json:"communityId"`
	Idea        string `json:"idea"`
}

type refineResult struct {
	RefinedIdea string `json:"refinedIdea"`
	Ok          bool   `json:"ok"`
}

// RefineIdea handles POST /api/mentor/refine
// @Summary Refine an idea
// @Description Runs the raw idea through the community's AI mentor persona.
// @Description Refinement points are only awarded when the mentor actually answers.
// @Tags Mentor
// @Accept json
// @Produce json
// @Param body body refineBody true "Community and raw idea"
// @Success 200 {object} refineResult
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /mentor/refine [post]
func (h *MentorHandler) RefineIdea(c *fiber.Ctx) error {
	member, err := requireProfile(c, h.DB)
	if err != nil {
		return err
	}

	var body refineBody
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(body.Idea) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Idea text is required")
	}

	community, err := services.GetCommunity(h.DB, body.CommunityID)
	if err != nil {
		return err
	}

	if h.Mentor == nil {
		return c.Status(fiber.StatusOK).JSON(refineResult{
			RefinedIdea: services.MentorFailureMessage,
			Ok:          false,
		})
	}

	refined, ok := h.Mentor.RefineIdea(c.UserContext(), body.Idea, community.MentorInstruction)
	if ok {
		go services.AwardScore(h.Log, h.DB, member.ID, score.ReasonRefineIdea)
	}

	return c.Status(fiber.StatusOK).JSON(refineResult{RefinedIdea: refined, Ok: ok})
}
