package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/momentumafrica/momentum-api/internal/logger"
	"github.com/momentumafrica/momentum-api/internal/models"
	"github.com/momentumafrica/momentum-api/internal/score"
	"github.com/momentumafrica/momentum-api/internal/services"
	"github.com/momentumafrica/momentum-api/internal/session"
	"github.com/momentumafrica/momentum-api/internal/types"
	"github.com/momentumafrica/momentum-api/internal/utils"
)

// OpportunityHandler handles the gated opportunity routes
type OpportunityHandler struct {
	DB  *gorm.DB
	Log *logger.Logger
}

// ListOpportunities handles GET /api/opportunities
// @Summary List opportunities
// @Description Anonymous callers get the raw catalog. With me=1 and a session,
// @Description entries are evaluated against the caller's score: locked state,
// @Description progress, category filter and sort direction.
// @Tags Opportunities
// @Produce json
// @Param me query bool false "Evaluate against the caller's score"
// @Param category query string false "Category filter (All, Internship, Funding, Mentorship, Community)"
// @Param showLocked query bool false "Include entries above the caller's score"
// @Param sort query string false "asc (default) or desc by required score"
// @Success 200 {array} models.Opportunity
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 503 {object} utils.ErrorResponseStruct
// @Router /opportunities [get]
func (h *OpportunityHandler) ListOpportunities(c *fiber.Ctx) error {
	if !c.QueryBool("me", false) {
		opportunities, err := services.ListOpportunities(h.DB)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusOK).JSON(opportunities)
	}

	profile, err := requireProfile(c, h.DB)
	if err != nil {
		return err
	}

	category := c.Query("category", models.CategoryAll)
	if !models.ValidCategory(category) && category != models.CategoryAll {
		return fiber.NewError(fiber.StatusBadRequest, "Unknown category")
	}

	s := session.FromCtx(c)
	evaluated, err := services.EvaluateOpportunities(h.DB, profile.Score, s.IsAdmin(), score.EvaluateOptions{
		Category:   category,
		ShowLocked: c.QueryBool("showLocked", false),
		Descending: c.Query("sort", "asc") == "desc",
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(evaluated)
}

// UpsertOpportunities handles POST /api/opportunities
// @Summary Create or update opportunities
// @Description Admin only. Accepts one opportunity or an array of them.
// @Tags Opportunities
// @Accept json
// @Produce json
// @Param body body services.OpportunityInput true "Opportunity (or array)"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /opportunities [post]
func (h *OpportunityHandler) UpsertOpportunities(c *fiber.Ctx) error {
	var inputs types.FlexList[services.OpportunityInput]
	if err := json.Unmarshal(c.Body(), &inputs); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if len(inputs) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "No opportunities provided")
	}

	affected, err := services.UpsertOpportunities(h.DB, inputs.Slice())
	if err != nil {
		return err
	}
	return utils.MutationSuccessResponse(c, int64(affected))
}

// DeleteOpportunity handles DELETE /api/opportunities/:id
// @Summary Delete an opportunity
// @Description Admin only
// @Tags Opportunities
// @Produce json
// @Param id path string true "Opportunity ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /opportunities/{id} [delete]
func (h *OpportunityHandler) DeleteOpportunity(c *fiber.Ctx) error {
	if err := services.DeleteOpportunity(h.DB, c.Params("id")); err != nil {
		return err
	}
	return utils.MutationSuccessResponse(c, 1)
}

// CreateActivationCodes handles POST /api/activation-codes
// @Summary Create activation codes
// @Description Admin only. Accepts one code or an array of them.
// @Tags Opportunities
// @Accept json
// @Produce json
// @Param body body services.ActivationCodeInput true "Activation code (or array)"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /activation-codes [post]
func (h *OpportunityHandler) CreateActivationCodes(c *fiber.Ctx) error {
	var inputs types.FlexList[services.ActivationCodeInput]
	if err := json.Unmarshal(c.Body(), &inputs); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if len(inputs) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "No activation codes provided")
	}

	created, err := services.CreateActivationCodes(h.DB, inputs.Slice())
	if err != nil {
		return err
	}
	return utils.MutationSuccessResponse(c, int64(created))
}
