package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/momentumafrica/momentum-api/internal/navigation"
	"github.com/momentumafrica/momentum-api/internal/session"
)

// NavigationHandler resolves client view transitions
type NavigationHandler struct{}

type navigationResult struct {
	View  string `json:"view"`
	Gated bool   `json:"gated"`
}

// Navigate handles GET /api/navigate
// @Summary Resolve a view transition
// @Description Applies the gating rules for the requested view against the
// @Description caller's session and returns the view the client should render.
// @Tags Navigation
// @Produce json
// @Param current query string false "Current view"
// @Param to query string true "Requested view"
// @Success 200 {object} navigationResult
// @Router /navigate [get]
func (h *NavigationHandler) Navigate(c *fiber.Ctx) error {
	current := navigation.View(c.Query("current", string(navigation.ViewHome)))
	request := navigation.View(c.Query("to"))

	s := session.FromCtx(c)
	view := navigation.Transition(current, request, s != nil)

	return c.Status(fiber.StatusOK).JSON(navigationResult{
		View:  string(view),
		Gated: navigation.Gated(view),
	})
}
