package session

import (
	"github.com/gofiber/fiber/v2"

	"github.com/momentumafrica/momentum-api/internal/models"
)

// localsKey is the single Fiber locals slot the auth middleware writes to.
const localsKey = "momentum_session"

// Session is the explicit per-request view of the authenticated caller,
// built by the auth middleware from the validated Authorizer cookie. It
// replaces any ambient current-user state: handlers receive it through the
// request context and nothing outlives the request.
type Session struct {
	UserID string
	Email  string
	Role   string
}

// IsAdmin reports whether the session holds the administrative role.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == models.RoleAdmin
}

// Store attaches the session to the request.
func Store(c *fiber.Ctx, s *Session) {
	c.Locals(localsKey, s)
}

// FromCtx returns the session for the request, or nil when the request is
// anonymous.
func FromCtx(c *fiber.Ctx) *Session {
	s, _ := c.Locals(localsKey).(*Session)
	return s
}
