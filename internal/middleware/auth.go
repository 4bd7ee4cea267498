package middleware

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/momentumafrica/momentum-api/internal/config"
	"github.com/momentumafrica/momentum-api/internal/models"
	"github.com/momentumafrica/momentum-api/internal/services"
	"github.com/momentumafrica/momentum-api/internal/session"
	"github.com/momentumafrica/momentum-api/internal/types"
)

const sessionCookie = "cookie_session"

// AuthAdmin validates that the request carries an admin session
func AuthAdmin(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return authorize(c, cfg, []string{models.RoleAdmin}, true)
	}
}

// AuthUser validates that the request carries any authenticated session
func AuthUser(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return authorize(c, cfg, nil, true)
	}
}

// OptionalAuth resolves a session when the cookie is present but lets
// anonymous requests through. Handlers see a nil session for those.
func OptionalAuth(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Cookies(sessionCookie) == "" {
			return c.Next()
		}
		return authorize(c, cfg, nil, false)
	}
}

// authorize performs the authorization check. The Authorizer client is
// initialized lazily on the first authenticated request so the redirect URL
// can be derived from how clients actually reach us.
func authorize(c *fiber.Ctx, cfg *config.Config, roles []string, required bool) error {
	cookie := c.Cookies(sessionCookie)
	if cookie == "" {
		return types.Unauthenticated(fmt.Sprintf("Authorizer cookie %q not found", sessionCookie))
	}

	if !services.IsAuthorizerInitialized() {
		if err := services.InitAuthorizer(cfg, c.Protocol(), c.Hostname()); err != nil {
			return types.RemoteServiceFailure("authorizer", err)
		}
	}

	identity, err := services.ValidateSession(cookie, roles)
	if err != nil {
		if required {
			return types.Unauthenticated(fmt.Sprintf("Invalid session: %v", err))
		}
		// Stale cookie on a public route reads as anonymous.
		return c.Next()
	}

	session.Store(c, &session.Session{
		UserID: identity.ID,
		Email:  identity.Email,
		Role:   roleFor(identity.Roles),
	})

	return c.Next()
}

// roleFor picks the most privileged platform role the identity carries.
func roleFor(roles []string) string {
	role := models.RoleStudent
	for _, r := range roles {
		switch r {
		case models.RoleAdmin:
			return models.RoleAdmin
		case models.RoleTutor:
			role = models.RoleTutor
		}
	}
	return role
}
