package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// CurrentAPIVersion is the release the API answers with when a client does
// not pin one.
const CurrentAPIVersion = "1.0.0"

// VersionMiddleware records the client's requested API version so handlers
// can branch on it later. Shorthand values normalize to the full release.
func VersionMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		version := c.Get("X-Api-Version", CurrentAPIVersion)
		switch version {
		case "1", "1.0", "v1":
			version = CurrentAPIVersion
		}

		c.Locals("apiVersion", version)
		return c.Next()
	}
}
