package handlers

import (
	"github.com/gofiber/fiber/v2"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/momentumafrica/momentum-api/internal/config"
	"github.com/momentumafrica/momentum-api/internal/services"
)

// HealthHandler handles the health probe
type HealthHandler struct {
	Cfg   *config.Config
	DB    *gorm.DB
	Redis *goredis.Client
}

// Health handles GET /api/health
// @Summary Health check
// @Description Reports database, Authorizer, and Redis reachability
// @Tags Health
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	result := services.HealthCheck(h.Cfg, h.DB, h.Redis)

	status := fiber.StatusOK
	if result.Status != "healthy" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(result)
}
