package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/eventhub-backend/internal/models"
	"github.com/sefazor/eventhub-backend/pkg/database"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	if err := database.Ping(ctx, h.db); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(models.ErrorResponse("database unavailable"))
	}
	return c.JSON(models.SuccessResponse(nil, "ok"))
}
