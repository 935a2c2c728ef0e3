package handlers

import (
	"github.com/campaign-tracker/backend/internal/models"
	"github.com/gofiber/fiber/v2"
)

type MetaHandler struct{}

func NewMetaHandler() *MetaHandler {
	return &MetaHandler{}
}

func (h *MetaHandler) GetPlatforms(c *fiber.Ctx) error {
	return c.JSON(models.PlatformChoices)
}

func (h *MetaHandler) GetStatuses(c *fiber.Ctx) error {
	return c.JSON(models.StatusChoices)
}
