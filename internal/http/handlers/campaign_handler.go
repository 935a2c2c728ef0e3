package handlers

import (
	"strconv"

	"github.com/campaign-tracker/backend/internal/http/dto"
	"github.com/campaign-tracker/backend/internal/middleware"
	"github.com/campaign-tracker/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CampaignHandler struct {
	campaignService *services.CampaignService
	log             *zap.Logger
}

func NewCampaignHandler(campaignService *services.CampaignService, log *zap.Logger) *CampaignHandler {
	return &CampaignHandler{campaignService: campaignService, log: log}
}

func (h *CampaignHandler) ListCampaigns(c *fiber.Ctx) error {
	campaigns, err := h.campaignService.List(c.Context(), middleware.GetUserID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.NewCampaignListResponse(campaigns))
}

func (h *CampaignHandler) CreateCampaign(c *fiber.Ctx) error {
	var req dto.CampaignRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	campaign, err := h.campaignService.Create(c.Context(), middleware.GetUserID(c), req.ToInput())
	if err != nil {
		return writeError(c, h.log, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewCampaignResponse(campaign))
}

func (h *CampaignHandler) GetCampaign(c *fiber.Ctx) error {
	id, ok := campaignID(c)
	if !ok {
		return writeError(c, h.log, services.ErrCampaignNotFound)
	}

	campaign, err := h.campaignService.Get(c.Context(), id, middleware.GetUserID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}

	return c.JSON(dto.NewCampaignResponse(campaign))
}

// UpdateCampaign serves PUT (every required field) and PATCH (present fields
// only).
func (h *CampaignHandler) UpdateCampaign(c *fiber.Ctx) error {
	id, ok := campaignID(c)
	if !ok {
		return writeError(c, h.log, services.ErrCampaignNotFound)
	}

	var req dto.CampaignRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	partial := c.Method() == fiber.MethodPatch
	campaign, err := h.campaignService.Update(c.Context(), id, middleware.GetUserID(c), req.ToInput(), partial)
	if err != nil {
		return writeError(c, h.log, err)
	}

	return c.JSON(dto.NewCampaignResponse(campaign))
}

func (h *CampaignHandler) DeleteCampaign(c *fiber.Ctx) error {
	id, ok := campaignID(c)
	if !ok {
		return writeError(c, h.log, services.ErrCampaignNotFound)
	}

	if err := h.campaignService.Delete(c.Context(), id, middleware.GetUserID(c)); err != nil {
		return writeError(c, h.log, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CampaignHandler) GetHistory(c *fiber.Ctx) error {
	id, ok := campaignID(c)
	if !ok {
		return writeError(c, h.log, services.ErrCampaignNotFound)
	}

	limit, offset := 50, 0
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}

	logs, err := h.campaignService.History(c.Context(), id, middleware.GetUserID(c), limit, offset)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(logs)
}

// campaignID parses the :id path parameter. A malformed id is reported as
// not-found, the same as a missing campaign.
func campaignID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
