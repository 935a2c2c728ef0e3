package handlers

import (
	"github.com/campaign-tracker/backend/internal/http/dto"
	"github.com/campaign-tracker/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AuthHandler struct {
	userService *services.UserService
	log         *zap.Logger
}

func NewAuthHandler(userService *services.UserService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{userService: userService, log: log}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	if _, err := h.userService.Register(c.Context(), req.Username, req.Email, req.Password); err != nil {
		return writeError(c, h.log, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "registered successfully"})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	pair, err := h.userService.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		return writeError(c, h.log, err)
	}

	return c.JSON(pair)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if req.Refresh == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "refresh is required"})
	}

	access, err := h.userService.Refresh(req.Refresh)
	if err != nil {
		return writeError(c, h.log, err)
	}

	return c.JSON(dto.AccessResponse{Access: access})
}
