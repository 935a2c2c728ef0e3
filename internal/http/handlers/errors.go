package handlers

import (
	"errors"

	"github.com/campaign-tracker/backend/internal/http/dto"
	"github.com/campaign-tracker/backend/internal/middleware"
	"github.com/campaign-tracker/backend/internal/models"
	"github.com/campaign-tracker/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// writeError renders err with the status its type maps to. Unknown errors are
// logged and hidden behind a 500.
func writeError(c *fiber.Ctx, log *zap.Logger, err error) error {
	var (
		verr  *models.ValidationError
		upErr *services.UpstreamError
	)

	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{
			Error:  "validation failed",
			Fields: verr.Fields,
		})

	case errors.Is(err, services.ErrCampaignNotFound),
		errors.Is(err, services.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: err.Error()})

	case errors.Is(err, services.ErrCredentialsRequired),
		errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrAmountRequired),
		errors.Is(err, services.ErrAmountInvalid):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})

	case errors.Is(err, services.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: err.Error()})

	case errors.Is(err, services.ErrInvalidToken):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: services.ErrInvalidToken.Error()})

	case errors.As(err, &upErr):
		log.Warn("currency upstream failed",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Error(err),
		)
		return c.Status(fiber.StatusBadGateway).JSON(dto.UpstreamErrorResponse{
			Error: "currency api failed",
			Raw:   upErr.Raw,
		})
	}

	log.Error("request failed",
		zap.String("request_id", middleware.GetRequestID(c)),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error:     "internal error",
		RequestID: middleware.GetRequestID(c),
	})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
}
