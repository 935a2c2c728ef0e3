package handlers

import (
	"github.com/campaign-tracker/backend/internal/http/dto"
	"github.com/campaign-tracker/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type CurrencyHandler struct {
	currencyService *services.CurrencyService
	log             *zap.Logger
}

func NewCurrencyHandler(currencyService *services.CurrencyService, log *zap.Logger) *CurrencyHandler {
	return &CurrencyHandler{currencyService: currencyService, log: log}
}

// Convert handles GET /convert?amount=<INR>.
func (h *CurrencyHandler) Convert(c *fiber.Ctx) error {
	amount, err := services.ParseAmount(c.Query("amount"))
	if err != nil {
		return writeError(c, h.log, err)
	}

	conv, err := h.currencyService.Convert(c.Context(), amount)
	if err != nil {
		return writeError(c, h.log, err)
	}

	return c.JSON(dto.ConvertResponse{
		AmountINR: conv.AmountINR,
		USDRate:   conv.USDRate,
		AmountUSD: conv.AmountUSD,
	})
}
