package handlers

import (
	"decision-service/internal/finance"
	"decision-service/internal/models"

	"github.com/gofiber/fiber/v3"
)

type PricingHandler struct {
	pricing *finance.PricingTable
}

func NewPricingHandler(pricing *finance.PricingTable) *PricingHandler {
	return &PricingHandler{pricing: pricing}
}

func (h *PricingHandler) RegisterRoutes(app *fiber.App) {
	gr := app.Group("decision/api/v1")

	gr.Get("/pricing", h.GetPricing)
	gr.Put("/pricing/:crop", h.UpdatePricing)
}

// GetPricing returns the full crop pricing snapshot currently used by the
// financial impact calculator.
func (h *PricingHandler) GetPricing(c fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(models.CreateSuccessResponse(h.pricing.Snapshot()))
}

type updatePricingRequest struct {
	CurrentPrice      float64              `json:"current_price"`
	HistoricalAverage float64              `json:"historical_average"`
	Volatility        float64              `json:"volatility"`
	SeasonalTrend     models.SeasonalTrend `json:"seasonal_trend"`
	MarketOutlook     models.MarketOutlook `json:"market_outlook"`
}

// UpdatePricing overwrites a single crop's pricing entry.
func (h *PricingHandler) UpdatePricing(c fiber.Ctx) error {
	crop := c.Params("crop")
	if crop == "" {
		return c.Status(fiber.StatusBadRequest).JSON(
			models.CreateErrorResponse("invalid_crop", "crop name is required"))
	}

	var req updatePricingRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			models.CreateErrorResponse("invalid_body", "invalid request body"))
	}
	if req.CurrentPrice <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(
			models.CreateErrorResponse("invalid_price", "current_price must be positive"))
	}
	if req.SeasonalTrend != "" && !models.IsValidSeasonalTrend(req.SeasonalTrend) {
		return c.Status(fiber.StatusBadRequest).JSON(
			models.CreateErrorResponse("invalid_trend", "seasonal_trend must be RISING, STABLE or FALLING"))
	}
	if req.MarketOutlook != "" && !models.IsValidMarketOutlook(req.MarketOutlook) {
		return c.Status(fiber.StatusBadRequest).JSON(
			models.CreateErrorResponse("invalid_outlook", "market_outlook must be BULLISH, NEUTRAL or BEARISH"))
	}

	h.pricing.Update(crop, models.CropPricing{
		CurrentPrice:      req.CurrentPrice,
		HistoricalAverage: req.HistoricalAverage,
		Volatility:        req.Volatility,
		SeasonalTrend:     req.SeasonalTrend,
		MarketOutlook:     req.MarketOutlook,
	})

	price, _ := h.pricing.Get(crop)
	return c.Status(fiber.StatusOK).JSON(models.CreateSuccessResponse(price))
}
