package handlers

import (
	"decision-service/internal/models"
	"decision-service/internal/prediction"

	"github.com/gofiber/fiber/v3"
)

type PredictionHandler struct {
	predictor *prediction.YieldPredictor
	analyzer  *prediction.StressAnalyzer
	optimizer *prediction.IrrigationOptimizer
}

func NewPredictionHandler(predictor *prediction.YieldPredictor, analyzer *prediction.StressAnalyzer, optimizer *prediction.IrrigationOptimizer) *PredictionHandler {
	return &PredictionHandler{predictor: predictor, analyzer: analyzer, optimizer: optimizer}
}

func (h *PredictionHandler) RegisterRoutes(app *fiber.App) {
	gr := app.Group("decision/api/v1")

	gr.Post("/predictions/yield", h.PredictYield)
	gr.Post("/predictions/stress", h.AnalyzeStress)
	gr.Post("/predictions/irrigation", h.OptimizeIrrigation)
}

type yieldPredictionRequest struct {
	CropType string                   `json:"crop_type"`
	Features prediction.YieldFeatures `json:"features"`
}

// PredictYield estimates a field's yield from whatever subset of features
// the caller can supply. Confidence reflects feature completeness.
func (h *PredictionHandler) PredictYield(c fiber.Ctx) error {
	var req yieldPredictionRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			models.CreateErrorResponse("invalid_body", "invalid request body"))
	}
	if req.CropType == "" {
		return c.Status(fiber.StatusBadRequest).JSON(
			models.CreateErrorResponse("missing_crop_type", "crop_type is required"))
	}

	pred, err := h.predictor.Predict(req.CropType, req.Features)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			models.CreateErrorResponse("prediction_failed", err.Error()))
	}

	return c.Status(fiber.StatusOK).JSON(models.CreateSuccessResponse(pred))
}

type stressAnalysisRequest struct {
	Observations []prediction.NDVIObservation `json:"observations"`
}

// AnalyzeStress classifies crop stress from a satellite NDVI time series.
func (h *PredictionHandler) AnalyzeStress(c fiber.Ctx) error {
	var req stressAnalysisRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			models.CreateErrorResponse("invalid_body", "invalid request body"))
	}

	analysis, err := h.analyzer.Analyze(req.Observations)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			models.CreateErrorResponse("analysis_failed", err.Error()))
	}

	return c.Status(fiber.StatusOK).JSON(models.CreateSuccessResponse(analysis))
}

// OptimizeIrrigation returns an irrigation amount, urgency and timing from
// the field's soil water balance and forecast.
func (h *PredictionHandler) OptimizeIrrigation(c fiber.Ctx) error {
	var conditions prediction.IrrigationConditions
	if err := c.Bind().Body(&conditions); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			models.CreateErrorResponse("invalid_body", "invalid request body"))
	}

	return c.Status(fiber.StatusOK).JSON(models.CreateSuccessResponse(h.optimizer.Optimize(conditions)))
}
