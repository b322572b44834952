package handlers

import (
	"decision-service/internal/models"
	"decision-service/internal/services"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type DecisionHandler struct {
	decisionService *services.DecisionService
}

func NewDecisionHandler(decisionService *services.DecisionService) *DecisionHandler {
	return &DecisionHandler{decisionService: decisionService}
}

func (h *DecisionHandler) RegisterRoutes(app *fiber.App) {
	gr := app.Group("decision/api/v1")

	gr.Post("/farms/:id/recommendations/generate", h.GenerateRecommendations)
	gr.Get("/farms/:id/recommendations", h.GetActiveRecommendations)
	gr.Patch("/recommendations/:id/status", h.UpdateRecommendationStatus)
}

// GenerateRecommendations builds a fresh ranked recommendation list for the
// farm, replacing the previously stored one.
func (h *DecisionHandler) GenerateRecommendations(c fiber.Ctx) error {
	farmID := c.Params("id")
	if _, err := uuid.Parse(farmID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			models.CreateErrorResponse("invalid_farm_id", "farm id must be a valid UUID"))
	}

	ranked, err := h.decisionService.GenerateForFarm(c.Context(), farmID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(
			models.CreateErrorResponse("generation_failed", err.Error()))
	}

	return c.Status(fiber.StatusOK).JSON(models.CreateSuccessResponse(ranked))
}

// GetActiveRecommendations returns the farm's stored active recommendations
// in rank order.
func (h *DecisionHandler) GetActiveRecommendations(c fiber.Ctx) error {
	farmID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			models.CreateErrorResponse("invalid_farm_id", "farm id must be a valid UUID"))
	}

	recs, err := h.decisionService.GetActiveForFarm(c.Context(), farmID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(
			models.CreateErrorResponse("query_failed", err.Error()))
	}

	return c.Status(fiber.StatusOK).JSON(models.CreateSuccessResponse(recs))
}

type updateStatusRequest struct {
	Status models.RecommendationStatus `json:"status"`
}

// UpdateRecommendationStatus marks a recommendation completed or dismissed.
func (h *DecisionHandler) UpdateRecommendationStatus(c fiber.Ctx) error {
	recID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			models.CreateErrorResponse("invalid_recommendation_id", "recommendation id must be a valid UUID"))
	}

	var req updateStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			models.CreateErrorResponse("invalid_body", "invalid request body"))
	}
	if !models.IsValidRecommendationStatus(req.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(
			models.CreateErrorResponse("invalid_status", "status must be one of active, expired, completed, dismissed"))
	}

	if err := h.decisionService.UpdateRecommendationStatus(c.Context(), recID, req.Status); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(
			models.CreateErrorResponse("update_failed", err.Error()))
	}

	return c.Status(fiber.StatusOK).JSON(models.CreateSuccessResponse(fiber.Map{"id": recID, "status": req.Status}))
}
