package handlers

import (
	"errors"

	"decision-service/internal/models"
	"decision-service/internal/templates"

	"github.com/gofiber/fiber/v3"
)

type TemplateHandler struct {
	registry *templates.Registry
}

func NewTemplateHandler(registry *templates.Registry) *TemplateHandler {
	return &TemplateHandler{registry: registry}
}

func (h *TemplateHandler) RegisterRoutes(app *fiber.App) {
	gr := app.Group("decision/api/v1")

	gr.Get("/templates", h.ListTemplates)
	gr.Post("/templates/:id/evaluate", h.EvaluateTemplate)
}

type templateSummary struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Inputs      []templates.InputField `json:"inputs"`
}

// ListTemplates returns every registered decision template with its declared
// input schema so clients can build forms against it.
func (h *TemplateHandler) ListTemplates(c fiber.Ctx) error {
	all := h.registry.List()
	out := make([]templateSummary, 0, len(all))
	for _, t := range all {
		out = append(out, templateSummary{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			Inputs:      t.Inputs,
		})
	}
	return c.Status(fiber.StatusOK).JSON(models.CreateSuccessResponse(out))
}

type evaluateTemplateRequest struct {
	Inputs templates.Inputs `json:"inputs"`
}

// EvaluateTemplate runs a template against caller-supplied inputs and
// returns the proceed/hold recommendation.
func (h *TemplateHandler) EvaluateTemplate(c fiber.Ctx) error {
	templateID := c.Params("id")

	var req evaluateTemplateRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			models.CreateErrorResponse("invalid_body", "invalid request body"))
	}

	rec, err := h.registry.Evaluate(templateID, req.Inputs)
	if err != nil {
		if errors.Is(err, templates.ErrTemplateNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(
				models.CreateErrorResponse("template_not_found", err.Error()))
		}
		return c.Status(fiber.StatusBadRequest).JSON(
			models.CreateErrorResponse("invalid_inputs", err.Error()))
	}

	return c.Status(fiber.StatusOK).JSON(models.CreateSuccessResponse(rec))
}
