package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"decision-service/internal/engine"
	"decision-service/internal/event"
	"decision-service/internal/models"
	"decision-service/internal/repository"

	"github.com/google/uuid"
)

// RankedDecision pairs a decision with its score for API responses.
type RankedDecision struct {
	Rank     int                  `json:"rank"`
	Decision models.Decision      `json:"decision"`
	Score    models.DecisionScore `json:"score"`
}

// DecisionService orchestrates context assembly, decision generation,
// persistence and eventing for one farm at a time.
type DecisionService struct {
	builder   *ContextBuilder
	engine    *engine.Engine
	recRepo   *repository.RecommendationRepository
	publisher *event.RecommendationPublisher
}

func NewDecisionService(
	builder *ContextBuilder,
	eng *engine.Engine,
	recRepo *repository.RecommendationRepository,
	publisher *event.RecommendationPublisher,
) *DecisionService {
	return &DecisionService{
		builder:   builder,
		engine:    eng,
		recRepo:   recRepo,
		publisher: publisher,
	}
}

// GenerateForFarm builds the farm context, generates the ranked decision
// list, overwrites the farm's stored recommendations and announces the
// result. Publishing failures are logged, not fatal: the recommendations are
// already saved.
func (s *DecisionService) GenerateForFarm(ctx context.Context, farmID string) ([]RankedDecision, error) {
	started := time.Now()

	fc, err := s.builder.Build(ctx, farmID)
	if err != nil {
		return nil, fmt.Errorf("build context: %w", err)
	}

	decisions, scores, err := s.engine.GenerateDecisions(*fc)
	if err != nil {
		return nil, fmt.Errorf("generate decisions: %w", err)
	}

	if s.recRepo != nil {
		if err := s.recRepo.SaveRecommendations(ctx, fc.FarmID, decisions, scores); err != nil {
			return nil, fmt.Errorf("save recommendations: %w", err)
		}
	}

	if s.publisher != nil && len(decisions) > 0 {
		evt := buildGeneratedEvent(fc.FarmID, decisions, scores)
		if err := s.publisher.PublishGenerated(ctx, evt); err != nil {
			slog.Warn("Failed to publish recommendation event",
				"farm_id", farmID, "error", err)
		}
	}

	ranked := make([]RankedDecision, len(decisions))
	for i, d := range decisions {
		ranked[i] = RankedDecision{Rank: i + 1, Decision: d, Score: scores[d.ID]}
	}

	slog.Info("Decision generation for farm complete",
		"farm_id", farmID,
		"decision_count", len(ranked),
		"elapsed_ms", time.Since(started).Milliseconds())

	return ranked, nil
}

// GetActiveForFarm returns the farm's stored active recommendations.
func (s *DecisionService) GetActiveForFarm(ctx context.Context, farmID uuid.UUID) ([]models.Recommendation, error) {
	if s.recRepo == nil {
		return nil, fmt.Errorf("recommendation repository is not configured")
	}
	return s.recRepo.GetActiveByFarm(ctx, farmID)
}

// UpdateRecommendationStatus transitions a stored recommendation, typically
// to completed or dismissed once the farmer has acted on it.
func (s *DecisionService) UpdateRecommendationStatus(ctx context.Context, recID uuid.UUID, status models.RecommendationStatus) error {
	if s.recRepo == nil {
		return fmt.Errorf("recommendation repository is not configured")
	}
	return s.recRepo.UpdateStatus(ctx, recID, status)
}

func buildGeneratedEvent(farmID uuid.UUID, decisions []models.Decision, scores map[uuid.UUID]models.DecisionScore) event.RecommendationsGeneratedEvent {
	urgent := 0
	for _, d := range decisions {
		if d.Priority == models.PriorityUrgent {
			urgent++
		}
	}

	evt := event.RecommendationsGeneratedEvent{
		FarmID:      farmID,
		Count:       len(decisions),
		UrgentCount: urgent,
		GeneratedAt: time.Now(),
	}
	if len(decisions) > 0 {
		top := decisions[0]
		evt.TopDecision = &event.TopDecisionSummary{
			DecisionID: top.ID,
			Type:       top.Type,
			Priority:   top.Priority,
			Title:      top.Title,
			TotalScore: scores[top.ID].Total,
		}
	}
	return evt
}
