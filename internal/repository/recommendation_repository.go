package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"decision-service/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// RecommendationRepository persists ranked decision lists with
// overwrite-by-farm semantics: saving a new list expires the previous one.
type RecommendationRepository struct {
	db *sqlx.DB
}

func NewRecommendationRepository(db *sqlx.DB) *RecommendationRepository {
	return &RecommendationRepository{db: db}
}

// SaveRecommendations expires the farm's active recommendations and inserts
// the new ranked list in a single transaction.
func (r *RecommendationRepository) SaveRecommendations(ctx context.Context, farmID uuid.UUID, decisions []models.Decision, scores map[uuid.UUID]models.DecisionScore) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction failed: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()

	_, err = tx.ExecContext(ctx, `
		UPDATE recommendation
		SET status = $1, expired_at = $2
		WHERE farm_id = $3 AND status = $4`,
		models.RecommendationExpired, now, farmID, models.RecommendationActive)
	if err != nil {
		return fmt.Errorf("expire previous recommendations failed: %w", err)
	}

	insertQuery := `
		INSERT INTO recommendation (
			id, farm_id, decision_id, rank, decision_type, priority,
			total_score, status, decision, created_at
		) VALUES (
			:id, :farm_id, :decision_id, :rank, :decision_type, :priority,
			:total_score, :status, :decision, :created_at
		)`

	for i, decision := range decisions {
		rec := models.Recommendation{
			ID:         uuid.New(),
			FarmID:     farmID,
			DecisionID: decision.ID,
			Rank:       i + 1,
			Type:       decision.Type,
			Priority:   decision.Priority,
			TotalScore: scores[decision.ID].Total,
			Status:     models.RecommendationActive,
			Decision:   models.JSONDecision(decision),
			CreatedAt:  now,
		}
		if _, err := tx.NamedExecContext(ctx, insertQuery, rec); err != nil {
			return fmt.Errorf("insert recommendation %d failed: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit recommendations failed: %w", err)
	}

	slog.Info("Recommendations saved",
		"farm_id", farmID,
		"count", len(decisions))

	return nil
}

// GetActiveByFarm returns the farm's active recommendations in rank order.
func (r *RecommendationRepository) GetActiveByFarm(ctx context.Context, farmID uuid.UUID) ([]models.Recommendation, error) {
	query := `
		SELECT id, farm_id, decision_id, rank, decision_type, priority,
		       total_score, status, decision, created_at, expired_at
		FROM recommendation
		WHERE farm_id = $1 AND status = $2
		ORDER BY rank`

	var recs []models.Recommendation
	if err := r.db.SelectContext(ctx, &recs, query, farmID, models.RecommendationActive); err != nil {
		return nil, fmt.Errorf("query active recommendations failed: %w", err)
	}

	return recs, nil
}

// UpdateStatus moves one recommendation to a new status, e.g. when the
// operator completes or dismisses it.
func (r *RecommendationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.RecommendationStatus) error {
	if !models.IsValidRecommendationStatus(status) {
		return fmt.Errorf("invalid recommendation status: %s", status)
	}

	result, err := r.db.ExecContext(ctx, `
		UPDATE recommendation SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("update recommendation status failed: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check affected rows failed: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("recommendation not found: %s", id)
	}

	return nil
}
