package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// JSONMap is a JSONB-backed map column.
type JSONMap map[string]any

func (j JSONMap) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONMap) Scan(value any) error {
	if value == nil {
		*j = nil
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("JSONMap: Scan failed, expected []byte but got %T", value)
	}
	return json.Unmarshal(b, j)
}

// JSONDecision stores the full decision document as a JSONB column.
type JSONDecision Decision

func (d JSONDecision) Value() (driver.Value, error) {
	return json.Marshal(d)
}

func (d *JSONDecision) Scan(value any) error {
	if value == nil {
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("JSONDecision: Scan failed, expected []byte but got %T", value)
	}
	return json.Unmarshal(b, d)
}

// Recommendation is the persisted form of a ranked decision.
type Recommendation struct {
	ID         uuid.UUID            `json:"id" db:"id"`
	FarmID     uuid.UUID            `json:"farm_id" db:"farm_id"`
	DecisionID uuid.UUID            `json:"decision_id" db:"decision_id"`
	Rank       int                  `json:"rank" db:"rank"`
	Type       DecisionType         `json:"type" db:"decision_type"`
	Priority   DecisionPriority     `json:"priority" db:"priority"`
	TotalScore float64              `json:"total_score" db:"total_score"`
	Status     RecommendationStatus `json:"status" db:"status"`
	Decision   JSONDecision         `json:"decision" db:"decision"`
	CreatedAt  time.Time            `json:"created_at" db:"created_at"`
	ExpiredAt  *time.Time           `json:"expired_at,omitempty" db:"expired_at"`
}
