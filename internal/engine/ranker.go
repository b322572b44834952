package engine

import (
	"sort"

	"decision-service/internal/models"

	"github.com/google/uuid"
)

// Rank orders candidates by total score descending. The sort is stable and
// candidates arrive in fixed evaluator order, so ties resolve to the same
// ordering on every call with identical input.
func Rank(candidates []models.Decision, scores map[uuid.UUID]models.DecisionScore) []models.Decision {
	ranked := make([]models.Decision, len(candidates))
	copy(ranked, candidates)

	sort.SliceStable(ranked, func(i, j int) bool {
		return scores[ranked[i].ID].Total > scores[ranked[j].ID].Total
	})

	return ranked
}
