package engine

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"decision-service/internal/finance"
	"decision-service/internal/models"

	"github.com/google/uuid"
)

// ErrInvalidContext is returned when the farm context is structurally
// malformed, e.g. a missing location.
var ErrInvalidContext = errors.New("invalid farm context")

// Evaluator produces raw decision candidates for one decision domain. It must
// be a pure function of the context: no shared mutable state, no I/O.
type Evaluator interface {
	Name() string
	Evaluate(fc models.FarmContext, now time.Time) []models.Decision
}

// Engine orchestrates evaluators, scoring and ranking behind a single entry
// point. Stateless per call; safe for concurrent use across farms.
type Engine struct {
	calc       *finance.ImpactCalculator
	scorer     *Scorer
	evaluators []Evaluator
	now        func() time.Time
}

// New wires the engine with the default evaluator set. The evaluator order is
// fixed: it doubles as the deterministic tie-break for equal scores.
func New(calc *finance.ImpactCalculator, weights ScoringWeights) *Engine {
	return &Engine{
		calc:   calc,
		scorer: NewScorer(weights),
		evaluators: []Evaluator{
			NewSprayEvaluator(calc),
			NewHarvestEvaluator(calc),
			NewIrrigationEvaluator(calc),
			NewLivestockEvaluator(calc),
			NewMarketEvaluator(calc),
		},
		now: time.Now,
	}
}

// WithClock overrides the engine clock. Intended for tests.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// GenerateDecisions turns a farm context into a ranked recommendation list
// with per-decision scores. "No actionable recommendations" is a valid
// outcome: a farm without fields yields an empty list, not an error.
func (e *Engine) GenerateDecisions(fc models.FarmContext) ([]models.Decision, map[uuid.UUID]models.DecisionScore, error) {
	if fc.Location == nil {
		return nil, nil, ErrInvalidContext
	}
	if fc.FarmID == uuid.Nil || len(fc.Fields) == 0 {
		slog.Info("No evaluable farm context, returning empty recommendation list",
			"farm_id", fc.FarmID,
			"field_count", len(fc.Fields))
		return []models.Decision{}, map[uuid.UUID]models.DecisionScore{}, nil
	}

	now := e.now()

	// Evaluators are independent; run them concurrently into indexed slots so
	// the concatenation order stays fixed regardless of completion order.
	results := make([][]models.Decision, len(e.evaluators))
	var wg sync.WaitGroup
	for i, ev := range e.evaluators {
		wg.Add(1)
		go func(idx int, ev Evaluator) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					slog.Error("Evaluator panicked, skipping its candidates",
						"evaluator", ev.Name(),
						"farm_id", fc.FarmID,
						"panic", r)
				}
			}()
			results[idx] = ev.Evaluate(fc, now)
		}(i, ev)
	}
	wg.Wait()

	var candidates []models.Decision
	for _, r := range results {
		candidates = append(candidates, r...)
	}

	scores := make(map[uuid.UUID]models.DecisionScore, len(candidates))
	for _, d := range candidates {
		scores[d.ID] = e.scorer.Score(d, fc.Weather)
	}

	ranked := Rank(candidates, scores)

	slog.Info("Decision generation complete",
		"farm_id", fc.FarmID,
		"candidate_count", len(candidates),
		"field_count", len(fc.Fields))

	return ranked, scores, nil
}
