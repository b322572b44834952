package engine

import (
	"testing"

	"decision-service/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestUrgencyScore_PriorityMapping(t *testing.T) {
	assert.Equal(t, 100.0, urgencyScore(models.PriorityUrgent))
	assert.Equal(t, 75.0, urgencyScore(models.PriorityHigh))
	assert.Equal(t, 50.0, urgencyScore(models.PriorityMedium))
	assert.Equal(t, 25.0, urgencyScore(models.PriorityLow))
	assert.Equal(t, 25.0, urgencyScore(models.DecisionPriority("unknown")), "Unknown priorities score as low")
}

func TestRoiScore_NormalizationAndCap(t *testing.T) {
	scorer := NewScorer(DefaultScoringWeights())

	assert.InDelta(t, 50.0, scorer.roiScore(models.EstimatedImpact{Revenue: 5000}), 0.001,
		"5000 against a 10000 normalization is half score")
	assert.Equal(t, 100.0, scorer.roiScore(models.EstimatedImpact{Revenue: 50000}),
		"ROI score is capped at 100")
	assert.InDelta(t, 50.0, scorer.roiScore(models.EstimatedImpact{YieldIncreasePct: 5}), 0.001,
		"Yield points convert at the configured currency value")
	assert.Equal(t, 0.0, scorer.roiScore(models.EstimatedImpact{}), "No impact scores zero")
}

func TestFeasibilityScore_HalvedOnWeatherViolation(t *testing.T) {
	scorer := NewScorer(DefaultScoringWeights())
	maxWind := 15.0

	d := models.Decision{
		Confidence:   80,
		Requirements: models.Requirements{MaxWindSpeedKmh: &maxWind},
	}

	calm := scorer.feasibilityScore(d, models.CurrentWeather{WindSpeedKmh: 10})
	assert.Equal(t, 80.0, calm, "Within requirements, feasibility equals confidence")

	windy := scorer.feasibilityScore(d, models.CurrentWeather{WindSpeedKmh: 22})
	assert.Equal(t, 40.0, windy, "A violated weather requirement halves feasibility")
}

func TestFeasibilityScore_TemperatureBounds(t *testing.T) {
	scorer := NewScorer(DefaultScoringWeights())
	minTemp, maxTemp := 5.0, 32.0

	d := models.Decision{
		Confidence: 90,
		Requirements: models.Requirements{
			MinTemperatureC: &minTemp,
			MaxTemperatureC: &maxTemp,
		},
	}

	assert.Equal(t, 45.0, scorer.feasibilityScore(d, models.CurrentWeather{TemperatureC: 2}))
	assert.Equal(t, 45.0, scorer.feasibilityScore(d, models.CurrentWeather{TemperatureC: 38}))
	assert.Equal(t, 90.0, scorer.feasibilityScore(d, models.CurrentWeather{TemperatureC: 20}))
}

func TestScore_WeightedTotal(t *testing.T) {
	scorer := NewScorer(DefaultScoringWeights())

	d := models.Decision{
		Priority:        models.PriorityUrgent,
		Confidence:      80,
		EstimatedImpact: models.EstimatedImpact{Revenue: 5000},
	}

	score := scorer.Score(d, models.CurrentWeather{})

	assert.Equal(t, 100.0, score.Urgency)
	assert.InDelta(t, 50.0, score.ROI, 0.001)
	assert.Equal(t, 80.0, score.Feasibility)
	assert.InDelta(t, 100*0.4+50*0.4+80*0.2, score.Total, 0.001)
}

func TestNewScorer_ZeroWeightsFallBackToDefaults(t *testing.T) {
	scorer := NewScorer(ScoringWeights{})

	assert.Equal(t, DefaultScoringWeights(), scorer.weights,
		"An unconfigured scorer behaves like the reference configuration")
}

func TestNewScorer_PartialNormalizationDefaults(t *testing.T) {
	scorer := NewScorer(ScoringWeights{Urgency: 0.5, ROI: 0.3, Feasibility: 0.2})

	assert.Equal(t, 10000.0, scorer.weights.ImpactNormalization)
	assert.Equal(t, 1000.0, scorer.weights.YieldPointValue)
	assert.Equal(t, 0.5, scorer.weights.Urgency, "Explicit axis weights are kept")
}

func TestRank_StableTieBreak(t *testing.T) {
	a := models.Decision{ID: uuid.New(), Type: models.DecisionSpray}
	b := models.Decision{ID: uuid.New(), Type: models.DecisionHarvest}
	c := models.Decision{ID: uuid.New(), Type: models.DecisionIrrigate}

	// a and c tie; b outranks both. Insertion order must break the a/c tie.
	scores := map[uuid.UUID]models.DecisionScore{
		a.ID: {Total: 60},
		b.ID: {Total: 80},
		c.ID: {Total: 60},
	}

	ranked := Rank([]models.Decision{a, b, c}, scores)

	assert.Equal(t, b.ID, ranked[0].ID)
	assert.Equal(t, a.ID, ranked[1].ID, "Ties preserve evaluator insertion order")
	assert.Equal(t, c.ID, ranked[2].ID)
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	a := models.Decision{ID: uuid.New()}
	b := models.Decision{ID: uuid.New()}
	input := []models.Decision{a, b}
	scores := map[uuid.UUID]models.DecisionScore{
		a.ID: {Total: 10},
		b.ID: {Total: 90},
	}

	Rank(input, scores)

	assert.Equal(t, a.ID, input[0].ID, "Rank works on a copy")
}
