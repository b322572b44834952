package engine

import (
	"decision-service/internal/models"
)

// ScoringWeights configures the three-axis weighting and the normalization
// constants of the ROI axis. All values are overridable; use
// DefaultScoringWeights for the reference configuration.
type ScoringWeights struct {
	Urgency     float64
	ROI         float64
	Feasibility float64

	// ImpactNormalization is the total estimated impact (in currency units)
	// that maps to a full 100 ROI score.
	ImpactNormalization float64
	// YieldPointValue converts a yield-increase percentage point into
	// currency units for the impact total.
	YieldPointValue float64
}

// DefaultScoringWeights returns the reference weighting: urgency and ROI
// dominate, feasibility moderates.
func DefaultScoringWeights() ScoringWeights {
	return ScoringWeights{
		Urgency:             0.4,
		ROI:                 0.4,
		Feasibility:         0.2,
		ImpactNormalization: 10000,
		YieldPointValue:     1000,
	}
}

// Scorer assigns urgency/ROI/feasibility scores to decision candidates.
// Feasibility is evaluated against the weather at scoring time, not at
// evaluator time, so it reflects the latest conditions.
type Scorer struct {
	weights ScoringWeights
}

func NewScorer(weights ScoringWeights) *Scorer {
	if weights.Urgency == 0 && weights.ROI == 0 && weights.Feasibility == 0 {
		weights = DefaultScoringWeights()
	}
	if weights.ImpactNormalization <= 0 {
		weights.ImpactNormalization = DefaultScoringWeights().ImpactNormalization
	}
	if weights.YieldPointValue <= 0 {
		weights.YieldPointValue = DefaultScoringWeights().YieldPointValue
	}
	return &Scorer{weights: weights}
}

// Score computes the weighted three-axis score for one decision.
func (s *Scorer) Score(d models.Decision, current models.CurrentWeather) models.DecisionScore {
	urgency := urgencyScore(d.Priority)
	roi := s.roiScore(d.EstimatedImpact)
	feasibility := s.feasibilityScore(d, current)

	return models.DecisionScore{
		Urgency:     urgency,
		ROI:         roi,
		Feasibility: feasibility,
		Total:       urgency*s.weights.Urgency + roi*s.weights.ROI + feasibility*s.weights.Feasibility,
	}
}

func urgencyScore(p models.DecisionPriority) float64 {
	switch p {
	case models.PriorityUrgent:
		return 100
	case models.PriorityHigh:
		return 75
	case models.PriorityMedium:
		return 50
	case models.PriorityLow:
		return 25
	default:
		return 25
	}
}

func (s *Scorer) roiScore(impact models.EstimatedImpact) float64 {
	total := impact.Revenue + impact.CostSavings + impact.YieldIncreasePct*s.weights.YieldPointValue
	score := total / s.weights.ImpactNormalization * 100
	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return score
}

// feasibilityScore starts from the decision's own confidence and is halved
// when a weather requirement is violated by current conditions.
func (s *Scorer) feasibilityScore(d models.Decision, current models.CurrentWeather) float64 {
	feasibility := d.Confidence

	violated := false
	if d.Requirements.MaxWindSpeedKmh != nil && current.WindSpeedKmh > *d.Requirements.MaxWindSpeedKmh {
		violated = true
	}
	if d.Requirements.MinTemperatureC != nil && current.TemperatureC < *d.Requirements.MinTemperatureC {
		violated = true
	}
	if d.Requirements.MaxTemperatureC != nil && current.TemperatureC > *d.Requirements.MaxTemperatureC {
		violated = true
	}
	if violated {
		feasibility *= 0.5
	}

	return models.Clamp(feasibility, 0, 100)
}
