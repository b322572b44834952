package engine

import (
	"fmt"
	"time"

	"decision-service/internal/finance"
	"decision-service/internal/models"

	"github.com/google/uuid"
)

// Fixed per-animal vaccination economics.
const (
	vaccinationIntervalDays     = 365
	vaccinationCostPerAnimal    = 8.0
	vaccinationPreventedLoss    = 150.0
	vaccinationEffectivenessPct = 90.0
)

// LivestockEvaluator emits herd-health decisions for species overdue for
// vaccination.
type LivestockEvaluator struct {
	calc *finance.ImpactCalculator
}

func NewLivestockEvaluator(calc *finance.ImpactCalculator) *LivestockEvaluator {
	return &LivestockEvaluator{calc: calc}
}

func (e *LivestockEvaluator) Name() string { return "livestock" }

func (e *LivestockEvaluator) Evaluate(fc models.FarmContext, now time.Time) []models.Decision {
	if fc.Livestock == nil {
		return nil
	}

	var decisions []models.Decision
	for _, herd := range fc.Livestock.Herds {
		if herd.LastVaccinationDate == nil || herd.Count <= 0 {
			continue
		}

		days := int(now.Sub(time.Unix(*herd.LastVaccinationDate, 0)).Hours() / 24)
		if days <= vaccinationIntervalDays {
			continue
		}

		impact := e.calc.LivestockImpact(herd.Count, vaccinationCostPerAnimal, vaccinationPreventedLoss, vaccinationEffectivenessPct)

		idealEnd := now.Add(14 * 24 * time.Hour)

		decisions = append(decisions, models.Decision{
			ID:       uuid.New(),
			Type:     models.DecisionLivestockHealth,
			Priority: models.PriorityHigh,
			Title:    fmt.Sprintf("Vaccinate %s herd", herd.Species),
			Description: fmt.Sprintf("The %s herd (%d head) is %d days past its last vaccination.",
				herd.Species, herd.Count, days),
			EstimatedDurationMin: 60 + herd.Count*2,
			EstimatedImpact: models.EstimatedImpact{
				Revenue:        impact.EstimatedRevenue,
				RiskMitigation: "Prevents herd-wide disease outbreak and associated losses",
			},
			Financial:  impact,
			Confidence: impact.ConfidenceLevel,
			Timing:     models.TimingWindow{IdealEnd: &idealEnd},
			Requirements: models.Requirements{
				Resources: []string{"veterinarian", "vaccine doses", "handling facilities"},
			},
			Explanation: fmt.Sprintf(
				"Last vaccination was %d days ago, beyond the %d-day booster interval. At %.0f%% effectiveness, vaccinating %d head prevents an estimated %.0f in losses.",
				days, vaccinationIntervalDays, vaccinationEffectivenessPct, herd.Count, impact.EstimatedRevenue),
			ActionSteps: []string{
				"Book the veterinarian",
				"Order vaccine doses for the full herd",
				"Prepare handling facilities",
				"Update vaccination records per animal",
			},
			Livestock: &models.LivestockDetails{
				Species:              herd.Species,
				AnimalCount:          herd.Count,
				DaysSinceVaccination: days,
			},
		})
	}

	return decisions
}
