package engine

import (
	"fmt"
	"time"

	"decision-service/internal/finance"
	"decision-service/internal/models"

	"github.com/google/uuid"
)

const (
	harvestMaturityThresholdPct = 90.0
	harvestUrgentMaturityPct    = 100.0
	harvestMaxWindKmh           = 30.0
)

// HarvestEvaluator emits harvest decisions for fields approaching crop
// maturity, gated on an available harvest-weather window.
type HarvestEvaluator struct {
	calc *finance.ImpactCalculator
}

func NewHarvestEvaluator(calc *finance.ImpactCalculator) *HarvestEvaluator {
	return &HarvestEvaluator{calc: calc}
}

func (e *HarvestEvaluator) Name() string { return "harvest" }

func (e *HarvestEvaluator) Evaluate(fc models.FarmContext, now time.Time) []models.Decision {
	window := models.BestWindow(fc.HarvestWindows)
	if window == nil {
		return nil
	}

	var decisions []models.Decision
	for _, field := range fc.Fields {
		if !fieldIsEvaluable(field, "harvest") {
			continue
		}
		if field.PlantingDate == nil {
			// Maturity cannot be estimated without a planting date.
			continue
		}

		daysSincePlanting := field.DaysSincePlanting(now)
		maturityDays := finance.ExpectedMaturityDays(field.CropType)
		maturityProgress := float64(daysSincePlanting) / float64(maturityDays) * 100
		if maturityProgress < harvestMaturityThresholdPct {
			continue
		}

		priority := models.PriorityHigh
		if maturityProgress >= harvestUrgentMaturityPct {
			priority = models.PriorityUrgent
		}

		// Coarse moisture estimate: fully mature grain has dried in the field.
		moisture := 18.0
		if maturityProgress > 100 {
			moisture = 14.0
		}
		weatherRisk := 100 - window.QualityScore

		eco := e.calc.EconomicsFor(field)
		impact := e.calc.HarvestImpact(eco, moisture, weatherRisk)
		expectedYield := eco.AreaHectares * eco.AvgYieldTonsPerHa

		maxWind := harvestMaxWindKmh
		fieldID := field.ID
		start, end := window.Start, window.End
		deadline := now.Add(48 * time.Hour)
		timing := models.TimingWindow{IdealStart: &start, IdealEnd: &end}
		if priority == models.PriorityUrgent {
			timing.MustCompleteBy = &deadline
		}

		decisions = append(decisions, models.Decision{
			ID:       uuid.New(),
			Type:     models.DecisionHarvest,
			Priority: priority,
			Title:    fmt.Sprintf("Harvest %s", field.Name),
			Description: fmt.Sprintf("%s (%s) is at %.0f%% maturity with a harvest window available.",
				field.Name, field.CropType, maturityProgress),
			EstimatedDurationMin: harvestDurationMinutes(field.AreaHectares),
			EstimatedImpact: models.EstimatedImpact{
				Revenue:        impact.EstimatedRevenue,
				RiskMitigation: fmt.Sprintf("Avoids field losses from the %.0f%% weather risk of delaying", weatherRisk),
			},
			Financial:  impact,
			Confidence: impact.ConfidenceLevel,
			Timing:     timing,
			Requirements: models.Requirements{
				MaxWindSpeedKmh: &maxWind,
				Resources:       []string{"combine", "grain cart", "truck and driver"},
			},
			Explanation: fmt.Sprintf(
				"Planted %d days ago against an expected %d-day maturity (%.0f%%). Estimated grain moisture %.0f%%. Harvest window quality %.0f leaves a %.0f%% weather risk if delayed.",
				daysSincePlanting, maturityDays, maturityProgress, moisture, window.QualityScore, weatherRisk),
			ActionSteps: []string{
				"Verify combine settings for the crop",
				"Confirm grain storage or delivery capacity",
				fmt.Sprintf("Begin harvest within window starting %s", window.Start.Format("Jan 2 15:04")),
				"Record actual yield and moisture at the elevator",
			},
			FieldID: &fieldID,
			Harvest: &models.HarvestDetails{
				MaturityProgress:  maturityProgress,
				EstimatedMoisture: moisture,
				WeatherRisk:       weatherRisk,
				ExpectedYieldTons: expectedYield,
			},
		})
	}

	return decisions
}

func harvestDurationMinutes(areaHectares float64) int {
	return 30 + int(areaHectares*12)
}
