package engine

import (
	"fmt"
	"time"

	"decision-service/internal/finance"
	"decision-service/internal/models"

	"github.com/google/uuid"
)

const (
	irrigationRainThresholdMM = 10.0
	irrigationHighRainMM      = 5.0
	irrigationTempThresholdC  = 25.0
	irrigationNominalMM       = 25.0
)

// IrrigationEvaluator emits irrigation decisions when the trailing forecast
// shows a dry, hot stretch ahead.
type IrrigationEvaluator struct {
	calc *finance.ImpactCalculator
}

func NewIrrigationEvaluator(calc *finance.ImpactCalculator) *IrrigationEvaluator {
	return &IrrigationEvaluator{calc: calc}
}

func (e *IrrigationEvaluator) Name() string { return "irrigation" }

func (e *IrrigationEvaluator) Evaluate(fc models.FarmContext, now time.Time) []models.Decision {
	if len(fc.Forecast) == 0 {
		return nil
	}

	rain7 := 0.0
	for i, day := range fc.Forecast {
		if i >= 7 {
			break
		}
		rain7 += day.PrecipitationMM
	}
	tomorrowTemp := fc.Forecast[0].TempMaxC

	if rain7 >= irrigationRainThresholdMM || tomorrowTemp <= irrigationTempThresholdC {
		return nil
	}

	priority := models.PriorityMedium
	if rain7 < irrigationHighRainMM {
		priority = models.PriorityHigh
	}

	stress := 100 - rain7*10
	if stress < 0 {
		stress = 0
	}

	var decisions []models.Decision
	for _, field := range fc.Fields {
		if !fieldIsEvaluable(field, "irrigation") {
			continue
		}

		eco := e.calc.EconomicsFor(field)
		impact := e.calc.IrrigationImpact(eco, irrigationNominalMM, stress)

		fieldID := field.ID
		idealEnd := now.Add(72 * time.Hour)
		minTemp := 5.0

		decisions = append(decisions, models.Decision{
			ID:       uuid.New(),
			Type:     models.DecisionIrrigate,
			Priority: priority,
			Title:    fmt.Sprintf("Irrigate %s", field.Name),
			Description: fmt.Sprintf("Only %.1fmm of rain is forecast over the next 7 days with %.0f°C expected tomorrow.",
				rain7, tomorrowTemp),
			EstimatedDurationMin: irrigationDurationMinutes(field.AreaHectares),
			EstimatedImpact: models.EstimatedImpact{
				Revenue:          impact.Revenues.YieldIncrease,
				YieldIncreasePct: stress / 100 * 20,
				RiskMitigation:   fmt.Sprintf("Relieves %.0f%% moisture stress before yield loss locks in", stress),
			},
			Financial:  impact,
			Confidence: impact.ConfidenceLevel,
			Timing:     models.TimingWindow{IdealEnd: &idealEnd},
			Requirements: models.Requirements{
				MinTemperatureC: &minTemp,
				Resources:       []string{"irrigation system", "water allocation"},
			},
			Explanation: fmt.Sprintf(
				"Forecast rainfall of %.1fmm over 7 days is below the %.0fmm threshold and tomorrow's high of %.0f°C exceeds %.0f°C. A nominal %.0fmm application is recommended at stress level %.0f.",
				rain7, irrigationRainThresholdMM, tomorrowTemp, irrigationTempThresholdC, irrigationNominalMM, stress),
			ActionSteps: []string{
				"Check water allocation and pump condition",
				fmt.Sprintf("Schedule a %.0fmm application", irrigationNominalMM),
				"Run the system during low-evaporation hours",
				"Log applied volume against the field",
			},
			FieldID: &fieldID,
			Irrigate: &models.IrrigationDetails{
				RainfallNext7DaysMM: rain7,
				ApplicationMM:       irrigationNominalMM,
				StressLevel:         stress,
			},
		})
	}

	return decisions
}

func irrigationDurationMinutes(areaHectares float64) int {
	return 20 + int(areaHectares*8)
}
