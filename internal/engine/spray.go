package engine

import (
	"fmt"
	"log/slog"
	"time"

	"decision-service/internal/finance"
	"decision-service/internal/models"

	"github.com/google/uuid"
)

// Spray trigger thresholds.
const (
	fungicideIntervalDays   = 14
	fungicideHumidityPct    = 70.0
	insecticideIntervalDays = 21
	sprayUrgentAfterDays    = 30
	sprayMaxWindKmh         = 15.0
)

// SprayEvaluator emits crop-protection decisions for fields overdue for an
// application, gated on an available spray-weather window.
type SprayEvaluator struct {
	calc *finance.ImpactCalculator
}

func NewSprayEvaluator(calc *finance.ImpactCalculator) *SprayEvaluator {
	return &SprayEvaluator{calc: calc}
}

func (e *SprayEvaluator) Name() string { return "spray" }

func (e *SprayEvaluator) Evaluate(fc models.FarmContext, now time.Time) []models.Decision {
	window := models.BestWindow(fc.SprayWindows)
	if window == nil {
		// No favorable weather window; nothing feasible in this domain.
		return nil
	}

	var decisions []models.Decision
	for _, field := range fc.Fields {
		if !fieldIsEvaluable(field, "spray") {
			continue
		}

		days := field.DaysSinceLastSpray(now)

		needsFungicide := days > fungicideIntervalDays && fc.Weather.Humidity > fungicideHumidityPct
		needsInsecticide := days > insecticideIntervalDays
		if !needsFungicide && !needsInsecticide {
			continue
		}

		// Humidity-driven fungal pressure outranks routine insect control.
		sprayType := models.SprayInsecticide
		if needsFungicide {
			sprayType = models.SprayFungicide
		}

		priority := models.PriorityHigh
		if days > sprayUrgentAfterDays {
			priority = models.PriorityUrgent
		}

		efficacy := window.Confidence / 100
		eco := e.calc.EconomicsFor(field)
		impact := e.calc.SprayImpact(eco, sprayType, 1.0, efficacy)

		maxWind := sprayMaxWindKmh
		fieldID := field.ID
		start, end := window.Start, window.End
		timing := models.TimingWindow{IdealStart: &start, IdealEnd: &end}
		if priority == models.PriorityUrgent {
			deadline := now.Add(48 * time.Hour)
			timing.MustCompleteBy = &deadline
		}

		decisions = append(decisions, models.Decision{
			ID:       uuid.New(),
			Type:     models.DecisionSpray,
			Priority: priority,
			Title:    fmt.Sprintf("Apply %s to %s", sprayType, field.Name),
			Description: fmt.Sprintf("%s has gone %d days without a spray application; a favorable weather window is open.",
				field.Name, days),
			EstimatedDurationMin: sprayDurationMinutes(field.AreaHectares),
			EstimatedImpact: models.EstimatedImpact{
				Revenue:          impact.EstimatedRevenue,
				YieldIncreasePct: sprayYieldProtectionPct(sprayType) * efficacy,
				RiskMitigation:   fmt.Sprintf("Protects against %s pressure before it establishes", pressureFor(sprayType)),
			},
			Financial:  impact,
			Confidence: impact.ConfidenceLevel,
			Timing:     timing,
			Requirements: models.Requirements{
				MaxWindSpeedKmh: &maxWind,
				Resources:       []string{"sprayer", string(sprayType) + " product", "certified operator"},
			},
			Explanation: fmt.Sprintf(
				"Last spray was %d days ago (threshold %d for %s) and current humidity is %.0f%%. The best spray window runs %s to %s with %.0f%% confidence.",
				days, thresholdFor(sprayType), sprayType, fc.Weather.Humidity,
				window.Start.Format(time.RFC3339), window.End.Format(time.RFC3339), window.Confidence),
			ActionSteps: []string{
				"Check product inventory and mix per label rate",
				"Calibrate sprayer nozzles",
				fmt.Sprintf("Apply during window starting %s", window.Start.Format("Jan 2 15:04")),
				"Log the application date and product used",
			},
			FieldID: &fieldID,
			Spray: &models.SprayDetails{
				SprayType:          sprayType,
				DaysSinceLastSpray: days,
				WindowQuality:      window.QualityScore,
				ExpectedEfficacy:   efficacy,
			},
		})
	}

	return decisions
}

// sprayYieldProtectionPct is the display-oriented yield protection percentage
// per spray type.
func sprayYieldProtectionPct(t models.SprayType) float64 {
	switch t {
	case models.SprayFungicide:
		return 15
	case models.SprayInsecticide:
		return 10
	default:
		return 8
	}
}

func thresholdFor(t models.SprayType) int {
	if t == models.SprayFungicide {
		return fungicideIntervalDays
	}
	return insecticideIntervalDays
}

func pressureFor(t models.SprayType) string {
	switch t {
	case models.SprayFungicide:
		return "fungal disease"
	case models.SprayInsecticide:
		return "insect"
	default:
		return "weed"
	}
}

func sprayDurationMinutes(areaHectares float64) int {
	return 15 + int(areaHectares*4)
}

// fieldIsEvaluable validates field data, logging and skipping malformed rows
// so one corrupt field never aborts its siblings.
func fieldIsEvaluable(field models.Field, domain string) bool {
	if field.AreaHectares <= 0 {
		slog.Warn("Skipping field with non-positive area",
			"domain", domain,
			"field_id", field.ID,
			"field_name", field.Name,
			"area_hectares", field.AreaHectares)
		return false
	}
	if field.CropType == "" {
		slog.Warn("Skipping field without crop type",
			"domain", domain,
			"field_id", field.ID,
			"field_name", field.Name)
		return false
	}
	return true
}
