package engine

import (
	"fmt"
	"strings"
	"time"

	"decision-service/internal/finance"
	"decision-service/internal/models"

	"github.com/google/uuid"
)

const marketHighChangePct = 5.0

// MarketEvaluator turns SELL signals from the market-opportunity feed into
// sell decisions sized by the farm's standing production of that crop.
type MarketEvaluator struct {
	calc *finance.ImpactCalculator
}

func NewMarketEvaluator(calc *finance.ImpactCalculator) *MarketEvaluator {
	return &MarketEvaluator{calc: calc}
}

func (e *MarketEvaluator) Name() string { return "market" }

func (e *MarketEvaluator) Evaluate(fc models.FarmContext, now time.Time) []models.Decision {
	var decisions []models.Decision
	for _, opp := range fc.MarketFeed {
		if opp.Recommendation != models.MarketSell {
			continue
		}

		priority := models.PriorityMedium
		if opp.PriceChangePct > marketHighChangePct {
			priority = models.PriorityHigh
		}

		tonnage := e.cropTonnage(fc, opp.Crop)
		upside := tonnage * opp.CurrentPrice * opp.PriceChangePct / 100
		if upside < 0 {
			upside = 0
		}

		// Selling carries no intervention cost, so ROI stays at its zero-cost
		// sentinel; the upside is captured as time value.
		impact := models.NewFinancialImpact(
			models.CostBreakdown{},
			models.RevenueBreakdown{TimeValue: upside},
			20, 70,
		)

		idealEnd := now.Add(5 * 24 * time.Hour)

		decisions = append(decisions, models.Decision{
			ID:       uuid.New(),
			Type:     models.DecisionMarketSell,
			Priority: priority,
			Title:    fmt.Sprintf("Sell %s at current market price", opp.Crop),
			Description: fmt.Sprintf("%s is trading at %.2f, %+.1f%% with a %s trend and a SELL signal.",
				opp.Crop, opp.CurrentPrice, opp.PriceChangePct, strings.ToLower(string(opp.Trend))),
			EstimatedDurationMin: 45,
			EstimatedImpact: models.EstimatedImpact{
				Revenue:        upside,
				RiskMitigation: "Locks in the current price ahead of a potential pullback",
			},
			Financial:  impact,
			Confidence: impact.ConfidenceLevel,
			Timing:     models.TimingWindow{IdealEnd: &idealEnd},
			Requirements: models.Requirements{
				Resources: []string{"broker or elevator contract", "grain transport"},
			},
			Explanation: fmt.Sprintf(
				"The market feed recommends SELL for %s at %.2f (%+.1f%%, trend %s). Estimated marketable production is %.0f tons.",
				opp.Crop, opp.CurrentPrice, opp.PriceChangePct, opp.Trend, tonnage),
			ActionSteps: []string{
				"Confirm stored and standing inventory",
				"Request quotes from at least two buyers",
				"Contract the agreed tonnage",
				"Schedule delivery",
			},
			Market: &models.MarketDetails{
				Crop:           opp.Crop,
				CurrentPrice:   opp.CurrentPrice,
				PriceChangePct: opp.PriceChangePct,
				Trend:          opp.Trend,
			},
		})
	}

	return decisions
}

// cropTonnage estimates the farm's production of a crop from its fields.
func (e *MarketEvaluator) cropTonnage(fc models.FarmContext, crop string) float64 {
	total := 0.0
	for _, field := range fc.Fields {
		if strings.EqualFold(field.CropType, crop) && field.AreaHectares > 0 {
			total += field.AreaHectares * finance.ExpectedYieldTonsPerHa(field.CropType)
		}
	}
	return total
}
