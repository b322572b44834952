package models

// ============================================================================
// FINANCIAL MODEL
// ============================================================================

// FieldEconomics carries the per-field economic inputs of an impact
// calculation. All monetary and area values are non-negative.
type FieldEconomics struct {
	AreaHectares        float64 `json:"area_hectares"`
	CropType            string  `json:"crop_type"`
	AvgYieldTonsPerHa   float64 `json:"avg_yield_tons_per_ha"`
	ProductionCostPerHa float64 `json:"production_cost_per_ha"`
	InsuranceValue      float64 `json:"insurance_value"`
	LandValue           float64 `json:"land_value"`
}

// CostBreakdown itemizes the cost side of an intervention.
type CostBreakdown struct {
	Materials   float64 `json:"materials"`
	Labor       float64 `json:"labor"`
	Equipment   float64 `json:"equipment"`
	Fuel        float64 `json:"fuel"`
	Overhead    float64 `json:"overhead"`
	Opportunity float64 `json:"opportunity"`
}

// Total is the exact sum of all cost categories.
func (c CostBreakdown) Total() float64 {
	return c.Materials + c.Labor + c.Equipment + c.Fuel + c.Overhead + c.Opportunity
}

// RevenueBreakdown itemizes the revenue side of an intervention.
type RevenueBreakdown struct {
	YieldIncrease  float64 `json:"yield_increase"`
	QualityPremium float64 `json:"quality_premium"`
	LossAvoidance  float64 `json:"loss_avoidance"`
	TimeValue      float64 `json:"time_value"`
}

// Total is the exact sum of all revenue categories.
func (r RevenueBreakdown) Total() float64 {
	return r.YieldIncrease + r.QualityPremium + r.LossAvoidance + r.TimeValue
}

// PaybackSentinelDays is returned as the payback period when an intervention
// produces no revenue, to keep the division guarded.
const PaybackSentinelDays = 999

// FinancialImpact is the full cost/benefit assessment attached to a decision.
// Treat as immutable once built: NetBenefit must always equal
// EstimatedRevenue - TotalCost.
type FinancialImpact struct {
	TotalCost         float64          `json:"total_cost"`
	EstimatedRevenue  float64          `json:"estimated_revenue"`
	NetBenefit        float64          `json:"net_benefit"`
	ROI               float64          `json:"roi"`
	PaybackPeriodDays float64          `json:"payback_period_days"`
	RiskScore         float64          `json:"risk_score"`       // 0-100, lower is better
	ConfidenceLevel   float64          `json:"confidence_level"` // 0-100
	Costs             CostBreakdown    `json:"costs"`
	Revenues          RevenueBreakdown `json:"revenues"`
}

// NewFinancialImpact derives the aggregate figures from the two breakdowns so
// the sum invariants hold by construction. Division-by-zero cases produce
// sentinel values, never NaN.
func NewFinancialImpact(costs CostBreakdown, revenues RevenueBreakdown, riskScore, confidence float64) FinancialImpact {
	totalCost := costs.Total()
	totalRevenue := revenues.Total()

	roi := 0.0
	if totalCost > 0 {
		roi = (totalRevenue - totalCost) / totalCost * 100
	}

	payback := float64(PaybackSentinelDays)
	if totalRevenue > 0 {
		// Simplified monthly-return assumption: 10% of total revenue per period.
		payback = totalCost / (totalRevenue * 0.1)
		if payback > PaybackSentinelDays {
			payback = PaybackSentinelDays
		}
	}

	return FinancialImpact{
		TotalCost:         totalCost,
		EstimatedRevenue:  totalRevenue,
		NetBenefit:        totalRevenue - totalCost,
		ROI:               roi,
		PaybackPeriodDays: payback,
		RiskScore:         Clamp(riskScore, 0, 100),
		ConfidenceLevel:   Clamp(confidence, 0, 100),
		Costs:             costs,
		Revenues:          revenues,
	}
}

// Clamp bounds v to the [min, max] interval.
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
