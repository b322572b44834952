package models

import (
	"time"

	"github.com/google/uuid"
)

// ============================================================================
// DECISIONS
// ============================================================================

// Decision is a single actionable recommendation produced by an evaluator.
// It is constructed once and never mutated afterwards; scores live in a
// separate DecisionScore table keyed by decision id.
type Decision struct {
	ID                   uuid.UUID        `json:"id"`
	Type                 DecisionType     `json:"type"`
	Priority             DecisionPriority `json:"priority"`
	Title                string           `json:"title"`
	Description          string           `json:"description"`
	EstimatedDurationMin int              `json:"estimated_duration_minutes"`
	EstimatedImpact      EstimatedImpact  `json:"estimated_impact"`
	Financial            FinancialImpact  `json:"financial"`
	Confidence           float64          `json:"confidence"` // 0-100
	Timing               TimingWindow     `json:"timing"`
	Requirements         Requirements     `json:"requirements"`
	Explanation          string           `json:"explanation"`
	ActionSteps          []string         `json:"action_steps"`
	FieldID              *uuid.UUID       `json:"field_id,omitempty"`

	// Per-type supporting data. Exactly one member matching Type is non-nil.
	Spray     *SprayDetails      `json:"spray,omitempty"`
	Harvest   *HarvestDetails    `json:"harvest,omitempty"`
	Irrigate  *IrrigationDetails `json:"irrigate,omitempty"`
	Livestock *LivestockDetails  `json:"livestock,omitempty"`
	Market    *MarketDetails     `json:"market,omitempty"`
}

// EstimatedImpact is the display-oriented summary of a decision's upside,
// looser than the full FinancialImpact.
type EstimatedImpact struct {
	Revenue          float64 `json:"revenue"`
	CostSavings      float64 `json:"cost_savings"`
	YieldIncreasePct float64 `json:"yield_increase_pct"`
	RiskMitigation   string  `json:"risk_mitigation"`
}

// TimingWindow bounds when a decision should be executed. All fields optional.
type TimingWindow struct {
	IdealStart     *time.Time `json:"ideal_start,omitempty"`
	IdealEnd       *time.Time `json:"ideal_end,omitempty"`
	MustCompleteBy *time.Time `json:"must_complete_by,omitempty"`
}

// Requirements lists the preconditions for executing a decision.
type Requirements struct {
	MaxWindSpeedKmh *float64    `json:"max_wind_speed_kmh,omitempty"`
	MinTemperatureC *float64    `json:"min_temperature_c,omitempty"`
	MaxTemperatureC *float64    `json:"max_temperature_c,omitempty"`
	Resources       []string    `json:"resources,omitempty"`
	DependsOn       []uuid.UUID `json:"depends_on,omitempty"`
}

type SprayDetails struct {
	SprayType          SprayType `json:"spray_type"`
	DaysSinceLastSpray int       `json:"days_since_last_spray"`
	WindowQuality      float64   `json:"window_quality"`
	ExpectedEfficacy   float64   `json:"expected_efficacy"` // 0-1
}

type HarvestDetails struct {
	MaturityProgress  float64 `json:"maturity_progress"` // percent
	EstimatedMoisture float64 `json:"estimated_moisture"`
	WeatherRisk       float64 `json:"weather_risk"` // 0-100
	ExpectedYieldTons float64 `json:"expected_yield_tons"`
}

type IrrigationDetails struct {
	RainfallNext7DaysMM float64 `json:"rainfall_next_7_days_mm"`
	ApplicationMM       float64 `json:"application_mm"`
	StressLevel         float64 `json:"stress_level"` // 0-100
}

type LivestockDetails struct {
	Species              string `json:"species"`
	AnimalCount          int    `json:"animal_count"`
	DaysSinceVaccination int    `json:"days_since_vaccination"`
}

type MarketDetails struct {
	Crop           string        `json:"crop"`
	CurrentPrice   float64       `json:"current_price"`
	PriceChangePct float64       `json:"price_change_pct"`
	Trend          SeasonalTrend `json:"trend"`
}

// DecisionScore is the three-axis score assigned by the scorer. Ephemeral:
// recomputed per ranking pass, never part of decision identity.
type DecisionScore struct {
	Urgency     float64 `json:"urgency"`
	ROI         float64 `json:"roi"`
	Feasibility float64 `json:"feasibility"`
	Total       float64 `json:"total"`
}
