package prediction

import (
	"math"
	"strings"
)

// DailyForecast is one day of the forecast horizon used by the irrigation
// water-balance model.
type DailyForecast struct {
	PrecipitationMM float64 `json:"precipitation_mm"`
	TemperatureC    float64 `json:"temperature_c"`
	Humidity        float64 `json:"humidity"`
}

// IrrigationConditions are the field-state inputs of an irrigation
// optimization. Zero values fall back to typical loam defaults.
type IrrigationConditions struct {
	SoilMoisture  float64         `json:"soil_moisture"`  // volumetric fraction
	CropStage     string          `json:"crop_stage"`     // germination..maturity
	FieldCapacity float64         `json:"field_capacity"` // volumetric fraction
	WiltingPoint  float64         `json:"wilting_point"`  // volumetric fraction
	Forecast      []DailyForecast `json:"forecast"`
}

// IrrigationUrgency bands the water-stress level.
type IrrigationUrgency string

const (
	IrrigationCritical IrrigationUrgency = "critical"
	IrrigationHigh     IrrigationUrgency = "high"
	IrrigationModerate IrrigationUrgency = "moderate"
	IrrigationLow      IrrigationUrgency = "low"
)

// IrrigationPlan is the water-balance optimization result.
type IrrigationPlan struct {
	IrrigationNeeded     bool              `json:"irrigation_needed"`
	RecommendedAmountMM  float64           `json:"recommended_amount_mm"`
	Urgency              IrrigationUrgency `json:"urgency"`
	Timing               string            `json:"timing"` // immediate, within_24h, within_3_days, monitor, delay_for_rain
	WaterStressLevel     float64           `json:"water_stress_level"` // 0-1, 1 means fully charged
	ExpectedRainfall7dMM float64           `json:"expected_rainfall_7d_mm"`
	AvgTemperatureC      float64           `json:"avg_temperature_c"`
	AvgHumidity          float64           `json:"avg_humidity"`
	ETFactor             float64           `json:"evapotranspiration_factor"`
	BaseRequirement      float64           `json:"base_requirement"`
	AdjustedRequirement  float64           `json:"adjusted_requirement"`
	EfficiencyTips       []string          `json:"efficiency_tips"`
}

// stageWaterRequirements is the relative crop water demand by growth stage.
var stageWaterRequirements = map[string]float64{
	"germination": 0.3,
	"emergence":   0.4,
	"vegetative":  0.6,
	"flowering":   0.8,
	"fruiting":    0.7,
	"maturity":    0.4,
}

const defaultStageRequirement = 0.6

// IrrigationOptimizer schedules irrigation from a soil water balance adjusted
// for forecast evapotranspiration. Pure and stateless; safe for concurrent
// use.
type IrrigationOptimizer struct{}

func NewIrrigationOptimizer() *IrrigationOptimizer {
	return &IrrigationOptimizer{}
}

// Optimize returns the recommended irrigation amount, urgency and timing for
// the given field conditions.
func (o *IrrigationOptimizer) Optimize(conditions IrrigationConditions) *IrrigationPlan {
	soilMoisture := conditions.SoilMoisture
	if soilMoisture <= 0 {
		soilMoisture = 0.3
	}
	fieldCapacity := conditions.FieldCapacity
	if fieldCapacity <= 0 {
		fieldCapacity = 0.4
	}
	wiltingPoint := conditions.WiltingPoint
	if wiltingPoint <= 0 {
		wiltingPoint = 0.15
	}

	availableWater := math.Max(0, soilMoisture-wiltingPoint)
	maxAvailable := fieldCapacity - wiltingPoint
	stressLevel := 0.0
	if maxAvailable > 0 {
		stressLevel = availableWater / maxAvailable
	}

	stage := strings.ToLower(strings.TrimSpace(conditions.CropStage))
	baseRequirement, ok := stageWaterRequirements[stage]
	if !ok {
		baseRequirement = defaultStageRequirement
	}

	expectedRainfall := 0.0
	avgTemp := 25.0
	avgHumidity := 60.0
	if len(conditions.Forecast) > 0 {
		horizon := conditions.Forecast
		if len(horizon) > 7 {
			horizon = horizon[:7]
		}
		var tempSum, humiditySum float64
		for _, day := range horizon {
			expectedRainfall += day.PrecipitationMM
			tempSum += day.TemperatureC
			humiditySum += day.Humidity
		}
		avgTemp = tempSum / float64(len(horizon))
		avgHumidity = humiditySum / float64(len(horizon))
	}

	etFactor := 1.0
	switch {
	case avgTemp > 30:
		etFactor += 0.2
	case avgTemp < 15:
		etFactor -= 0.2
	}
	switch {
	case avgHumidity > 80:
		etFactor -= 0.1
	case avgHumidity < 40:
		etFactor += 0.1
	}

	adjustedRequirement := baseRequirement * etFactor

	var urgency IrrigationUrgency
	var amount float64
	var timing string
	switch {
	case stressLevel < 0.3:
		urgency = IrrigationCritical
		amount = (fieldCapacity - soilMoisture) * 1000
		timing = "immediate"
	case stressLevel < 0.5:
		urgency = IrrigationHigh
		amount = (fieldCapacity - soilMoisture) * 800
		timing = "within_24h"
	case stressLevel < 0.7:
		urgency = IrrigationModerate
		amount = adjustedRequirement * 600
		timing = "within_3_days"
	default:
		urgency = IrrigationLow
		amount = 0
		timing = "monitor"
	}

	// Incoming rain that covers most of the need displaces irrigation
	// entirely; lighter rain just offsets the amount.
	if amount > 0 && expectedRainfall > amount*0.8 {
		amount = 0
		timing = "delay_for_rain"
		urgency = IrrigationLow
	} else if expectedRainfall > 0 {
		amount = math.Max(0, amount-expectedRainfall)
	}

	tips := []string{}
	if urgency == IrrigationCritical || urgency == IrrigationHigh {
		tips = append(tips, "Apply during early morning or evening to reduce evaporation")
	}
	if avgTemp > 30 {
		tips = append(tips, "Consider mulching to retain soil moisture")
	}
	if expectedRainfall > 10 {
		tips = append(tips, "Delay irrigation until after expected rainfall")
	}

	return &IrrigationPlan{
		IrrigationNeeded:     amount > 0,
		RecommendedAmountMM:  amount,
		Urgency:              urgency,
		Timing:               timing,
		WaterStressLevel:     stressLevel,
		ExpectedRainfall7dMM: expectedRainfall,
		AvgTemperatureC:      avgTemp,
		AvgHumidity:          avgHumidity,
		ETFactor:             etFactor,
		BaseRequirement:      baseRequirement,
		AdjustedRequirement:  adjustedRequirement,
		EfficiencyTips:       tips,
	}
}
