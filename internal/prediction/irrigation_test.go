package prediction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// dryWeek builds a rain-free forecast at the given temperature and humidity.
func dryWeek(tempC, humidity float64) []DailyForecast {
	days := make([]DailyForecast, 7)
	for i := range days {
		days[i] = DailyForecast{TemperatureC: tempC, Humidity: humidity}
	}
	return days
}

func TestOptimize_CriticalWhenNearWiltingPoint(t *testing.T) {
	optimizer := NewIrrigationOptimizer()

	plan := optimizer.Optimize(IrrigationConditions{
		SoilMoisture:  0.17,
		FieldCapacity: 0.4,
		WiltingPoint:  0.15,
		CropStage:     "flowering",
		Forecast:      dryWeek(25, 60),
	})

	// available 0.02 of max 0.25 → stress 0.08, refill to capacity.
	assert.True(t, plan.IrrigationNeeded)
	assert.Equal(t, IrrigationCritical, plan.Urgency)
	assert.Equal(t, "immediate", plan.Timing)
	assert.InDelta(t, 0.08, plan.WaterStressLevel, 1e-9)
	assert.InDelta(t, 230.0, plan.RecommendedAmountMM, 1e-9, "Refill deficit (0.4-0.17)*1000")
}

func TestOptimize_WellWateredFieldJustMonitors(t *testing.T) {
	optimizer := NewIrrigationOptimizer()

	plan := optimizer.Optimize(IrrigationConditions{
		SoilMoisture:  0.36,
		FieldCapacity: 0.4,
		WiltingPoint:  0.15,
		CropStage:     "vegetative",
	})

	// available 0.21 of max 0.25 → stress 0.84.
	assert.False(t, plan.IrrigationNeeded)
	assert.Equal(t, IrrigationLow, plan.Urgency)
	assert.Equal(t, "monitor", plan.Timing)
	assert.Equal(t, 0.0, plan.RecommendedAmountMM)
}

func TestOptimize_IncomingRainDisplacesIrrigation(t *testing.T) {
	optimizer := NewIrrigationOptimizer()

	forecast := dryWeek(25, 60)
	forecast[1].PrecipitationMM = 80
	forecast[2].PrecipitationMM = 70

	plan := optimizer.Optimize(IrrigationConditions{
		SoilMoisture:  0.22,
		FieldCapacity: 0.4,
		WiltingPoint:  0.15,
		CropStage:     "flowering",
		Forecast:      forecast,
	})

	// stress 0.28 would be critical with 180mm need, but 150mm of rain
	// covers more than 80% of it.
	assert.False(t, plan.IrrigationNeeded)
	assert.Equal(t, "delay_for_rain", plan.Timing)
	assert.Equal(t, IrrigationLow, plan.Urgency)
	assert.Contains(t, plan.EfficiencyTips, "Delay irrigation until after expected rainfall")
}

func TestOptimize_LightRainOffsetsAmount(t *testing.T) {
	optimizer := NewIrrigationOptimizer()

	forecast := dryWeek(25, 60)
	forecast[0].PrecipitationMM = 30

	plan := optimizer.Optimize(IrrigationConditions{
		SoilMoisture:  0.25,
		FieldCapacity: 0.4,
		WiltingPoint:  0.15,
		CropStage:     "flowering",
		Forecast:      forecast,
	})

	// stress 0.4 → high, (0.4-0.25)*800 = 120mm, minus 30mm of rain.
	assert.Equal(t, IrrigationHigh, plan.Urgency)
	assert.Equal(t, "within_24h", plan.Timing)
	assert.InDelta(t, 90.0, plan.RecommendedAmountMM, 1e-9)
	assert.Contains(t, plan.EfficiencyTips, "Apply during early morning or evening to reduce evaporation")
}

func TestOptimize_HotDryWeatherRaisesETFactor(t *testing.T) {
	optimizer := NewIrrigationOptimizer()

	hot := optimizer.Optimize(IrrigationConditions{
		SoilMoisture:  0.30,
		FieldCapacity: 0.4,
		WiltingPoint:  0.15,
		CropStage:     "vegetative",
		Forecast:      dryWeek(33, 35),
	})
	cool := optimizer.Optimize(IrrigationConditions{
		SoilMoisture:  0.30,
		FieldCapacity: 0.4,
		WiltingPoint:  0.15,
		CropStage:     "vegetative",
		Forecast:      dryWeek(12, 85),
	})

	assert.InDelta(t, 1.3, hot.ETFactor, 1e-9, "Hot plus dry adds 0.2 and 0.1")
	assert.InDelta(t, 0.7, cool.ETFactor, 1e-9, "Cool plus humid subtracts 0.2 and 0.1")
	assert.Greater(t, hot.AdjustedRequirement, cool.AdjustedRequirement)
	assert.Greater(t, hot.RecommendedAmountMM, cool.RecommendedAmountMM,
		"Moderate-band amounts scale with the adjusted requirement")
	assert.Contains(t, hot.EfficiencyTips, "Consider mulching to retain soil moisture")
}

func TestOptimize_UnknownStageUsesDefaultRequirement(t *testing.T) {
	optimizer := NewIrrigationOptimizer()

	plan := optimizer.Optimize(IrrigationConditions{
		SoilMoisture:  0.30,
		FieldCapacity: 0.4,
		WiltingPoint:  0.15,
		CropStage:     "budding",
	})

	assert.Equal(t, defaultStageRequirement, plan.BaseRequirement)
}

func TestOptimize_ZeroConditionsFallBackToLoamDefaults(t *testing.T) {
	optimizer := NewIrrigationOptimizer()

	plan := optimizer.Optimize(IrrigationConditions{})

	// Defaults 0.3 moisture, 0.4 capacity, 0.15 wilting → stress 0.6,
	// moderate band with no forecast adjustments.
	assert.InDelta(t, 0.6, plan.WaterStressLevel, 1e-9)
	assert.Equal(t, IrrigationModerate, plan.Urgency)
	assert.Equal(t, "within_3_days", plan.Timing)
	assert.InDelta(t, 360.0, plan.RecommendedAmountMM, 1e-9, "0.6 requirement * 1.0 ET * 600")
}
