package engine

import (
	"testing"
	"time"

	"decision-service/internal/finance"
	"decision-service/internal/models"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

var testNow = time.Date(2026, 7, 15, 8, 0, 0, 0, time.UTC)

func daysAgoUnix(days int) *int64 {
	ts := testNow.Add(-time.Duration(days) * 24 * time.Hour).Unix()
	return &ts
}

func createTestField(name string, areaHectares float64, cropType string) models.Field {
	return models.Field{
		ID:           uuid.New(),
		FarmID:       uuid.New(),
		Name:         name,
		AreaHectares: areaHectares,
		CropType:     cropType,
	}
}

func createTestWindow(startInHours, durationHours, quality, confidence float64) models.Window {
	start := testNow.Add(time.Duration(startInHours) * time.Hour)
	end := start.Add(time.Duration(durationHours) * time.Hour)
	return models.Window{
		Start:         start,
		End:           end,
		DurationHours: durationHours,
		QualityScore:  quality,
		Confidence:    confidence,
	}
}

func createBaseContext(fields ...models.Field) models.FarmContext {
	location := orb.Point{-93.6, 41.5}
	return models.FarmContext{
		FarmID:      uuid.New(),
		FarmName:    "Test Farm",
		Location:    &location,
		Fields:      fields,
		Weather:     models.CurrentWeather{TemperatureC: 22, Humidity: 60, WindSpeedKmh: 8},
		GeneratedAt: testNow,
	}
}

func testCalculator() *finance.ImpactCalculator {
	return finance.NewImpactCalculator(nil)
}

// ============================================================================
// TEST SUITE 1: SPRAY EVALUATOR
// ============================================================================

func TestSprayEvaluator_UrgentFungicideWhenLongOverdue(t *testing.T) {
	field := createTestField("North 40", 50, "corn")
	field.LastSprayDate = daysAgoUnix(40)

	fc := createBaseContext(field)
	fc.Weather.Humidity = 75
	fc.SprayWindows = []models.Window{createTestWindow(4, 6, 85, 90)}

	decisions := NewSprayEvaluator(testCalculator()).Evaluate(fc, testNow)

	require.Len(t, decisions, 1)
	d := decisions[0]
	assert.Equal(t, models.DecisionSpray, d.Type)
	assert.Equal(t, models.PriorityUrgent, d.Priority, "40 days overdue crosses the urgent threshold")
	require.NotNil(t, d.Spray)
	assert.Equal(t, models.SprayFungicide, d.Spray.SprayType, "High humidity selects fungicide")
	assert.Equal(t, 40, d.Spray.DaysSinceLastSpray)
	assert.InDelta(t, 0.9, d.Spray.ExpectedEfficacy, 0.001, "Efficacy mirrors window confidence")
	require.NotNil(t, d.Timing.MustCompleteBy, "Urgent decisions carry a hard deadline")
	assert.Equal(t, testNow.Add(48*time.Hour), *d.Timing.MustCompleteBy)
	assert.Greater(t, d.Financial.EstimatedRevenue, 0.0)
}

func TestSprayEvaluator_RecentSprayProducesNothing(t *testing.T) {
	field := createTestField("South 20", 20, "corn")
	field.LastSprayDate = daysAgoUnix(5)

	fc := createBaseContext(field)
	fc.Weather.Humidity = 80
	fc.SprayWindows = []models.Window{createTestWindow(4, 6, 85, 90)}

	decisions := NewSprayEvaluator(testCalculator()).Evaluate(fc, testNow)

	assert.Empty(t, decisions, "A field sprayed 5 days ago is inside every interval")
}

func TestSprayEvaluator_NoWindowGatesEverything(t *testing.T) {
	field := createTestField("North 40", 50, "corn")
	field.LastSprayDate = daysAgoUnix(40)

	fc := createBaseContext(field)
	fc.Weather.Humidity = 80

	decisions := NewSprayEvaluator(testCalculator()).Evaluate(fc, testNow)

	assert.Empty(t, decisions, "No spray window means no spray decisions, however overdue")
}

func TestSprayEvaluator_InsecticideInDryConditions(t *testing.T) {
	field := createTestField("East 15", 15, "soybean")
	field.LastSprayDate = daysAgoUnix(25)

	fc := createBaseContext(field)
	fc.Weather.Humidity = 50
	fc.SprayWindows = []models.Window{createTestWindow(4, 6, 80, 85)}

	decisions := NewSprayEvaluator(testCalculator()).Evaluate(fc, testNow)

	require.Len(t, decisions, 1)
	assert.Equal(t, models.SprayInsecticide, decisions[0].Spray.SprayType,
		"Low humidity falls through to the insecticide interval")
	assert.Equal(t, models.PriorityHigh, decisions[0].Priority)
}

func TestSprayEvaluator_NeverSprayedUsesSentinel(t *testing.T) {
	field := createTestField("New Ground", 10, "wheat")

	fc := createBaseContext(field)
	fc.Weather.Humidity = 75
	fc.SprayWindows = []models.Window{createTestWindow(4, 6, 80, 85)}

	decisions := NewSprayEvaluator(testCalculator()).Evaluate(fc, testNow)

	require.Len(t, decisions, 1)
	assert.Equal(t, models.NeverSprayedDays, decisions[0].Spray.DaysSinceLastSpray)
	assert.Equal(t, models.PriorityUrgent, decisions[0].Priority)
}

func TestSprayEvaluator_SkipsMalformedFields(t *testing.T) {
	noArea := createTestField("Broken", 0, "corn")
	noArea.LastSprayDate = daysAgoUnix(40)
	noCrop := createTestField("Fallow", 12, "")
	noCrop.LastSprayDate = daysAgoUnix(40)
	good := createTestField("Good", 12, "corn")
	good.LastSprayDate = daysAgoUnix(40)

	fc := createBaseContext(noArea, noCrop, good)
	fc.Weather.Humidity = 75
	fc.SprayWindows = []models.Window{createTestWindow(4, 6, 80, 85)}

	decisions := NewSprayEvaluator(testCalculator()).Evaluate(fc, testNow)

	require.Len(t, decisions, 1, "Malformed fields are skipped, not fatal")
	assert.Equal(t, "Good", decisions[0].Title[len(decisions[0].Title)-4:])
}

// ============================================================================
// TEST SUITE 2: HARVEST EVALUATOR
// ============================================================================

func TestHarvestEvaluator_HighPriorityNearMaturity(t *testing.T) {
	field := createTestField("North 40", 40, "corn")
	field.PlantingDate = daysAgoUnix(115) // 115/120 = 95.8%

	fc := createBaseContext(field)
	fc.HarvestWindows = []models.Window{createTestWindow(12, 8, 80, 85)}

	decisions := NewHarvestEvaluator(testCalculator()).Evaluate(fc, testNow)

	require.Len(t, decisions, 1)
	d := decisions[0]
	assert.Equal(t, models.DecisionHarvest, d.Type)
	assert.Equal(t, models.PriorityHigh, d.Priority)
	require.NotNil(t, d.Harvest)
	assert.InDelta(t, 95.8, d.Harvest.MaturityProgress, 0.1)
	assert.Equal(t, 18.0, d.Harvest.EstimatedMoisture, "Not fully mature grain is still wet")
	assert.InDelta(t, 20.0, d.Harvest.WeatherRisk, 0.001, "Weather risk is the window quality complement")
	assert.Nil(t, d.Timing.MustCompleteBy, "High priority has no hard deadline")
}

func TestHarvestEvaluator_UrgentPastFullMaturity(t *testing.T) {
	field := createTestField("South 30", 30, "corn")
	field.PlantingDate = daysAgoUnix(126) // 105%

	fc := createBaseContext(field)
	fc.HarvestWindows = []models.Window{createTestWindow(12, 8, 80, 85)}

	decisions := NewHarvestEvaluator(testCalculator()).Evaluate(fc, testNow)

	require.Len(t, decisions, 1)
	assert.Equal(t, models.PriorityUrgent, decisions[0].Priority)
	assert.Equal(t, 14.0, decisions[0].Harvest.EstimatedMoisture, "Past maturity the grain has field-dried")
	require.NotNil(t, decisions[0].Timing.MustCompleteBy)
}

func TestHarvestEvaluator_ImmatureOrUndatedFieldsSkipped(t *testing.T) {
	immature := createTestField("Late Plant", 25, "corn")
	immature.PlantingDate = daysAgoUnix(60)
	undated := createTestField("No Records", 25, "corn")

	fc := createBaseContext(immature, undated)
	fc.HarvestWindows = []models.Window{createTestWindow(12, 8, 80, 85)}

	decisions := NewHarvestEvaluator(testCalculator()).Evaluate(fc, testNow)

	assert.Empty(t, decisions, "Maturity below 90% or unknown planting date yields nothing")
}

func TestHarvestEvaluator_NoWindowGatesEverything(t *testing.T) {
	field := createTestField("North 40", 40, "corn")
	field.PlantingDate = daysAgoUnix(126)

	fc := createBaseContext(field)

	decisions := NewHarvestEvaluator(testCalculator()).Evaluate(fc, testNow)

	assert.Empty(t, decisions)
}

// ============================================================================
// TEST SUITE 3: IRRIGATION EVALUATOR
// ============================================================================

func createDryForecast(dailyRainMM, tomorrowMaxC float64) []models.ForecastDay {
	days := make([]models.ForecastDay, 7)
	for i := range days {
		days[i] = models.ForecastDay{
			Date:            testNow.Add(time.Duration(i+1) * 24 * time.Hour).Unix(),
			TempMaxC:        tomorrowMaxC,
			PrecipitationMM: dailyRainMM,
		}
	}
	return days
}

func TestIrrigationEvaluator_HighPriorityWhenVeryDry(t *testing.T) {
	field := createTestField("Pivot 1", 30, "corn")

	fc := createBaseContext(field)
	fc.Forecast = createDryForecast(0.5, 30) // 3.5mm over 7 days

	decisions := NewIrrigationEvaluator(testCalculator()).Evaluate(fc, testNow)

	require.Len(t, decisions, 1)
	d := decisions[0]
	assert.Equal(t, models.DecisionIrrigate, d.Type)
	assert.Equal(t, models.PriorityHigh, d.Priority, "Under 5mm of forecast rain is high priority")
	require.NotNil(t, d.Irrigate)
	assert.InDelta(t, 3.5, d.Irrigate.RainfallNext7DaysMM, 0.001)
	assert.InDelta(t, 65.0, d.Irrigate.StressLevel, 0.001, "Stress is 100 minus 10 per forecast millimeter")
	assert.Equal(t, 25.0, d.Irrigate.ApplicationMM)
}

func TestIrrigationEvaluator_MediumPriorityModeratelyDry(t *testing.T) {
	field := createTestField("Pivot 2", 30, "corn")

	fc := createBaseContext(field)
	fc.Forecast = createDryForecast(1.0, 28) // 7mm over 7 days

	decisions := NewIrrigationEvaluator(testCalculator()).Evaluate(fc, testNow)

	require.Len(t, decisions, 1)
	assert.Equal(t, models.PriorityMedium, decisions[0].Priority)
	assert.InDelta(t, 30.0, decisions[0].Irrigate.StressLevel, 0.001)
}

func TestIrrigationEvaluator_RainOrCoolWeatherSuppresses(t *testing.T) {
	field := createTestField("Pivot 3", 30, "corn")

	wet := createBaseContext(field)
	wet.Forecast = createDryForecast(2.0, 30) // 14mm
	assert.Empty(t, NewIrrigationEvaluator(testCalculator()).Evaluate(wet, testNow),
		"Enough forecast rain suppresses irrigation")

	cool := createBaseContext(field)
	cool.Forecast = createDryForecast(0.5, 22)
	assert.Empty(t, NewIrrigationEvaluator(testCalculator()).Evaluate(cool, testNow),
		"Cool weather suppresses irrigation even when dry")

	noForecast := createBaseContext(field)
	assert.Empty(t, NewIrrigationEvaluator(testCalculator()).Evaluate(noForecast, testNow),
		"Missing forecast yields nothing rather than guessing")
}

// ============================================================================
// TEST SUITE 4: LIVESTOCK EVALUATOR
// ============================================================================

func TestLivestockEvaluator_OverdueVaccination(t *testing.T) {
	fc := createBaseContext(createTestField("Pasture", 20, "corn"))
	fc.Livestock = &models.Livestock{Herds: []models.HerdRecord{
		{Species: "cattle", Count: 120, LastVaccinationDate: daysAgoUnix(400)},
	}}

	decisions := NewLivestockEvaluator(testCalculator()).Evaluate(fc, testNow)

	require.Len(t, decisions, 1)
	d := decisions[0]
	assert.Equal(t, models.DecisionLivestockHealth, d.Type)
	assert.Equal(t, models.PriorityHigh, d.Priority)
	require.NotNil(t, d.Livestock)
	assert.Equal(t, 400, d.Livestock.DaysSinceVaccination)
	assert.Equal(t, 120, d.Livestock.AnimalCount)
	assert.Nil(t, d.FieldID, "Herd decisions are not tied to a field")
}

func TestLivestockEvaluator_CurrentVaccinationOrNoHerds(t *testing.T) {
	fc := createBaseContext(createTestField("Pasture", 20, "corn"))
	fc.Livestock = &models.Livestock{Herds: []models.HerdRecord{
		{Species: "cattle", Count: 120, LastVaccinationDate: daysAgoUnix(200)},
		{Species: "sheep", Count: 40, LastVaccinationDate: nil},
		{Species: "goats", Count: 0, LastVaccinationDate: daysAgoUnix(500)},
	}}

	decisions := NewLivestockEvaluator(testCalculator()).Evaluate(fc, testNow)
	assert.Empty(t, decisions, "Current herds, undated herds and empty herds all yield nothing")

	fc.Livestock = nil
	assert.Empty(t, NewLivestockEvaluator(testCalculator()).Evaluate(fc, testNow),
		"Farms without livestock are fine")
}

// ============================================================================
// TEST SUITE 5: MARKET EVALUATOR
// ============================================================================

func TestMarketEvaluator_SellSignalSizedByProduction(t *testing.T) {
	field := createTestField("North 40", 10, "corn")

	fc := createBaseContext(field)
	fc.MarketFeed = []models.MarketOpportunity{
		{Crop: "corn", CurrentPrice: 220, PriceChangePct: 8, Trend: models.TrendRising, Recommendation: models.MarketSell},
	}

	decisions := NewMarketEvaluator(testCalculator()).Evaluate(fc, testNow)

	require.Len(t, decisions, 1)
	d := decisions[0]
	assert.Equal(t, models.DecisionMarketSell, d.Type)
	assert.Equal(t, models.PriorityHigh, d.Priority, "Above 5% price change is high priority")
	require.NotNil(t, d.Market)
	assert.Equal(t, 220.0, d.Market.CurrentPrice)

	// 10ha of corn at the 8.5 t/ha reference yield.
	expectedUpside := 85.0 * 220 * 0.08
	assert.InDelta(t, expectedUpside, d.Financial.EstimatedRevenue, 0.01)
	assert.Equal(t, 0.0, d.Financial.ROI, "Selling has no intervention cost, so ROI stays at its zero-cost value")
}

func TestMarketEvaluator_OnlySellSignalsActionable(t *testing.T) {
	fc := createBaseContext(createTestField("North 40", 10, "corn"))
	fc.MarketFeed = []models.MarketOpportunity{
		{Crop: "corn", CurrentPrice: 220, PriceChangePct: 8, Recommendation: models.MarketHold},
		{Crop: "wheat", CurrentPrice: 250, PriceChangePct: -4, Recommendation: models.MarketBuy},
	}

	decisions := NewMarketEvaluator(testCalculator()).Evaluate(fc, testNow)

	assert.Empty(t, decisions, "HOLD and BUY signals produce no decisions")
}

func TestMarketEvaluator_SmallChangeIsMediumPriority(t *testing.T) {
	fc := createBaseContext(createTestField("North 40", 10, "corn"))
	fc.MarketFeed = []models.MarketOpportunity{
		{Crop: "corn", CurrentPrice: 210, PriceChangePct: 3, Recommendation: models.MarketSell},
	}

	decisions := NewMarketEvaluator(testCalculator()).Evaluate(fc, testNow)

	require.Len(t, decisions, 1)
	assert.Equal(t, models.PriorityMedium, decisions[0].Priority)
}
