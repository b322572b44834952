package weather

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeHours(base time.Time, points ...hourlyPoint) []hourlyPoint {
	for i := range points {
		points[i].Dt = base.Add(time.Duration(i) * time.Hour).Unix()
	}
	return points
}

func calmHour() hourlyPoint {
	return hourlyPoint{TempC: 20, Humidity: 55, WindSpeedKmh: 5, RainProbability: 5}
}

func windyHour() hourlyPoint {
	h := calmHour()
	h.WindSpeedKmh = 25
	return h
}

func TestSprayHourSuitable_Gates(t *testing.T) {
	ok, quality := sprayHourSuitable(calmHour())
	assert.True(t, ok)
	assert.Greater(t, quality, 0.0)

	rainy := calmHour()
	rainy.PrecipitationMM = 1.2
	ok, _ = sprayHourSuitable(rainy)
	assert.False(t, ok, "Active precipitation rules out spraying")

	windy := calmHour()
	windy.WindSpeedKmh = 18
	ok, _ = sprayHourSuitable(windy)
	assert.False(t, ok, "Drift risk rules out spraying above the wind limit")

	cold := calmHour()
	cold.TempC = 2
	ok, _ = sprayHourSuitable(cold)
	assert.False(t, ok, "Products lose efficacy below the temperature floor")
}

func TestHarvestHourSuitable_Gates(t *testing.T) {
	ok, _ := harvestHourSuitable(calmHour())
	assert.True(t, ok)

	humid := calmHour()
	humid.Humidity = 80
	ok, _ = harvestHourSuitable(humid)
	assert.False(t, ok, "High humidity means wet grain")

	showers := calmHour()
	showers.RainProbability = 25
	ok, _ = harvestHourSuitable(showers)
	assert.False(t, ok, "Rain probability above 20% blocks harvest")
}

func TestSynthesizeWindows_GroupsConsecutiveHours(t *testing.T) {
	base := time.Date(2026, 7, 15, 6, 0, 0, 0, time.UTC)
	hours := makeHours(base,
		calmHour(), calmHour(), calmHour(), // 3-hour run
		windyHour(),            // break
		calmHour(),             // 1-hour run, below minHours
		windyHour(),            // break
		calmHour(), calmHour(), // trailing 2-hour run
	)

	windows := synthesizeWindows(hours, sprayHourSuitable, 2)

	require.Len(t, windows, 2, "Only runs of at least minHours become windows")
	assert.Equal(t, base, windows[0].Start)
	assert.Equal(t, 3.0, windows[0].DurationHours)
	assert.Equal(t, base.Add(6*time.Hour), windows[1].Start)
	assert.Equal(t, 2.0, windows[1].DurationHours)
}

func TestSynthesizeWindows_ConfidenceDecaysWithLeadTime(t *testing.T) {
	base := time.Date(2026, 7, 15, 6, 0, 0, 0, time.UTC)

	hours := make([]hourlyPoint, 96)
	for i := range hours {
		h := windyHour()
		// One early and one late 4-hour window.
		if (i >= 2 && i < 6) || (i >= 90 && i < 94) {
			h = calmHour()
		}
		h.Dt = base.Add(time.Duration(i) * time.Hour).Unix()
		hours[i] = h
	}

	windows := synthesizeWindows(hours, sprayHourSuitable, 2)

	require.Len(t, windows, 2)
	assert.Greater(t, windows[0].Confidence, windows[1].Confidence,
		"Forecast confidence decays with lead time")
	for _, w := range windows {
		assert.GreaterOrEqual(t, w.Confidence, 40.0)
		assert.LessOrEqual(t, w.Confidence, 95.0)
	}
}

func TestSynthesizeWindows_EmptyInput(t *testing.T) {
	assert.Empty(t, synthesizeWindows(nil, sprayHourSuitable, 2))
}

func TestSynthesizeWindows_QualityIsRunAverage(t *testing.T) {
	base := time.Date(2026, 7, 15, 6, 0, 0, 0, time.UTC)
	hours := makeHours(base, calmHour(), calmHour(), calmHour())

	windows := synthesizeWindows(hours, sprayHourSuitable, 2)

	require.Len(t, windows, 1)
	_, hourQuality := sprayHourSuitable(calmHour())
	assert.InDelta(t, hourQuality, windows[0].QualityScore, 0.001,
		"Identical hours average to the per-hour quality")
}
