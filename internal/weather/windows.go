package weather

import (
	"time"

	"decision-service/internal/models"
)

// Suitability gates per operation.
const (
	sprayMaxWindKmh    = 15.0
	sprayMaxRainProb   = 30.0
	sprayMinTempC      = 5.0
	sprayMaxTempC      = 32.0
	harvestMaxWindKmh  = 30.0
	harvestMaxRainProb = 20.0
	harvestMaxHumidity = 75.0
)

type hourGate func(hourlyPoint) (suitable bool, quality float64)

// sprayHourSuitable gates an hour for spraying and scores its quality.
func sprayHourSuitable(h hourlyPoint) (bool, float64) {
	if h.PrecipitationMM > 0 || h.RainProbability >= sprayMaxRainProb {
		return false, 0
	}
	if h.WindSpeedKmh >= sprayMaxWindKmh {
		return false, 0
	}
	if h.TempC < sprayMinTempC || h.TempC > sprayMaxTempC {
		return false, 0
	}

	quality := 100.0
	quality -= h.WindSpeedKmh / sprayMaxWindKmh * 30
	quality -= h.RainProbability / sprayMaxRainProb * 30
	if h.Humidity > 85 {
		quality -= 10
	}
	return true, models.Clamp(quality, 0, 100)
}

// harvestHourSuitable gates an hour for harvesting and scores its quality.
func harvestHourSuitable(h hourlyPoint) (bool, float64) {
	if h.PrecipitationMM > 0 || h.RainProbability >= harvestMaxRainProb {
		return false, 0
	}
	if h.WindSpeedKmh >= harvestMaxWindKmh {
		return false, 0
	}
	if h.Humidity >= harvestMaxHumidity {
		return false, 0
	}

	quality := 100.0
	quality -= h.RainProbability / harvestMaxRainProb * 40
	quality -= h.Humidity / harvestMaxHumidity * 20
	return true, models.Clamp(quality, 0, 100)
}

// synthesizeWindows groups consecutive suitable hours into operation windows
// of at least minHours duration. Window confidence decays with forecast lead
// time.
func synthesizeWindows(hours []hourlyPoint, gate hourGate, minHours int) []models.Window {
	var windows []models.Window
	if len(hours) == 0 {
		return windows
	}

	now := time.Unix(hours[0].Dt, 0)

	var runStart int = -1
	var runQuality float64
	flush := func(endIdx int) {
		if runStart < 0 {
			return
		}
		runLen := endIdx - runStart
		if runLen >= minHours {
			start := time.Unix(hours[runStart].Dt, 0).UTC()
			end := time.Unix(hours[endIdx-1].Dt, 0).UTC().Add(time.Hour)
			leadHours := start.Sub(now).Hours()
			windows = append(windows, models.Window{
				Start:         start,
				End:           end,
				DurationHours: end.Sub(start).Hours(),
				QualityScore:  runQuality / float64(runLen),
				Confidence:    models.Clamp(95-leadHours*0.4, 40, 95),
			})
		}
		runStart = -1
		runQuality = 0
	}

	for i, h := range hours {
		suitable, quality := gate(h)
		if !suitable {
			flush(i)
			continue
		}
		if runStart < 0 {
			runStart = i
		}
		runQuality += quality
	}
	flush(len(hours))

	return windows
}
