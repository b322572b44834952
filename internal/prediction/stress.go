package prediction

import (
	"fmt"
	"math"
)

// NDVIObservation is one satellite vegetation-index sample.
type NDVIObservation struct {
	Date string  `json:"date"`
	NDVI float64 `json:"ndvi"`
}

// StressLevel classifies mean vegetation health.
type StressLevel string

const (
	StressLow      StressLevel = "low"
	StressModerate StressLevel = "moderate"
	StressHigh     StressLevel = "high"
	StressSevere   StressLevel = "severe"
)

// TrendDirection classifies the NDVI slope over the observation window.
type TrendDirection string

const (
	TrendImproving TrendDirection = "improving"
	TrendDeclining TrendDirection = "declining"
	TrendStable    TrendDirection = "stable"
)

// NDVIAnomaly is an observation further than two standard deviations from
// the series mean.
type NDVIAnomaly struct {
	Date      string  `json:"date"`
	NDVI      float64 `json:"ndvi"`
	Deviation float64 `json:"deviation"`
	Type      string  `json:"type"` // low or high
}

// StressStatistics summarizes the NDVI series.
type StressStatistics struct {
	MeanNDVI               float64 `json:"mean_ndvi"`
	StdNDVI                float64 `json:"std_ndvi"`
	MinNDVI                float64 `json:"min_ndvi"`
	MaxNDVI                float64 `json:"max_ndvi"`
	CoefficientOfVariation float64 `json:"coefficient_of_variation"`
}

// StressTrend carries the fitted slope and its rough significance band.
type StressTrend struct {
	Direction    TrendDirection `json:"direction"`
	Slope        float64        `json:"slope"`
	Significance string         `json:"significance"` // high, moderate or low
}

// StressAnalysis is the stress-pattern result for one field.
type StressAnalysis struct {
	StressLevel     StressLevel      `json:"stress_level"`
	Confidence      float64          `json:"confidence"` // 0-1
	Statistics      StressStatistics `json:"statistics"`
	Trend           StressTrend      `json:"trend"`
	Anomalies       []NDVIAnomaly    `json:"anomalies"`
	Recommendations []string         `json:"recommendations"`
	Observations    int              `json:"observations"`
	DateRange       string           `json:"date_range"`
}

// StressAnalyzer classifies crop stress from an NDVI time series. Pure and
// stateless; safe for concurrent use.
type StressAnalyzer struct{}

func NewStressAnalyzer() *StressAnalyzer {
	return &StressAnalyzer{}
}

// Analyze classifies crop stress from a satellite NDVI time series. A series
// needs at least three observations; fewer is an error, not a low-confidence
// answer.
func (a *StressAnalyzer) Analyze(observations []NDVIObservation) (*StressAnalysis, error) {
	if len(observations) == 0 {
		return nil, fmt.Errorf("no satellite observations provided")
	}
	if len(observations) < 3 {
		return nil, fmt.Errorf("at least 3 observations required for stress analysis, got %d", len(observations))
	}

	n := float64(len(observations))

	var sum float64
	minNDVI := math.Inf(1)
	maxNDVI := math.Inf(-1)
	for _, obs := range observations {
		sum += obs.NDVI
		minNDVI = math.Min(minNDVI, obs.NDVI)
		maxNDVI = math.Max(maxNDVI, obs.NDVI)
	}
	mean := sum / n

	var sumSq float64
	for _, obs := range observations {
		d := obs.NDVI - mean
		sumSq += d * d
	}
	std := math.Sqrt(sumSq / n)

	slope := fitSlope(observations, mean)

	level := StressSevere
	switch {
	case mean > 0.7:
		level = StressLow
	case mean > 0.5:
		level = StressModerate
	case mean > 0.3:
		level = StressHigh
	}

	trend := TrendStable
	switch {
	case slope > 0.01:
		trend = TrendImproving
	case slope < -0.01:
		trend = TrendDeclining
	}

	significance := "low"
	switch {
	case math.Abs(slope) > 0.02:
		significance = "high"
	case math.Abs(slope) > 0.005:
		significance = "moderate"
	}

	anomalies := []NDVIAnomaly{}
	threshold := 2 * std
	for _, obs := range observations {
		deviation := math.Abs(obs.NDVI - mean)
		if deviation <= threshold {
			continue
		}
		anomalyType := "high"
		if obs.NDVI < mean {
			anomalyType = "low"
		}
		anomalies = append(anomalies, NDVIAnomaly{
			Date:      obs.Date,
			NDVI:      obs.NDVI,
			Deviation: deviation,
			Type:      anomalyType,
		})
	}

	cv := 0.0
	if mean > 0 {
		cv = std / mean
	}

	return &StressAnalysis{
		StressLevel: level,
		Confidence:  math.Min(0.95, 0.7+(1-cv)*0.25),
		Statistics: StressStatistics{
			MeanNDVI:               mean,
			StdNDVI:                std,
			MinNDVI:                minNDVI,
			MaxNDVI:                maxNDVI,
			CoefficientOfVariation: cv,
		},
		Trend: StressTrend{
			Direction:    trend,
			Slope:        slope,
			Significance: significance,
		},
		Anomalies:       anomalies,
		Recommendations: stressRecommendations(level, trend, len(anomalies)),
		Observations:    len(observations),
		DateRange:       fmt.Sprintf("%s to %s", observations[0].Date, observations[len(observations)-1].Date),
	}, nil
}

// fitSlope is the least-squares slope of NDVI over observation index.
func fitSlope(observations []NDVIObservation, meanY float64) float64 {
	n := float64(len(observations))
	meanX := (n - 1) / 2

	var num, den float64
	for i, obs := range observations {
		dx := float64(i) - meanX
		num += dx * (obs.NDVI - meanY)
		den += dx * dx
	}
	if den == 0 {
		return 0
	}
	return num / den
}

func stressRecommendations(level StressLevel, trend TrendDirection, anomalyCount int) []string {
	recs := []string{}

	switch level {
	case StressSevere:
		recs = append(recs,
			"Immediate irrigation required to prevent crop damage",
			"Consider emergency nutrient application",
			"Investigate potential pest or disease issues")
	case StressHigh:
		recs = append(recs,
			"Increase irrigation frequency",
			"Monitor for pest and disease pressure",
			"Consider stress-reducing treatments")
	case StressModerate:
		recs = append(recs,
			"Optimize irrigation timing",
			"Monitor crop development closely")
	}

	switch trend {
	case TrendDeclining:
		recs = append(recs,
			"Investigate causes of declining vegetation health",
			"Consider soil testing for nutrient deficiencies")
	case TrendImproving:
		recs = append(recs, "Continue current management practices")
	}

	if anomalyCount > 2 {
		recs = append(recs,
			"High variability detected - investigate field uniformity",
			"Consider precision management approaches")
	}

	return recs
}
