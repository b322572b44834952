package prediction

import (
	"fmt"
	"math"
	"strings"
)

// YieldFeatures are the optional observation inputs of a yield prediction.
// Zero-valued pointers mean "not observed"; confidence scales with
// completeness.
type YieldFeatures struct {
	WeatherTempC      *float64 `json:"weather_temp_c,omitempty"`
	WeatherRainfallMM *float64 `json:"weather_rainfall_mm,omitempty"`
	WeatherHumidity   *float64 `json:"weather_humidity,omitempty"`
	WeatherGDD        *float64 `json:"weather_gdd,omitempty"`
	SoilPH            *float64 `json:"soil_ph,omitempty"`
	SoilOrganicMatter *float64 `json:"soil_om,omitempty"`
	SoilNitrogen      *float64 `json:"soil_n,omitempty"`
	SoilPhosphorus    *float64 `json:"soil_p,omitempty"`
	SatelliteNDVI     *float64 `json:"satellite_ndvi,omitempty"`
	SatelliteEVI      *float64 `json:"satellite_evi,omitempty"`
	FieldAreaHa       *float64 `json:"field_area_ha,omitempty"`
	PlantingDOY       *float64 `json:"planting_doy,omitempty"`
}

// YieldPrediction is the bounded model output.
type YieldPrediction struct {
	PredictedYieldTonsPerHa float64            `json:"predicted_yield_tons_per_ha"`
	Confidence              float64            `json:"confidence"` // 0-1
	LowerBound              float64            `json:"lower_bound"`
	UpperBound              float64            `json:"upper_bound"`
	StdDeviation            float64            `json:"std_deviation"`
	FeatureImportance       map[string]float64 `json:"feature_importance"`
	CropFactor              float64            `json:"crop_factor"`
}

type scaler struct {
	mean, std float64
}

type feature struct {
	name   string
	weight float64
	scale  scaler
	value  func(YieldFeatures) *float64
}

const baseYieldTonsPerHa = 8.5

var cropFactors = map[string]float64{
	"corn":    1.0,
	"soybean": 0.7,
	"wheat":   0.9,
	"rice":    1.1,
}

var yieldFeatures = []feature{
	{"weather_temp", 0.15, scaler{20.0, 8.0}, func(f YieldFeatures) *float64 { return f.WeatherTempC }},
	{"weather_rainfall", 0.25, scaler{500.0, 200.0}, func(f YieldFeatures) *float64 { return f.WeatherRainfallMM }},
	{"weather_humidity", 0.08, scaler{65.0, 15.0}, func(f YieldFeatures) *float64 { return f.WeatherHumidity }},
	{"weather_gdd", 0.20, scaler{1500.0, 400.0}, func(f YieldFeatures) *float64 { return f.WeatherGDD }},
	{"soil_ph", 0.10, scaler{6.8, 0.8}, func(f YieldFeatures) *float64 { return f.SoilPH }},
	{"soil_om", 0.12, scaler{3.0, 1.5}, func(f YieldFeatures) *float64 { return f.SoilOrganicMatter }},
	{"soil_n", 0.18, scaler{30.0, 15.0}, func(f YieldFeatures) *float64 { return f.SoilNitrogen }},
	{"soil_p", 0.08, scaler{25.0, 10.0}, func(f YieldFeatures) *float64 { return f.SoilPhosphorus }},
	{"satellite_ndvi", 0.30, scaler{0.7, 0.2}, func(f YieldFeatures) *float64 { return f.SatelliteNDVI }},
	{"satellite_evi", 0.15, scaler{0.5, 0.15}, func(f YieldFeatures) *float64 { return f.SatelliteEVI }},
	{"field_area", 0.05, scaler{100.0, 50.0}, func(f YieldFeatures) *float64 { return f.FieldAreaHa }},
	{"planting_doy", 0.08, scaler{120.0, 30.0}, func(f YieldFeatures) *float64 { return f.PlantingDOY }},
}

// YieldPredictor estimates crop yield from a normalized weighted feature
// model. Pure and stateless; safe for concurrent use.
type YieldPredictor struct{}

func NewYieldPredictor() *YieldPredictor {
	return &YieldPredictor{}
}

// Predict estimates yield for the crop from whatever features were observed.
// At least one feature must be supplied.
func (p *YieldPredictor) Predict(cropType string, features YieldFeatures) (YieldPrediction, error) {
	prediction := baseYieldTonsPerHa
	totalWeight := 0.0
	observed := 0

	contributions := make(map[string]float64)
	for _, f := range yieldFeatures {
		v := f.value(features)
		if v == nil {
			continue
		}
		observed++
		normalized := (*v - f.scale.mean) / f.scale.std
		prediction += normalized * f.weight
		totalWeight += math.Abs(f.weight)
		contributions[f.name] = math.Abs(normalized * f.weight)
	}

	if observed == 0 {
		return YieldPrediction{}, fmt.Errorf("yield prediction requires at least one observed feature")
	}

	cropFactor, ok := cropFactors[strings.ToLower(strings.TrimSpace(cropType))]
	if !ok {
		cropFactor = 1.0
	}
	prediction *= cropFactor
	if prediction < 0 {
		prediction = 0
	}

	// Confidence grows with feature completeness, capped at 0.95.
	completeness := float64(observed) / float64(len(yieldFeatures))
	confidence := math.Min(0.95, 0.6+completeness*0.35)
	uncertainty := 1 - confidence

	importance := make(map[string]float64, len(contributions))
	if totalWeight > 0 {
		for name, c := range contributions {
			importance[name] = c / totalWeight
		}
	}

	return YieldPrediction{
		PredictedYieldTonsPerHa: round2(prediction),
		Confidence:              round3(confidence),
		LowerBound:              round2(prediction * (1 - uncertainty*0.2)),
		UpperBound:              round2(prediction * (1 + uncertainty*0.2)),
		StdDeviation:            round2(prediction * uncertainty * 0.1),
		FeatureImportance:       importance,
		CropFactor:              cropFactor,
	}, nil
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
