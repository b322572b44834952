package templates

import "fmt"

// irrigationSchedulingTemplate answers "irrigate now or hold" from soil and
// forecast observations.
func irrigationSchedulingTemplate() Template {
	minPct, maxPct := numRange(0, 100)
	minMM, maxMM := numRange(0, 200)

	return Template{
		ID:          "irrigation_scheduling",
		Name:        "Irrigation Scheduling",
		Description: "Evaluates whether a field needs irrigation given soil moisture and the forecast.",
		Inputs: []InputField{
			{Name: "soil_moisture_pct", Description: "Current soil moisture as percent of field capacity", Type: InputNumber, Required: true, Min: minPct, Max: maxPct},
			{Name: "rainfall_forecast_mm", Description: "Forecast rainfall over the next 7 days", Type: InputNumber, Required: true, Min: minMM, Max: maxMM},
			{Name: "temperature_max_c", Description: "Forecast maximum temperature tomorrow", Type: InputNumber, Required: false},
			{Name: "crop_stage", Description: "Current crop stage (vegetative, flowering, grain_fill)", Type: InputString, Required: false},
		},
		Evaluate: evaluateIrrigationScheduling,
	}
}

func evaluateIrrigationScheduling(in Inputs) DecisionRecommendation {
	soilMoisture := in.Number("soil_moisture_pct", 50)
	rainfall := in.Number("rainfall_forecast_mm", 0)
	tempMax := in.Number("temperature_max_c", 20)
	stage := in.String("crop_stage", "vegetative")

	var reasoning, risks []string
	score := 0.0

	switch {
	case soilMoisture < 30:
		score += 40
		reasoning = append(reasoning, fmt.Sprintf("Soil moisture at %.0f%% of capacity is in the stress zone", soilMoisture))
	case soilMoisture < 50:
		score += 20
		reasoning = append(reasoning, fmt.Sprintf("Soil moisture at %.0f%% is trending low", soilMoisture))
	default:
		score -= 25
		reasoning = append(reasoning, fmt.Sprintf("Soil moisture at %.0f%% is adequate", soilMoisture))
	}

	if rainfall < 10 {
		score += 25
		reasoning = append(reasoning, fmt.Sprintf("Only %.1fmm of rain forecast over 7 days", rainfall))
	} else {
		score -= 20
		reasoning = append(reasoning, fmt.Sprintf("%.1fmm of forecast rain will recharge the profile", rainfall))
		risks = append(risks, "Irrigating ahead of rain wastes water and can saturate the root zone")
	}

	if tempMax > 30 {
		score += 15
		reasoning = append(reasoning, fmt.Sprintf("Tomorrow's high of %.0f°C accelerates evapotranspiration", tempMax))
	}

	if stage == "flowering" || stage == "grain_fill" {
		score += 15
		reasoning = append(reasoning, fmt.Sprintf("The %s stage is the most yield-sensitive to water stress", stage))
	}

	proceed := score >= 45
	timing := "Hold; recheck soil moisture after the forecast period"
	if proceed {
		timing = "Irrigate within 24-48 hours, overnight or early morning"
	}

	return DecisionRecommendation{
		Proceed:    proceed,
		Confidence: clampConfidence(40 + score/2),
		Reasoning:  reasoning,
		Risks:      risks,
		Timing:     timing,
		Checklist: []string{
			"Verify pump and line pressure",
			"Confirm the water allocation covers the planned volume",
			"Split large fields into zones by soil type",
			"Record applied depth for the water balance",
		},
	}
}
