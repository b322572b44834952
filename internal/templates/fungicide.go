package templates

import "fmt"

// fungicideApplicationTemplate answers "should I spray fungicide now" from
// manually supplied field observations.
func fungicideApplicationTemplate() Template {
	minDays, maxDays := numRange(0, 999)
	minPct, maxPct := numRange(0, 100)

	return Template{
		ID:          "fungicide_application",
		Name:        "Fungicide Application",
		Description: "Evaluates whether conditions justify a fungicide application on a field.",
		Inputs: []InputField{
			{Name: "days_since_last_spray", Description: "Days since the last fungicide application", Type: InputNumber, Required: true, Min: minDays, Max: maxDays},
			{Name: "humidity_pct", Description: "Current relative humidity", Type: InputNumber, Required: true, Min: minPct, Max: maxPct},
			{Name: "rain_probability_pct", Description: "Rain probability over the next 24 hours", Type: InputNumber, Required: false, Min: minPct, Max: maxPct},
			{Name: "disease_observed", Description: "Visible disease lesions in the canopy", Type: InputBoolean, Required: false},
		},
		Evaluate: evaluateFungicide,
	}
}

func evaluateFungicide(in Inputs) DecisionRecommendation {
	days := in.Number("days_since_last_spray", 0)
	humidity := in.Number("humidity_pct", 0)
	rainProb := in.Number("rain_probability_pct", 0)
	diseaseObserved := in.Bool("disease_observed", false)

	var reasoning, risks []string
	score := 0.0

	if days > 14 {
		score += 35
		reasoning = append(reasoning, fmt.Sprintf("Coverage has lapsed: %.0f days since the last application exceeds the 14-day protection interval", days))
	} else {
		reasoning = append(reasoning, fmt.Sprintf("Residual protection likely still active (%.0f days since application)", days))
	}

	if humidity > 70 {
		score += 35
		reasoning = append(reasoning, fmt.Sprintf("Humidity of %.0f%% favors fungal development", humidity))
	} else {
		reasoning = append(reasoning, fmt.Sprintf("Humidity of %.0f%% gives low infection pressure", humidity))
	}

	if diseaseObserved {
		score += 30
		reasoning = append(reasoning, "Visible lesions indicate active infection; curative timing matters")
	}

	if rainProb > 40 {
		score -= 20
		risks = append(risks, fmt.Sprintf("%.0f%% rain probability risks wash-off within the rainfast period", rainProb))
	}
	if humidity > 85 {
		risks = append(risks, "Very high humidity may sustain pressure even after treatment; plan a follow-up scout")
	}

	proceed := score >= 50
	timing := "Hold and re-scout in 3-5 days"
	if proceed {
		timing = "Apply within the next 48 hours, in the morning once leaves are dry"
	}

	return DecisionRecommendation{
		Proceed:    proceed,
		Confidence: clampConfidence(40 + score/2),
		Reasoning:  reasoning,
		Risks:      risks,
		Timing:     timing,
		Checklist: []string{
			"Confirm product rainfast window against the forecast",
			"Mix at label rate for the crop stage",
			"Check sprayer calibration",
			"Record the application for the re-entry interval",
		},
	}
}

func clampConfidence(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
