package templates

import "fmt"

// harvestTimingTemplate answers "harvest now or wait" from maturity, moisture
// and forecast inputs.
func harvestTimingTemplate() Template {
	minPct, maxPct := numRange(0, 200)
	minMoist, maxMoist := numRange(5, 40)
	minDays, maxDays := numRange(0, 14)

	return Template{
		ID:          "harvest_timing",
		Name:        "Harvest Timing",
		Description: "Evaluates whether a field should be harvested now or left to dry down.",
		Inputs: []InputField{
			{Name: "maturity_pct", Description: "Crop maturity progress in percent", Type: InputNumber, Required: true, Min: minPct, Max: maxPct},
			{Name: "grain_moisture_pct", Description: "Measured grain moisture", Type: InputNumber, Required: true, Min: minMoist, Max: maxMoist},
			{Name: "rain_days_ahead", Description: "Forecast rain days in the next week", Type: InputNumber, Required: false, Min: minDays, Max: maxDays},
			{Name: "storage_available", Description: "On-farm drying/storage capacity available", Type: InputBoolean, Required: false},
		},
		Evaluate: evaluateHarvestTiming,
	}
}

func evaluateHarvestTiming(in Inputs) DecisionRecommendation {
	maturity := in.Number("maturity_pct", 0)
	moisture := in.Number("grain_moisture_pct", 20)
	rainDays := in.Number("rain_days_ahead", 0)
	storage := in.Bool("storage_available", false)

	var reasoning, risks []string
	score := 0.0

	switch {
	case maturity >= 100:
		score += 40
		reasoning = append(reasoning, fmt.Sprintf("Crop is fully mature at %.0f%%; field losses grow with every week of delay", maturity))
	case maturity >= 90:
		score += 25
		reasoning = append(reasoning, fmt.Sprintf("Crop is near maturity at %.0f%%", maturity))
	default:
		score -= 30
		reasoning = append(reasoning, fmt.Sprintf("Crop is only %.0f%% mature; harvesting now sacrifices yield", maturity))
	}

	switch {
	case moisture <= 15:
		score += 30
		reasoning = append(reasoning, fmt.Sprintf("Grain moisture of %.1f%% needs no drying", moisture))
	case moisture <= 18:
		score += 10
		reasoning = append(reasoning, fmt.Sprintf("Grain moisture of %.1f%% means moderate drying cost", moisture))
		if storage {
			score += 10
			reasoning = append(reasoning, "On-farm drying capacity absorbs the moisture penalty")
		}
	default:
		score -= 15
		risks = append(risks, fmt.Sprintf("Moisture of %.1f%% carries a significant drying charge", moisture))
	}

	if rainDays >= 2 {
		score += 25
		reasoning = append(reasoning, fmt.Sprintf("%.0f rain days ahead raise lodging and sprouting risk if harvest waits", rainDays))
		risks = append(risks, "Wet ground later in the week may close the field to equipment")
	}

	proceed := score >= 45
	timing := "Wait for further dry-down and re-test moisture in 4-7 days"
	if proceed {
		if rainDays >= 2 {
			timing = "Harvest immediately, ahead of the incoming rain"
		} else {
			timing = "Harvest within the next 3 days"
		}
	}

	return DecisionRecommendation{
		Proceed:    proceed,
		Confidence: clampConfidence(40 + score/2),
		Reasoning:  reasoning,
		Risks:      risks,
		Timing:     timing,
		Checklist: []string{
			"Take a fresh moisture sample from two areas of the field",
			"Confirm elevator hours or bin space",
			"Set combine for the measured moisture",
			"Line up trucking for the expected tonnage",
		},
	}
}
