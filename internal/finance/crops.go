package finance

import "strings"

// CropProfile carries the agronomic reference data for one crop.
type CropProfile struct {
	MaturityDays        int     // expected days from planting to maturity
	YieldFactor         float64 // multiplier over BaseYieldTonsPerHa
	ProductionCostPerHa float64
	InsuranceValuePerHa float64
}

// BaseYieldTonsPerHa is the reference yield a factor-1.0 crop produces under
// average conditions.
const BaseYieldTonsPerHa = 8.5

// DefaultCropProfile is used for crops missing from the reference table.
var DefaultCropProfile = CropProfile{
	MaturityDays:        120,
	YieldFactor:         0.75,
	ProductionCostPerHa: 750,
	InsuranceValuePerHa: 900,
}

var cropProfiles = map[string]CropProfile{
	"corn":    {MaturityDays: 120, YieldFactor: 1.0, ProductionCostPerHa: 950, InsuranceValuePerHa: 1200},
	"soybean": {MaturityDays: 110, YieldFactor: 0.7, ProductionCostPerHa: 620, InsuranceValuePerHa: 850},
	"wheat":   {MaturityDays: 130, YieldFactor: 0.9, ProductionCostPerHa: 700, InsuranceValuePerHa: 900},
	"rice":    {MaturityDays: 150, YieldFactor: 1.1, ProductionCostPerHa: 1100, InsuranceValuePerHa: 1400},
}

// CropProfileFor looks up the reference profile for a crop, falling back to
// DefaultCropProfile for unknown crops. Lookup is case-insensitive.
func CropProfileFor(crop string) CropProfile {
	if p, ok := cropProfiles[strings.ToLower(strings.TrimSpace(crop))]; ok {
		return p
	}
	return DefaultCropProfile
}

// ExpectedYieldTonsPerHa returns the average yield for a crop.
func ExpectedYieldTonsPerHa(crop string) float64 {
	return BaseYieldTonsPerHa * CropProfileFor(crop).YieldFactor
}

// ExpectedMaturityDays returns the expected days to maturity for a crop.
func ExpectedMaturityDays(crop string) int {
	return CropProfileFor(crop).MaturityDays
}
