package finance

import (
	"decision-service/internal/models"
)

// Per-hectare operation rates. Material rates for spraying depend on the
// product type and are scaled by the application rate.
var (
	sprayLaborPerHa     = 12.0
	sprayEquipmentPerHa = 18.0
	sprayFuelPerHa      = 8.0

	sprayMaterialPerHa = map[models.SprayType]float64{
		models.SprayFungicide:   45.0,
		models.SprayInsecticide: 38.0,
		models.SprayHerbicide:   30.0,
	}

	// Fraction of the crop's value protected by a well-timed application.
	sprayProtectionFraction = map[models.SprayType]float64{
		models.SprayFungicide:   0.15,
		models.SprayInsecticide: 0.10,
		models.SprayHerbicide:   0.08,
	}

	harvestLaborPerHa     = 30.0
	harvestEquipmentPerHa = 55.0
	harvestFuelPerHa      = 20.0
	harvestMaterialPerHa  = 5.0

	irrigationLaborPerHa     = 6.0
	irrigationEquipmentPerHa = 9.0
	irrigationFuelPerHa      = 11.0
	irrigationWaterPerMMHa   = 1.2

	// Overhead charged as a fraction of direct cost.
	overheadFraction = 0.10
)

// TargetGrainMoisturePct is the moisture level above which drying cost applies.
const TargetGrainMoisturePct = 14.0

// ImpactCalculator produces FinancialImpact assessments for each decision
// domain. Stateless apart from its pricing table; safe for concurrent use.
type ImpactCalculator struct {
	pricing *PricingTable
}

// NewImpactCalculator builds a calculator over the given pricing table. A nil
// table gets the built-in reference prices.
func NewImpactCalculator(pricing *PricingTable) *ImpactCalculator {
	if pricing == nil {
		pricing = NewPricingTable()
	}
	return &ImpactCalculator{pricing: pricing}
}

// Pricing exposes the calculator's pricing table for external market-data
// updates.
func (c *ImpactCalculator) Pricing() *PricingTable {
	return c.pricing
}

// EconomicsFor derives the per-field economic inputs from the crop reference
// tables.
func (c *ImpactCalculator) EconomicsFor(field models.Field) models.FieldEconomics {
	profile := CropProfileFor(field.CropType)
	return models.FieldEconomics{
		AreaHectares:        field.AreaHectares,
		CropType:            field.CropType,
		AvgYieldTonsPerHa:   BaseYieldTonsPerHa * profile.YieldFactor,
		ProductionCostPerHa: profile.ProductionCostPerHa,
		InsuranceValue:      profile.InsuranceValuePerHa * field.AreaHectares,
		LandValue:           profile.InsuranceValuePerHa * field.AreaHectares * 12,
	}
}

// cropValue is the gross value of the field's expected production.
func (c *ImpactCalculator) cropValue(eco models.FieldEconomics) float64 {
	return eco.AreaHectares * eco.AvgYieldTonsPerHa * c.pricing.PriceOrDefault(eco.CropType)
}

// SprayImpact assesses a crop-protection application. applicationRate scales
// material intensity (1.0 = label rate); efficacy is the 0-1 expected
// effectiveness, usually the weather window's confidence.
func (c *ImpactCalculator) SprayImpact(eco models.FieldEconomics, sprayType models.SprayType, applicationRate, efficacy float64) models.FinancialImpact {
	if applicationRate <= 0 {
		applicationRate = 1.0
	}
	efficacy = models.Clamp(efficacy, 0, 1)

	material, ok := sprayMaterialPerHa[sprayType]
	if !ok {
		material = sprayMaterialPerHa[models.SprayHerbicide]
	}

	costs := models.CostBreakdown{
		Materials: material * applicationRate * eco.AreaHectares,
		Labor:     sprayLaborPerHa * eco.AreaHectares,
		Equipment: sprayEquipmentPerHa * eco.AreaHectares,
		Fuel:      sprayFuelPerHa * eco.AreaHectares,
	}
	costs.Overhead = overheadFraction * (costs.Materials + costs.Labor + costs.Equipment + costs.Fuel)

	protection, ok := sprayProtectionFraction[sprayType]
	if !ok {
		protection = sprayProtectionFraction[models.SprayHerbicide]
	}
	protected := c.cropValue(eco) * protection * efficacy

	revenues := models.RevenueBreakdown{
		LossAvoidance:  protected,
		QualityPremium: protected * 0.05,
		TimeValue:      protected * 0.02,
	}

	return c.build(eco, models.DecisionSpray, costs, revenues)
}

// HarvestImpact assesses harvesting now given estimated grain moisture and
// the 0-100 weather risk of waiting.
func (c *ImpactCalculator) HarvestImpact(eco models.FieldEconomics, moisturePct, weatherRisk float64) models.FinancialImpact {
	weatherRisk = models.Clamp(weatherRisk, 0, 100)

	costs := models.CostBreakdown{
		Materials: harvestMaterialPerHa * eco.AreaHectares,
		Labor:     harvestLaborPerHa * eco.AreaHectares,
		Equipment: harvestEquipmentPerHa * eco.AreaHectares,
		Fuel:      harvestFuelPerHa * eco.AreaHectares,
	}
	if moisturePct > TargetGrainMoisturePct {
		// Drying cost per excess moisture point on the full harvested tonnage.
		costs.Materials += (moisturePct - TargetGrainMoisturePct) * eco.AreaHectares * eco.AvgYieldTonsPerHa * 2.5
	}
	costs.Overhead = overheadFraction * (costs.Materials + costs.Labor + costs.Equipment + costs.Fuel)

	value := c.cropValue(eco)
	revenues := models.RevenueBreakdown{
		LossAvoidance: value * (weatherRisk / 100) * 0.25,
		TimeValue:     value * 0.02,
	}
	if moisturePct <= TargetGrainMoisturePct {
		revenues.QualityPremium = value * 0.03
	}

	return c.build(eco, models.DecisionHarvest, costs, revenues)
}

// IrrigationImpact assesses applying waterMM millimeters of irrigation to a
// field under the given 0-100 moisture stress level.
func (c *ImpactCalculator) IrrigationImpact(eco models.FieldEconomics, waterMM, stressLevel float64) models.FinancialImpact {
	if waterMM < 0 {
		waterMM = 0
	}
	stressLevel = models.Clamp(stressLevel, 0, 100)

	costs := models.CostBreakdown{
		Materials: irrigationWaterPerMMHa * waterMM * eco.AreaHectares,
		Labor:     irrigationLaborPerHa * eco.AreaHectares,
		Equipment: irrigationEquipmentPerHa * eco.AreaHectares,
		Fuel:      irrigationFuelPerHa * eco.AreaHectares,
	}
	costs.Overhead = overheadFraction * (costs.Materials + costs.Labor + costs.Equipment + costs.Fuel)

	value := c.cropValue(eco)
	revenues := models.RevenueBreakdown{
		YieldIncrease: value * (stressLevel / 100) * 0.20,
		LossAvoidance: value * (stressLevel / 100) * 0.05,
	}

	return c.build(eco, models.DecisionIrrigate, costs, revenues)
}

// LivestockImpact assesses a herd health intervention. Unlike the field
// operations this is a direct linear per-animal model with a fixed cost split.
func (c *ImpactCalculator) LivestockImpact(animalCount int, costPerAnimal, preventedLossValue, effectivenessRate float64) models.FinancialImpact {
	if animalCount < 0 {
		animalCount = 0
	}
	effectivenessRate = models.Clamp(effectivenessRate, 0, 100)

	totalCost := float64(animalCount) * costPerAnimal
	costs := models.CostBreakdown{
		Materials: totalCost * 0.70,
		Labor:     totalCost * 0.20,
		Equipment: totalCost * 0.05,
		Fuel:      totalCost * 0.03,
		Overhead:  totalCost * 0.02,
	}

	revenues := models.RevenueBreakdown{
		LossAvoidance: float64(animalCount) * preventedLossValue * (effectivenessRate / 100),
	}

	risk := riskScore(costs.Total(), revenues.Total())
	confidence := confidenceLevel(0, models.DecisionLivestockHealth)
	return models.NewFinancialImpact(costs, revenues, risk, confidence)
}

// build assembles the final impact with domain risk and confidence scoring.
func (c *ImpactCalculator) build(eco models.FieldEconomics, decisionType models.DecisionType, costs models.CostBreakdown, revenues models.RevenueBreakdown) models.FinancialImpact {
	risk := riskScore(costs.Total(), revenues.Total())
	confidence := confidenceLevel(eco.AreaHectares, decisionType)
	return models.NewFinancialImpact(costs, revenues, risk, confidence)
}

// riskScore combines a cost-scaled exposure term with a discount for benefit
// certainty. Always within [0, 100].
func riskScore(totalCost, totalRevenue float64) float64 {
	costRisk := totalCost / 1000 * 5
	if costRisk > 50 {
		costRisk = 50
	}

	certainty := 0.0
	if totalCost > 0 {
		roi := (totalRevenue - totalCost) / totalCost * 100
		if roi > 0 {
			certainty = roi / 10
			if certainty > 30 {
				certainty = 30
			}
		}
	}

	return models.Clamp(25+costRisk-certainty, 0, 100)
}

const (
	baseConfidence = 70.0
	minConfidence  = 50.0
	maxConfidence  = 95.0
)

// confidenceLevel starts at the domain base and adjusts for field size and
// decision-type complexity, clamped to [50, 95].
func confidenceLevel(areaHectares float64, decisionType models.DecisionType) float64 {
	confidence := baseConfidence

	switch {
	case areaHectares >= 50:
		confidence += 10
	case areaHectares >= 20:
		confidence += 5
	case areaHectares > 0 && areaHectares < 5:
		confidence -= 10
	}

	switch decisionType {
	case models.DecisionSpray:
		confidence -= 5
	case models.DecisionHarvest:
		confidence -= 10
	case models.DecisionIrrigate:
		confidence += 5
	case models.DecisionLivestockHealth:
		confidence += 10
	}

	return models.Clamp(confidence, minConfidence, maxConfidence)
}
