package models

type DecisionType string

const (
	DecisionSpray           DecisionType = "SPRAY"
	DecisionHarvest         DecisionType = "HARVEST"
	DecisionIrrigate        DecisionType = "IRRIGATE"
	DecisionPlant           DecisionType = "PLANT"
	DecisionFertilize       DecisionType = "FERTILIZE"
	DecisionLivestockHealth DecisionType = "LIVESTOCK_HEALTH"
	DecisionMarketSell      DecisionType = "MARKET_SELL"
	DecisionEquipmentMaint  DecisionType = "EQUIPMENT_MAINTAIN"
)

type DecisionPriority string

const (
	PriorityUrgent DecisionPriority = "URGENT"
	PriorityHigh   DecisionPriority = "HIGH"
	PriorityMedium DecisionPriority = "MEDIUM"
	PriorityLow    DecisionPriority = "LOW"
)

type SeasonalTrend string

const (
	TrendRising  SeasonalTrend = "RISING"
	TrendStable  SeasonalTrend = "STABLE"
	TrendFalling SeasonalTrend = "FALLING"
)

type MarketOutlook string

const (
	OutlookBullish MarketOutlook = "BULLISH"
	OutlookNeutral MarketOutlook = "NEUTRAL"
	OutlookBearish MarketOutlook = "BEARISH"
)

type MarketRecommendation string

const (
	MarketSell MarketRecommendation = "SELL"
	MarketHold MarketRecommendation = "HOLD"
	MarketBuy  MarketRecommendation = "BUY"
)

type SprayType string

const (
	SprayFungicide   SprayType = "fungicide"
	SprayInsecticide SprayType = "insecticide"
	SprayHerbicide   SprayType = "herbicide"
)

type RecommendationStatus string

const (
	RecommendationActive    RecommendationStatus = "active"
	RecommendationExpired   RecommendationStatus = "expired"
	RecommendationCompleted RecommendationStatus = "completed"
	RecommendationDismissed RecommendationStatus = "dismissed"
)

// IsValidDecisionType checks if a decision type is valid
func IsValidDecisionType(t DecisionType) bool {
	switch t {
	case DecisionSpray, DecisionHarvest, DecisionIrrigate, DecisionPlant,
		DecisionFertilize, DecisionLivestockHealth, DecisionMarketSell, DecisionEquipmentMaint:
		return true
	default:
		return false
	}
}

// IsValidPriority checks if a decision priority is valid
func IsValidPriority(p DecisionPriority) bool {
	switch p {
	case PriorityUrgent, PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// IsValidSeasonalTrend checks if a seasonal trend is valid
func IsValidSeasonalTrend(t SeasonalTrend) bool {
	switch t {
	case TrendRising, TrendStable, TrendFalling:
		return true
	default:
		return false
	}
}

// IsValidMarketOutlook checks if a market outlook is valid
func IsValidMarketOutlook(o MarketOutlook) bool {
	switch o {
	case OutlookBullish, OutlookNeutral, OutlookBearish:
		return true
	default:
		return false
	}
}

// IsValidRecommendationStatus checks if a recommendation status is valid
func IsValidRecommendationStatus(s RecommendationStatus) bool {
	switch s {
	case RecommendationActive, RecommendationExpired, RecommendationCompleted, RecommendationDismissed:
		return true
	default:
		return false
	}
}
