package models

// MarketOpportunity is one entry of the external market-opportunity feed.
type MarketOpportunity struct {
	Crop           string               `json:"crop"`
	CurrentPrice   float64              `json:"current_price"`
	PriceChangePct float64              `json:"price_change_pct"`
	Trend          SeasonalTrend        `json:"trend"`
	Recommendation MarketRecommendation `json:"recommendation"`
}

// CropPricing is the reference pricing record for one crop, keyed by
// lower-cased crop name in the calculator's pricing table.
type CropPricing struct {
	CurrentPrice      float64       `json:"current_price"`
	HistoricalAverage float64       `json:"historical_average"`
	Volatility        float64       `json:"volatility"`
	SeasonalTrend     SeasonalTrend `json:"seasonal_trend"`
	MarketOutlook     MarketOutlook `json:"market_outlook"`
}
