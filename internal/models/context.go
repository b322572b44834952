package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// ============================================================================
// FARM CONTEXT
// ============================================================================

// FarmContext is the complete snapshot of a farm's state used as input to
// decision generation. It is assembled externally (database + live weather +
// market feed) and treated as read-only by the engine.
type FarmContext struct {
	FarmID   uuid.UUID  `json:"farm_id"`
	FarmName string     `json:"farm_name"`
	Location *orb.Point `json:"location"` // [lon, lat]

	Fields    []Field           `json:"fields"`
	Weather   CurrentWeather    `json:"weather"`
	Forecast  []ForecastDay     `json:"forecast"`
	Financial FinancialSnapshot `json:"financial"`
	Livestock *Livestock        `json:"livestock,omitempty"`

	// Pre-fetched collaborator data. The engine performs no I/O of its own.
	SprayWindows   []Window            `json:"spray_windows"`
	HarvestWindows []Window            `json:"harvest_windows"`
	MarketFeed     []MarketOpportunity `json:"market_feed"`

	GeneratedAt time.Time `json:"generated_at"`
}

// Field is a single cultivated field. Areas are hectares; any acre-denominated
// input must be converted at the context-assembly boundary.
type Field struct {
	ID              uuid.UUID `json:"id" db:"id"`
	FarmID          uuid.UUID `json:"farm_id" db:"farm_id"`
	Name            string    `json:"name" db:"name"`
	AreaHectares    float64   `json:"area_hectares" db:"area_hectares"`
	CropType        string    `json:"crop_type" db:"crop_type"`
	PlantingDate    *int64    `json:"planting_date,omitempty" db:"planting_date"`
	LastSprayDate   *int64    `json:"last_spray_date,omitempty" db:"last_spray_date"`
	LastHarvestDate *int64    `json:"last_harvest_date,omitempty" db:"last_harvest_date"`
}

// DaysSinceLastSpray returns full days since the last spray, or 999 if the
// field has never been sprayed.
func (f *Field) DaysSinceLastSpray(now time.Time) int {
	if f.LastSprayDate == nil {
		return NeverSprayedDays
	}
	return int(now.Sub(time.Unix(*f.LastSprayDate, 0)).Hours() / 24)
}

// DaysSincePlanting returns full days since planting, or -1 when no planting
// date is recorded.
func (f *Field) DaysSincePlanting(now time.Time) int {
	if f.PlantingDate == nil {
		return -1
	}
	return int(now.Sub(time.Unix(*f.PlantingDate, 0)).Hours() / 24)
}

// NeverSprayedDays is the sentinel day count for fields without a recorded
// spray date.
const NeverSprayedDays = 999

type CurrentWeather struct {
	TemperatureC    float64 `json:"temperature_c"`
	Humidity        float64 `json:"humidity"`
	WindSpeedKmh    float64 `json:"wind_speed_kmh"`
	PrecipitationMM float64 `json:"precipitation_mm"`
	Condition       string  `json:"condition"`
	ObservedAt      int64   `json:"observed_at"`
}

type ForecastDay struct {
	Date            int64   `json:"date"`
	TempMinC        float64 `json:"temp_min_c"`
	TempMaxC        float64 `json:"temp_max_c"`
	PrecipitationMM float64 `json:"precipitation_mm"`
	Humidity        float64 `json:"humidity"`
	WindSpeedKmh    float64 `json:"wind_speed_kmh"`
	RainProbability float64 `json:"rain_probability"`
}

type FinancialSnapshot struct {
	CashAvailable float64 `json:"cash_available"`
	MonthlyBudget float64 `json:"monthly_budget"`
	YTDRevenue    float64 `json:"ytd_revenue"`
	YTDExpenses   float64 `json:"ytd_expenses"`
}

// Livestock summarizes the farm's animal holdings by species.
type Livestock struct {
	Herds []HerdRecord `json:"herds"`
}

type HerdRecord struct {
	Species             string `json:"species" db:"species"`
	Count               int    `json:"count" db:"head_count"`
	LastVaccinationDate *int64 `json:"last_vaccination_date,omitempty" db:"last_vaccination_date"`
}

// Farm is the persisted farm record backing context assembly.
type Farm struct {
	ID        uuid.UUID `json:"id" db:"id"`
	OwnerID   string    `json:"owner_id" db:"owner_id"`
	FarmName  string    `json:"farm_name" db:"farm_name"`
	Latitude  float64   `json:"latitude" db:"latitude"`
	Longitude float64   `json:"longitude" db:"longitude"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
