package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"decision-service/internal/market"
	"decision-service/internal/models"
	"decision-service/internal/repository"
	"decision-service/internal/weather"

	"github.com/paulmach/orb"
)

// Collaborator lookahead for operation windows and forecast days.
const contextLookaheadDays = 7

// ContextBuilder assembles the complete FarmContext from persisted farm
// state plus live weather and market data. The engine itself performs no
// I/O; everything is resolved here before evaluators run.
type ContextBuilder struct {
	farmRepo      *repository.FarmRepository
	weatherClient weather.IWeatherClient
	marketClient  market.IMarketClient
}

func NewContextBuilder(farmRepo *repository.FarmRepository, weatherClient weather.IWeatherClient, marketClient market.IMarketClient) *ContextBuilder {
	return &ContextBuilder{
		farmRepo:      farmRepo,
		weatherClient: weatherClient,
		marketClient:  marketClient,
	}
}

// Build assembles the context for one farm. Collaborator outages degrade to
// empty window/feed lists; only missing core farm data is an error.
func (b *ContextBuilder) Build(ctx context.Context, farmID string) (*models.FarmContext, error) {
	farm, err := b.farmRepo.GetFarmByID(ctx, farmID)
	if err != nil {
		return nil, fmt.Errorf("fetch farm: %w", err)
	}

	var (
		fields         []models.Field
		livestock      *models.Livestock
		current        *models.CurrentWeather
		forecast       []models.ForecastDay
		sprayWindows   []models.Window
		harvestWindows []models.Window
		marketFeed     []models.MarketOpportunity
		fetchErrors    []error
	)

	var wg sync.WaitGroup
	var mu sync.Mutex

	wg.Add(1)
	go func() {
		defer wg.Done()
		data, err := b.farmRepo.GetFieldsByFarmID(ctx, farmID)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			fetchErrors = append(fetchErrors, fmt.Errorf("fetch fields: %w", err))
			return
		}
		fields = data
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		data, err := b.farmRepo.GetHerdsByFarmID(ctx, farmID)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			slog.Warn("Failed to fetch herds, continuing without livestock",
				"farm_id", farmID, "error", err)
			return
		}
		livestock = data
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		data, err := b.weatherClient.GetCurrentWeather(farm.Latitude, farm.Longitude)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			slog.Warn("Failed to fetch current weather", "farm_id", farmID, "error", err)
			return
		}
		current = data
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		data, err := b.weatherClient.GetDailyForecast(farm.Latitude, farm.Longitude, contextLookaheadDays)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			slog.Warn("Failed to fetch daily forecast", "farm_id", farmID, "error", err)
			return
		}
		forecast = data
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		data, err := b.weatherClient.FindSprayWindows(farm.Latitude, farm.Longitude, contextLookaheadDays)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			slog.Warn("Failed to fetch spray windows", "farm_id", farmID, "error", err)
			return
		}
		sprayWindows = data
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		data, err := b.weatherClient.FindHarvestWindows(farm.Latitude, farm.Longitude, contextLookaheadDays)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			slog.Warn("Failed to fetch harvest windows", "farm_id", farmID, "error", err)
			return
		}
		harvestWindows = data
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		data, err := b.marketClient.GetOpportunities(ctx)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			slog.Warn("Failed to fetch market feed", "farm_id", farmID, "error", err)
			return
		}
		marketFeed = data
	}()

	wg.Wait()

	if len(fetchErrors) > 0 {
		for _, err := range fetchErrors {
			slog.Error("Critical context fetch error", "farm_id", farmID, "error", err)
		}
		return nil, fmt.Errorf("failed to assemble farm context: %v", fetchErrors)
	}

	if current == nil {
		current = &models.CurrentWeather{}
	}

	location := orb.Point{farm.Longitude, farm.Latitude}

	slog.Info("Farm context assembled",
		"farm_id", farmID,
		"field_count", len(fields),
		"spray_windows", len(sprayWindows),
		"harvest_windows", len(harvestWindows),
		"market_opportunities", len(marketFeed))

	return &models.FarmContext{
		FarmID:         farm.ID,
		FarmName:       farm.FarmName,
		Location:       &location,
		Fields:         fields,
		Weather:        *current,
		Forecast:       forecast,
		Livestock:      livestock,
		SprayWindows:   sprayWindows,
		HarvestWindows: harvestWindows,
		MarketFeed:     marketFeed,
		GeneratedAt:    time.Now(),
	}, nil
}
