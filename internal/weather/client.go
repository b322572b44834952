package weather

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"decision-service/internal/config"
	"decision-service/internal/models"
)

// IWeatherClient is the collaborator contract for operation-window and
// forecast queries.
type IWeatherClient interface {
	FindSprayWindows(lat, lon float64, days int) ([]models.Window, error)
	FindHarvestWindows(lat, lon float64, days int) ([]models.Window, error)
	GetCurrentWeather(lat, lon float64) (*models.CurrentWeather, error)
	GetDailyForecast(lat, lon float64, days int) ([]models.ForecastDay, error)
}

// Client queries the external weather API and synthesizes operation windows
// from its hourly forecast.
type Client struct {
	cfg config.WeatherAPIConfig
}

func NewClient(cfg config.WeatherAPIConfig) IWeatherClient {
	return &Client{cfg: cfg}
}

// hourlyPoint is one hour of the provider's forecast payload.
type hourlyPoint struct {
	Dt              int64   `json:"dt"`
	TempC           float64 `json:"temp_c"`
	Humidity        float64 `json:"humidity"`
	WindSpeedKmh    float64 `json:"wind_speed_kmh"`
	PrecipitationMM float64 `json:"precipitation_mm"`
	RainProbability float64 `json:"rain_probability"`
}

type hourlyResponse struct {
	Hours []hourlyPoint `json:"hours"`
}

type currentResponse struct {
	models.CurrentWeather
}

type dailyResponse struct {
	Days []models.ForecastDay `json:"days"`
}

// FindSprayWindows returns favorable spray windows over the next N days.
func (c *Client) FindSprayWindows(lat, lon float64, days int) ([]models.Window, error) {
	hours, err := c.fetchHourly(lat, lon, days)
	if err != nil {
		return nil, err
	}
	return synthesizeWindows(hours, sprayHourSuitable, 2), nil
}

// FindHarvestWindows returns favorable harvest windows over the next N days.
func (c *Client) FindHarvestWindows(lat, lon float64, days int) ([]models.Window, error) {
	hours, err := c.fetchHourly(lat, lon, days)
	if err != nil {
		return nil, err
	}
	return synthesizeWindows(hours, harvestHourSuitable, 4), nil
}

// GetCurrentWeather fetches current conditions at the location.
func (c *Client) GetCurrentWeather(lat, lon float64) (*models.CurrentWeather, error) {
	url := fmt.Sprintf("%s/weather/current?lat=%f&lon=%f&appid=%s", c.cfg.BaseURL, lat, lon, c.cfg.APIKey)

	body, err := c.get(url)
	if err != nil {
		return nil, err
	}

	var resp currentResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		log.Printf("Error unmarshaling current weather: %v", err)
		return nil, fmt.Errorf("failed to parse response")
	}

	return &resp.CurrentWeather, nil
}

// GetDailyForecast fetches the daily forecast for the next N days.
func (c *Client) GetDailyForecast(lat, lon float64, days int) ([]models.ForecastDay, error) {
	url := fmt.Sprintf("%s/weather/forecast/daily?lat=%f&lon=%f&days=%d&appid=%s",
		c.cfg.BaseURL, lat, lon, days, c.cfg.APIKey)

	body, err := c.get(url)
	if err != nil {
		return nil, err
	}

	var resp dailyResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		log.Printf("Error unmarshaling daily forecast: %v", err)
		return nil, fmt.Errorf("failed to parse response")
	}

	return resp.Days, nil
}

func (c *Client) fetchHourly(lat, lon float64, days int) ([]hourlyPoint, error) {
	url := fmt.Sprintf("%s/weather/forecast/hourly?lat=%f&lon=%f&days=%d&appid=%s",
		c.cfg.BaseURL, lat, lon, days, c.cfg.APIKey)

	body, err := c.get(url)
	if err != nil {
		return nil, err
	}

	var resp hourlyResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		log.Printf("Error unmarshaling hourly forecast: %v", err)
		return nil, fmt.Errorf("failed to parse response")
	}

	return resp.Hours, nil
}

func (c *Client) get(url string) ([]byte, error) {
	if c.cfg.APIKey == "" {
		log.Println("Weather API key not configured")
		return nil, fmt.Errorf("weather API key not configured")
	}

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		log.Printf("Error calling weather API: %v", err)
		return nil, fmt.Errorf("failed to call weather API")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("Error reading response body: %v", err)
		return nil, fmt.Errorf("failed to read response")
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("Weather API returned non-200 status: %d, body: %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("weather API error: %s", string(body))
	}

	return body, nil
}
