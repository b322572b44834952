package config

import (
	"os"
	"strconv"
)

type DecisionServiceConfig struct {
	Port        string
	APIKey      string
	PostgresCfg PostgresConfig
	RedisCfg    RedisConfig
	RabbitMQCfg RabbitMQConfig
	WeatherCfg  WeatherAPIConfig
	MarketCfg   MarketAPIConfig
	RefreshCron string
}

type PostgresConfig struct {
	DBname   string
	Username string
	Password string
	Host     string
	Port     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type RabbitMQConfig struct {
	Username string
	Password string
	Host     string
	Port     string
}

type WeatherAPIConfig struct {
	BaseURL string
	APIKey  string
}

type MarketAPIConfig struct {
	BaseURL  string
	APIKey   string
	CacheTTL int // seconds
}

func New() *DecisionServiceConfig {
	return &DecisionServiceConfig{
		Port:   getEnvOrDefault("PORT", "8086"),
		APIKey: getEnvOrDefault("API_KEY", ""),
		PostgresCfg: PostgresConfig{
			DBname:   getEnvOrDefault("POSTGRES_DB", "decision_service"),
			Username: getEnvOrDefault("POSTGRES_USER", "postgres"),
			Password: getEnvOrDefault("POSTGRES_PASSWORD", "postgres"),
			Host:     getEnvOrDefault("POSTGRES_HOST", "localhost"),
			Port:     getEnvOrDefault("POSTGRES_PORT", "5432"),
		},
		RedisCfg: RedisConfig{
			Host:     getEnvOrDefault("REDIS_HOST", "localhost"),
			Port:     getEnvOrDefault("REDIS_PORT", "6379"),
			Password: getEnvOrDefault("REDIS_PASSWORD", ""),
			DB:       getEnvIntOrDefault("REDIS_DB", 0),
		},
		RabbitMQCfg: RabbitMQConfig{
			Username: getEnvOrDefault("RABBITMQ_USER", "admin"),
			Password: getEnvOrDefault("RABBITMQ_PWD", "admin"),
			Host:     getEnvOrDefault("RABBITMQ_HOST", "localhost"),
			Port:     getEnvOrDefault("RABBITMQ_PORT", "5672"),
		},
		WeatherCfg: WeatherAPIConfig{
			BaseURL: getEnvOrDefault("WEATHER_API_BASE_URL", "https://api.weatherdata.example.com/v1"),
			APIKey:  getEnvOrDefault("WEATHER_API_KEY", ""),
		},
		MarketCfg: MarketAPIConfig{
			BaseURL:  getEnvOrDefault("MARKET_API_BASE_URL", "https://api.marketdata.example.com/v1"),
			APIKey:   getEnvOrDefault("MARKET_API_KEY", ""),
			CacheTTL: getEnvIntOrDefault("MARKET_CACHE_TTL_SECONDS", 900),
		},
		RefreshCron: getEnvOrDefault("DECISION_REFRESH_CRON", "0 6 * * *"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
