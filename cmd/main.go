package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"decision-service/internal/config"
	"decision-service/internal/database/postgres"
	"decision-service/internal/database/redis"
	"decision-service/internal/engine"
	"decision-service/internal/event"
	"decision-service/internal/finance"
	"decision-service/internal/handlers"
	"decision-service/internal/market"
	"decision-service/internal/prediction"
	"decision-service/internal/repository"
	"decision-service/internal/services"
	"decision-service/internal/templates"
	"decision-service/internal/weather"
	"decision-service/internal/worker"

	"github.com/gofiber/fiber/v3"
	goredis "github.com/redis/go-redis/v9"
)

func setupLogging() (*os.File, error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic: %v\n", r)
		}
	}()

	logDir := filepath.Join("/agrisa", "log", "decision_service")
	fmt.Println("Log directory:", logDir)
	err := os.MkdirAll(logDir, 0o755)
	if err != nil {
		return nil, fmt.Errorf("failed to create log directory: %v", err)
	}

	currentTime := time.Now()
	logFileName := fmt.Sprintf("log_%s.log", currentTime.Format("2006-01-02"))
	logFile := filepath.Join(logDir, logFileName)

	file, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %v", err)
	}

	log.SetOutput(file)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	return file, nil
}

func main() {
	// Setup logging
	logFile, err := setupLogging()
	if err != nil {
		log.Fatalf("Error setting up logging: %v", err)
	}
	defer logFile.Close()

	// Load configuration
	cfg := config.New()
	log.Printf("Connecting to PostgreSQL with: host=%s, port=%s, user=%s, dbname=%s",
		cfg.PostgresCfg.Host, cfg.PostgresCfg.Port, cfg.PostgresCfg.Username, cfg.PostgresCfg.DBname)

	// db connection
	db, err := postgres.ConnectAndCreateDB(cfg.PostgresCfg)
	if err != nil {
		log.Printf("error connect to database: %s", err)
		go postgres.RetryConnectOnFailed(30*time.Second, &db, cfg.PostgresCfg)
	}

	// redis connection (market feed cache)
	redisClient, err := redis.NewRedisClient(cfg.RedisCfg.Host, cfg.RedisCfg.Port, cfg.RedisCfg.Password, cfg.RedisCfg.DB)
	if err != nil {
		log.Printf("error connect to redis, market cache disabled: %s", err)
	} else {
		defer redisClient.Close()
	}

	// rabbitmq connection (recommendation events)
	var publisher *event.RecommendationPublisher
	mqConn, err := event.ConnectRabbitMQ(cfg.RabbitMQCfg)
	if err != nil {
		log.Printf("error connect to rabbitmq, event publishing disabled: %s", err)
	} else {
		defer mqConn.Close()
		publisher = event.NewRecommendationPublisher(mqConn)
	}

	// external clients
	weatherClient := weather.NewClient(cfg.WeatherCfg)
	var marketCache *goredis.Client
	if redisClient != nil {
		marketCache = redisClient.GetClient()
	}
	marketClient := market.NewClient(cfg.MarketCfg, marketCache)

	// repositories
	farmRepository := repository.NewFarmRepository(db)
	recommendationRepository := repository.NewRecommendationRepository(db)

	// core engine
	pricingTable := finance.NewPricingTable()
	impactCalculator := finance.NewImpactCalculator(pricingTable)
	decisionEngine := engine.New(impactCalculator, engine.DefaultScoringWeights())
	templateRegistry := templates.NewRegistry()
	yieldPredictor := prediction.NewYieldPredictor()
	stressAnalyzer := prediction.NewStressAnalyzer()
	irrigationOptimizer := prediction.NewIrrigationOptimizer()

	// services
	contextBuilder := services.NewContextBuilder(farmRepository, weatherClient, marketClient)
	decisionService := services.NewDecisionService(contextBuilder, decisionEngine, recommendationRepository, publisher)

	// handlers
	decisionHandler := handlers.NewDecisionHandler(decisionService)
	templateHandler := handlers.NewTemplateHandler(templateRegistry)
	pricingHandler := handlers.NewPricingHandler(pricingTable)
	predictionHandler := handlers.NewPredictionHandler(yieldPredictor, stressAnalyzer, irrigationOptimizer)

	app := fiber.New()
	app.Get("/checkhealth", func(c fiber.Ctx) error {
		return c.Status(fiber.StatusOK).SendString("Decision service is healthy")
	})

	// Register routes
	decisionHandler.RegisterRoutes(app)
	templateHandler.RegisterRoutes(app)
	pricingHandler.RegisterRoutes(app)
	predictionHandler.RegisterRoutes(app)

	// scheduled refresh of recommendations for active farms
	refreshWorker := worker.NewRefreshWorker(farmRepository, decisionService, cfg.RefreshCron)
	if err := refreshWorker.Start(); err != nil {
		log.Printf("error starting refresh worker: %s", err)
	}
	defer refreshWorker.Stop()

	log.Printf("Starting decision-service on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
