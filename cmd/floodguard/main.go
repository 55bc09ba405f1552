package main

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	_ "floodguard/configs"
	"floodguard/internal/application/controller"
	"floodguard/internal/application/middleware"
	"floodguard/internal/application/schedule"
	"floodguard/internal/domain/gateway/api"
	"floodguard/internal/domain/gateway/cache"
	"floodguard/internal/domain/usecase/health"
	"floodguard/internal/domain/usecase/risk"
	pkghttp "floodguard/pkg/http"
	"floodguard/pkg/log"
	"floodguard/pkg/msg"
	"floodguard/pkg/redis"
	"floodguard/pkg/resource"
)

func main() {
	// .env is optional; the environment may already carry the key
	if err := godotenv.Load(); err != nil {
		log.Debugf("No .env file loaded: %v", err)
	}

	log.Info(msg.GetMessage("app.start"))

	// The provider credential is the one fatal startup requirement
	apiKey := resource.GetString("app.provider.api-key")
	if apiKey == "" {
		log.Fatal(msg.GetMessage("risk.error.missing-api-key"))
	}

	// Init infra
	e := echo.New()
	e.HideBanner = true
	middleware.SetupRequestLogger(e)
	e.Static("/dashboard", "web/static")
	apiGroup := e.Group(resource.GetString("app.server.context-path"))

	// Init forecast gateway
	forecastGateway := api.NewForecastGateway(
		resource.GetString("app.provider.base-url"),
		apiKey,
		resource.GetString("app.provider.units"),
		pkghttp.ClientOptions{
			ReadTimeout: resource.GetDuration("app.provider.timeout"),
			Logger:      pkghttp.ZapHTTPLogger{},
		},
	)

	// Init assessment cache: redis when enabled, in-process otherwise
	cacheTTL := resource.GetDuration("app.risk.cache-ttl")
	var redisClient *redis.Client
	var assessmentCache cache.AssessmentCache
	var memCache *cache.MemoryAssessmentCache

	if resource.GetBool("app.redis.enabled") {
		redisConfig := redis.NewRedisConfig().
			WithHost(resource.GetString("app.redis.host")).
			WithPort(resource.GetInt("app.redis.port")).
			WithPassword(resource.GetString("app.redis.password")).
			WithDatabase(resource.GetInt("app.redis.database")).
			WithCacheTTL(cache.CacheName, cacheTTL)
		redisClient = redis.NewClient(redisConfig)
		assessmentCache = cache.NewRedisAssessmentCache(redisClient)
	} else {
		memCache = cache.NewMemoryAssessmentCache(cacheTTL)
		assessmentCache = memCache
	}

	// Init UseCase
	riskUseCase := risk.NewRiskUseCase(forecastGateway, assessmentCache)
	healthUseCase := health.NewHealthUseCase(forecastGateway, assessmentCache)

	// Init Controller
	riskController := controller.NewRiskController(apiGroup, riskUseCase)
	healthController := controller.NewHealthController(apiGroup, healthUseCase)

	// Init Routes
	riskController.InitRiskRoutes()
	healthController.InitHealthRoutes()

	// Init Schedule
	riskScheduler := schedule.NewRiskScheduler(riskUseCase, redisClient, &schedule.RiskSchedulerConfig{
		CronExpression:  resource.GetString("app.risk.refresh-cron"),
		LockTTL:         resource.GetDuration("app.redis.lock-ttl"),
		RefreshInterval: resource.GetDuration("app.redis.lock-refresh-interval"),
	})
	riskScheduler.InitRiskScheduleTasks(context.Background())

	if memCache != nil {
		sweeper, err := schedule.NewCacheSweeper(memCache, resource.GetDuration("app.risk.sweep-interval"))
		if err != nil {
			log.Fatalf("Failed to create cache sweeper: %v", err)
		}
		if err := sweeper.Start(); err != nil {
			log.Fatalf("Failed to start cache sweeper: %v", err)
		}
	}

	// Start server
	port := resource.GetString("app.server.port")
	log.Info(msg.GetMessage("app.started", port))
	e.Logger.Fatal(e.Start(":" + port))
}
