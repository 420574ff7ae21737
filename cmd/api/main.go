package main

import (
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/maintain-ai/maintain-backend/config"
	"github.com/maintain-ai/maintain-backend/internal/analysis"
	"github.com/maintain-ai/maintain-backend/internal/analytics"
	"github.com/maintain-ai/maintain-backend/internal/auth"
	"github.com/maintain-ai/maintain-backend/internal/bootstrap"
	"github.com/maintain-ai/maintain-backend/internal/storage/memory"
)

const serviceName = "maintain-backend"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	bootstrap.SetGinMode(cfg.App.Environment)

	authClient, err := auth.InitializeFirebase(cfg.Firebase)
	if err != nil {
		log.Printf("Firebase initialization failed, falling back to header identity: %v", err)
	}

	var rdb *redis.Client
	if cfg.Redis.Address != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	store := memory.NewStore()
	analyzer := analysis.NewAnalyzer(analysis.NewGeminiClient(cfg.Gemini))
	analyticsSvc := analytics.NewService(store, rdb)

	if rdb != nil {
		scheduler := analytics.NewScheduler(analyticsSvc)
		if err := scheduler.Start(); err != nil {
			log.Printf("Analytics scheduler failed to start: %v", err)
		}
	}

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    serviceName,
		Version:        cfg.App.Version,
		Store:          store,
		Redis:          rdb,
		AuthClient:     authClient,
		Analyzer:       analyzer,
		Analytics:      analyticsSvc,
		IssueRateLimit: cfg.RateLimit.IssuesPerDay,
	})

	log.Printf("%s listening on :%s", serviceName, cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
