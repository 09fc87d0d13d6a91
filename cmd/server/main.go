package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/dashon1/creatorflow-studio/internal/cache"
	"github.com/dashon1/creatorflow-studio/internal/config"
	"github.com/dashon1/creatorflow-studio/internal/database"
	"github.com/dashon1/creatorflow-studio/internal/handler"
	"github.com/dashon1/creatorflow-studio/internal/queue"
	"github.com/dashon1/creatorflow-studio/internal/repository"
	"github.com/dashon1/creatorflow-studio/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	// Redis is optional: a nil client disables rate limiting and the
	// dashboard cache, nothing else.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; rate limiting and stats cache disabled")
	}

	users := repository.NewUserRepo(db)
	integrations := repository.NewIntegrationRepo(db)
	workflows := repository.NewWorkflowRepo(db)
	runs := repository.NewRunRepo(db)
	analytics := repository.NewAnalyticsRepo(db)
	stats := cache.NewStatsCache(config.LoadStatsCacheConfig(), rdb)

	// Background consumer completes queued workflow runs.
	go queue.StartRunConsumer(runs)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{AllowOrigins: []string{"*"}}))

	router.Register(e, cfg, router.Handlers{
		Auth:         handler.NewAuthHandler(cfg, users),
		Admin:        handler.NewAdminHandler(users),
		Integrations: handler.NewIntegrationHandler(integrations),
		Workflows:    handler.NewWorkflowHandler(workflows, runs),
		Analytics:    handler.NewAnalyticsHandler(analytics, runs, stats),
	}, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
