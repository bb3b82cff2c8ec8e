package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/floodwatch/waterlog-platform/internal/advisor"
	"github.com/floodwatch/waterlog-platform/internal/config"
	"github.com/floodwatch/waterlog-platform/internal/database"
	"github.com/floodwatch/waterlog-platform/internal/handler"
	"github.com/floodwatch/waterlog-platform/internal/media"
	"github.com/floodwatch/waterlog-platform/internal/queue"
	"github.com/floodwatch/waterlog-platform/internal/repository"
	"github.com/floodwatch/waterlog-platform/internal/router"
)

func main() {
	// A local .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	store, err := media.NewDiskStore(cfg.UploadDir, "/uploads")
	if err != nil {
		log.Fatalf("media store: %v", err)
	}

	adv, err := advisor.New(advisor.Config{
		Endpoint: cfg.AIEndpoint,
		APIKey:   cfg.AIAPIKey,
		Models:   cfg.AIModels,
		Timeout:  cfg.AITimeout,
	})
	if err != nil {
		log.Fatalf("advisor: %v", err)
	}

	// Redis is optional; nil disables caching and rate limiting
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, running without cache/rate limits")
	}

	handlers := router.Handlers{
		Auth:        handler.NewAuthHandler(cfg, repository.NewUserRepo(db)),
		Authorities: handler.NewAuthorityHandler(repository.NewAuthorityRepo(db)),
		Reports: handler.NewReportHandler(
			repository.NewReportRepo(db),
			repository.NewUpvoteRepo(db),
			repository.NewCommentRepo(db),
			store,
		),
		Overlay: handler.NewOverlayHandler(
			repository.NewHotspotRepo(db),
			repository.NewPredictionRepo(db),
			repository.NewRainfallRepo(db),
			repository.NewIncidentRepo(db),
			repository.NewModelMetadataRepo(db),
		),
		AI: handler.NewAIHandler(adv),
	}

	e := echo.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	router.Register(e, cfg, handlers, rdb)

	// Audit consumer for report lifecycle events; reconnects on its own
	go func() {
		if err := queue.StartReportConsumer(); err != nil {
			log.Printf("report consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
