// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4" // Echo web framework used for routing
	"github.com/redis/go-redis/v9"

	"github.com/floodwatch/waterlog-platform/internal/config"
	"github.com/floodwatch/waterlog-platform/internal/handler"
	"github.com/floodwatch/waterlog-platform/internal/middleware"
	"github.com/floodwatch/waterlog-platform/internal/model"
)

// Handlers groups every handler the router wires up.
type Handlers struct {
	Auth        *handler.AuthHandler
	Authorities *handler.AuthorityHandler
	Reports     *handler.ReportHandler
	Overlay     *handler.OverlayHandler
	AI          *handler.AIHandler
}

// Register wires the full API surface onto the Echo instance.
//
// Public routes need no claim; report mutations require a valid bearer
// token; resolve and prediction generation additionally require the
// authority role. The read-only overlay endpoints sit behind the Redis
// response cache, and the whole /api tree is rate limited.
func Register(e *echo.Echo, cfg config.Config, h Handlers, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)

	api := e.Group("/api")
	api.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	// Authentication
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)

	// Reference data
	api.GET("/authorities", h.Authorities.List)

	// Report lifecycle: reads are public, writes need a claim
	api.GET("/reports", h.Reports.List)
	api.GET("/reports/:id/upvotes", h.Reports.CountUpvotes)
	api.GET("/reports/:id/comments", h.Reports.ListComments)

	claimed := api.Group("")
	claimed.Use(middleware.JWTAuth(cfg.JWTSecret))
	claimed.POST("/reports", h.Reports.Create)
	claimed.POST("/reports/:id/upvote", h.Reports.Upvote)
	claimed.POST("/reports/:id/comments", h.Reports.AddComment)

	authority := api.Group("")
	authority.Use(middleware.JWTAuth(cfg.JWTSecret))
	authority.Use(middleware.RequireRole(model.RoleAuthority))
	authority.PUT("/reports/:id/resolve", h.Reports.Resolve)
	authority.POST("/predictions/generate", h.Overlay.GeneratePrediction)

	// Map overlay and history: read-only, cached
	overlay := api.Group("")
	overlay.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	overlay.GET("/hotspots", h.Overlay.Hotspots)
	overlay.GET("/predictions/date/:date", h.Overlay.PredictionsForDate)
	overlay.GET("/predictions/stats", h.Overlay.PredictionStats)
	overlay.GET("/rainfall/date/:date", h.Overlay.RainfallForDate)
	overlay.GET("/rainfall-warnings", handler.RainfallWarnings)
	overlay.GET("/historical/incidents", h.Overlay.HistoricalIncidents)
	overlay.GET("/model/metrics", h.Overlay.ModelMetrics)

	// Advisor
	api.POST("/ai/predict-authority", h.AI.PredictAuthority)
	api.POST("/ai/chat", h.AI.Chat)

	// Uploaded report photos and resolution proofs
	e.Static("/uploads", cfg.UploadDir)
}
