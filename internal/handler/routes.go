package handler

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RouterConfig holds the HTTP-level settings of the dashboard.
type RouterConfig struct {
	AllowedOrigins     []string
	RateLimitPerMinute int
}

// NewRouter builds the gin engine with middleware and all dashboard routes.
func NewRouter(cfg RouterConfig, h *ReportHandler, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), RequestLogger(logger))

	if len(cfg.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  cfg.AllowedOrigins,
			AllowMethods:  []string{"GET", "POST"},
			AllowHeaders:  []string{"Origin", "Content-Type", requestIDHeader},
			ExposeHeaders: []string{"Content-Length", "Content-Disposition", requestIDHeader},
			MaxAge:        12 * time.Hour,
		}))
	}

	RegisterRoutes(r, h, cfg.RateLimitPerMinute)
	return r
}

// RegisterRoutes mounts the dashboard API under /api.
func RegisterRoutes(r *gin.Engine, h *ReportHandler, rateLimitPerMinute int) {
	api := r.Group("/api")

	// Health check
	api.GET("/health", h.Health)

	report := api.Group("/report")
	if rateLimitPerMinute > 0 {
		report.Use(RateLimit(rateLimitPerMinute))
	}
	report.POST("", h.Summarize)
	report.POST("/export", h.Download)
	report.POST("/publish", h.Publish)
}
