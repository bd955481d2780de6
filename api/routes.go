package api

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/marklab/annotator/api/health"
	"github.com/marklab/annotator/api/sessions"
	"github.com/marklab/annotator/api/types"
	"github.com/marklab/annotator/api/version"
	"github.com/marklab/annotator/api/videos"
	_ "github.com/marklab/annotator/docs/swagger"
	"github.com/marklab/annotator/internal/services/autosave"
	"github.com/marklab/annotator/internal/services/documents"
	sessionsService "github.com/marklab/annotator/internal/services/sessions"
	videosService "github.com/marklab/annotator/internal/services/videos"
	"github.com/marklab/annotator/pkg/config"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once) error {
	// Register public routes (no rate limiting)
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine, deps)

	// Register Swagger documentation route
	engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(301, "/docs/index.html")
	})
	docsGroup := engine.Group("/docs")
	docsGroup.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Setup 404 handler
	engine.NoRoute(NotFoundHandler())

	// API v1 routes
	v1 := engine.Group("/api/v1")

	// Load config for API routes
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	// Initialize services if not already set
	if deps == nil {
		deps = &types.Dependencies{}
	}

	if deps.DocumentStore == nil {
		store, storeErr := documents.NewFilesystemStore(cfg.Documents.Dir)
		if storeErr != nil {
			return fmt.Errorf("failed to open document store: %w", storeErr)
		}
		deps.DocumentStore = store
	}

	if deps.DB != nil && deps.DB.DB != nil && deps.VideoService == nil {
		initializeVideoService(deps, cfg)
	}

	if deps.Sessions == nil && deps.VideoService != nil {
		initializeSessionRegistry(deps, cfg)
	}

	if deps.VideoService != nil {
		// Register video catalog routes with general rate limiting (10 req/s, burst of 20)
		videoGroup := v1.Group("/videos")
		videoGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 10, 20))
		videos.RegisterRoutes(videoGroup, deps)
	}

	if deps.Sessions != nil {
		// Register session routes with high rate limits (60 req/s, burst of 120).
		// Timeline scrubbing streams pointer events, so these endpoints see
		// far more traffic than the catalog.
		sessionGroup := v1.Group("/sessions")
		sessionGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 60, 120))
		sessions.RegisterRoutes(sessionGroup, deps)
	}

	return nil
}

// initializeVideoService creates and configures the video catalog service
func initializeVideoService(deps *types.Dependencies, cfg *config.Config) {
	videoRepo := videosService.NewRepository(deps.DB.DB)
	resolver := videosService.NewStaticResolver(cfg.Media.BaseURL)
	deps.VideoService = videosService.NewService(videoRepo, resolver)
}

// initializeSessionRegistry creates the per-video editing session registry
func initializeSessionRegistry(deps *types.Dependencies, cfg *config.Config) {
	deps.Sessions = sessionsService.NewRegistry(deps.VideoService, deps.DocumentStore, autosave.Options{
		DebounceDelay: cfg.Autosave.DebounceDelay,
		MaxAttempts:   cfg.Autosave.MaxAttempts,
		RetryBackoff:  cfg.Autosave.RetryBackoff,
	})
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(404, gin.H{
			"status":  "error",
			"message": "The requested endpoint was not found",
			"path":    c.Request.URL.Path,
		})
	}
}
