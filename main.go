package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"lg/wellness-coach-go-api/internal/coach"
	"lg/wellness-coach-go-api/internal/content"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}
	setupLogger(cfg.LogLevel, cfg.LogFormat)

	catalog, err := loadCatalog(cfg.ContentPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Unable to load content catalog")
	}
	if missing := catalog.MissingKeys(); len(missing) > 0 {
		log.Warn().Int("count", len(missing)).Interface("keys", missing).Msg("Content catalog is missing variants; fallbacks will be used")
	}

	sessions, closeStore, err := openSessionStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Unable to open session store")
	}
	defer closeStore()

	h := newHandler(sessions, catalog, coach.NewSelector(cfg.Features))
	router := newRouter(cfg, h)

	log.Info().Str("addr", cfg.Addr).Str("feature_set", cfg.Features.Version).Str("session_store", cfg.SessionStore).Msg("Starting wellness coach API")
	if err := router.Run(cfg.Addr); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}

// newRouter builds the engine with logging, recovery and (optionally)
// Prometheus instrumentation.
func newRouter(cfg config, h *Handler) *gin.Engine {
	router := gin.New()
	router.SetTrustedProxies(nil)
	router.Use(gin.Recovery(), requestLogger())
	if cfg.MetricsEnabled {
		registerMetrics()
		router.Use(telemetryMiddleware())
		router.GET("/metrics", metricsHandler())
	}
	h.registerRoutes(router)
	return router
}

// loadCatalog uses the file at path when set, the embedded catalog otherwise.
func loadCatalog(path string) (*content.Catalog, error) {
	if path == "" {
		return content.Default()
	}
	log.Info().Str("path", path).Msg("Loading content catalog from file")
	return content.LoadFile(path)
}

// openSessionStore picks the store named by SESSION_STORE. The returned close
// func is always safe to call.
func openSessionStore(cfg config) (sessionStore, func(), error) {
	if cfg.SessionStore != "redis" {
		return newMemoryStore(cfg.SessionTTL), func() {}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, err := newRedisClient(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	log.Info().Str("addr", cfg.RedisAddr).Msg("Redis session store ready")
	closeFn := func() {
		if err := client.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close redis client")
		}
	}
	return newRedisStore(client, cfg.SessionTTL), closeFn, nil
}
