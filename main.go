package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/sirupsen/logrus"

	"github.com/zvg-webapp/zvg-backend/config"
	"github.com/zvg-webapp/zvg-backend/handlers"
	"github.com/zvg-webapp/zvg-backend/jobs"
	"github.com/zvg-webapp/zvg-backend/services"
)

func main() {
	// Load config
	cfg := config.LoadConfig()

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	} else {
		logrus.Warnf("Invalid LOG_LEVEL value: %s, using info", cfg.LogLevel)
	}

	// Upstream portal client
	portal := services.NewPortalClient(&services.PortalClientConfiguration{
		BaseURL:            cfg.BaseURL,
		UserAgent:          cfg.UserAgent,
		HTTPRequestTimeout: cfg.FetchTimeout,
		RequestRateLimit:   cfg.RequestDelay,
	})

	// State registry is built once from the portal's enumeration and
	// injected; nothing else knows about state name variants.
	registry := services.NewStateRegistry(portal.Lands())

	cache := services.NewEntryCache(portal, cfg.GetCacheTTL())
	searchService := services.NewSearchService(registry, cache)
	searchHandler := handlers.NewSearchHandler(searchService)

	logrus.WithFields(logrus.Fields{
		"base_url":  cfg.BaseURL,
		"cache_ttl": cfg.GetCacheTTL(),
	}).Info("ZVG portal backend services initialized")

	// Periodic cleanup of long-stale cache slots
	cleanupJob := jobs.NewCacheCleanupJob(cache)
	go func() {
		cleanupTicker := time.NewTicker(12 * time.Hour)
		defer cleanupTicker.Stop()
		for range cleanupTicker.C {
			cleanupJob.Run()
			searchService.Metrics().LogSummary()
		}
	}()

	// Setup Fiber
	app := fiber.New()

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	// Routes
	api := app.Group("/api")
	api.Get("/health", searchHandler.Health)
	api.Get("/search", searchHandler.Search)

	// Static frontend bundle with SPA fallback, when a build exists
	if indexFile := filepath.Join(cfg.StaticDir, "index.html"); fileExists(indexFile) {
		app.Static("/", cfg.StaticDir)
		app.Get("/*", func(c *fiber.Ctx) error {
			return c.SendFile(indexFile)
		})
	}

	// Start server
	logrus.Infof("Server starting on port %s", cfg.ServerPort)
	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		logrus.Fatalf("Server failed to start: %v", err)
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
