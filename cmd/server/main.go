package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // Loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/venuekit/seatmap-designer/internal/config"     // Internal config loader
	"github.com/venuekit/seatmap-designer/internal/database"   // MySQL connection pool
	"github.com/venuekit/seatmap-designer/internal/handler"    // HTTP handlers
	"github.com/venuekit/seatmap-designer/internal/repository" // Data access layer
	"github.com/venuekit/seatmap-designer/internal/router"     // Internal router setup
)

func main() {
	_ = godotenv.Load() // Load .env when present; real env vars win

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	layoutRepo := repository.NewLayoutRepo(db)
	venueRepo := repository.NewVenueRepo(db)
	h := handler.NewEditorHandler(layoutRepo, venueRepo, cfg.GridSize)

	rdb := config.NewRedisClient() // nil when Redis is unreachable; caching degrades off
	if rdb == nil {
		log.Println("redis unavailable, response caching disabled")
	}

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterEditor(e, h, cfg.JWTSecret, config.LoadCacheConfig(), rdb)

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
