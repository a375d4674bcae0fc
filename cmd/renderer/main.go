package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/log"
	"github.com/gofiber/fiber/v3/middleware/recover"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/v0idhrt/boxdiagram/internal/common/config"
	"github.com/v0idhrt/boxdiagram/internal/common/middleware"
	"github.com/v0idhrt/boxdiagram/internal/renderer/handlers"
	"github.com/v0idhrt/boxdiagram/internal/renderer/repository"
	"github.com/v0idhrt/boxdiagram/internal/renderer/service"
	"github.com/v0idhrt/boxdiagram/internal/surface"
)

// ============================================================
// Renderer Service
// ============================================================

func main() {
	cfg := config.Load()
	middleware.SetLogLevel(cfg.LogLevel)

	format, err := surface.ParseFormat(cfg.DefaultFormat)
	if err != nil {
		log.Fatalf("DEFAULT_FORMAT: %v", err)
	}

	db, err := repository.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	repo := repository.New(db)
	if err := repo.Init(context.Background(), cfg.MigrationsPath); err != nil {
		log.Fatalf("init db: %v", err)
	}

	storage := service.NewFileStorage(cfg.OutputDir)
	renderHandler := handlers.NewRenderHandler(repo, storage, cfg.DefaultDPI, format)
	healthHandler := handlers.NewHealthHandler(repo)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Diagram Renderer",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger())
	app.Use(middleware.CORS(cfg.CORSOrigins))

	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", healthHandler.Live)
	app.Get("/health/ready", healthHandler.Ready)

	// ============================================================
	// Render Routes
	// ============================================================

	app.Get("/diagrams", renderHandler.ListDiagrams)
	app.Get("/diagrams/:name", renderHandler.RenderDiagram)
	app.Get("/renders", renderHandler.ListRenders)
	app.Get("/renders/:id", renderHandler.GetRender)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Infof("Starting Diagram Renderer on %s (env: %s, output: %s)", addr, cfg.Environment, cfg.OutputDir)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
