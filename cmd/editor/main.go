package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"floorplan-editor/internal/common/config"
	common "floorplan-editor/internal/common/handlers"
	"floorplan-editor/internal/common/logger"
	"floorplan-editor/internal/common/middleware"
	editorhandlers "floorplan-editor/internal/editor/handlers"
	editor "floorplan-editor/internal/editor/service"
	planhandlers "floorplan-editor/internal/floorplan/handlers"
	"floorplan-editor/internal/floorplan/repository"
	"floorplan-editor/internal/floorplan/service"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"go.uber.org/zap"
)

// ============================================================
// Floor Plan Editor
// ============================================================

func main() {
	cfg := config.Load()

	log, err := logger.NewLogger(cfg.LogLevel, cfg.LogFormat, "floorplan-editor")
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck

	db, err := repository.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal("open db", zap.String("path", cfg.DBPath), zap.Error(err))
	}
	defer db.Close()

	slot := repository.NewSQLiteSlot(db)
	if err := slot.Init(context.Background(), cfg.MigrationsPath); err != nil {
		log.Fatal("init db", zap.Error(err))
	}

	store := service.NewStore(context.Background(), slot, cfg.StorageKey, log.Named("store"))
	sessions := editor.NewSessionManager()

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Floor Plan Editor",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger())
	app.Use(middleware.CORS())

	// ============================================================
	// Health & Docs
	// ============================================================

	common.NewHealthHandler(log, map[string]common.Pinger{"sqlite": slot}).Register(app)
	app.Get("/docs/openapi.yaml", common.SwaggerSpec(cfg.OpenAPIPath))
	app.Get("/docs", common.SwaggerUI("Floor Plan Editor", "/docs/openapi.yaml"))

	// ============================================================
	// API Routes
	// ============================================================

	api := app.Group("/api/v1")
	editorhandlers.NewEditorHandler(sessions, log.Named("editor")).Register(api)
	planhandlers.NewPlanHandler(store, sessions, log.Named("plans")).Register(api)

	// ============================================================
	// Server Start
	// ============================================================

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	idle := time.Duration(cfg.SessionIdleMin) * time.Minute
	if idle > 0 {
		go sessions.Reap(ctx, time.Minute, idle, log.Named("sessions"))
	}

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			log.Error("shutdown", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Info("starting floor plan editor",
		zap.String("addr", addr),
		zap.String("env", cfg.Environment),
		zap.Int("plans", len(store.List())),
	)

	if err := app.Listen(addr); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
