package main

import (
	"log"
	"log/slog"

	"github.com/vbonduro/pantrychef/internal/config"
	"github.com/vbonduro/pantrychef/internal/db"
	"github.com/vbonduro/pantrychef/internal/logging"
	"github.com/vbonduro/pantrychef/internal/pricing"
	"github.com/vbonduro/pantrychef/internal/recipe"
	"github.com/vbonduro/pantrychef/internal/service"
	"github.com/vbonduro/pantrychef/internal/store"
	"github.com/vbonduro/pantrychef/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	catalog, err := loadCatalog(cfg, logger)
	if err != nil {
		logger.Error("failed to load price catalog", "error", err)
		return
	}

	pantry := service.NewPantryService(
		store.NewLeftoverStore(database),
		recipe.NewSynthesizer(recipe.NewSource(cfg.NutritionSeed)),
		service.PantryOptions{
			ExpiringWindow:    cfg.ExpiringWindow,
			DefaultExpiryDays: cfg.DefaultExpiryDays,
		},
		logger,
	)
	groceries := service.NewGroceryService(store.NewGroceryStore(database), catalog, logger)

	server := web.NewServer(pantry, groceries, web.Options{
		DefaultUserID:  cfg.DefaultUserID,
		MetricsEnabled: cfg.MetricsEnabled,
	}, logger)

	if err := server.ListenAndServe(cfg.ListenAddr); err != nil {
		logger.Error("server error", "error", err)
	}
}

func loadCatalog(cfg *config.Config, logger *slog.Logger) (*pricing.StaticCatalog, error) {
	if cfg.CatalogPath == "" {
		logger.Info("using embedded price catalog")
		return pricing.DefaultCatalog()
	}
	logger.Info("using price catalog file", "path", cfg.CatalogPath)
	return pricing.LoadCatalogFile(cfg.CatalogPath)
}
