// Command seed loads categories and vehicles from a YAML catalog.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"vehicle-rental/cmd/bootstrap"
	"vehicle-rental/internal/usecase/commands"

	"go.uber.org/fx"
)

func main() {
	path := flag.String("file", "cmd/seed/catalog.yaml", "catalog file to load")
	flag.Parse()

	f, err := os.Open(*path)
	if err != nil {
		slog.Error("failed to open catalog", "path", *path, "error", err)
		os.Exit(1)
	}
	catalog, err := loadCatalog(f)
	_ = f.Close()
	if err != nil {
		slog.Error("failed to parse catalog", "path", *path, "error", err)
		os.Exit(1)
	}

	var seeds commands.SeedCommands
	app := fx.New(
		bootstrap.CoreModule,
		fx.NopLogger,
		fx.Populate(&seeds),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := app.Stop(context.Background()); err != nil {
			slog.Warn("failed to stop cleanly", "error", err)
		}
	}()

	result, err := seeds.Seed(ctx, catalog)
	if err != nil {
		slog.Error("seeding failed", "error", err)
		return
	}
	slog.Info("catalog seeded",
		"categories_created", result.CategoriesCreated,
		"vehicles_created", result.VehiclesCreated,
		"vehicles_skipped", result.VehiclesSkipped,
	)
}
