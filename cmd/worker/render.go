package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/marinv/contractor-pm/config"
	"github.com/marinv/contractor-pm/internal/bootstrap"
	"github.com/marinv/contractor-pm/internal/storage/postgres"
)

// runRender writes a project's offer document to a file.
func runRender(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 4 {
		return fmt.Errorf("render needs 4 arguments, got %d\n%s", len(args), usage)
	}
	userID, publicID, format, out := args[0], args[1], args[2], args[3]

	db, err := postgres.NewConnection(ctx, &cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	services := bootstrap.NewServices(cfg, db, nil)
	doc, err := services.Offers.Report(ctx, userID, publicID, format)
	if err != nil {
		return err
	}

	if err := os.WriteFile(out, doc.Body, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	slog.Info("report written", slog.String("file", out), slog.String("format", doc.Format), slog.Int("bytes", len(doc.Body)))
	return nil
}
