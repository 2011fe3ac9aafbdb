package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/marinv/contractor-pm/config"
	"github.com/marinv/contractor-pm/pkg/logging"
)

const usage = `usage:
  worker render <user_id> <project_public_id> <html|pdf> <out_file>
  worker audit`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", slog.Any("error", err))
		os.Exit(1)
	}
	logging.Setup(cfg.App.LogLevel)

	ctx := context.Background()
	switch os.Args[1] {
	case "render":
		err = runRender(ctx, cfg, os.Args[2:])
	case "audit":
		err = runAudit(ctx, cfg)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n%s\n", os.Args[1], usage)
		os.Exit(2)
	}
	if err != nil {
		slog.Error(os.Args[1]+" failed", slog.Any("error", err))
		os.Exit(1)
	}
}
