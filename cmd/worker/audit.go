package main

import (
	"context"
	"fmt"

	"github.com/marinv/contractor-pm/config"
	"github.com/marinv/contractor-pm/internal/bootstrap"
	"github.com/marinv/contractor-pm/internal/integrity"
	"github.com/marinv/contractor-pm/internal/storage/postgres"
)

func runAudit(ctx context.Context, cfg *config.Config) error {
	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: postgres.DSN(&cfg.Database)})
	if err != nil {
		return err
	}
	defer pool.Close()

	rep, err := integrity.NewAuditor(integrity.NewPgxSource(pool), nil).Run(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%d orphaned time entries across %d projects\n", rep.Entries, rep.Projects)
	return nil
}
