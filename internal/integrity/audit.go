// Package integrity finds time entries whose worker type has been deleted.
// Such entries are excluded from cost totals; the audit makes them visible.
package integrity

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var orphanedGauge = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "contractor_orphaned_time_entries",
	Help: "Time entries referencing a worker type that no longer exists, as of the last audit.",
})

// ProjectOrphans lists the orphaned entries of one project.
type ProjectOrphans struct {
	ProjectPublicID string
	UserID          string
	EntryIDs        []int64
}

type Source interface {
	OrphanedEntries(ctx context.Context) ([]ProjectOrphans, error)
}

// Querier is satisfied by *pgxpool.Pool and pgx.Tx.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type PgxSource struct {
	db Querier
}

func NewPgxSource(db Querier) *PgxSource {
	return &PgxSource{db: db}
}

func (s *PgxSource) OrphanedEntries(ctx context.Context) ([]ProjectOrphans, error) {
	const q = `
SELECT p.public_id, p.user_id, array_agg(te.id ORDER BY te.id)
FROM time_entries te
JOIN projects p ON p.id = te.project_id
LEFT JOIN worker_types wt ON wt.id = te.worker_type_id
WHERE wt.id IS NULL
GROUP BY p.public_id, p.user_id
ORDER BY p.public_id;
`
	rows, err := s.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query orphaned entries: %w", err)
	}
	defer rows.Close()

	var out []ProjectOrphans
	for rows.Next() {
		var po ProjectOrphans
		if err := rows.Scan(&po.ProjectPublicID, &po.UserID, &po.EntryIDs); err != nil {
			return nil, err
		}
		out = append(out, po)
	}
	return out, rows.Err()
}

// Report summarizes one audit run.
type Report struct {
	Projects int
	Entries  int
	Took     time.Duration
}

type Auditor struct {
	src Source
	log *slog.Logger
}

func NewAuditor(src Source, log *slog.Logger) *Auditor {
	if log == nil {
		log = slog.Default()
	}
	return &Auditor{src: src, log: log}
}

// Run logs one warning per affected project and updates the gauge.
func (a *Auditor) Run(ctx context.Context) (Report, error) {
	start := time.Now()
	found, err := a.src.OrphanedEntries(ctx)
	if err != nil {
		a.log.Error("integrity audit failed", slog.Any("error", err))
		return Report{}, err
	}

	rep := Report{Projects: len(found)}
	for _, po := range found {
		rep.Entries += len(po.EntryIDs)
		a.log.Warn("project has time entries with deleted worker types",
			slog.String("project", po.ProjectPublicID),
			slog.String("user_id", po.UserID),
			slog.Int("count", len(po.EntryIDs)),
			slog.Any("entry_ids", po.EntryIDs),
		)
	}
	orphanedGauge.Set(float64(rep.Entries))
	rep.Took = time.Since(start)

	a.log.Info("integrity audit finished",
		slog.Int("projects", rep.Projects),
		slog.Int("orphaned_entries", rep.Entries),
		slog.Duration("took", rep.Took),
	)
	return rep, nil
}
