package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"sales/internal/core"

	_ "modernc.org/sqlite"
)

// RunRecord is one completed run as stored in the ledger.
type RunRecord struct {
	ID               string
	Directory        string
	CommodityEnabled bool
	RecordCount      int
	CompletedAt      time.Time
}

// TotalRecord is one reported line of a stored run.
type TotalRecord struct {
	Kind     core.EntityKind
	Position int
	Entity   core.Entity
}

// SQLiteRepository keeps a history of completed runs and their totals.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Name identifies the repository as a report publisher.
func (r *SQLiteRepository) Name() string {
	return "ledger"
}

// Publish implements publish.Publisher by recording the run.
func (r *SQLiteRepository) Publish(ctx context.Context, s core.Summary) error {
	return r.RecordRun(ctx, s)
}

// RecordRun stores the run and every reported total in one transaction.
func (r *SQLiteRepository) RecordRun(ctx context.Context, s core.Summary) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, directory, commodity_enabled, record_count, completed_at) VALUES (?, ?, ?, ?, ?)`,
		s.RunID, s.Directory, s.CommodityEnabled, s.RecordCount, s.CompletedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO run_totals (run_id, kind, position, code, name, total) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare totals insert: %w", err)
	}
	defer stmt.Close()

	for kind, entities := range s.Tables() {
		for i, e := range entities {
			if _, err = stmt.ExecContext(ctx, s.RunID, string(kind), i, e.Code, e.Name, e.Total); err != nil {
				return fmt.Errorf("insert %s total %s: %w", kind, e.Code, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}

	slog.InfoContext(ctx, "Run recorded in ledger",
		"run_id", s.RunID,
		"record_count", s.RecordCount,
		"branches", len(s.Branches),
		"commodities", len(s.Commodities))
	return nil
}

// ListRuns returns the most recent runs first.
func (r *SQLiteRepository) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, directory, commodity_enabled, record_count, completed_at
		   FROM runs
		  ORDER BY completed_at DESC, rowid DESC
		  LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var (
			rec       RunRecord
			completed string
		)
		if err := rows.Scan(&rec.ID, &rec.Directory, &rec.CommodityEnabled, &rec.RecordCount, &completed); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		rec.CompletedAt, err = time.Parse(time.RFC3339Nano, completed)
		if err != nil {
			return nil, fmt.Errorf("parse completed_at for run %s: %w", rec.ID, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return out, nil
}

// RunTotals returns the stored totals of one run, branches first, each kind
// in report order.
func (r *SQLiteRepository) RunTotals(ctx context.Context, runID string) ([]TotalRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT kind, position, code, name, total
		   FROM run_totals
		  WHERE run_id = ?
		  ORDER BY CASE kind WHEN 'branch' THEN 0 ELSE 1 END, position`, runID)
	if err != nil {
		return nil, fmt.Errorf("get run totals: %w", err)
	}
	defer rows.Close()

	var out []TotalRecord
	for rows.Next() {
		var (
			rec  TotalRecord
			kind string
		)
		if err := rows.Scan(&kind, &rec.Position, &rec.Entity.Code, &rec.Entity.Name, &rec.Entity.Total); err != nil {
			return nil, fmt.Errorf("scan total: %w", err)
		}
		rec.Kind = core.EntityKind(kind)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate totals: %w", err)
	}
	return out, nil
}
