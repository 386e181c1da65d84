// Package sqlite provides a SQLite-backed implementation of the lookup log port.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // Import the driver anonymously

	"github.com/ewilliams-labs/reelvibe/internal/core/domain"
	"github.com/ewilliams-labs/reelvibe/internal/core/ports"
)

const (
	DefaultRecentLimit = 20
	MaxRecentLimit     = 100
)

// Adapter implements the lookup log port for SQLite
type Adapter struct {
	db *sql.DB
}

var _ ports.LookupLog = (*Adapter)(nil)

// NewAdapter creates a connection and runs the schema migration
func NewAdapter(storagePath string) (*Adapter, error) {
	db, err := sql.Open("sqlite3", storagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	// One writer at a time; also keeps ":memory:" on a single database.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}

	adapter := &Adapter{db: db}
	if err := adapter.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return adapter, nil
}

// Close ensures the DB connection is closed gracefully
func (a *Adapter) Close() error {
	return a.db.Close()
}

// Record appends one lookup. Missing ID and CreatedAt are filled in.
func (a *Adapter) Record(ctx context.Context, rec domain.LookupRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	_, err := a.db.ExecContext(ctx, `
		INSERT INTO lookups (id, operation, title, year, outcome, recommendations, duration_ms, request_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		rec.ID,
		rec.Operation,
		rec.Title,
		rec.Year,
		rec.Outcome,
		rec.Recommendations,
		rec.DurationMs,
		rec.RequestID,
		rec.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert lookup: %w", err)
	}
	return nil
}

// Recent returns up to limit lookups, newest first.
func (a *Adapter) Recent(ctx context.Context, limit int) ([]domain.LookupRecord, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	if limit > MaxRecentLimit {
		limit = MaxRecentLimit
	}

	rows, err := a.db.QueryContext(ctx, `
		SELECT id, operation, title, IFNULL(year, ''), outcome, recommendations, duration_ms,
			IFNULL(request_id, ''), created_at
		FROM lookups
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load lookups: %w", err)
	}
	defer rows.Close()

	records := make([]domain.LookupRecord, 0, limit)
	for rows.Next() {
		var rec domain.LookupRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.Operation,
			&rec.Title,
			&rec.Year,
			&rec.Outcome,
			&rec.Recommendations,
			&rec.DurationMs,
			&rec.RequestID,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan lookup: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate lookups: %w", err)
	}

	return records, nil
}

func (a *Adapter) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS lookups (
		id TEXT PRIMARY KEY,
		operation TEXT NOT NULL,
		title TEXT NOT NULL,
		year TEXT,
		outcome TEXT NOT NULL,
		recommendations INTEGER NOT NULL DEFAULT 0,
		duration_ms INTEGER NOT NULL DEFAULT 0,
		request_id TEXT,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_lookups_created_at ON lookups (created_at);
	`
	if _, err := a.db.Exec(query); err != nil {
		return err
	}

	// Databases created before request correlation lack this column.
	if _, err := a.db.Exec("ALTER TABLE lookups ADD COLUMN request_id TEXT"); err != nil {
		if !isDuplicateColumnError(err) {
			return err
		}
	}

	return nil
}

func isDuplicateColumnError(err error) bool {
	return err != nil && (strings.Contains(err.Error(), "duplicate column") || strings.Contains(err.Error(), "already exists"))
}
