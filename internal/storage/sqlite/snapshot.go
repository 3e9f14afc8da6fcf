package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/pwr22/covbot/internal/core"
	"github.com/pwr22/covbot/pkg/log"
)

type SnapshotRepo struct {
	db *sql.DB
}

func NewSnapshotRepo(db *sql.DB) *SnapshotRepo {
	return &SnapshotRepo{db: db}
}

// Save persists a full snapshot as JSON and drops older rows so the table
// holds only the latest one.
func (r *SnapshotRepo) Save(ctx context.Context, countries map[string]*core.CountryRecord, fetchedAt time.Time) error {
	data, err := json.Marshal(countries)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM snapshots`); err != nil {
		return fmt.Errorf("failed to clear old snapshots: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO snapshots (data, fetched_at) VALUES (?, ?)`, string(data), fetchedAt.UTC()); err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}

	log.FromCtx(ctx).Debug().Int("countries", len(countries)).Time("fetched_at", fetchedAt).Msg("saved snapshot")
	return nil
}

func (r *SnapshotRepo) LoadLatest(ctx context.Context) (map[string]*core.CountryRecord, time.Time, error) {
	var (
		data      string
		fetchedAt time.Time
	)
	err := r.db.QueryRowContext(ctx, `SELECT data, fetched_at FROM snapshots ORDER BY id DESC LIMIT 1`).Scan(&data, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, core.ErrNoSnapshot
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to load snapshot: %w", err)
	}

	var countries map[string]*core.CountryRecord
	if err := json.Unmarshal([]byte(data), &countries); err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return countries, fetchedAt, nil
}
