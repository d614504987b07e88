// Package sqlite provides the database-backed SnapshotStore. The whole
// record set serializes to one JSON payload stored under a single key,
// mirroring the file store's one-snapshot-per-key layout.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/carbonview/energy-review/internal/application/port"
	"github.com/carbonview/energy-review/internal/domain/entity"
	"github.com/carbonview/energy-review/pkg/database"
)

// SnapshotStore implements port.SnapshotStore over a sqlite kv table
type SnapshotStore struct {
	db     *database.DB
	key    string
	logger *zap.Logger
}

// NewSnapshotStore creates the store and ensures its schema exists
func NewSnapshotStore(db *database.DB, key string, logger *zap.Logger) (*SnapshotStore, error) {
	schema := `
		CREATE TABLE IF NOT EXISTS snapshots (
			snapshot_key TEXT PRIMARY KEY,
			payload      TEXT NOT NULL,
			updated_at   DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create snapshots table: %w", err)
	}

	return &SnapshotStore{db: db, key: key, logger: logger}, nil
}

// Load reads the snapshot row, reporting found=false when the key is absent
func (s *SnapshotStore) Load(ctx context.Context) ([]entity.SubmissionRecord, bool, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		"SELECT payload FROM snapshots WHERE snapshot_key = ?", s.key,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		s.logger.Error("Failed to load snapshot", zap.String("key", s.key), zap.Error(err))
		return nil, false, fmt.Errorf("failed to load snapshot: %w", err)
	}

	var records []entity.SubmissionRecord
	if err := json.Unmarshal([]byte(payload), &records); err != nil {
		return nil, false, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if err := entity.ValidateRecords(records); err != nil {
		return nil, false, fmt.Errorf("invalid snapshot: %w", err)
	}

	return records, true, nil
}

// Save replaces the snapshot row with the full record set
func (s *SnapshotStore) Save(ctx context.Context, records []entity.SubmissionRecord) error {
	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	err = s.db.WithTransaction(func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM snapshots WHERE snapshot_key = ?", s.key); err != nil {
			return fmt.Errorf("failed to clear snapshot: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO snapshots (snapshot_key, payload) VALUES (?, ?)",
			s.key, string(payload)); err != nil {
			return fmt.Errorf("failed to write snapshot: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to save snapshot", zap.String("key", s.key), zap.Error(err))
		return err
	}

	s.logger.Debug("Snapshot saved",
		zap.String("key", s.key),
		zap.Int("records", len(records)))
	return nil
}

// Verify interface compliance
var _ port.SnapshotStore = (*SnapshotStore)(nil)
