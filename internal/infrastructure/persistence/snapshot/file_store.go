// Package snapshot provides file-backed persistence of the full record
// set. One snapshot is one JSON array stored under a single named key.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"go.uber.org/zap"

	"github.com/carbonview/energy-review/internal/application/port"
	"github.com/carbonview/energy-review/internal/domain/entity"
)

// FileStore implements port.SnapshotStore as <dir>/<key>.json.
// Writes go through an atomic rename so a crash mid-save can never leave
// a torn snapshot behind.
type FileStore struct {
	dir    string
	key    string
	logger *zap.Logger
}

// NewFileStore creates a file snapshot store, ensuring the directory exists
func NewFileStore(dir, key string, logger *zap.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	return &FileStore{dir: dir, key: key, logger: logger}, nil
}

func (s *FileStore) path() string {
	return filepath.Join(s.dir, s.key+".json")
}

// Load reads the snapshot. A missing file means no snapshot has been
// written yet and is reported as found=false, not as an error.
func (s *FileStore) Load(ctx context.Context) ([]entity.SubmissionRecord, bool, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var records []entity.SubmissionRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, false, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if err := entity.ValidateRecords(records); err != nil {
		return nil, false, fmt.Errorf("invalid snapshot: %w", err)
	}

	s.logger.Debug("Snapshot loaded",
		zap.String("key", s.key),
		zap.Int("records", len(records)))
	return records, true, nil
}

// Save overwrites the snapshot with the full record set
func (s *FileStore) Save(ctx context.Context, records []entity.SubmissionRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	if err := renameio.WriteFile(s.path(), data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	s.logger.Debug("Snapshot saved",
		zap.String("key", s.key),
		zap.Int("records", len(records)))
	return nil
}

// Verify interface compliance
var _ port.SnapshotStore = (*FileStore)(nil)
