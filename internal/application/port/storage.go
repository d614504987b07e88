package port

import (
	"context"

	"github.com/carbonview/energy-review/internal/domain/entity"
)

// SnapshotStore persists the full record set as one named snapshot.
// Load returns found=false when no snapshot exists; that is not an error
// and callers are expected to reseed from fixtures.
type SnapshotStore interface {
	Load(ctx context.Context) (records []entity.SubmissionRecord, found bool, err error)
	Save(ctx context.Context, records []entity.SubmissionRecord) error
}
