package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/carbonview/energy-review/internal/domain/entity"
	"github.com/carbonview/energy-review/internal/domain/review"
	"github.com/carbonview/energy-review/pkg/database"
)

func newSnapshotStore(t *testing.T) *SnapshotStore {
	t.Helper()

	db, err := database.New(database.Config{
		Path:         filepath.Join(t.TempDir(), "review.db"),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store, err := NewSnapshotStore(db, "poc_submissions", zap.NewNop())
	require.NoError(t, err)
	return store
}

func TestSnapshotStore_RoundTrip(t *testing.T) {
	store := newSnapshotStore(t)
	ctx := context.Background()

	records := entity.SeedSubmissions()
	require.NoError(t, store.Save(ctx, records))

	loaded, found, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, records, loaded)
}

func TestSnapshotStore_MissingKey(t *testing.T) {
	store := newSnapshotStore(t)

	records, found, err := store.Load(context.Background())

	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, records)
}

func TestSnapshotStore_SaveReplacesPreviousSnapshot(t *testing.T) {
	store := newSnapshotStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, entity.SeedSubmissions()))
	require.NoError(t, store.Save(ctx, []entity.SubmissionRecord{
		{ID: "only", Status: review.StatusRejected, ReviewNotes: "數據異常"},
	}))

	loaded, found, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, loaded, 1)
	assert.Equal(t, review.StatusRejected, loaded[0].Status)
}
