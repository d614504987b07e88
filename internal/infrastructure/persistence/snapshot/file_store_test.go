package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/carbonview/energy-review/internal/domain/entity"
	"github.com/carbonview/energy-review/internal/domain/review"
)

func newFileStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(t.TempDir(), "poc_submissions", zap.NewNop())
	require.NoError(t, err)
	return store
}

func TestFileStore_RoundTrip(t *testing.T) {
	store := newFileStore(t)
	ctx := context.Background()

	records := entity.SeedSubmissions()
	require.NoError(t, store.Save(ctx, records))

	loaded, found, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, records, loaded)
}

func TestFileStore_MissingSnapshotIsNotAnError(t *testing.T) {
	store := newFileStore(t)

	records, found, err := store.Load(context.Background())

	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, records)
}

func TestFileStore_SaveOverwrites(t *testing.T) {
	store := newFileStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, entity.SeedSubmissions()))
	require.NoError(t, store.Save(ctx, []entity.SubmissionRecord{
		{ID: "only", Status: review.StatusSubmitted},
	}))

	loaded, found, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, loaded, 1)
	assert.Equal(t, "only", loaded[0].ID)
}

func TestFileStore_CorruptPayloadIsAnError(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, "poc_submissions", zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "poc_submissions.json"), []byte("{not json"), 0644))

	_, _, err = store.Load(context.Background())
	assert.Error(t, err)
}

func TestFileStore_RejectsInvalidStatusStrings(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, "poc_submissions", zap.NewNop())
	require.NoError(t, err)

	payload := `[{"id":"sub_x","status":"pending"}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "poc_submissions.json"), []byte(payload), 0644))

	_, _, err = store.Load(context.Background())
	assert.ErrorIs(t, err, review.ErrInvalidStatus)
}
