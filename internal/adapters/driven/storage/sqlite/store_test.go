package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docintake/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, string) {
	t.Helper()

	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NotNil(t, store)
	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})

	return store, dir
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	store, dir := setupTestStore(t)

	assert.Equal(t, filepath.Join(dir, DatabaseFile), store.Path())
	_, err := os.Stat(store.Path())
	assert.NoError(t, err)
}

func TestNewStore_MigrationsAreRecorded(t *testing.T) {
	store, dir := setupTestStore(t)

	var version int
	require.NoError(t, store.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version))
	assert.Equal(t, 1, version)

	// Reopening does not re-run migrations.
	again, err := NewStore(dir)
	require.NoError(t, err)
	defer again.Close()

	var count int
	require.NoError(t, again.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestRecentStore_LoadEmpty(t *testing.T) {
	store, _ := setupTestStore(t)

	entries, err := store.RecentStore().Load(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestRecentStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store, dir := setupTestStore(t)
	base := time.Date(2024, 3, 15, 12, 0, 0, 123456000, time.UTC)

	in := []domain.RecentDocumentEntry{
		{DocumentID: "c", Category: domain.CategoryComplaints, Urgency: domain.UrgencyHigh, ProcessedAt: base},
		{DocumentID: "b", Category: domain.CategoryKYCUpdates, Urgency: domain.UrgencyLow, ProcessedAt: base.Add(-time.Hour)},
		{DocumentID: "a", Category: "unknown_kind", Urgency: "critical", ProcessedAt: base.Add(-48 * time.Hour)},
	}
	require.NoError(t, store.RecentStore().Save(ctx, in))

	out, err := store.RecentStore().Load(ctx)
	require.NoError(t, err)
	require.Len(t, out, 3)
	for i := range in {
		assert.Equal(t, in[i].DocumentID, out[i].DocumentID)
		assert.Equal(t, in[i].Category, out[i].Category)
		assert.Equal(t, in[i].Urgency, out[i].Urgency)
		assert.True(t, in[i].ProcessedAt.Equal(out[i].ProcessedAt))
	}

	// Survives reopening the database.
	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()
	again, err := reopened.RecentStore().Load(ctx)
	require.NoError(t, err)
	assert.Len(t, again, 3)
	assert.Equal(t, "c", again[0].DocumentID)
}

func TestRecentStore_SaveReplacesRecord(t *testing.T) {
	ctx := context.Background()
	store, _ := setupTestStore(t)
	recent := store.RecentStore()

	require.NoError(t, recent.Save(ctx, []domain.RecentDocumentEntry{{DocumentID: "a"}, {DocumentID: "b"}}))
	require.NoError(t, recent.Save(ctx, []domain.RecentDocumentEntry{{DocumentID: "z"}}))

	out, err := recent.Load(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "z", out[0].DocumentID)

	var rows int
	require.NoError(t, store.db.QueryRow("SELECT COUNT(*) FROM kv").Scan(&rows))
	assert.Equal(t, 1, rows)
}

func TestRecentStore_MalformedRecord(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"not json", "{{{"},
		{"wrong shape", `{"document_id": "a"}`},
		{"missing id", `[{"category": "complaints"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store, _ := setupTestStore(t)
			require.NoError(t, store.putValue(ctx, RecentDocumentsKey, tt.value))

			_, err := store.RecentStore().Load(ctx)

			assert.ErrorIs(t, err, domain.ErrMalformedPersistedState)
		})
	}
}

func TestRecentStore_Close(t *testing.T) {
	store, _ := setupTestStore(t)
	assert.NoError(t, store.RecentStore().Close())
}
