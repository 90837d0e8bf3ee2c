package user

import (
	"context"
	"database/sql"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libraryBackend/internal/config"
	"libraryBackend/package/client/database"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	cfg := &config.Config{
		Storage: config.StorageConfig{Driver: "sqlite", Path: ":memory:"},
	}
	log := logrus.New()
	log.SetOutput(io.Discard)

	db, err := database.Init(cfg, log)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestStorage_CreateAssignsIDAndDefaults(t *testing.T) {
	ctx := context.Background()
	storage := NewStorage(setupTestDB(t))

	created, err := storage.Create(ctx, "alice", "hash-1", false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "alice", created.Username)
	assert.Equal(t, "hash-1", created.PasswordHash)
	assert.False(t, created.IsAdmin)

	second, err := storage.Create(ctx, "bob", "hash-2", true)
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.ID)
	assert.True(t, second.IsAdmin)
}

func TestStorage_GetByUsername(t *testing.T) {
	ctx := context.Background()
	storage := NewStorage(setupTestDB(t))

	created, err := storage.Create(ctx, "alice", "hash-1", false)
	require.NoError(t, err)

	got, err := storage.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = storage.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStorage_GetByID_NotFound(t *testing.T) {
	ctx := context.Background()
	storage := NewStorage(setupTestDB(t))

	_, err := storage.GetByID(ctx, 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStorage_List(t *testing.T) {
	ctx := context.Background()
	storage := NewStorage(setupTestDB(t))

	users, err := storage.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	_, err = storage.Create(ctx, "alice", "hash-1", false)
	require.NoError(t, err)
	_, err = storage.Create(ctx, "bob", "hash-2", true)
	require.NoError(t, err)

	users, err = storage.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "bob", users[1].Username)
}
