package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPostgres(t *testing.T) {
	assert.True(t, IsPostgres("postgres://u:p@localhost:5432/shop?sslmode=disable"))
	assert.True(t, IsPostgres("postgresql://localhost/shop"))
	assert.False(t, IsPostgres("cloth_shop.db"))
	assert.False(t, IsPostgres(":memory:"))
}

func TestOpen_EmptyDSN(t *testing.T) {
	_, err := Open(context.Background(), "")
	require.Error(t, err)
}

func TestOpen_SqliteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shop.db")

	db, err := Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	var fk int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&fk).Error)
	assert.Equal(t, 1, fk)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}
