// Package testutil opens throwaway in-memory stores for tests.
package testutil

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/fabric_billing/internal/models"
	"github.com/Skotchmaster/fabric_billing/pkg/db"
)

func NewStore(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := db.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(models.All()...))

	t.Cleanup(func() { _ = db.Close(conn) })
	return conn
}

func CreateProduct(t *testing.T, conn *gorm.DB, name, category, price string, stock int) models.Product {
	t.Helper()

	p := models.Product{
		Name:        name,
		Category:    category,
		Price:       decimal.RequireFromString(price),
		Stock:       stock,
		Description: name + " description",
	}
	require.NoError(t, conn.Create(&p).Error)
	return p
}

func Count(t *testing.T, conn *gorm.DB, model any) int64 {
	t.Helper()

	var n int64
	require.NoError(t, conn.Model(model).Count(&n).Error)
	return n
}
