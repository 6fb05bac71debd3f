// internal/services/testutil_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/falconprime/backend/internal/database"
	"github.com/falconprime/backend/internal/models"
)

// newTestDB opens a private in-memory database. A single connection
// keeps concurrent test transactions serialized the way a row lock
// would on postgres.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))

	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

func seedCategory(t *testing.T, db *gorm.DB, name, slug string) *models.Category {
	t.Helper()

	category := &models.Category{Name: name, Slug: slug}
	require.NoError(t, db.Create(category).Error)
	return category
}

// seedProduct creates a product with the given per-size stock counters.
func seedProduct(t *testing.T, db *gorm.DB, categoryID uuid.UUID, name, slug, price string, stock map[string]int) *models.Product {
	t.Helper()

	product := &models.Product{
		CategoryID: categoryID,
		Name:       name,
		Slug:       slug,
		Price:      decimal.RequireFromString(price),
		IsActive:   true,
	}
	require.NoError(t, db.Create(product).Error)

	for size, qty := range stock {
		require.NoError(t, db.Create(&models.ProductSize{
			ProductID: product.ID,
			Size:      size,
			Stock:     qty,
		}).Error)
	}

	return product
}

func stockOf(t *testing.T, db *gorm.DB, productID uuid.UUID, size string) int {
	t.Helper()

	var row models.ProductSize
	require.NoError(t, db.Where("product_id = ? AND size = ?", productID, size).First(&row).Error)
	return row.Stock
}
