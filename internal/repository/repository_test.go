package repository

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/workwear/internal/database"
	"github.com/example/workwear/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(database.SQLite("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func newProduct(name string, price float64, categoryID uint) *models.Product {
	return &models.Product{
		Name:        name,
		Price:       price,
		CategoryID:  categoryID,
		Status:      models.StatusInStock,
		SaleType:    models.SaleBoth,
		IsPublished: true,
		IsNew:       true,
	}
}

func seedCategory(t *testing.T, repo *CategoryRepo, name string) *models.Category {
	t.Helper()
	category, err := repo.Create(context.Background(), name, nil)
	require.NoError(t, err)
	return category
}

func seedProduct(t *testing.T, repo *ProductRepo, product *models.Product, images ...string) *models.Product {
	t.Helper()
	created, err := repo.Create(context.Background(), product, images)
	require.NoError(t, err)
	return created
}
