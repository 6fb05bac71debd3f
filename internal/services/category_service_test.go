// internal/services/category_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategories(t *testing.T) {
	db := newTestDB(t)
	svc := NewCategoryService(db)

	created, err := svc.CreateCategory(&CreateCategoryRequest{Name: "Edición Cápsula"})
	require.NoError(t, err)
	assert.Equal(t, "edicion-capsula", created.Slug)

	_, err = svc.CreateCategory(&CreateCategoryRequest{Name: "Edición Cápsula"})
	require.EqualError(t, err, "category already exists")

	seedCategory(t, db, "Accesorios", "accesorios")

	categories, err := svc.ListCategories()
	require.NoError(t, err)
	require.Len(t, categories, 2)
	// Alphabetical for the storefront filter dropdown
	assert.Equal(t, "Accesorios", categories[0].Name)
	assert.Equal(t, "Edición Cápsula", categories[1].Name)
}
