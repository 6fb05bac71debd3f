// internal/services/product_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/falconprime/backend/internal/models"
	"github.com/falconprime/backend/internal/utils"
)

func TestCreateProduct(t *testing.T) {
	db := newTestDB(t)
	svc := NewProductService(db)

	category := seedCategory(t, db, "Ropa", "ropa")

	product, err := svc.CreateProduct(&CreateProductRequest{
		Name:       "Remera Básica Blanca",
		CategoryID: category.ID,
		Price:      decimal.RequireFromString("7999.00"),
		Color:      "blanco",
		Images: []ProductImageInput{
			{URL: "https://cdn.example.com/remera-1.jpg", Alt: "frente"},
			{URL: "https://cdn.example.com/remera-2.jpg", Alt: "espalda"},
		},
		Sizes: []ProductSizeInput{
			{Size: "S", Stock: 5},
			{Size: "M", Stock: 8},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "remera-basica-blanca", product.Slug)
	assert.True(t, product.IsActive)
	require.Len(t, product.Images, 2)
	assert.Equal(t, 0, product.Images[0].SortOrder)
	assert.Equal(t, 1, product.Images[1].SortOrder)
	require.Len(t, product.Sizes, 2)

	t.Run("unknown category", func(t *testing.T) {
		_, err := svc.CreateProduct(&CreateProductRequest{
			Name:       "Huérfano",
			CategoryID: uuid.New(),
			Price:      decimal.RequireFromString("100.00"),
		})
		require.EqualError(t, err, "category not found")
	})

	t.Run("non-positive price", func(t *testing.T) {
		_, err := svc.CreateProduct(&CreateProductRequest{
			Name:       "Gratis",
			CategoryID: category.ID,
			Price:      decimal.Zero,
		})
		require.EqualError(t, err, "price must be positive")
	})
}

func TestCreateProductSlugCollision(t *testing.T) {
	db := newTestDB(t)
	svc := NewProductService(db)

	category := seedCategory(t, db, "Ropa", "ropa")

	slugs := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		product, err := svc.CreateProduct(&CreateProductRequest{
			Name:       "Remera Negra",
			CategoryID: category.ID,
			Price:      decimal.RequireFromString("8500.00"),
		})
		require.NoError(t, err)
		slugs = append(slugs, product.Slug)
	}

	assert.Equal(t, []string{"remera-negra", "remera-negra-1", "remera-negra-2"}, slugs)
}

func TestGetProductBySlug(t *testing.T) {
	db := newTestDB(t)
	svc := NewProductService(db)

	category := seedCategory(t, db, "Ropa", "ropa")
	seedProduct(t, db, category.ID, "Camisa Cuadros", "camisa-cuadros", "21000.00", map[string]int{"M": 3})

	product, err := svc.GetProductBySlug("camisa-cuadros")
	require.NoError(t, err)
	assert.Equal(t, "Camisa Cuadros", product.Name)
	require.Len(t, product.Sizes, 1)

	_, err = svc.GetProductBySlug("no-existe")
	require.EqualError(t, err, "product not found")
}

func TestUpdateProduct(t *testing.T) {
	db := newTestDB(t)
	svc := NewProductService(db)

	category := seedCategory(t, db, "Ropa", "ropa")
	product := seedProduct(t, db, category.ID, "Buzo Liso", "buzo-liso", "18000.00", map[string]int{"S": 2, "M": 4})

	t.Run("rename regenerates the slug", func(t *testing.T) {
		name := "Buzo Estampado"
		updated, err := svc.UpdateProduct(product.ID, &UpdateProductRequest{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "Buzo Estampado", updated.Name)
		assert.Equal(t, "buzo-estampado", updated.Slug)
	})

	t.Run("sizes are replaced wholesale", func(t *testing.T) {
		sizes := []ProductSizeInput{
			{Size: "M", Stock: 7},
			{Size: "L", Stock: 3},
		}
		updated, err := svc.UpdateProduct(product.ID, &UpdateProductRequest{Sizes: &sizes})
		require.NoError(t, err)
		require.Len(t, updated.Sizes, 2)

		// The old S row is gone
		var count int64
		require.NoError(t, db.Model(&models.ProductSize{}).
			Where("product_id = ? AND size = ?", product.ID, "S").
			Count(&count).Error)
		assert.Zero(t, count)
		assert.Equal(t, 7, stockOf(t, db, product.ID, "M"))
	})

	t.Run("deactivation", func(t *testing.T) {
		inactive := false
		updated, err := svc.UpdateProduct(product.ID, &UpdateProductRequest{IsActive: &inactive})
		require.NoError(t, err)
		assert.False(t, updated.IsActive)
	})

	t.Run("missing product", func(t *testing.T) {
		name := "Nada"
		_, err := svc.UpdateProduct(uuid.New(), &UpdateProductRequest{Name: &name})
		require.EqualError(t, err, "product not found")
	})
}

func TestDeleteProductKeepsOrderSnapshots(t *testing.T) {
	db := newTestDB(t)
	productSvc := NewProductService(db)
	orderSvc := NewOrderService(db, nil)

	category := seedCategory(t, db, "Ropa", "ropa")
	product := seedProduct(t, db, category.ID, "Remera Edición Limitada", "remera-limitada", "15000.00", map[string]int{"M": 5})

	order, err := orderSvc.PlaceOrder(placeOrderRequest(cartLine(product, "M", 1)))
	require.NoError(t, err)

	require.NoError(t, productSvc.DeleteProduct(product.ID))

	_, err = productSvc.GetProduct(product.ID)
	require.EqualError(t, err, "product not found")

	// The order still reads back with its snapshot intact
	saved, err := orderSvc.GetOrder(order.ID)
	require.NoError(t, err)
	require.Len(t, saved.Items, 1)
	assert.Equal(t, "Remera Edición Limitada", saved.Items[0].ProductName)
	assert.True(t, saved.Items[0].UnitPrice.Equal(decimal.RequireFromString("15000.00")))
}

func TestSearchProducts(t *testing.T) {
	db := newTestDB(t)
	svc := NewProductService(db)

	ropa := seedCategory(t, db, "Ropa", "ropa")
	calzado := seedCategory(t, db, "Calzado", "calzado")

	remera := seedProduct(t, db, ropa.ID, "Remera Azul", "remera-azul", "8000.00", map[string]int{"M": 5})
	remera.Color = "azul"
	require.NoError(t, db.Save(remera).Error)

	seedProduct(t, db, ropa.ID, "Remera Agotada", "remera-agotada", "8000.00", map[string]int{"M": 0})

	botin := seedProduct(t, db, calzado.ID, "Botín Negro", "botin-negro", "60000.00", map[string]int{"42": 2})

	oculto := seedProduct(t, db, ropa.ID, "Remera Oculta", "remera-oculta", "9000.00", map[string]int{"M": 3})
	require.NoError(t, db.Model(oculto).Update("is_active", false).Error)

	base := func() ProductSearchParams {
		return ProductSearchParams{
			PaginationParams: utils.PaginationParams{Page: 1, Limit: 20, Sort: "created_at", Order: "desc"},
		}
	}

	t.Run("inactive products are hidden from the store", func(t *testing.T) {
		products, total, err := svc.SearchProducts(base())
		require.NoError(t, err)
		assert.EqualValues(t, 3, total)
		for _, p := range products {
			assert.NotEqual(t, "remera-oculta", p.Slug)
		}
	})

	t.Run("admin listing includes inactive", func(t *testing.T) {
		params := base()
		params.IncludeAll = true
		_, total, err := svc.SearchProducts(params)
		require.NoError(t, err)
		assert.EqualValues(t, 4, total)
	})

	t.Run("category filter", func(t *testing.T) {
		params := base()
		params.CategorySlug = "calzado"
		products, total, err := svc.SearchProducts(params)
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, products, 1)
		assert.Equal(t, botin.ID, products[0].ID)
	})

	t.Run("size filter excludes drained stock", func(t *testing.T) {
		params := base()
		params.Size = "M"
		products, total, err := svc.SearchProducts(params)
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, products, 1)
		assert.Equal(t, "remera-azul", products[0].Slug)
	})

	t.Run("color filter", func(t *testing.T) {
		params := base()
		params.Color = "azul"
		_, total, err := svc.SearchProducts(params)
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
	})

	t.Run("price range", func(t *testing.T) {
		params := base()
		min := decimal.RequireFromString("10000.00")
		params.PriceMin = &min
		products, total, err := svc.SearchProducts(params)
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, products, 1)
		assert.Equal(t, "botin-negro", products[0].Slug)
	})
}
