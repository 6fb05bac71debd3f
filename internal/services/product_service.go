// internal/services/product_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/falconprime/backend/internal/models"
	"github.com/falconprime/backend/internal/utils"
)

type ProductService struct {
	db *gorm.DB
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

type ProductImageInput struct {
	URL string `json:"url" validate:"required,url"`
	Alt string `json:"alt,omitempty"`
}

type ProductSizeInput struct {
	Size  string `json:"size" validate:"required,size_label"`
	Stock int    `json:"stock" validate:"min=0"`
}

type CreateProductRequest struct {
	Name        string              `json:"name" validate:"required,min=1,max=255"`
	Description string              `json:"description,omitempty"`
	Price       decimal.Decimal     `json:"price"`
	CategoryID  uuid.UUID           `json:"category_id" validate:"required"`
	Color       string              `json:"color,omitempty"`
	Images      []ProductImageInput `json:"images,omitempty" validate:"dive"`
	Sizes       []ProductSizeInput  `json:"sizes,omitempty" validate:"dive"`
}

type UpdateProductRequest struct {
	Name        *string              `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string              `json:"description,omitempty"`
	Price       *decimal.Decimal     `json:"price,omitempty"`
	CategoryID  *uuid.UUID           `json:"category_id,omitempty"`
	Color       *string              `json:"color,omitempty"`
	IsActive    *bool                `json:"is_active,omitempty"`
	Images      *[]ProductImageInput `json:"images,omitempty" validate:"omitempty,dive"`
	Sizes       *[]ProductSizeInput  `json:"sizes,omitempty" validate:"omitempty,dive"`
}

type ProductSearchParams struct {
	utils.PaginationParams
	CategorySlug string
	Size         string
	Color        string
	PriceMin     *decimal.Decimal
	PriceMax     *decimal.Decimal
	IncludeAll   bool // admin listing includes inactive products
}

func (s *ProductService) preloaded() *gorm.DB {
	return s.db.
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("Sizes")
}

// SearchProducts lists catalog products with the storefront filters:
// category slug, size (only counted when in stock), color and price range.
func (s *ProductService) SearchProducts(params ProductSearchParams) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{})

	if !params.IncludeAll {
		query = query.Where("is_active = ?", true)
	}

	if params.CategorySlug != "" {
		var category models.Category
		err := s.db.Where("slug = ?", params.CategorySlug).First(&category).Error
		if err == nil {
			query = query.Where("category_id = ?", category.ID)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, fmt.Errorf("database error: %w", err)
		}
	}

	if params.Color != "" {
		query = query.Where("color = ?", params.Color)
	}

	if params.PriceMin != nil {
		query = query.Where("price >= ?", *params.PriceMin)
	}

	if params.PriceMax != nil {
		query = query.Where("price <= ?", *params.PriceMax)
	}

	if params.Size != "" {
		query = query.Where(
			"EXISTS (SELECT 1 FROM product_sizes ps WHERE ps.product_id = products.id AND LOWER(ps.size) = LOWER(?) AND ps.stock > 0)",
			params.Size,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "name", "price"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var products []models.Product
	if err := query.
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		Preload("Sizes").
		Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	return products, total, nil
}

// GetProductBySlug fetches one product for the public product page.
func (s *ProductService) GetProductBySlug(slug string) (*models.Product, error) {
	var product models.Product
	if err := s.preloaded().Where("slug = ?", slug).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

func (s *ProductService) GetProduct(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.preloaded().First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

// uniqueSlug derives a slug from the product name, suffixing -1, -2, ...
// on collision. excludeID skips the product being renamed.
func (s *ProductService) uniqueSlug(tx *gorm.DB, name string, excludeID *uuid.UUID) (string, error) {
	base := utils.Slugify(name)
	if base == "" {
		base = "producto"
	}

	slug := base
	for counter := 1; ; counter++ {
		query := tx.Model(&models.Product{}).Where("slug = ?", slug)
		if excludeID != nil {
			query = query.Where("id <> ?", *excludeID)
		}

		var count int64
		if err := query.Count(&count).Error; err != nil {
			return "", fmt.Errorf("failed to check slug: %w", err)
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, counter)
	}
}

func (s *ProductService) CreateProduct(req *CreateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if req.Price.Sign() <= 0 {
		return nil, errors.New("price must be positive")
	}

	// Verify the category exists
	var category models.Category
	if err := s.db.First(&category, "id = ?", req.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("category not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var product *models.Product

	err := s.db.Transaction(func(tx *gorm.DB) error {
		slug, err := s.uniqueSlug(tx, req.Name, nil)
		if err != nil {
			return err
		}

		product = &models.Product{
			CategoryID:  req.CategoryID,
			Name:        req.Name,
			Slug:        slug,
			Description: req.Description,
			Price:       req.Price,
			Color:       req.Color,
			IsActive:    true,
		}

		if err := tx.Create(product).Error; err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}

		if err := s.replaceImages(tx, product.ID, req.Images); err != nil {
			return err
		}
		return s.replaceSizes(tx, product.ID, req.Sizes)
	})

	if err != nil {
		return nil, err
	}

	return s.GetProduct(product.ID)
}

func (s *ProductService) UpdateProduct(id uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if req.Price != nil && req.Price.Sign() <= 0 {
		return nil, errors.New("price must be positive")
	}

	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		updates := make(map[string]interface{})
		if req.Name != nil && *req.Name != product.Name {
			slug, err := s.uniqueSlug(tx, *req.Name, &id)
			if err != nil {
				return err
			}
			updates["name"] = *req.Name
			updates["slug"] = slug
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.Price != nil {
			updates["price"] = *req.Price
		}
		if req.CategoryID != nil {
			updates["category_id"] = *req.CategoryID
		}
		if req.Color != nil {
			updates["color"] = *req.Color
		}
		if req.IsActive != nil {
			updates["is_active"] = *req.IsActive
		}

		if len(updates) > 0 {
			if err := tx.Model(&product).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update product: %w", err)
			}
		}

		// Nested collections are replaced wholesale, matching the admin
		// form which always submits the complete lists.
		if req.Images != nil {
			if err := tx.Where("product_id = ?", id).Delete(&models.ProductImage{}).Error; err != nil {
				return fmt.Errorf("failed to clear images: %w", err)
			}
			if err := s.replaceImages(tx, id, *req.Images); err != nil {
				return err
			}
		}

		if req.Sizes != nil {
			if err := tx.Where("product_id = ?", id).Delete(&models.ProductSize{}).Error; err != nil {
				return fmt.Errorf("failed to clear sizes: %w", err)
			}
			if err := s.replaceSizes(tx, id, *req.Sizes); err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return s.GetProduct(id)
}

func (s *ProductService) replaceImages(tx *gorm.DB, productID uuid.UUID, images []ProductImageInput) error {
	for i, img := range images {
		record := models.ProductImage{
			ProductID: productID,
			URL:       img.URL,
			Alt:       img.Alt,
			SortOrder: i,
		}
		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("failed to create product image: %w", err)
		}
	}
	return nil
}

func (s *ProductService) replaceSizes(tx *gorm.DB, productID uuid.UUID, sizes []ProductSizeInput) error {
	for _, size := range sizes {
		record := models.ProductSize{
			ProductID: productID,
			Size:      size.Size,
			Stock:     size.Stock,
		}
		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("failed to create product size: %w", err)
		}
	}
	return nil
}

func (s *ProductService) DeleteProduct(id uuid.UUID) error {
	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("product not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	// Images and sizes cascade with the product; order items keep their
	// snapshots and are not touched.
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductImage{}).Error; err != nil {
			return fmt.Errorf("failed to delete product images: %w", err)
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductSize{}).Error; err != nil {
			return fmt.Errorf("failed to delete product sizes: %w", err)
		}
		if err := tx.Delete(&product).Error; err != nil {
			return fmt.Errorf("failed to delete product: %w", err)
		}
		return nil
	})
}
