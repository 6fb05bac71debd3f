// internal/database/connection.go
package database

import (
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/falconprime/backend/internal/config"
	"github.com/falconprime/backend/internal/models"
)

var DB *gorm.DB

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var err error
	var gormConfig *gorm.Config

	// Configure GORM logger
	if cfg.LogLevel == "silent" {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		}
	} else {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Info),
		}
	}

	// Connect to database
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB
	sqlDB, err := DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Database connection established successfully")
	return DB, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting underlying sql.DB: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("Database connection closed successfully")
	}
}

func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	if err := AutoMigrate(db); err != nil {
		return err
	}

	// Create indexes
	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// AutoMigrate creates or updates the schema. Split out from RunMigrations
// so tests can migrate an in-memory database without postgres DDL.
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.ProductImage{},
		&models.ProductSize{},
		&models.Admin{},
		&models.Order{},
		&models.OrderItem{},
		&models.AuditLog{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		// Catalog indexes
		"CREATE INDEX IF NOT EXISTS idx_products_category_active ON products(category_id, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_product_images_product_sort ON product_images(product_id, sort_order)",

		// Stock lookups during checkout
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_product_sizes_product_size ON product_sizes(product_id, size)",

		// Order indexes
		"CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status)",
		"CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)",

		// Admin indexes
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_admin_action ON audit_logs(admin_id, action)",
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_created ON audit_logs(created_at DESC)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			log.Printf("Warning: Failed to create index: %s, Error: %v", index, err)
			// Continue with other indexes instead of failing completely
		}
	}

	return nil
}

// Seed initial data
func SeedInitialData(db *gorm.DB, cfg *config.Config) error {
	log.Println("Seeding initial data...")

	// Create default admin user
	var adminCount int64
	db.Model(&models.Admin{}).Count(&adminCount)

	if adminCount == 0 {
		if cfg.Admin.Password == "" {
			return fmt.Errorf("ADMIN_PASSWORD is required to seed the first admin account")
		}

		admin := &models.Admin{
			Email: cfg.Admin.Email,
			Name:  "Administrator",
		}

		if err := admin.SetPassword(cfg.Admin.Password); err != nil {
			return fmt.Errorf("failed to set admin password: %w", err)
		}

		if err := db.Create(admin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		log.Println("Default admin user created successfully")
	}

	// Create default categories for the storefront filters
	defaultCategories := []models.Category{
		{Name: "Ropa", Slug: "ropa"},
		{Name: "Calzado", Slug: "calzado"},
		{Name: "Accesorios", Slug: "accesorios"},
	}

	for _, category := range defaultCategories {
		var count int64
		db.Model(&models.Category{}).Where("slug = ?", category.Slug).Count(&count)

		if count == 0 {
			if err := db.Create(&category).Error; err != nil {
				log.Printf("Warning: Failed to create category %s: %v", category.Slug, err)
			}
		}
	}

	if cfg.Environment == "development" {
		if err := seedDemoProducts(db); err != nil {
			log.Printf("Warning: Failed to seed demo products: %v", err)
		}
	}

	log.Println("Initial data seeding completed")
	return nil
}

// seedDemoProducts fills an empty development catalog so the storefront
// has something to show.
func seedDemoProducts(db *gorm.DB) error {
	var productCount int64
	db.Model(&models.Product{}).Count(&productCount)
	if productCount > 0 {
		return nil
	}

	var ropa, calzado models.Category
	if err := db.Where("slug = ?", "ropa").First(&ropa).Error; err != nil {
		return err
	}
	if err := db.Where("slug = ?", "calzado").First(&calzado).Error; err != nil {
		return err
	}

	demos := []struct {
		product models.Product
		sizes   map[string]int
	}{
		{
			product: models.Product{
				CategoryID:  ropa.ID,
				Name:        "Remera Oversize Negra",
				Slug:        "remera-oversize-negra",
				Description: "Remera de algodón peinado, corte oversize.",
				Price:       decimal.RequireFromString("8999.90"),
				Color:       "negro",
				IsActive:    true,
			},
			sizes: map[string]int{"S": 10, "M": 15, "L": 10, "XL": 5},
		},
		{
			product: models.Product{
				CategoryID:  ropa.ID,
				Name:        "Buzo Canguro Gris",
				Slug:        "buzo-canguro-gris",
				Description: "Buzo con capucha y bolsillo canguro.",
				Price:       decimal.RequireFromString("19999.00"),
				Color:       "gris",
				IsActive:    true,
			},
			sizes: map[string]int{"M": 8, "L": 6},
		},
		{
			product: models.Product{
				CategoryID:  calzado.ID,
				Name:        "Zapatilla Urbana Blanca",
				Slug:        "zapatilla-urbana-blanca",
				Description: "Zapatilla urbana de cuero sintético.",
				Price:       decimal.RequireFromString("45999.00"),
				Color:       "blanco",
				IsActive:    true,
			},
			sizes: map[string]int{"40": 4, "41": 6, "42": 6, "43": 3},
		},
	}

	for _, demo := range demos {
		if err := db.Create(&demo.product).Error; err != nil {
			return err
		}
		for size, stock := range demo.sizes {
			err := db.Create(&models.ProductSize{
				ProductID: demo.product.ID,
				Size:      size,
				Stock:     stock,
			}).Error
			if err != nil {
				return err
			}
		}
	}

	log.Println("Demo products created")
	return nil
}

// Transaction helper
func WithTransaction(db *gorm.DB, fn func(*gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
