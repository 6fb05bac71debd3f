// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/falconprime/backend/internal/config"
	"github.com/falconprime/backend/internal/handlers"
	"github.com/falconprime/backend/internal/middleware"
	"github.com/falconprime/backend/internal/services"
	"github.com/falconprime/backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	notificationService := services.NewNotificationService(cfg)
	storageService, _ := services.NewStorageService(cfg)

	authService := services.NewAuthService(db, cfg)
	categoryService := services.NewCategoryService(db)
	productService := services.NewProductService(db)
	orderService := services.NewOrderService(db, notificationService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, cfg)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	productHandler := handlers.NewProductHandler(productService)
	orderHandler := handlers.NewOrderHandler(orderService)
	uploadHandler := handlers.NewUploadHandler(storageService)

	// Session settings
	utils.SetJWTSecret(cfg.Session.SecretKey)
	middleware.SessionCookieName = cfg.Session.CookieName

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Frontend.BaseURL))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())

	// Local image uploads in development, S3 otherwise
	r.Static("/uploads", "./uploads")

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Public storefront
		v1.GET("/categories", categoryHandler.ListCategories)
		v1.GET("/products", productHandler.ListProducts)
		v1.GET("/products/:slug", productHandler.GetProductBySlug)

		v1.POST("/orders", middleware.CheckoutRateLimit(), orderHandler.PlaceOrder)

		// Admin panel
		admin := v1.Group("/admin")
		{
			admin.POST("/login", middleware.AuthRateLimit(), authHandler.Login)

			protected := admin.Group("")
			protected.Use(middleware.AdminRequired())
			protected.Use(middleware.AuditLogMiddleware(db))
			{
				protected.POST("/logout", authHandler.Logout)
				protected.GET("/me", authHandler.Me)

				protected.GET("/orders", orderHandler.ListOrders)
				protected.GET("/orders/:id", orderHandler.GetOrder)
				protected.PATCH("/orders/:id", orderHandler.UpdateStatus)

				protected.GET("/products", productHandler.AdminListProducts)
				protected.GET("/products/:id", productHandler.AdminGetProduct)
				protected.POST("/products", productHandler.CreateProduct)
				protected.PUT("/products/:id", productHandler.UpdateProduct)
				protected.DELETE("/products/:id", productHandler.DeleteProduct)

				protected.GET("/categories", categoryHandler.ListCategories)
				protected.POST("/categories", categoryHandler.CreateCategory)

				protected.POST("/upload", middleware.UploadRateLimit(), uploadHandler.UploadProductImages)
			}
		}
	}

	return r
}
