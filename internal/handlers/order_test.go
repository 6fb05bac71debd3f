// internal/handlers/order_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/falconprime/backend/internal/database"
	"github.com/falconprime/backend/internal/models"
	"github.com/falconprime/backend/internal/services"
)

type CheckoutTestSuite struct {
	suite.Suite
	db      *gorm.DB
	router  *gin.Engine
	product *models.Product
}

func (suite *CheckoutTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	suite.Require().NoError(err)

	sqlDB, err := db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	suite.Require().NoError(database.AutoMigrate(db))
	suite.db = db

	category := &models.Category{Name: "Ropa", Slug: "ropa"}
	suite.Require().NoError(db.Create(category).Error)

	suite.product = &models.Product{
		CategoryID: category.ID,
		Name:       "Remera Oversize",
		Slug:       "remera-oversize",
		Price:      decimal.RequireFromString("8999.90"),
		IsActive:   true,
	}
	suite.Require().NoError(db.Create(suite.product).Error)
	suite.Require().NoError(db.Create(&models.ProductSize{
		ProductID: suite.product.ID,
		Size:      "M",
		Stock:     3,
	}).Error)

	orderService := services.NewOrderService(db, nil)
	orderHandler := NewOrderHandler(orderService)

	suite.router = gin.New()
	suite.router.POST("/v1/orders", orderHandler.PlaceOrder)
}

func (suite *CheckoutTestSuite) checkout(quantity int) *httptest.ResponseRecorder {
	payload := map[string]interface{}{
		"customer_email":   "cliente@example.com",
		"customer_name":    "Ana García",
		"shipping_address": "Av. Corrientes 1234, CABA",
		"items": []map[string]interface{}{
			{
				"product_id":   suite.product.ID.String(),
				"product_name": suite.product.Name,
				"size":         "M",
				"quantity":     quantity,
				"unit_price":   8999.90,
			},
		},
	}

	jsonData, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", "/v1/orders", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *CheckoutTestSuite) TestCheckoutSuccess() {
	w := suite.checkout(2)

	suite.Equal(http.StatusCreated, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.True(response["success"].(bool))

	data := response["data"].(map[string]interface{})
	order := data["order"].(map[string]interface{})
	suite.Equal("pending", order["status"])
	suite.InDelta(17999.80, order["total"].(float64), 0.001)

	var stock models.ProductSize
	suite.Require().NoError(suite.db.Where("product_id = ?", suite.product.ID).First(&stock).Error)
	suite.Equal(1, stock.Stock)
}

func (suite *CheckoutTestSuite) TestCheckoutInsufficientStock() {
	w := suite.checkout(10)

	suite.Equal(http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.False(response["success"].(bool))

	apiError := response["error"].(map[string]interface{})
	suite.Equal("INSUFFICIENT_STOCK", apiError["code"])

	details := apiError["details"].(map[string]interface{})
	suite.EqualValues(10, details["requested"])
	suite.EqualValues(3, details["available"])

	// Stock untouched
	var stock models.ProductSize
	suite.Require().NoError(suite.db.Where("product_id = ?", suite.product.ID).First(&stock).Error)
	suite.Equal(3, stock.Stock)
}

func (suite *CheckoutTestSuite) TestCheckoutUnknownSize() {
	payload := map[string]interface{}{
		"customer_email":   "cliente@example.com",
		"customer_name":    "Ana García",
		"shipping_address": "Av. Corrientes 1234, CABA",
		"items": []map[string]interface{}{
			{
				"product_id":   suite.product.ID.String(),
				"product_name": suite.product.Name,
				"size":         "XXL",
				"quantity":     1,
				"unit_price":   8999.90,
			},
		},
	}

	jsonData, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", "/v1/orders", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	apiError := response["error"].(map[string]interface{})
	suite.Equal("LINE_NOT_FOUND", apiError["code"])
}

func (suite *CheckoutTestSuite) TestCheckoutEmptyCart() {
	payload := map[string]interface{}{
		"customer_email":   "cliente@example.com",
		"customer_name":    "Ana García",
		"shipping_address": "Av. Corrientes 1234, CABA",
		"items":            []map[string]interface{}{},
	}

	jsonData, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", "/v1/orders", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	apiError := response["error"].(map[string]interface{})
	suite.Equal("INVALID_INPUT", apiError["code"])
}

func (suite *CheckoutTestSuite) TestCheckoutMalformedBody() {
	req, _ := http.NewRequest("POST", "/v1/orders", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func TestCheckoutTestSuite(t *testing.T) {
	suite.Run(t, new(CheckoutTestSuite))
}

