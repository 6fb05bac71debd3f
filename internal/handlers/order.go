// internal/handlers/order.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/falconprime/backend/internal/i18n"
	"github.com/falconprime/backend/internal/models"
	"github.com/falconprime/backend/internal/services"
	"github.com/falconprime/backend/internal/utils"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// POST /v1/orders (public checkout)
//
// Rejections carry a machine-checkable error code so the storefront can
// tell a fixable cart (LINE_NOT_FOUND, INSUFFICIENT_STOCK) from a server
// fault (STORAGE_FAILURE).
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.CodeInvalidInput,
			i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	order, err := h.orderService.PlaceOrder(&req)
	if err != nil {
		var invalidInput *services.InvalidInputError
		var lineNotFound *services.LineNotFoundError
		var insufficient *services.InsufficientStockError

		switch {
		case errors.As(err, &invalidInput):
			utils.ErrorResponse(c, http.StatusBadRequest, utils.CodeInvalidInput,
				i18n.T(lang, i18n.KeyValidationInvalid, invalidInput.Reason), nil)
		case errors.As(err, &lineNotFound):
			utils.ErrorResponse(c, http.StatusBadRequest, utils.CodeLineNotFound,
				i18n.T(lang, i18n.KeyOrderLineNotFound, lineNotFound.ProductName, lineNotFound.Size),
				gin.H{
					"product_name": lineNotFound.ProductName,
					"size":         lineNotFound.Size,
				})
		case errors.As(err, &insufficient):
			utils.ErrorResponse(c, http.StatusBadRequest, utils.CodeInsufficientStock,
				i18n.T(lang, i18n.KeyOrderInsufficientStock,
					insufficient.ProductName, insufficient.Size, insufficient.Available),
				gin.H{
					"product_name": insufficient.ProductName,
					"size":         insufficient.Size,
					"requested":    insufficient.Requested,
					"available":    insufficient.Available,
				})
		default:
			utils.ErrorResponse(c, http.StatusInternalServerError, utils.CodeStorageFailure,
				i18n.T(lang, i18n.KeyOrderStorageFailure), nil)
		}
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyOrderCreated),
		"order":   order,
	})
}

// adminOrder flattens an order for the admin list view.
type adminOrder struct {
	models.Order
	ItemsCount int `json:"items_count"`
}

// GET /v1/admin/orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	orders, err := h.orderService.ListOrders(limit)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	result := make([]adminOrder, 0, len(orders))
	for _, order := range orders {
		result = append(result, adminOrder{
			Order:      order,
			ItemsCount: len(order.Items),
		})
	}

	utils.SuccessResponse(c, gin.H{"orders": result})
}

// GET /v1/admin/orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid order ID", nil)
		return
	}

	order, err := h.orderService.GetOrder(id)
	if err != nil {
		utils.NotFoundResponse(c, "order")
		return
	}

	utils.SuccessResponse(c, gin.H{"order": order})
}

// PATCH /v1/admin/orders/:id
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid order ID", nil)
		return
	}

	var req struct {
		Status models.OrderStatus `json:"status" validate:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	result, err := h.orderService.UpdateStatus(id, req.Status)
	if err != nil {
		var invalidInput *services.InvalidInputError
		var invalidTransition *services.InvalidTransitionError

		switch {
		case errors.As(err, &invalidInput):
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyOrderInvalidStatus), nil)
		case errors.As(err, &invalidTransition):
			utils.ConflictResponse(c, i18n.T(lang, i18n.KeyOrderInvalidTransition,
				invalidTransition.From, invalidTransition.To))
		case err.Error() == "order not found":
			utils.NotFoundResponse(c, "order")
		default:
			utils.InternalErrorResponse(c, "")
		}
		return
	}

	message := i18n.T(lang, i18n.KeyOrderStatusUpdated)
	if result.EmailError != nil {
		message = i18n.T(lang, i18n.KeyOrderStatusEmailFailed)
	}

	utils.SuccessResponse(c, gin.H{
		"message":    message,
		"order":      result.Order,
		"email_sent": result.EmailSent,
	})
}
