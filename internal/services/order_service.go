// internal/services/order_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/falconprime/backend/internal/models"
	"github.com/falconprime/backend/internal/utils"
)

// OrderService is the order placement engine: it validates a submitted
// cart against live per-size stock, reserves (decrements) the stock and
// records the order, all inside one database transaction. Either every
// line is reserved and the order persisted, or nothing changes.
type OrderService struct {
	db                  *gorm.DB
	notificationService *NotificationService
}

func NewOrderService(db *gorm.DB, notificationService *NotificationService) *OrderService {
	return &OrderService{
		db:                  db,
		notificationService: notificationService,
	}
}

// InvalidInputError rejects a malformed checkout request before any
// storage access.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return "invalid input: " + e.Reason
}

// LineNotFoundError names a cart line whose (product, size) combination
// has no stock row.
type LineNotFoundError struct {
	ProductName string
	Size        string
}

func (e *LineNotFoundError) Error() string {
	return fmt.Sprintf("product or size not found: %s - %s", e.ProductName, e.Size)
}

// InsufficientStockError names the offending line and the stock actually
// available, so the caller can adjust the cart and resubmit.
type InsufficientStockError struct {
	ProductName string
	Size        string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s size %s: requested %d, available %d",
		e.ProductName, e.Size, e.Requested, e.Available)
}

// InvalidTransitionError rejects a backward or skipping order-status move.
type InvalidTransitionError struct {
	From models.OrderStatus
	To   models.OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition: %s -> %s", e.From, e.To)
}

// CartLine is the caller's view of one cart entry. ProductName and
// UnitPrice are snapshots of what the customer saw at add-to-cart time;
// the engine validates them against live stock only, not live price.
type CartLine struct {
	ProductID   uuid.UUID       `json:"product_id" validate:"required"`
	ProductName string          `json:"product_name" validate:"required"`
	Size        string          `json:"size" validate:"required,size_label"`
	Quantity    int             `json:"quantity" validate:"required,min=1"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

type PlaceOrderRequest struct {
	CustomerEmail   string     `json:"customer_email" validate:"required,email"`
	CustomerName    string     `json:"customer_name" validate:"required"`
	CustomerPhone   string     `json:"customer_phone,omitempty"`
	ShippingAddress string     `json:"shipping_address" validate:"required"`
	Items           []CartLine `json:"items" validate:"required,min=1,dive"`
}

// validate rejects malformed requests before any storage access.
// decimal fields are checked by hand; the validator cannot compare them.
func (r *PlaceOrderRequest) validate() error {
	if err := utils.ValidateStruct(r); err != nil {
		return &InvalidInputError{Reason: err.Error()}
	}
	for _, line := range r.Items {
		if line.UnitPrice.Sign() <= 0 {
			return &InvalidInputError{
				Reason: fmt.Sprintf("unit price must be positive for %s size %s", line.ProductName, line.Size),
			}
		}
	}
	return nil
}

// PlaceOrder reserves stock for every cart line and records the order.
//
// The decrement is an atomic conditional update (stock = stock - qty
// WHERE stock >= qty) checked by affected-row count, so two concurrent
// checkouts racing for the last unit can never both succeed; the whole
// multi-line reservation plus the order insert runs in one transaction,
// so a failure on any line rolls back every earlier decrement.
func (s *OrderService) PlaceOrder(req *PlaceOrderRequest) (*models.Order, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	var order *models.Order

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, line := range req.Items {
			result := tx.Model(&models.ProductSize{}).
				Where("product_id = ? AND size = ? AND stock >= ?", line.ProductID, line.Size, line.Quantity).
				Updates(map[string]interface{}{
					"stock":      gorm.Expr("stock - ?", line.Quantity),
					"updated_at": time.Now(),
				})
			if result.Error != nil {
				return fmt.Errorf("failed to reserve stock: %w", result.Error)
			}

			if result.RowsAffected == 0 {
				// Distinguish a missing row from a short one
				var row models.ProductSize
				err := tx.Where("product_id = ? AND size = ?", line.ProductID, line.Size).First(&row).Error
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &LineNotFoundError{ProductName: line.ProductName, Size: line.Size}
				}
				if err != nil {
					return fmt.Errorf("failed to check stock: %w", err)
				}
				return &InsufficientStockError{
					ProductName: line.ProductName,
					Size:        line.Size,
					Requested:   line.Quantity,
					Available:   row.Stock,
				}
			}
		}

		total := decimal.Zero
		for _, line := range req.Items {
			total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}

		order = &models.Order{
			CustomerEmail:   req.CustomerEmail,
			CustomerName:    req.CustomerName,
			CustomerPhone:   req.CustomerPhone,
			ShippingAddress: req.ShippingAddress,
			Total:           total,
			Status:          models.OrderStatusPending,
		}

		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		items := make([]models.OrderItem, 0, len(req.Items))
		for _, line := range req.Items {
			items = append(items, models.OrderItem{
				OrderID:     order.ID,
				ProductID:   line.ProductID,
				ProductName: line.ProductName,
				Size:        line.Size,
				Quantity:    line.Quantity,
				UnitPrice:   line.UnitPrice,
			})
		}

		if err := tx.Create(&items).Error; err != nil {
			return fmt.Errorf("failed to create order items: %w", err)
		}

		order.Items = items
		return nil
	})

	if err != nil {
		return nil, err
	}

	return order, nil
}

func (s *OrderService) GetOrder(id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("order not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &order, nil
}

// ListOrders returns the most recent orders with their items preloaded.
func (s *OrderService) ListOrders(limit int) ([]models.Order, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	var orders []models.Order
	if err := s.db.Preload("Items").
		Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}

	return orders, nil
}

// StatusUpdateResult reports the outcome of an admin status change,
// including whether the customer notification went out.
type StatusUpdateResult struct {
	Order      *models.Order
	EmailSent  bool
	EmailError error
}

// UpdateStatus moves an order along the fulfillment sequence. Only
// forward single-step transitions are accepted. For preparing, shipped
// and delivered the customer is emailed; an email failure does not roll
// back the status change, it is reported in the result.
func (s *OrderService) UpdateStatus(id uuid.UUID, newStatus models.OrderStatus) (*StatusUpdateResult, error) {
	if !newStatus.IsValid() {
		return nil, &InvalidInputError{Reason: fmt.Sprintf("unknown order status %q", newStatus)}
	}

	var order models.Order
	if err := s.db.First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("order not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if !order.Status.CanTransitionTo(newStatus) {
		return nil, &InvalidTransitionError{From: order.Status, To: newStatus}
	}

	if err := s.db.Model(&order).Update("status", newStatus).Error; err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	order.Status = newStatus

	result := &StatusUpdateResult{Order: &order}

	if s.notificationService != nil {
		var err error
		switch newStatus {
		case models.OrderStatusPreparing:
			err = s.notificationService.SendOrderPreparingEmail(&order)
		case models.OrderStatusShipped:
			err = s.notificationService.SendOrderShippedEmail(&order)
		case models.OrderStatusDelivered:
			err = s.notificationService.SendOrderDeliveredEmail(&order)
		}
		if err != nil {
			logrus.WithError(err).WithField("order_id", order.ID).Error("Failed to send order status email")
			result.EmailError = err
		} else if newStatus != models.OrderStatusPending {
			result.EmailSent = true
		}
	}

	return result, nil
}
