package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/ecomdev/electronics-shop-api/internal/config"
	"github.com/ecomdev/electronics-shop-api/internal/models"
	"github.com/ecomdev/electronics-shop-api/internal/utils"
)

type OrderService struct {
	db       *gorm.DB
	cfg      *config.Config
	payments *PaymentService
	coupons  *CouponService
}

// CheckoutAddress is a one-off address sent inline with a checkout instead
// of referencing a saved address-book entry.
type CheckoutAddress struct {
	FirstName    string `json:"first_name" validate:"required,max=100"`
	LastName     string `json:"last_name" validate:"required,max=100"`
	Company      string `json:"company,omitempty" validate:"omitempty,max=100"`
	AddressLine1 string `json:"address_line1" validate:"required,max=200"`
	AddressLine2 string `json:"address_line2,omitempty" validate:"omitempty,max=200"`
	City         string `json:"city" validate:"required,max=100"`
	State        string `json:"state" validate:"required,max=100"`
	PostalCode   string `json:"postal_code" validate:"required,max=20"`
	Country      string `json:"country" validate:"required,max=100"`
	Phone        string `json:"phone,omitempty" validate:"omitempty,max=20"`
}

func (a *CheckoutAddress) snapshot() models.JSONB {
	return models.JSONB{
		"first_name":     a.FirstName,
		"last_name":      a.LastName,
		"company":        a.Company,
		"address_line_1": a.AddressLine1,
		"address_line_2": a.AddressLine2,
		"city":           a.City,
		"state":          a.State,
		"postal_code":    a.PostalCode,
		"country":        a.Country,
		"phone":          a.Phone,
	}
}

type CheckoutRequest struct {
	ShippingAddressID *uuid.UUID       `json:"shipping_address_id,omitempty"`
	ShippingAddress   *CheckoutAddress `json:"shipping_address,omitempty"`
	BillingAddressID  *uuid.UUID       `json:"billing_address_id,omitempty"`
	BillingAddress    *CheckoutAddress `json:"billing_address,omitempty"`
	PaymentMethod     string           `json:"payment_method" validate:"required,oneof=card cod bank_transfer"`
	CouponCode        string           `json:"coupon_code,omitempty"`
	Notes             string           `json:"notes,omitempty" validate:"omitempty,max=500"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type OrderListParams struct {
	utils.PaginationParams
	Status        string
	PaymentStatus string
}

// OrderStats summarizes order volume and revenue for the admin dashboard.
type OrderStats struct {
	TotalOrders    int64   `json:"total_orders"`
	PendingOrders  int64   `json:"pending_orders"`
	TotalRevenue   float64 `json:"total_revenue"`
	AverageOrder   float64 `json:"average_order_value"`
	OrdersToday    int64   `json:"orders_today"`
	RevenueToday   float64 `json:"revenue_today"`
}

func NewOrderService(db *gorm.DB, cfg *config.Config, payments *PaymentService, coupons *CouponService) *OrderService {
	return &OrderService{db: db, cfg: cfg, payments: payments, coupons: coupons}
}

// Checkout converts the user's cart into an order inside a single
// transaction. Stock is decremented with a guarded UPDATE so concurrent
// checkouts cannot oversell, and the cart is cleared on success.
func (s *OrderService) Checkout(userID uuid.UUID, req *CheckoutRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	var order *models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var cartItems []models.CartItem
		if err := tx.Where("user_id = ?", userID).
			Preload("Product").
			Find(&cartItems).Error; err != nil {
			return fmt.Errorf("failed to fetch cart: %w", err)
		}
		if len(cartItems) == 0 {
			return NewDomainError("cart is empty")
		}

		shippingSnap, err := resolveAddressSnapshot(tx, userID,
			req.ShippingAddressID, req.ShippingAddress, "Shipping")
		if err != nil {
			return err
		}
		if shippingSnap == nil {
			return NewDomainError("shipping address is required")
		}

		billingSnap, err := resolveAddressSnapshot(tx, userID,
			req.BillingAddressID, req.BillingAddress, "Billing")
		if err != nil {
			return err
		}
		if billingSnap == nil {
			billingSnap = shippingSnap
		}

		var subtotal float64
		orderItems := make([]models.OrderItem, 0, len(cartItems))
		for _, item := range cartItems {
			product := item.Product
			if !product.IsActive {
				return NewDomainError("product %q is no longer available", product.Name)
			}

			// Guarded decrement: only succeeds while enough stock remains.
			result := tx.Model(&models.Product{}).
				Where("id = ? AND stock_quantity >= ?", product.ID, item.Quantity).
				Updates(map[string]interface{}{
					"stock_quantity": gorm.Expr("stock_quantity - ?", item.Quantity),
					"sales_count":    gorm.Expr("sales_count + ?", item.Quantity),
				})
			if result.Error != nil {
				return fmt.Errorf("failed to reserve stock: %w", result.Error)
			}
			if result.RowsAffected == 0 {
				return NewDomainError("insufficient stock for %q", product.Name)
			}

			unitPrice := product.CurrentPrice()
			lineTotal := utils.RoundCents(unitPrice * float64(item.Quantity))
			subtotal += lineTotal

			orderItems = append(orderItems, models.OrderItem{
				ProductID:       product.ID,
				Quantity:        item.Quantity,
				UnitPrice:       unitPrice,
				TotalPrice:      lineTotal,
				ProductSnapshot: product.Snapshot(),
			})
		}
		subtotal = utils.RoundCents(subtotal)

		var coupon *models.Coupon
		var discount float64
		if req.CouponCode != "" {
			var err error
			coupon, discount, err = s.coupons.resolveForUser(tx, req.CouponCode, userID, subtotal)
			if err != nil {
				return err
			}
		}

		taxAmount := utils.RoundCents(subtotal * s.cfg.Order.TaxRate)
		shippingAmount := s.cfg.Order.FlatShippingFee
		if subtotal >= s.cfg.Order.FreeShippingThreshold {
			shippingAmount = 0
		}
		totalAmount := utils.RoundCents(subtotal + taxAmount + shippingAmount - discount)

		order = &models.Order{
			OrderNumber:    utils.GenerateOrderNumber(),
			UserID:         userID,
			CouponDiscount: discount,
			Status:         models.OrderStatusPending,
			PaymentStatus:  models.PaymentStatusPending,
			Subtotal:       subtotal,
			TaxAmount:      taxAmount,
			ShippingAmount: shippingAmount,
			TotalAmount:    totalAmount,
			Currency:       "USD",
			ShippingAddr:   shippingSnap,
			BillingAddr:    billingSnap,
			PaymentMethod:  req.PaymentMethod,
			Notes:          req.Notes,
		}
		if coupon != nil {
			order.CouponID = &coupon.ID
		}

		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for i := range orderItems {
			orderItems[i].OrderID = order.ID
		}
		if err := tx.Create(&orderItems).Error; err != nil {
			return fmt.Errorf("failed to create order items: %w", err)
		}
		order.Items = orderItems

		if coupon != nil {
			usage := models.CouponUsage{
				UserID:         userID,
				CouponID:       coupon.ID,
				OrderID:        order.ID,
				DiscountAmount: discount,
				UsedAt:         time.Now().UTC(),
			}
			if err := tx.Create(&usage).Error; err != nil {
				return fmt.Errorf("failed to record coupon usage: %w", err)
			}
			if err := tx.Model(coupon).
				UpdateColumn("used_count", gorm.Expr("used_count + 1")).Error; err != nil {
				return fmt.Errorf("failed to update coupon usage count: %w", err)
			}
		}

		if req.PaymentMethod == "card" {
			ref, err := s.payments.CreateIntent(totalAmount, order.Currency, order.OrderNumber)
			if err != nil {
				return err
			}
			if ref != "" {
				if err := tx.Model(order).Update("payment_reference", ref).Error; err != nil {
					return fmt.Errorf("failed to store payment reference: %w", err)
				}
				order.PaymentRef = ref
			}
		}

		if err := tx.Where("user_id = ?", userID).
			Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"order_number": order.OrderNumber,
		"user_id":      userID,
		"total":        order.TotalAmount,
	}).Info("Order created")

	return order, nil
}

// resolveAddressSnapshot resolves a checkout address by address-book id
// (scoped to the user) or from an inline payload, preferring the id. A nil
// result means neither was supplied.
func resolveAddressSnapshot(tx *gorm.DB, userID uuid.UUID, id *uuid.UUID, inline *CheckoutAddress, label string) (models.JSONB, error) {
	if id != nil {
		var addr models.Address
		if err := tx.Where("id = ? AND user_id = ?", *id, userID).
			First(&addr).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, NewNotFoundError(label + " address")
			}
			return nil, fmt.Errorf("database error: %w", err)
		}
		return addr.Snapshot(), nil
	}
	if inline != nil {
		return inline.snapshot(), nil
	}
	return nil, nil
}

func (s *OrderService) ListForUser(userID uuid.UUID, params OrderListParams) ([]models.Order, int64, error) {
	query := s.db.Model(&models.Order{}).Where("user_id = ?", userID)
	return s.list(query, params)
}

func (s *OrderService) ListAll(params OrderListParams) ([]models.Order, int64, error) {
	return s.list(s.db.Model(&models.Order{}), params)
}

func (s *OrderService) list(query *gorm.DB, params OrderListParams) ([]models.Order, int64, error) {
	if params.Status != "" {
		if !models.OrderStatus(params.Status).IsValid() {
			return nil, 0, NewDomainError("invalid order status: %s", params.Status)
		}
		query = query.Where("status = ?", params.Status)
	}
	if params.PaymentStatus != "" {
		if !models.PaymentStatus(params.PaymentStatus).IsValid() {
			return nil, 0, NewDomainError("invalid payment status: %s", params.PaymentStatus)
		}
		query = query.Where("payment_status = ?", params.PaymentStatus)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	query = utils.ApplySort(query, params.PaginationParams, []string{"created_at", "total_amount", "status"})
	query = utils.ApplyPagination(query, params.PaginationParams)

	var orders []models.Order
	if err := query.Preload("Items").Find(&orders).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch orders: %w", err)
	}

	return orders, total, nil
}

// Get returns an order with its items. A nil userID fetches without an
// ownership check (admin access).
func (s *OrderService) Get(orderID uuid.UUID, userID *uuid.UUID) (*models.Order, error) {
	query := s.db.Preload("Items").Preload("Items.Product").Preload("Coupon")
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}

	var order models.Order
	if err := query.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("Order")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &order, nil
}

// Cancel cancels a pending or confirmed order, restores reserved stock and
// refunds a completed card payment.
func (s *OrderService) Cancel(orderID, userID uuid.UUID) (*models.Order, error) {
	var order *models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var o models.Order
		if err := tx.Preload("Items").
			Where("id = ? AND user_id = ?", orderID, userID).
			First(&o).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewNotFoundError("Order")
			}
			return fmt.Errorf("database error: %w", err)
		}

		if !o.Status.CanTransitionTo(models.OrderStatusCancelled) {
			return NewDomainError("order in status %q cannot be cancelled", o.Status)
		}

		if err := s.restoreStock(tx, o.Items); err != nil {
			return err
		}

		updates := map[string]interface{}{"status": models.OrderStatusCancelled}
		if o.PaymentStatus == models.PaymentStatusCompleted {
			if err := s.payments.Refund(o.PaymentRef); err != nil {
				return err
			}
			updates["payment_status"] = models.PaymentStatusRefunded
		}

		if err := tx.Model(&o).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to cancel order: %w", err)
		}

		o.Status = models.OrderStatusCancelled
		if o.PaymentStatus == models.PaymentStatusCompleted {
			o.PaymentStatus = models.PaymentStatusRefunded
		}
		order = &o
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithField("order_number", order.OrderNumber).Info("Order cancelled")

	return order, nil
}

// UpdateStatus advances an order along the allowed status transitions.
// Shipping and delivery stamp their timestamps; cancellation and return
// restore stock.
func (s *OrderService) UpdateStatus(orderID uuid.UUID, req *UpdateOrderStatusRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	next := models.OrderStatus(req.Status)
	if !next.IsValid() {
		return nil, NewDomainError("invalid order status: %s", req.Status)
	}

	var order *models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var o models.Order
		if err := tx.Preload("Items").First(&o, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewNotFoundError("Order")
			}
			return fmt.Errorf("database error: %w", err)
		}

		if !o.Status.CanTransitionTo(next) {
			return NewDomainError("cannot transition order from %q to %q", o.Status, next)
		}

		now := time.Now().UTC()
		updates := map[string]interface{}{"status": next}
		switch next {
		case models.OrderStatusShipped:
			updates["shipped_at"] = now
		case models.OrderStatusDelivered:
			updates["delivered_at"] = now
		case models.OrderStatusCancelled, models.OrderStatusReturned:
			if err := s.restoreStock(tx, o.Items); err != nil {
				return err
			}
			if o.PaymentStatus == models.PaymentStatusCompleted {
				if err := s.payments.Refund(o.PaymentRef); err != nil {
					return err
				}
				updates["payment_status"] = models.PaymentStatusRefunded
			}
		}

		if err := tx.Model(&o).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update order status: %w", err)
		}

		order = &o
		order.Status = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(orderID, nil)
}

// restoreStock returns reserved quantities to inventory and rolls back the
// sales counters, never below zero.
func (s *OrderService) restoreStock(tx *gorm.DB, items []models.OrderItem) error {
	for _, item := range items {
		if err := tx.Model(&models.Product{}).
			Where("id = ?", item.ProductID).
			Updates(map[string]interface{}{
				"stock_quantity": gorm.Expr("stock_quantity + ?", item.Quantity),
				"sales_count":    gorm.Expr("CASE WHEN sales_count >= ? THEN sales_count - ? ELSE 0 END", item.Quantity, item.Quantity),
			}).Error; err != nil {
			return fmt.Errorf("failed to restore stock: %w", err)
		}
	}
	return nil
}

// MarkPaid records a completed payment for an order.
func (s *OrderService) MarkPaid(orderID uuid.UUID, paymentRef string) (*models.Order, error) {
	var order models.Order
	if err := s.db.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("Order")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if order.PaymentStatus == models.PaymentStatusCompleted {
		return nil, NewConflictError("order is already paid")
	}

	updates := map[string]interface{}{
		"payment_status": models.PaymentStatusCompleted,
	}
	if paymentRef != "" {
		updates["payment_reference"] = paymentRef
	}
	if order.Status == models.OrderStatusPending {
		updates["status"] = models.OrderStatusConfirmed
	}

	if err := s.db.Model(&order).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to mark order paid: %w", err)
	}

	return s.Get(orderID, nil)
}

func (s *OrderService) Stats() (*OrderStats, error) {
	stats := &OrderStats{}

	if err := s.db.Model(&models.Order{}).Count(&stats.TotalOrders).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	if err := s.db.Model(&models.Order{}).
		Where("status = ?", models.OrderStatusPending).
		Count(&stats.PendingOrders).Error; err != nil {
		return nil, fmt.Errorf("failed to count pending orders: %w", err)
	}

	revenueStatuses := []models.OrderStatus{
		models.OrderStatusConfirmed, models.OrderStatusProcessing,
		models.OrderStatusShipped, models.OrderStatusDelivered,
	}

	var revenue *float64
	if err := s.db.Model(&models.Order{}).
		Where("status IN ?", revenueStatuses).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&revenue).Error; err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}
	if revenue != nil {
		stats.TotalRevenue = utils.RoundCents(*revenue)
	}

	var revenueOrders int64
	if err := s.db.Model(&models.Order{}).
		Where("status IN ?", revenueStatuses).
		Count(&revenueOrders).Error; err != nil {
		return nil, fmt.Errorf("failed to count revenue orders: %w", err)
	}
	if revenueOrders > 0 {
		stats.AverageOrder = utils.RoundCents(stats.TotalRevenue / float64(revenueOrders))
	}

	startOfDay := time.Now().UTC().Truncate(24 * time.Hour)
	if err := s.db.Model(&models.Order{}).
		Where("created_at >= ?", startOfDay).
		Count(&stats.OrdersToday).Error; err != nil {
		return nil, fmt.Errorf("failed to count today's orders: %w", err)
	}

	var todayRevenue *float64
	if err := s.db.Model(&models.Order{}).
		Where("created_at >= ? AND status IN ?", startOfDay, revenueStatuses).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&todayRevenue).Error; err != nil {
		return nil, fmt.Errorf("failed to sum today's revenue: %w", err)
	}
	if todayRevenue != nil {
		stats.RevenueToday = utils.RoundCents(*todayRevenue)
	}

	return stats, nil
}
