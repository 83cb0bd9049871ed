// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/coupon"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"gorm.io/gorm"
)

// cartClaimer is the slice of the cart service checkout uses. Claiming
// takes the cart out of the store so the expiry reaper cannot release
// its reservations while the order is being written.
type cartClaimer interface {
	Claim(ctx context.Context, sessionID string) (*cart.ClaimedCart, error)
	Restore(ctx context.Context, claimed *cart.ClaimedCart) error
}

// couponValidator resolves a coupon code to a usable coupon
type couponValidator interface {
	Validate(code string) (*coupon.Coupon, error)
}

// Service handles checkout business logic.
//
// Stock is never touched here. Every unit in the cart was already
// decremented when it was reserved, so checkout only converts the
// reservation into an order.
type Service struct {
	db      *gorm.DB
	config  *config.Config
	carts   cartClaimer
	coupons couponValidator
}

// NewService creates a new checkout service
func NewService(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *Service {
	return &Service{
		db:      db,
		config:  cfg,
		carts:   cart.NewService(db, redisClient, cfg),
		coupons: coupon.NewService(db, cfg),
	}
}

// CheckoutRequest represents the checkout submission
type CheckoutRequest struct {
	CustomerName    string `json:"customer_name" binding:"required"`
	CustomerPhone   string `json:"customer_phone" binding:"required"`
	CustomerAddress string `json:"customer_address" binding:"required"`
	CouponCode      string `json:"coupon_code"`
}

// CheckoutResponse represents the result of a successful checkout
type CheckoutResponse struct {
	Order   *order.Order `json:"order"`
	Message string       `json:"message"`
}

// ProcessCheckout turns the session cart into an order.
// The cart is claimed up front; pricing is computed from current
// product prices and the optional coupon is applied to the subtotal.
// Any failure after the claim puts the cart back.
func (s *Service) ProcessCheckout(ctx context.Context, sessionID string, userID *uint, req *CheckoutRequest) (*CheckoutResponse, error) {
	name := strings.TrimSpace(req.CustomerName)
	phone := strings.TrimSpace(req.CustomerPhone)
	address := strings.TrimSpace(req.CustomerAddress)
	if name == "" || phone == "" || address == "" {
		return nil, fmt.Errorf("customer name, phone and address are required")
	}

	claimed, err := s.carts.Claim(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(claimed.Cart.Items) == 0 {
		return nil, fmt.Errorf("cart is empty")
	}

	restore := func() {
		if err := s.carts.Restore(ctx, claimed); err != nil {
			logrus.WithError(err).WithField("session_id", sessionID).Error("failed to restore cart after checkout failure")
		}
	}

	// Build line items from current prices
	var subtotal int64
	items := make([]order.OrderItem, 0, len(claimed.Cart.Items))
	for _, item := range claimed.Cart.Items {
		if item.Product == nil {
			restore()
			return nil, fmt.Errorf("product %d is no longer available", item.ProductID)
		}

		lineTotal := item.Price * int64(item.Quantity)
		subtotal += lineTotal
		items = append(items, order.OrderItem{
			ProductID:  item.ProductID,
			Name:       item.Product.Name,
			Quantity:   item.Quantity,
			Price:      item.Price,
			TotalPrice: lineTotal,
		})
	}

	// Apply coupon if provided
	var discount int64
	couponCode := ""
	if strings.TrimSpace(req.CouponCode) != "" {
		validCoupon, err := s.coupons.Validate(req.CouponCode)
		if err != nil {
			restore()
			return nil, err
		}
		discount = validCoupon.Discount(subtotal)
		couponCode = validCoupon.Code
	}

	newOrder := order.Order{
		UserID:          userID,
		Status:          order.OrderStatusPending,
		CustomerName:    name,
		CustomerPhone:   phone,
		CustomerAddress: address,
		SubtotalAmount:  subtotal,
		DiscountAmount:  discount,
		TotalAmount:     subtotal - discount,
		CouponCode:      couponCode,
		Items:           items,
	}

	// Start transaction
	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			restore()
		}
	}()

	if err := tx.Create(&newOrder).Error; err != nil {
		tx.Rollback()
		restore()
		logrus.WithError(err).WithField("session_id", sessionID).Error("failed to create order")
		return nil, fmt.Errorf("failed to place order")
	}

	if err := tx.Commit().Error; err != nil {
		restore()
		return nil, fmt.Errorf("failed to place order")
	}

	// Reserved stock becomes the sale; the claimed cart is simply dropped

	logrus.WithFields(logrus.Fields{
		"order_id":     newOrder.ID,
		"total_amount": newOrder.TotalAmount,
		"items":        len(newOrder.Items),
	}).Info("order placed")

	return &CheckoutResponse{
		Order:   &newOrder,
		Message: "order placed successfully",
	}, nil
}
