// internal/domain/cart/service.go
package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/inventory"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"gorm.io/gorm"
)

// Keys outlive ExpiresAt by this much so expired carts can still be
// read and their reservations released before Redis evicts them.
const cartKeyGrace = time.Hour

// stockReserver is the slice of the inventory service the cart uses
type stockReserver interface {
	Reserve(productID uint, quantity int, sessionID string, reason inventory.MovementReason) error
	Release(productID uint, quantity int, sessionID string, reason inventory.MovementReason) error
}

// productFinder loads product details for cart lines
type productFinder interface {
	FindProduct(productID uint) (*product.Product, error)
}

type gormProductFinder struct {
	db *gorm.DB
}

func (f gormProductFinder) FindProduct(productID uint) (*product.Product, error) {
	var prod product.Product
	if err := f.db.Where("id = ?", productID).First(&prod).Error; err != nil {
		return nil, err
	}
	return &prod, nil
}

// Service handles cart business logic.
//
// Adding to a cart reserves stock immediately: the products table is
// decremented once per reserved unit and checkout never decrements again.
type Service struct {
	store     cartStore
	inventory stockReserver
	products  productFinder
	config    *config.Config
}

// NewService creates a new cart service
func NewService(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *Service {
	return &Service{
		store:     newRedisCartStore(redisClient),
		inventory: inventory.NewService(db, cfg),
		products:  gormProductFinder{db: db},
		config:    cfg,
	}
}

// CartItemResponse represents a cart item with product details
type CartItemResponse struct {
	ProductID uint             `json:"product_id"`
	Quantity  int              `json:"quantity"`
	Price     int64            `json:"price"`
	Product   *product.Product `json:"product,omitempty"`
	AddedAt   time.Time        `json:"added_at"`
}

// CartResponse represents a shopping cart with items and summary
type CartResponse struct {
	SessionID string             `json:"session_id"`
	Items     []CartItemResponse `json:"items"`
	Totals    CartTotals         `json:"totals"`
	ExpiresAt time.Time          `json:"expires_at"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// AddToCartRequest represents add to cart request
type AddToCartRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

// ItemQuantity represents one line of a bulk quantity update
type ItemQuantity struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

// UpdateCartRequest represents a bulk quantity update request
type UpdateCartRequest struct {
	Items []ItemQuantity `json:"items" binding:"required,min=1"`
}

// ClaimedCart is a cart taken out of the store for checkout. While a
// cart is claimed no expiry sweep can see it, so its reservations
// cannot be released mid-checkout.
type ClaimedCart struct {
	Cart    *CartResponse
	session *SessionCart
}

// GetCart retrieves the cart, releasing it first if it has expired
func (s *Service) GetCart(ctx context.Context, sessionID string) (*CartResponse, error) {
	sessionCart, err := s.loadCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.buildResponse(sessionCart)
}

// AddToCart reserves stock for an item and adds it to the cart.
// Insufficient stock fails the whole operation and mutates nothing.
func (s *Service) AddToCart(ctx context.Context, sessionID string, req *AddToCartRequest) (*CartResponse, error) {
	sessionCart, err := s.loadCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	// Reservation first: the conditional decrement is the stock check
	if err := s.inventory.Reserve(req.ProductID, req.Quantity, sessionID, inventory.ReasonCartAdd); err != nil {
		return nil, err
	}

	found := false
	for i := range sessionCart.Items {
		if sessionCart.Items[i].ProductID == req.ProductID {
			sessionCart.Items[i].Quantity += req.Quantity
			found = true
			break
		}
	}
	if !found {
		sessionCart.Items = append(sessionCart.Items, SessionCartItem{
			ProductID: req.ProductID,
			Quantity:  req.Quantity,
			AddedAt:   time.Now().UTC(),
		})
	}

	if err := s.saveCart(ctx, sessionCart); err != nil {
		return nil, err
	}

	return s.buildResponse(sessionCart)
}

// UpdateCart applies a bulk quantity update. Each line is reconciled
// against the current reservation: increases reserve the difference,
// decreases restore it, zero removes the line and restores everything.
func (s *Service) UpdateCart(ctx context.Context, sessionID string, req *UpdateCartRequest) (*CartResponse, error) {
	sessionCart, err := s.loadCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	for _, line := range req.Items {
		if line.Quantity < 0 {
			return nil, fmt.Errorf("quantity cannot be negative")
		}

		current := sessionCart.Quantity(line.ProductID)
		delta := line.Quantity - current

		switch {
		case current == 0 && line.Quantity == 0:
			continue
		case delta > 0:
			if err := s.inventory.Reserve(line.ProductID, delta, sessionID, inventory.ReasonCartAdd); err != nil {
				// Save what has been applied so far; reservations already
				// made for earlier lines stay consistent with the cart
				if saveErr := s.saveCart(ctx, sessionCart); saveErr != nil {
					logrus.WithError(saveErr).Error("failed to save cart after partial update")
				}
				return nil, fmt.Errorf("product %d: %w", line.ProductID, err)
			}
		case delta < 0:
			if err := s.inventory.Release(line.ProductID, -delta, sessionID, inventory.ReasonCartRemove); err != nil {
				return nil, fmt.Errorf("product %d: %w", line.ProductID, err)
			}
		}

		s.setQuantity(sessionCart, line.ProductID, line.Quantity)
	}

	if err := s.saveCart(ctx, sessionCart); err != nil {
		return nil, err
	}

	return s.buildResponse(sessionCart)
}

// RemoveFromCart removes a line and restores exactly its reserved
// quantity. Removing an absent product is a no-op.
func (s *Service) RemoveFromCart(ctx context.Context, sessionID string, productID uint) (*CartResponse, error) {
	sessionCart, err := s.loadCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	current := sessionCart.Quantity(productID)
	if current > 0 {
		if err := s.inventory.Release(productID, current, sessionID, inventory.ReasonCartRemove); err != nil {
			return nil, err
		}
		s.setQuantity(sessionCart, productID, 0)
		if err := s.saveCart(ctx, sessionCart); err != nil {
			return nil, err
		}
	}

	return s.buildResponse(sessionCart)
}

// Claim atomically takes the cart out of the store so checkout can
// convert its reservations into an order. An expired cart is released
// on the spot and comes back empty. The caller must either complete
// the sale or Restore the claim.
func (s *Service) Claim(ctx context.Context, sessionID string) (*ClaimedCart, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session ID required")
	}

	sessionCart, err := s.store.Take(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if sessionCart != nil && sessionCart.IsExpired(time.Now().UTC()) {
		for _, item := range sessionCart.Items {
			if err := s.inventory.Release(item.ProductID, item.Quantity, sessionID, inventory.ReasonCartExpiry); err != nil {
				return nil, err
			}
		}
		sessionCart = nil
	}

	if sessionCart == nil {
		now := time.Now().UTC()
		resp, err := s.buildResponse(&SessionCart{
			SessionID: sessionID,
			Items:     []SessionCartItem{},
			CreatedAt: now,
			UpdatedAt: now,
			ExpiresAt: now.Add(s.config.Cart.Expiry),
		})
		if err != nil {
			return nil, err
		}
		return &ClaimedCart{Cart: resp}, nil
	}

	resp, err := s.buildResponse(sessionCart)
	if err != nil {
		return nil, err
	}

	return &ClaimedCart{Cart: resp, session: sessionCart}, nil
}

// Restore puts a claimed cart back after a failed checkout. The hold
// is extended as if the shopper had touched the cart.
func (s *Service) Restore(ctx context.Context, claimed *ClaimedCart) error {
	if claimed == nil || claimed.session == nil {
		return nil
	}
	return s.saveCart(ctx, claimed.session)
}

// ReleaseCart restores every reservation and empties the cart
func (s *Service) ReleaseCart(ctx context.Context, sessionID string, reason inventory.MovementReason) error {
	sessionCart, err := s.store.Read(ctx, sessionID)
	if err != nil {
		return err
	}
	if sessionCart == nil {
		return nil
	}

	for _, item := range sessionCart.Items {
		if err := s.inventory.Release(item.ProductID, item.Quantity, sessionID, reason); err != nil {
			return err
		}
	}

	return s.store.Delete(ctx, sessionID)
}

// StartReaper sweeps abandoned carts on an interval, releasing their
// reservations. Runs until ctx is cancelled.
func (s *Service) StartReaper(ctx context.Context) {
	ticker := time.NewTicker(s.config.Cart.ReaperInterval)
	defer ticker.Stop()

	logrus.WithField("interval", s.config.Cart.ReaperInterval).Info("cart reaper started")

	for {
		select {
		case <-ctx.Done():
			logrus.Info("cart reaper stopped")
			return
		case <-ticker.C:
			s.reapExpired(ctx)
		}
	}
}

func (s *Service) reapExpired(ctx context.Context) {
	sessionIDs, err := s.store.Sessions(ctx)
	if err != nil {
		logrus.WithError(err).Warn("cart reaper failed to list sessions")
		return
	}

	now := time.Now().UTC()
	for _, sessionID := range sessionIDs {
		sessionCart, err := s.store.Read(ctx, sessionID)
		if err != nil {
			logrus.WithError(err).WithField("session_id", sessionID).Warn("cart reaper failed to read cart")
			continue
		}

		if sessionCart == nil {
			// Key already gone (claimed by checkout or evicted)
			if err := s.store.Delete(ctx, sessionID); err != nil {
				logrus.WithError(err).WithField("session_id", sessionID).Warn("cart reaper failed to drop session")
			}
			continue
		}

		if sessionCart.IsExpired(now) {
			if err := s.ReleaseCart(ctx, sessionID, inventory.ReasonCartExpiry); err != nil {
				logrus.WithError(err).WithField("session_id", sessionID).Error("cart reaper failed to release cart")
				continue
			}
			logrus.WithFields(logrus.Fields{
				"session_id": sessionID,
				"items":      len(sessionCart.Items),
			}).Info("released expired cart")
		}
	}
}

// Internal helpers

// loadCart reads the cart and enforces expiry inline, so correctness
// does not depend on the reaper's schedule.
func (s *Service) loadCart(ctx context.Context, sessionID string) (*SessionCart, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session ID required")
	}

	sessionCart, err := s.store.Read(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if sessionCart != nil && sessionCart.IsExpired(time.Now().UTC()) {
		if err := s.ReleaseCart(ctx, sessionID, inventory.ReasonCartExpiry); err != nil {
			return nil, err
		}
		sessionCart = nil
	}

	if sessionCart == nil {
		now := time.Now().UTC()
		sessionCart = &SessionCart{
			SessionID: sessionID,
			Items:     []SessionCartItem{},
			CreatedAt: now,
			UpdatedAt: now,
			ExpiresAt: now.Add(s.config.Cart.Expiry),
		}
	}

	return sessionCart, nil
}

func (s *Service) saveCart(ctx context.Context, sessionCart *SessionCart) error {
	now := time.Now().UTC()
	sessionCart.UpdatedAt = now
	// Activity extends the hold
	sessionCart.ExpiresAt = now.Add(s.config.Cart.Expiry)

	if len(sessionCart.Items) == 0 {
		return s.store.Delete(ctx, sessionCart.SessionID)
	}

	return s.store.Write(ctx, sessionCart, s.config.Cart.Expiry+cartKeyGrace)
}

func (s *Service) setQuantity(sessionCart *SessionCart, productID uint, quantity int) {
	for i := range sessionCart.Items {
		if sessionCart.Items[i].ProductID == productID {
			if quantity == 0 {
				sessionCart.Items = append(sessionCart.Items[:i], sessionCart.Items[i+1:]...)
			} else {
				sessionCart.Items[i].Quantity = quantity
			}
			return
		}
	}
	if quantity > 0 {
		sessionCart.Items = append(sessionCart.Items, SessionCartItem{
			ProductID: productID,
			Quantity:  quantity,
			AddedAt:   time.Now().UTC(),
		})
	}
}

func (s *Service) buildResponse(sessionCart *SessionCart) (*CartResponse, error) {
	items := make([]CartItemResponse, 0, len(sessionCart.Items))
	for _, item := range sessionCart.Items {
		resp := CartItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			AddedAt:   item.AddedAt,
		}

		if prod, err := s.products.FindProduct(item.ProductID); err == nil {
			resp.Product = prod
			resp.Price = prod.Price
		}

		items = append(items, resp)
	}

	return &CartResponse{
		SessionID: sessionCart.SessionID,
		Items:     items,
		Totals:    CalculateTotals(items),
		ExpiresAt: sessionCart.ExpiresAt,
		CreatedAt: sessionCart.CreatedAt,
		UpdatedAt: sessionCart.UpdatedAt,
	}, nil
}

// CalculateTotals computes totals over priced cart items
func CalculateTotals(items []CartItemResponse) CartTotals {
	var totals CartTotals

	totals.ItemCount = len(items)
	for _, item := range items {
		totals.TotalQuantity += item.Quantity
		totals.SubTotal += item.Price * int64(item.Quantity)
	}

	return totals
}
