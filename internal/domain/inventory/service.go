// internal/domain/inventory/service.go
package inventory

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"gorm.io/gorm"
)

// ErrInsufficientStock is returned when a reservation exceeds available stock.
var ErrInsufficientStock = fmt.Errorf("insufficient stock")

// Service handles stock reservations.
//
// Stock is held directly on the products table and every mutation is a
// single conditional UPDATE, so concurrent reservations can never take the
// same unit twice.
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new inventory service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// Reserve atomically decrements stock for a product. It fails without
// mutating anything when fewer than quantity units remain.
func (s *Service) Reserve(productID uint, quantity int, sessionID string, reason MovementReason) error {
	if quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}

	result := s.db.Model(&product.Product{}).
		Where("id = ? AND stock >= ?", productID, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))

	if result.Error != nil {
		return fmt.Errorf("failed to reserve stock: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		// Either the product is missing or stock ran out; tell them apart
		var count int64
		s.db.Model(&product.Product{}).Where("id = ?", productID).Count(&count)
		if count == 0 {
			return fmt.Errorf("product not found")
		}
		return ErrInsufficientStock
	}

	s.recordMovement(productID, MovementTypeReserve, reason, quantity, sessionID)
	return nil
}

// Release returns previously reserved units to stock.
func (s *Service) Release(productID uint, quantity int, sessionID string, reason MovementReason) error {
	if quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}

	result := s.db.Model(&product.Product{}).
		Where("id = ?", productID).
		UpdateColumn("stock", gorm.Expr("stock + ?", quantity))

	if result.Error != nil {
		return fmt.Errorf("failed to release stock: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		// Product deleted while reserved; nothing to restore
		return nil
	}

	s.recordMovement(productID, MovementTypeRelease, reason, quantity, sessionID)
	return nil
}

// GetMovements retrieves the audit trail for a product, newest first
func (s *Service) GetMovements(productID uint, limit int) ([]StockMovement, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var movements []StockMovement
	err := s.db.Where("product_id = ?", productID).
		Order("created_at DESC").
		Limit(limit).
		Find(&movements).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve stock movements: %w", err)
	}
	return movements, nil
}

func (s *Service) recordMovement(productID uint, movementType MovementType, reason MovementReason, quantity int, sessionID string) {
	movement := StockMovement{
		ProductID:    productID,
		MovementType: movementType,
		Reason:       reason,
		Quantity:     quantity,
		SessionID:    sessionID,
	}

	// Audit only; a failed audit row must not undo the stock mutation
	if err := s.db.Create(&movement).Error; err != nil {
		logrus.WithFields(logrus.Fields{
			"product_id": productID,
			"type":       movementType,
			"quantity":   quantity,
		}).WithError(err).Warn("failed to record stock movement")
	}
}
