// internal/domain/coupon/service.go
package coupon

import (
	"fmt"
	"strings"
	"time"

	"github.com/your-org/storefront-backend/internal/config"
	"gorm.io/gorm"
)

// Service handles coupon business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new coupon service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreateCouponRequest represents coupon creation data
type CreateCouponRequest struct {
	Code      string     `json:"code" binding:"required"`
	Percent   float64    `json:"percent" binding:"required,gt=0,lte=100"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// Validate looks up a coupon code and checks its expiry. Unknown and
// expired codes both fail; callers must treat that as fatal to checkout.
func (s *Service) Validate(code string) (*Coupon, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("coupon code is empty")
	}

	var c Coupon
	result := s.db.Where("code = ?", code).First(&c)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("invalid coupon code")
		}
		return nil, fmt.Errorf("failed to look up coupon: %w", result.Error)
	}

	if c.IsExpired(time.Now().UTC()) {
		return nil, fmt.Errorf("coupon has expired")
	}

	return &c, nil
}

// GetCoupons retrieves all coupons, newest first
func (s *Service) GetCoupons() ([]Coupon, error) {
	var coupons []Coupon
	if err := s.db.Order("created_at DESC").Find(&coupons).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve coupons: %w", err)
	}
	return coupons, nil
}

// CreateCoupon creates a new coupon
func (s *Service) CreateCoupon(req *CreateCouponRequest) (*Coupon, error) {
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return nil, fmt.Errorf("coupon code is required")
	}

	var existing Coupon
	if err := s.db.Where("code = ?", code).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("coupon with this code already exists")
	}

	c := Coupon{
		Code:      code,
		Percent:   req.Percent,
		ExpiresAt: req.ExpiresAt,
	}

	if err := s.db.Create(&c).Error; err != nil {
		return nil, fmt.Errorf("failed to create coupon: %w", err)
	}

	return &c, nil
}

// DeleteCoupon removes a coupon
func (s *Service) DeleteCoupon(id uint) error {
	result := s.db.Delete(&Coupon{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete coupon: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("coupon not found")
	}
	return nil
}
