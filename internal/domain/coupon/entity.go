// internal/domain/coupon/entity.go
package coupon

import (
	"time"

	"gorm.io/gorm"
)

// Coupon represents a percentage discount code
type Coupon struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Code      string         `gorm:"uniqueIndex;not null;size:50" json:"code"`
	Percent   float64        `gorm:"not null" json:"percent"`
	ExpiresAt *time.Time     `json:"expires_at"` // nil means never expires
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (Coupon) TableName() string {
	return "coupons"
}

// IsExpired reports whether the coupon has expired at the given instant
func (c *Coupon) IsExpired(now time.Time) bool {
	return c.ExpiresAt != nil && c.ExpiresAt.Before(now)
}

// Discount returns the discount amount for a subtotal in minor units
func (c *Coupon) Discount(subtotal int64) int64 {
	return int64(float64(subtotal) * c.Percent / 100)
}
