// internal/domain/order/entity.go
package order

import (
	"time"

	"gorm.io/gorm"
)

// OrderStatus represents the order status
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// ValidStatuses lists every status an admin may set
var ValidStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// IsValidStatus reports whether s is a known order status
func IsValidStatus(s OrderStatus) bool {
	for _, status := range ValidStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Order represents the order entity
type Order struct {
	ID     uint        `gorm:"primaryKey" json:"id"`
	UserID *uint       `gorm:"index" json:"user_id"` // Nullable for guest orders
	Status OrderStatus `gorm:"not null;default:'pending'" json:"status"`

	// Contact snapshot captured at checkout
	CustomerName    string `gorm:"not null;size:255" json:"customer_name"`
	CustomerPhone   string `gorm:"not null;size:50" json:"customer_phone"`
	CustomerAddress string `gorm:"not null;type:text" json:"customer_address"`

	// Pricing breakdown in minor units
	SubtotalAmount int64  `gorm:"not null" json:"subtotal_amount"`
	DiscountAmount int64  `gorm:"default:0" json:"discount_amount"`
	TotalAmount    int64  `gorm:"not null" json:"total_amount"`
	CouponCode     string `gorm:"size:50" json:"coupon_code"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
}

// OrderItem represents one line of an order with a unit price snapshot
type OrderItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	OrderID    uint      `gorm:"not null;index" json:"order_id"`
	ProductID  uint      `gorm:"not null;index" json:"product_id"`
	Name       string    `gorm:"not null;size:255" json:"name"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	Price      int64     `gorm:"not null" json:"price"`       // Price per unit at checkout
	TotalPrice int64     `gorm:"not null" json:"total_price"` // Quantity * Price
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName overrides
func (Order) TableName() string     { return "orders" }
func (OrderItem) TableName() string { return "order_items" }
