// internal/domain/returns/entity.go
package returns

import (
	"time"
)

// ExchangeStatus represents the state of an exchange request
type ExchangeStatus string

const (
	ExchangeStatusPending  ExchangeStatus = "pending"
	ExchangeStatusApproved ExchangeStatus = "approved"
	ExchangeStatusRejected ExchangeStatus = "rejected"
)

// ReturnRequest represents a user's request to return an order
type ReturnRequest struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"not null;index" json:"order_id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Reason    string    `gorm:"not null;type:text" json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

// ExchangeRequest represents a user's request to exchange an order
type ExchangeRequest struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	OrderID   uint           `gorm:"not null;index" json:"order_id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	Reason    string         `gorm:"not null;type:text" json:"reason"`
	Status    ExchangeStatus `gorm:"not null;default:'pending';size:20" json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// TableName overrides
func (ReturnRequest) TableName() string   { return "return_requests" }
func (ExchangeRequest) TableName() string { return "exchange_requests" }
