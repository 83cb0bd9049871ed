// internal/domain/inventory/entity.go
package inventory

import (
	"time"
)

// MovementType represents the type of stock movement
type MovementType string

const (
	MovementTypeReserve MovementType = "reserve" // cart add / quantity increase
	MovementTypeRelease MovementType = "release" // cart remove / expiry
	MovementTypeAdjust  MovementType = "adjust"  // admin stock correction
)

// MovementReason represents the reason for a stock movement
type MovementReason string

const (
	ReasonCartAdd    MovementReason = "cart_add"
	ReasonCartRemove MovementReason = "cart_remove"
	ReasonCartExpiry MovementReason = "cart_expiry"
	ReasonAdmin      MovementReason = "admin"
)

// StockMovement is an audit record for every stock mutation
type StockMovement struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	ProductID    uint           `gorm:"not null;index" json:"product_id"`
	MovementType MovementType   `gorm:"not null;size:20" json:"movement_type"`
	Reason       MovementReason `gorm:"not null;size:30" json:"reason"`
	Quantity     int            `gorm:"not null" json:"quantity"`
	SessionID    string         `gorm:"size:64;index" json:"session_id,omitempty"`
	Notes        string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

// TableName overrides the table name
func (StockMovement) TableName() string {
	return "stock_movements"
}
