// internal/domain/analytics/service.go
package analytics

import (
	"fmt"
	"time"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"github.com/your-org/storefront-backend/internal/domain/returns"
	"github.com/your-org/storefront-backend/internal/domain/user"
	"gorm.io/gorm"
)

// Service handles analytics business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new analytics service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// DashboardStats represents back-office dashboard statistics
type DashboardStats struct {
	// Sales metrics
	TotalRevenue int64 `json:"total_revenue"` // In minor units
	RevenueToday int64 `json:"revenue_today"` // In minor units

	// Order metrics
	TotalOrders   int64 `json:"total_orders"`
	OrdersToday   int64 `json:"orders_today"`
	PendingOrders int64 `json:"pending_orders"`

	// User metrics
	TotalUsers    int64 `json:"total_users"`
	NewUsersToday int64 `json:"new_users_today"`

	// Product metrics
	TotalProducts      int64          `json:"total_products"`
	OutOfStockProducts int64          `json:"out_of_stock_products"`
	LowStockProducts   []LowStockData `json:"low_stock_products"`

	// Support metrics
	PendingExchanges int64 `json:"pending_exchanges"`
	ReturnRequests   int64 `json:"return_requests"`
}

// LowStockData identifies a product running low on stock
type LowStockData struct {
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	Stock       int    `json:"stock"`
}

// Products at or below this stock level show up on the dashboard
const lowStockThreshold = 5

// GetDashboardStats computes the back-office dashboard summary
func (s *Service) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{}
	today := time.Now().UTC().Truncate(24 * time.Hour)

	// Revenue from orders that were not cancelled
	revenueQuery := s.db.Model(&order.Order{}).Where("status != ?", order.OrderStatusCancelled)
	if err := revenueQuery.Select("COALESCE(SUM(total_amount), 0)").Scan(&stats.TotalRevenue).Error; err != nil {
		return nil, fmt.Errorf("failed to compute total revenue: %w", err)
	}
	if err := s.db.Model(&order.Order{}).
		Where("status != ? AND created_at >= ?", order.OrderStatusCancelled, today).
		Select("COALESCE(SUM(total_amount), 0)").Scan(&stats.RevenueToday).Error; err != nil {
		return nil, fmt.Errorf("failed to compute today's revenue: %w", err)
	}

	// Order counts
	if err := s.db.Model(&order.Order{}).Count(&stats.TotalOrders).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}
	if err := s.db.Model(&order.Order{}).Where("created_at >= ?", today).Count(&stats.OrdersToday).Error; err != nil {
		return nil, fmt.Errorf("failed to count today's orders: %w", err)
	}
	if err := s.db.Model(&order.Order{}).Where("status = ?", order.OrderStatusPending).Count(&stats.PendingOrders).Error; err != nil {
		return nil, fmt.Errorf("failed to count pending orders: %w", err)
	}

	// User counts
	if err := s.db.Model(&user.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if err := s.db.Model(&user.User{}).Where("created_at >= ?", today).Count(&stats.NewUsersToday).Error; err != nil {
		return nil, fmt.Errorf("failed to count today's users: %w", err)
	}

	// Product counts
	if err := s.db.Model(&product.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	if err := s.db.Model(&product.Product{}).Where("stock = 0").Count(&stats.OutOfStockProducts).Error; err != nil {
		return nil, fmt.Errorf("failed to count out-of-stock products: %w", err)
	}

	var lowStock []product.Product
	if err := s.db.Where("stock > 0 AND stock <= ?", lowStockThreshold).
		Order("stock ASC").Limit(10).Find(&lowStock).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve low-stock products: %w", err)
	}
	stats.LowStockProducts = make([]LowStockData, 0, len(lowStock))
	for _, p := range lowStock {
		stats.LowStockProducts = append(stats.LowStockProducts, LowStockData{
			ProductID:   p.ID,
			ProductName: p.Name,
			Stock:       p.Stock,
		})
	}

	// Support workload
	if err := s.db.Model(&returns.ExchangeRequest{}).
		Where("status = ?", returns.ExchangeStatusPending).Count(&stats.PendingExchanges).Error; err != nil {
		return nil, fmt.Errorf("failed to count pending exchanges: %w", err)
	}
	if err := s.db.Model(&returns.ReturnRequest{}).Count(&stats.ReturnRequests).Error; err != nil {
		return nil, fmt.Errorf("failed to count return requests: %w", err)
	}

	return stats, nil
}
