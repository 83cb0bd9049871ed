// internal/domain/order/service.go
package order

import (
	"fmt"
	"math"

	"github.com/your-org/storefront-backend/internal/config"
	"gorm.io/gorm"
)

// Service handles order business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new order service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// ListRequest represents order listing parameters
type ListRequest struct {
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit,default=20"`
	Status string `form:"status"`
}

// ListResponse represents a paginated order listing
type ListResponse struct {
	Orders     []Order    `json:"orders"`
	Pagination Pagination `json:"pagination"`
}

// Pagination represents pagination information
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// UpdateStatusRequest represents an admin status change
type UpdateStatusRequest struct {
	Status OrderStatus `json:"status" binding:"required"`
}

// GetUserOrders retrieves a user's orders, newest first
func (s *Service) GetUserOrders(userID uint, req *ListRequest) (*ListResponse, error) {
	return s.list(s.db.Where("user_id = ?", userID), req)
}

// GetOrder retrieves a single order scoped to its owner
func (s *Service) GetOrder(userID, orderID uint) (*Order, error) {
	var order Order
	result := s.db.Preload("Items").Where("id = ? AND user_id = ?", orderID, userID).First(&order)
	if result.Error != nil {
		return nil, fmt.Errorf("order not found")
	}
	return &order, nil
}

// GetOrderByID retrieves any order without ownership scoping. Admin use only.
func (s *Service) GetOrderByID(orderID uint) (*Order, error) {
	var order Order
	result := s.db.Preload("Items").Where("id = ?", orderID).First(&order)
	if result.Error != nil {
		return nil, fmt.Errorf("order not found")
	}
	return &order, nil
}

// GetAllOrders retrieves orders across all users, optionally filtered by status
func (s *Service) GetAllOrders(req *ListRequest) (*ListResponse, error) {
	query := s.db.Model(&Order{})
	if req.Status != "" {
		if !IsValidStatus(OrderStatus(req.Status)) {
			return nil, fmt.Errorf("invalid order status: %s", req.Status)
		}
		query = query.Where("status = ?", req.Status)
	}
	return s.list(query, req)
}

// UpdateStatus changes an order's status
func (s *Service) UpdateStatus(orderID uint, req *UpdateStatusRequest) (*Order, error) {
	if !IsValidStatus(req.Status) {
		return nil, fmt.Errorf("invalid order status: %s", req.Status)
	}

	var order Order
	if err := s.db.Where("id = ?", orderID).First(&order).Error; err != nil {
		return nil, fmt.Errorf("order not found")
	}

	if err := s.db.Model(&order).Update("status", req.Status).Error; err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	return s.GetOrderByID(orderID)
}

func (s *Service) list(query *gorm.DB, req *ListRequest) (*ListResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	var total int64
	if err := query.Model(&Order{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	var orders []Order
	offset := (req.Page - 1) * req.Limit
	if err := query.Preload("Items").Order("created_at DESC").Offset(offset).Limit(req.Limit).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}

	totalPages := int(math.Ceil(float64(total) / float64(req.Limit)))
	return &ListResponse{
		Orders: orders,
		Pagination: Pagination{
			Page:       req.Page,
			Limit:      req.Limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    req.Page < totalPages,
			HasPrev:    req.Page > 1,
		},
	}, nil
}
