// internal/domain/returns/service.go
package returns

import (
	"fmt"
	"strings"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"gorm.io/gorm"
)

// Service handles return and exchange requests
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new returns service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreateRequest represents a return or exchange submission
type CreateRequest struct {
	OrderID uint   `json:"order_id" binding:"required"`
	Reason  string `json:"reason" binding:"required"`
}

// UpdateExchangeStatusRequest represents an admin decision on an exchange
type UpdateExchangeStatusRequest struct {
	Status ExchangeStatus `json:"status" binding:"required"`
}

// CreateReturn files a return request for an order the user owns
func (s *Service) CreateReturn(userID uint, req *CreateRequest) (*ReturnRequest, error) {
	reason, err := s.validateRequest(userID, req)
	if err != nil {
		return nil, err
	}

	returnRequest := ReturnRequest{
		OrderID: req.OrderID,
		UserID:  userID,
		Reason:  reason,
	}
	if err := s.db.Create(&returnRequest).Error; err != nil {
		return nil, fmt.Errorf("failed to create return request: %w", err)
	}

	return &returnRequest, nil
}

// CreateExchange files an exchange request for an order the user owns
func (s *Service) CreateExchange(userID uint, req *CreateRequest) (*ExchangeRequest, error) {
	reason, err := s.validateRequest(userID, req)
	if err != nil {
		return nil, err
	}

	exchangeRequest := ExchangeRequest{
		OrderID: req.OrderID,
		UserID:  userID,
		Reason:  reason,
		Status:  ExchangeStatusPending,
	}
	if err := s.db.Create(&exchangeRequest).Error; err != nil {
		return nil, fmt.Errorf("failed to create exchange request: %w", err)
	}

	return &exchangeRequest, nil
}

// GetUserRequests lists the user's return and exchange requests
func (s *Service) GetUserRequests(userID uint) ([]ReturnRequest, []ExchangeRequest, error) {
	var returnRequests []ReturnRequest
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&returnRequests).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to retrieve return requests: %w", err)
	}

	var exchangeRequests []ExchangeRequest
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&exchangeRequests).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to retrieve exchange requests: %w", err)
	}

	return returnRequests, exchangeRequests, nil
}

// GetAllRequests lists every return and exchange request for the back office
func (s *Service) GetAllRequests() ([]ReturnRequest, []ExchangeRequest, error) {
	var returnRequests []ReturnRequest
	if err := s.db.Order("created_at DESC").Find(&returnRequests).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to retrieve return requests: %w", err)
	}

	var exchangeRequests []ExchangeRequest
	if err := s.db.Order("created_at DESC").Find(&exchangeRequests).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to retrieve exchange requests: %w", err)
	}

	return returnRequests, exchangeRequests, nil
}

// UpdateExchangeStatus records an admin decision on an exchange request
func (s *Service) UpdateExchangeStatus(requestID uint, req *UpdateExchangeStatusRequest) (*ExchangeRequest, error) {
	switch req.Status {
	case ExchangeStatusPending, ExchangeStatusApproved, ExchangeStatusRejected:
	default:
		return nil, fmt.Errorf("invalid exchange status: %s", req.Status)
	}

	var exchangeRequest ExchangeRequest
	if err := s.db.Where("id = ?", requestID).First(&exchangeRequest).Error; err != nil {
		return nil, fmt.Errorf("exchange request not found")
	}

	if err := s.db.Model(&exchangeRequest).Update("status", req.Status).Error; err != nil {
		return nil, fmt.Errorf("failed to update exchange request: %w", err)
	}

	return &exchangeRequest, nil
}

// validateRequest verifies ownership of the order and normalizes the reason
func (s *Service) validateRequest(userID uint, req *CreateRequest) (string, error) {
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return "", fmt.Errorf("reason is required")
	}

	var count int64
	if err := s.db.Model(&order.Order{}).Where("id = ? AND user_id = ?", req.OrderID, userID).Count(&count).Error; err != nil {
		return "", fmt.Errorf("failed to verify order: %w", err)
	}
	if count == 0 {
		return "", fmt.Errorf("order not found")
	}

	return reason, nil
}
