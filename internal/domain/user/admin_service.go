// internal/domain/user/admin_service.go
package user

import (
	"fmt"

	"github.com/your-org/storefront-backend/internal/config"
	"gorm.io/gorm"
)

// AdminService handles back-office user management
type AdminService struct {
	db     *gorm.DB
	config *config.Config
}

// NewAdminService creates a new admin user service
func NewAdminService(db *gorm.DB, cfg *config.Config) *AdminService {
	return &AdminService{
		db:     db,
		config: cfg,
	}
}

// ListUsers retrieves all users, newest first
func (s *AdminService) ListUsers() ([]User, error) {
	var users []User
	if err := s.db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve users: %w", err)
	}

	for i := range users {
		users[i].Password = ""
	}
	return users, nil
}

// DeleteUser removes a user account. Admins cannot delete themselves.
func (s *AdminService) DeleteUser(actorID, targetID uint) error {
	if actorID == targetID {
		return fmt.Errorf("cannot delete your own account")
	}

	result := s.db.Delete(&User{}, targetID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("user not found")
	}
	return nil
}
