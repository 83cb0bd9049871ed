// internal/domain/chat/service.go
package chat

import (
	"fmt"
	"strings"

	"github.com/your-org/storefront-backend/internal/config"
	"gorm.io/gorm"
)

// Service handles support chat business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new chat service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// SendMessageRequest represents a new chat message
type SendMessageRequest struct {
	Body string `json:"body" binding:"required"`
}

// Conversation summarizes one user's chat thread for the admin view
type Conversation struct {
	UserID       uint   `json:"user_id"`
	Username     string `json:"username"`
	MessageCount int64  `json:"message_count"`
	LastMessage  string `json:"last_message"`
}

// GetMessages retrieves a user's messages, oldest first.
// Clients poll this endpoint and replace their rendered list.
func (s *Service) GetMessages(userID uint) ([]Message, error) {
	var messages []Message
	if err := s.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve messages: %w", err)
	}
	return messages, nil
}

// SendMessage appends a user-authored message
func (s *Service) SendMessage(userID uint, req *SendMessageRequest) (*Message, error) {
	return s.append(userID, SenderUser, req.Body)
}

// Reply appends an admin-authored message to a user's thread
func (s *Service) Reply(userID uint, req *SendMessageRequest) (*Message, error) {
	return s.append(userID, SenderAdmin, req.Body)
}

// GetConversations lists user threads for the admin view, most recently
// active first
func (s *Service) GetConversations() ([]Conversation, error) {
	var conversations []Conversation
	err := s.db.Table("messages").
		Select("messages.user_id, users.username, COUNT(messages.id) as message_count").
		Joins("JOIN users ON users.id = messages.user_id").
		Group("messages.user_id, users.username").
		Order("MAX(messages.created_at) DESC").
		Scan(&conversations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve conversations: %w", err)
	}

	for i := range conversations {
		var last Message
		if err := s.db.Where("user_id = ?", conversations[i].UserID).Order("created_at DESC").First(&last).Error; err == nil {
			conversations[i].LastMessage = last.Body
		}
	}

	return conversations, nil
}

func (s *Service) append(userID uint, sender Sender, body string) (*Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("message body cannot be empty")
	}

	message := Message{
		UserID: userID,
		Sender: sender,
		Body:   body,
	}
	if err := s.db.Create(&message).Error; err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	return &message, nil
}
