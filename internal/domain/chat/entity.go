// internal/domain/chat/entity.go
package chat

import (
	"time"
)

// Sender identifies who authored a chat message
type Sender string

const (
	SenderUser  Sender = "user"
	SenderAdmin Sender = "admin"
)

// Message represents one chat message between a user and support
type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Sender    Sender    `gorm:"not null;size:10" json:"sender"`
	Body      string    `gorm:"not null;type:text" json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name for Message
func (Message) TableName() string {
	return "messages"
}
