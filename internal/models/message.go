package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message represents a direct message between two matched users. MatchID is
// optional: the retention job deletes old messages by age, match deletion
// removes the conversation in bulk.
type Message struct {
	ID         string    `gorm:"primaryKey;type:text" json:"id"`
	MatchID    *string   `gorm:"index;type:text" json:"matchId,omitempty"`
	SenderID   string    `gorm:"index;type:text;not null" json:"senderId"`
	ReceiverID string    `gorm:"index;type:text;not null" json:"receiverId"`
	Content    string    `json:"content"`
	IsRead     bool      `gorm:"default:false" json:"isRead"`
	CreatedAt  time.Time `json:"createdAt"`

	Sender User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return
}
