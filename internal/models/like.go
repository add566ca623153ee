package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Like is a directed edge sender -> receiver, unique per ordered pair.
// Rows are created once and never updated; they survive both match creation
// and unmatch.
type Like struct {
	ID         string    `gorm:"primaryKey;type:text" json:"id"`
	SenderID   string    `gorm:"uniqueIndex:idx_likes_pair;type:text;not null" json:"senderId"`
	ReceiverID string    `gorm:"uniqueIndex:idx_likes_pair;type:text;not null" json:"receiverId"`
	CreatedAt  time.Time `json:"createdAt"`

	Sender   User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Receiver User `gorm:"foreignKey:ReceiverID" json:"-"`
}

func (l *Like) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return
}
