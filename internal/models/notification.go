package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationType string

const (
	NotificationTypeLike     NotificationType = "LIKE"
	NotificationTypeMatch    NotificationType = "MATCH"
	NotificationTypeMessage  NotificationType = "MESSAGE"
	NotificationTypeReminder NotificationType = "REMINDER"
	NotificationTypeSystem   NotificationType = "SYSTEM"
)

type Notification struct {
	ID        string           `gorm:"primaryKey;type:text" json:"id"`
	UserID    string           `gorm:"index;type:text;not null" json:"userId"` // Recipient
	ActorID   *string          `gorm:"index;type:text" json:"actorId,omitempty"` // Who performed action, nil for system jobs
	Type      NotificationType `gorm:"type:varchar(20);not null" json:"type"`
	Title     string           `json:"title"`
	Body      string           `gorm:"type:text" json:"body"`
	IsRead    bool             `gorm:"default:false" json:"isRead"`
	CreatedAt time.Time        `json:"createdAt"`

	Actor User `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	return
}
