package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Match is the unordered pair formed when both directions of a Like exist.
// User1ID always sorts before User2ID so the unique index deduplicates the
// pair regardless of which like arrived last.
type Match struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	User1ID   string    `gorm:"uniqueIndex:idx_matches_pair;type:text;not null" json:"user1Id"`
	User2ID   string    `gorm:"uniqueIndex:idx_matches_pair;type:text;not null" json:"user2Id"`
	CreatedAt time.Time `json:"createdAt"`

	User1    User      `gorm:"foreignKey:User1ID" json:"user1,omitempty"`
	User2    User      `gorm:"foreignKey:User2ID" json:"user2,omitempty"`
	Messages []Message `gorm:"foreignKey:MatchID" json:"messages,omitempty"`
}

func (m *Match) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return
}

// Counterpart returns the other participant's side of the match.
func (m *Match) Counterpart(userID string) *User {
	if m.User1ID == userID {
		return &m.User2
	}
	return &m.User1
}
