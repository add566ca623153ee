package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Photo belongs to exactly one user. At most one photo per user carries
// IsPrimary, enforced by the upload handlers rather than the schema.
type Photo struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	UserID    string    `gorm:"index;type:text;not null" json:"userId"`
	URL       string    `json:"url"`
	IsPrimary bool      `gorm:"default:false" json:"isPrimary"`
	SortOrder int       `gorm:"default:0" json:"order"`
	CreatedAt time.Time `json:"createdAt"`
}

func (p *Photo) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}
