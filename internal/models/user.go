package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

type User struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Email    string `gorm:"uniqueIndex" json:"email"`
	Password string `json:"-"`

	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	DateOfBirth time.Time `json:"dateOfBirth"`
	Gender      Gender    `gorm:"type:text" json:"gender"`
	Location    string    `json:"location"`
	Phone       string    `json:"phone,omitempty"`
	Job         string    `json:"job,omitempty"`
	Education   string    `json:"education,omitempty"`
	Bio         string    `json:"bio,omitempty"`
	Interests   string    `json:"interests,omitempty"`

	// Accounts are never hard-deleted; deactivation flips this flag.
	IsActive   bool      `gorm:"default:true" json:"isActive"`
	IsVerified bool      `gorm:"default:false" json:"isVerified"`
	LastSeen   time.Time `json:"lastSeen"`

	Photos []Photo `gorm:"foreignKey:UserID" json:"photos,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	if u.LastSeen.IsZero() {
		u.LastSeen = time.Now()
	}
	return
}

// PrimaryPhoto returns the user's primary photo, or nil if none is set.
func (u *User) PrimaryPhoto() *Photo {
	for i := range u.Photos {
		if u.Photos[i].IsPrimary {
			return &u.Photos[i]
		}
	}
	return nil
}
