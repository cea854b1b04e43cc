package model

import (
	"time"

	"gorm.io/gorm"
)

// Contest entry moderation states
const (
	ContestStatusPending  = "pending"
	ContestStatusAccepted = "accepted"
	ContestStatusDeclined = "declined"
)

// ContestEntry represents a photo contest submission from a site visitor
type ContestEntry struct {
	ID         uint           `json:"id" gorm:"primarykey"`
	Token      string         `json:"token" gorm:"type:varchar(36);uniqueIndex;not null;comment:'Public lookup token'"`
	OwnerName  string         `json:"owner_name" gorm:"type:varchar(255);not null"`
	OwnerEmail string         `json:"owner_email" gorm:"type:varchar(255);not null"`
	PetName    string         `json:"pet_name" gorm:"type:varchar(255);not null"`
	Story      string         `json:"story" gorm:"type:text"`
	PhotoURL   string         `json:"photo_url" gorm:"type:text;not null"`
	PublicID   string         `json:"public_id" gorm:"type:varchar(255);not null"`
	Status     string         `json:"status" gorm:"type:varchar(20);default:'pending'"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// AssetRef returns the remote asset reference for purge
func (e *ContestEntry) AssetRef() string { return e.PublicID }
