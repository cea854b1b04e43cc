package model

import (
	"time"

	"gorm.io/gorm"
)

// GalleryImage represents a photo in the public site gallery
type GalleryImage struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	Title     string         `json:"title" gorm:"type:varchar(255)"`
	URL       string         `json:"url" gorm:"type:text;not null"`
	PublicID  string         `json:"public_id" gorm:"type:varchar(255);not null;comment:'Cloudinary public id of the hosted asset'"`
	SortOrder int            `json:"sort_order" gorm:"default:0"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// Highlight represents a featured story card on the home page
type Highlight struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	Title     string         `json:"title" gorm:"type:varchar(255);not null"`
	Body      string         `json:"body" gorm:"type:text"`
	URL       string         `json:"url" gorm:"type:text"`
	PublicID  string         `json:"public_id" gorm:"type:varchar(255)"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// AssetRef returns the remote asset reference for purge
func (g *GalleryImage) AssetRef() string { return g.PublicID }

// AssetRef returns the remote asset reference for purge
func (h *Highlight) AssetRef() string { return h.PublicID }
