package model

import (
	"time"

	"gorm.io/gorm"
)

// Product represents a shop item (treat bags, bandanas, gift cards)
type Product struct {
	ID          uint           `json:"id" gorm:"primarykey"`
	Name        string         `json:"name" gorm:"type:varchar(255);not null"`
	Description string         `json:"description" gorm:"type:text"`
	SKU         string         `json:"sku" gorm:"type:varchar(100);unique;not null"`
	Price       float64        `json:"price" gorm:"not null"`
	IsActive    bool           `json:"is_active" gorm:"default:true"`
	Images      []ProductImage `json:"images,omitempty" gorm:"foreignKey:ProductID"`
	Variants    []Variant      `json:"variants,omitempty" gorm:"foreignKey:ProductID"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// ProductImage represents a hosted photo attached to a product
type ProductImage struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	ProductID uint           `json:"product_id" gorm:"index;not null"`
	URL       string         `json:"url" gorm:"type:text;not null"`
	PublicID  string         `json:"public_id" gorm:"type:varchar(255);not null"`
	AltText   *string        `json:"alt_text,omitempty" gorm:"type:varchar(255)"`
	Position  int            `json:"position" gorm:"default:0"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// Variant represents a purchasable configuration of a product (size, flavor).
// Name is unique within its product; each variant owns at most one
// InventoryLevel row.
type Variant struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	ProductID uint      `json:"product_id" gorm:"uniqueIndex:idx_variant_product_name;not null"`
	Name      string    `json:"name" gorm:"type:varchar(100);uniqueIndex:idx_variant_product_name;not null"`
	Price     *float64  `json:"price,omitempty" gorm:"comment:'Overrides product price when set'"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CartItem represents a line in a visitor's shopping cart
type CartItem struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	CartToken string    `json:"cart_token" gorm:"type:varchar(64);index;not null"`
	ProductID uint      `json:"product_id" gorm:"index;not null"`
	VariantID uint      `json:"variant_id" gorm:"index;not null"`
	Quantity  int       `json:"quantity" gorm:"default:1"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AssetRef returns the remote asset reference for purge. Products have no
// asset of their own; their images carry the assets.
func (p *Product) AssetRef() string { return "" }

// AssetRef returns the remote asset reference for purge
func (pi *ProductImage) AssetRef() string { return pi.PublicID }
