package model

import (
	"time"
)

// Inventory log actions
const (
	InventoryActionCreate = "CREATE"
	InventoryActionUpdate = "UPDATE"
	InventoryActionDelete = "DELETE"
)

// InventoryLevel represents the on-hand stock count for a product variant.
// One row per (product_id, variant_id).
type InventoryLevel struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	ProductID uint      `json:"product_id" gorm:"uniqueIndex:idx_inventory_product_variant;not null"`
	VariantID uint      `json:"variant_id" gorm:"uniqueIndex:idx_inventory_product_variant;not null"`
	OnHand    int       `json:"on_hand" gorm:"default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InventoryLog is the append-only audit trail for stock mutations. Rows are
// never edited or deleted; the only permitted change is nulling VariantID
// when the variant itself is removed, which preserves the history while
// breaking the dangling reference. VariantID is nullable by schema for
// exactly that reason.
type InventoryLog struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	ProductID uint      `json:"product_id" gorm:"index:idx_invlog_product_variant;not null"`
	VariantID *uint     `json:"variant_id" gorm:"index:idx_invlog_product_variant"`
	Action    string    `json:"action" gorm:"type:varchar(10);not null"`
	Delta     int       `json:"delta" gorm:"not null"`
	FromQty   int       `json:"from_qty" gorm:"not null"`
	ToQty     int       `json:"to_qty" gorm:"not null"`
	Reason    string    `json:"reason" gorm:"type:varchar(255)"`
	Source    string    `json:"source" gorm:"type:varchar(100)"`
	UserID    *uint     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
