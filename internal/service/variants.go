package service

import (
	"context"
	"errors"

	"github.com/dttrue/mabels-pawfect-sub001/internal/model"
	"github.com/dttrue/mabels-pawfect-sub001/prometheus"

	"gorm.io/gorm"
)

// DefaultVariantName is used when a product needs a purchasable variant
// and the caller didn't name one.
const DefaultVariantName = "Default"

// Variants guarantees every product has at least one purchasable variant
// backed by an inventory row, and tears variants down without leaving
// dangling references.
type Variants struct {
	db *gorm.DB
}

// NewVariants creates a variant manager
func NewVariants(db *gorm.DB) *Variants {
	return &Variants{db: db}
}

// EnsureDefault returns the variant named name under productID, creating
// it when absent, and guarantees an inventory row exists for it. Both
// steps share one transaction: a variant must never exist without its
// inventory row. Idempotent.
func (v *Variants) EnsureDefault(ctx context.Context, productID uint, name string) (*model.Variant, error) {
	if name == "" {
		name = DefaultVariantName
	}

	var variant model.Variant
	var level model.InventoryLevel
	err := v.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product model.Product
		if err := tx.First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		err := tx.Where("product_id = ? AND name = ?", productID, name).First(&variant).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			variant = model.Variant{ProductID: productID, Name: name}
			if err := tx.Create(&variant).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		// Ensure the inventory row; create at zero through the ledger so
		// the one-log-per-mutation invariant holds.
		err = tx.Where("product_id = ? AND variant_id = ?", productID, variant.ID).First(&level).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			level = model.InventoryLevel{ProductID: productID, VariantID: variant.ID, OnHand: 0}
			if err := tx.Create(&level).Error; err != nil {
				return err
			}
			return appendLog(tx, logEntry{
				ProductID: productID,
				VariantID: variant.ID,
				Action:    model.InventoryActionCreate,
				FromQty:   0,
				ToQty:     0,
				Reason:    "ensure default variant",
				Source:    "system",
			})
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	prometheus.SetInventoryOnHand(productID, variant.ID, level.OnHand)
	return &variant, nil
}

// Delete removes a variant and everything referencing it, in an order
// that keeps retries safe: cart items first, then the inventory row (with
// its DELETE audit entry), then the audit trail is detached from the
// variant, then the variant row itself. Every step is idempotent.
// Fails with ErrNotFound before any mutation when variantID does not
// belong to productID.
func (v *Variants) Delete(ctx context.Context, productID, variantID uint, reason string, userID *uint) error {
	err := v.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var variant model.Variant
		err := tx.Where("id = ? AND product_id = ?", variantID, productID).First(&variant).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		// 1. Cart items referencing the variant
		if err := tx.Where("product_id = ? AND variant_id = ?", productID, variantID).
			Delete(&model.CartItem{}).Error; err != nil {
			return err
		}

		// 2. Inventory row, logged as a DELETE
		if _, err := deleteLevelTx(tx, productID, variantID, reason, "variant delete", userID); err != nil {
			return err
		}

		// 3. Detach the audit trail: stamp the reason where missing, then
		// null the variant reference. History rows stay forever.
		if reason != "" {
			if err := tx.Model(&model.InventoryLog{}).
				Where("product_id = ? AND variant_id = ? AND (reason IS NULL OR reason = '')", productID, variantID).
				Update("reason", reason).Error; err != nil {
				return err
			}
		}
		if err := tx.Model(&model.InventoryLog{}).
			Where("product_id = ? AND variant_id = ?", productID, variantID).
			Update("variant_id", nil).Error; err != nil {
			return err
		}

		// 4. The variant row itself
		return tx.Delete(&variant).Error
	})
	if err != nil {
		return err
	}

	prometheus.ClearInventoryOnHand(productID, variantID)
	return nil
}
