package service

import (
	"context"
	"errors"

	"github.com/dttrue/mabels-pawfect-sub001/internal/model"
	"github.com/dttrue/mabels-pawfect-sub001/prometheus"

	"gorm.io/gorm"
)

// AdjustInput describes one stock mutation with its provenance
type AdjustInput struct {
	ProductID uint
	VariantID uint
	ToQty     int
	Reason    string
	Source    string
	UserID    *uint
}

// Ledger mutates on-hand stock and appends exactly one audit entry per
// mutation, both inside a single transaction. The log is append-only: it
// is never edited or deleted, only its variant reference may be nulled
// when the variant is removed.
type Ledger struct {
	db *gorm.DB
}

// NewLedger creates an inventory ledger
func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// Adjust sets the on-hand count for (productID, variantID), creating the
// row when absent, and records the transition. Row mutation and log append
// commit together or not at all.
func (l *Ledger) Adjust(ctx context.Context, in AdjustInput) (*model.InventoryLevel, error) {
	var level model.InventoryLevel
	action := model.InventoryActionUpdate

	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fromQty := 0

		err := tx.Where("product_id = ? AND variant_id = ?", in.ProductID, in.VariantID).First(&level).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			action = model.InventoryActionCreate
			level = model.InventoryLevel{
				ProductID: in.ProductID,
				VariantID: in.VariantID,
				OnHand:    in.ToQty,
			}
			if err := tx.Create(&level).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			fromQty = level.OnHand
			level.OnHand = in.ToQty
			if err := tx.Save(&level).Error; err != nil {
				return err
			}
		}

		return appendLog(tx, logEntry{
			ProductID: in.ProductID,
			VariantID: in.VariantID,
			Action:    action,
			FromQty:   fromQty,
			ToQty:     in.ToQty,
			Reason:    in.Reason,
			Source:    in.Source,
			UserID:    in.UserID,
		})
	})
	if err != nil {
		return nil, err
	}

	prometheus.RecordInventoryOperation(action)
	prometheus.SetInventoryOnHand(in.ProductID, in.VariantID, level.OnHand)
	return &level, nil
}

// DeleteRow removes the inventory row for (productID, variantID) and logs
// the removal with delta = -fromQty. A missing row is a no-op, not an
// error; the bool reports whether anything was deleted.
func (l *Ledger) DeleteRow(ctx context.Context, productID, variantID uint, reason string, userID *uint) (bool, error) {
	deleted := false

	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		deleted, err = deleteLevelTx(tx, productID, variantID, reason, "admin", userID)
		return err
	})
	if err != nil {
		return false, err
	}

	if deleted {
		prometheus.RecordInventoryOperation(model.InventoryActionDelete)
		prometheus.ClearInventoryOnHand(productID, variantID)
	}
	return deleted, nil
}

// History returns the ordered audit trail for (productID, variantID)
func (l *Ledger) History(ctx context.Context, productID, variantID uint) ([]model.InventoryLog, error) {
	var entries []model.InventoryLog
	err := l.db.WithContext(ctx).
		Where("product_id = ? AND variant_id = ?", productID, variantID).
		Order("id asc").
		Find(&entries).Error
	return entries, err
}

type logEntry struct {
	ProductID uint
	VariantID uint
	Action    string
	FromQty   int
	ToQty     int
	Reason    string
	Source    string
	UserID    *uint
}

// appendLog writes the single audit entry paired with a stock mutation.
// Must run inside the same transaction as the mutation.
func appendLog(tx *gorm.DB, e logEntry) error {
	variantID := e.VariantID
	return tx.Create(&model.InventoryLog{
		ProductID: e.ProductID,
		VariantID: &variantID,
		Action:    e.Action,
		Delta:     e.ToQty - e.FromQty,
		FromQty:   e.FromQty,
		ToQty:     e.ToQty,
		Reason:    e.Reason,
		Source:    e.Source,
		UserID:    e.UserID,
	}).Error
}

// deleteLevelTx removes an inventory row and logs it, inside the caller's
// transaction. Idempotent: a missing row returns (false, nil).
func deleteLevelTx(tx *gorm.DB, productID, variantID uint, reason, source string, userID *uint) (bool, error) {
	var level model.InventoryLevel
	err := tx.Where("product_id = ? AND variant_id = ?", productID, variantID).First(&level).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := tx.Delete(&level).Error; err != nil {
		return false, err
	}

	if err := appendLog(tx, logEntry{
		ProductID: productID,
		VariantID: variantID,
		Action:    model.InventoryActionDelete,
		FromQty:   level.OnHand,
		ToQty:     0,
		Reason:    reason,
		Source:    source,
		UserID:    userID,
	}); err != nil {
		return false, err
	}

	return true, nil
}
