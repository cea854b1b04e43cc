package service

import (
	"context"
	"testing"

	"github.com/dttrue/mabels-pawfect-sub001/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDefaultIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	variants := NewVariants(db)
	ctx := context.Background()

	product := model.Product{Name: "Peanut Butter Bites", SKU: "PBB-1", Price: 12}
	require.NoError(t, db.Create(&product).Error)

	first, err := variants.EnsureDefault(ctx, product.ID, "")
	require.NoError(t, err)
	assert.Equal(t, DefaultVariantName, first.Name)

	second, err := variants.EnsureDefault(ctx, product.ID, "")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "second call must return the same variant")

	var levels []model.InventoryLevel
	require.NoError(t, db.Where("product_id = ?", product.ID).Find(&levels).Error)
	require.Len(t, levels, 1, "exactly one inventory row for the variant")
	assert.Equal(t, first.ID, levels[0].VariantID)
	assert.Equal(t, 0, levels[0].OnHand)

	var logs []model.InventoryLog
	require.NoError(t, db.Where("product_id = ?", product.ID).Find(&logs).Error)
	require.Len(t, logs, 1, "inventory row creation logs exactly once")
	assert.Equal(t, model.InventoryActionCreate, logs[0].Action)
}

func TestEnsureDefaultKeepsExistingStock(t *testing.T) {
	db := newTestDB(t)
	variants := NewVariants(db)
	ledger := NewLedger(db)
	ctx := context.Background()

	product := model.Product{Name: "Bandana", SKU: "BA-1", Price: 8}
	require.NoError(t, db.Create(&product).Error)

	v, err := variants.EnsureDefault(ctx, product.ID, "Small")
	require.NoError(t, err)

	_, err = ledger.Adjust(ctx, AdjustInput{ProductID: product.ID, VariantID: v.ID, ToQty: 7, Source: "admin"})
	require.NoError(t, err)

	// Re-ensuring must leave the stocked row untouched
	_, err = variants.EnsureDefault(ctx, product.ID, "Small")
	require.NoError(t, err)

	var level model.InventoryLevel
	require.NoError(t, db.Where("product_id = ? AND variant_id = ?", product.ID, v.ID).First(&level).Error)
	assert.Equal(t, 7, level.OnHand)
}

func TestEnsureDefaultUnknownProduct(t *testing.T) {
	db := newTestDB(t)
	variants := NewVariants(db)

	_, err := variants.EnsureDefault(context.Background(), 999, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteVariantCascade(t *testing.T) {
	db := newTestDB(t)
	variants := NewVariants(db)
	ledger := NewLedger(db)
	ctx := context.Background()

	product := model.Product{Name: "Treat Box", SKU: "TB-1", Price: 20}
	require.NoError(t, db.Create(&product).Error)
	v, err := variants.EnsureDefault(ctx, product.ID, "")
	require.NoError(t, err)

	_, err = ledger.Adjust(ctx, AdjustInput{ProductID: product.ID, VariantID: v.ID, ToQty: 5, Source: "admin"})
	require.NoError(t, err)

	cart := model.CartItem{CartToken: "c-1", ProductID: product.ID, VariantID: v.ID, Quantity: 2}
	require.NoError(t, db.Create(&cart).Error)

	require.NoError(t, variants.Delete(ctx, product.ID, v.ID, "seasonal item removed", nil))

	var cartCount int64
	require.NoError(t, db.Model(&model.CartItem{}).Where("variant_id = ?", v.ID).Count(&cartCount).Error)
	assert.Zero(t, cartCount, "no cart item may reference the deleted variant")

	var levelCount int64
	require.NoError(t, db.Model(&model.InventoryLevel{}).Where("variant_id = ?", v.ID).Count(&levelCount).Error)
	assert.Zero(t, levelCount, "no inventory row may reference the deleted variant")

	var variantCount int64
	require.NoError(t, db.Model(&model.Variant{}).Where("id = ?", v.ID).Count(&variantCount).Error)
	assert.Zero(t, variantCount)

	// Audit trail survives, detached from the variant
	var logs []model.InventoryLog
	require.NoError(t, db.Where("product_id = ?", product.ID).Order("id asc").Find(&logs).Error)
	require.Len(t, logs, 3, "CREATE, UPDATE, DELETE entries all preserved")
	for _, entry := range logs {
		assert.Nil(t, entry.VariantID, "log rows must have variant_id nulled")
	}
	last := logs[len(logs)-1]
	assert.Equal(t, model.InventoryActionDelete, last.Action)
	assert.Equal(t, -5, last.Delta)
	assert.Equal(t, "seasonal item removed", last.Reason)
}

func TestDeleteVariantStampsMissingReasons(t *testing.T) {
	db := newTestDB(t)
	variants := NewVariants(db)
	ledger := NewLedger(db)
	ctx := context.Background()

	product := model.Product{Name: "Gift Card", SKU: "GC-1", Price: 25}
	require.NoError(t, db.Create(&product).Error)
	v, err := variants.EnsureDefault(ctx, product.ID, "")
	require.NoError(t, err)

	_, err = ledger.Adjust(ctx, AdjustInput{ProductID: product.ID, VariantID: v.ID, ToQty: 3, Reason: "stocked", Source: "admin"})
	require.NoError(t, err)

	require.NoError(t, variants.Delete(ctx, product.ID, v.ID, "sku retired", nil))

	var logs []model.InventoryLog
	require.NoError(t, db.Where("product_id = ?", product.ID).Order("id asc").Find(&logs).Error)
	require.Len(t, logs, 3)

	// Already-set reasons stay; empty ones get the delete reason
	assert.Equal(t, "ensure default variant", logs[0].Reason)
	assert.Equal(t, "stocked", logs[1].Reason)
	assert.Equal(t, "sku retired", logs[2].Reason)
}

func TestDeleteVariantMismatchedProduct(t *testing.T) {
	db := newTestDB(t)
	variants := NewVariants(db)
	ctx := context.Background()

	p1 := model.Product{Name: "A", SKU: "A-1", Price: 1}
	p2 := model.Product{Name: "B", SKU: "B-1", Price: 2}
	require.NoError(t, db.Create(&p1).Error)
	require.NoError(t, db.Create(&p2).Error)

	v, err := variants.EnsureDefault(ctx, p1.ID, "")
	require.NoError(t, err)

	err = variants.Delete(ctx, p2.ID, v.ID, "oops", nil)
	assert.ErrorIs(t, err, ErrNotFound)

	// Nothing mutated
	var levelCount int64
	require.NoError(t, db.Model(&model.InventoryLevel{}).Where("variant_id = ?", v.ID).Count(&levelCount).Error)
	assert.Equal(t, int64(1), levelCount)
}
