package service

import (
	"context"
	"testing"

	"github.com/dttrue/mabels-pawfect-sub001/internal/model"
	"github.com/dttrue/mabels-pawfect-sub001/prometheus"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestAdjustCreatesRowWithLog(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedger(db)
	ctx := context.Background()

	level, err := ledger.Adjust(ctx, AdjustInput{
		ProductID: 1, VariantID: 7, ToQty: 5,
		Reason: "initial stock", Source: "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, level.OnHand)

	history, err := ledger.History(ctx, 1, 7)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, model.InventoryActionCreate, history[0].Action)
	assert.Equal(t, 5, history[0].Delta)
	assert.Equal(t, 0, history[0].FromQty)
	assert.Equal(t, 5, history[0].ToQty)
	assert.Equal(t, "initial stock", history[0].Reason)
}

func TestAdjustThenDeleteProducesCompleteHistory(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedger(db)
	ctx := context.Background()

	_, err := ledger.Adjust(ctx, AdjustInput{ProductID: 1, VariantID: 1, ToQty: 5, Source: "admin"})
	require.NoError(t, err)

	deleted, err := ledger.DeleteRow(ctx, 1, 1, "discontinued", nil)
	require.NoError(t, err)
	assert.True(t, deleted)

	history, err := ledger.History(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, history, 2)

	assert.Equal(t, model.InventoryActionCreate, history[0].Action)
	assert.Equal(t, 5, history[0].Delta)
	assert.Equal(t, model.InventoryActionDelete, history[1].Action)
	assert.Equal(t, -5, history[1].Delta)
	assert.Equal(t, 5, history[1].FromQty)
	assert.Equal(t, 0, history[1].ToQty)
	assert.Equal(t, "discontinued", history[1].Reason)

	err = db.Where("product_id = ? AND variant_id = ?", 1, 1).First(&model.InventoryLevel{}).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound, "row must be gone after delete")
}

func TestLedgerHistoryReconstructsOnHand(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedger(db)
	ctx := context.Background()

	targets := []int{3, 10, 4, 12}
	for _, q := range targets {
		_, err := ledger.Adjust(ctx, AdjustInput{ProductID: 2, VariantID: 9, ToQty: q, Source: "admin"})
		require.NoError(t, err)
	}

	history, err := ledger.History(ctx, 2, 9)
	require.NoError(t, err)
	require.Len(t, history, len(targets), "exactly one log entry per mutation")

	sum := 0
	for _, e := range history {
		sum += e.Delta
	}

	var level model.InventoryLevel
	require.NoError(t, db.Where("product_id = ? AND variant_id = ?", 2, 9).First(&level).Error)
	assert.Equal(t, level.OnHand, sum, "deltas must sum to current on-hand from zero")
}

func TestDeleteRowMissingIsNoOp(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedger(db)

	deleted, err := ledger.DeleteRow(context.Background(), 42, 42, "cleanup", nil)
	require.NoError(t, err)
	assert.False(t, deleted)

	var count int64
	require.NoError(t, db.Model(&model.InventoryLog{}).Count(&count).Error)
	assert.Zero(t, count, "a no-op delete must not log")
}

func TestOnHandGaugeTracksLedger(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedger(db)
	ctx := context.Background()
	gauge := prometheus.InventoryOnHandGauge.WithLabelValues("21", "8")

	_, err := ledger.Adjust(ctx, AdjustInput{ProductID: 21, VariantID: 8, ToQty: 9, Source: "admin"})
	require.NoError(t, err)
	assert.Equal(t, float64(9), testutil.ToFloat64(gauge))

	_, err = ledger.Adjust(ctx, AdjustInput{ProductID: 21, VariantID: 8, ToQty: 4, Source: "admin"})
	require.NoError(t, err)
	assert.Equal(t, float64(4), testutil.ToFloat64(gauge))

	deleted, err := ledger.DeleteRow(ctx, 21, 8, "discontinued", nil)
	require.NoError(t, err)
	require.True(t, deleted)

	// The series is removed with the row; a fresh lookup reads zero
	assert.Zero(t, testutil.ToFloat64(prometheus.InventoryOnHandGauge.WithLabelValues("21", "8")))
}

func TestAdjustRecordsProvenance(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedger(db)
	ctx := context.Background()
	userID := uint(11)

	_, err := ledger.Adjust(ctx, AdjustInput{
		ProductID: 3, VariantID: 3, ToQty: 2,
		Reason: "restock", Source: "dashboard", UserID: &userID,
	})
	require.NoError(t, err)

	history, err := ledger.History(ctx, 3, 3)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "restock", history[0].Reason)
	assert.Equal(t, "dashboard", history[0].Source)
	require.NotNil(t, history[0].UserID)
	assert.Equal(t, userID, *history[0].UserID)
	require.NotNil(t, history[0].VariantID)
	assert.Equal(t, uint(3), *history[0].VariantID)
}
