package service

import (
	"context"
	"time"

	"github.com/dttrue/mabels-pawfect-sub001/internal/model"
	"github.com/dttrue/mabels-pawfect-sub001/prometheus"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AssetRemover deletes a hosted asset by its remote reference. A returned
// error is treated as transient: the candidate stays soft-deleted and is
// retried on the next sweep.
type AssetRemover interface {
	Destroy(ctx context.Context, publicID string) error
}

// RunLocker guards against overlapping sweeps. Optional: a nil locker
// means unguarded sweeps, which are still safe because every candidate is
// purged independently.
type RunLocker interface {
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

// candidate is one soft-deleted row eligible for hard purge. cleanup, when
// set, removes dependent rows and must succeed before the row itself goes.
type candidate struct {
	id       uint
	assetRef string
	row      interface{}
	cleanup  func(context.Context) error
}

// Sweeper permanently removes rows whose soft-delete timestamp predates
// the cutoff, deleting the remote asset first. No transaction spans the
// whole sweep: a crash mid-sweep leaves purged and still-soft-deleted rows,
// both consistent states.
type Sweeper struct {
	db     *gorm.DB
	assets AssetRemover
	lock   RunLocker
	cutoff time.Duration
	now    func() time.Time
	log    *zap.Logger
}

// NewSweeper creates a sweeper. cutoffAge is how long a row must have been
// soft-deleted before it becomes purgeable; non-positive falls back to the
// recovery window so purge begins exactly when undo expires.
func NewSweeper(db *gorm.DB, assets AssetRemover, lock RunLocker, cutoffAge time.Duration, log *zap.Logger) *Sweeper {
	if cutoffAge <= 0 {
		cutoffAge = DefaultRecoveryWindow
	}
	return &Sweeper{
		db:     db,
		assets: assets,
		lock:   lock,
		cutoff: cutoffAge,
		now:    time.Now,
		log:    log,
	}
}

// WithClock overrides the time source
func (s *Sweeper) WithClock(now func() time.Time) *Sweeper {
	s.now = now
	return s
}

// Sweep purges every expired soft-deleted row across all entity types and
// returns the number of rows permanently removed. Remote asset failures
// are logged and skipped; they never abort the sweep.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	if s.lock != nil {
		ok, err := s.lock.Acquire(ctx)
		if err != nil {
			// Lock backend down: proceed unguarded, per-row purges stay safe
			s.log.Warn("Sweep lock unavailable, continuing without it", zap.Error(err))
		} else if !ok {
			return 0, ErrSweepInProgress
		} else {
			defer func() {
				if err := s.lock.Release(context.WithoutCancel(ctx)); err != nil {
					s.log.Warn("Failed to release sweep lock", zap.Error(err))
				}
			}()
		}
	}

	start := s.now()
	cutoff := start.Add(-s.cutoff)
	total := 0

	total += s.purge(ctx, "gallery_image", cutoff, s.expiredGalleryImages)
	total += s.purge(ctx, "highlight", cutoff, s.expiredHighlights)
	total += s.purge(ctx, "product_image", cutoff, s.expiredProductImages)
	total += s.purge(ctx, "product", cutoff, s.expiredProducts)
	total += s.purge(ctx, "contest_entry", cutoff, s.expiredContestEntries)

	prometheus.SweepDurationHistogram.Observe(time.Since(start).Seconds())
	s.log.Info("Sweep finished",
		zap.Int("purged", total),
		zap.Time("cutoff", cutoff))
	return total, nil
}

// purge handles one entity type. Each candidate is independent: remote
// delete first, row delete only once the asset is confirmed gone, so a
// failure can never orphan remote storage.
func (s *Sweeper) purge(ctx context.Context, entity string, cutoff time.Time, fetch func(time.Time) ([]candidate, error)) int {
	rows, err := fetch(cutoff)
	if err != nil {
		s.log.Error("Failed to collect purge candidates",
			zap.String("entity", entity),
			zap.Error(err))
		return 0
	}

	purged := 0
	for _, cand := range rows {
		if cand.assetRef != "" {
			if err := s.assets.Destroy(ctx, cand.assetRef); err != nil {
				// Transient: leave the row soft-deleted for the next sweep
				prometheus.PurgeFailuresCounter.WithLabelValues(entity).Inc()
				s.log.Warn("Remote asset delete failed, keeping row for retry",
					zap.String("entity", entity),
					zap.Uint("id", cand.id),
					zap.String("public_id", cand.assetRef),
					zap.Error(err))
				continue
			}
		}

		if cand.cleanup != nil {
			if err := cand.cleanup(ctx); err != nil {
				// Same treatment as a remote failure: retry next sweep
				prometheus.PurgeFailuresCounter.WithLabelValues(entity).Inc()
				s.log.Warn("Dependent cleanup failed, keeping row for retry",
					zap.String("entity", entity),
					zap.Uint("id", cand.id),
					zap.Error(err))
				continue
			}
		}

		if err := s.db.WithContext(ctx).Unscoped().Delete(cand.row).Error; err != nil {
			s.log.Error("Failed to hard-delete row",
				zap.String("entity", entity),
				zap.Uint("id", cand.id),
				zap.Error(err))
			continue
		}

		prometheus.PurgedRowsCounter.WithLabelValues(entity).Inc()
		purged++
	}

	if purged > 0 {
		s.log.Info("Purged expired rows",
			zap.String("entity", entity),
			zap.Int("count", purged))
	}
	return purged
}

func expiredScope(db *gorm.DB, cutoff time.Time) *gorm.DB {
	return db.Unscoped().Where("deleted_at IS NOT NULL AND deleted_at <= ?", cutoff)
}

func (s *Sweeper) expiredGalleryImages(cutoff time.Time) ([]candidate, error) {
	var rows []model.GalleryImage
	if err := expiredScope(s.db, cutoff).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]candidate, 0, len(rows))
	for i := range rows {
		out = append(out, candidate{id: rows[i].ID, assetRef: rows[i].AssetRef(), row: &rows[i]})
	}
	return out, nil
}

func (s *Sweeper) expiredHighlights(cutoff time.Time) ([]candidate, error) {
	var rows []model.Highlight
	if err := expiredScope(s.db, cutoff).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]candidate, 0, len(rows))
	for i := range rows {
		out = append(out, candidate{id: rows[i].ID, assetRef: rows[i].AssetRef(), row: &rows[i]})
	}
	return out, nil
}

func (s *Sweeper) expiredProductImages(cutoff time.Time) ([]candidate, error) {
	var rows []model.ProductImage
	if err := expiredScope(s.db, cutoff).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]candidate, 0, len(rows))
	for i := range rows {
		out = append(out, candidate{id: rows[i].ID, assetRef: rows[i].AssetRef(), row: &rows[i]})
	}
	return out, nil
}

func (s *Sweeper) expiredProducts(cutoff time.Time) ([]candidate, error) {
	var rows []model.Product
	if err := expiredScope(s.db, cutoff).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]candidate, 0, len(rows))
	for i := range rows {
		productID := rows[i].ID
		out = append(out, candidate{
			id:  productID,
			row: &rows[i],
			cleanup: func(ctx context.Context) error {
				return s.purgeProductDependents(ctx, productID)
			},
		})
	}
	return out, nil
}

// purgeProductDependents removes everything hanging off a product about to
// be hard-deleted: remaining images (assets first), cart items, inventory
// rows (each logged as a DELETE), and variants. Inventory logs stay, with
// their variant references nulled. Any remote failure aborts before the
// row deletes so the product stays purgeable on the next sweep.
func (s *Sweeper) purgeProductDependents(ctx context.Context, productID uint) error {
	var images []model.ProductImage
	if err := s.db.WithContext(ctx).Unscoped().
		Where("product_id = ?", productID).Find(&images).Error; err != nil {
		return err
	}
	for i := range images {
		if ref := images[i].AssetRef(); ref != "" {
			if err := s.assets.Destroy(ctx, ref); err != nil {
				return err
			}
		}
	}

	var variants []model.Variant
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Where("product_id = ?", productID).Delete(&model.ProductImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", productID).Delete(&model.CartItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", productID).Find(&variants).Error; err != nil {
			return err
		}
		for i := range variants {
			if _, err := deleteLevelTx(tx, productID, variants[i].ID, "product purged", "system", nil); err != nil {
				return err
			}
		}
		if err := tx.Model(&model.InventoryLog{}).
			Where("product_id = ?", productID).
			Update("variant_id", nil).Error; err != nil {
			return err
		}
		return tx.Where("product_id = ?", productID).Delete(&model.Variant{}).Error
	})
	if err != nil {
		return err
	}

	for i := range variants {
		prometheus.ClearInventoryOnHand(productID, variants[i].ID)
	}
	return nil
}

func (s *Sweeper) expiredContestEntries(cutoff time.Time) ([]candidate, error) {
	var rows []model.ContestEntry
	if err := expiredScope(s.db, cutoff).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]candidate, 0, len(rows))
	for i := range rows {
		out = append(out, candidate{id: rows[i].ID, assetRef: rows[i].AssetRef(), row: &rows[i]})
	}
	return out, nil
}
