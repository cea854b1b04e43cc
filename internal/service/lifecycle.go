package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// DefaultRecoveryWindow is the uniform undo window applied to every
// soft-deletable entity. Keeping it uniform across entity types is a
// deliberate policy: purge eligibility begins exactly when undo expires.
const DefaultRecoveryWindow = 15 * time.Minute

// Recoverable is any entity carrying a soft-delete timestamp
type Recoverable interface {
	DeletionTime() (time.Time, bool)
}

// RecoveryStatus reports where a soft-deleted entity stands relative to
// the undo window.
type RecoveryStatus struct {
	Expired   bool
	Remaining time.Duration
}

// CheckRecovery is the single window policy shared by every undo path.
// The boundary is inclusive: an undo exactly at window expiry restores.
func CheckRecovery(deletedAt, now time.Time, window time.Duration) RecoveryStatus {
	elapsed := now.Sub(deletedAt)
	if elapsed > window {
		return RecoveryStatus{Expired: true}
	}
	return RecoveryStatus{Remaining: window - elapsed}
}

// Lifecycle manages the soft-delete / undo lifecycle for recoverable
// entities. Hard removal is the Sweeper's job.
type Lifecycle struct {
	db     *gorm.DB
	window time.Duration
	now    func() time.Time
}

// NewLifecycle creates a lifecycle manager with the given recovery window.
// A non-positive window falls back to DefaultRecoveryWindow.
func NewLifecycle(db *gorm.DB, window time.Duration) *Lifecycle {
	if window <= 0 {
		window = DefaultRecoveryWindow
	}
	return &Lifecycle{db: db, window: window, now: time.Now}
}

// WithClock overrides the time source
func (l *Lifecycle) WithClock(now func() time.Time) *Lifecycle {
	l.now = now
	return l
}

// Window returns the configured recovery window
func (l *Lifecycle) Window() time.Duration {
	return l.window
}

// SoftDelete marks the entity deleted. Deleting an already-deleted entity
// is a no-op success and leaves the original deletion timestamp in place.
func (l *Lifecycle) SoftDelete(ctx context.Context, entity Recoverable, id uint) error {
	return l.softDelete(ctx, entity, id, false)
}

// SoftDeleteStrict is SoftDelete except it rejects an already-deleted
// entity with ErrAlreadyDeleted (contest entries use this).
func (l *Lifecycle) SoftDeleteStrict(ctx context.Context, entity Recoverable, id uint) error {
	return l.softDelete(ctx, entity, id, true)
}

func (l *Lifecycle) softDelete(ctx context.Context, entity Recoverable, id uint, strict bool) error {
	if err := l.db.WithContext(ctx).Unscoped().First(entity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if _, deleted := entity.DeletionTime(); deleted {
		if strict {
			return ErrAlreadyDeleted
		}
		// Idempotent: the first deletion timestamp stands
		return nil
	}

	return l.db.WithContext(ctx).Model(entity).Update("deleted_at", l.now()).Error
}

// Undo restores a soft-deleted entity if the recovery window has not
// elapsed. On success the entity is reloaded in its restored state.
// Returns ErrNotFound, ErrNotDeleted, or ErrWindowExpired otherwise;
// past the window it never restores.
func (l *Lifecycle) Undo(ctx context.Context, entity Recoverable, id uint) error {
	if err := l.db.WithContext(ctx).Unscoped().First(entity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	deletedAt, deleted := entity.DeletionTime()
	if !deleted {
		return ErrNotDeleted
	}

	if CheckRecovery(deletedAt, l.now(), l.window).Expired {
		return ErrWindowExpired
	}

	if err := l.db.WithContext(ctx).Unscoped().Model(entity).Update("deleted_at", nil).Error; err != nil {
		return err
	}

	return l.db.WithContext(ctx).First(entity, id).Error
}
