package service

import "errors"

var (
	// ErrNotFound means the entity or row does not exist, or a supplied
	// variant does not belong to the supplied product.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyDeleted is returned by strict soft-delete when the entity
	// is already soft-deleted.
	ErrAlreadyDeleted = errors.New("already deleted")

	// ErrNotDeleted is returned by undo when the entity is active. Lenient
	// callers treat it as a no-op success.
	ErrNotDeleted = errors.New("not deleted")

	// ErrWindowExpired means the recovery window elapsed; the soft delete
	// is now irreversible and undo must never restore.
	ErrWindowExpired = errors.New("undo window expired")

	// ErrSweepInProgress means another sweep holds the run lock.
	ErrSweepInProgress = errors.New("sweep already in progress")
)
