package model

import "time"

// DeletionTime returns when the row was soft-deleted, if it was
func (g *GalleryImage) DeletionTime() (time.Time, bool) {
	return g.DeletedAt.Time, g.DeletedAt.Valid
}

// DeletionTime returns when the row was soft-deleted, if it was
func (h *Highlight) DeletionTime() (time.Time, bool) {
	return h.DeletedAt.Time, h.DeletedAt.Valid
}

// DeletionTime returns when the row was soft-deleted, if it was
func (p *Product) DeletionTime() (time.Time, bool) {
	return p.DeletedAt.Time, p.DeletedAt.Valid
}

// DeletionTime returns when the row was soft-deleted, if it was
func (pi *ProductImage) DeletionTime() (time.Time, bool) {
	return pi.DeletedAt.Time, pi.DeletedAt.Valid
}

// DeletionTime returns when the row was soft-deleted, if it was
func (e *ContestEntry) DeletionTime() (time.Time, bool) {
	return e.DeletedAt.Time, e.DeletedAt.Valid
}
