// This file defines the venue read model used by the editor header.  Venues
// are owned and managed by the surrounding product; the editor only reads
// them to display name and address context, so the repository is
// deliberately lookup-only.
package repository

import (
	"context"
	"database/sql"
	"errors"
)

// Venue represents a physical venue a layout belongs to.
type Venue struct {
	ID        uint64 `json:"id"`
	OwnerID   uint64 `json:"-"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	CreatedAt string `json:"-"`
	UpdatedAt string `json:"-"`
}

// VenueRepo encapsulates venue lookups.
type VenueRepo struct {
	db *sql.DB
}

// NewVenueRepo constructs a VenueRepo with the provided DB handle.
func NewVenueRepo(db *sql.DB) *VenueRepo {
	return &VenueRepo{db: db}
}

// GetByIDAndOwner fetches a venue by id but only if it belongs to the
// specified owner.  Returns ErrVenueNotFound otherwise.
func (r *VenueRepo) GetByIDAndOwner(ctx context.Context, id, ownerID uint64) (*Venue, error) {
	const q = `SELECT id, owner_id, name, address, created_at, updated_at
	           FROM venues WHERE id = ? AND owner_id = ?`
	var v Venue
	err := r.db.QueryRowContext(ctx, q, id, ownerID).
		Scan(&v.ID, &v.OwnerID, &v.Name, &v.Address, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return &v, nil
}
