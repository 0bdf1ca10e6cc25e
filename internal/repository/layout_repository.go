// Package repository contains data access logic separated from HTTP
// handlers.  This file defines the layout record and its repository.  A
// layout row stores the metadata columns used for listing plus the full
// seating document as a JSON column: the editor saves the aggregate whole
// (no incremental diff upload), so a document column matches the write
// pattern exactly.
package repository

import (
	"context"      // context allows query cancellation and timeouts
	"database/sql" // sql provides DB primitives
	"encoding/json"
	"errors"

	"github.com/venuekit/seatmap-designer/internal/layout"
)

// Layout is one persisted seat-map layout.
type Layout struct {
	ID        uint64 // primary key
	OwnerID   uint64 // FK -> users.id in the surrounding product
	VenueID   uint64 // FK -> venues.id
	Name      string
	Document  layout.Document // unmarshaled JSON document column
	CreatedAt string
	UpdatedAt string
}

// LayoutSummary is the listing projection: metadata without the document.
type LayoutSummary struct {
	ID        uint64 `json:"id"`
	VenueID   uint64 `json:"venue_id"`
	Name      string `json:"name"`
	UpdatedAt string `json:"updated_at"`
}

// LayoutRepo provides methods to work with layouts in the database.
type LayoutRepo struct {
	db *sql.DB
}

// NewLayoutRepo constructs a LayoutRepo with the given DB handle.
func NewLayoutRepo(db *sql.DB) *LayoutRepo {
	return &LayoutRepo{db: db}
}

// Create inserts a layout with its initial document.  On success the
// layout's ID is populated.
func (r *LayoutRepo) Create(ctx context.Context, l *Layout) error {
	doc, err := json.Marshal(l.Document)
	if err != nil {
		return err
	}
	const q = `INSERT INTO layouts (owner_id, venue_id, name, document)
	           VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, l.OwnerID, l.VenueID, l.Name, doc)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	l.ID = uint64(id)
	return nil
}

// GetByIDAndOwner retrieves a layout with its document while enforcing
// ownership.  The document is returned as stored; callers run
// layout.Normalize before handing it to the editor.
func (r *LayoutRepo) GetByIDAndOwner(ctx context.Context, id, ownerID uint64) (*Layout, error) {
	const q = `SELECT id, owner_id, venue_id, name, document, created_at, updated_at
	           FROM layouts WHERE id = ? AND owner_id = ?`
	var (
		l   Layout
		raw []byte
	)
	err := r.db.QueryRowContext(ctx, q, id, ownerID).
		Scan(&l.ID, &l.OwnerID, &l.VenueID, &l.Name, &raw, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLayoutNotFound
		}
		return nil, err
	}
	if len(raw) > 0 {
		// A corrupt document column is a load-time structural gap: repair
		// (start from an empty document) rather than reject.
		if err := json.Unmarshal(raw, &l.Document); err != nil {
			l.Document = layout.Document{}
		}
	}
	return &l, nil
}

// ListByOwner returns layout summaries for an owner, newest first.
func (r *LayoutRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]LayoutSummary, error) {
	const q = `SELECT id, venue_id, name, updated_at
	           FROM layouts
	           WHERE owner_id = ?
	           ORDER BY updated_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []LayoutSummary
	for rows.Next() {
		var s LayoutSummary
		if err := rows.Scan(&s.ID, &s.VenueID, &s.Name, &s.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// SaveDocument overwrites a layout's name and document while enforcing
// ownership.  Returns ErrLayoutNotFound when no row matched so callers can
// distinguish a missing layout from a database failure.
func (r *LayoutRepo) SaveDocument(ctx context.Context, id, ownerID uint64, name string, doc *layout.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	const q = `UPDATE layouts
	           SET name = ?, document = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND owner_id = ?`
	res, err := r.db.ExecContext(ctx, q, name, raw, id, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// RowsAffected can legitimately be zero when the update is a no-op
		// on MySQL; confirm existence before reporting not-found.  Only a
		// definitive empty result means the layout is missing — any other
		// failure is a database error, not a 404.
		var exists uint64
		if scanErr := r.db.QueryRowContext(ctx,
			`SELECT id FROM layouts WHERE id = ? AND owner_id = ?`, id, ownerID,
		).Scan(&exists); scanErr != nil {
			if errors.Is(scanErr, sql.ErrNoRows) {
				return ErrLayoutNotFound
			}
			return scanErr
		}
	}
	return nil
}

// DeleteByIDAndOwner deletes a layout while enforcing ownership.
func (r *LayoutRepo) DeleteByIDAndOwner(ctx context.Context, id, ownerID uint64) error {
	const q = `DELETE FROM layouts WHERE id = ? AND owner_id = ?`
	res, err := r.db.ExecContext(ctx, q, id, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrLayoutNotFound
	}
	return nil
}
