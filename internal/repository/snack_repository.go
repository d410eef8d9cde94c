package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/cinepass/ticketing/internal/model"
)

// SnackRepo provides CRUD operations for a theatre's concession menu.
type SnackRepo struct{ db *sql.DB }

// NewSnackRepo returns a new SnackRepo bound to the given database.
func NewSnackRepo(db *sql.DB) *SnackRepo { return &SnackRepo{db: db} }

// Create inserts a snack and returns its ID.
func (r *SnackRepo) Create(ctx context.Context, theatreID uint64, name string, priceCents int64) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO snacks (theatre_id, name, price_cents) VALUES (?,?,?)",
		theatreID, name, priceCents)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a single snack. ErrNotFound is returned when the snack
// does not exist.
func (r *SnackRepo) GetByID(ctx context.Context, id uint64) (model.Snack, error) {
	var s model.Snack
	err := r.db.QueryRowContext(ctx,
		"SELECT id,theatre_id,name,price_cents,available FROM snacks WHERE id=? LIMIT 1",
		id).Scan(&s.ID, &s.TheatreID, &s.Name, &s.PriceCents, &s.Available)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Snack{}, ErrNotFound
	}
	return s, err
}

// ListByTheatre returns a theatre's menu. When availableOnly is set,
// unavailable items are filtered out; managers list everything, the
// public menu only what can be ordered.
func (r *SnackRepo) ListByTheatre(ctx context.Context, theatreID uint64, availableOnly bool) ([]model.Snack, error) {
	q := "SELECT id,theatre_id,name,price_cents,available FROM snacks WHERE theatre_id=?"
	if availableOnly {
		q += " AND available=1"
	}
	q += " ORDER BY name"
	rows, err := r.db.QueryContext(ctx, q, theatreID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Snack, 0)
	for rows.Next() {
		var s model.Snack
		if err := rows.Scan(&s.ID, &s.TheatreID, &s.Name, &s.PriceCents, &s.Available); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// SetAvailability flips whether a snack can be ordered.
func (r *SnackRepo) SetAvailability(ctx context.Context, id uint64, available bool) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE snacks SET available=? WHERE id=?", available, id)
	return err
}

// Delete removes a snack from the menu. ErrNotFound is returned when the
// snack does not exist.
func (r *SnackRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM snacks WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
