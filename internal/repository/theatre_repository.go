package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/cinepass/ticketing/internal/model"
)

// TheatreRepo provides CRUD operations for theatres. The seat capacity
// stored here is the source every show's seat grid is derived from, so
// TotalSeats doubles as the catalog lookup used by the booking service.
type TheatreRepo struct{ db *sql.DB }

// NewTheatreRepo returns a new TheatreRepo bound to the given database.
func NewTheatreRepo(db *sql.DB) *TheatreRepo { return &TheatreRepo{db: db} }

// Create inserts a theatre and returns its ID.
func (r *TheatreRepo) Create(ctx context.Context, name, location string, totalSeats int) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO theatres (name, location, total_seats) VALUES (?,?,?)",
		name, location, totalSeats)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a single theatre. ErrNotFound is returned when the
// theatre does not exist.
func (r *TheatreRepo) GetByID(ctx context.Context, id uint64) (model.Theatre, error) {
	var t model.Theatre
	err := r.db.QueryRowContext(ctx,
		"SELECT id,name,location,total_seats,created_at FROM theatres WHERE id=? LIMIT 1",
		id).Scan(&t.ID, &t.Name, &t.Location, &t.TotalSeats, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Theatre{}, ErrNotFound
	}
	return t, err
}

// ListAll returns every theatre ordered by name.
func (r *TheatreRepo) ListAll(ctx context.Context) ([]model.Theatre, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id,name,location,total_seats,created_at FROM theatres ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Theatre, 0)
	for rows.Next() {
		var t model.Theatre
		if err := rows.Scan(&t.ID, &t.Name, &t.Location, &t.TotalSeats, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Delete removes a theatre and, through the foreign keys, everything
// hanging off it: movies, snacks, reviews, bookings, their seats and
// food orders.
func (r *TheatreRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM theatres WHERE id=?", id)
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

// TheatreTotalSeats returns the seat capacity of a theatre. It satisfies
// the booking service's catalog dependency.
func (r *TheatreRepo) TheatreTotalSeats(ctx context.Context, theatreID uint64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		"SELECT total_seats FROM theatres WHERE id=? LIMIT 1", theatreID).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	return n, err
}
