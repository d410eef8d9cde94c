package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/cinepass/ticketing/internal/model"
)

// MovieRepo provides CRUD operations for movies. A movie always belongs
// to exactly one theatre; manager handlers verify that the movie's
// theatre matches the manager's theatre before mutating.
type MovieRepo struct{ db *sql.DB }

// NewMovieRepo returns a new MovieRepo bound to the given database.
func NewMovieRepo(db *sql.DB) *MovieRepo { return &MovieRepo{db: db} }

// Create inserts a movie and returns its ID. Showtimes is stored as the
// raw comma-separated label list.
func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO movies (theatre_id, title, duration_min, cast_line, genre, show_times, ticket_price_cents)
		 VALUES (?,?,?,?,?,?,?)`,
		m.TheatreID, m.Title, m.DurationMin, m.CastLine, m.Genre, m.Showtimes, m.TicketPriceCents)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a single movie. ErrNotFound is returned when the movie
// does not exist.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (model.Movie, error) {
	var m model.Movie
	err := r.db.QueryRowContext(ctx,
		`SELECT id,theatre_id,title,duration_min,cast_line,genre,show_times,ticket_price_cents,created_at
		 FROM movies WHERE id=? LIMIT 1`, id).
		Scan(&m.ID, &m.TheatreID, &m.Title, &m.DurationMin, &m.CastLine, &m.Genre,
			&m.Showtimes, &m.TicketPriceCents, &m.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Movie{}, ErrNotFound
	}
	return m, err
}

// ListByTheatre returns the movies screened at a theatre, newest first.
func (r *MovieRepo) ListByTheatre(ctx context.Context, theatreID uint64) ([]model.Movie, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id,theatre_id,title,duration_min,cast_line,genre,show_times,ticket_price_cents,created_at
		 FROM movies WHERE theatre_id=? ORDER BY created_at DESC`, theatreID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Movie, 0)
	for rows.Next() {
		var m model.Movie
		if err := rows.Scan(&m.ID, &m.TheatreID, &m.Title, &m.DurationMin, &m.CastLine,
			&m.Genre, &m.Showtimes, &m.TicketPriceCents, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Update replaces the mutable fields of a movie. Existence is checked by
// the caller via GetByID; RowsAffected cannot be used here because MySQL
// reports zero affected rows when the values are unchanged.
func (r *MovieRepo) Update(ctx context.Context, m *model.Movie) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE movies SET title=?, duration_min=?, cast_line=?, genre=?, show_times=?, ticket_price_cents=?
		 WHERE id=?`,
		m.Title, m.DurationMin, m.CastLine, m.Genre, m.Showtimes, m.TicketPriceCents, m.ID)
	return err
}

// Delete removes a movie. ErrNotFound is returned when the movie does
// not exist.
func (r *MovieRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM movies WHERE id=?", id)
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

// HasShowtime reports whether label is one of the movie's showtimes. The
// stored value is a comma-separated list, so comparison happens after
// splitting and trimming.
func HasShowtime(m model.Movie, label string) bool {
	label = strings.TrimSpace(label)
	for _, st := range strings.Split(m.Showtimes, ",") {
		if strings.TrimSpace(st) == label {
			return true
		}
	}
	return false
}
