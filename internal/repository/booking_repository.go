package repository

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/cinepass/ticketing/internal/model"
)

// BookingRepo reads committed bookings for display. Writing happens only
// through the BookingStore transaction; this repository never mutates.
type BookingRepo struct{ db *sql.DB }

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// BookingDetail is a booking joined with its movie title and theatre name
// plus the seat labels booked under it. It is what customers and managers
// see in their booking lists.
type BookingDetail struct {
	ID               uint64    `json:"id"`
	Reference        string    `json:"reference"`
	UserID           uint64    `json:"user_id"`
	MovieID          uint64    `json:"movie_id"`
	MovieTitle       string    `json:"movie_title"`
	TheatreID        uint64    `json:"theatre_id"`
	TheatreName      string    `json:"theatre_name"`
	Showtime         string    `json:"showtime"`
	SeatsBooked      int       `json:"seats_booked"`
	Seats            []string  `json:"seats"`
	TotalAmountCents int64     `json:"total_amount_cents"`
	PointsEarned     int64     `json:"points_earned"`
	CreatedAt        time.Time `json:"created_at"`
}

// detailFromBooking shapes a bookings row and its joined names for API
// responses. Seat labels are filled in afterwards by list.
func detailFromBooking(b model.Booking, movieTitle, theatreName string) BookingDetail {
	return BookingDetail{
		ID:               b.ID,
		Reference:        b.Reference,
		UserID:           b.UserID,
		MovieID:          b.MovieID,
		MovieTitle:       movieTitle,
		TheatreID:        b.TheatreID,
		TheatreName:      theatreName,
		Showtime:         b.Showtime,
		SeatsBooked:      b.SeatsBooked,
		Seats:            []string{},
		TotalAmountCents: b.TotalAmountCents,
		PointsEarned:     b.PointsEarned,
		CreatedAt:        b.CreatedAt,
	}
}

const bookingDetailQuery = `SELECT b.id, b.reference, b.user_id, b.movie_id, m.title,
	       b.theatre_id, t.name, b.show_time, b.seats_booked,
	       b.total_amount_cents, b.points_earned, b.created_at
	FROM bookings b
	JOIN movies m ON m.id = b.movie_id
	JOIN theatres t ON t.id = b.theatre_id`

// ListByUser returns a customer's bookings, newest first, with seat
// labels populated.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]BookingDetail, error) {
	return r.list(ctx, bookingDetailQuery+" WHERE b.user_id=? ORDER BY b.created_at DESC", userID)
}

// ListByTheatre returns every booking taken at a theatre, newest first.
// Used by managers for their theatre overview.
func (r *BookingRepo) ListByTheatre(ctx context.Context, theatreID uint64) ([]BookingDetail, error) {
	return r.list(ctx, bookingDetailQuery+" WHERE b.theatre_id=? ORDER BY b.created_at DESC", theatreID)
}

// GetByReference fetches one booking by its public reference. ErrNotFound
// is returned when the reference is unknown.
func (r *BookingRepo) GetByReference(ctx context.Context, reference string) (*BookingDetail, error) {
	details, err := r.list(ctx, bookingDetailQuery+" WHERE b.reference=?", reference)
	if err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, ErrNotFound
	}
	return &details[0], nil
}

// GetOwner returns the user who owns a booking. Food-order creation uses
// it to enforce that customers only attach orders to their own bookings.
func (r *BookingRepo) GetOwner(ctx context.Context, bookingID uint64) (uint64, error) {
	var userID uint64
	err := r.db.QueryRowContext(ctx,
		"SELECT user_id FROM bookings WHERE id=? LIMIT 1", bookingID).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	return userID, err
}

func (r *BookingRepo) list(ctx context.Context, query string, args ...interface{}) ([]BookingDetail, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]BookingDetail, 0)
	index := make(map[uint64]int)
	for rows.Next() {
		var b model.Booking
		var movieTitle, theatreName string
		if err := rows.Scan(&b.ID, &b.Reference, &b.UserID, &b.MovieID, &movieTitle,
			&b.TheatreID, &theatreName, &b.Showtime, &b.SeatsBooked,
			&b.TotalAmountCents, &b.PointsEarned, &b.CreatedAt); err != nil {
			return nil, err
		}
		index[b.ID] = len(details)
		details = append(details, detailFromBooking(b, movieTitle, theatreName))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return details, nil
	}
	// Populate seat labels for all bookings in a single query.
	ids := make([]interface{}, 0, len(details))
	placeholders := make([]string, 0, len(details))
	for _, d := range details {
		ids = append(ids, d.ID)
		placeholders = append(placeholders, "?")
	}
	seatQuery := `SELECT booking_id, seat_row, seat_number FROM seats
		WHERE booking_id IN (` + strings.Join(placeholders, ",") + `)
		ORDER BY booking_id, seat_row, seat_number`
	srows, err := r.db.QueryContext(ctx, seatQuery, ids...)
	if err != nil {
		return nil, err
	}
	defer srows.Close()
	for srows.Next() {
		var bid uint64
		var row string
		var num int
		if err := srows.Scan(&bid, &row, &num); err != nil {
			return nil, err
		}
		idx, ok := index[bid]
		if !ok {
			continue
		}
		details[idx].Seats = append(details[idx].Seats, row+strconv.Itoa(num))
	}
	return details, srows.Err()
}
