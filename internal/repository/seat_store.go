package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/cinepass/ticketing/internal/booking"
	"github.com/cinepass/ticketing/internal/grid"
	"github.com/cinepass/ticketing/internal/model"
	"github.com/cinepass/ticketing/internal/pricing"
)

// seatOf converts a seats-table row into its grid position.
func seatOf(s model.BookedSeat) grid.Seat {
	return grid.Seat{Row: s.SeatRow, Number: s.SeatNumber}
}

// BookingStore is the MySQL implementation of the booking service's
// store. Occupancy and Balance are plain reads used to build seat maps
// and price quotes; Commit is the single serialization point where a
// booking becomes durable. All conflict and balance checks are repeated
// inside the transaction because the service's earlier reads happen
// without locks.
type BookingStore struct{ db *sql.DB }

// NewBookingStore returns a BookingStore bound to the given database.
func NewBookingStore(db *sql.DB) *BookingStore { return &BookingStore{db: db} }

// Occupancy returns the set of booked seats for a show. Seats exist as
// rows only once booked, so absence means available.
func (s *BookingStore) Occupancy(ctx context.Context, show booking.Show) (map[grid.Seat]struct{}, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT seat_row, seat_number FROM seats WHERE theatre_id=? AND movie_id=? AND show_time=?",
		show.TheatreID, show.MovieID, show.Showtime)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	occ := make(map[grid.Seat]struct{})
	for rows.Next() {
		var s model.BookedSeat
		if err := rows.Scan(&s.SeatRow, &s.SeatNumber); err != nil {
			return nil, err
		}
		occ[seatOf(s)] = struct{}{}
	}
	return occ, rows.Err()
}

// Balance returns the user's current loyalty-point balance.
func (s *BookingStore) Balance(ctx context.Context, userID uint64) (int64, error) {
	var pts int64
	err := s.db.QueryRowContext(ctx,
		"SELECT loyalty_points FROM users WHERE id=? LIMIT 1", userID).Scan(&pts)
	if err == sql.ErrNoRows {
		return 0, ErrNotFound
	}
	return pts, err
}

// Commit atomically books the pending seats, records the booking and
// applies the loyalty-point delta. Either every effect happens or none
// does: the deferred rollback undoes partial work on any error.
//
// Conflicts are detected twice. The SELECT ... FOR UPDATE re-reads the
// show's seat rows under lock and rejects overlaps with seats booked
// after the service's optimistic check; the unique key on
// (theatre_id, movie_id, show_time, seat_row, seat_number) is the
// backstop for inserts racing on seats neither transaction could see.
func (s *BookingStore) Commit(ctx context.Context, p *booking.Pending) (*booking.Record, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Re-check occupancy under lock.
	rows, err := tx.QueryContext(ctx,
		`SELECT seat_row, seat_number FROM seats
		 WHERE theatre_id=? AND movie_id=? AND show_time=? FOR UPDATE`,
		p.Show.TheatreID, p.Show.MovieID, p.Show.Showtime)
	if err != nil {
		return nil, err
	}
	taken := make(map[grid.Seat]struct{})
	for rows.Next() {
		var s model.BookedSeat
		if err := rows.Scan(&s.SeatRow, &s.SeatNumber); err != nil {
			rows.Close()
			return nil, err
		}
		taken[seatOf(s)] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()
	for _, seat := range p.Seats {
		if _, ok := taken[seat]; ok {
			return nil, booking.ErrSeatConflict
		}
	}

	// Re-check the point balance under lock. A conditional UPDATE with a
	// RowsAffected test would misreport when the delta is zero, because
	// MySQL counts changed rows, not matched rows.
	var balance int64
	if err := tx.QueryRowContext(ctx,
		"SELECT loyalty_points FROM users WHERE id=? FOR UPDATE", p.UserID).Scan(&balance); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if p.PointsRedeemed > balance {
		return nil, pricing.ErrInsufficientPoints
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO bookings (reference, user_id, movie_id, theatre_id, seats_booked, show_time, total_amount_cents, points_earned)
		 VALUES (?,?,?,?,?,?,?,?)`,
		p.Reference, p.UserID, p.Show.MovieID, p.Show.TheatreID, p.SeatCount,
		p.Show.Showtime, p.TotalAmountCents, p.PointsEarned)
	if err != nil {
		return nil, err
	}
	bookingID, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	if len(p.Seats) > 0 {
		query := "INSERT INTO seats (theatre_id, movie_id, show_time, seat_row, seat_number, booking_id) VALUES "
		args := make([]interface{}, 0, len(p.Seats)*6)
		for i, seat := range p.Seats {
			row := model.BookedSeat{
				TheatreID:  p.Show.TheatreID,
				MovieID:    p.Show.MovieID,
				Showtime:   p.Show.Showtime,
				SeatRow:    seat.Row,
				SeatNumber: seat.Number,
				BookingID:  uint64(bookingID),
			}
			if i > 0 {
				query += ","
			}
			query += "(?,?,?,?,?,?)"
			args = append(args, row.TheatreID, row.MovieID, row.Showtime,
				row.SeatRow, row.SeatNumber, row.BookingID)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			if strings.Contains(strings.ToLower(err.Error()), "1062") {
				return nil, booking.ErrSeatConflict
			}
			return nil, err
		}
	}

	if p.PointDelta != 0 {
		if _, err := tx.ExecContext(ctx,
			"UPDATE users SET loyalty_points = loyalty_points + ? WHERE id=?",
			p.PointDelta, p.UserID); err != nil {
			return nil, err
		}
	}

	rec := &booking.Record{
		ID:               uint64(bookingID),
		Reference:        p.Reference,
		UserID:           p.UserID,
		Show:             p.Show,
		SeatCount:        p.SeatCount,
		Seats:            p.Seats,
		TotalAmountCents: p.TotalAmountCents,
		PointsEarned:     p.PointsEarned,
		PointsRedeemed:   p.PointsRedeemed,
	}
	if err := tx.QueryRowContext(ctx,
		"SELECT created_at FROM bookings WHERE id=?", bookingID).Scan(&rec.CreatedAt); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return rec, nil
}
