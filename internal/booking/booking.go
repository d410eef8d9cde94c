// Package booking implements the booking transaction: validating a seat
// selection against the show's grid, pricing it with loyalty points, and
// committing seats, booking record and point balance as one atomic unit.
package booking

import (
	"context"
	"errors"
	"time"

	"github.com/cinepass/ticketing/internal/grid"
)

var (
	// ErrInvalidRequest covers caller-fixable mistakes: an empty or
	// duplicated seat selection, a seat outside the show's grid, or
	// non-positive quantities. Nothing is written; retrying the same
	// request will fail the same way.
	ErrInvalidRequest = errors.New("invalid booking request")
	// ErrSeatConflict means at least one requested seat was already
	// booked when the reservation was attempted. The whole request is
	// rejected; no seat from it is held.
	ErrSeatConflict = errors.New("seat already booked")
)

// Show identifies one screening: a movie at a theatre at a showtime
// label. The label is free text ("18:30", "Late Night"), not a
// timestamp; two labels differing only in spelling are different shows.
type Show struct {
	TheatreID uint64 `json:"theatre_id"`
	MovieID   uint64 `json:"movie_id"`
	Showtime  string `json:"showtime"`
}

// Request is a seat-selection booking: the user picks specific seats and
// may redeem loyalty points against the total.
type Request struct {
	UserID         uint64
	Show           Show
	UnitPriceCents int64
	Seats          []grid.Seat
	PointsToRedeem int64
}

// CountRequest is the legacy booking path where the user states only how
// many seats they want. No seat rows are written; the booking carries
// just the count.
type CountRequest struct {
	UserID         uint64
	Show           Show
	UnitPriceCents int64
	SeatCount      int
	PointsToRedeem int64
}

// Record is a committed booking. Records are immutable once created; the
// amounts and points are the values computed at commit time and are
// never recomputed.
type Record struct {
	ID               uint64      `json:"id"`
	Reference        string      `json:"reference"`
	UserID           uint64      `json:"user_id"`
	Show             Show        `json:"show"`
	SeatCount        int         `json:"seat_count"`
	Seats            []grid.Seat `json:"seats,omitempty"`
	TotalAmountCents int64       `json:"total_amount_cents"`
	PointsEarned     int64       `json:"points_earned"`
	PointsRedeemed   int64       `json:"points_redeemed"`
	CreatedAt        time.Time   `json:"created_at"`
}

// Pending carries everything a Store needs to commit a booking in one
// transaction. Seats is empty for count-only bookings.
type Pending struct {
	Reference        string
	UserID           uint64
	Show             Show
	Seats            []grid.Seat
	SeatCount        int
	TotalAmountCents int64
	PointsEarned     int64
	PointsRedeemed   int64
	PointDelta       int64
}

// Store is the persistence boundary of the booking transaction. Commit
// is the single serialization point: implementations must guarantee that
// of two concurrent commits claiming an overlapping seat set, exactly
// one succeeds and the other observes ErrSeatConflict, and that the
// loyalty balance check and delta happen inside the same atomic unit as
// the seat writes. A failed Commit leaves no trace: no seat rows, no
// booking, no balance change.
type Store interface {
	// Occupancy returns every seat currently booked for the show. A
	// show nobody has booked yet yields an empty set. The read is a
	// consistent snapshot: no seat from a concurrent half-committed
	// booking ever appears.
	Occupancy(ctx context.Context, show Show) (map[grid.Seat]struct{}, error)
	// Balance returns the user's current loyalty-point balance.
	Balance(ctx context.Context, userID uint64) (int64, error)
	// Commit atomically reserves the seats, inserts the booking record
	// and applies the point delta. It returns ErrSeatConflict if any
	// seat is taken and pricing.ErrInsufficientPoints if the redemption
	// no longer fits the balance at commit time.
	Commit(ctx context.Context, p *Pending) (*Record, error)
}

// Catalog is the slice of the catalog collaborator the coordinator
// needs: the seat capacity from which a show's grid is derived. The
// booking core never mutates catalog data.
type Catalog interface {
	TheatreTotalSeats(ctx context.Context, theatreID uint64) (int, error)
}
