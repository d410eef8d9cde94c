package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cinepass/ticketing/internal/grid"
	"github.com/cinepass/ticketing/internal/model"
)

func TestDetailFromBooking(t *testing.T) {
	created := time.Date(2026, 8, 28, 18, 30, 0, 0, time.UTC)
	b := model.Booking{
		ID:               42,
		Reference:        "4f1c9b2e",
		UserID:           7,
		MovieID:          3,
		TheatreID:        1,
		SeatsBooked:      2,
		Showtime:         "19:00",
		TotalAmountCents: 3000,
		PointsEarned:     3,
		CreatedAt:        created,
	}

	d := detailFromBooking(b, "Dune", "Grand Central")

	assert.Equal(t, b.ID, d.ID)
	assert.Equal(t, b.Reference, d.Reference)
	assert.Equal(t, b.UserID, d.UserID)
	assert.Equal(t, b.MovieID, d.MovieID)
	assert.Equal(t, "Dune", d.MovieTitle)
	assert.Equal(t, b.TheatreID, d.TheatreID)
	assert.Equal(t, "Grand Central", d.TheatreName)
	assert.Equal(t, b.Showtime, d.Showtime)
	assert.Equal(t, b.SeatsBooked, d.SeatsBooked)
	assert.Equal(t, b.TotalAmountCents, d.TotalAmountCents)
	assert.Equal(t, b.PointsEarned, d.PointsEarned)
	assert.Equal(t, created, d.CreatedAt)

	// Seat labels are attached after the join scan; the base detail must
	// still marshal as an empty list, not null.
	assert.NotNil(t, d.Seats)
	assert.Empty(t, d.Seats)
}

func TestSeatOf(t *testing.T) {
	s := model.BookedSeat{
		TheatreID:  1,
		MovieID:    3,
		Showtime:   "19:00",
		SeatRow:    "AA",
		SeatNumber: 7,
		BookingID:  42,
	}
	assert.Equal(t, grid.Seat{Row: "AA", Number: 7}, seatOf(s))
	assert.Equal(t, "AA7", seatOf(s).String())
}
