package handler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cinepass/ticketing/internal/booking"
	"github.com/cinepass/ticketing/internal/grid"
)

func TestConfirmedEvent(t *testing.T) {
	rec := &booking.Record{
		ID:        42,
		Reference: "4f1c9b2e",
		UserID:    7,
		Show:      booking.Show{TheatreID: 1, MovieID: 3, Showtime: "19:00"},
		SeatCount: 2,
		Seats: []grid.Seat{
			{Row: "A", Number: 1},
			{Row: "A", Number: 2},
		},
		TotalAmountCents: 3000,
		PointsEarned:     3,
		PointsRedeemed:   200,
		CreatedAt:        time.Date(2026, 8, 28, 18, 30, 0, 0, time.UTC),
	}

	ev := confirmedEvent(rec, "Dune", "Grand Central")

	assert.Equal(t, uint64(42), ev.BookingID)
	assert.Equal(t, "4f1c9b2e", ev.Reference)
	assert.Equal(t, uint64(7), ev.UserID)
	assert.Equal(t, "Grand Central", ev.TheatreName)
	assert.Equal(t, "Dune", ev.MovieTitle)
	assert.Equal(t, "19:00", ev.Showtime)
	assert.Equal(t, []string{"A1", "A2"}, ev.SeatLabels)
	assert.Equal(t, int64(3000), ev.TotalAmountCents)
	assert.Equal(t, int64(3), ev.PointsEarned)
	assert.Equal(t, int64(200), ev.PointsRedeemed)
	assert.Equal(t, "2026-08-28T18:30:00Z", ev.ConfirmedAt)
}

func TestConfirmedEventCountOnly(t *testing.T) {
	rec := &booking.Record{
		ID:        43,
		Reference: "9d0a77c1",
		UserID:    7,
		Show:      booking.Show{TheatreID: 1, MovieID: 3, Showtime: "21:00"},
		SeatCount: 4,
		CreatedAt: time.Date(2026, 8, 28, 20, 0, 0, 0, time.UTC),
	}

	// A failed theatre lookup still publishes; the name is simply empty.
	ev := confirmedEvent(rec, "Dune", "")

	assert.Equal(t, "", ev.TheatreName)
	assert.NotNil(t, ev.SeatLabels)
	assert.Empty(t, ev.SeatLabels)
}
