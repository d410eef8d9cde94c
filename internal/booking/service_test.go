package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/cinepass/ticketing/internal/grid"
	"github.com/cinepass/ticketing/internal/pricing"
)

func newTestService(totalSeats int) (*Service, *MemoryStore) {
	store := NewMemoryStore()
	store.AddTheatre(1, totalSeats)
	return NewService(store, store), store
}

func show() Show { return Show{TheatreID: 1, MovieID: 7, Showtime: "18:30"} }

func TestBook_EndToEnd(t *testing.T) {
	// Theatre with 22 seats: rows A and B of 10, row C of 2.
	svc, store := newTestService(22)
	ctx := context.Background()
	store.SetBalance(42, 0)

	rec, err := svc.Book(ctx, Request{
		UserID:         42,
		Show:           show(),
		UnitPriceCents: 1000,
		Seats:          []grid.Seat{{Row: "A", Number: 1}, {Row: "A", Number: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2000), rec.TotalAmountCents)
	assert.Equal(t, int64(2), rec.PointsEarned)
	assert.Equal(t, 2, rec.SeatCount)
	assert.NotEmpty(t, rec.Reference)

	balance, err := store.Balance(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(2), balance)

	// Overlapping selection on the same show: rejected as a whole, A3
	// stays free even though only A2 conflicted.
	_, err = svc.Book(ctx, Request{
		UserID:         43,
		Show:           show(),
		UnitPriceCents: 1000,
		Seats:          []grid.Seat{{Row: "A", Number: 2}, {Row: "A", Number: 3}},
	})
	assert.ErrorIs(t, err, ErrSeatConflict)

	occ, err := svc.Occupancy(ctx, show())
	require.NoError(t, err)
	assert.Equal(t, []grid.Seat{{Row: "A", Number: 1}, {Row: "A", Number: 2}}, occ)

	// A3 alone now succeeds.
	rec, err = svc.Book(ctx, Request{
		UserID:         43,
		Show:           show(),
		UnitPriceCents: 1000,
		Seats:          []grid.Seat{{Row: "A", Number: 3}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1000), rec.TotalAmountCents)
}

func TestBook_InvalidSelections(t *testing.T) {
	svc, _ := newTestService(22)
	ctx := context.Background()

	cases := []struct {
		name  string
		seats []grid.Seat
	}{
		{"empty selection", nil},
		{"duplicate seat", []grid.Seat{{Row: "A", Number: 1}, {Row: "A", Number: 1}}},
		{"outside truncated row", []grid.Seat{{Row: "C", Number: 3}}},
		{"row beyond grid", []grid.Seat{{Row: "D", Number: 1}}},
		{"seat number zero", []grid.Seat{{Row: "A", Number: 0}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Book(ctx, Request{UserID: 1, Show: show(), UnitPriceCents: 1000, Seats: tc.seats})
			assert.ErrorIs(t, err, ErrInvalidRequest)
		})
	}
}

func TestBook_InsufficientPointsLeavesNoTrace(t *testing.T) {
	svc, store := newTestService(22)
	ctx := context.Background()
	store.SetBalance(9, 100)

	_, err := svc.Book(ctx, Request{
		UserID:         9,
		Show:           show(),
		UnitPriceCents: 1000,
		Seats:          []grid.Seat{{Row: "B", Number: 5}},
		PointsToRedeem: 300,
	})
	assert.ErrorIs(t, err, pricing.ErrInsufficientPoints)

	balance, err := store.Balance(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, int64(100), balance, "failed booking must not touch the balance")
	occ, err := svc.Occupancy(ctx, show())
	require.NoError(t, err)
	assert.Empty(t, occ, "failed booking must not leave seats booked")
}

func TestBook_RedemptionAppliesDelta(t *testing.T) {
	svc, store := newTestService(40)
	ctx := context.Background()
	store.SetBalance(5, 500)

	rec, err := svc.Book(ctx, Request{
		UserID:         5,
		Show:           show(),
		UnitPriceCents: 1250,
		Seats: []grid.Seat{
			{Row: "A", Number: 1}, {Row: "A", Number: 2},
			{Row: "A", Number: 3}, {Row: "A", Number: 4},
		},
		PointsToRedeem: 200,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3000), rec.TotalAmountCents)
	assert.Equal(t, int64(3), rec.PointsEarned)

	balance, err := store.Balance(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(303), balance) // 500 - 200 + 3
}

func TestBook_ConflictLeavesStateUnchanged(t *testing.T) {
	svc, store := newTestService(22)
	ctx := context.Background()
	store.SetBalance(2, 250)

	_, err := svc.Book(ctx, Request{
		UserID: 1, Show: show(), UnitPriceCents: 1000,
		Seats: []grid.Seat{{Row: "A", Number: 1}},
	})
	require.NoError(t, err)

	before, err := store.Balance(ctx, 2)
	require.NoError(t, err)
	_, err = svc.Book(ctx, Request{
		UserID: 2, Show: show(), UnitPriceCents: 1000,
		Seats:          []grid.Seat{{Row: "A", Number: 1}, {Row: "B", Number: 1}},
		PointsToRedeem: 200,
	})
	assert.ErrorIs(t, err, ErrSeatConflict)

	after, err := store.Balance(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	occ, err := svc.Occupancy(ctx, show())
	require.NoError(t, err)
	assert.Equal(t, []grid.Seat{{Row: "A", Number: 1}}, occ, "B1 must not be half-booked")
}

func TestBook_ConcurrentOverlap_ExactlyOneWins(t *testing.T) {
	svc, _ := newTestService(100)
	ctx := context.Background()

	const attempts = 32
	results := make([]error, attempts)
	var eg errgroup.Group
	for i := 0; i < attempts; i++ {
		i := i
		eg.Go(func() error {
			// Every attempt wants B7 plus a seat of its own, so all
			// selections pairwise overlap.
			_, err := svc.Book(ctx, Request{
				UserID:         uint64(100 + i),
				Show:           show(),
				UnitPriceCents: 1000,
				Seats: []grid.Seat{
					{Row: "B", Number: 7},
					{Row: grid.RowLabel(i/10 + 3), Number: i%10 + 1},
				},
			})
			results[i] = err
			return nil
		})
	}
	require.NoError(t, eg.Wait())

	wins := 0
	for _, err := range results {
		if err == nil {
			wins++
		} else {
			assert.ErrorIs(t, err, ErrSeatConflict)
		}
	}
	assert.Equal(t, 1, wins, "exactly one attempt may claim the contested seat")

	occ, err := svc.Occupancy(ctx, show())
	require.NoError(t, err)
	assert.Len(t, occ, 2, "only the winner's seats are booked")
}

func TestBook_ConcurrentSameUserRedemption(t *testing.T) {
	// Two bookings racing to redeem from the same 200-point balance:
	// the commit-time re-check allows at most one to spend the points.
	svc, store := newTestService(100)
	ctx := context.Background()
	store.SetBalance(77, 200)

	var eg errgroup.Group
	results := make([]error, 2)
	seats := [][]grid.Seat{
		{{Row: "A", Number: 1}},
		{{Row: "A", Number: 2}},
	}
	for i := 0; i < 2; i++ {
		i := i
		eg.Go(func() error {
			_, err := svc.Book(ctx, Request{
				UserID:         77,
				Show:           show(),
				UnitPriceCents: 2000,
				Seats:          seats[i],
				PointsToRedeem: 200,
			})
			results[i] = err
			return nil
		})
	}
	require.NoError(t, eg.Wait())

	balance, err := store.Balance(ctx, 77)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, balance, int64(0), "balance must never go negative")

	failures := 0
	for _, err := range results {
		if err != nil {
			failures++
			assert.ErrorIs(t, err, pricing.ErrInsufficientPoints)
		}
	}
	assert.LessOrEqual(t, failures, 1)
}

func TestBookByCount(t *testing.T) {
	svc, store := newTestService(22)
	ctx := context.Background()
	store.SetBalance(3, 0)

	rec, err := svc.BookByCount(ctx, CountRequest{
		UserID: 3, Show: show(), UnitPriceCents: 1500, SeatCount: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, rec.SeatCount)
	assert.Empty(t, rec.Seats)
	assert.Equal(t, int64(4500), rec.TotalAmountCents)
	assert.Equal(t, int64(4), rec.PointsEarned)

	// Count-only bookings claim no seats in the ledger.
	occ, err := svc.Occupancy(ctx, show())
	require.NoError(t, err)
	assert.Empty(t, occ)

	_, err = svc.BookByCount(ctx, CountRequest{UserID: 3, Show: show(), UnitPriceCents: 1500, SeatCount: 0})
	assert.ErrorIs(t, err, ErrInvalidRequest)
	_, err = svc.BookByCount(ctx, CountRequest{UserID: 3, Show: show(), UnitPriceCents: 1500, SeatCount: 23})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestSeatMap(t *testing.T) {
	svc, _ := newTestService(22)
	ctx := context.Background()

	_, err := svc.Book(ctx, Request{
		UserID: 1, Show: show(), UnitPriceCents: 1000,
		Seats: []grid.Seat{{Row: "C", Number: 2}},
	})
	require.NoError(t, err)

	m, err := svc.SeatMap(ctx, show())
	require.NoError(t, err)
	assert.Equal(t, 22, m.TotalSeats)
	require.Len(t, m.Rows, 3)
	assert.Equal(t, "C", m.Rows[2].Label)
	require.Len(t, m.Rows[2].Seats, 2)
	assert.False(t, m.Rows[2].Seats[0].Booked)
	assert.True(t, m.Rows[2].Seats[1].Booked)
}

func TestBook_UnknownTheatre(t *testing.T) {
	svc, _ := newTestService(22)
	_, err := svc.Book(context.Background(), Request{
		UserID:         1,
		Show:           Show{TheatreID: 99, MovieID: 7, Showtime: "18:30"},
		UnitPriceCents: 1000,
		Seats:          []grid.Seat{{Row: "A", Number: 1}},
	})
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrSeatConflict))
}
