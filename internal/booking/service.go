package booking

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/cinepass/ticketing/internal/grid"
	"github.com/cinepass/ticketing/internal/pricing"
)

// Service coordinates the booking transaction. It owns no business state
// of its own: the grid is derived per call from the theatre's capacity,
// pricing is pure, and all mutation happens inside Store.Commit.
type Service struct {
	store   Store
	catalog Catalog
}

// NewService wires a coordinator to its persistence boundary and the
// catalog collaborator.
func NewService(store Store, catalog Catalog) *Service {
	if store == nil || catalog == nil {
		panic("nil dependency passed to booking.NewService")
	}
	return &Service{store: store, catalog: catalog}
}

// Book runs a seat-selection booking end to end:
//
//  1. validate the selection against the show's derived grid
//  2. read the user's point balance
//  3. price the order (may fail with pricing.ErrInsufficientPoints)
//  4. commit seats + booking + point delta as one unit
//
// Either every effect of the booking is visible afterwards or none is.
// A conflict on any requested seat rejects the whole request.
func (s *Service) Book(ctx context.Context, req Request) (*Record, error) {
	g, err := s.showGrid(ctx, req.Show)
	if err != nil {
		return nil, err
	}
	if err := validateSelection(g, req.Seats); err != nil {
		return nil, err
	}
	if req.UnitPriceCents < 0 || req.PointsToRedeem < 0 {
		return nil, fmt.Errorf("%w: negative price or redemption", ErrInvalidRequest)
	}
	return s.commit(ctx, req.UserID, req.Show, req.UnitPriceCents, req.Seats, len(req.Seats), req.PointsToRedeem)
}

// BookByCount books a number of unassigned seats. This is the simplified
// legacy path: pricing and the loyalty ledger behave exactly as in Book,
// but no seat rows are claimed in the ledger.
func (s *Service) BookByCount(ctx context.Context, req CountRequest) (*Record, error) {
	if req.SeatCount <= 0 {
		return nil, fmt.Errorf("%w: seat count must be positive", ErrInvalidRequest)
	}
	if req.UnitPriceCents < 0 || req.PointsToRedeem < 0 {
		return nil, fmt.Errorf("%w: negative price or redemption", ErrInvalidRequest)
	}
	g, err := s.showGrid(ctx, req.Show)
	if err != nil {
		return nil, err
	}
	if req.SeatCount > g.TotalSeats() {
		return nil, fmt.Errorf("%w: seat count exceeds theatre capacity", ErrInvalidRequest)
	}
	return s.commit(ctx, req.UserID, req.Show, req.UnitPriceCents, nil, req.SeatCount, req.PointsToRedeem)
}

func (s *Service) commit(ctx context.Context, userID uint64, show Show, unitPriceCents int64, seats []grid.Seat, seatCount int, redeem int64) (*Record, error) {
	balance, err := s.store.Balance(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("read point balance: %w", err)
	}
	quote, err := pricing.Compute(unitPriceCents, seatCount, redeem, balance)
	if err != nil {
		switch err {
		case pricing.ErrInsufficientPoints:
			return nil, err
		default:
			return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
		}
	}
	ordered := append([]grid.Seat(nil), seats...)
	grid.SortSeats(ordered)
	return s.store.Commit(ctx, &Pending{
		Reference:        uuid.NewString(),
		UserID:           userID,
		Show:             show,
		Seats:            ordered,
		SeatCount:        seatCount,
		TotalAmountCents: quote.FinalAmountCents,
		PointsEarned:     quote.PointsEarned,
		PointsRedeemed:   quote.PointsRedeemed,
		PointDelta:       quote.PointDelta,
	})
}

// Occupancy returns the booked seats of a show in row-major order.
func (s *Service) Occupancy(ctx context.Context, show Show) ([]grid.Seat, error) {
	occ, err := s.store.Occupancy(ctx, show)
	if err != nil {
		return nil, err
	}
	seats := make([]grid.Seat, 0, len(occ))
	for seat := range occ {
		seats = append(seats, seat)
	}
	grid.SortSeats(seats)
	return seats, nil
}

// SeatRow is one row of a rendered seat map.
type SeatRow struct {
	Label string       `json:"label"`
	Seats []SeatStatus `json:"seats"`
}

// SeatStatus is one cell of a rendered seat map.
type SeatStatus struct {
	Number int  `json:"number"`
	Booked bool `json:"booked"`
}

// SeatMap is the full availability view of a show, for the presentation
// collaborator to render.
type SeatMap struct {
	Show        Show      `json:"show"`
	TotalSeats  int       `json:"total_seats"`
	SeatsPerRow int       `json:"seats_per_row"`
	Rows        []SeatRow `json:"rows"`
}

// SeatMap merges the show's derived grid with current occupancy.
func (s *Service) SeatMap(ctx context.Context, show Show) (*SeatMap, error) {
	g, err := s.showGrid(ctx, show)
	if err != nil {
		return nil, err
	}
	occ, err := s.store.Occupancy(ctx, show)
	if err != nil {
		return nil, err
	}
	m := &SeatMap{
		Show:        show,
		TotalSeats:  g.TotalSeats(),
		SeatsPerRow: grid.SeatsPerRow,
		Rows:        make([]SeatRow, 0, g.Rows()),
	}
	for r := 1; r <= g.Rows(); r++ {
		label := grid.RowLabel(r)
		row := SeatRow{Label: label, Seats: make([]SeatStatus, 0, g.SeatsInRow(r))}
		for n := 1; n <= g.SeatsInRow(r); n++ {
			_, booked := occ[grid.Seat{Row: label, Number: n}]
			row.Seats = append(row.Seats, SeatStatus{Number: n, Booked: booked})
		}
		m.Rows = append(m.Rows, row)
	}
	return m, nil
}

func (s *Service) showGrid(ctx context.Context, show Show) (grid.Grid, error) {
	total, err := s.catalog.TheatreTotalSeats(ctx, show.TheatreID)
	if err != nil {
		return grid.Grid{}, fmt.Errorf("resolve theatre capacity: %w", err)
	}
	g, err := grid.Layout(total)
	if err != nil {
		return grid.Grid{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return g, nil
}

// validateSelection enforces the ledger's request rules: at least one
// seat, no duplicates, every seat inside the derived grid.
func validateSelection(g grid.Grid, seats []grid.Seat) error {
	if len(seats) == 0 {
		return fmt.Errorf("%w: selection is empty", ErrInvalidRequest)
	}
	seen := make(map[grid.Seat]struct{}, len(seats))
	for _, seat := range seats {
		if _, dup := seen[seat]; dup {
			return fmt.Errorf("%w: seat %s selected twice", ErrInvalidRequest, seat)
		}
		seen[seat] = struct{}{}
		if !g.Contains(seat) {
			return fmt.Errorf("%w: seat %s is outside the seating plan", ErrInvalidRequest, seat)
		}
	}
	return nil
}
