package booking

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cinepass/ticketing/internal/grid"
	"github.com/cinepass/ticketing/internal/pricing"
)

// MemoryStore is an in-process Store and Catalog backed by maps and a
// single mutex. It exists for tests and for running the server with
// -memory during development; the MySQL store in internal/repository is
// the production implementation. The mutex makes Commit a serialization
// point the same way the database transaction does.
type MemoryStore struct {
	mu       sync.Mutex
	theatres map[uint64]int
	balances map[uint64]int64
	booked   map[Show]map[grid.Seat]uint64 // seat -> booking ID
	bookings map[uint64]*Record
	nextID   uint64
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		theatres: make(map[uint64]int),
		balances: make(map[uint64]int64),
		booked:   make(map[Show]map[grid.Seat]uint64),
		bookings: make(map[uint64]*Record),
	}
}

// AddTheatre registers a theatre's seat capacity.
func (m *MemoryStore) AddTheatre(id uint64, totalSeats int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.theatres[id] = totalSeats
}

// SetBalance sets a user's loyalty-point balance.
func (m *MemoryStore) SetBalance(userID uint64, points int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances[userID] = points
}

// TheatreTotalSeats implements Catalog.
func (m *MemoryStore) TheatreTotalSeats(_ context.Context, theatreID uint64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	total, ok := m.theatres[theatreID]
	if !ok {
		return 0, fmt.Errorf("theatre %d not found", theatreID)
	}
	return total, nil
}

// Occupancy implements Store.
func (m *MemoryStore) Occupancy(_ context.Context, show Show) (map[grid.Seat]struct{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[grid.Seat]struct{}, len(m.booked[show]))
	for seat := range m.booked[show] {
		out[seat] = struct{}{}
	}
	return out, nil
}

// Balance implements Store.
func (m *MemoryStore) Balance(_ context.Context, userID uint64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.balances[userID], nil
}

// Commit implements Store. All checks and writes happen under one lock
// acquisition, so a failure leaves the maps exactly as they were.
func (m *MemoryStore) Commit(_ context.Context, p *Pending) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	taken := m.booked[p.Show]
	for _, seat := range p.Seats {
		if _, booked := taken[seat]; booked {
			return nil, fmt.Errorf("%w: %s", ErrSeatConflict, seat)
		}
	}
	// Re-check the redemption against the balance as it is now, not as
	// it was when the request was priced.
	if p.PointsRedeemed > m.balances[p.UserID] {
		return nil, pricing.ErrInsufficientPoints
	}

	m.nextID++
	rec := &Record{
		ID:               m.nextID,
		Reference:        p.Reference,
		UserID:           p.UserID,
		Show:             p.Show,
		SeatCount:        p.SeatCount,
		Seats:            append([]grid.Seat(nil), p.Seats...),
		TotalAmountCents: p.TotalAmountCents,
		PointsEarned:     p.PointsEarned,
		PointsRedeemed:   p.PointsRedeemed,
		CreatedAt:        time.Now().UTC(),
	}
	if taken == nil {
		taken = make(map[grid.Seat]uint64, len(p.Seats))
		m.booked[p.Show] = taken
	}
	for _, seat := range p.Seats {
		taken[seat] = rec.ID
	}
	m.balances[p.UserID] += p.PointDelta
	m.bookings[rec.ID] = rec
	return rec, nil
}
