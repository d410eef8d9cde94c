package model

// Snack is a concession item sold at one theatre.
type Snack struct {
	ID         uint64 // snacks.id
	TheatreID  uint64 // snacks.theatre_id
	Name       string // snacks.name
	PriceCents int64  // snacks.price_cents
	Available  bool   // snacks.available
}
