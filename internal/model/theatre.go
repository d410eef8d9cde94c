package model

import "time"

// Theatre represents a venue with a fixed seat capacity. The capacity is
// what every show's seat grid is derived from, so it is treated as
// immutable once shows are scheduled against it.
type Theatre struct {
	ID         uint64    // theatres.id
	Name       string    // theatres.name
	Location   string    // theatres.location
	TotalSeats int       // theatres.total_seats
	CreatedAt  time.Time // theatres.created_at
}
