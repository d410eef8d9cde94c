package model

import "time"

// Movie is a title screened at one theatre. Showtimes is the raw
// comma-separated list of showtime labels ("14:00,18:30,22:00"); the
// labels are free text, and together with the theatre and movie IDs they
// identify a show.
type Movie struct {
	ID               uint64    // movies.id
	TheatreID        uint64    // movies.theatre_id
	Title            string    // movies.title
	DurationMin      int       // movies.duration_min
	CastLine         string    // movies.cast_line
	Genre            string    // movies.genre
	Showtimes        string    // movies.show_times
	TicketPriceCents int64     // movies.ticket_price_cents
	CreatedAt        time.Time // movies.created_at
}
