package model

import "time"

// Booking mirrors the `bookings` table. A booking is created exactly
// once by the booking transaction and never mutated afterwards; the
// amount and points recorded here are the values computed at commit
// time.
//
// Fields:
//  ID               – primary key identifier.
//  Reference        – public booking code handed to the customer.
//  UserID           – customer who booked.
//  MovieID          – movie of the show.
//  TheatreID        – theatre of the show.
//  SeatsBooked      – number of seats in the booking.
//  Showtime         – showtime label of the show.
//  TotalAmountCents – amount charged, in cents.
//  PointsEarned     – loyalty points granted by this booking.
//  CreatedAt        – commit timestamp.
type Booking struct {
	ID               uint64
	Reference        string
	UserID           uint64
	MovieID          uint64
	TheatreID        uint64
	SeatsBooked      int
	Showtime         string
	TotalAmountCents int64
	PointsEarned     int64
	CreatedAt        time.Time
}

// BookedSeat mirrors the `seats` table. Rows exist only for booked
// seats: a (show, row, seat) combination with no row is available. The
// BookingID back-reference is for lookups; the booking owns the seat's
// booked state.
type BookedSeat struct {
	ID         uint64 // seats.id
	TheatreID  uint64 // seats.theatre_id
	MovieID    uint64 // seats.movie_id
	Showtime   string // seats.show_time
	SeatRow    string // seats.seat_row
	SeatNumber int    // seats.seat_number
	BookingID  uint64 // seats.booking_id
}
