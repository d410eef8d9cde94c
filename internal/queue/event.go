// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedEvent is published when a booking commits. It carries
// enough information for downstream consumers to log, notify, or trigger
// analytics without querying the primary database.
type BookingConfirmedEvent struct {
	BookingID        uint64   `json:"booking_id"`
	Reference        string   `json:"reference"`
	UserID           uint64   `json:"user_id"`
	TheatreID        uint64   `json:"theatre_id"`
	TheatreName      string   `json:"theatre_name"`
	MovieID          uint64   `json:"movie_id"`
	MovieTitle       string   `json:"movie_title"`
	Showtime         string   `json:"showtime"`
	SeatLabels       []string `json:"seats"`
	TotalAmountCents int64    `json:"total_amount_cents"`
	PointsEarned     int64    `json:"points_earned"`
	PointsRedeemed   int64    `json:"points_redeemed"`
	ConfirmedAt      string   `json:"confirmed_at"`
}
