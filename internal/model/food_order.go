package model

import "time"

// FoodOrder is a concession purchase attached to a booking. The total is
// snack price × quantity, fixed at order time.
type FoodOrder struct {
	ID              uint64    // food_orders.id
	UserID          uint64    // food_orders.user_id
	BookingID       uint64    // food_orders.booking_id
	SnackID         uint64    // food_orders.snack_id
	Quantity        int       // food_orders.quantity
	TotalPriceCents int64     // food_orders.total_price_cents
	CreatedAt       time.Time // food_orders.order_date
}
