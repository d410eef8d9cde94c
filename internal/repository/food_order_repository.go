package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/cinepass/ticketing/internal/model"
)

// FoodOrderRepo persists concession orders. An order is always attached
// to a booking owned by the ordering user; the total is computed from
// the snack's current price inside the insert transaction so a
// concurrent price change cannot split an order across two prices.
type FoodOrderRepo struct{ db *sql.DB }

// NewFoodOrderRepo returns a new FoodOrderRepo bound to the given database.
func NewFoodOrderRepo(db *sql.DB) *FoodOrderRepo { return &FoodOrderRepo{db: db} }

// Create validates ownership and availability and inserts the order.
// It returns ErrNotFound when the booking or snack does not exist,
// ErrForbidden when the booking belongs to another user or the snack is
// sold at a different theatre, and ErrSnackUnavailable when the item is
// off the menu.
func (r *FoodOrderRepo) Create(ctx context.Context, userID, bookingID, snackID uint64, quantity int) (*model.FoodOrder, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var ownerID, theatreID uint64
	err = tx.QueryRowContext(ctx,
		"SELECT user_id, theatre_id FROM bookings WHERE id=? LIMIT 1", bookingID).
		Scan(&ownerID, &theatreID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if ownerID != userID {
		return nil, ErrForbidden
	}

	var snackTheatreID uint64
	var priceCents int64
	var available bool
	err = tx.QueryRowContext(ctx,
		"SELECT theatre_id, price_cents, available FROM snacks WHERE id=? LIMIT 1", snackID).
		Scan(&snackTheatreID, &priceCents, &available)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if snackTheatreID != theatreID {
		return nil, ErrForbidden
	}
	if !available {
		return nil, ErrSnackUnavailable
	}

	total := priceCents * int64(quantity)
	res, err := tx.ExecContext(ctx,
		"INSERT INTO food_orders (user_id, booking_id, snack_id, quantity, total_price_cents) VALUES (?,?,?,?,?)",
		userID, bookingID, snackID, quantity, total)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	order := &model.FoodOrder{
		ID:              uint64(id),
		UserID:          userID,
		BookingID:       bookingID,
		SnackID:         snackID,
		Quantity:        quantity,
		TotalPriceCents: total,
	}
	if err := tx.QueryRowContext(ctx,
		"SELECT order_date FROM food_orders WHERE id=?", id).Scan(&order.CreatedAt); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return order, nil
}

// FoodOrderDetail is an order joined with its snack name for display.
type FoodOrderDetail struct {
	ID              uint64    `json:"id"`
	BookingID       uint64    `json:"booking_id"`
	SnackID         uint64    `json:"snack_id"`
	SnackName       string    `json:"snack_name"`
	Quantity        int       `json:"quantity"`
	TotalPriceCents int64     `json:"total_price_cents"`
	CreatedAt       time.Time `json:"created_at"`
}

// ListByUser returns a customer's food orders, newest first.
func (r *FoodOrderRepo) ListByUser(ctx context.Context, userID uint64) ([]FoodOrderDetail, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT f.id, f.booking_id, f.snack_id, s.name, f.quantity, f.total_price_cents, f.order_date
		 FROM food_orders f
		 JOIN snacks s ON s.id = f.snack_id
		 WHERE f.user_id=? ORDER BY f.order_date DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]FoodOrderDetail, 0)
	for rows.Next() {
		var d FoodOrderDetail
		if err := rows.Scan(&d.ID, &d.BookingID, &d.SnackID, &d.SnackName,
			&d.Quantity, &d.TotalPriceCents, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
