package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/cinepass/ticketing/internal/booking"
	"github.com/cinepass/ticketing/internal/grid"
	"github.com/cinepass/ticketing/internal/pricing"
	"github.com/cinepass/ticketing/internal/queue"
	"github.com/cinepass/ticketing/internal/repository"
	queue_publisher "github.com/cinepass/ticketing/internal/service"
)

// BookingHandler exposes the booking transaction and its read views. The
// seat map is the only cached read: customers poll it while choosing
// seats, so it goes through Redis with a short TTL and is invalidated on
// every successful booking for the same show.
type BookingHandler struct {
	Svc      *booking.Service
	Movies   *repository.MovieRepo
	Theatres *repository.TheatreRepo
	Bookings *repository.BookingRepo
	Users    *repository.UserRepo
	Redis    *redis.Client // nil disables seat-map caching
	CacheTTL time.Duration
	AMQPURL  string
}

type bookingReq struct {
	MovieID        uint64   `json:"movie_id"`
	Showtime       string   `json:"showtime"`
	Seats          []string `json:"seats"`
	SeatCount      int      `json:"seat_count"`
	PointsToRedeem int64    `json:"points_to_redeem"`
}

// Create books seats for the authenticated user. Two request shapes are
// accepted: a list of seat codes ("A1","B7") or a bare seat count for
// clients that do not pick seats. Redemption of loyalty points is
// optional; the response carries the committed amounts and point flows.
func (h *BookingHandler) Create(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req bookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if len(req.Seats) == 0 && req.SeatCount <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seats or seat_count required"})
	}
	if len(req.Seats) > 0 && req.SeatCount > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seats and seat_count are mutually exclusive"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	movie, err := h.Movies.GetByID(ctx, req.MovieID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load movie failed"})
	}
	showtime := strings.TrimSpace(req.Showtime)
	if !repository.HasShowtime(movie, showtime) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown showtime for this movie"})
	}
	show := booking.Show{TheatreID: movie.TheatreID, MovieID: movie.ID, Showtime: showtime}

	var rec *booking.Record
	if len(req.Seats) > 0 {
		seats := make([]grid.Seat, 0, len(req.Seats))
		for _, code := range req.Seats {
			seat, err := grid.ParseSeat(code)
			if err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": fmt.Sprintf("invalid seat %q", code)})
			}
			seats = append(seats, seat)
		}
		rec, err = h.Svc.Book(ctx, booking.Request{
			UserID:         uid,
			Show:           show,
			UnitPriceCents: movie.TicketPriceCents,
			Seats:          seats,
			PointsToRedeem: req.PointsToRedeem,
		})
	} else {
		rec, err = h.Svc.BookByCount(ctx, booking.CountRequest{
			UserID:         uid,
			Show:           show,
			UnitPriceCents: movie.TicketPriceCents,
			SeatCount:      req.SeatCount,
			PointsToRedeem: req.PointsToRedeem,
		})
	}
	if err != nil {
		return writeBookingError(c, err)
	}

	h.invalidateSeatMap(ctx, show)
	theatreName := ""
	if theatre, err := h.Theatres.GetByID(ctx, movie.TheatreID); err == nil {
		theatreName = theatre.Name
	} else {
		log.Printf("booking %s: theatre %d lookup for event failed: %v",
			rec.Reference, movie.TheatreID, err)
	}
	h.publishConfirmed(rec, movie.Title, theatreName)

	return c.JSON(http.StatusCreated, rec)
}

// writeBookingError translates booking and pricing failures into HTTP
// statuses: caller mistakes are 400, taken seats 409, and point problems
// 422 so clients can distinguish them from malformed requests.
func writeBookingError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, booking.ErrSeatConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "one or more seats already booked"})
	case errors.Is(err, pricing.ErrInsufficientPoints):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "insufficient loyalty points"})
	case errors.Is(err, pricing.ErrRedemptionExceedsTotal):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "redemption exceeds order total"})
	case errors.Is(err, booking.ErrInvalidRequest):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed"})
}

// SeatMap renders the availability grid for a show. Query parameters:
// movie_id and showtime. Responses are cached per show when Redis is up.
func (h *BookingHandler) SeatMap(c echo.Context) error {
	movieID, err := strconv.ParseUint(c.QueryParam("movie_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "movie_id required"})
	}
	showtime := strings.TrimSpace(c.QueryParam("showtime"))
	if showtime == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "showtime required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	movie, err := h.Movies.GetByID(ctx, movieID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load movie failed"})
	}
	if !repository.HasShowtime(movie, showtime) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown showtime for this movie"})
	}
	show := booking.Show{TheatreID: movie.TheatreID, MovieID: movie.ID, Showtime: showtime}

	key := seatMapKey(show)
	if h.Redis != nil {
		if cached, err := h.Redis.Get(ctx, key).Bytes(); err == nil {
			c.Response().Header().Set("X-Cache", "HIT")
			return c.JSONBlob(http.StatusOK, cached)
		}
	}

	m, err := h.Svc.SeatMap(ctx, show)
	if err != nil {
		return writeBookingError(c, err)
	}
	if h.Redis != nil {
		if body, err := json.Marshal(m); err == nil {
			_ = h.Redis.Set(ctx, key, body, h.CacheTTL).Err()
		}
	}
	c.Response().Header().Set("X-Cache", "MISS")
	return c.JSON(http.StatusOK, m)
}

// MyBookings lists the authenticated user's bookings, newest first.
func (h *BookingHandler) MyBookings(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	list, err := h.Bookings.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list bookings failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": list})
}

// MyPoints returns the authenticated user's loyalty-point balance.
func (h *BookingHandler) MyPoints(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	pts, err := h.Users.LoyaltyPoints(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load points failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"loyalty_points": pts})
}

func seatMapKey(show booking.Show) string {
	return fmt.Sprintf("seatmap:%d:%d:%s", show.TheatreID, show.MovieID, show.Showtime)
}

func (h *BookingHandler) invalidateSeatMap(ctx context.Context, show booking.Show) {
	if h.Redis == nil {
		return
	}
	_ = h.Redis.Del(ctx, seatMapKey(show)).Err()
}

// confirmedEvent shapes a committed booking into its queue event.
func confirmedEvent(rec *booking.Record, movieTitle, theatreName string) queue.BookingConfirmedEvent {
	labels := make([]string, 0, len(rec.Seats))
	for _, seat := range rec.Seats {
		labels = append(labels, seat.String())
	}
	return queue.BookingConfirmedEvent{
		BookingID:        rec.ID,
		Reference:        rec.Reference,
		UserID:           rec.UserID,
		TheatreID:        rec.Show.TheatreID,
		TheatreName:      theatreName,
		MovieID:          rec.Show.MovieID,
		MovieTitle:       movieTitle,
		Showtime:         rec.Show.Showtime,
		SeatLabels:       labels,
		TotalAmountCents: rec.TotalAmountCents,
		PointsEarned:     rec.PointsEarned,
		PointsRedeemed:   rec.PointsRedeemed,
		ConfirmedAt:      rec.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// publishConfirmed emits the booking.confirmed event in the background.
// Publishing is best effort: the booking is already durable, so a broker
// outage must not fail the request.
func (h *BookingHandler) publishConfirmed(rec *booking.Record, movieTitle, theatreName string) {
	ev := confirmedEvent(rec, movieTitle, theatreName)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = queue_publisher.PublishBookingConfirmed(ctx, h.AMQPURL, ev)
	}()
}
