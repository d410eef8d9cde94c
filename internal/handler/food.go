package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cinepass/ticketing/internal/repository"
)

// FoodHandler lets customers order concessions against their bookings.
type FoodHandler struct {
	Orders *repository.FoodOrderRepo
}

type foodOrderReq struct {
	BookingID uint64 `json:"booking_id"`
	SnackID   uint64 `json:"snack_id"`
	Quantity  int    `json:"quantity"`
}

// Create places a food order. The snack must be sold at the theatre of
// the named booking and the booking must belong to the caller.
func (h *FoodHandler) Create(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req foodOrderReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.BookingID == 0 || req.SnackID == 0 || req.Quantity <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "booking_id, snack_id and positive quantity required"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	order, err := h.Orders.Create(ctx, uid, req.BookingID, req.SnackID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking or snack not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "booking or snack not accessible"})
		case errors.Is(err, repository.ErrSnackUnavailable):
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "snack unavailable"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create order failed"})
	}
	return c.JSON(http.StatusCreated, order)
}

// Mine lists the caller's food orders, newest first.
func (h *FoodHandler) Mine(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	list, err := h.Orders.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list orders failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"food_orders": list})
}
