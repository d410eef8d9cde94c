package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cinepass/ticketing/internal/model"
	"github.com/cinepass/ticketing/internal/repository"
)

// ManagerHandler covers the theatre-manager surface: the movie schedule,
// the concession menu and the theatre's booking overview. Every
// operation is scoped to the manager's own theatre; touching another
// venue's resources yields 403.
type ManagerHandler struct {
	Users    *repository.UserRepo
	Movies   *repository.MovieRepo
	Snacks   *repository.SnackRepo
	Bookings *repository.BookingRepo
}

// managerTheatre resolves the caller's theatre binding. Managers without
// a theatre assignment cannot manage anything.
func (h *ManagerHandler) managerTheatre(ctx context.Context, c echo.Context) (uint64, error) {
	uid, ok := currentUserID(c)
	if !ok {
		return 0, errors.New("unauthorized")
	}
	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return 0, err
	}
	if u.TheatreID == nil {
		return 0, repository.ErrForbidden
	}
	return *u.TheatreID, nil
}

type movieReq struct {
	Title            string `json:"title"`
	DurationMin      int    `json:"duration_min"`
	CastLine         string `json:"cast"`
	Genre            string `json:"genre"`
	Showtimes        string `json:"show_times"`
	TicketPriceCents int64  `json:"ticket_price_cents"`
}

func (r movieReq) validate() string {
	if strings.TrimSpace(r.Title) == "" {
		return "title required"
	}
	if r.DurationMin <= 0 {
		return "duration_min must be positive"
	}
	if strings.TrimSpace(r.Showtimes) == "" {
		return "show_times required"
	}
	if r.TicketPriceCents < 0 {
		return "ticket_price_cents must not be negative"
	}
	return ""
}

// CreateMovie schedules a movie at the manager's theatre.
func (h *ManagerHandler) CreateMovie(c echo.Context) error {
	var req movieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	theatreID, err := h.managerTheatre(ctx, c)
	if err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "no theatre assignment"})
	}
	m := &model.Movie{
		TheatreID:        theatreID,
		Title:            strings.TrimSpace(req.Title),
		DurationMin:      req.DurationMin,
		CastLine:         strings.TrimSpace(req.CastLine),
		Genre:            strings.TrimSpace(req.Genre),
		Showtimes:        strings.TrimSpace(req.Showtimes),
		TicketPriceCents: req.TicketPriceCents,
	}
	id, err := h.Movies.Create(ctx, m)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create movie failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// UpdateMovie replaces a movie's schedule and pricing. The price change
// only affects future bookings; committed bookings keep their amounts.
func (h *ManagerHandler) UpdateMovie(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	var req movieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	theatreID, err := h.managerTheatre(ctx, c)
	if err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "no theatre assignment"})
	}
	m, err := h.Movies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load movie failed"})
	}
	if m.TheatreID != theatreID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "movie belongs to another theatre"})
	}
	m.Title = strings.TrimSpace(req.Title)
	m.DurationMin = req.DurationMin
	m.CastLine = strings.TrimSpace(req.CastLine)
	m.Genre = strings.TrimSpace(req.Genre)
	m.Showtimes = strings.TrimSpace(req.Showtimes)
	m.TicketPriceCents = req.TicketPriceCents
	if err := h.Movies.Update(ctx, &m); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update movie failed"})
	}
	return c.JSON(http.StatusOK, m)
}

// DeleteMovie removes a movie from the schedule.
func (h *ManagerHandler) DeleteMovie(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	theatreID, err := h.managerTheatre(ctx, c)
	if err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "no theatre assignment"})
	}
	m, err := h.Movies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load movie failed"})
	}
	if m.TheatreID != theatreID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "movie belongs to another theatre"})
	}
	if err := h.Movies.Delete(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete movie failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

type snackReq struct {
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
}

// CreateSnack adds an item to the manager's concession menu.
func (h *ManagerHandler) CreateSnack(c echo.Context) error {
	var req snackReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Name) == "" || req.PriceCents < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and non-negative price_cents required"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	theatreID, err := h.managerTheatre(ctx, c)
	if err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "no theatre assignment"})
	}
	id, err := h.Snacks.Create(ctx, theatreID, strings.TrimSpace(req.Name), req.PriceCents)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create snack failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

type snackAvailabilityReq struct {
	Available bool `json:"available"`
}

// SetSnackAvailability flips whether an item can be ordered.
func (h *ManagerHandler) SetSnackAvailability(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid snack id"})
	}
	var req snackAvailabilityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	theatreID, err := h.managerTheatre(ctx, c)
	if err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "no theatre assignment"})
	}
	s, err := h.Snacks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "snack not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load snack failed"})
	}
	if s.TheatreID != theatreID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "snack belongs to another theatre"})
	}
	if err := h.Snacks.SetAvailability(ctx, id, req.Available); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update snack failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteSnack removes an item from the menu along with its order
// history (cascade).
func (h *ManagerHandler) DeleteSnack(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid snack id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	theatreID, err := h.managerTheatre(ctx, c)
	if err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "no theatre assignment"})
	}
	s, err := h.Snacks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "snack not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load snack failed"})
	}
	if s.TheatreID != theatreID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "snack belongs to another theatre"})
	}
	if err := h.Snacks.Delete(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete snack failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// TheatreBookings lists every booking taken at the manager's theatre.
func (h *ManagerHandler) TheatreBookings(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	theatreID, err := h.managerTheatre(ctx, c)
	if err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "no theatre assignment"})
	}
	list, err := h.Bookings.ListByTheatre(ctx, theatreID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list bookings failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": list})
}
