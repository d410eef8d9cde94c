package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cinepass/ticketing/internal/config"
	"github.com/cinepass/ticketing/internal/model"
	"github.com/cinepass/ticketing/internal/repository"
)

// AdminHandler covers the platform-operator surface: theatre lifecycle,
// manager provisioning and the account overview. All routes are behind
// RequireRole(ADMIN).
type AdminHandler struct {
	Cfg      config.Config
	Theatres *repository.TheatreRepo
	Users    *repository.UserRepo
	Reviews  *repository.ReviewRepo
}

type createTheatreReq struct {
	Name       string `json:"name"`
	Location   string `json:"location"`
	TotalSeats int    `json:"total_seats"`
}

// CreateTheatre registers a new venue. The capacity must be positive; it
// fixes the seat grid for every show at the theatre.
func (h *AdminHandler) CreateTheatre(c echo.Context) error {
	var req createTheatreReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.TotalSeats <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and positive total_seats required"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	id, err := h.Theatres.Create(ctx, req.Name, strings.TrimSpace(req.Location), req.TotalSeats)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create theatre failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// DeleteTheatre removes a venue and all of its dependent data through
// the schema's cascading foreign keys.
func (h *AdminHandler) DeleteTheatre(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid theatre id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Theatres.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "theatre not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete theatre failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

type createManagerReq struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
	TheatreID uint64 `json:"theatre_id"`
}

// CreateManager provisions a MANAGER account bound to one theatre.
func (h *AdminHandler) CreateManager(c echo.Context) error {
	var req createManagerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" || req.TheatreID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username, password and theatre_id required"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if _, err := h.Theatres.GetByID(ctx, req.TheatreID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "theatre not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load theatre failed"})
	}
	tid := req.TheatreID
	uid, err := h.Users.Create(ctx, req.Username, req.Email, req.Phone, req.Password,
		model.RoleManager, &tid, h.Cfg.BcryptCost)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUsernameExists):
			return c.JSON(http.StatusConflict, echo.Map{"error": "username already exists"})
		case errors.Is(err, repository.ErrEmailExists):
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create manager failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": uid})
}

// ListUsers returns every account without password hashes.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	users, err := h.Users.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list users failed"})
	}
	type userRow struct {
		ID            uint64  `json:"id"`
		Username      string  `json:"username"`
		Email         string  `json:"email"`
		Role          string  `json:"role"`
		TheatreID     *uint64 `json:"theatre_id,omitempty"`
		LoyaltyPoints int64   `json:"loyalty_points"`
	}
	out := make([]userRow, 0, len(users))
	for _, u := range users {
		out = append(out, userRow{
			ID: u.ID, Username: u.Username, Email: u.Email,
			Role: string(u.Role), TheatreID: u.TheatreID, LoyaltyPoints: u.LoyaltyPoints,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"users": out})
}

// ListReviews returns every review for moderation.
func (h *AdminHandler) ListReviews(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	list, err := h.Reviews.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list reviews failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reviews": list})
}
