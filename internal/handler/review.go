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

// ReviewHandler lets customers rate movies and theatres. Listing is part
// of the public catalog surface; creation requires authentication.
type ReviewHandler struct {
	Reviews  *repository.ReviewRepo
	Movies   *repository.MovieRepo
	Theatres *repository.TheatreRepo
}

type reviewReq struct {
	TheatreID uint64  `json:"theatre_id"`
	MovieID   *uint64 `json:"movie_id"`
	Rating    int     `json:"rating"`
	Comment   string  `json:"comment"`
}

// Create stores a review. When movie_id is present the review is a movie
// review and the movie must be screened at the named theatre; otherwise
// it rates the theatre itself. Ratings run 1 to 5.
func (h *ReviewHandler) Create(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req reviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Rating < 1 || req.Rating > 5 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 1 and 5"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Theatres.GetByID(ctx, req.TheatreID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "theatre not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load theatre failed"})
	}
	reviewType := model.ReviewTheatre
	if req.MovieID != nil {
		m, err := h.Movies.GetByID(ctx, *req.MovieID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load movie failed"})
		}
		if m.TheatreID != req.TheatreID {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "movie is not screened at this theatre"})
		}
		reviewType = model.ReviewMovie
	}

	id, err := h.Reviews.Create(ctx, &model.Review{
		UserID:    uid,
		TheatreID: req.TheatreID,
		MovieID:   req.MovieID,
		Rating:    req.Rating,
		Comment:   strings.TrimSpace(req.Comment),
		Type:      reviewType,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create review failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// Mine lists the caller's reviews, newest first.
func (h *ReviewHandler) Mine(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	list, err := h.Reviews.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list reviews failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reviews": list})
}
