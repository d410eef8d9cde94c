package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/cinepass/ticketing/internal/handler"
	"github.com/cinepass/ticketing/internal/middleware"
	"github.com/cinepass/ticketing/internal/model"
)

// Handlers bundles every handler the router mounts so cmd/server can
// build them once and hand them over together.
type Handlers struct {
	Auth    *handler.AuthHandler
	Catalog *handler.CatalogHandler
	Booking *handler.BookingHandler
	Food    *handler.FoodHandler
	Review  *handler.ReviewHandler
	Admin   *handler.AdminHandler
	Manager *handler.ManagerHandler
}

// RegisterRoutes mounts the full API surface. Public browse endpoints
// carry no middleware; customer endpoints require a USER (or any) role;
// the admin and manager groups are locked to their roles. The rate
// limiter, when enabled, is applied globally by cmd/server before this
// runs.
func RegisterRoutes(e *echo.Echo, h Handlers, jwtSecret string) {
	// Liveness probe for load balancers and monitoring.
	e.GET("/healthz", handler.Health)

	// Session endpoints: no JWT required.
	auth := e.Group("/v1/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.Refresh)

	// Public browse surface: theatres, movies, menus, reviews, seat maps.
	e.GET("/v1/theatres", h.Catalog.ListTheatres)
	e.GET("/v1/theatres/:id", h.Catalog.GetTheatre)
	e.GET("/v1/theatres/:id/movies", h.Catalog.ListMovies)
	e.GET("/v1/theatres/:id/snacks", h.Catalog.ListSnacks)
	e.GET("/v1/theatres/:id/reviews", h.Catalog.ListTheatreReviews)
	e.GET("/v1/movies/:id", h.Catalog.GetMovie)
	e.GET("/v1/movies/:id/reviews", h.Catalog.ListMovieReviews)
	e.GET("/v1/shows/seat-map", h.Booking.SeatMap)

	// Authenticated customer surface. Admin and manager accounts may use
	// these endpoints too (a manager can book a seat like anyone else).
	user := e.Group("/v1")
	user.Use(middleware.JWTAuth(jwtSecret))
	user.Use(middleware.RequireRole(model.RoleUser, model.RoleManager, model.RoleAdmin))
	user.GET("/me", h.Auth.Me)
	user.POST("/auth/logout", h.Auth.Logout)
	user.POST("/bookings", h.Booking.Create)
	user.GET("/my/bookings", h.Booking.MyBookings)
	user.GET("/my/points", h.Booking.MyPoints)
	user.POST("/food-orders", h.Food.Create)
	user.GET("/my/food-orders", h.Food.Mine)
	user.POST("/reviews", h.Review.Create)
	user.GET("/my/reviews", h.Review.Mine)

	// Platform administration. The group shares the /v1 prefix with the
	// customer surface; only the routes registered here carry the ADMIN
	// requirement.
	admin := e.Group("/v1")
	admin.Use(middleware.JWTAuth(jwtSecret))
	admin.Use(middleware.RequireRole(model.RoleAdmin))
	admin.POST("/theatres", h.Admin.CreateTheatre)
	admin.DELETE("/theatres/:id", h.Admin.DeleteTheatre)
	admin.POST("/managers", h.Admin.CreateManager)
	admin.GET("/users", h.Admin.ListUsers)
	admin.GET("/reviews/all", h.Admin.ListReviews)

	// Theatre management.
	mgr := e.Group("/v1/manager")
	mgr.Use(middleware.JWTAuth(jwtSecret))
	mgr.Use(middleware.RequireRole(model.RoleManager, model.RoleAdmin))
	mgr.POST("/movies", h.Manager.CreateMovie)
	mgr.PUT("/movies/:id", h.Manager.UpdateMovie)
	mgr.DELETE("/movies/:id", h.Manager.DeleteMovie)
	mgr.POST("/snacks", h.Manager.CreateSnack)
	mgr.PATCH("/snacks/:id/availability", h.Manager.SetSnackAvailability)
	mgr.DELETE("/snacks/:id", h.Manager.DeleteSnack)
	mgr.GET("/bookings", h.Manager.TheatreBookings)
}
