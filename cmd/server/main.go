package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/cinepass/ticketing/internal/booking"
	"github.com/cinepass/ticketing/internal/config"
	"github.com/cinepass/ticketing/internal/database"
	"github.com/cinepass/ticketing/internal/handler"
	"github.com/cinepass/ticketing/internal/middleware"
	"github.com/cinepass/ticketing/internal/queue"
	"github.com/cinepass/ticketing/internal/repository"
	"github.com/cinepass/ticketing/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()
	if err := database.EnsureSchema(context.Background(), db); err != nil {
		log.Fatalf("schema: %v", err)
	}

	rdb := config.NewRedisClient() // nil disables caching and rate limiting
	if rdb == nil {
		log.Println("redis unavailable; seat-map cache and rate limiting disabled")
	}

	theatres := repository.NewTheatreRepo(db)
	movies := repository.NewMovieRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	snacks := repository.NewSnackRepo(db)
	bookings := repository.NewBookingRepo(db)
	foodOrders := repository.NewFoodOrderRepo(db)
	reviews := repository.NewReviewRepo(db)
	store := repository.NewBookingStore(db)

	if n, err := tokens.DeleteExpired(context.Background()); err != nil {
		log.Printf("refresh-token purge failed: %v", err)
	} else if n > 0 {
		log.Printf("purged %d stale refresh tokens", n)
	}

	svc := booking.NewService(store, theatres)

	h := router.Handlers{
		Auth: handler.NewAuthHandler(cfg, users, tokens),
		Catalog: &handler.CatalogHandler{
			Theatres: theatres, Movies: movies, Snacks: snacks, Reviews: reviews,
		},
		Booking: &handler.BookingHandler{
			Svc: svc, Movies: movies, Theatres: theatres, Bookings: bookings,
			Users: users, Redis: rdb, CacheTTL: config.SeatMapCacheTTL(), AMQPURL: cfg.AMQPURL,
		},
		Food:    &handler.FoodHandler{Orders: foodOrders},
		Review:  &handler.ReviewHandler{Reviews: reviews, Movies: movies, Theatres: theatres},
		Admin:   &handler.AdminHandler{Cfg: cfg, Theatres: theatres, Users: users, Reviews: reviews},
		Manager: &handler.ManagerHandler{Users: users, Movies: movies, Snacks: snacks, Bookings: bookings},
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(middleware.RateLimit(config.LoadRateLimitConfig(), rdb))
	router.RegisterRoutes(e, h, cfg.JWTSecret)

	var g errgroup.Group
	g.Go(func() error {
		addr := ":" + cfg.Port
		log.Printf("listening on %s (env=%s)", addr, cfg.Env)
		return e.Start(addr)
	})
	g.Go(func() error {
		return queue.StartBookingConsumer(cfg.AMQPURL)
	})
	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
}
