package main // Entry point package

import (
	"log"
	"os"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/cinema-ticket-booking/internal/config"
	"github.com/iliyamo/cinema-ticket-booking/internal/handler"
	"github.com/iliyamo/cinema-ticket-booking/internal/inventory"
	"github.com/iliyamo/cinema-ticket-booking/internal/queue"
	"github.com/iliyamo/cinema-ticket-booking/internal/router"
	"github.com/iliyamo/cinema-ticket-booking/internal/storage"
)

func main() {
	cfg := config.Load()

	// Flat file stores and the aggregate they hydrate.
	movieStore := storage.NewMovieStore(cfg.MoviesFile())
	bookingStore := storage.NewBookingStore(cfg.BookingsFile())
	userStore := storage.NewUserStore(cfg.UsersFile())

	movies, err := movieStore.Load()
	if err != nil {
		log.Fatalf("loading movies store: %v", err)
	}
	bookings, err := bookingStore.Load()
	if err != nil {
		log.Fatalf("loading bookings store: %v", err)
	}
	userRecords, err := userStore.Load()
	if err != nil {
		log.Fatalf("loading users store: %v", err)
	}

	store := inventory.NewStore(movieStore, bookingStore)
	store.Hydrate(movies, bookings)
	if err := store.SeedSampleData(); err != nil {
		log.Printf("seeding sample data: %v", err)
	}

	users := inventory.NewUsers(userStore)
	users.Hydrate(userRecords)

	// Optional collaborators: Redis for rate limiting and caching,
	// RabbitMQ for booking.confirmed events.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, rate limiting and caching disabled")
	}
	publishEvents := os.Getenv("RABBITMQ_URL") != "" || os.Getenv("AMQP_URL") != ""
	if publishEvents {
		go queue.StartBookingConsumer()
	}

	e := echo.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	router.RegisterRoutes(e, router.Handlers{
		Auth:    handler.NewAuthHandler(users, cfg.JWTSecret, cfg.AccessTTLMin, cfg.BcryptCost),
		Browse:  handler.NewBrowseHandler(store),
		Booking: handler.NewBookingHandler(store, publishEvents),
		Admin:   handler.NewAdminHandler(store),
	}, cfg.JWTSecret, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, data=%s)", addr, cfg.Env, cfg.DataDir)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
