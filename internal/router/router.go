// Package router wires the HTTP routes to their handlers and
// middleware.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/cinema-ticket-booking/internal/config"
	"github.com/iliyamo/cinema-ticket-booking/internal/handler"
	"github.com/iliyamo/cinema-ticket-booking/internal/middleware"
	"github.com/iliyamo/cinema-ticket-booking/internal/model"
)

// Handlers groups everything RegisterRoutes needs.
type Handlers struct {
	Auth    *handler.AuthHandler
	Browse  *handler.BrowseHandler
	Booking *handler.BookingHandler
	Admin   *handler.AdminHandler
}

// RegisterRoutes registers the full HTTP surface.  Browse endpoints
// are public and served through the response cache; booking and admin
// endpoints require a valid token and the appropriate role.  The rate
// limiter applies to everything when Redis is available.
func RegisterRoutes(e *echo.Echo, h Handlers, jwtSecret string, rdb *redis.Client) {
	e.Use(middleware.RateLimit(config.LoadRateLimitConfig(), rdb))

	e.GET("/healthz", handler.Health)

	// Public catalogue, cached briefly to absorb browse bursts.
	cached := middleware.Cache(config.LoadCacheConfig(), rdb)
	e.GET("/v1/movies", h.Browse.ListMovies, cached)
	e.GET("/v1/showtimes/:id/seats", h.Browse.GetShowtimeSeats, cached)

	// Account endpoints.
	authGroup := e.Group("/v1/auth")
	authGroup.POST("/register", h.Auth.Register)
	authGroup.POST("/login", h.Auth.Login)

	// Authenticated endpoints for both roles.
	protected := e.Group("/v1")
	protected.Use(middleware.JWTAuth(jwtSecret))
	protected.Use(middleware.RequireRole(model.RoleAdmin, model.RoleCustomer))
	protected.GET("/me", h.Auth.Me)
	protected.POST("/bookings", h.Booking.CreateBooking)
	protected.GET("/bookings", h.Booking.MyBookings)
	protected.DELETE("/bookings/:id", h.Booking.CancelBooking)

	// Inventory management, ADMIN only.
	admin := e.Group("/v1/admin")
	admin.Use(middleware.JWTAuth(jwtSecret))
	admin.Use(middleware.RequireRole(model.RoleAdmin))
	admin.POST("/movies", h.Admin.AddMovie)
	admin.DELETE("/movies/:id", h.Admin.RemoveMovie)
	admin.POST("/showtimes", h.Admin.AddShowtime)
	admin.DELETE("/showtimes/:id", h.Admin.RemoveShowtime)
	admin.GET("/bookings", h.Admin.AllBookings)
	admin.GET("/stats", h.Admin.Statistics)
	admin.POST("/clear", h.Admin.ClearAll)
}
