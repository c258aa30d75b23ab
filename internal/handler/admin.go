package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-ticket-booking/internal/inventory"
	"github.com/iliyamo/cinema-ticket-booking/internal/storage"
)

// AdminHandler implements inventory management: adding and removing
// movies and showtimes, statistics, the full booking list, and the
// destructive clear-and-reseed operation.  All routes are guarded by
// the ADMIN role.
type AdminHandler struct {
	Store *inventory.Store
}

// NewAdminHandler constructs an AdminHandler.  Store must be non-nil.
func NewAdminHandler(store *inventory.Store) *AdminHandler {
	if store == nil {
		panic("nil store passed to NewAdminHandler")
	}
	return &AdminHandler{Store: store}
}

// AddMovie handles POST /v1/admin/movies.
func (h *AdminHandler) AddMovie(c echo.Context) error {
	var body struct {
		Title           string `json:"title"`
		DurationMinutes int    `json:"duration_minutes"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	movie, err := h.Store.AddMovie(body.Title, body.DurationMinutes)
	switch {
	case errors.Is(err, inventory.ErrValidation):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, inventory.ErrPersistence):
		c.Logger().Warnf("movies store flush failed after adding %s", movie.ID)
	case err != nil:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to add movie"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"id":               movie.ID,
		"title":            movie.Title,
		"duration_minutes": movie.DurationMinutes,
	})
}

// AddShowtime handles POST /v1/admin/showtimes.  The start time uses
// the store timestamp format and must lie in the future.
func (h *AdminHandler) AddShowtime(c echo.Context) error {
	var body struct {
		MovieID    string `json:"movie_id"`
		StartTime  string `json:"start_time"`
		TotalSeats int    `json:"total_seats"`
		SeatPrefix string `json:"seat_prefix"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	start, err := time.ParseInLocation(storage.TimeLayout, body.StartTime, time.Local)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_time must use format " + storage.TimeLayout})
	}
	if start.Before(time.Now()) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "showtime must be in the future"})
	}
	showtime, err := h.Store.AddShowtime(body.MovieID, start, body.TotalSeats, body.SeatPrefix)
	switch {
	case errors.Is(err, inventory.ErrMovieNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
	case errors.Is(err, inventory.ErrValidation):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, inventory.ErrPersistence):
		c.Logger().Warnf("movies store flush failed after adding %s", showtime.ID)
	case err != nil:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to add showtime"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"id":          showtime.ID,
		"start_time":  showtime.StartTime.Format(storage.TimeLayout),
		"total_seats": showtime.TotalSeats,
	})
}

// RemoveMovie handles DELETE /v1/admin/movies/:id.  The cascade
// removes the movie's showtimes and every booking referencing them.
func (h *AdminHandler) RemoveMovie(c echo.Context) error {
	removed, err := h.Store.RemoveMovie(c.Param("id"))
	switch {
	case errors.Is(err, inventory.ErrMovieNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
	case errors.Is(err, inventory.ErrPersistence):
		c.Logger().Warn("store flush failed after removing movie")
	case err != nil:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to remove movie"})
	}
	return c.JSON(http.StatusOK, echo.Map{"removed_bookings": removed})
}

// RemoveShowtime handles DELETE /v1/admin/showtimes/:id with the same
// cascade semantics scoped to one showtime.
func (h *AdminHandler) RemoveShowtime(c echo.Context) error {
	removed, err := h.Store.RemoveShowtime(c.Param("id"))
	switch {
	case errors.Is(err, inventory.ErrShowtimeNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "showtime not found"})
	case errors.Is(err, inventory.ErrPersistence):
		c.Logger().Warn("store flush failed after removing showtime")
	case err != nil:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to remove showtime"})
	}
	return c.JSON(http.StatusOK, echo.Map{"removed_bookings": removed})
}

// AllBookings handles GET /v1/admin/bookings.
func (h *AdminHandler) AllBookings(c echo.Context) error {
	bookings := h.Store.AllBookings()
	out := make([]bookingView, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingView(b))
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": out})
}

// Statistics handles GET /v1/admin/stats.
func (h *AdminHandler) Statistics(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Store.Statistics())
}

// ClearAll handles POST /v1/admin/clear.  It wipes movies and
// bookings, resets the id counters and reseeds the sample catalogue.
func (h *AdminHandler) ClearAll(c echo.Context) error {
	if err := h.Store.ClearAll(); err != nil && !errors.Is(err, inventory.ErrPersistence) {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to clear data"})
	}
	if err := h.Store.SeedSampleData(); err != nil && !errors.Is(err, inventory.ErrPersistence) {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to reseed sample data"})
	}
	return c.JSON(http.StatusOK, h.Store.Statistics())
}
