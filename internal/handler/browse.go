package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-ticket-booking/internal/inventory"
	"github.com/iliyamo/cinema-ticket-booking/internal/model"
)

// BrowseHandler exposes the unauthenticated catalogue: movies with
// their showtimes and per-showtime seat availability.
type BrowseHandler struct {
	Store *inventory.Store
}

// NewBrowseHandler constructs a BrowseHandler.  Store must be
// non-nil.
func NewBrowseHandler(store *inventory.Store) *BrowseHandler {
	if store == nil {
		panic("nil store passed to NewBrowseHandler")
	}
	return &BrowseHandler{Store: store}
}

// showtimeView is the wire shape of one screening.
type showtimeView struct {
	ID         string `json:"id"`
	StartTime  string `json:"start_time"`
	TotalSeats int    `json:"total_seats"`
	Available  int    `json:"available"`
}

// movieView is the wire shape of one movie with its screenings.
type movieView struct {
	ID              string         `json:"id"`
	Title           string         `json:"title"`
	DurationMinutes int            `json:"duration_minutes"`
	Showtimes       []showtimeView `json:"showtimes"`
}

func toMovieView(m *model.Movie) movieView {
	mv := movieView{
		ID:              m.ID,
		Title:           m.Title,
		DurationMinutes: m.DurationMinutes,
		Showtimes:       make([]showtimeView, 0, len(m.Showtimes)),
	}
	for _, st := range m.Showtimes {
		mv.Showtimes = append(mv.Showtimes, showtimeView{
			ID:         st.ID,
			StartTime:  st.StartTime.Format(time.RFC3339),
			TotalSeats: st.TotalSeats,
			Available:  st.TotalSeats - st.BookedSeatCount(),
		})
	}
	return mv
}

// ListMovies handles GET /v1/movies and returns the catalogue in
// display order.
func (h *BrowseHandler) ListMovies(c echo.Context) error {
	movies := h.Store.Movies()
	out := make([]movieView, 0, len(movies))
	for _, m := range movies {
		out = append(out, toMovieView(m))
	}
	return c.JSON(http.StatusOK, echo.Map{"movies": out})
}

// GetShowtimeSeats handles GET /v1/showtimes/:id/seats and returns
// the full seat map plus the currently free seats, so clients can
// render a picker and validate a selection in one request.
func (h *BrowseHandler) GetShowtimeSeats(c echo.Context) error {
	_, showtime, err := h.Store.FindShowtime(c.Param("id"))
	if errors.Is(err, inventory.ErrShowtimeNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "showtime not found"})
	}
	seats := showtime.SeatStates()
	available := make([]string, 0, len(seats))
	all := make([]echo.Map, 0, len(seats))
	for _, seat := range seats {
		all = append(all, echo.Map{"seat_number": seat.SeatNumber, "is_booked": seat.IsBooked})
		if !seat.IsBooked {
			available = append(available, seat.SeatNumber)
		}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"showtime_id": showtime.ID,
		"seats":       all,
		"available":   available,
	})
}
