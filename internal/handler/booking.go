package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-ticket-booking/internal/inventory"
	"github.com/iliyamo/cinema-ticket-booking/internal/middleware"
	"github.com/iliyamo/cinema-ticket-booking/internal/model"
	"github.com/iliyamo/cinema-ticket-booking/internal/queue"
	queue_publisher "github.com/iliyamo/cinema-ticket-booking/internal/service"
	"github.com/iliyamo/cinema-ticket-booking/internal/storage"
)

// BookingHandler implements booking creation, listing and
// cancellation for authenticated customers.
type BookingHandler struct {
	Store         *inventory.Store
	PublishEvents bool // publish booking.confirmed to the broker
}

// NewBookingHandler constructs a BookingHandler.  Store must be
// non-nil.
func NewBookingHandler(store *inventory.Store, publishEvents bool) *BookingHandler {
	if store == nil {
		panic("nil store passed to NewBookingHandler")
	}
	return &BookingHandler{Store: store, PublishEvents: publishEvents}
}

// bookingView is the wire shape of a ticket.
type bookingView struct {
	BookingID    string   `json:"booking_id"`
	CustomerName string   `json:"customer_name"`
	MovieTitle   string   `json:"movie_title"`
	ShowtimeID   string   `json:"showtime_id"`
	Seats        []string `json:"seats"`
	BookingTime  string   `json:"booking_time"`
}

func toBookingView(b *model.Booking) bookingView {
	return bookingView{
		BookingID:    b.BookingID,
		CustomerName: b.CustomerName,
		MovieTitle:   b.MovieTitle,
		ShowtimeID:   b.ShowtimeID,
		Seats:        b.SeatNumbers,
		BookingTime:  b.BookingTime.Format(storage.TimeLayout),
	}
}

// CreateBooking handles POST /v1/bookings.  The body names the
// movie, showtime and seats; the customer is taken from the access
// token.  All requested seats are reserved atomically: on any
// conflict no seat is taken and the caller gets a 409.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	customer, _ := c.Get(middleware.CtxUserName).(string)
	if customer == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		MovieID    string   `json:"movie_id"`
		ShowtimeID string   `json:"showtime_id"`
		Seats      []string `json:"seats"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	booking, err := h.Store.CreateBooking(customer, body.MovieID, body.ShowtimeID, body.Seats)
	switch {
	case errors.Is(err, inventory.ErrValidation):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, inventory.ErrMovieNotFound), errors.Is(err, inventory.ErrShowtimeNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, model.ErrSeatNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
	case errors.Is(err, model.ErrSeatAlreadyReserved):
		return c.JSON(http.StatusConflict, echo.Map{"error": "seat is already reserved"})
	case errors.Is(err, inventory.ErrPersistence):
		// Committed in memory; report the flush failure without
		// failing the booking.
		c.Logger().Warnf("store flush failed after booking %s", booking.BookingID)
	case err != nil:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed"})
	}

	if h.PublishEvents {
		ev := queue.BookingConfirmedEvent{
			BookingID:    booking.BookingID,
			CustomerName: booking.CustomerName,
			MovieTitle:   booking.MovieTitle,
			ShowtimeID:   booking.ShowtimeID,
			Seats:        booking.SeatNumbers,
			BookedAt:     booking.BookingTime.Format(storage.TimeLayout),
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = queue_publisher.PublishBookingConfirmed(ctx, ev)
		}()
	}
	return c.JSON(http.StatusCreated, toBookingView(booking))
}

// MyBookings handles GET /v1/bookings and returns the caller's live
// bookings in insertion order.
func (h *BookingHandler) MyBookings(c echo.Context) error {
	customer, _ := c.Get(middleware.CtxUserName).(string)
	if customer == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookings := h.Store.BookingsOf(customer)
	out := make([]bookingView, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingView(b))
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": out})
}

// CancelBooking handles DELETE /v1/bookings/:id.  Customers may
// cancel only their own bookings; admins may cancel any.  The seats
// are released best-effort and the record removed.
func (h *BookingHandler) CancelBooking(c echo.Context) error {
	customer, _ := c.Get(middleware.CtxUserName).(string)
	role, _ := c.Get(middleware.CtxRole).(string)
	if customer == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	bookingID := c.Param("id")
	booking, err := h.Store.FindBooking(bookingID)
	if errors.Is(err, inventory.ErrBookingNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	}
	if booking.CustomerName != customer && role != model.RoleAdmin {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	err = h.Store.CancelBooking(bookingID)
	switch {
	case errors.Is(err, inventory.ErrBookingNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	case errors.Is(err, inventory.ErrPersistence):
		c.Logger().Warnf("store flush failed after cancelling %s", bookingID)
	case err != nil:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancellation failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"cancelled": bookingID})
}
