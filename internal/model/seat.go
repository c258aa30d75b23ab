package model

// Seat is the smallest bookable unit of inventory.  A seat is
// identified by its label (e.g. "A7"), unique within one showtime,
// and carries a binary booked/free flag.  Seats are created when a
// showtime is built and only ever removed together with it.
//
// Fields:
//  SeatNumber – label identifying the seat within its showtime.
//  IsBooked   – whether the seat is currently reserved.
type Seat struct {
	SeatNumber string // unique within the owning showtime
	IsBooked   bool   // flipped only through Showtime methods
}

// NewSeat returns a free seat with the given label.
func NewSeat(seatNumber string) *Seat {
	return &Seat{SeatNumber: seatNumber}
}
