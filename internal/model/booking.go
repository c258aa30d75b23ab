package model

import "time"

// Booking is the immutable record of a completed reservation.  It is
// created only by a successful booking transaction and destroyed only
// by an explicit cancellation that first releases its seats.  A
// booking references its showtime by id and its movie by title; if
// those entities are later removed the booking may survive as an
// orphan, which the system tolerates.
//
// Fields:
//  BookingID    – unique identifier (e.g. "B12").
//  CustomerName – who made the booking.
//  MovieTitle   – title of the booked movie at booking time.
//  ShowtimeID   – id of the booked showtime.
//  SeatNumbers  – the reserved seat labels, never empty.
//  BookingTime  – when the booking was made.
type Booking struct {
	BookingID    string
	CustomerName string
	MovieTitle   string
	ShowtimeID   string
	SeatNumbers  []string
	BookingTime  time.Time
}

// NewBooking constructs a booking record.
func NewBooking(id, customerName, movieTitle, showtimeID string, seatNumbers []string, bookingTime time.Time) *Booking {
	return &Booking{
		BookingID:    id,
		CustomerName: customerName,
		MovieTitle:   movieTitle,
		ShowtimeID:   showtimeID,
		SeatNumbers:  seatNumbers,
		BookingTime:  bookingTime,
	}
}
