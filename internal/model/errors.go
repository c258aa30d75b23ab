// Package model defines the domain entities of the booking engine:
// movies, showtimes, seats, bookings and users.  The seat state
// machine lives on Showtime; everything else is plain data mutated by
// the inventory store.
package model

import "errors"

// ErrSeatNotFound is returned when a seat label does not exist in the
// showtime.
var ErrSeatNotFound = errors.New("seat not found")

// ErrSeatAlreadyReserved is returned when reserving a seat that is
// currently booked.
var ErrSeatAlreadyReserved = errors.New("seat is already reserved")

// ErrSeatNotReserved is returned when cancelling a seat that is
// currently free.
var ErrSeatNotReserved = errors.New("seat is not reserved")
