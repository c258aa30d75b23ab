// Package inventory holds the aggregate of all movies and bookings
// and mediates every transaction against them: seat reservation,
// booking creation and cancellation, admin add/remove operations and
// their cascades.  Each successful mutation is flushed to the flat
// file stores before the call returns.  These sentinel values let
// handlers distinguish the failure scenarios without string matching.
package inventory

import "errors"

// ErrMovieNotFound is returned when a movie id or title does not
// resolve to a known movie.
var ErrMovieNotFound = errors.New("movie not found")

// ErrShowtimeNotFound is returned when a showtime id does not resolve
// to any showtime of any movie.
var ErrShowtimeNotFound = errors.New("showtime not found")

// ErrBookingNotFound is returned when a booking id does not resolve
// to a live booking.
var ErrBookingNotFound = errors.New("booking not found")

// ErrValidation is returned for rejected input: empty required
// fields, non-positive durations or seat counts, duplicate seats in
// one request, or fields containing the store delimiter characters
// that would be unrecoverable after a save/load cycle.  A validation
// failure has no side effects.
var ErrValidation = errors.New("validation failed")

// ErrPersistence wraps a failure to flush a committed mutation to
// disk.  The in-memory state has already been applied and is not
// rolled back; callers should surface the error as a warning.
var ErrPersistence = errors.New("persistence failed")

// ErrUserExists is returned when registering a user whose name is
// already taken.
var ErrUserExists = errors.New("user already exists")

// ErrUserNotFound is returned when a user name does not resolve to a
// registered user.
var ErrUserNotFound = errors.New("user not found")
