package model

import (
	"strconv"
	"sync"
	"time"
)

// Showtime is one scheduled screening with a fixed seat map.  It owns
// the reservation state machine for its seats: every transition of a
// seat's booked flag happens inside the showtime's mutex, so the
// check-then-set of a single seat is atomic even when many callers
// race for it.  Unrelated showtimes never serialize against each
// other.
//
// Fields:
//  ID         globally unique identifier (e.g. "S3")
//  StartTime  when the screening begins
//  TotalSeats number of seats; equals len(seats) at creation
type Showtime struct {
	ID         string
	StartTime  time.Time
	TotalSeats int

	mu    sync.Mutex
	seats []*Seat // ordered; guarded by mu
}

// NewShowtime builds a showtime with totalSeats seats labelled
// prefix+1 .. prefix+totalSeats, all free.
func NewShowtime(id string, startTime time.Time, totalSeats int, seatPrefix string) *Showtime {
	st := &Showtime{
		ID:         id,
		StartTime:  startTime,
		TotalSeats: totalSeats,
		seats:      make([]*Seat, 0, totalSeats),
	}
	for i := 1; i <= totalSeats; i++ {
		st.seats = append(st.seats, NewSeat(seatPrefix+strconv.Itoa(i)))
	}
	return st
}

// NewEmptyShowtime builds a showtime without seats.  It is used when
// hydrating from the movies store, where seat records follow the
// showtime header and are attached one by one via AppendSeat.
func NewEmptyShowtime(id string, startTime time.Time, totalSeats int) *Showtime {
	return &Showtime{ID: id, StartTime: startTime, TotalSeats: totalSeats}
}

// AppendSeat attaches a seat in file order during hydration.
func (s *Showtime) AppendSeat(seat *Seat) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seats = append(s.seats, seat)
}

// Reserve flips the named seat FREE→BOOKED.  It returns a copy of the
// seat on success.  ErrSeatNotFound is returned when the label does
// not exist in this showtime, ErrSeatAlreadyReserved when the seat is
// currently booked.  Reserve performs no file I/O; persisting the new
// state is the caller's responsibility, batched per transaction.
func (s *Showtime) Reserve(seatNumber string) (Seat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, seat := range s.seats {
		if seat.SeatNumber == seatNumber {
			if seat.IsBooked {
				return Seat{}, ErrSeatAlreadyReserved
			}
			seat.IsBooked = true
			return *seat, nil
		}
	}
	return Seat{}, ErrSeatNotFound
}

// ReserveAll stages every requested seat and commits only when all of
// them are free: either every seat flips to booked or none does.  On
// conflict it returns the triggering error without side effects, so a
// failed multi-seat booking never leaves partial reservations behind.
func (s *Showtime) ReserveAll(seatNumbers []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	staged := make([]*Seat, 0, len(seatNumbers))
	for _, num := range seatNumbers {
		seat := s.findLocked(num)
		if seat == nil {
			return ErrSeatNotFound
		}
		if seat.IsBooked {
			return ErrSeatAlreadyReserved
		}
		staged = append(staged, seat)
	}
	for _, seat := range staged {
		seat.IsBooked = true
	}
	return nil
}

// Cancel flips the named seat BOOKED→FREE.  ErrSeatNotFound is
// returned when the label does not exist, ErrSeatNotReserved when the
// seat is already free.
func (s *Showtime) Cancel(seatNumber string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	seat := s.findLocked(seatNumber)
	if seat == nil {
		return ErrSeatNotFound
	}
	if !seat.IsBooked {
		return ErrSeatNotReserved
	}
	seat.IsBooked = false
	return nil
}

// AvailableSeats returns copies of the seats currently free, in seat
// order.  The result reflects the latest committed mutation.
func (s *Showtime) AvailableSeats() []Seat {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Seat, 0, len(s.seats))
	for _, seat := range s.seats {
		if !seat.IsBooked {
			out = append(out, *seat)
		}
	}
	return out
}

// IsSeatAvailable reports whether the named seat exists and is free.
// It returns false both for unknown and for booked seats; callers
// that need to distinguish the two must use Reserve and inspect the
// error.
func (s *Showtime) IsSeatAvailable(seatNumber string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	seat := s.findLocked(seatNumber)
	return seat != nil && !seat.IsBooked
}

// BookedSeatCount returns the number of seats currently booked.
func (s *Showtime) BookedSeatCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, seat := range s.seats {
		if seat.IsBooked {
			n++
		}
	}
	return n
}

// SeatStates returns copies of all seats in order, for display and
// for serializing the showtime to the movies store.
func (s *Showtime) SeatStates() []Seat {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Seat, len(s.seats))
	for i, seat := range s.seats {
		out[i] = *seat
	}
	return out
}

// findLocked returns the seat with the given label or nil.  Callers
// must hold s.mu.
func (s *Showtime) findLocked(seatNumber string) *Seat {
	for _, seat := range s.seats {
		if seat.SeatNumber == seatNumber {
			return seat
		}
	}
	return nil
}
