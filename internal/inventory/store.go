package inventory

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/iliyamo/cinema-ticket-booking/internal/model"
)

// maxSeatsPerShowtime caps the seat map of a single showtime.
const maxSeatsPerShowtime = 100

// MoviePersister flushes the full movie set (with nested showtimes
// and seats) to durable storage.
type MoviePersister interface {
	Save(movies []*model.Movie) error
}

// BookingPersister flushes the full booking set to durable storage.
type BookingPersister interface {
	Save(bookings []*model.Booking) error
}

// Store is the aggregate of all movies and bookings.  Insertion order
// is display order for both collections.  A single RWMutex guards the
// collections and the id counters; seat-level mutations additionally
// go through the owning showtime's mutex, so two callers racing for
// one seat are decided atomically while unrelated showtimes proceed
// in parallel.
//
// Durability is best-effort by design: a mutation commits in memory
// first and is then flushed through the persisters.  A flush failure
// is returned wrapped in ErrPersistence but the mutation stays
// applied.
type Store struct {
	mu       sync.RWMutex
	movies   []*model.Movie
	bookings []*model.Booking

	movieCounter    int
	showtimeCounter int
	bookingCounter  int

	moviePersist   MoviePersister
	bookingPersist BookingPersister
}

// NewStore constructs an empty store flushing through the given
// persisters.  Both must be non-nil.
func NewStore(moviePersist MoviePersister, bookingPersist BookingPersister) *Store {
	if moviePersist == nil || bookingPersist == nil {
		panic("nil persister passed to NewStore")
	}
	return &Store{moviePersist: moviePersist, bookingPersist: bookingPersist}
}

// Hydrate replaces the store's contents with entities loaded from
// disk and re-derives the id counters from the maximum numeric suffix
// seen per kind, so a reload never reuses an id even when entities
// were deleted.
func (s *Store) Hydrate(movies []*model.Movie, bookings []*model.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.movies = movies
	s.bookings = bookings
	s.movieCounter = 0
	s.showtimeCounter = 0
	s.bookingCounter = 0
	for _, m := range movies {
		s.movieCounter = maxSuffix(s.movieCounter, m.ID, "M")
		for _, st := range m.Showtimes {
			s.showtimeCounter = maxSuffix(s.showtimeCounter, st.ID, "S")
		}
	}
	for _, b := range bookings {
		s.bookingCounter = maxSuffix(s.bookingCounter, b.BookingID, "B")
	}
}

// maxSuffix returns the larger of cur and the numeric suffix of id,
// provided id starts with prefix and the suffix parses.  Ids that do
// not match the scheme are ignored.
func maxSuffix(cur int, id, prefix string) int {
	if !strings.HasPrefix(id, prefix) {
		return cur
	}
	n, err := strconv.Atoi(id[len(prefix):])
	if err != nil || n <= cur {
		return cur
	}
	return n
}

// Movies returns the movies in display order.  The slice is a copy;
// the movie pointers are shared.
func (s *Store) Movies() []*model.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Movie, len(s.movies))
	copy(out, s.movies)
	return out
}

// AllBookings returns every live booking in insertion order.
func (s *Store) AllBookings() []*model.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Booking, len(s.bookings))
	copy(out, s.bookings)
	return out
}

// BookingsOf returns the live bookings made by the named customer.
func (s *Store) BookingsOf(customerName string) []*model.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*model.Booking
	for _, b := range s.bookings {
		if b.CustomerName == customerName {
			out = append(out, b)
		}
	}
	return out
}

// FindBooking returns the live booking with the given id.
func (s *Store) FindBooking(bookingID string) (*model.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.bookings {
		if b.BookingID == bookingID {
			return b, nil
		}
	}
	return nil, ErrBookingNotFound
}

// FindMovieByID returns the movie with the given id.
func (s *Store) FindMovieByID(movieID string) (*model.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.movies {
		if m.ID == movieID {
			return m, nil
		}
	}
	return nil, ErrMovieNotFound
}

// FindMovieByTitle returns the first movie with the given title.
func (s *Store) FindMovieByTitle(title string) (*model.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.movies {
		if m.Title == title {
			return m, nil
		}
	}
	return nil, ErrMovieNotFound
}

// FindShowtime returns the showtime with the given id and the movie
// that owns it.
func (s *Store) FindShowtime(showtimeID string) (*model.Movie, *model.Showtime, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findShowtimeLocked(showtimeID)
}

// findShowtimeLocked scans all movies for the showtime.  Callers must
// hold s.mu.
func (s *Store) findShowtimeLocked(showtimeID string) (*model.Movie, *model.Showtime, error) {
	for _, m := range s.movies {
		if st := m.FindShowtime(showtimeID); st != nil {
			return m, st, nil
		}
	}
	return nil, nil, ErrShowtimeNotFound
}

// AddMovie creates a movie with a fresh id and persists the movies
// store.
func (s *Store) AddMovie(title string, durationMinutes int) (*model.Movie, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: movie title must not be empty", ErrValidation)
	}
	if strings.ContainsRune(title, '|') {
		return nil, fmt.Errorf("%w: movie title must not contain the | delimiter", ErrValidation)
	}
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.movieCounter++
	movie := model.NewMovie("M"+strconv.Itoa(s.movieCounter), title, durationMinutes)
	s.movies = append(s.movies, movie)
	return movie, s.flushMoviesLocked()
}

// AddShowtime creates a showtime under the given movie with seats
// labelled seatPrefix+1..seatPrefix+totalSeats, then persists the
// movies store.  An empty prefix defaults to "S".
func (s *Store) AddShowtime(movieID string, startTime time.Time, totalSeats int, seatPrefix string) (*model.Showtime, error) {
	if totalSeats <= 0 || totalSeats > maxSeatsPerShowtime {
		return nil, fmt.Errorf("%w: seat count must be between 1 and %d", ErrValidation, maxSeatsPerShowtime)
	}
	seatPrefix = strings.ToUpper(strings.TrimSpace(seatPrefix))
	if seatPrefix == "" {
		seatPrefix = "S"
	}
	if strings.ContainsAny(seatPrefix, "|,") {
		return nil, fmt.Errorf("%w: seat prefix must not contain store delimiters", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	var movie *model.Movie
	for _, m := range s.movies {
		if m.ID == movieID {
			movie = m
			break
		}
	}
	if movie == nil {
		return nil, ErrMovieNotFound
	}
	s.showtimeCounter++
	showtime := model.NewShowtime("S"+strconv.Itoa(s.showtimeCounter), startTime, totalSeats, seatPrefix)
	movie.Showtimes = append(movie.Showtimes, showtime)
	return showtime, s.flushMoviesLocked()
}

// RemoveMovie deletes the movie, its showtimes, and every booking
// referencing one of those showtimes, then persists both stores.  It
// returns the number of bookings removed by the cascade.
func (s *Store) RemoveMovie(movieID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, m := range s.movies {
		if m.ID == movieID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return 0, ErrMovieNotFound
	}
	doomed := make(map[string]bool)
	for _, st := range s.movies[idx].Showtimes {
		doomed[st.ID] = true
	}
	removed := s.removeBookingsLocked(doomed)
	s.movies = append(s.movies[:idx], s.movies[idx+1:]...)
	return removed, s.flushBothLocked()
}

// RemoveShowtime deletes the showtime and every booking referencing
// it, then persists both stores.  It returns the number of bookings
// removed by the cascade.
func (s *Store) RemoveShowtime(showtimeID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var owner *model.Movie
	idx := -1
	for _, m := range s.movies {
		for i, st := range m.Showtimes {
			if st.ID == showtimeID {
				owner, idx = m, i
				break
			}
		}
		if owner != nil {
			break
		}
	}
	if owner == nil {
		return 0, ErrShowtimeNotFound
	}
	removed := s.removeBookingsLocked(map[string]bool{showtimeID: true})
	owner.Showtimes = append(owner.Showtimes[:idx], owner.Showtimes[idx+1:]...)
	return removed, s.flushBothLocked()
}

// removeBookingsLocked drops every booking whose showtime id is in
// doomed and returns how many were dropped.  Callers must hold s.mu.
func (s *Store) removeBookingsLocked(doomed map[string]bool) int {
	kept := s.bookings[:0]
	removed := 0
	for _, b := range s.bookings {
		if doomed[b.ShowtimeID] {
			removed++
			continue
		}
		kept = append(kept, b)
	}
	s.bookings = kept
	return removed
}

// ReserveSeat reserves a single seat of the showtime.  The seat flip
// is atomic; persistence is intentionally left to the caller so that
// multi-step transactions flush once.
func (s *Store) ReserveSeat(showtimeID, seatNumber string) (model.Seat, error) {
	_, st, err := s.FindShowtime(showtimeID)
	if err != nil {
		return model.Seat{}, err
	}
	return st.Reserve(seatNumber)
}

// CancelSeat releases a single seat of the showtime.  Like
// ReserveSeat it performs no file I/O.
func (s *Store) CancelSeat(showtimeID, seatNumber string) error {
	_, st, err := s.FindShowtime(showtimeID)
	if err != nil {
		return err
	}
	return st.Cancel(seatNumber)
}

// AvailableSeats returns the free seats of the showtime in seat
// order.
func (s *Store) AvailableSeats(showtimeID string) ([]model.Seat, error) {
	_, st, err := s.FindShowtime(showtimeID)
	if err != nil {
		return nil, err
	}
	return st.AvailableSeats(), nil
}

// CreateBooking reserves every requested seat of the showtime and, on
// success, records an immutable booking and persists both stores.
// The reservation is staged then committed: when any requested seat
// is unknown or already booked, no seat is flipped and the triggering
// error is returned, so a failed attempt leaves no partial state.
//
// When persistence fails after the in-memory commit, the booking is
// returned together with an error wrapping ErrPersistence.
func (s *Store) CreateBooking(customerName, movieID, showtimeID string, seatNumbers []string) (*model.Booking, error) {
	customerName = strings.TrimSpace(customerName)
	if customerName == "" {
		return nil, fmt.Errorf("%w: customer name must not be empty", ErrValidation)
	}
	if strings.ContainsRune(customerName, '|') {
		return nil, fmt.Errorf("%w: customer name must not contain the | delimiter", ErrValidation)
	}
	if len(seatNumbers) == 0 {
		return nil, fmt.Errorf("%w: at least one seat is required", ErrValidation)
	}
	seen := make(map[string]bool, len(seatNumbers))
	for _, num := range seatNumbers {
		// Seat labels end up pipe-delimited and comma-joined on disk.
		if strings.ContainsAny(num, "|,") {
			return nil, fmt.Errorf("%w: seat %s contains a store delimiter", ErrValidation, num)
		}
		if seen[num] {
			return nil, fmt.Errorf("%w: duplicate seat %s in request", ErrValidation, num)
		}
		seen[num] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var movie *model.Movie
	for _, m := range s.movies {
		if m.ID == movieID {
			movie = m
			break
		}
	}
	if movie == nil {
		return nil, ErrMovieNotFound
	}
	showtime := movie.FindShowtime(showtimeID)
	if showtime == nil {
		return nil, ErrShowtimeNotFound
	}
	if err := showtime.ReserveAll(seatNumbers); err != nil {
		return nil, err
	}

	s.bookingCounter++
	booking := model.NewBooking(
		"B"+strconv.Itoa(s.bookingCounter),
		customerName,
		movie.Title,
		showtime.ID,
		append([]string(nil), seatNumbers...),
		time.Now(),
	)
	s.bookings = append(s.bookings, booking)
	return booking, s.flushBothLocked()
}

// CancelBooking releases the booking's seats and removes its record,
// then persists both stores.  Seat release is best-effort: a seat
// already free is logged and skipped, and when the referenced movie
// or showtime no longer exists the booking is treated as an orphan
// and removed without touching any seat.
func (s *Store) CancelBooking(bookingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, b := range s.bookings {
		if b.BookingID == bookingID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrBookingNotFound
	}
	booking := s.bookings[idx]

	showtime := s.resolveBookingShowtimeLocked(booking)
	if showtime == nil {
		log.Printf("inventory: booking %s references missing movie/showtime, removing orphaned record", booking.BookingID)
	} else {
		for _, num := range booking.SeatNumbers {
			if err := showtime.Cancel(num); err != nil {
				log.Printf("inventory: releasing seat %s of booking %s: %v", num, booking.BookingID, err)
			}
		}
	}
	s.bookings = append(s.bookings[:idx], s.bookings[idx+1:]...)
	return s.flushBothLocked()
}

// resolveBookingShowtimeLocked finds the showtime a booking refers
// to, matching movie title first and showtime id within it, the same
// way tickets are resolved for display.  Callers must hold s.mu.
func (s *Store) resolveBookingShowtimeLocked(b *model.Booking) *model.Showtime {
	for _, m := range s.movies {
		if m.Title != b.MovieTitle {
			continue
		}
		if st := m.FindShowtime(b.ShowtimeID); st != nil {
			return st
		}
	}
	return nil
}

// Stats summarizes the inventory for the admin view.
type Stats struct {
	Movies      int `json:"movies"`
	Showtimes   int `json:"showtimes"`
	Bookings    int `json:"bookings"`
	BookedSeats int `json:"booked_seats"`
}

// Statistics returns current totals across the whole inventory.
func (s *Store) Statistics() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := Stats{Movies: len(s.movies), Bookings: len(s.bookings)}
	for _, m := range s.movies {
		st.Showtimes += len(m.Showtimes)
	}
	for _, b := range s.bookings {
		st.BookedSeats += len(b.SeatNumbers)
	}
	return st
}

// ClearAll wipes movies and bookings, resets the id counters and
// persists both (now empty) stores.
func (s *Store) ClearAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.movies = nil
	s.bookings = nil
	s.movieCounter = 0
	s.showtimeCounter = 0
	s.bookingCounter = 0
	return s.flushBothLocked()
}

// flushMoviesLocked persists the movies store.  Callers must hold
// s.mu.  A failure is logged and wrapped in ErrPersistence; the
// in-memory mutation is not rolled back.
func (s *Store) flushMoviesLocked() error {
	if err := s.moviePersist.Save(s.movies); err != nil {
		log.Printf("inventory: flushing movies store: %v", err)
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

// flushBothLocked persists movies and bookings.  Callers must hold
// s.mu.  Both files are written even if the first fails, so the
// stores drift as little as possible.
func (s *Store) flushBothLocked() error {
	movieErr := s.moviePersist.Save(s.movies)
	if movieErr != nil {
		log.Printf("inventory: flushing movies store: %v", movieErr)
	}
	bookingErr := s.bookingPersist.Save(s.bookings)
	if bookingErr != nil {
		log.Printf("inventory: flushing bookings store: %v", bookingErr)
	}
	if movieErr != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, movieErr)
	}
	if bookingErr != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, bookingErr)
	}
	return nil
}
