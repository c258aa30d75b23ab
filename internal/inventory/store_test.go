package inventory

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-ticket-booking/internal/model"
	"github.com/iliyamo/cinema-ticket-booking/internal/storage"
)

// newTestStore builds a store flushing into a throwaway directory and
// returns the backing file stores for reload assertions.
func newTestStore(t *testing.T) (*Store, *storage.MovieStore, *storage.BookingStore) {
	t.Helper()
	dir := t.TempDir()
	movieStore := storage.NewMovieStore(filepath.Join(dir, "movies.txt"))
	bookingStore := storage.NewBookingStore(filepath.Join(dir, "bookings.txt"))
	return NewStore(movieStore, bookingStore), movieStore, bookingStore
}

// seedCinema adds one movie with one five-seat showtime (A1..A5).
func seedCinema(t *testing.T, s *Store) (*model.Movie, *model.Showtime) {
	t.Helper()
	movie, err := s.AddMovie("Inception", 148)
	require.NoError(t, err)
	showtime, err := s.AddShowtime(movie.ID, time.Now().Add(24*time.Hour), 5, "A")
	require.NoError(t, err)
	return movie, showtime
}

func TestStore_AddMovie(t *testing.T) {
	t.Run("assigns sequential ids", func(t *testing.T) {
		s, _, _ := newTestStore(t)

		first, err := s.AddMovie("Inception", 148)
		require.NoError(t, err)
		second, err := s.AddMovie("Interstellar", 169)
		require.NoError(t, err)

		assert.Equal(t, "M1", first.ID)
		assert.Equal(t, "M2", second.ID)
		assert.Len(t, s.Movies(), 2)
	})

	tests := []struct {
		name     string
		title    string
		duration int
	}{
		{"empty title", "", 120},
		{"blank title", "   ", 120},
		{"zero duration", "Inception", 0},
		{"negative duration", "Inception", -5},
		{"title with delimiter", "Mid|night Run", 120},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, _ := newTestStore(t)

			_, err := s.AddMovie(tt.title, tt.duration)

			assert.ErrorIs(t, err, ErrValidation)
			assert.Empty(t, s.Movies())
		})
	}
}

func TestStore_AddShowtime(t *testing.T) {
	t.Run("labels seats with the prefix", func(t *testing.T) {
		s, _, _ := newTestStore(t)
		movie, err := s.AddMovie("Inception", 148)
		require.NoError(t, err)

		showtime, err := s.AddShowtime(movie.ID, time.Now().Add(time.Hour), 3, "A")

		require.NoError(t, err)
		assert.Equal(t, "S1", showtime.ID)
		available := showtime.AvailableSeats()
		require.Len(t, available, 3)
		assert.Equal(t, "A1", available[0].SeatNumber)
		assert.Equal(t, "A3", available[2].SeatNumber)
	})

	t.Run("rejects an unknown movie", func(t *testing.T) {
		s, _, _ := newTestStore(t)

		_, err := s.AddShowtime("M9", time.Now().Add(time.Hour), 5, "A")

		assert.ErrorIs(t, err, ErrMovieNotFound)
	})

	t.Run("rejects seat counts outside 1..100", func(t *testing.T) {
		s, _, _ := newTestStore(t)
		movie, err := s.AddMovie("Inception", 148)
		require.NoError(t, err)

		_, err = s.AddShowtime(movie.ID, time.Now().Add(time.Hour), 0, "A")
		assert.ErrorIs(t, err, ErrValidation)
		_, err = s.AddShowtime(movie.ID, time.Now().Add(time.Hour), 101, "A")
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("rejects a seat prefix carrying store delimiters", func(t *testing.T) {
		s, _, _ := newTestStore(t)
		movie, err := s.AddMovie("Inception", 148)
		require.NoError(t, err)

		_, err = s.AddShowtime(movie.ID, time.Now().Add(time.Hour), 5, "A|")
		assert.ErrorIs(t, err, ErrValidation)
		_, err = s.AddShowtime(movie.ID, time.Now().Add(time.Hour), 5, "A,")
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestStore_BookingLifecycle(t *testing.T) {
	s, _, _ := newTestStore(t)
	movie, showtime := seedCinema(t, s)

	booking, err := s.CreateBooking("alice", movie.ID, showtime.ID, []string{"A1"})
	require.NoError(t, err)
	assert.Equal(t, "B1", booking.BookingID)
	assert.Equal(t, "Inception", booking.MovieTitle)

	available, err := s.AvailableSeats(showtime.ID)
	require.NoError(t, err)
	require.Len(t, available, 4)
	assert.Equal(t, "A2", available[0].SeatNumber)

	// A second customer racing for the same seat loses cleanly.
	_, err = s.CreateBooking("bob", movie.ID, showtime.ID, []string{"A1"})
	assert.ErrorIs(t, err, model.ErrSeatAlreadyReserved)
	assert.Len(t, s.AllBookings(), 1)

	require.NoError(t, s.CancelBooking(booking.BookingID))
	assert.Empty(t, s.AllBookings())
	available, err = s.AvailableSeats(showtime.ID)
	require.NoError(t, err)
	assert.Len(t, available, 5)
}

func TestStore_CreateBooking_StageThenCommit(t *testing.T) {
	s, _, _ := newTestStore(t)
	movie, showtime := seedCinema(t, s)
	_, err := s.CreateBooking("alice", movie.ID, showtime.ID, []string{"A2"})
	require.NoError(t, err)

	_, err = s.CreateBooking("bob", movie.ID, showtime.ID, []string{"A1", "A2", "A3"})

	assert.ErrorIs(t, err, model.ErrSeatAlreadyReserved)
	assert.True(t, showtime.IsSeatAvailable("A1"), "failed booking must not hold A1")
	assert.True(t, showtime.IsSeatAvailable("A3"), "failed booking must not hold A3")
	assert.Len(t, s.AllBookings(), 1)
}

func TestStore_CreateBooking_Validation(t *testing.T) {
	s, _, _ := newTestStore(t)
	movie, showtime := seedCinema(t, s)

	tests := []struct {
		name     string
		customer string
		seats    []string
	}{
		{"empty customer", "", []string{"A1"}},
		{"no seats", "alice", nil},
		{"duplicate seats", "alice", []string{"A1", "A1"}},
		{"customer with delimiter", "ali|ce", []string{"A1"}},
		{"seat with pipe", "alice", []string{"A|1"}},
		{"seat with comma", "alice", []string{"A,1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.CreateBooking(tt.customer, movie.ID, showtime.ID, tt.seats)

			assert.ErrorIs(t, err, ErrValidation)
		})
	}
	assert.Empty(t, s.AllBookings())
}

func TestStore_CreateBooking_NotFound(t *testing.T) {
	s, _, _ := newTestStore(t)
	movie, showtime := seedCinema(t, s)

	_, err := s.CreateBooking("alice", "M9", showtime.ID, []string{"A1"})
	assert.ErrorIs(t, err, ErrMovieNotFound)

	_, err = s.CreateBooking("alice", movie.ID, "S9", []string{"A1"})
	assert.ErrorIs(t, err, ErrShowtimeNotFound)

	_, err = s.CreateBooking("alice", movie.ID, showtime.ID, []string{"Z9"})
	assert.ErrorIs(t, err, model.ErrSeatNotFound)
}

func TestStore_CancelBooking(t *testing.T) {
	t.Run("unknown booking", func(t *testing.T) {
		s, _, _ := newTestStore(t)

		assert.ErrorIs(t, s.CancelBooking("B9"), ErrBookingNotFound)
	})

	t.Run("orphaned booking is removed without touching seats", func(t *testing.T) {
		s, _, _ := newTestStore(t)
		orphan := model.NewBooking("B1", "alice", "Gone Movie", "S9", []string{"A1"}, time.Now())
		s.Hydrate(nil, []*model.Booking{orphan})

		require.NoError(t, s.CancelBooking("B1"))

		assert.Empty(t, s.AllBookings())
	})
}

func TestStore_ConcurrentBooking_NoDoubleBooking(t *testing.T) {
	s, _, _ := newTestStore(t)
	movie, showtime := seedCinema(t, s)

	const callers = 16
	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0

	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			_, err := s.CreateBooking("alice", movie.ID, showtime.ID, []string{"A1"})
			if err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			} else {
				assert.ErrorIs(t, err, model.ErrSeatAlreadyReserved)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins, "the seat must be sold exactly once")
	assert.Len(t, s.AllBookings(), 1)
	assert.Equal(t, 1, showtime.BookedSeatCount())
}

func TestStore_RemoveMovie_Cascade(t *testing.T) {
	s, _, _ := newTestStore(t)
	movie, showtime := seedCinema(t, s)
	other, err := s.AddMovie("Interstellar", 169)
	require.NoError(t, err)
	otherShowtime, err := s.AddShowtime(other.ID, time.Now().Add(48*time.Hour), 5, "C")
	require.NoError(t, err)
	_, err = s.CreateBooking("alice", movie.ID, showtime.ID, []string{"A1"})
	require.NoError(t, err)
	_, err = s.CreateBooking("bob", other.ID, otherShowtime.ID, []string{"C1"})
	require.NoError(t, err)

	removed, err := s.RemoveMovie(movie.ID)

	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	_, err = s.FindMovieByID(movie.ID)
	assert.ErrorIs(t, err, ErrMovieNotFound)
	bookings := s.AllBookings()
	require.Len(t, bookings, 1)
	assert.Equal(t, "bob", bookings[0].CustomerName)
}

func TestStore_RemoveShowtime_Cascade(t *testing.T) {
	s, _, _ := newTestStore(t)
	movie, showtime := seedCinema(t, s)
	second, err := s.AddShowtime(movie.ID, time.Now().Add(48*time.Hour), 5, "B")
	require.NoError(t, err)
	_, err = s.CreateBooking("alice", movie.ID, showtime.ID, []string{"A1"})
	require.NoError(t, err)
	_, err = s.CreateBooking("alice", movie.ID, second.ID, []string{"B1"})
	require.NoError(t, err)

	removed, err := s.RemoveShowtime(showtime.ID)

	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	_, _, err = s.FindShowtime(showtime.ID)
	assert.ErrorIs(t, err, ErrShowtimeNotFound)
	assert.Len(t, s.BookingsOf("alice"), 1)

	_, err = s.RemoveShowtime("S9")
	assert.ErrorIs(t, err, ErrShowtimeNotFound)
}

func TestStore_CounterSeeding(t *testing.T) {
	s, _, _ := newTestStore(t)
	movies := []*model.Movie{
		model.NewMovie("M3", "Inception", 148),
		model.NewMovie("M7", "Interstellar", 169),
		model.NewMovie("M1", "Dunkirk", 106),
	}
	movies[0].Showtimes = append(movies[0].Showtimes,
		model.NewShowtime("S5", time.Now().Add(time.Hour), 3, "A"))
	bookings := []*model.Booking{
		model.NewBooking("B4", "alice", "Inception", "S5", []string{"A1"}, time.Now()),
	}
	s.Hydrate(movies, bookings)

	movie, err := s.AddMovie("Tenet", 150)
	require.NoError(t, err)
	assert.Equal(t, "M8", movie.ID, "counter must resume past the highest loaded id")

	showtime, err := s.AddShowtime(movie.ID, time.Now().Add(time.Hour), 2, "D")
	require.NoError(t, err)
	assert.Equal(t, "S6", showtime.ID)

	booking, err := s.CreateBooking("bob", movie.ID, showtime.ID, []string{"D1"})
	require.NoError(t, err)
	assert.Equal(t, "B5", booking.BookingID)
}

func TestStore_BookingsOf(t *testing.T) {
	s, _, _ := newTestStore(t)
	movie, showtime := seedCinema(t, s)
	_, err := s.CreateBooking("alice", movie.ID, showtime.ID, []string{"A1"})
	require.NoError(t, err)
	_, err = s.CreateBooking("bob", movie.ID, showtime.ID, []string{"A2"})
	require.NoError(t, err)
	_, err = s.CreateBooking("alice", movie.ID, showtime.ID, []string{"A3"})
	require.NoError(t, err)

	mine := s.BookingsOf("alice")

	require.Len(t, mine, 2)
	assert.Equal(t, []string{"A1"}, mine[0].SeatNumbers)
	assert.Equal(t, []string{"A3"}, mine[1].SeatNumbers)
	assert.Empty(t, s.BookingsOf("carol"))
}

func TestStore_Statistics(t *testing.T) {
	s, _, _ := newTestStore(t)
	movie, showtime := seedCinema(t, s)
	_, err := s.CreateBooking("alice", movie.ID, showtime.ID, []string{"A1", "A2"})
	require.NoError(t, err)

	stats := s.Statistics()

	assert.Equal(t, Stats{Movies: 1, Showtimes: 1, Bookings: 1, BookedSeats: 2}, stats)
}

func TestStore_ClearAll(t *testing.T) {
	s, _, _ := newTestStore(t)
	movie, showtime := seedCinema(t, s)
	_, err := s.CreateBooking("alice", movie.ID, showtime.ID, []string{"A1"})
	require.NoError(t, err)

	require.NoError(t, s.ClearAll())

	assert.Empty(t, s.Movies())
	assert.Empty(t, s.AllBookings())
	fresh, err := s.AddMovie("Inception", 148)
	require.NoError(t, err)
	assert.Equal(t, "M1", fresh.ID, "counters must reset with the data")
}

func TestStore_PersistenceRoundTrip(t *testing.T) {
	s, movieStore, bookingStore := newTestStore(t)
	movie, showtime := seedCinema(t, s)
	booking, err := s.CreateBooking("alice", movie.ID, showtime.ID, []string{"A1", "A2"})
	require.NoError(t, err)

	// A second store hydrated from the same files sees the same world.
	movies, err := movieStore.Load()
	require.NoError(t, err)
	bookings, err := bookingStore.Load()
	require.NoError(t, err)
	reloaded := NewStore(movieStore, bookingStore)
	reloaded.Hydrate(movies, bookings)

	got, err := reloaded.FindBooking(booking.BookingID)
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "A2"}, got.SeatNumbers)

	_, st, err := reloaded.FindShowtime(showtime.ID)
	require.NoError(t, err)
	assert.False(t, st.IsSeatAvailable("A1"), "booked seat must survive the reload")
	assert.True(t, st.IsSeatAvailable("A3"))
}

func TestStore_SeedSampleData(t *testing.T) {
	s, _, _ := newTestStore(t)

	require.NoError(t, s.SeedSampleData())
	stats := s.Statistics()
	assert.Equal(t, 3, stats.Movies)
	assert.Equal(t, 5, stats.Showtimes)

	// Seeding a populated store is a no-op.
	require.NoError(t, s.SeedSampleData())
	assert.Equal(t, 3, s.Statistics().Movies)
}
