package model

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestShowtime() *Showtime {
	return NewShowtime("S1", time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC), 5, "A")
}

func TestNewShowtime(t *testing.T) {
	st := newTestShowtime()

	assert.Equal(t, "S1", st.ID)
	assert.Equal(t, 5, st.TotalSeats)
	seats := st.SeatStates()
	require.Len(t, seats, 5)
	for i, seat := range seats {
		assert.Equal(t, []string{"A1", "A2", "A3", "A4", "A5"}[i], seat.SeatNumber)
		assert.False(t, seat.IsBooked)
	}
}

func TestShowtime_Reserve(t *testing.T) {
	t.Run("reserves a free seat", func(t *testing.T) {
		st := newTestShowtime()

		seat, err := st.Reserve("A3")

		require.NoError(t, err)
		assert.Equal(t, "A3", seat.SeatNumber)
		assert.True(t, seat.IsBooked)
		assert.False(t, st.IsSeatAvailable("A3"))
	})

	t.Run("rejects a booked seat", func(t *testing.T) {
		st := newTestShowtime()
		_, err := st.Reserve("A3")
		require.NoError(t, err)

		_, err = st.Reserve("A3")

		assert.ErrorIs(t, err, ErrSeatAlreadyReserved)
	})

	t.Run("rejects an unknown seat", func(t *testing.T) {
		st := newTestShowtime()

		_, err := st.Reserve("Z9")

		assert.ErrorIs(t, err, ErrSeatNotFound)
	})
}

func TestShowtime_Cancel(t *testing.T) {
	t.Run("cancel is the inverse of reserve", func(t *testing.T) {
		st := newTestShowtime()
		_, err := st.Reserve("A2")
		require.NoError(t, err)

		require.NoError(t, st.Cancel("A2"))

		assert.True(t, st.IsSeatAvailable("A2"))
	})

	t.Run("rejects a free seat", func(t *testing.T) {
		st := newTestShowtime()

		assert.ErrorIs(t, st.Cancel("A2"), ErrSeatNotReserved)
	})

	t.Run("rejects an unknown seat", func(t *testing.T) {
		st := newTestShowtime()

		assert.ErrorIs(t, st.Cancel("Z9"), ErrSeatNotFound)
	})
}

func TestShowtime_ReserveAll(t *testing.T) {
	t.Run("reserves every requested seat", func(t *testing.T) {
		st := newTestShowtime()

		require.NoError(t, st.ReserveAll([]string{"A1", "A2", "A3"}))

		assert.Equal(t, 3, st.BookedSeatCount())
	})

	t.Run("flips nothing when one seat conflicts", func(t *testing.T) {
		st := newTestShowtime()
		_, err := st.Reserve("A2")
		require.NoError(t, err)

		err = st.ReserveAll([]string{"A1", "A2", "A3"})

		assert.ErrorIs(t, err, ErrSeatAlreadyReserved)
		assert.True(t, st.IsSeatAvailable("A1"))
		assert.True(t, st.IsSeatAvailable("A3"))
		assert.Equal(t, 1, st.BookedSeatCount())
	})

	t.Run("flips nothing when one seat is unknown", func(t *testing.T) {
		st := newTestShowtime()

		err := st.ReserveAll([]string{"A1", "Z9"})

		assert.ErrorIs(t, err, ErrSeatNotFound)
		assert.Equal(t, 0, st.BookedSeatCount())
	})
}

func TestShowtime_AvailableSeats(t *testing.T) {
	st := newTestShowtime()
	_, err := st.Reserve("A1")
	require.NoError(t, err)

	available := st.AvailableSeats()

	labels := make([]string, 0, len(available))
	for _, seat := range available {
		labels = append(labels, seat.SeatNumber)
	}
	assert.Equal(t, []string{"A2", "A3", "A4", "A5"}, labels)
}

func TestShowtime_IsSeatAvailable(t *testing.T) {
	st := newTestShowtime()
	_, err := st.Reserve("A1")
	require.NoError(t, err)

	tests := []struct {
		name       string
		seatNumber string
		expected   bool
	}{
		{"free seat", "A2", true},
		{"booked seat", "A1", false},
		{"unknown seat", "Z9", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, st.IsSeatAvailable(tt.seatNumber))
		})
	}
}

func TestShowtime_ConcurrentReserve(t *testing.T) {
	st := newTestShowtime()

	const callers = 32
	var wg sync.WaitGroup
	var mu sync.Mutex
	wins, losses := 0, 0

	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			_, err := st.Reserve("A1")
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				wins++
			} else {
				assert.ErrorIs(t, err, ErrSeatAlreadyReserved)
				losses++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins, "exactly one caller must win the seat")
	assert.Equal(t, callers-1, losses)
	assert.Equal(t, 1, st.BookedSeatCount())
}
