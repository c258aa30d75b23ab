package storage

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/iliyamo/cinema-ticket-booking/internal/model"
)

// BookingStore reads and writes the bookings file, one record per
// line:
//
//	B3|alice|Inception|S1|A1,A2|2026-08-29 19:12:45
//
// The seat list is comma-joined.  Lines that do not split into six
// fields or carry an unparseable timestamp are skipped.
type BookingStore struct {
	path string
	mu   sync.Mutex // serializes writers
}

// NewBookingStore returns a store backed by the given file path.
func NewBookingStore(path string) *BookingStore {
	return &BookingStore{path: path}
}

// Load reads every recoverable booking from the file.  A missing file
// yields an empty slice and no error.
func (s *BookingStore) Load() ([]*model.Booking, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open bookings store: %w", err)
	}
	defer f.Close()

	var bookings []*model.Booking
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		parts := strings.Split(line, "|")
		if len(parts) != 6 {
			log.Printf("bookings store: skipping malformed record: %q", line)
			continue
		}
		bookedAt, err := time.Parse(TimeLayout, parts[5])
		if err != nil {
			log.Printf("bookings store: skipping record with bad timestamp: %q", line)
			continue
		}
		var seats []string
		if parts[4] != "" {
			seats = strings.Split(parts[4], ",")
		}
		bookings = append(bookings, model.NewBooking(parts[0], parts[1], parts[2], parts[3], seats, bookedAt))
	}
	if err := scanner.Err(); err != nil {
		return bookings, fmt.Errorf("read bookings store: %w", err)
	}
	return bookings, nil
}

// Save rewrites the whole bookings file from the given records.
func (s *BookingStore) Save(bookings []*model.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var b strings.Builder
	for _, bk := range bookings {
		fmt.Fprintf(&b, "%s|%s|%s|%s|%s|%s\n",
			bk.BookingID, bk.CustomerName, bk.MovieTitle, bk.ShowtimeID,
			strings.Join(bk.SeatNumbers, ","), bk.BookingTime.Format(TimeLayout))
	}
	if err := writeAtomic(s.path, []byte(b.String())); err != nil {
		return fmt.Errorf("save bookings store: %w", err)
	}
	return nil
}
