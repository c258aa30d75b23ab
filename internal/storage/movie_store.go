package storage

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/iliyamo/cinema-ticket-booking/internal/model"
)

// MovieStore reads and writes the movies file.  The format is a flat
// sequence of records where nesting is positional:
//
//	MOVIE|M1|Inception|148
//	SHOWTIME|S1|2026-09-01 14:00:00|20
//	SEAT|A1|false
//
// A SHOWTIME record attaches to the most recently seen MOVIE and a
// SEAT record to the most recently seen SHOWTIME.  Records appearing
// before their header, and records with the wrong field count, are
// dropped.
type MovieStore struct {
	path string
	mu   sync.Mutex // serializes writers
}

// NewMovieStore returns a store backed by the given file path.
func NewMovieStore(path string) *MovieStore {
	return &MovieStore{path: path}
}

// Load reads every recoverable movie from the file.  A missing file
// yields an empty slice and no error.
func (s *MovieStore) Load() ([]*model.Movie, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open movies store: %w", err)
	}
	defer f.Close()

	var (
		movies   []*model.Movie
		movie    *model.Movie
		showtime *model.Showtime
	)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		parts := strings.Split(line, "|")
		switch parts[0] {
		case "MOVIE":
			if len(parts) != 4 {
				log.Printf("movies store: skipping malformed movie record: %q", line)
				continue
			}
			duration, err := strconv.Atoi(parts[3])
			if err != nil {
				log.Printf("movies store: skipping movie with bad duration: %q", line)
				continue
			}
			movie = model.NewMovie(parts[1], parts[2], duration)
			movies = append(movies, movie)
			showtime = nil
		case "SHOWTIME":
			if len(parts) != 4 || movie == nil {
				log.Printf("movies store: skipping orphaned or malformed showtime record: %q", line)
				continue
			}
			start, err := time.Parse(TimeLayout, parts[2])
			if err != nil {
				log.Printf("movies store: skipping showtime with bad timestamp: %q", line)
				continue
			}
			total, err := strconv.Atoi(parts[3])
			if err != nil {
				log.Printf("movies store: skipping showtime with bad seat count: %q", line)
				continue
			}
			showtime = model.NewEmptyShowtime(parts[1], start, total)
			movie.Showtimes = append(movie.Showtimes, showtime)
		case "SEAT":
			if len(parts) != 3 || showtime == nil {
				log.Printf("movies store: skipping orphaned or malformed seat record: %q", line)
				continue
			}
			booked, err := strconv.ParseBool(parts[2])
			if err != nil {
				log.Printf("movies store: skipping seat with bad booked flag: %q", line)
				continue
			}
			showtime.AppendSeat(&model.Seat{SeatNumber: parts[1], IsBooked: booked})
		default:
			log.Printf("movies store: skipping unknown record: %q", line)
		}
	}
	if err := scanner.Err(); err != nil {
		return movies, fmt.Errorf("read movies store: %w", err)
	}
	return movies, nil
}

// Save rewrites the whole movies file from the given entities.
func (s *MovieStore) Save(movies []*model.Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var b strings.Builder
	for _, m := range movies {
		fmt.Fprintf(&b, "MOVIE|%s|%s|%d\n", m.ID, m.Title, m.DurationMinutes)
		for _, st := range m.Showtimes {
			fmt.Fprintf(&b, "SHOWTIME|%s|%s|%d\n", st.ID, st.StartTime.Format(TimeLayout), st.TotalSeats)
			for _, seat := range st.SeatStates() {
				fmt.Fprintf(&b, "SEAT|%s|%t\n", seat.SeatNumber, seat.IsBooked)
			}
		}
	}
	if err := writeAtomic(s.path, []byte(b.String())); err != nil {
		return fmt.Errorf("save movies store: %w", err)
	}
	return nil
}
