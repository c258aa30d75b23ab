package inventory

import (
	"log"
	"time"
)

// sampleMovie describes one seeded film and its screenings.
type sampleMovie struct {
	title      string
	duration   int
	seatPrefix string
	starts     []time.Time
}

// SeedSampleData populates an empty store with a small catalogue so a
// fresh install has something to book: three movies, five showtimes,
// twenty seats each.  It is a no-op when the store already holds
// movies.
func (s *Store) SeedSampleData() error {
	if len(s.Movies()) > 0 {
		return nil
	}
	log.Printf("inventory: movies store is empty, creating sample data")

	tomorrow := time.Now().AddDate(0, 0, 1)
	at := func(days, hour, minute int) time.Time {
		return time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(),
			hour, minute, 0, 0, time.Local).AddDate(0, 0, days-1)
	}

	samples := []sampleMovie{
		{"Inception", 148, "A", []time.Time{at(1, 14, 0), at(1, 18, 30)}},
		{"The Dark Knight", 152, "B", []time.Time{at(1, 17, 30), at(2, 15, 0)}},
		{"Interstellar", 169, "C", []time.Time{at(3, 19, 0)}},
	}
	for _, sm := range samples {
		movie, err := s.AddMovie(sm.title, sm.duration)
		if err != nil {
			return err
		}
		for _, start := range sm.starts {
			if _, err := s.AddShowtime(movie.ID, start, 20, sm.seatPrefix); err != nil {
				return err
			}
		}
	}
	return nil
}
