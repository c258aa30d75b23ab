package model

// Movie groups the showtimes of one film.  A movie owns its showtimes
// exclusively; they are never shared between movies.  The Showtimes
// slice is mutated only by the inventory store under its own lock.
//
// Fields:
//  ID              – unique identifier (e.g. "M2").
//  Title           – display title of the film.
//  DurationMinutes – running time, always positive.
//  Showtimes       – ordered screenings of this movie.
type Movie struct {
	ID              string
	Title           string
	DurationMinutes int
	Showtimes       []*Showtime
}

// NewMovie returns a movie without showtimes.
func NewMovie(id, title string, durationMinutes int) *Movie {
	return &Movie{ID: id, Title: title, DurationMinutes: durationMinutes}
}

// FindShowtime returns the showtime with the given id, or nil.
func (m *Movie) FindShowtime(showtimeID string) *Showtime {
	for _, st := range m.Showtimes {
		if st.ID == showtimeID {
			return st
		}
	}
	return nil
}
