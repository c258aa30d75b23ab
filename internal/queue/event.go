// Package queue defines message payloads exchanged over the message
// broker and the background consumer that materializes them.
package queue

// BookingConfirmedEvent is published after a booking transaction has
// committed and persisted.  It carries enough for downstream
// consumers to log or notify without querying the inventory.
type BookingConfirmedEvent struct {
	BookingID    string   `json:"booking_id"`
	CustomerName string   `json:"customer_name"`
	MovieTitle   string   `json:"movie_title"`
	ShowtimeID   string   `json:"showtime_id"`
	Seats        []string `json:"seats"`
	BookedAt     string   `json:"booked_at"`
}
