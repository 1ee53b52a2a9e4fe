package domain

import "time"

// Event represents a bookable happening with a fixed start time.
// StartDate is immutable once the event is created; there is no update path.
type Event struct {
	ID          int64
	Name        string
	Description string
	StartDate   time.Time
	// Performers are opaque tags attached to the event. Read paths always
	// return them fully loaded.
	Performers []string
}
