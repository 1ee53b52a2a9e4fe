package domain

type TicketStatus string

const (
	TicketStatusNotBooked TicketStatus = "NOT_BOOKED"
	TicketStatusBooked    TicketStatus = "BOOKED"
)

// Ticket is a single sellable seat scoped to exactly one event. The seat
// number is unique within the event, enforced by the storage layer.
type Ticket struct {
	ID         int64
	EventID    int64
	SeatNumber string
	Status     TicketStatus
	// PurchasedByUserID is set by a future purchase flow; nothing in the
	// current surface transitions a ticket to BOOKED.
	PurchasedByUserID *int64
}
