package domain

import (
	"errors"
	"fmt"
)

var (
	// Validation errors fail before any storage access.
	ErrEventNameRequired  = errors.New("event name is required")
	ErrEventStartRequired = errors.New("event start date is required")
	ErrSeatNumberRequired = errors.New("seat number is required")
	ErrUserNameRequired   = errors.New("user name is required")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrInvalidID          = errors.New("invalid id")

	ErrEventNotFound  = errors.New("event not found")
	ErrTicketNotFound = errors.New("ticket not found")
	ErrUserNotFound   = errors.New("user not found")

	// ErrSeatTaken surfaces the (event_id, seat_number) unique constraint.
	// Concurrent creations for the same seat race at the storage layer;
	// exactly one wins and the loser gets this error.
	ErrSeatTaken = errors.New("seat is already taken for this event")

	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid credentials entered")
)

// notFoundError carries a resource-specific message while remaining
// matchable against the not-found sentinels via errors.Is.
type notFoundError struct {
	msg  string
	kind error
}

func (e *notFoundError) Error() string { return e.msg }

func (e *notFoundError) Unwrap() error { return e.kind }

// EventNotFound reports that no event with the given id exists.
func EventNotFound(id int64) error {
	return &notFoundError{
		msg:  fmt.Sprintf("Event with id %d does not exist", id),
		kind: ErrEventNotFound,
	}
}

// TicketNotFound reports that no ticket with the given id exists for the
// claimed event.
func TicketNotFound(id int64) error {
	return &notFoundError{
		msg:  fmt.Sprintf("Ticket with id %d does not exist", id),
		kind: ErrTicketNotFound,
	}
}
