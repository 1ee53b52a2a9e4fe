package app

import (
	"context"
	"errors"

	"github.com/lamergameryt/entrypoint/internal/domain"
)

type TicketRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	ListByEvent(ctx context.Context, eventID int64) ([]domain.Ticket, error)
	ListByEventAndStatus(ctx context.Context, eventID int64, status domain.TicketStatus) ([]domain.Ticket, error)
	CreateTicket(ctx context.Context, ticket domain.Ticket) (domain.Ticket, error)
	DeleteTicket(ctx context.Context, ticketID, eventID int64) error
}

// EventDirectory is the slice of the event catalog the ticket service needs:
// existence checks that participate in the surrounding transaction.
type EventDirectory interface {
	EventExists(ctx context.Context, eventID int64) (bool, error)
}

type TicketService struct {
	tickets TicketRepository
	events  EventDirectory
}

func NewTicketService(tickets TicketRepository, events EventDirectory) *TicketService {
	return &TicketService{
		tickets: tickets,
		events:  events,
	}
}

// AvailableForEvent returns the event's NOT_BOOKED tickets. An unknown event
// id yields an empty list, not an error. No seat ordering is promised.
func (s *TicketService) AvailableForEvent(ctx context.Context, eventID int64) ([]domain.Ticket, error) {
	if eventID <= 0 {
		return nil, domain.ErrInvalidID
	}
	return s.tickets.ListByEventAndStatus(ctx, eventID, domain.TicketStatusNotBooked)
}

// AllForEvent returns every ticket for the event regardless of status.
func (s *TicketService) AllForEvent(ctx context.Context, eventID int64) ([]domain.Ticket, error) {
	if eventID <= 0 {
		return nil, domain.ErrInvalidID
	}
	return s.tickets.ListByEvent(ctx, eventID)
}

// CreateTicket checks the event and inserts the ticket in one transaction,
// so a ticket can never commit pointing at a missing event. Duplicate seats
// are resolved by the storage unique constraint, not a pre-check.
func (s *TicketService) CreateTicket(ctx context.Context, eventID int64, seatNumber string) (domain.Ticket, error) {
	if eventID <= 0 {
		return domain.Ticket{}, domain.ErrInvalidID
	}
	if seatNumber == "" {
		return domain.Ticket{}, domain.ErrSeatNumberRequired
	}

	var created domain.Ticket
	err := s.tickets.WithTx(ctx, func(txCtx context.Context) error {
		exists, err := s.events.EventExists(txCtx, eventID)
		if err != nil {
			return err
		}
		if !exists {
			return domain.EventNotFound(eventID)
		}

		ticket := domain.Ticket{
			EventID:    eventID,
			SeatNumber: seatNumber,
			Status:     domain.TicketStatusNotBooked,
		}
		created, err = s.tickets.CreateTicket(txCtx, ticket)
		if err != nil {
			if errors.Is(err, domain.ErrEventNotFound) {
				return domain.EventNotFound(eventID)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return domain.Ticket{}, err
	}
	return created, nil
}

// DeleteTicket removes the ticket matching both ids atomically. The compound
// predicate lives in a single DELETE statement; there is no read-then-act
// window where a ticket could be deleted through the wrong event.
func (s *TicketService) DeleteTicket(ctx context.Context, eventID, ticketID int64) error {
	if eventID <= 0 || ticketID <= 0 {
		return domain.ErrInvalidID
	}
	if err := s.tickets.DeleteTicket(ctx, ticketID, eventID); err != nil {
		if errors.Is(err, domain.ErrTicketNotFound) {
			return domain.TicketNotFound(ticketID)
		}
		return err
	}
	return nil
}
