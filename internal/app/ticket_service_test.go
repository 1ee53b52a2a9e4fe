package app

import (
	"context"
	"errors"
	"testing"

	"github.com/lamergameryt/entrypoint/internal/domain"
)

type fakeTicketRepo struct {
	tickets []domain.Ticket

	listedEventID int64
	listedStatus  domain.TicketStatus

	createdTicket domain.Ticket
	createCalled  bool
	createErr     error

	deletedTicketID int64
	deletedEventID  int64
	deleteErr       error
}

func (f *fakeTicketRepo) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeTicketRepo) ListByEvent(ctx context.Context, eventID int64) ([]domain.Ticket, error) {
	f.listedEventID = eventID
	return f.tickets, nil
}

func (f *fakeTicketRepo) ListByEventAndStatus(ctx context.Context, eventID int64, status domain.TicketStatus) ([]domain.Ticket, error) {
	f.listedEventID = eventID
	f.listedStatus = status
	return f.tickets, nil
}

func (f *fakeTicketRepo) CreateTicket(ctx context.Context, ticket domain.Ticket) (domain.Ticket, error) {
	f.createCalled = true
	f.createdTicket = ticket
	if f.createErr != nil {
		return domain.Ticket{}, f.createErr
	}
	ticket.ID = 7
	return ticket, nil
}

func (f *fakeTicketRepo) DeleteTicket(ctx context.Context, ticketID, eventID int64) error {
	f.deletedTicketID = ticketID
	f.deletedEventID = eventID
	return f.deleteErr
}

type fakeEventDirectory struct {
	exists bool
}

func (f *fakeEventDirectory) EventExists(ctx context.Context, eventID int64) (bool, error) {
	return f.exists, nil
}

func TestTicketService_CreateTicket_MissingEvent(t *testing.T) {
	repo := &fakeTicketRepo{}
	svc := NewTicketService(repo, &fakeEventDirectory{exists: false})

	_, err := svc.CreateTicket(context.Background(), 9999, "A1")
	if !errors.Is(err, domain.ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
	if err.Error() != "Event with id 9999 does not exist" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
	if repo.createCalled {
		t.Fatalf("expected no insert for missing event")
	}
}

func TestTicketService_CreateTicket_DefaultsNotBooked(t *testing.T) {
	repo := &fakeTicketRepo{}
	svc := NewTicketService(repo, &fakeEventDirectory{exists: true})

	ticket, err := svc.CreateTicket(context.Background(), 3, "A1")
	if err != nil {
		t.Fatalf("create ticket: %v", err)
	}
	if ticket.ID != 7 || ticket.EventID != 3 || ticket.SeatNumber != "A1" {
		t.Fatalf("unexpected ticket: %+v", ticket)
	}
	if repo.createdTicket.Status != domain.TicketStatusNotBooked {
		t.Fatalf("expected NOT_BOOKED default, got %s", repo.createdTicket.Status)
	}
}

func TestTicketService_CreateTicket_SurfacesSeatConflict(t *testing.T) {
	repo := &fakeTicketRepo{createErr: domain.ErrSeatTaken}
	svc := NewTicketService(repo, &fakeEventDirectory{exists: true})

	_, err := svc.CreateTicket(context.Background(), 3, "A1")
	if !errors.Is(err, domain.ErrSeatTaken) {
		t.Fatalf("expected ErrSeatTaken, got %v", err)
	}
}

func TestTicketService_CreateTicket_ValidatesInput(t *testing.T) {
	repo := &fakeTicketRepo{}
	svc := NewTicketService(repo, &fakeEventDirectory{exists: true})
	ctx := context.Background()

	_, err := svc.CreateTicket(ctx, 0, "A1")
	if err != domain.ErrInvalidID {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}

	_, err = svc.CreateTicket(ctx, 3, "")
	if err != domain.ErrSeatNumberRequired {
		t.Fatalf("expected ErrSeatNumberRequired, got %v", err)
	}
}

func TestTicketService_AvailableForEvent_FiltersNotBooked(t *testing.T) {
	repo := &fakeTicketRepo{tickets: []domain.Ticket{{ID: 1, EventID: 3, SeatNumber: "A1", Status: domain.TicketStatusNotBooked}}}
	svc := NewTicketService(repo, &fakeEventDirectory{exists: true})

	tickets, err := svc.AvailableForEvent(context.Background(), 3)
	if err != nil {
		t.Fatalf("available for event: %v", err)
	}
	if len(tickets) != 1 {
		t.Fatalf("expected 1 ticket, got %d", len(tickets))
	}
	if repo.listedEventID != 3 || repo.listedStatus != domain.TicketStatusNotBooked {
		t.Fatalf("unexpected filter: event=%d status=%s", repo.listedEventID, repo.listedStatus)
	}
}

func TestTicketService_DeleteTicket_WrapsNotFound(t *testing.T) {
	repo := &fakeTicketRepo{deleteErr: domain.ErrTicketNotFound}
	svc := NewTicketService(repo, &fakeEventDirectory{exists: true})

	err := svc.DeleteTicket(context.Background(), 3, 55)
	if !errors.Is(err, domain.ErrTicketNotFound) {
		t.Fatalf("expected ErrTicketNotFound, got %v", err)
	}
	if err.Error() != "Ticket with id 55 does not exist" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestTicketService_DeleteTicket_PassesBothIDs(t *testing.T) {
	repo := &fakeTicketRepo{}
	svc := NewTicketService(repo, &fakeEventDirectory{exists: true})

	if err := svc.DeleteTicket(context.Background(), 3, 55); err != nil {
		t.Fatalf("delete ticket: %v", err)
	}
	if repo.deletedTicketID != 55 || repo.deletedEventID != 3 {
		t.Fatalf("unexpected delete predicate: ticket=%d event=%d", repo.deletedTicketID, repo.deletedEventID)
	}
}
