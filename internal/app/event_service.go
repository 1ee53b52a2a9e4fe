package app

import (
	"context"
	"errors"
	"time"

	"github.com/lamergameryt/entrypoint/internal/clock"
	"github.com/lamergameryt/entrypoint/internal/domain"
)

type EventRepository interface {
	CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error)
	EventExists(ctx context.Context, eventID int64) (bool, error)
	FilterEvents(ctx context.Context, after, until time.Time) ([]domain.Event, error)
	SearchEvents(ctx context.Context, name string, startsAfter time.Time) ([]domain.Event, error)
	SearchEventsWithin(ctx context.Context, name string, after, until time.Time) ([]domain.Event, error)
	DeleteEvent(ctx context.Context, eventID int64) error
}

// availabilityWindow is how far ahead an event may start and still count as
// available. Fixed product policy: "available" means bookable soon, not any
// future event.
const availabilityWindow = 10 * 24 * time.Hour

type EventService struct {
	repo  EventRepository
	clock clock.Clock
}

func NewEventService(repo EventRepository, clk clock.Clock) *EventService {
	return &EventService{
		repo:  repo,
		clock: clk,
	}
}

type CreateEventInput struct {
	Name        string
	Description string
	StartDate   time.Time
	Performers  []string
}

func (s *EventService) CreateEvent(ctx context.Context, in CreateEventInput) (domain.Event, error) {
	if in.Name == "" {
		return domain.Event{}, domain.ErrEventNameRequired
	}
	if in.StartDate.IsZero() {
		return domain.Event{}, domain.ErrEventStartRequired
	}

	event := domain.Event{
		Name:        in.Name,
		Description: in.Description,
		StartDate:   in.StartDate,
		Performers:  in.Performers,
	}
	created, err := s.repo.CreateEvent(ctx, event)
	if err != nil {
		return domain.Event{}, err
	}
	if created.Performers == nil {
		created.Performers = []string{}
	}
	return created, nil
}

// AvailableEvents returns events starting in (now, now+10d].
func (s *EventService) AvailableEvents(ctx context.Context) ([]domain.Event, error) {
	now := s.clock.Now()
	return s.repo.FilterEvents(ctx, now, now.Add(availabilityWindow))
}

// SearchEvents returns events whose name contains the given substring
// (case-insensitive) and which start strictly after startsAfter. A zero
// startsAfter defaults to now.
func (s *EventService) SearchEvents(ctx context.Context, name string, startsAfter time.Time) ([]domain.Event, error) {
	if name == "" {
		return nil, domain.ErrEventNameRequired
	}
	if startsAfter.IsZero() {
		startsAfter = s.clock.Now()
	}
	return s.repo.SearchEvents(ctx, name, startsAfter)
}

// FilterEvents returns events starting in (after, until], optionally also
// filtered by a case-insensitive name substring.
func (s *EventService) FilterEvents(ctx context.Context, name string, after, until time.Time) ([]domain.Event, error) {
	if name == "" {
		return s.repo.FilterEvents(ctx, after, until)
	}
	return s.repo.SearchEventsWithin(ctx, name, after, until)
}

// DeleteEvent removes the event and all its tickets as one atomic unit.
func (s *EventService) DeleteEvent(ctx context.Context, eventID int64) error {
	if eventID <= 0 {
		return domain.ErrInvalidID
	}
	if err := s.repo.DeleteEvent(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return domain.EventNotFound(eventID)
		}
		return err
	}
	return nil
}
