package http

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/lamergameryt/entrypoint/internal/app"
	"github.com/lamergameryt/entrypoint/internal/domain"
)

// EventService is the minimal interface the event endpoints need.
type EventService interface {
	CreateEvent(ctx context.Context, in app.CreateEventInput) (domain.Event, error)
	AvailableEvents(ctx context.Context) ([]domain.Event, error)
	SearchEvents(ctx context.Context, name string, startsAfter time.Time) ([]domain.Event, error)
	DeleteEvent(ctx context.Context, eventID int64) error
}

type eventResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"start_date"`
	Performers  []string  `json:"performers"`
}

func toEventResponse(event domain.Event) eventResponse {
	performers := event.Performers
	if performers == nil {
		performers = []string{}
	}
	return eventResponse{
		ID:          event.ID,
		Name:        event.Name,
		Description: event.Description,
		StartDate:   event.StartDate,
		Performers:  performers,
	}
}

func toEventResponses(events []domain.Event) []eventResponse {
	resp := make([]eventResponse, 0, len(events))
	for _, event := range events {
		resp = append(resp, toEventResponse(event))
	}
	return resp
}

// ListAvailableEvents returns events starting within the booking window.
// Past events are never returned since their tickets cannot be booked.
func (s *Server) ListAvailableEvents(c echo.Context) error {
	events, err := s.events.AvailableEvents(c.Request().Context())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, toEventResponses(events))
}

type createEventRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	StartDate   string   `json:"start_date"`
	Performers  []string `json:"performers"`
}

func (s *Server) CreateEvent(c echo.Context) error {
	var req createEventRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
	}
	if req.Name == "" {
		return writeError(c, http.StatusBadRequest, codeEventNameRequired, domain.ErrEventNameRequired.Error())
	}
	if req.StartDate == "" {
		return writeError(c, http.StatusBadRequest, codeEventStartRequired, domain.ErrEventStartRequired.Error())
	}
	startDate, err := time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		return writeError(c, http.StatusBadRequest, codeInvalidStartDate, "invalid start_date format, want RFC 3339")
	}

	event, err := s.events.CreateEvent(c.Request().Context(), app.CreateEventInput{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   startDate,
		Performers:  req.Performers,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, toEventResponse(event))
}

// SearchEvents filters by name substring AND start date. Both filters apply;
// a missing starts_after lower bound defaults to now in the service.
func (s *Server) SearchEvents(c echo.Context) error {
	name := c.QueryParam("name")
	if name == "" {
		return writeError(c, http.StatusBadRequest, codeMissingRequiredField, "name query parameter is required")
	}

	var startsAfter time.Time
	if raw := c.QueryParam("starts_after"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return writeError(c, http.StatusBadRequest, codeInvalidStartDate, "invalid starts_after format, want RFC 3339")
		}
		startsAfter = parsed
	}

	events, err := s.events.SearchEvents(c.Request().Context(), name, startsAfter)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, toEventResponses(events))
}

// DeleteEvent removes an event and cascades to all its tickets in one
// transaction.
func (s *Server) DeleteEvent(c echo.Context) error {
	eventID, ok := pathID(c, "eventId")
	if !ok {
		return writeError(c, http.StatusBadRequest, codeInvalidID, domain.ErrInvalidID.Error())
	}
	if err := s.events.DeleteEvent(c.Request().Context(), eventID); err != nil {
		return serviceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
