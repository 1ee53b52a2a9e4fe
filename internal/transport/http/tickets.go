package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/lamergameryt/entrypoint/internal/domain"
)

// TicketService is the minimal interface the ticket endpoints need.
type TicketService interface {
	AvailableForEvent(ctx context.Context, eventID int64) ([]domain.Ticket, error)
	CreateTicket(ctx context.Context, eventID int64, seatNumber string) (domain.Ticket, error)
	DeleteTicket(ctx context.Context, eventID, ticketID int64) error
}

type ticketResponse struct {
	ID         int64  `json:"id"`
	EventID    int64  `json:"event_id"`
	SeatNumber string `json:"seat_number"`
	Status     string `json:"status"`
}

func toTicketResponse(ticket domain.Ticket) ticketResponse {
	return ticketResponse{
		ID:         ticket.ID,
		EventID:    ticket.EventID,
		SeatNumber: ticket.SeatNumber,
		Status:     string(ticket.Status),
	}
}

func pathID(c echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// ListTicketsForEvent returns the available (not booked) tickets for an
// event. An unknown event id yields an empty list, matching the create path's
// stricter not-found only on writes.
func (s *Server) ListTicketsForEvent(c echo.Context) error {
	eventID, ok := pathID(c, "eventId")
	if !ok {
		return writeError(c, http.StatusBadRequest, codeInvalidID, domain.ErrInvalidID.Error())
	}

	tickets, err := s.tickets.AvailableForEvent(c.Request().Context(), eventID)
	if err != nil {
		return serviceError(c, err)
	}
	resp := make([]ticketResponse, 0, len(tickets))
	for _, ticket := range tickets {
		resp = append(resp, toTicketResponse(ticket))
	}
	return c.JSON(http.StatusOK, resp)
}

type createTicketRequest struct {
	SeatNumber string `json:"seat_number"`
}

func (s *Server) CreateTicketForEvent(c echo.Context) error {
	eventID, ok := pathID(c, "eventId")
	if !ok {
		return writeError(c, http.StatusBadRequest, codeInvalidID, domain.ErrInvalidID.Error())
	}

	var req createTicketRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
	}
	if req.SeatNumber == "" {
		return writeError(c, http.StatusBadRequest, codeSeatNumberRequired, domain.ErrSeatNumberRequired.Error())
	}

	ticket, err := s.tickets.CreateTicket(c.Request().Context(), eventID, req.SeatNumber)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, toTicketResponse(ticket))
}

func (s *Server) DeleteTicketForEvent(c echo.Context) error {
	eventID, ok := pathID(c, "eventId")
	if !ok {
		return writeError(c, http.StatusBadRequest, codeInvalidID, domain.ErrInvalidID.Error())
	}
	ticketID, ok := pathID(c, "ticketId")
	if !ok {
		return writeError(c, http.StatusBadRequest, codeInvalidID, domain.ErrInvalidID.Error())
	}

	if err := s.tickets.DeleteTicket(c.Request().Context(), eventID, ticketID); err != nil {
		return serviceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
