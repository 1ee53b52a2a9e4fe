package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/lamergameryt/entrypoint/internal/domain"
)

const (
	codeInvalidRequestBody   = "invalid_request_body"
	codeMissingRequiredField = "missing_required_field"
	codeInvalidStartDate     = "invalid_start_date"
	codeInvalidID            = "invalid_id"
	codeEventNameRequired    = "event_name_required"
	codeEventStartRequired   = "event_start_required"
	codeSeatNumberRequired   = "seat_number_required"
	codeEventNotFound        = "event_not_found"
	codeTicketNotFound       = "ticket_not_found"
	codeSeatTaken            = "seat_taken"
	codeEmailTaken           = "email_taken"
	codeInvalidCredentials   = "invalid_credentials"
	codeNotFound             = "not_found"
	codeInternalError        = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(c echo.Context, status int, code, msg string) error {
	return c.JSON(status, errorResponse{Error: msg, Code: code})
}

// serviceError maps domain errors onto transport responses. Unclassified
// errors are reported as internal and never dressed up as a known kind.
func serviceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrEventNameRequired):
		return writeError(c, http.StatusBadRequest, codeEventNameRequired, err.Error())
	case errors.Is(err, domain.ErrEventStartRequired):
		return writeError(c, http.StatusBadRequest, codeEventStartRequired, err.Error())
	case errors.Is(err, domain.ErrSeatNumberRequired):
		return writeError(c, http.StatusBadRequest, codeSeatNumberRequired, err.Error())
	case errors.Is(err, domain.ErrUserNameRequired),
		errors.Is(err, domain.ErrEmailRequired),
		errors.Is(err, domain.ErrPasswordRequired):
		return writeError(c, http.StatusBadRequest, codeMissingRequiredField, err.Error())
	case errors.Is(err, domain.ErrInvalidID):
		return writeError(c, http.StatusBadRequest, codeInvalidID, err.Error())
	case errors.Is(err, domain.ErrEventNotFound):
		return writeError(c, http.StatusNotFound, codeEventNotFound, err.Error())
	case errors.Is(err, domain.ErrTicketNotFound):
		return writeError(c, http.StatusNotFound, codeTicketNotFound, err.Error())
	case errors.Is(err, domain.ErrSeatTaken):
		return writeError(c, http.StatusConflict, codeSeatTaken, err.Error())
	case errors.Is(err, domain.ErrEmailTaken):
		return writeError(c, http.StatusConflict, codeEmailTaken, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		return writeError(c, http.StatusUnauthorized, codeInvalidCredentials, err.Error())
	default:
		return writeError(c, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}
