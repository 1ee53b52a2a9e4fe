package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/lamergameryt/entrypoint/internal/assets"
	"github.com/lamergameryt/entrypoint/internal/domain"
)

// AssetService presigns object-storage URLs. Nil when the bucket integration
// is disabled; the poster endpoints then answer 404.
type AssetService interface {
	UploadURL(ctx context.Context, key string) (string, error)
	DownloadURL(ctx context.Context, key string) (string, error)
}

type posterURLResponse struct {
	URL string `json:"url"`
}

// EventPosterDownloadURL returns a presigned GET URL for the event's poster.
func (s *Server) EventPosterDownloadURL(c echo.Context) error {
	if s.assets == nil {
		return writeError(c, http.StatusNotFound, codeNotFound, "asset storage is not enabled")
	}
	eventID, ok := pathID(c, "eventId")
	if !ok {
		return writeError(c, http.StatusBadRequest, codeInvalidID, domain.ErrInvalidID.Error())
	}

	url, err := s.assets.DownloadURL(c.Request().Context(), assets.EventPosterKey(eventID))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, posterURLResponse{URL: url})
}

// EventPosterUploadURL returns a presigned PUT URL for the event's poster.
func (s *Server) EventPosterUploadURL(c echo.Context) error {
	if s.assets == nil {
		return writeError(c, http.StatusNotFound, codeNotFound, "asset storage is not enabled")
	}
	eventID, ok := pathID(c, "eventId")
	if !ok {
		return writeError(c, http.StatusBadRequest, codeInvalidID, domain.ErrInvalidID.Error())
	}

	url, err := s.assets.UploadURL(c.Request().Context(), assets.EventPosterKey(eventID))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, posterURLResponse{URL: url})
}
