package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/oguzk/enrollhub/internal/app/models/dto"
	"github.com/oguzk/enrollhub/internal/pkg/apperrors"
)

// HandleAPIError renders a service-layer error as the API's single-message
// error body. Errors outside the taxonomy are logged and collapsed to a 500
// so no internal detail leaks to the client.
func HandleAPIError(c *gin.Context, err error) {
	status := statusFor(err)

	var statusErr *apperrors.StatusError
	if errors.As(err, &statusErr) && statusErr.Message != "" {
		c.JSON(status, dto.NewErrorResponse(statusErr.Message))
		return
	}

	switch status {
	case http.StatusBadRequest:
		c.JSON(status, dto.NewErrorResponse("Invalid request"))
	case http.StatusUnauthorized:
		c.JSON(status, dto.NewErrorResponse("Unauthorized"))
	case http.StatusForbidden:
		c.JSON(status, dto.NewErrorResponse("Forbidden"))
	case http.StatusNotFound:
		c.JSON(status, dto.NewErrorResponse("Record not found"))
	case http.StatusConflict:
		c.JSON(status, dto.NewErrorResponse("Unique constraint violated"))
	default:
		log.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Unhandled API error")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal server error"))
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
