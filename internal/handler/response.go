package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/terralens/terralens-backend/internal/repository"
	"github.com/terralens/terralens-backend/internal/service"
)

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// RetryAfterSeconds is set for cooldown rejections only.
	RetryAfterSeconds int `json:"retryAfterSeconds,omitempty"`
}

type ErrorResponse struct {
	Error errorPayload `json:"error"`
}

func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: errorPayload{
			Code:    code,
			Message: message,
		},
	}
}

// writeDomainError maps the verify-attempt error taxonomy onto HTTP.
func writeDomainError(c echo.Context, err error) error {
	var cd *repository.CooldownError
	var inel *service.IneligibleError
	switch {
	case errors.Is(err, repository.ErrDuplicateContent):
		return c.JSON(http.StatusConflict, NewErrorResponse("duplicate_content", "this photo was already claimed"))
	case errors.As(err, &cd):
		resp := NewErrorResponse("cooldown_active", cd.Error())
		resp.Error.RetryAfterSeconds = cd.RemainingSeconds
		return c.JSON(http.StatusTooManyRequests, resp)
	case errors.As(err, &inel):
		return c.JSON(http.StatusUnprocessableEntity, NewErrorResponse("ineligible", inel.Error()))
	case errors.Is(err, repository.ErrUnknownUser):
		return c.JSON(http.StatusNotFound, NewErrorResponse("unknown_user", "account does not exist"))
	case errors.Is(err, repository.ErrEmailTaken):
		return c.JSON(http.StatusConflict, NewErrorResponse("email_taken", "email already registered"))
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("invalid_credentials", "invalid email or password"))
	case errors.Is(err, service.ErrUnavailable):
		return c.JSON(http.StatusServiceUnavailable, NewErrorResponse("unavailable", "temporary failure, try again"))
	default:
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", err.Error()))
	}
}
