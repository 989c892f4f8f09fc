package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/existflow/digicafe/internal/logger"
)

// APIError is the body of every failed response
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return e.Message
}

func newAPIError(status int, code, message string) *APIError {
	return &APIError{Status: status, Code: code, Message: message}
}

func badRequest(code, message string) *APIError {
	return newAPIError(http.StatusBadRequest, code, message)
}

// errorHandler renders errors as {"error":{"code","message"}}
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var apiErr *APIError
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &apiErr):
	case errors.As(err, &httpErr):
		apiErr = newAPIError(httpErr.Code, codeForStatus(httpErr.Code), fmt.Sprint(httpErr.Message))
	default:
		logger.Error("Unhandled API error", logger.F("error", err))
		apiErr = newAPIError(http.StatusInternalServerError, "internal_error", "internal server error")
	}

	if err := c.JSON(apiErr.Status, map[string]*APIError{"error": apiErr}); err != nil {
		logger.Error("Failed to write error response", logger.F("error", err))
	}
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "bad_request"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusMethodNotAllowed:
		return "method_not_allowed"
	case http.StatusUnsupportedMediaType:
		return "unsupported_media_type"
	default:
		return "internal_error"
	}
}
