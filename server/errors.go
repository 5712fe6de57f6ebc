package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/spektr-org/eventboard/export"
	"github.com/spektr-org/eventboard/loader"
	chartrender "github.com/spektr-org/eventboard/render"
)

// APIError is the JSON body of every failed request.
type APIError struct {
	StatusCode int    `json:"status_code"`
	ErrorCode  string `json:"error_code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string { return e.Message }

// Render implements render.Renderer.
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// NewAPIError builds an APIError.
func NewAPIError(status int, code, message string) *APIError {
	return &APIError{StatusCode: status, ErrorCode: code, Message: message}
}

var (
	errNotFound = NewAPIError(http.StatusNotFound, "NOT_FOUND", "resource not found")
	errNoLogo   = NewAPIError(http.StatusNotFound, "LOGO_NOT_FOUND", "no logo configured or logo file missing")
	errNoData   = NewAPIError(http.StatusNotFound, "NO_DATA", "no records match the selection")
)

// fromError maps domain errors to API errors.
func fromError(err error) *APIError {
	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr
	case errors.Is(err, loader.ErrDataLoad):
		return NewAPIError(http.StatusInternalServerError, "DATA_LOAD_FAILED", err.Error())
	case errors.Is(err, chartrender.ErrNoData):
		return errNoData
	case errors.Is(err, chartrender.ErrUnknownFormat), errors.Is(err, export.ErrUnknownFormat):
		return NewAPIError(http.StatusBadRequest, "UNKNOWN_FORMAT", err.Error())
	default:
		return NewAPIError(http.StatusInternalServerError, "INTERNAL", err.Error())
	}
}
