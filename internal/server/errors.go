package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-dispatch/internal/dispatch"
	"github.com/jonathan/resume-dispatch/internal/ingestion"
	"github.com/jonathan/resume-dispatch/internal/store"
	"github.com/jonathan/resume-dispatch/internal/types"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validation *ErrValidation
		format     *ingestion.UnsupportedFormatError
		transition *types.TransitionError
		tooLarge   *http.MaxBytesError
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &validation), errors.As(err, &format), errors.Is(err, dispatch.ErrNoRecipient):
		return http.StatusBadRequest
	case errors.Is(err, ingestion.ErrFileTooLarge), errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &transition):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
