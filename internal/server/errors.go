package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-builder/internal/atsclient"
	"github.com/jonathan/resume-builder/internal/builder"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/templates"
	"github.com/jonathan/resume-builder/internal/workspace"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrNotFound indicates a missing resource
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrUnavailable indicates a feature whose backing service is not configured
type ErrUnavailable struct {
	Feature string
}

func (e *ErrUnavailable) Error() string {
	return fmt.Sprintf("%s is not available: no backing store configured", e.Feature)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr  *ErrValidation
		schemaErr      *schemas.ValidationError
		notFoundErr    *ErrNotFound
		indexErr       *builder.IndexError
		templateErr    *templates.NotFoundError
		unavailableErr *ErrUnavailable
		upstreamErr    *atsclient.RequestError
		reportErr      *atsclient.ReportError
	)

	switch {
	case err == nil:
		return http.StatusInternalServerError
	case errors.As(err, &upstreamErr), errors.As(err, &reportErr):
		return http.StatusBadGateway
	case errors.As(err, &validationErr), errors.As(err, &schemaErr):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr), errors.As(err, &indexErr), errors.As(err, &templateErr):
		return http.StatusNotFound
	case errors.As(err, &unavailableErr), errors.Is(err, workspace.ErrNoAnalyzer):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
