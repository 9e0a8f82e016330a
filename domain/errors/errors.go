// Package errors provides domain-specific error types for permission requests.
// All error types support error unwrapping via errors.As() and errors.Is().
package errors

import (
	stdErrors "errors"
	"strings"

	"github.com/reglet-dev/reglet-permissions/domain/entities"
	"github.com/reglet-dev/reglet-permissions/domain/flags"
)

// ErrorDetail is an alias to entities.ErrorDetail for convenience.
type ErrorDetail = entities.ErrorDetail

// InvalidNameError is an alias to entities.InvalidNameError so callers can
// match host validation failures without importing entities.
type InvalidNameError = entities.InvalidNameError

// ErrPermissionDenied matches any *PermissionDeniedError with errors.Is.
var ErrPermissionDenied = stdErrors.New("permission denied")

// DeniedHeader is the first line of every PermissionDeniedError message.
const DeniedHeader = "The following permissions have not been granted:"

// DetailedError is implemented by error types that can convert themselves to
// a structured ErrorDetail.
type DetailedError interface {
	error
	ToErrorDetail() *entities.ErrorDetail
}

// ToErrorDetail converts a Go error to our structured ErrorDetail.
func ToErrorDetail(err error) *entities.ErrorDetail {
	if err == nil {
		return nil
	}

	var e *entities.ErrorDetail
	if stdErrors.As(err, &e) {
		return e
	}

	var de DetailedError
	if stdErrors.As(err, &de) {
		return de.ToErrorDetail()
	}

	return &entities.ErrorDetail{
		Message: err.Error(),
		Type:    "internal",
	}
}

// PermissionDeniedError reports the descriptors a strict request could not
// obtain, in request order.
type PermissionDeniedError struct {
	Denied []entities.Descriptor
}

// Error renders the header line followed by one indented flag per denied
// descriptor.
func (e *PermissionDeniedError) Error() string {
	var b strings.Builder
	b.WriteString(DeniedHeader)
	for _, d := range e.Denied {
		b.WriteString("\n  ")
		b.WriteString(flags.Render(d))
	}
	return b.String()
}

// Is lets errors.Is(err, ErrPermissionDenied) match.
func (e *PermissionDeniedError) Is(target error) bool {
	return target == ErrPermissionDenied
}

// Flags returns the rendered flag of every denied descriptor.
func (e *PermissionDeniedError) Flags() []string {
	return flags.RenderAll(e.Denied)
}

// ToErrorDetail implements DetailedError.
func (e *PermissionDeniedError) ToErrorDetail() *entities.ErrorDetail {
	return entities.NewErrorDetail("capability", e.Error()).
		WithCode("permission_denied").
		WithDetails(map[string]any{"flags": e.Flags()})
}

// IsPermissionDenied reports whether err is, or wraps, a PermissionDeniedError.
func IsPermissionDenied(err error) bool {
	var pd *PermissionDeniedError
	return stdErrors.As(err, &pd)
}
