package types

import (
	"errors"
	"net/http"

	appErr "github.com/arcians/profile-registry/pkg/errors"
)

// StatusFor maps an error code to the HTTP status returned to clients. It is
// the only place where that mapping lives.
func StatusFor(err error) int {
	switch appErr.CodeOf(err) {
	case appErr.CodeNotFound:
		return http.StatusNotFound
	case appErr.CodeInvalid:
		return http.StatusUnprocessableEntity
	case appErr.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// FromAppError renders err as a client facing error body.
func FromAppError(err error) *ErrorResponse {
	if err == nil {
		return nil
	}
	var ae *appErr.AppError
	if errors.As(err, &ae) {
		return &ErrorResponse{Detail: ae.Detail(), Code: string(ae.Code)}
	}
	return &ErrorResponse{Detail: err.Error(), Code: string(appErr.CodeUnknown)}
}
