package apperror

import (
	"errors"
	"net/http"

	"go-taxdesk/internal/engine"
)

// FromValidation wraps an engine validation error as a 400 AppError. It returns
// nil when err is not an engine validation error or is already an AppError.
func FromValidation(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return nil
	}

	var verr *engine.ValidationError
	if !errors.As(err, &verr) {
		return nil
	}

	return Wrap(verr, CodeInvalidInput, verr.Error(), http.StatusBadRequest)
}
