package apperror

import (
	"context"
	"errors"
	"net/http"

	"go-taxdesk/internal/engine"
)

// HTTPError is the shape handlers write into the response envelope.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details any
}

// ToHTTP translates any error into an HTTPError. Unknown errors become a 500
// without leaking their text.
func ToHTTP(err error) HTTPError {
	if err == nil {
		return HTTPError{Status: http.StatusOK}
	}

	if ve := FromValidation(err); ve != nil {
		err = ve
	}

	if errors.Is(err, context.DeadlineExceeded) {
		err = ErrUnavailable
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		out := HTTPError{
			Status:  appErr.HTTPStatus,
			Code:    appErr.Code,
			Message: appErr.Message,
		}
		if appErr.Err != nil && appErr.HTTPStatus < http.StatusInternalServerError {
			out.Details = details(appErr.Err)
		}
		return out
	}

	return HTTPError{
		Status:  ErrInternal.HTTPStatus,
		Code:    ErrInternal.Code,
		Message: ErrInternal.Message,
	}
}

func details(err error) any {
	var verr *engine.ValidationError
	if errors.As(err, &verr) {
		return map[string]string{"field": verr.Field, "reason": verr.Reason}
	}
	return err.Error()
}

func RequiredField(field string) *AppError {
	return New(CodeInvalidInput, field+" is required", http.StatusBadRequest)
}

func InvalidField(field string) *AppError {
	return New(CodeInvalidInput, field+" is invalid", http.StatusBadRequest)
}
