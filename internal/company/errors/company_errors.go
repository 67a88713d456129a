package companyerrors

import (
	"net/http"

	"go-taxdesk/internal/shared/apperror"
)

var (
	ErrCompanyNotFound = apperror.New(
		apperror.CodeNotFound,
		"Company not found",
		http.StatusNotFound,
	)

	ErrCompanyAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Company with the same email already exists",
		http.StatusConflict,
	)

	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid company ID",
		http.StatusBadRequest,
	)

	ErrInvalidRegistrationType = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid registration type",
		http.StatusBadRequest,
	)

	ErrInvalidRegistrationNumber = apperror.New(
		apperror.CodeInvalidInput,
		"Registration number does not match its type",
		http.StatusBadRequest,
	)

	ErrRegistrationNotFound = apperror.New(
		apperror.CodeNotFound,
		"Company registration not found",
		http.StatusNotFound,
	)

	ErrMissingRequiredFields = apperror.New(
		apperror.CodeInvalidInput,
		"Missing required fields",
		http.StatusBadRequest,
	)
)
