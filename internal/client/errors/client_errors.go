package clienterrors

import (
	"net/http"

	"go-taxdesk/internal/shared/apperror"
)

var (
	ErrClientNotFound = apperror.New(
		apperror.CodeNotFound,
		"Client not found",
		http.StatusNotFound,
	)

	ErrInvalidClientID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid client ID",
		http.StatusBadRequest,
	)

	ErrInvalidPAN = apperror.New(
		apperror.CodeInvalidInput,
		"PAN must look like ABCDE1234F",
		http.StatusBadRequest,
	)

	ErrInvalidGSTIN = apperror.New(
		apperror.CodeInvalidInput,
		"GSTIN is not a valid 15 character GST number",
		http.StatusBadRequest,
	)

	ErrPANGSTINMismatch = apperror.New(
		apperror.CodeInvalidInput,
		"GSTIN does not embed the given PAN",
		http.StatusBadRequest,
	)

	ErrInvalidBusinessType = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid business type",
		http.StatusBadRequest,
	)

	ErrClientPANExists = apperror.New(
		apperror.CodeConflict,
		"A client with this PAN already exists",
		http.StatusConflict,
	)

	ErrClientGSTINExists = apperror.New(
		apperror.CodeConflict,
		"A client with this GSTIN already exists",
		http.StatusConflict,
	)
)
