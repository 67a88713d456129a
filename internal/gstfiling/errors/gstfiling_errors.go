package gstfilingerrors

import (
	"net/http"

	"go-taxdesk/internal/shared/apperror"
)

var (
	ErrFilingNotFound = apperror.New(
		apperror.CodeNotFound,
		"GST filing not found",
		http.StatusNotFound,
	)
	ErrInvalidFilingID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid GST filing ID",
		http.StatusBadRequest,
	)
	ErrInvalidFilingType = apperror.New(
		apperror.CodeInvalidInput,
		"filing_type must be one of GSTR-1, GSTR-3B, GSTR-9, GSTR-9C",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Dates must use the YYYY-MM-DD format",
		http.StatusBadRequest,
	)
	ErrClientNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"Client does not belong to this company",
		http.StatusBadRequest,
	)
	ErrDuplicateFiling = apperror.New(
		apperror.CodeConflict,
		"A filing of this type already exists for the client and period",
		http.StatusConflict,
	)
	ErrFilingCancelled = apperror.New(
		apperror.CodeInvalidState,
		"Cancelled filings cannot be changed",
		http.StatusBadRequest,
	)
	ErrAlreadyFiled = apperror.New(
		apperror.CodeInvalidState,
		"Return has already been filed",
		http.StatusBadRequest,
	)
)
