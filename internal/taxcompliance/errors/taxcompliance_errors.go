package taxcomplianceerrors

import (
	"net/http"

	"go-taxdesk/internal/shared/apperror"
)

var (
	ErrRecordNotFound = apperror.New(
		apperror.CodeNotFound,
		"Tax compliance record not found",
		http.StatusNotFound,
	)
	ErrInvalidRecordID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid tax compliance ID",
		http.StatusBadRequest,
	)
	ErrInvalidTaxType = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid tax type",
		http.StatusBadRequest,
	)
	ErrInvalidAssessmentYear = apperror.New(
		apperror.CodeInvalidInput,
		"assessment_year must look like 2024-25",
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
	ErrRecordCancelled = apperror.New(
		apperror.CodeInvalidState,
		"Cancelled records cannot be changed",
		http.StatusBadRequest,
	)
)
