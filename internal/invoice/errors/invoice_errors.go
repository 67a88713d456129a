package invoiceerrors

import (
	"net/http"

	"go-taxdesk/internal/shared/apperror"
)

var (
	ErrInvoiceNotFound = apperror.New(
		apperror.CodeNotFound,
		"Invoice not found",
		http.StatusNotFound,
	)

	ErrInvalidInvoiceID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid invoice ID",
		http.StatusBadRequest,
	)

	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Dates must use the YYYY-MM-DD format",
		http.StatusBadRequest,
	)

	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid invoice status",
		http.StatusBadRequest,
	)

	ErrClientNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"Client does not belong to this company",
		http.StatusBadRequest,
	)

	ErrInvalidTransition = apperror.New(
		apperror.CodeInvalidState,
		"Invoice cannot move to the requested status",
		http.StatusBadRequest,
	)

	ErrInvoiceLocked = apperror.New(
		apperror.CodeInvalidState,
		"Paid or cancelled invoices cannot be edited",
		http.StatusBadRequest,
	)

	ErrInvoiceNotDeletable = apperror.New(
		apperror.CodeInvalidState,
		"Only draft or cancelled invoices can be deleted",
		http.StatusBadRequest,
	)

	ErrInvoiceNumberConflict = apperror.New(
		apperror.CodeConflict,
		"Invoice number already used",
		http.StatusConflict,
	)
)
