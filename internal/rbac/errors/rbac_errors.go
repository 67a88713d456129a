package rbacerrors

import (
	"net/http"

	"go-taxdesk/internal/shared/apperror"
)

var (
	ErrMissingEnforceFields = apperror.New(
		apperror.CodeInvalidInput,
		"user_id, company_id, resource, and action are required",
		http.StatusBadRequest,
	)
	ErrRoleNotFound = apperror.New(
		apperror.CodeNotFound,
		"role not found",
		http.StatusNotFound,
	)
	ErrRoleAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"role with this name already exists",
		http.StatusConflict,
	)
	ErrUnknownPermission = apperror.New(
		apperror.CodeInvalidInput,
		"one or more permissions do not exist",
		http.StatusBadRequest,
	)
)
