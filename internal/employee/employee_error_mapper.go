package employee

import (
	employeeerrors "go-taxdesk/internal/employee/errors"
	"go-taxdesk/internal/shared/dberr"
)

var repositoryErrors = dberr.Mapper{
	NotFound: employeeerrors.ErrEmployeeNotFound,
	Unique:   map[string]error{
		"uq_employee_number": employeeerrors.ErrEmployeeNumberAlreadyExists,
		"uq_employee_email":  employeeerrors.ErrEmployeeAlreadyExists,
	},
}

func mapRepositoryError(err error) error {
	return repositoryErrors.Map(err)
}
