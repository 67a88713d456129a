package employeesalary

import (
	employeesalaryerrors "go-taxdesk/internal/employeesalary/errors"
	"go-taxdesk/internal/shared/dberr"
)

// The only unique key on employee_salaries is (employee_id, effective_date).
var repositoryErrors = dberr.Mapper{
	NotFound:  employeesalaryerrors.ErrSalaryNotFound,
	Duplicate: employeesalaryerrors.ErrSalaryEffectiveDateAlreadyExists,
}

func mapRepositoryError(err error) error {
	return repositoryErrors.Map(err)
}
