package employeesalary

import (
	"context"
	"database/sql"
	"time"

	"go-taxdesk/internal/shared/connection"
	"go-taxdesk/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_salary_repo.go -destination=mock/employee_salary_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, salary *EmployeeSalary) error
	FindAllByCompany(ctx context.Context, companyID string) ([]EmployeeSalary, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*EmployeeSalary, error)
	FindEffective(ctx context.Context, companyID, employeeID string, asOf time.Time) (*EmployeeSalary, error)
	Update(ctx context.Context, salary *EmployeeSalary) error
	Delete(ctx context.Context, companyID string, id string) error
	EmployeeBelongsToCompany(ctx context.Context, companyID, employeeID string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: connection.BindTx(r.db, tx)}
}

func (r *repository) Create(ctx context.Context, salary *EmployeeSalary) error {
	return r.db.WithContext(ctx).Create(salary).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]EmployeeSalary, error) {
	var salaries []EmployeeSalary
	query := `
SELECT
	employee_salaries.*,
	employees.full_name AS employee_name
FROM employee_salaries
JOIN employees ON employees.id = employee_salaries.employee_id
WHERE employee_salaries.company_id = ?
	AND employees.deleted_at IS NULL
ORDER BY
	employees.full_name ASC,
	employee_salaries.effective_date DESC,
	employee_salaries.created_at DESC
`

	err := r.db.WithContext(ctx).Raw(query, companyID).Scan(&salaries).Error
	return salaries, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*EmployeeSalary, error) {
	var salary EmployeeSalary
	err := r.db.WithContext(ctx).
		Table("employee_salaries").
		Select("employee_salaries.*, employees.full_name AS employee_name").
		Joins("JOIN employees ON employees.id = employee_salaries.employee_id").
		Where("employee_salaries.id = ?", id).
		Scopes(tenant.TableScope("employee_salaries", companyID)).
		First(&salary).Error
	if err != nil {
		return nil, err
	}
	return &salary, nil
}

// FindEffective returns the latest structure whose effective date is on or before asOf.
func (r *repository) FindEffective(ctx context.Context, companyID, employeeID string, asOf time.Time) (*EmployeeSalary, error) {
	var salary EmployeeSalary
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("employee_id = ?", employeeID).
		Where("effective_date <= ?", asOf.Format("2006-01-02")).
		Order("effective_date DESC").
		First(&salary).Error
	if err != nil {
		return nil, err
	}
	return &salary, nil
}

func (r *repository) Update(ctx context.Context, salary *EmployeeSalary) error {
	return r.db.WithContext(ctx).Save(salary).Error
}

func (r *repository) Delete(ctx context.Context, companyID string, id string) error {
	res := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Delete(&EmployeeSalary{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) EmployeeBelongsToCompany(ctx context.Context, companyID, employeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("id = ?", employeeID).
		Where("company_id = ?", companyID).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}
