package payroll

import (
	"context"
	"database/sql"

	"go-taxdesk/internal/shared/connection"
	"go-taxdesk/internal/tenant"

	"gorm.io/gorm"
)

type PayrollQueryFilter struct {
	EmployeeID string
	Month      int
	Year       int
	Status     string
}

const payrollSelect = "payrolls.*, employees.full_name AS employee_name, " +
	"employees.employee_number AS employee_number, employees.pan AS employee_pan"

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *Payroll) error
	FindAllByCompany(ctx context.Context, companyID string, filter PayrollQueryFilter) ([]Payroll, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Payroll, error)
	Update(ctx context.Context, p *Payroll) error
	Delete(ctx context.Context, companyID string, id string) error
	EmployeeBelongsToCompany(ctx context.Context, companyID string, employeeID string) (bool, error)
	ExistsForPeriod(ctx context.Context, companyID, employeeID string, month, year int) (bool, error)
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

func (r *repository) Create(ctx context.Context, p *Payroll) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string, filter PayrollQueryFilter) ([]Payroll, error) {
	var payrolls []Payroll
	q := r.db.WithContext(ctx).
		Table("payrolls").
		Select(payrollSelect).
		Joins("JOIN employees ON employees.id = payrolls.employee_id").
		Scopes(tenant.TableScope("payrolls", companyID))

	if filter.EmployeeID != "" {
		q = q.Where("payrolls.employee_id = ?", filter.EmployeeID)
	}
	if filter.Month > 0 {
		q = q.Where("payrolls.month = ?", filter.Month)
	}
	if filter.Year > 0 {
		q = q.Where("payrolls.year = ?", filter.Year)
	}
	if filter.Status != "" {
		q = q.Where("payrolls.status = ?", filter.Status)
	}

	err := q.Order("payrolls.year DESC").
		Order("payrolls.month DESC").
		Order("employees.full_name ASC").
		Scan(&payrolls).Error
	return payrolls, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Payroll, error) {
	var p Payroll
	err := r.db.WithContext(ctx).
		Table("payrolls").
		Select(payrollSelect).
		Joins("JOIN employees ON employees.id = payrolls.employee_id").
		Where("payrolls.id = ?", id).
		Scopes(tenant.TableScope("payrolls", companyID)).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) Update(ctx context.Context, p *Payroll) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *repository) Delete(ctx context.Context, companyID string, id string) error {
	res := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Delete(&Payroll{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) EmployeeBelongsToCompany(ctx context.Context, companyID string, employeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("id = ?", employeeID).
		Where("company_id = ?", companyID).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}

func (r *repository) ExistsForPeriod(ctx context.Context, companyID, employeeID string, month, year int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Payroll{}).
		Where("company_id = ?", companyID).
		Where("employee_id = ?", employeeID).
		Where("month = ? AND year = ?", month, year).
		Count(&count).Error
	return count > 0, err
}
