package employeesalary

import (
	"context"
	"database/sql"
	"time"

	employeesalaryerrors "go-taxdesk/internal/employeesalary/errors"
	"go-taxdesk/internal/engine"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=employee_salary_service.go -destination=mock/employee_salary_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateEmployeeSalaryRequest) (EmployeeSalaryResponse, error)
	GetAll(ctx context.Context, companyID string) ([]EmployeeSalaryResponse, error)
	GetByID(ctx context.Context, companyID, id string) (EmployeeSalaryResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateEmployeeSalaryRequest) (EmployeeSalaryResponse, error)
	Delete(ctx context.Context, companyID, id string) error
	EffectiveComponents(ctx context.Context, companyID, employeeID string, asOf time.Time) (engine.PayrollInput, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("employeesalary.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employeesalary.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (c SalaryComponents) payrollInput() engine.PayrollInput {
	return engine.PayrollInput{
		BasicSalary: c.BasicSalary,
		HRA:         c.HRA,
		Allowances:  c.Allowances,
		Deductions: engine.Deductions{
			TDS:             c.TDS,
			PF:              c.PF,
			ESI:             c.ESI,
			ProfessionalTax: c.ProfessionalTax,
			Other:           c.OtherDeductions,
		},
	}
}

func (s *service) Create(
	ctx context.Context,
	companyID string,
	req CreateEmployeeSalaryRequest,
) (EmployeeSalaryResponse, error) {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return EmployeeSalaryResponse{}, employeesalaryerrors.ErrEmployeeNotFound
	}
	effectiveDate, err := time.Parse("2006-01-02", req.EffectiveDate)
	if err != nil {
		return EmployeeSalaryResponse{}, employeesalaryerrors.ErrInvalidEffectiveDate
	}
	if _, err := engine.ComputePayroll(req.SalaryComponents.payrollInput()); err != nil {
		return EmployeeSalaryResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmployeeSalaryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	ok, err := qtx.EmployeeBelongsToCompany(ctx, companyID, employeeID.String())
	if err != nil {
		return EmployeeSalaryResponse{}, err
	}
	if !ok {
		return EmployeeSalaryResponse{}, employeesalaryerrors.ErrEmployeeNotFound
	}

	salary := &EmployeeSalary{
		ID:            uuid.New(),
		CompanyID:     uuid.MustParse(companyID),
		EmployeeID:    employeeID,
		EffectiveDate: effectiveDate,
	}
	salary.apply(req.SalaryComponents)

	if err := qtx.Create(ctx, salary); err != nil {
		return EmployeeSalaryResponse{}, mapRepositoryError(err)
	}

	created, err := qtx.FindByIDAndCompany(ctx, companyID, salary.ID.String())
	if err != nil {
		return EmployeeSalaryResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return EmployeeSalaryResponse{}, err
	}

	s.logger.Info("salary structure created",
		zap.String("employee_id", employeeID.String()),
		zap.String("effective_date", req.EffectiveDate),
	)
	return mapToResponse(*created), nil
}

func (s *service) GetAll(
	ctx context.Context,
	companyID string,
) ([]EmployeeSalaryResponse, error) {
	salaries, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(salaries), nil
}

func (s *service) GetByID(
	ctx context.Context,
	companyID, id string,
) (EmployeeSalaryResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeSalaryResponse{}, employeesalaryerrors.ErrInvalidSalaryID
	}
	salary, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return EmployeeSalaryResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*salary), nil
}

func (s *service) Update(
	ctx context.Context,
	companyID, id string,
	req UpdateEmployeeSalaryRequest,
) (EmployeeSalaryResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeSalaryResponse{}, employeesalaryerrors.ErrInvalidSalaryID
	}
	effectiveDate, err := time.Parse("2006-01-02", req.EffectiveDate)
	if err != nil {
		return EmployeeSalaryResponse{}, employeesalaryerrors.ErrInvalidEffectiveDate
	}
	if _, err := engine.ComputePayroll(req.SalaryComponents.payrollInput()); err != nil {
		return EmployeeSalaryResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmployeeSalaryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	salary, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return EmployeeSalaryResponse{}, mapRepositoryError(err)
	}

	salary.EffectiveDate = effectiveDate
	salary.apply(req.SalaryComponents)

	if err := qtx.Update(ctx, salary); err != nil {
		return EmployeeSalaryResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return EmployeeSalaryResponse{}, err
	}

	return mapToResponse(*salary), nil
}

func (s *service) Delete(
	ctx context.Context,
	companyID, id string,
) error {
	if _, err := uuid.Parse(id); err != nil {
		return employeesalaryerrors.ErrInvalidSalaryID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Delete(ctx, companyID, id); err != nil {
		return mapRepositoryError(err)
	}

	return tx.Commit()
}

// EffectiveComponents returns the payroll input from the structure in force on asOf.
func (s *service) EffectiveComponents(
	ctx context.Context,
	companyID, employeeID string,
	asOf time.Time,
) (engine.PayrollInput, error) {
	salary, err := s.repo.FindEffective(ctx, companyID, employeeID, asOf)
	if err != nil {
		return engine.PayrollInput{}, mapRepositoryError(err)
	}
	return salary.components().payrollInput(), nil
}

func (e *EmployeeSalary) apply(c SalaryComponents) {
	e.BasicSalary = c.BasicSalary
	e.HRA = c.HRA
	e.Allowances = c.Allowances
	e.TDS = c.TDS
	e.PF = c.PF
	e.ESI = c.ESI
	e.ProfessionalTax = c.ProfessionalTax
	e.OtherDeductions = c.OtherDeductions
}

func (e EmployeeSalary) components() SalaryComponents {
	return SalaryComponents{
		BasicSalary:     e.BasicSalary,
		HRA:             e.HRA,
		Allowances:      e.Allowances,
		TDS:             e.TDS,
		PF:              e.PF,
		ESI:             e.ESI,
		ProfessionalTax: e.ProfessionalTax,
		OtherDeductions: e.OtherDeductions,
	}
}

func mapToResponse(salary EmployeeSalary) EmployeeSalaryResponse {
	c := salary.components()
	resp := EmployeeSalaryResponse{
		ID:               salary.ID.String(),
		EmployeeID:       salary.EmployeeID.String(),
		EmployeeName:     salary.EmployeeName,
		EffectiveDate:    salary.EffectiveDate.Format("2006-01-02"),
		SalaryComponents: c,
	}
	// stored rows were validated on write
	if result, err := engine.ComputePayroll(c.payrollInput()); err == nil {
		resp.GrossSalary = result.GrossSalary
		resp.TotalDeductions = result.TotalDeductions
		resp.NetSalary = result.NetSalary
	}
	return resp
}

func mapToListResponse(salaries []EmployeeSalary) []EmployeeSalaryResponse {
	res := make([]EmployeeSalaryResponse, len(salaries))
	for i, salary := range salaries {
		res[i] = mapToResponse(salary)
	}
	return res
}
