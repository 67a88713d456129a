package payroll

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	employeesalaryerrors "go-taxdesk/internal/employeesalary/errors"
	"go-taxdesk/internal/engine"
	"go-taxdesk/internal/events"
	"go-taxdesk/internal/messaging/kafka"
	payrollerrors "go-taxdesk/internal/payroll/errors"
	"go-taxdesk/internal/shared/contextutil"
	"go-taxdesk/internal/shared/dberr"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const payslipRequestedEventType = "payroll_payslip_requested"

// SalaryLookup resolves the salary structure in force for an employee.
type SalaryLookup interface {
	EffectiveComponents(ctx context.Context, companyID, employeeID string, asOf time.Time) (engine.PayrollInput, error)
}

// PayslipStorage is where rendered payslips are written and how they are addressed.
type PayslipStorage struct {
	Dir           string
	PublicBaseURL string
}

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID, actorID string, req CreatePayrollRequest) (PayrollResponse, error)
	GetAll(ctx context.Context, companyID string, filter GetPayrollsFilterRequest) ([]PayrollResponse, error)
	GetByID(ctx context.Context, companyID, id string) (PayrollResponse, error)
	GetBreakdown(ctx context.Context, companyID, id string) (PayrollBreakdownResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdatePayrollRequest) (PayrollResponse, error)
	Regenerate(ctx context.Context, companyID, id string) (PayrollResponse, error)
	Approve(ctx context.Context, companyID, actorID, id string) (PayrollResponse, error)
	MarkAsPaid(ctx context.Context, companyID, id string) (PayrollResponse, error)
	Cancel(ctx context.Context, companyID, id string) (PayrollResponse, error)
	Delete(ctx context.Context, companyID, id string) error
	GeneratePayslip(ctx context.Context, companyID, id string) (PayrollResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	outbox   kafka.OutboxRepository
	salaries SalaryLookup
	storage  PayslipStorage
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	outbox kafka.OutboxRepository,
	salaries SalaryLookup,
	storage PayslipStorage,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	if storage.Dir == "" {
		storage.Dir = filepath.Join("storage", "payslips")
	}
	if storage.PublicBaseURL == "" {
		storage.PublicBaseURL = "/files/payslips"
	}
	return &service{
		db:       db,
		repo:     repo,
		outbox:   outbox,
		salaries: salaries,
		storage:  storage,
		logger:   l,
	}
}

func (c PayrollComponentsRequest) payrollInput() engine.PayrollInput {
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

// periodEnd is the last calendar day of the payroll month.
func periodEnd(month, year int) time.Time {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)
}

// apply runs the calculator and copies inputs and results onto p.
func (p *Payroll) apply(in engine.PayrollInput) (engine.PayrollResult, error) {
	result, err := engine.ComputePayroll(in)
	if err != nil {
		return engine.PayrollResult{}, err
	}
	p.BasicSalary = in.BasicSalary
	p.HRA = in.HRA
	p.Allowances = in.Allowances
	p.TDS = in.Deductions.TDS
	p.PF = in.Deductions.PF
	p.ESI = in.Deductions.ESI
	p.ProfessionalTax = in.Deductions.ProfessionalTax
	p.OtherDeductions = in.Deductions.Other
	p.GrossSalary = result.GrossSalary
	p.TotalDeductions = result.TotalDeductions
	p.NetSalary = result.NetSalary
	return result, nil
}

func (s *service) componentsFor(ctx context.Context, companyID, employeeID string, month, year int) (engine.PayrollInput, error) {
	if s.salaries == nil {
		return engine.PayrollInput{}, payrollerrors.ErrSalaryStructureMissing
	}
	in, err := s.salaries.EffectiveComponents(ctx, companyID, employeeID, periodEnd(month, year))
	if err != nil {
		if errors.Is(err, employeesalaryerrors.ErrSalaryNotFound) {
			return engine.PayrollInput{}, payrollerrors.ErrSalaryStructureMissing
		}
		return engine.PayrollInput{}, err
	}
	return in, nil
}

func (s *service) Create(
	ctx context.Context,
	companyID, actorID string,
	req CreatePayrollRequest,
) (PayrollResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	createdBy, err := uuid.Parse(actorID)
	if err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidActorID
	}
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidEmployeeID
	}
	if req.Month < 1 || req.Month > 12 || req.Year < 1 {
		return PayrollResponse{}, payrollerrors.ErrInvalidPeriod
	}

	var in engine.PayrollInput
	if req.Components != nil {
		in = req.Components.payrollInput()
	} else {
		in, err = s.componentsFor(ctx, companyID, employeeID.String(), req.Month, req.Year)
		if err != nil {
			return PayrollResponse{}, err
		}
	}

	p := &Payroll{
		ID:         uuid.New(),
		CompanyID:  uuid.MustParse(companyID),
		EmployeeID: employeeID,
		Month:      req.Month,
		Year:       req.Year,
		Status:     StatusDraft,
		Notes:      strings.TrimSpace(req.Notes),
		CreatedBy:  createdBy,
	}
	result, err := p.apply(in)
	if err != nil {
		return PayrollResponse{}, err
	}
	if result.NegativeNet {
		s.logger.Warn("payroll drafted with negative net salary",
			zap.String("request_id", rid),
			zap.String("employee_id", employeeID.String()),
			zap.String("net_salary", result.NetSalary.String()),
		)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	ok, err := qtx.EmployeeBelongsToCompany(ctx, companyID, employeeID.String())
	if err != nil {
		return PayrollResponse{}, err
	}
	if !ok {
		return PayrollResponse{}, payrollerrors.ErrEmployeeNotInCompany
	}

	exists, err := qtx.ExistsForPeriod(ctx, companyID, employeeID.String(), req.Month, req.Year)
	if err != nil {
		return PayrollResponse{}, err
	}
	if exists {
		return PayrollResponse{}, payrollerrors.ErrPayrollDuplicate
	}

	if err := qtx.Create(ctx, p); err != nil {
		return PayrollResponse{}, mapRepositoryError(err)
	}

	created, err := qtx.FindByIDAndCompany(ctx, companyID, p.ID.String())
	if err != nil {
		return PayrollResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return PayrollResponse{}, err
	}

	s.logger.Info("payroll drafted",
		zap.String("request_id", rid),
		zap.String("payroll_id", p.ID.String()),
		zap.Int("month", p.Month),
		zap.Int("year", p.Year),
	)
	return mapToResponse(*created), nil
}

func (s *service) GetAll(
	ctx context.Context,
	companyID string,
	filter GetPayrollsFilterRequest,
) ([]PayrollResponse, error) {
	status := strings.ToUpper(strings.TrimSpace(filter.Status))
	if status != "" && !validStatus(status) {
		return nil, payrollerrors.ErrInvalidStatusFilter
	}

	payrolls, err := s.repo.FindAllByCompany(ctx, companyID, PayrollQueryFilter{
		EmployeeID: filter.EmployeeID,
		Month:      filter.Month,
		Year:       filter.Year,
		Status:     status,
	})
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	res := make([]PayrollResponse, len(payrolls))
	for i, p := range payrolls {
		res[i] = mapToResponse(p)
	}
	return res, nil
}

func (s *service) find(ctx context.Context, repo Repository, companyID, id string) (*Payroll, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, payrollerrors.ErrInvalidPayrollID
	}
	p, err := repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return p, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (PayrollResponse, error) {
	p, err := s.find(ctx, s.repo, companyID, id)
	if err != nil {
		return PayrollResponse{}, err
	}
	return mapToResponse(*p), nil
}

func (s *service) GetBreakdown(ctx context.Context, companyID, id string) (PayrollBreakdownResponse, error) {
	p, err := s.find(ctx, s.repo, companyID, id)
	if err != nil {
		return PayrollBreakdownResponse{}, err
	}
	return mapToBreakdown(*p), nil
}

// mutate loads the payroll inside a transaction, lets fn change it and saves it.
func (s *service) mutate(
	ctx context.Context,
	companyID, id string,
	fn func(tx *sql.Tx, p *Payroll) error,
) (*Payroll, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, payrollerrors.ErrInvalidPayrollID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := s.find(ctx, qtx, companyID, id)
	if err != nil {
		return nil, err
	}

	if err := fn(tx, p); err != nil {
		return nil, err
	}

	if err := qtx.Update(ctx, p); err != nil {
		return nil, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Update(
	ctx context.Context,
	companyID, id string,
	req UpdatePayrollRequest,
) (PayrollResponse, error) {
	p, err := s.mutate(ctx, companyID, id, func(_ *sql.Tx, p *Payroll) error {
		if p.Status != StatusDraft {
			return payrollerrors.ErrUpdateOnlyDraft
		}
		if req.Components != nil {
			if _, err := p.apply(req.Components.payrollInput()); err != nil {
				return err
			}
		}
		p.Notes = strings.TrimSpace(req.Notes)
		return nil
	})
	if err != nil {
		return PayrollResponse{}, err
	}
	return mapToResponse(*p), nil
}

// Regenerate recomputes a draft from the salary structure currently in force
// for its period.
func (s *service) Regenerate(ctx context.Context, companyID, id string) (PayrollResponse, error) {
	p, err := s.mutate(ctx, companyID, id, func(_ *sql.Tx, p *Payroll) error {
		if p.Status != StatusDraft {
			return payrollerrors.ErrUpdateOnlyDraft
		}
		in, err := s.componentsFor(ctx, companyID, p.EmployeeID.String(), p.Month, p.Year)
		if err != nil {
			return err
		}
		_, err = p.apply(in)
		return err
	})
	if err != nil {
		return PayrollResponse{}, err
	}
	return mapToResponse(*p), nil
}

func (s *service) Approve(ctx context.Context, companyID, actorID, id string) (PayrollResponse, error) {
	approver, err := uuid.Parse(actorID)
	if err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidActorID
	}
	rid := contextutil.GetRequestID(ctx)

	p, err := s.mutate(ctx, companyID, id, func(tx *sql.Tx, p *Payroll) error {
		if p.Status != StatusDraft {
			return payrollerrors.ErrInvalidStatusTransition
		}
		now := time.Now().UTC()
		p.Status = StatusApproved
		p.ApprovedBy = &approver
		p.ApprovedAt = &now

		if s.outbox == nil {
			return nil
		}
		event := events.PayrollPayslipRequestedEvent{
			EventType:   payslipRequestedEventType,
			RequestID:   rid,
			PayrollID:   p.ID.String(),
			CompanyID:   companyID,
			Month:       p.Month,
			Year:        p.Year,
			RequestedBy: approver.String(),
			OccurredAt:  now,
		}
		msg, err := kafka.NewOutboxEvent(kafka.AggregatePayroll, p.ID.String(), event.EventType,
			events.PayrollPayslipRequestedTopic, rid, event)
		if err != nil {
			return err
		}
		return s.outbox.WithTx(tx).Create(ctx, msg)
	})
	if err != nil {
		return PayrollResponse{}, err
	}

	s.logger.Info("payroll approved",
		zap.String("request_id", rid),
		zap.String("payroll_id", id),
		zap.String("approved_by", approver.String()),
	)
	return mapToResponse(*p), nil
}

func (s *service) MarkAsPaid(ctx context.Context, companyID, id string) (PayrollResponse, error) {
	p, err := s.mutate(ctx, companyID, id, func(_ *sql.Tx, p *Payroll) error {
		if p.Status != StatusApproved {
			return payrollerrors.ErrInvalidStatusTransition
		}
		now := time.Now().UTC()
		p.Status = StatusPaid
		p.PaidAt = &now
		return nil
	})
	if err != nil {
		return PayrollResponse{}, err
	}
	s.logger.Info("payroll paid", zap.String("payroll_id", id))
	return mapToResponse(*p), nil
}

func (s *service) Cancel(ctx context.Context, companyID, id string) (PayrollResponse, error) {
	p, err := s.mutate(ctx, companyID, id, func(_ *sql.Tx, p *Payroll) error {
		if p.Status != StatusDraft {
			return payrollerrors.ErrInvalidStatusTransition
		}
		p.Status = StatusCancelled
		return nil
	})
	if err != nil {
		return PayrollResponse{}, err
	}
	return mapToResponse(*p), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return payrollerrors.ErrInvalidPayrollID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := s.find(ctx, qtx, companyID, id)
	if err != nil {
		return err
	}
	if p.Status != StatusDraft && p.Status != StatusCancelled {
		return payrollerrors.ErrDeleteOnlyDraft
	}

	if err := qtx.Delete(ctx, companyID, id); err != nil {
		return mapRepositoryError(err)
	}

	return tx.Commit()
}

// GeneratePayslip renders the payslip PDF, stores it and records its URL.
// Calling it again overwrites the previous file.
func (s *service) GeneratePayslip(ctx context.Context, companyID, id string) (PayrollResponse, error) {
	p, err := s.find(ctx, s.repo, companyID, id)
	if err != nil {
		return PayrollResponse{}, err
	}
	if p.Status != StatusApproved && p.Status != StatusPaid {
		return PayrollResponse{}, payrollerrors.ErrPayslipNotAvailable
	}

	pdf, err := renderPayslipPDF(*p)
	if err != nil {
		return PayrollResponse{}, fmt.Errorf("render payslip: %w", err)
	}

	filename := fmt.Sprintf("payslip_%s_%04d%02d.pdf", p.ID.String(), p.Year, p.Month)
	if err := os.MkdirAll(s.storage.Dir, 0o755); err != nil {
		return PayrollResponse{}, err
	}
	if err := os.WriteFile(filepath.Join(s.storage.Dir, filename), pdf, 0o644); err != nil {
		return PayrollResponse{}, err
	}

	url := strings.TrimRight(s.storage.PublicBaseURL, "/") + "/" + filename
	now := time.Now().UTC()
	p.PayslipURL = &url
	p.PayslipGeneratedAt = &now

	if err := s.repo.Update(ctx, p); err != nil {
		return PayrollResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("payslip generated",
		zap.String("payroll_id", id),
		zap.String("file", filename),
		zap.Int("bytes", len(pdf)),
	)
	return mapToResponse(*p), nil
}

func validStatus(s string) bool {
	switch s {
	case StatusDraft, StatusApproved, StatusPaid, StatusCancelled:
		return true
	}
	return false
}

func mapRepositoryError(err error) error {
	return dberr.Mapper{
		NotFound:  payrollerrors.ErrPayrollNotFound,
		Duplicate: payrollerrors.ErrPayrollDuplicate,
	}.Map(err)
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.UTC().Format(time.RFC3339)
	return &v
}

func period(month, year int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

func mapToResponse(p Payroll) PayrollResponse {
	resp := PayrollResponse{
		ID:             p.ID.String(),
		CompanyID:      p.CompanyID.String(),
		EmployeeID:     p.EmployeeID.String(),
		EmployeeName:   p.EmployeeName,
		EmployeeNumber: p.EmployeeNumber,
		Month:          p.Month,
		Year:           p.Year,
		Period:         period(p.Month, p.Year),
		Earnings: EarningsResponse{
			BasicSalary: p.BasicSalary,
			HRA:         p.HRA,
			Allowances:  p.Allowances,
		},
		Deductions: DeductionsResponse{
			TDS:             p.TDS,
			PF:              p.PF,
			ESI:             p.ESI,
			ProfessionalTax: p.ProfessionalTax,
			Other:           p.OtherDeductions,
		},
		GrossSalary:        p.GrossSalary,
		TotalDeductions:    p.TotalDeductions,
		NetSalary:          p.NetSalary,
		NegativeNet:        p.NetSalary.IsNegative(),
		Status:             p.Status,
		Notes:              p.Notes,
		CreatedBy:          p.CreatedBy.String(),
		ApprovedAt:         formatTime(p.ApprovedAt),
		PaidAt:             formatTime(p.PaidAt),
		PayslipURL:         p.PayslipURL,
		PayslipGeneratedAt: formatTime(p.PayslipGeneratedAt),
	}
	if p.ApprovedBy != nil {
		v := p.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	return resp
}

func mapToBreakdown(p Payroll) PayrollBreakdownResponse {
	return PayrollBreakdownResponse{
		PayrollID: p.ID.String(),
		Period:    period(p.Month, p.Year),
		Earnings: []BreakdownLine{
			{Name: "Basic Salary", Amount: p.BasicSalary},
			{Name: "HRA", Amount: p.HRA},
			{Name: "Allowances", Amount: p.Allowances},
		},
		Deductions: []BreakdownLine{
			{Name: "TDS", Amount: p.TDS},
			{Name: "Provident Fund", Amount: p.PF},
			{Name: "ESI", Amount: p.ESI},
			{Name: "Professional Tax", Amount: p.ProfessionalTax},
			{Name: "Other", Amount: p.OtherDeductions},
		},
		GrossSalary:     p.GrossSalary,
		TotalDeductions: p.TotalDeductions,
		NetSalary:       p.NetSalary,
	}
}
