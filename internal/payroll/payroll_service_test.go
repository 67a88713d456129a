package payroll_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	employeesalaryerrors "go-taxdesk/internal/employeesalary/errors"
	"go-taxdesk/internal/engine"
	"go-taxdesk/internal/events"
	"go-taxdesk/internal/messaging/kafka"
	"go-taxdesk/internal/payroll"
	payrollerrors "go-taxdesk/internal/payroll/errors"
	payrollMock "go-taxdesk/internal/payroll/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type fakePayrollRepository struct {
	createFn                 func(ctx context.Context, p *payroll.Payroll) error
	findAllByCompanyFn       func(ctx context.Context, companyID string, filter payroll.PayrollQueryFilter) ([]payroll.Payroll, error)
	findByIDAndCompanyFn     func(ctx context.Context, companyID string, id string) (*payroll.Payroll, error)
	updateFn                 func(ctx context.Context, p *payroll.Payroll) error
	deleteFn                 func(ctx context.Context, companyID string, id string) error
	employeeBelongsToCompany func(ctx context.Context, companyID string, employeeID string) (bool, error)
	existsForPeriodFn        func(ctx context.Context, companyID, employeeID string, month, year int) (bool, error)
}

func (f *fakePayrollRepository) WithTx(tx *sql.Tx) payroll.Repository {
	return f
}

func (f *fakePayrollRepository) Create(ctx context.Context, p *payroll.Payroll) error {
	if f.createFn != nil {
		return f.createFn(ctx, p)
	}
	return nil
}

func (f *fakePayrollRepository) FindAllByCompany(ctx context.Context, companyID string, filter payroll.PayrollQueryFilter) ([]payroll.Payroll, error) {
	if f.findAllByCompanyFn != nil {
		return f.findAllByCompanyFn(ctx, companyID, filter)
	}
	return nil, nil
}

func (f *fakePayrollRepository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*payroll.Payroll, error) {
	if f.findByIDAndCompanyFn != nil {
		return f.findByIDAndCompanyFn(ctx, companyID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePayrollRepository) Update(ctx context.Context, p *payroll.Payroll) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, p)
	}
	return nil
}

func (f *fakePayrollRepository) Delete(ctx context.Context, companyID string, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, companyID, id)
	}
	return nil
}

func (f *fakePayrollRepository) EmployeeBelongsToCompany(ctx context.Context, companyID string, employeeID string) (bool, error) {
	if f.employeeBelongsToCompany != nil {
		return f.employeeBelongsToCompany(ctx, companyID, employeeID)
	}
	return true, nil
}

func (f *fakePayrollRepository) ExistsForPeriod(ctx context.Context, companyID, employeeID string, month, year int) (bool, error) {
	if f.existsForPeriodFn != nil {
		return f.existsForPeriodFn(ctx, companyID, employeeID, month, year)
	}
	return false, nil
}

type fakeOutboxRepository struct {
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository {
	return f
}

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error {
	return nil
}

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type fakeSalaryLookup struct {
	fn func(ctx context.Context, companyID, employeeID string, asOf time.Time) (engine.PayrollInput, error)
}

func (f *fakeSalaryLookup) EffectiveComponents(ctx context.Context, companyID, employeeID string, asOf time.Time) (engine.PayrollInput, error) {
	return f.fn(ctx, companyID, employeeID, asOf)
}

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

type payrollServiceDeps struct {
	db       *sql.DB
	sqlMock  sqlmock.Sqlmock
	service  payroll.Service
	repo     *fakePayrollRepository
	outbox   *fakeOutboxRepository
	salaries *fakeSalaryLookup
	dir      string
}

func setupPayrollServiceTest(t *testing.T) *payrollServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	salaries := &fakeSalaryLookup{fn: func(ctx context.Context, companyID, employeeID string, asOf time.Time) (engine.PayrollInput, error) {
		return engine.PayrollInput{}, employeesalaryerrors.ErrSalaryNotFound
	}}
	deps := &payrollServiceDeps{
		db:       db,
		sqlMock:  sqlMock,
		repo:     &fakePayrollRepository{},
		outbox:   &fakeOutboxRepository{},
		salaries: salaries,
		dir:      t.TempDir(),
	}
	deps.service = payroll.NewService(db, deps.repo, deps.outbox, deps.salaries, payroll.PayslipStorage{
		Dir:           deps.dir,
		PublicBaseURL: "/files/payslips/",
	})
	return deps
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func samplePayroll(companyID, status string) *payroll.Payroll {
	return &payroll.Payroll{
		ID:              uuid.New(),
		CompanyID:       uuid.MustParse(companyID),
		EmployeeID:      uuid.New(),
		EmployeeName:    "Asha Rao",
		EmployeeNumber:  "EMP-000001",
		Month:           3,
		Year:            2024,
		BasicSalary:     d("50000"),
		HRA:             d("15000"),
		Allowances:      d("5000"),
		TDS:             d("5000"),
		PF:              d("6000"),
		ESI:             d("750"),
		ProfessionalTax: d("200"),
		OtherDeductions: d("0"),
		GrossSalary:     d("70000"),
		TotalDeductions: d("11950"),
		NetSalary:       d("58050"),
		Status:          status,
		CreatedBy:       uuid.New(),
	}
}

func TestPayrollService_Create_WithComponents(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	actorID := uuid.New().String()
	employeeID := uuid.New().String()

	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()
	expectTx(t, deps.sqlMock, true)

	var stored *payroll.Payroll
	deps.repo.createFn = func(ctx context.Context, p *payroll.Payroll) error {
		assert.Equal(t, payroll.StatusDraft, p.Status)
		assert.True(t, p.GrossSalary.Equal(d("70000")))
		assert.True(t, p.TotalDeductions.Equal(d("12250")))
		assert.True(t, p.NetSalary.Equal(d("57750")))
		stored = p
		return nil
	}
	deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*payroll.Payroll, error) {
		assert.Equal(t, stored.ID.String(), id)
		return stored, nil
	}

	resp, err := deps.service.Create(ctx, companyID, actorID, payroll.CreatePayrollRequest{
		EmployeeID: employeeID,
		Month:      3,
		Year:       2024,
		Components: &payroll.PayrollComponentsRequest{
			BasicSalary:     d("50000"),
			HRA:             d("15000"),
			Allowances:      d("5000"),
			TDS:             d("5000"),
			PF:              d("6000"),
			ESI:             d("750"),
			OtherDeductions: d("500"),
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, "2024-03", resp.Period)
	assert.Equal(t, actorID, resp.CreatedBy)
	assert.True(t, resp.NetSalary.Equal(d("57750")))
	assert.False(t, resp.NegativeNet)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayrollService_Create_FallsBackToSalaryStructure(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	employeeID := uuid.New().String()

	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()
	expectTx(t, deps.sqlMock, true)

	deps.salaries.fn = func(ctx context.Context, cid, eid string, asOf time.Time) (engine.PayrollInput, error) {
		assert.Equal(t, employeeID, eid)
		assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), asOf)
		return engine.PayrollInput{
			BasicSalary: d("40000"),
			HRA:         d("10000"),
			Deductions:  engine.Deductions{PF: d("4800"), ProfessionalTax: d("200")},
		}, nil
	}
	var stored *payroll.Payroll
	deps.repo.createFn = func(ctx context.Context, p *payroll.Payroll) error {
		stored = p
		return nil
	}
	deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*payroll.Payroll, error) {
		return stored, nil
	}

	resp, err := deps.service.Create(ctx, companyID, uuid.New().String(), payroll.CreatePayrollRequest{
		EmployeeID: employeeID,
		Month:      2,
		Year:       2024,
	})

	assert.NoError(t, err)
	assert.True(t, resp.GrossSalary.Equal(d("50000")))
	assert.True(t, resp.TotalDeductions.Equal(d("5000")))
	assert.True(t, resp.NetSalary.Equal(d("45000")))
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayrollService_Create_MissingSalaryStructure(t *testing.T) {
	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()

	_, err := deps.service.Create(context.Background(), uuid.New().String(), uuid.New().String(), payroll.CreatePayrollRequest{
		EmployeeID: uuid.New().String(),
		Month:      1,
		Year:       2024,
	})

	assert.ErrorIs(t, err, payrollerrors.ErrSalaryStructureMissing)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayrollService_Create_NegativeComponent(t *testing.T) {
	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()

	_, err := deps.service.Create(context.Background(), uuid.New().String(), uuid.New().String(), payroll.CreatePayrollRequest{
		EmployeeID: uuid.New().String(),
		Month:      1,
		Year:       2024,
		Components: &payroll.PayrollComponentsRequest{BasicSalary: d("-1")},
	})

	assert.True(t, errors.Is(err, engine.ErrValidation))
}

func TestPayrollService_Create_NegativeNetIsAllowed(t *testing.T) {
	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()
	expectTx(t, deps.sqlMock, true)

	var stored *payroll.Payroll
	deps.repo.createFn = func(ctx context.Context, p *payroll.Payroll) error {
		stored = p
		return nil
	}
	deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*payroll.Payroll, error) {
		return stored, nil
	}

	resp, err := deps.service.Create(context.Background(), uuid.New().String(), uuid.New().String(), payroll.CreatePayrollRequest{
		EmployeeID: uuid.New().String(),
		Month:      5,
		Year:       2024,
		Components: &payroll.PayrollComponentsRequest{BasicSalary: d("1000"), TDS: d("1500")},
	})

	assert.NoError(t, err)
	assert.True(t, resp.NetSalary.Equal(d("-500")))
	assert.True(t, resp.NegativeNet)
}

func TestPayrollService_Create_Duplicate(t *testing.T) {
	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()
	expectTx(t, deps.sqlMock, false)

	deps.repo.existsForPeriodFn = func(ctx context.Context, cid, eid string, month, year int) (bool, error) {
		assert.Equal(t, 4, month)
		assert.Equal(t, 2024, year)
		return true, nil
	}
	deps.repo.createFn = func(ctx context.Context, p *payroll.Payroll) error {
		t.Fatal("create must not be called for a duplicate period")
		return nil
	}

	_, err := deps.service.Create(context.Background(), uuid.New().String(), uuid.New().String(), payroll.CreatePayrollRequest{
		EmployeeID: uuid.New().String(),
		Month:      4,
		Year:       2024,
		Components: &payroll.PayrollComponentsRequest{BasicSalary: d("1000")},
	})

	assert.ErrorIs(t, err, payrollerrors.ErrPayrollDuplicate)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayrollService_Create_EmployeeOutsideCompany(t *testing.T) {
	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()
	expectTx(t, deps.sqlMock, false)

	deps.repo.employeeBelongsToCompany = func(ctx context.Context, cid, eid string) (bool, error) {
		return false, nil
	}

	_, err := deps.service.Create(context.Background(), uuid.New().String(), uuid.New().String(), payroll.CreatePayrollRequest{
		EmployeeID: uuid.New().String(),
		Month:      4,
		Year:       2024,
		Components: &payroll.PayrollComponentsRequest{BasicSalary: d("1000")},
	})

	assert.ErrorIs(t, err, payrollerrors.ErrEmployeeNotInCompany)
}

func TestPayrollService_GetAll_InvalidStatus(t *testing.T) {
	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()

	_, err := deps.service.GetAll(context.Background(), uuid.New().String(), payroll.GetPayrollsFilterRequest{Status: "SETTLED"})

	assert.ErrorIs(t, err, payrollerrors.ErrInvalidStatusFilter)
}

func TestPayrollService_GetAll_NormalizesStatus(t *testing.T) {
	companyID := uuid.New().String()
	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()

	deps.repo.findAllByCompanyFn = func(ctx context.Context, cid string, filter payroll.PayrollQueryFilter) ([]payroll.Payroll, error) {
		assert.Equal(t, payroll.StatusApproved, filter.Status)
		return []payroll.Payroll{*samplePayroll(companyID, payroll.StatusApproved)}, nil
	}

	res, err := deps.service.GetAll(context.Background(), companyID, payroll.GetPayrollsFilterRequest{Status: "approved"})

	assert.NoError(t, err)
	assert.Len(t, res, 1)
	assert.Equal(t, "Asha Rao", res[0].EmployeeName)
}

func TestPayrollService_GetByID_InvalidID(t *testing.T) {
	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()

	_, err := deps.service.GetByID(context.Background(), uuid.New().String(), "not-a-uuid")

	assert.ErrorIs(t, err, payrollerrors.ErrInvalidPayrollID)
}

func TestPayrollService_GetByID_NotFound(t *testing.T) {
	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()

	_, err := deps.service.GetByID(context.Background(), uuid.New().String(), uuid.New().String())

	assert.ErrorIs(t, err, payrollerrors.ErrPayrollNotFound)
}

func TestPayrollService_GetBreakdown(t *testing.T) {
	companyID := uuid.New().String()
	p := samplePayroll(companyID, payroll.StatusDraft)

	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()
	deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*payroll.Payroll, error) {
		return p, nil
	}

	res, err := deps.service.GetBreakdown(context.Background(), companyID, p.ID.String())

	assert.NoError(t, err)
	assert.Len(t, res.Earnings, 3)
	assert.Len(t, res.Deductions, 5)
	assert.Equal(t, "Professional Tax", res.Deductions[3].Name)
	assert.True(t, res.NetSalary.Equal(d("58050")))
}

func TestPayrollService_Update_RecomputesDraft(t *testing.T) {
	companyID := uuid.New().String()
	p := samplePayroll(companyID, payroll.StatusDraft)

	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()
	expectTx(t, deps.sqlMock, true)

	deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*payroll.Payroll, error) {
		return p, nil
	}
	deps.repo.updateFn = func(ctx context.Context, updated *payroll.Payroll) error {
		assert.True(t, updated.GrossSalary.Equal(d("60000")))
		return nil
	}

	resp, err := deps.service.Update(context.Background(), companyID, p.ID.String(), payroll.UpdatePayrollRequest{
		Components: &payroll.PayrollComponentsRequest{BasicSalary: d("60000"), PF: d("7200")},
		Notes:      " bonus removed ",
	})

	assert.NoError(t, err)
	assert.True(t, resp.NetSalary.Equal(d("52800")))
	assert.Equal(t, "bonus removed", resp.Notes)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayrollService_Update_WithoutComponentsKeepsAmounts(t *testing.T) {
	companyID := uuid.New().String()
	p := samplePayroll(companyID, payroll.StatusDraft)

	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()
	expectTx(t, deps.sqlMock, true)

	deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*payroll.Payroll, error) {
		return p, nil
	}
	deps.repo.updateFn = func(ctx context.Context, updated *payroll.Payroll) error {
		assert.True(t, updated.BasicSalary.Equal(d("50000")))
		assert.True(t, updated.GrossSalary.Equal(d("70000")))
		assert.True(t, updated.NetSalary.Equal(d("58050")))
		return nil
	}

	resp, err := deps.service.Update(context.Background(), companyID, p.ID.String(), payroll.UpdatePayrollRequest{
		Notes: "x",
	})

	assert.NoError(t, err)
	assert.True(t, resp.NetSalary.Equal(d("58050")))
	assert.True(t, resp.Earnings.BasicSalary.Equal(d("50000")))
	assert.Equal(t, "x", resp.Notes)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayrollService_Update_OnlyDraft(t *testing.T) {
	companyID := uuid.New().String()
	p := samplePayroll(companyID, payroll.StatusApproved)

	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()
	expectTx(t, deps.sqlMock, false)

	deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*payroll.Payroll, error) {
		return p, nil
	}

	_, err := deps.service.Update(context.Background(), companyID, p.ID.String(), payroll.UpdatePayrollRequest{})

	assert.ErrorIs(t, err, payrollerrors.ErrUpdateOnlyDraft)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayrollService_Regenerate(t *testing.T) {
	companyID := uuid.New().String()
	p := samplePayroll(companyID, payroll.StatusDraft)

	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()
	expectTx(t, deps.sqlMock, true)

	deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*payroll.Payroll, error) {
		return p, nil
	}
	deps.salaries.fn = func(ctx context.Context, cid, eid string, asOf time.Time) (engine.PayrollInput, error) {
		assert.Equal(t, p.EmployeeID.String(), eid)
		assert.Equal(t, time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC), asOf)
		return engine.PayrollInput{BasicSalary: d("80000")}, nil
	}

	resp, err := deps.service.Regenerate(context.Background(), companyID, p.ID.String())

	assert.NoError(t, err)
	assert.True(t, resp.GrossSalary.Equal(d("80000")))
	assert.True(t, resp.TotalDeductions.IsZero())
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayrollService_Approve_QueuesPayslip(t *testing.T) {
	companyID := uuid.New().String()
	approverID := uuid.New().String()
	p := samplePayroll(companyID, payroll.StatusDraft)

	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()
	expectTx(t, deps.sqlMock, true)

	deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*payroll.Payroll, error) {
		return p, nil
	}
	queued := false
	deps.outbox.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
		queued = true
		assert.Equal(t, events.PayrollPayslipRequestedTopic, event.Topic)
		assert.Equal(t, kafka.AggregatePayroll, event.AggregateType)
		assert.Equal(t, p.ID.String(), event.AggregateID)
		assert.Equal(t, kafka.OutboxStatusPending, event.Status)

		var payload events.PayrollPayslipRequestedEvent
		assert.NoError(t, json.Unmarshal(event.Payload, &payload))
		assert.Equal(t, companyID, payload.CompanyID)
		assert.Equal(t, approverID, payload.RequestedBy)
		assert.Equal(t, 3, payload.Month)
		return nil
	}

	resp, err := deps.service.Approve(context.Background(), companyID, approverID, p.ID.String())

	assert.NoError(t, err)
	assert.True(t, queued)
	assert.Equal(t, payroll.StatusApproved, resp.Status)
	if assert.NotNil(t, resp.ApprovedBy) {
		assert.Equal(t, approverID, *resp.ApprovedBy)
	}
	assert.NotNil(t, resp.ApprovedAt)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayrollService_Approve_OutboxFailureRollsBack(t *testing.T) {
	companyID := uuid.New().String()
	p := samplePayroll(companyID, payroll.StatusDraft)

	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()
	expectTx(t, deps.sqlMock, false)

	deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*payroll.Payroll, error) {
		return p, nil
	}
	deps.repo.updateFn = func(ctx context.Context, p *payroll.Payroll) error {
		t.Fatal("update must not run when the outbox insert fails")
		return nil
	}
	deps.outbox.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
		return errors.New("outbox down")
	}

	_, err := deps.service.Approve(context.Background(), companyID, uuid.New().String(), p.ID.String())

	assert.EqualError(t, err, "outbox down")
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayrollService_StatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		run     func(svc payroll.Service, companyID, id string) (payroll.PayrollResponse, error)
		want    string
		wantErr error
	}{
		{
			name: "approved to paid",
			from: payroll.StatusApproved,
			run: func(svc payroll.Service, companyID, id string) (payroll.PayrollResponse, error) {
				return svc.MarkAsPaid(context.Background(), companyID, id)
			},
			want: payroll.StatusPaid,
		},
		{
			name: "draft cannot be paid",
			from: payroll.StatusDraft,
			run: func(svc payroll.Service, companyID, id string) (payroll.PayrollResponse, error) {
				return svc.MarkAsPaid(context.Background(), companyID, id)
			},
			wantErr: payrollerrors.ErrInvalidStatusTransition,
		},
		{
			name: "draft to cancelled",
			from: payroll.StatusDraft,
			run: func(svc payroll.Service, companyID, id string) (payroll.PayrollResponse, error) {
				return svc.Cancel(context.Background(), companyID, id)
			},
			want: payroll.StatusCancelled,
		},
		{
			name: "paid cannot be cancelled",
			from: payroll.StatusPaid,
			run: func(svc payroll.Service, companyID, id string) (payroll.PayrollResponse, error) {
				return svc.Cancel(context.Background(), companyID, id)
			},
			wantErr: payrollerrors.ErrInvalidStatusTransition,
		},
		{
			name: "cancelled cannot be approved",
			from: payroll.StatusCancelled,
			run: func(svc payroll.Service, companyID, id string) (payroll.PayrollResponse, error) {
				return svc.Approve(context.Background(), companyID, uuid.New().String(), id)
			},
			wantErr: payrollerrors.ErrInvalidStatusTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			companyID := uuid.New().String()
			p := samplePayroll(companyID, tt.from)

			deps := setupPayrollServiceTest(t)
			defer deps.db.Close()
			expectTx(t, deps.sqlMock, tt.wantErr == nil)

			deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*payroll.Payroll, error) {
				return p, nil
			}

			resp, err := tt.run(deps.service, companyID, p.ID.String())

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, resp.Status)
			assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		})
	}
}

func TestPayrollService_Delete(t *testing.T) {
	t.Run("draft is removed", func(t *testing.T) {
		companyID := uuid.New().String()
		p := samplePayroll(companyID, payroll.StatusDraft)

		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*payroll.Payroll, error) {
			return p, nil
		}
		deleted := false
		deps.repo.deleteFn = func(ctx context.Context, cid, id string) error {
			deleted = true
			return nil
		}

		err := deps.service.Delete(context.Background(), companyID, p.ID.String())

		assert.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("paid is kept", func(t *testing.T) {
		companyID := uuid.New().String()
		p := samplePayroll(companyID, payroll.StatusPaid)

		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*payroll.Payroll, error) {
			return p, nil
		}

		err := deps.service.Delete(context.Background(), companyID, p.ID.String())

		assert.ErrorIs(t, err, payrollerrors.ErrDeleteOnlyDraft)
	})
}

func TestPayrollService_GeneratePayslip(t *testing.T) {
	companyID := uuid.New().String()
	p := samplePayroll(companyID, payroll.StatusApproved)

	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()

	deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*payroll.Payroll, error) {
		return p, nil
	}
	var saved *payroll.Payroll
	deps.repo.updateFn = func(ctx context.Context, updated *payroll.Payroll) error {
		saved = updated
		return nil
	}

	resp, err := deps.service.GeneratePayslip(context.Background(), companyID, p.ID.String())

	assert.NoError(t, err)
	filename := "payslip_" + p.ID.String() + "_202403.pdf"
	if assert.NotNil(t, resp.PayslipURL) {
		assert.Equal(t, "/files/payslips/"+filename, *resp.PayslipURL)
	}
	assert.NotNil(t, resp.PayslipGeneratedAt)
	assert.NotNil(t, saved)

	content, err := os.ReadFile(filepath.Join(deps.dir, filename))
	assert.NoError(t, err)
	assert.True(t, len(content) > 4)
	assert.Equal(t, "%PDF", string(content[:4]))
}

func TestPayrollService_GeneratePayslip_RequiresApproval(t *testing.T) {
	companyID := uuid.New().String()
	p := samplePayroll(companyID, payroll.StatusDraft)

	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()
	deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*payroll.Payroll, error) {
		return p, nil
	}

	_, err := deps.service.GeneratePayslip(context.Background(), companyID, p.ID.String())

	assert.ErrorIs(t, err, payrollerrors.ErrPayslipNotAvailable)
	entries, _ := os.ReadDir(deps.dir)
	assert.Empty(t, entries)
}

func TestPayrollService_Regenerate_UsesStructureAtMonthEnd(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := payrollMock.NewMockRepository(ctrl)
	salaries := payrollMock.NewMockSalaryLookup(ctrl)
	svc := payroll.NewService(db, repo, &fakeOutboxRepository{}, salaries, payroll.PayslipStorage{Dir: t.TempDir()})

	companyID := uuid.NewString()
	existing := samplePayroll(companyID, payroll.StatusDraft)
	existing.Month, existing.Year = 2, 2024

	expectTx(t, sqlMock, true)
	repo.EXPECT().WithTx(gomock.Any()).Return(repo)
	repo.EXPECT().FindByIDAndCompany(ctx, companyID, existing.ID.String()).Return(existing, nil)
	salaries.EXPECT().EffectiveComponents(ctx, companyID, existing.EmployeeID.String(), time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)).
		Return(engine.PayrollInput{BasicSalary: d("30000"), Deductions: engine.Deductions{PF: d("3600")}}, nil)
	repo.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, p *payroll.Payroll) error {
		assert.True(t, p.GrossSalary.Equal(d("30000")))
		assert.True(t, p.HRA.IsZero())
		assert.True(t, p.NetSalary.Equal(d("26400")))
		return nil
	})

	resp, err := svc.Regenerate(ctx, companyID, existing.ID.String())

	assert.NoError(t, err)
	assert.Equal(t, "26400.00", resp.NetSalary.StringFixed(2))
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}
