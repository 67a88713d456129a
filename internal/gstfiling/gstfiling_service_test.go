package gstfiling_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-taxdesk/internal/engine"
	"go-taxdesk/internal/gstfiling"
	gstfilingerrors "go-taxdesk/internal/gstfiling/errors"
	gstMock "go-taxdesk/internal/gstfiling/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

type serviceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	repo    *gstMock.MockRepository
	service gstfiling.Service
}

func setupServiceTest(t *testing.T, now time.Time) *serviceDeps {
	ctrl := gomock.NewController(t)
	db, sqlMock, _ := sqlmock.New()
	repo := gstMock.NewMockRepository(ctrl)
	t.Cleanup(func() { db.Close() })

	return &serviceDeps{
		db:      db,
		sqlMock: sqlMock,
		repo:    repo,
		service: gstfiling.NewService(db, repo, engine.NewStatusResolver(engine.FixedClock(now))),
	}
}

func TestDefaultDueDate(t *testing.T) {
	march := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	december := time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "2024-04-11", gstfiling.DefaultDueDate(engine.FilingTypeGSTR1, march).Format("2006-01-02"))
	assert.Equal(t, "2024-04-20", gstfiling.DefaultDueDate(engine.FilingTypeGSTR3B, march).Format("2006-01-02"))
	assert.Equal(t, "2025-01-20", gstfiling.DefaultDueDate(engine.FilingTypeGSTR3B, december).Format("2006-01-02"))
	assert.Equal(t, "2024-12-31", gstfiling.DefaultDueDate(engine.FilingTypeGSTR9, march).Format("2006-01-02"))
	assert.Equal(t, "2025-12-31", gstfiling.DefaultDueDate(engine.FilingTypeGSTR9C, december).Format("2006-01-02"))
}

func TestGSTFilingService_Create(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	clientID := uuid.New().String()
	now := time.Date(2024, time.April, 5, 9, 0, 0, 0, time.UTC)

	base := gstfiling.CreateGSTFilingRequest{
		ClientID:   clientID,
		FilingType: "gstr-3b",
		TaxPeriod:  "2024-03",
		OutputTax:  gstfiling.TaxHeadsRequest{IGST: dec("1000"), CGST: dec("500"), SGST: dec("500")},
		ITC:        gstfiling.TaxHeadsRequest{IGST: dec("300"), CGST: dec("100"), SGST: dec("100")},
		LateFee:    dec("50"),
	}

	t.Run("computes the ledger and starts pending", func(t *testing.T) {
		deps := setupServiceTest(t, now)

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().ClientBelongsToCompany(ctx, companyID, clientID).Return(true, nil)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, g *gstfiling.GSTFiling) error {
			assert.Equal(t, engine.FilingTypeGSTR3B, g.FilingType)
			assert.Equal(t, "2024-04-20", g.DueDate.Format("2006-01-02"))
			assert.True(t, g.TotalTaxLiability.Equal(dec("2000")))
			assert.True(t, g.TotalITC.Equal(dec("500")))
			assert.True(t, g.NetTaxPayable.Equal(dec("1550")))
			assert.Equal(t, "pending", g.Status)
			return nil
		})

		resp, err := deps.service.Create(ctx, companyID, "", base)

		assert.NoError(t, err)
		assert.Equal(t, "1550", resp.NetTaxPayable.String())
		assert.False(t, resp.RefundDue)
		assert.Nil(t, resp.FilingDate)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("excess credit is a refund, not an error", func(t *testing.T) {
		deps := setupServiceTest(t, now)

		req := base
		req.OutputTax = gstfiling.TaxHeadsRequest{IGST: dec("100")}
		req.ITC = gstfiling.TaxHeadsRequest{IGST: dec("300")}
		req.LateFee = decimal.Zero

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().ClientBelongsToCompany(ctx, companyID, clientID).Return(true, nil)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)

		resp, err := deps.service.Create(ctx, companyID, "", req)

		assert.NoError(t, err)
		assert.Equal(t, "-200", resp.NetTaxPayable.String())
		assert.True(t, resp.RefundDue)
	})

	t.Run("filed with ARN on time is completed", func(t *testing.T) {
		deps := setupServiceTest(t, now)

		req := base
		req.DueDate = "2024-04-20"
		req.FilingDate = "2024-04-18"
		req.ARN = "AA270424123456X"

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().ClientBelongsToCompany(ctx, companyID, clientID).Return(true, nil)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)

		resp, err := deps.service.Create(ctx, companyID, "", req)

		assert.NoError(t, err)
		assert.Equal(t, "completed", resp.Status)
	})

	t.Run("negative head is rejected before any write", func(t *testing.T) {
		deps := setupServiceTest(t, now)

		req := base
		req.ITC = gstfiling.TaxHeadsRequest{Cess: dec("-1")}
		_, err := deps.service.Create(ctx, companyID, "", req)

		assert.ErrorIs(t, err, engine.ErrValidation)
	})

	t.Run("unknown return type", func(t *testing.T) {
		deps := setupServiceTest(t, now)

		req := base
		req.FilingType = "GSTR-2"
		_, err := deps.service.Create(ctx, companyID, "", req)

		assert.ErrorIs(t, err, gstfilingerrors.ErrInvalidFilingType)
	})

	t.Run("bad tax period", func(t *testing.T) {
		deps := setupServiceTest(t, now)

		req := base
		req.TaxPeriod = "03/2024"
		_, err := deps.service.Create(ctx, companyID, "", req)

		assert.ErrorIs(t, err, engine.ErrValidation)
	})

	t.Run("duplicate period maps to conflict", func(t *testing.T) {
		deps := setupServiceTest(t, now)

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().ClientBelongsToCompany(ctx, companyID, clientID).Return(true, nil)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_gst_filings_client_type_period"})

		_, err := deps.service.Create(ctx, companyID, "", base)
		assert.ErrorIs(t, err, gstfilingerrors.ErrDuplicateFiling)
	})
}

func TestGSTFilingService_GetByID_ReResolvesStatus(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	id := uuid.New()
	stored := &gstfiling.GSTFiling{
		ID:            id,
		FilingType:    engine.FilingTypeGSTR1,
		TaxPeriod:     "2024-01",
		DueDate:       time.Date(2024, time.February, 11, 0, 0, 0, 0, time.UTC),
		Status:        "pending",
		NetTaxPayable: dec("10"),
	}

	deps := setupServiceTest(t, time.Date(2024, time.February, 12, 0, 0, 0, 0, time.UTC))
	deps.repo.EXPECT().FindByIDAndCompany(ctx, companyID, id.String()).Return(stored, nil)

	resp, err := deps.service.GetByID(ctx, companyID, id.String())
	assert.NoError(t, err)
	assert.Equal(t, "late", resp.Status)

	deps.repo.EXPECT().FindByIDAndCompany(ctx, companyID, gomock.Any()).Return(nil, gorm.ErrRecordNotFound)
	_, err = deps.service.GetByID(ctx, companyID, uuid.New().String())
	assert.ErrorIs(t, err, gstfilingerrors.ErrFilingNotFound)
}

func TestGSTFilingService_Update_Recomputes(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	id := uuid.New()
	now := time.Date(2024, time.April, 5, 0, 0, 0, 0, time.UTC)

	deps := setupServiceTest(t, now)
	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()
	deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
	deps.repo.EXPECT().FindByIDAndCompany(ctx, companyID, id.String()).Return(&gstfiling.GSTFiling{
		ID:                id,
		Status:            "pending",
		TotalTaxLiability: dec("999"),
		NetTaxPayable:     dec("999"),
	}, nil)
	deps.repo.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, g *gstfiling.GSTFiling) error {
		assert.True(t, g.TotalTaxLiability.Equal(dec("20.1")))
		assert.True(t, g.TotalITC.Equal(dec("1.1")))
		assert.True(t, g.NetTaxPayable.Equal(dec("21")))
		return nil
	})

	resp, err := deps.service.Update(ctx, companyID, id.String(), gstfiling.UpdateGSTFilingRequest{
		FilingType: "GSTR-1",
		TaxPeriod:  "2024-03",
		OutputTax:  gstfiling.TaxHeadsRequest{CGST: dec("10.05"), SGST: dec("10.05")},
		ITC:        gstfiling.TaxHeadsRequest{Cess: dec("1.1")},
		Penalty:    dec("2"),
	})

	assert.NoError(t, err)
	assert.Equal(t, "21", resp.NetTaxPayable.String())
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestGSTFilingService_File(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	id := uuid.New()
	due := time.Date(2024, time.February, 11, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	t.Run("late filing with ARN reads completed", func(t *testing.T) {
		deps := setupServiceTest(t, now)
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDAndCompany(ctx, companyID, id.String()).Return(&gstfiling.GSTFiling{ID: id, DueDate: due, Status: "late"}, nil)
		deps.repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)

		resp, err := deps.service.File(ctx, companyID, id.String(), gstfiling.FileReturnRequest{FilingDate: "2024-02-15", ARN: "AA123"})

		assert.NoError(t, err)
		assert.Equal(t, "completed", resp.Status)
		assert.Equal(t, "2024-02-15", *resp.FilingDate)
	})

	t.Run("late filing without ARN stays late", func(t *testing.T) {
		deps := setupServiceTest(t, now)
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDAndCompany(ctx, companyID, id.String()).Return(&gstfiling.GSTFiling{ID: id, DueDate: due, Status: "late"}, nil)
		deps.repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)

		resp, err := deps.service.File(ctx, companyID, id.String(), gstfiling.FileReturnRequest{FilingDate: "2024-02-15"})

		assert.NoError(t, err)
		assert.Equal(t, "late", resp.Status)
	})

	t.Run("cancelled filing is frozen", func(t *testing.T) {
		deps := setupServiceTest(t, now)
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDAndCompany(ctx, companyID, id.String()).Return(&gstfiling.GSTFiling{ID: id, DueDate: due, Status: "cancelled"}, nil)

		_, err := deps.service.File(ctx, companyID, id.String(), gstfiling.FileReturnRequest{FilingDate: "2024-02-10"})
		assert.ErrorIs(t, err, gstfilingerrors.ErrFilingCancelled)
	})

	t.Run("missing filing date", func(t *testing.T) {
		deps := setupServiceTest(t, now)
		_, err := deps.service.File(ctx, companyID, id.String(), gstfiling.FileReturnRequest{FilingDate: " "})
		assert.ErrorIs(t, err, gstfilingerrors.ErrInvalidDate)
	})
}

func TestGSTFilingService_Cancel(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	id := uuid.New()

	deps := setupServiceTest(t, time.Now())
	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()
	deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
	deps.repo.EXPECT().FindByIDAndCompany(ctx, companyID, id.String()).Return(&gstfiling.GSTFiling{ID: id, Status: "pending"}, nil)
	deps.repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)

	resp, err := deps.service.Cancel(ctx, companyID, id.String())
	assert.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
}

func TestGSTFilingService_SummarizePeriod(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	deps := setupServiceTest(t, time.Now())

	want := gstfiling.PeriodSummary{TaxPeriod: "2024-03", Filings: 2, TotalITC: dec("800")}
	deps.repo.EXPECT().SummarizePeriod(ctx, companyID, "2024-03").Return(want, nil)

	got, err := deps.service.SummarizePeriod(ctx, companyID, "2024-03")
	assert.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = deps.service.SummarizePeriod(ctx, companyID, "")
	assert.ErrorIs(t, err, engine.ErrValidation)
}
