package gstfiling

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"go-taxdesk/internal/engine"
	gstfilingerrors "go-taxdesk/internal/gstfiling/errors"
	"go-taxdesk/internal/shared/dberr"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=gstfiling_service.go -destination=mock/gstfiling_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID, actorID string, req CreateGSTFilingRequest) (GSTFilingResponse, error)
	GetAll(ctx context.Context, companyID string, filter GSTFilingFilter) ([]GSTFilingResponse, int64, error)
	GetByID(ctx context.Context, companyID, id string) (GSTFilingResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateGSTFilingRequest) (GSTFilingResponse, error)
	File(ctx context.Context, companyID, id string, req FileReturnRequest) (GSTFilingResponse, error)
	Cancel(ctx context.Context, companyID, id string) (GSTFilingResponse, error)
	Delete(ctx context.Context, companyID, id string) error
	SummarizePeriod(ctx context.Context, companyID, taxPeriod string) (PeriodSummary, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	resolver *engine.StatusResolver
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, resolver *engine.StatusResolver, logger ...*zap.Logger) Service {
	l := zap.L().Named("gstfiling.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("gstfiling.service")
	}
	if resolver == nil {
		resolver = engine.NewStatusResolver(nil)
	}
	return &service{db: db, repo: repo, resolver: resolver, logger: l}
}

// DefaultDueDate returns the statutory due date for a return when none is given:
// GSTR-1 on the 11th and GSTR-3B on the 20th of the following month, annual
// returns on 31 December after the financial year (April to March) closes.
func DefaultDueDate(filingType string, period time.Time) time.Time {
	switch filingType {
	case engine.FilingTypeGSTR1:
		return time.Date(period.Year(), period.Month()+1, 11, 0, 0, 0, 0, time.UTC)
	case engine.FilingTypeGSTR3B:
		return time.Date(period.Year(), period.Month()+1, 20, 0, 0, 0, 0, time.UTC)
	default:
		fyEnd := period.Year()
		if period.Month() >= time.April {
			fyEnd++
		}
		return time.Date(fyEnd, time.December, 31, 0, 0, 0, 0, time.UTC)
	}
}

func parseOptionalDate(v string) (*time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return nil, gstfilingerrors.ErrInvalidDate
	}
	return &t, nil
}

type ledgerFields struct {
	filingType string
	taxPeriod  string
	dueDate    time.Time
	filingDate *time.Time
	arn        string
	outputTax  TaxHeadColumns
	itc        TaxHeadColumns
	lateFee    decimal.Decimal
	penalty    decimal.Decimal
	notes      string
}

func toHeads(r TaxHeadsRequest) TaxHeadColumns {
	return TaxHeadColumns{IGST: r.IGST, CGST: r.CGST, SGST: r.SGST, Cess: r.Cess}
}

func (c TaxHeadColumns) toEngine() engine.TaxHeads {
	return engine.TaxHeads{IGST: c.IGST, CGST: c.CGST, SGST: c.SGST, Cess: c.Cess}
}

// resolveFields validates the filing header and fills defaults.
func resolveFields(filingType, taxPeriod, dueDate, filingDate, arn string) (ledgerFields, error) {
	f := ledgerFields{
		filingType: strings.ToUpper(strings.TrimSpace(filingType)),
		taxPeriod:  strings.TrimSpace(taxPeriod),
		arn:        strings.TrimSpace(arn),
	}
	if !engine.ValidFilingType(f.filingType) {
		return ledgerFields{}, gstfilingerrors.ErrInvalidFilingType
	}
	period, err := engine.ParseTaxPeriod(f.taxPeriod)
	if err != nil {
		return ledgerFields{}, err
	}

	due, err := parseOptionalDate(dueDate)
	if err != nil {
		return ledgerFields{}, err
	}
	if due == nil {
		d := DefaultDueDate(f.filingType, period)
		due = &d
	}
	f.dueDate = *due

	if f.filingDate, err = parseOptionalDate(filingDate); err != nil {
		return ledgerFields{}, err
	}
	return f, nil
}

// apply recomputes the whole ledger and the status, then copies everything
// onto the entity. Nothing is written when the engine rejects the input.
func (s *service) apply(g *GSTFiling, f ledgerFields) error {
	ledger, err := engine.ComputeGSTLedger(engine.GSTLedgerInput{
		OutputTax: f.outputTax.toEngine(),
		ITC:       f.itc.toEngine(),
		LateFee:   f.lateFee,
		Penalty:   f.penalty,
	})
	if err != nil {
		return err
	}

	g.FilingType = f.filingType
	g.TaxPeriod = f.taxPeriod
	g.DueDate = f.dueDate
	g.FilingDate = f.filingDate
	g.ARN = f.arn
	g.OutputTax = f.outputTax
	g.ITC = f.itc
	g.LateFee = f.lateFee
	g.Penalty = f.penalty
	g.Notes = f.notes
	g.TotalTaxLiability = ledger.TotalTaxLiability
	g.TotalITC = ledger.TotalITC
	g.NetTaxPayable = ledger.NetTaxPayable
	g.Status = string(s.resolve(*g))
	return nil
}

func (s *service) resolve(g GSTFiling) engine.ComplianceStatus {
	return s.resolver.Resolve(engine.StatusInput{
		DueDate:              g.DueDate,
		FilingDate:           g.FilingDate,
		AcknowledgmentNumber: g.ARN,
		Current:              engine.ComplianceStatus(g.Status),
	})
}

func (s *service) Create(ctx context.Context, companyID, actorID string, req CreateGSTFilingRequest) (GSTFilingResponse, error) {
	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return GSTFilingResponse{}, gstfilingerrors.ErrClientNotFound
	}

	f, err := resolveFields(req.FilingType, req.TaxPeriod, req.DueDate, req.FilingDate, req.ARN)
	if err != nil {
		return GSTFilingResponse{}, err
	}
	f.outputTax = toHeads(req.OutputTax)
	f.itc = toHeads(req.ITC)
	f.lateFee = req.LateFee
	f.penalty = req.Penalty
	f.notes = strings.TrimSpace(req.Notes)

	g := &GSTFiling{
		ID:        uuid.New(),
		CompanyID: uuid.MustParse(companyID),
		ClientID:  clientID,
		Status:    string(engine.StatusPending),
	}
	if actor, err := uuid.Parse(actorID); err == nil {
		g.CreatedBy = actor
	}
	if err := s.apply(g, f); err != nil {
		return GSTFilingResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return GSTFilingResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	ok, err := qtx.ClientBelongsToCompany(ctx, companyID, req.ClientID)
	if err != nil {
		return GSTFilingResponse{}, err
	}
	if !ok {
		return GSTFilingResponse{}, gstfilingerrors.ErrClientNotFound
	}

	if err := qtx.Create(ctx, g); err != nil {
		return GSTFilingResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return GSTFilingResponse{}, err
	}

	s.logger.Info("gst filing created",
		zap.String("filing_id", g.ID.String()),
		zap.String("filing_type", g.FilingType),
		zap.String("tax_period", g.TaxPeriod),
		zap.Bool("refund_due", g.NetTaxPayable.IsNegative()),
	)

	return s.mapToResponse(*g), nil
}

func (s *service) GetAll(ctx context.Context, companyID string, filter GSTFilingFilter) ([]GSTFilingResponse, int64, error) {
	if filter.FilingType != "" {
		filter.FilingType = strings.ToUpper(strings.TrimSpace(filter.FilingType))
		if !engine.ValidFilingType(filter.FilingType) {
			return nil, 0, gstfilingerrors.ErrInvalidFilingType
		}
	}
	if filter.TaxPeriod != "" {
		if _, err := engine.ParseTaxPeriod(filter.TaxPeriod); err != nil {
			return nil, 0, err
		}
	}
	if filter.ClientID != "" {
		if _, err := uuid.Parse(filter.ClientID); err != nil {
			return nil, 0, gstfilingerrors.ErrClientNotFound
		}
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 10
	}

	filings, total, err := s.repo.FindAll(ctx, companyID, filter)
	if err != nil {
		return nil, 0, err
	}

	res := make([]GSTFilingResponse, len(filings))
	for i, g := range filings {
		res[i] = s.mapToResponse(g)
	}
	return res, total, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (GSTFilingResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return GSTFilingResponse{}, gstfilingerrors.ErrInvalidFilingID
	}

	g, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return GSTFilingResponse{}, mapRepositoryError(err)
	}
	return s.mapToResponse(*g), nil
}

func (s *service) Update(ctx context.Context, companyID, id string, req UpdateGSTFilingRequest) (GSTFilingResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return GSTFilingResponse{}, gstfilingerrors.ErrInvalidFilingID
	}

	f, err := resolveFields(req.FilingType, req.TaxPeriod, req.DueDate, req.FilingDate, req.ARN)
	if err != nil {
		return GSTFilingResponse{}, err
	}
	f.outputTax = toHeads(req.OutputTax)
	f.itc = toHeads(req.ITC)
	f.lateFee = req.LateFee
	f.penalty = req.Penalty
	f.notes = strings.TrimSpace(req.Notes)

	return s.mutate(ctx, companyID, id, func(g *GSTFiling) error {
		return s.apply(g, f)
	})
}

// File records the submission date and ARN; the status follows from them.
func (s *service) File(ctx context.Context, companyID, id string, req FileReturnRequest) (GSTFilingResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return GSTFilingResponse{}, gstfilingerrors.ErrInvalidFilingID
	}
	filingDate, err := parseOptionalDate(req.FilingDate)
	if err != nil {
		return GSTFilingResponse{}, err
	}
	if filingDate == nil {
		return GSTFilingResponse{}, gstfilingerrors.ErrInvalidDate
	}

	return s.mutate(ctx, companyID, id, func(g *GSTFiling) error {
		if g.FilingDate != nil && strings.TrimSpace(g.ARN) != "" {
			return gstfilingerrors.ErrAlreadyFiled
		}
		g.FilingDate = filingDate
		g.ARN = strings.TrimSpace(req.ARN)
		g.Status = string(s.resolve(*g))
		return nil
	})
}

func (s *service) Cancel(ctx context.Context, companyID, id string) (GSTFilingResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return GSTFilingResponse{}, gstfilingerrors.ErrInvalidFilingID
	}
	return s.mutate(ctx, companyID, id, func(g *GSTFiling) error {
		g.Status = string(engine.StatusCancelled)
		return nil
	})
}

// mutate loads a filing inside a transaction, applies fn and saves it.
// Cancelled filings are frozen.
func (s *service) mutate(ctx context.Context, companyID, id string, fn func(g *GSTFiling) error) (GSTFilingResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return GSTFilingResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	g, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return GSTFilingResponse{}, mapRepositoryError(err)
	}
	if g.Status == string(engine.StatusCancelled) {
		return GSTFilingResponse{}, gstfilingerrors.ErrFilingCancelled
	}

	if err := fn(g); err != nil {
		return GSTFilingResponse{}, err
	}

	if err := qtx.Update(ctx, g); err != nil {
		return GSTFilingResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return GSTFilingResponse{}, err
	}

	return s.mapToResponse(*g), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return gstfilingerrors.ErrInvalidFilingID
	}
	return mapRepositoryError(s.repo.Delete(ctx, companyID, id))
}

func (s *service) SummarizePeriod(ctx context.Context, companyID, taxPeriod string) (PeriodSummary, error) {
	if _, err := engine.ParseTaxPeriod(taxPeriod); err != nil {
		return PeriodSummary{}, err
	}
	return s.repo.SummarizePeriod(ctx, companyID, taxPeriod)
}

func heads(c TaxHeadColumns) TaxHeadsResponse {
	return TaxHeadsResponse{IGST: c.IGST, CGST: c.CGST, SGST: c.SGST, Cess: c.Cess}
}

// mapToResponse re-resolves the status so a pending filing reads as late once
// its due date passes.
func (s *service) mapToResponse(g GSTFiling) GSTFilingResponse {
	resp := GSTFilingResponse{
		ID:                g.ID.String(),
		ClientID:          g.ClientID.String(),
		FilingType:        g.FilingType,
		TaxPeriod:         g.TaxPeriod,
		DueDate:           g.DueDate.Format(dateLayout),
		ARN:               g.ARN,
		OutputTax:         heads(g.OutputTax),
		ITC:               heads(g.ITC),
		LateFee:           g.LateFee,
		Penalty:           g.Penalty,
		TotalTaxLiability: g.TotalTaxLiability,
		TotalITC:          g.TotalITC,
		NetTaxPayable:     g.NetTaxPayable,
		RefundDue:         g.NetTaxPayable.IsNegative(),
		Status:            string(s.resolve(g)),
		Notes:             g.Notes,
	}
	if g.FilingDate != nil {
		fd := g.FilingDate.Format(dateLayout)
		resp.FilingDate = &fd
	}
	if !g.CreatedAt.IsZero() {
		resp.CreatedAt = g.CreatedAt.Format(time.RFC3339)
	}
	if !g.UpdatedAt.IsZero() {
		resp.UpdatedAt = g.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

func mapRepositoryError(err error) error {
	return dberr.Mapper{
		NotFound:  gstfilingerrors.ErrFilingNotFound,
		Duplicate: gstfilingerrors.ErrDuplicateFiling,
	}.Map(err)
}
