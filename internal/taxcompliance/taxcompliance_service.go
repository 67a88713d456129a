package taxcompliance

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"go-taxdesk/internal/engine"
	taxcomplianceerrors "go-taxdesk/internal/taxcompliance/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=taxcompliance_service.go -destination=mock/taxcompliance_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID, actorID string, req CreateTaxComplianceRequest) (TaxComplianceResponse, error)
	GetAll(ctx context.Context, companyID string, filter TaxComplianceFilter) ([]TaxComplianceResponse, int64, error)
	GetByID(ctx context.Context, companyID, id string) (TaxComplianceResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateTaxComplianceRequest) (TaxComplianceResponse, error)
	Cancel(ctx context.Context, companyID, id string) (TaxComplianceResponse, error)
	Delete(ctx context.Context, companyID, id string) error
	StatusAsOf(ctx context.Context, companyID, date string) (StatusAsOfReport, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	resolver *engine.StatusResolver
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, resolver *engine.StatusResolver, logger ...*zap.Logger) Service {
	l := zap.L().Named("taxcompliance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("taxcompliance.service")
	}
	if resolver == nil {
		resolver = engine.NewStatusResolver(nil)
	}
	return &service{db: db, repo: repo, resolver: resolver, logger: l}
}

// ValidAssessmentYear accepts "2024-25" style years where the suffix is the
// following year.
func ValidAssessmentYear(ay string) bool {
	if len(ay) != 7 || ay[4] != '-' {
		return false
	}
	start, err := strconv.Atoi(ay[:4])
	if err != nil {
		return false
	}
	end, err := strconv.Atoi(ay[5:])
	if err != nil {
		return false
	}
	return (start+1)%100 == end
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(v))
	if err != nil {
		return time.Time{}, taxcomplianceerrors.ErrInvalidDate
	}
	return t, nil
}

func parseOptionalDate(v string) (*time.Time, error) {
	if strings.TrimSpace(v) == "" {
		return nil, nil
	}
	t, err := parseDate(v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

type recordFields struct {
	taxType        TaxType
	assessmentYear string
	dueDate        time.Time
	filingDate     *time.Time
	ackNumber      string
	taxAmount      decimal.Decimal
	penalty        decimal.Decimal
	interest       decimal.Decimal
	notes          string
}

func resolveFields(taxType TaxType, ay, dueDate, filingDate, ack string) (recordFields, error) {
	f := recordFields{
		taxType:        TaxType(strings.ToLower(strings.TrimSpace(string(taxType)))),
		assessmentYear: strings.TrimSpace(ay),
		ackNumber:      strings.TrimSpace(ack),
	}
	if !f.taxType.Valid() {
		return recordFields{}, taxcomplianceerrors.ErrInvalidTaxType
	}
	if !ValidAssessmentYear(f.assessmentYear) {
		return recordFields{}, taxcomplianceerrors.ErrInvalidAssessmentYear
	}
	due, err := parseDate(dueDate)
	if err != nil {
		return recordFields{}, err
	}
	f.dueDate = due
	if f.filingDate, err = parseOptionalDate(filingDate); err != nil {
		return recordFields{}, err
	}
	return f, nil
}

// apply computes the payable and status before touching rec.
func (s *service) apply(rec *TaxCompliance, f recordFields) error {
	total, err := engine.ComputeTotalPayable(f.taxAmount, f.penalty, f.interest)
	if err != nil {
		return err
	}

	rec.TaxType = f.taxType
	rec.AssessmentYear = f.assessmentYear
	rec.DueDate = f.dueDate
	rec.FilingDate = f.filingDate
	rec.AcknowledgmentNumber = f.ackNumber
	rec.TaxAmount = f.taxAmount
	rec.Penalty = f.penalty
	rec.Interest = f.interest
	rec.TotalPayable = total
	rec.Notes = f.notes
	rec.Status = string(s.resolver.Resolve(statusInput(*rec)))
	return nil
}

func statusInput(rec TaxCompliance) engine.StatusInput {
	return engine.StatusInput{
		DueDate:              rec.DueDate,
		FilingDate:           rec.FilingDate,
		AcknowledgmentNumber: rec.AcknowledgmentNumber,
		Current:              engine.ComplianceStatus(rec.Status),
	}
}

func (s *service) Create(ctx context.Context, companyID, actorID string, req CreateTaxComplianceRequest) (TaxComplianceResponse, error) {
	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return TaxComplianceResponse{}, taxcomplianceerrors.ErrClientNotFound
	}

	f, err := resolveFields(req.TaxType, req.AssessmentYear, req.DueDate, req.FilingDate, req.AcknowledgmentNumber)
	if err != nil {
		return TaxComplianceResponse{}, err
	}
	f.taxAmount, f.penalty, f.interest = req.TaxAmount, req.Penalty, req.Interest
	f.notes = strings.TrimSpace(req.Notes)

	rec := &TaxCompliance{
		ID:        uuid.New(),
		CompanyID: uuid.MustParse(companyID),
		ClientID:  clientID,
		Status:    string(engine.StatusPending),
	}
	if actor, err := uuid.Parse(actorID); err == nil {
		rec.CreatedBy = actor
	}
	if err := s.apply(rec, f); err != nil {
		return TaxComplianceResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TaxComplianceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	ok, err := qtx.ClientBelongsToCompany(ctx, companyID, req.ClientID)
	if err != nil {
		return TaxComplianceResponse{}, err
	}
	if !ok {
		return TaxComplianceResponse{}, taxcomplianceerrors.ErrClientNotFound
	}

	if err := qtx.Create(ctx, rec); err != nil {
		return TaxComplianceResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return TaxComplianceResponse{}, err
	}

	return s.mapToResponse(*rec), nil
}

func (s *service) GetAll(ctx context.Context, companyID string, filter TaxComplianceFilter) ([]TaxComplianceResponse, int64, error) {
	if filter.TaxType != "" && !TaxType(filter.TaxType).Valid() {
		return nil, 0, taxcomplianceerrors.ErrInvalidTaxType
	}
	if filter.AssessmentYear != "" && !ValidAssessmentYear(filter.AssessmentYear) {
		return nil, 0, taxcomplianceerrors.ErrInvalidAssessmentYear
	}
	if filter.ClientID != "" {
		if _, err := uuid.Parse(filter.ClientID); err != nil {
			return nil, 0, taxcomplianceerrors.ErrClientNotFound
		}
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 10
	}

	records, total, err := s.repo.FindAll(ctx, companyID, filter)
	if err != nil {
		return nil, 0, err
	}

	res := make([]TaxComplianceResponse, len(records))
	for i, rec := range records {
		res[i] = s.mapToResponse(rec)
	}
	return res, total, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (TaxComplianceResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return TaxComplianceResponse{}, taxcomplianceerrors.ErrInvalidRecordID
	}

	rec, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return TaxComplianceResponse{}, mapRepositoryError(err)
	}
	return s.mapToResponse(*rec), nil
}

func (s *service) Update(ctx context.Context, companyID, id string, req UpdateTaxComplianceRequest) (TaxComplianceResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return TaxComplianceResponse{}, taxcomplianceerrors.ErrInvalidRecordID
	}

	f, err := resolveFields(req.TaxType, req.AssessmentYear, req.DueDate, req.FilingDate, req.AcknowledgmentNumber)
	if err != nil {
		return TaxComplianceResponse{}, err
	}
	f.taxAmount, f.penalty, f.interest = req.TaxAmount, req.Penalty, req.Interest
	f.notes = strings.TrimSpace(req.Notes)

	return s.mutate(ctx, companyID, id, func(rec *TaxCompliance) error {
		return s.apply(rec, f)
	})
}

// Cancel is terminal: later reads keep returning cancelled whatever the dates say.
func (s *service) Cancel(ctx context.Context, companyID, id string) (TaxComplianceResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return TaxComplianceResponse{}, taxcomplianceerrors.ErrInvalidRecordID
	}
	resp, err := s.mutate(ctx, companyID, id, func(rec *TaxCompliance) error {
		now := s.resolver.Now().UTC()
		rec.Status = string(engine.StatusCancelled)
		rec.CancelledAt = &now
		return nil
	})
	if err == nil {
		s.logger.Info("tax compliance cancelled", zap.String("id", id), zap.String("company_id", companyID))
	}
	return resp, err
}

func (s *service) mutate(ctx context.Context, companyID, id string, fn func(rec *TaxCompliance) error) (TaxComplianceResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TaxComplianceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	rec, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return TaxComplianceResponse{}, mapRepositoryError(err)
	}
	if rec.Status == string(engine.StatusCancelled) {
		return TaxComplianceResponse{}, taxcomplianceerrors.ErrRecordCancelled
	}

	if err := fn(rec); err != nil {
		return TaxComplianceResponse{}, err
	}
	if err := qtx.Update(ctx, rec); err != nil {
		return TaxComplianceResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return TaxComplianceResponse{}, err
	}

	return s.mapToResponse(*rec), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return taxcomplianceerrors.ErrInvalidRecordID
	}
	return mapRepositoryError(s.repo.Delete(ctx, companyID, id))
}

// StatusAsOf resolves every record against the end of the given day. Filings
// and cancellations recorded after that day are ignored, so the report shows
// what was known then.
func (s *service) StatusAsOf(ctx context.Context, companyID, date string) (StatusAsOfReport, error) {
	day, err := parseDate(date)
	if err != nil {
		return StatusAsOfReport{}, err
	}
	asOf := day.Add(24*time.Hour - time.Nanosecond)

	records, err := s.repo.FindCreatedOnOrBefore(ctx, companyID, day.Format(dateLayout))
	if err != nil {
		return StatusAsOfReport{}, err
	}

	report := StatusAsOfReport{
		AsOf:    day.Format(dateLayout),
		Counts:  map[string]int{},
		Records: make([]StatusAsOfRow, 0, len(records)),
	}
	for _, rec := range records {
		in := statusInput(rec)
		if in.FilingDate != nil && in.FilingDate.After(asOf) {
			in.FilingDate = nil
			in.AcknowledgmentNumber = ""
		}
		if rec.CancelledAt != nil && rec.CancelledAt.After(asOf) {
			in.Current = ""
		}
		status := string(engine.ResolveAt(in, asOf))

		report.Counts[status]++
		report.Records = append(report.Records, StatusAsOfRow{
			ID:             rec.ID.String(),
			ClientID:       rec.ClientID.String(),
			TaxType:        rec.TaxType,
			AssessmentYear: rec.AssessmentYear,
			DueDate:        rec.DueDate.Format(dateLayout),
			Status:         status,
		})
	}
	return report, nil
}

func (s *service) mapToResponse(rec TaxCompliance) TaxComplianceResponse {
	resp := TaxComplianceResponse{
		ID:                   rec.ID.String(),
		ClientID:             rec.ClientID.String(),
		TaxType:              rec.TaxType,
		AssessmentYear:       rec.AssessmentYear,
		DueDate:              rec.DueDate.Format(dateLayout),
		AcknowledgmentNumber: rec.AcknowledgmentNumber,
		TaxAmount:            rec.TaxAmount,
		Penalty:              rec.Penalty,
		Interest:             rec.Interest,
		TotalPayable:         rec.TotalPayable,
		Status:               string(s.resolver.Resolve(statusInput(rec))),
		Notes:                rec.Notes,
	}
	if rec.FilingDate != nil {
		fd := rec.FilingDate.Format(dateLayout)
		resp.FilingDate = &fd
	}
	if rec.CancelledAt != nil {
		ca := rec.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &ca
	}
	if !rec.CreatedAt.IsZero() {
		resp.CreatedAt = rec.CreatedAt.Format(time.RFC3339)
	}
	if !rec.UpdatedAt.IsZero() {
		resp.UpdatedAt = rec.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return taxcomplianceerrors.ErrRecordNotFound
	}
	return err
}
