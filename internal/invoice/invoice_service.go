package invoice

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"go-taxdesk/internal/engine"
	invoiceerrors "go-taxdesk/internal/invoice/errors"
	"go-taxdesk/internal/shared/counter"
	"go-taxdesk/internal/shared/dberr"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=invoice_service.go -destination=mock/invoice_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID, actorID string, req CreateInvoiceRequest) (InvoiceResponse, error)
	GetAll(ctx context.Context, companyID string, filter InvoiceFilter) ([]InvoiceResponse, int64, error)
	GetByID(ctx context.Context, companyID, id string) (InvoiceResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateInvoiceRequest) (InvoiceResponse, error)
	UpdateStatus(ctx context.Context, companyID, id string, status string) (InvoiceResponse, error)
	Delete(ctx context.Context, companyID, id string) error
	Summary(ctx context.Context, companyID string) ([]InvoiceSummary, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	counterRepo counter.Repository
	clock       engine.Clock
	logger      *zap.Logger
}

func NewService(db *sql.DB, repo Repository, counterRepo counter.Repository, clock engine.Clock, logger ...*zap.Logger) Service {
	l := zap.L().Named("invoice.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("invoice.service")
	}
	if clock == nil {
		clock = engine.SystemClock
	}
	return &service{db: db, repo: repo, counterRepo: counterRepo, clock: clock, logger: l}
}

// allowedTransitions lists the stored statuses each status may move to.
// Overdue is derived on read and never stored.
var allowedTransitions = map[string][]string{
	engine.InvoiceStatusDraft: {engine.InvoiceStatusSent, engine.InvoiceStatusCancelled},
	engine.InvoiceStatusSent:  {engine.InvoiceStatusPaid, engine.InvoiceStatusCancelled},
}

func canTransition(from, to string) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(v))
	if err != nil {
		return time.Time{}, invoiceerrors.ErrInvalidDate
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

// compute runs the calculator over the request lines and returns the totals
// plus item rows ready to insert.
func compute(companyID uuid.UUID, invoiceID uuid.UUID, date time.Time, due *time.Time, reqItems []InvoiceItemRequest) (engine.InvoiceTotals, []InvoiceItem, error) {
	lines := make([]engine.InvoiceLine, len(reqItems))
	for i, it := range reqItems {
		lines[i] = engine.InvoiceLine{
			Description:    strings.TrimSpace(it.Description),
			Quantity:       it.Quantity,
			Rate:           it.Rate,
			TaxRatePercent: it.TaxRate,
			HSNCode:        strings.TrimSpace(it.HSNCode),
		}
	}

	totals, err := engine.ComputeInvoice(engine.InvoiceInput{Lines: lines, Date: date, DueDate: due})
	if err != nil {
		return engine.InvoiceTotals{}, nil, err
	}

	items := make([]InvoiceItem, len(totals.Lines))
	for i, l := range totals.Lines {
		items[i] = InvoiceItem{
			ID:          uuid.New(),
			InvoiceID:   invoiceID,
			CompanyID:   companyID,
			Position:    i + 1,
			Description: l.Description,
			HSNCode:     l.HSNCode,
			Quantity:    l.Quantity,
			Rate:        l.Rate,
			TaxRate:     l.TaxRatePercent,
			Amount:      l.Amount,
			TaxAmount:   l.TaxAmount,
		}
	}
	return totals, items, nil
}

func (s *service) Create(ctx context.Context, companyID, actorID string, req CreateInvoiceRequest) (InvoiceResponse, error) {
	status := strings.ToLower(strings.TrimSpace(req.Status))
	if status == "" {
		status = engine.InvoiceStatusDraft
	}
	if status != engine.InvoiceStatusDraft && status != engine.InvoiceStatusSent {
		return InvoiceResponse{}, invoiceerrors.ErrInvalidStatus
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return InvoiceResponse{}, invoiceerrors.ErrClientNotFound
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return InvoiceResponse{}, err
	}
	due, err := parseOptionalDate(req.DueDate)
	if err != nil {
		return InvoiceResponse{}, err
	}

	compID := uuid.MustParse(companyID)
	invoiceID := uuid.New()

	totals, items, err := compute(compID, invoiceID, date, due, req.Items)
	if err != nil {
		return InvoiceResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return InvoiceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	ok, err := qtx.ClientBelongsToCompany(ctx, companyID, req.ClientID)
	if err != nil {
		return InvoiceResponse{}, err
	}
	if !ok {
		return InvoiceResponse{}, invoiceerrors.ErrClientNotFound
	}

	seq, err := s.counterRepo.WithTx(tx).GetNextValue(ctx, companyID, fmt.Sprintf("%s-%d", counter.TypeInvoice, date.Year()))
	if err != nil {
		return InvoiceResponse{}, err
	}

	inv := &Invoice{
		ID:            invoiceID,
		CompanyID:     compID,
		ClientID:      clientID,
		InvoiceNumber: fmt.Sprintf("INV-%d-%04d", date.Year(), seq),
		Date:          date,
		DueDate:       totals.DueDate,
		Subtotal:      totals.Subtotal,
		TaxAmount:     totals.TaxAmount,
		Total:         totals.Total,
		Status:        status,
		Notes:         strings.TrimSpace(req.Notes),
		Items:         items,
	}
	if actor, err := uuid.Parse(actorID); err == nil {
		inv.CreatedBy = actor
	}

	if err := qtx.Create(ctx, inv); err != nil {
		return InvoiceResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return InvoiceResponse{}, err
	}

	s.logger.Info("invoice created",
		zap.String("company_id", companyID),
		zap.String("invoice_number", inv.InvoiceNumber),
		zap.String("total", inv.Total.String()),
	)

	return s.mapToResponse(*inv), nil
}

func (s *service) GetAll(ctx context.Context, companyID string, filter InvoiceFilter) ([]InvoiceResponse, int64, error) {
	filter.Status = strings.ToLower(strings.TrimSpace(filter.Status))
	if filter.Status != "" && !engine.ValidInvoiceStatus(filter.Status) {
		return nil, 0, invoiceerrors.ErrInvalidStatus
	}
	if filter.ClientID != "" {
		if _, err := uuid.Parse(filter.ClientID); err != nil {
			return nil, 0, invoiceerrors.ErrClientNotFound
		}
	}
	for _, v := range []string{filter.DateFrom, filter.DateTo} {
		if v == "" {
			continue
		}
		if _, err := parseDate(v); err != nil {
			return nil, 0, err
		}
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 10
	}

	invoices, total, err := s.repo.FindAll(ctx, companyID, filter, s.today())
	if err != nil {
		return nil, 0, err
	}

	res := make([]InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		res[i] = s.mapToResponse(inv)
	}
	return res, total, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (InvoiceResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return InvoiceResponse{}, invoiceerrors.ErrInvalidInvoiceID
	}

	inv, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return InvoiceResponse{}, mapRepositoryError(err)
	}
	return s.mapToResponse(*inv), nil
}

func (s *service) Update(ctx context.Context, companyID, id string, req UpdateInvoiceRequest) (InvoiceResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return InvoiceResponse{}, invoiceerrors.ErrInvalidInvoiceID
	}
	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return InvoiceResponse{}, invoiceerrors.ErrClientNotFound
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return InvoiceResponse{}, err
	}
	due, err := parseOptionalDate(req.DueDate)
	if err != nil {
		return InvoiceResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return InvoiceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	inv, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return InvoiceResponse{}, mapRepositoryError(err)
	}
	if inv.Status == engine.InvoiceStatusPaid || inv.Status == engine.InvoiceStatusCancelled {
		return InvoiceResponse{}, invoiceerrors.ErrInvoiceLocked
	}

	if clientID != inv.ClientID {
		ok, err := qtx.ClientBelongsToCompany(ctx, companyID, req.ClientID)
		if err != nil {
			return InvoiceResponse{}, err
		}
		if !ok {
			return InvoiceResponse{}, invoiceerrors.ErrClientNotFound
		}
	}

	totals, items, err := compute(inv.CompanyID, inv.ID, date, due, req.Items)
	if err != nil {
		return InvoiceResponse{}, err
	}

	inv.ClientID = clientID
	inv.Date = date
	inv.DueDate = totals.DueDate
	inv.Subtotal = totals.Subtotal
	inv.TaxAmount = totals.TaxAmount
	inv.Total = totals.Total
	inv.Notes = strings.TrimSpace(req.Notes)

	if err := qtx.Update(ctx, inv); err != nil {
		return InvoiceResponse{}, mapRepositoryError(err)
	}
	if err := qtx.ReplaceItems(ctx, inv.ID, items); err != nil {
		return InvoiceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return InvoiceResponse{}, err
	}

	inv.Items = items
	return s.mapToResponse(*inv), nil
}

func (s *service) UpdateStatus(ctx context.Context, companyID, id string, status string) (InvoiceResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return InvoiceResponse{}, invoiceerrors.ErrInvalidInvoiceID
	}
	status = strings.ToLower(strings.TrimSpace(status))
	if !engine.ValidInvoiceStatus(status) || status == engine.InvoiceStatusOverdue {
		return InvoiceResponse{}, invoiceerrors.ErrInvalidStatus
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return InvoiceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	inv, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return InvoiceResponse{}, mapRepositoryError(err)
	}
	if !canTransition(inv.Status, status) {
		return InvoiceResponse{}, invoiceerrors.ErrInvalidTransition
	}

	if err := qtx.UpdateStatus(ctx, companyID, id, status); err != nil {
		return InvoiceResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return InvoiceResponse{}, err
	}

	s.logger.Info("invoice status changed",
		zap.String("invoice_id", id),
		zap.String("from", inv.Status),
		zap.String("to", status),
	)

	inv.Status = status
	return s.mapToResponse(*inv), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return invoiceerrors.ErrInvalidInvoiceID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	inv, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	if inv.Status != engine.InvoiceStatusDraft && inv.Status != engine.InvoiceStatusCancelled {
		return invoiceerrors.ErrInvoiceNotDeletable
	}

	if err := qtx.Delete(ctx, companyID, id); err != nil {
		return mapRepositoryError(err)
	}

	return tx.Commit()
}

func (s *service) Summary(ctx context.Context, companyID string) ([]InvoiceSummary, error) {
	return s.repo.Summary(ctx, companyID, s.today())
}

func (s *service) today() time.Time {
	now := s.clock.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *service) mapToResponse(inv Invoice) InvoiceResponse {
	resp := InvoiceResponse{
		ID:            inv.ID.String(),
		CompanyID:     inv.CompanyID.String(),
		ClientID:      inv.ClientID.String(),
		InvoiceNumber: inv.InvoiceNumber,
		Date:          inv.Date.Format(dateLayout),
		DueDate:       inv.DueDate.Format(dateLayout),
		Subtotal:      inv.Subtotal,
		TaxAmount:     inv.TaxAmount,
		Total:         inv.Total,
		Status:        engine.InvoiceStatusAt(inv.Status, inv.DueDate, s.clock.Now()),
		Notes:         inv.Notes,
	}
	if len(inv.Items) > 0 {
		resp.Items = make([]InvoiceItemResponse, len(inv.Items))
		for i, it := range inv.Items {
			resp.Items[i] = InvoiceItemResponse{
				ID:          it.ID.String(),
				Position:    it.Position,
				Description: it.Description,
				HSNCode:     it.HSNCode,
				Quantity:    it.Quantity,
				Rate:        it.Rate,
				TaxRate:     it.TaxRate,
				Amount:      it.Amount,
				TaxAmount:   it.TaxAmount,
			}
		}
	}
	if !inv.CreatedAt.IsZero() {
		resp.CreatedAt = inv.CreatedAt.Format(time.RFC3339)
	}
	if !inv.UpdatedAt.IsZero() {
		resp.UpdatedAt = inv.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

var repositoryErrors = dberr.Mapper{
	NotFound: invoiceerrors.ErrInvoiceNotFound,
	Unique:   map[string]error{"uq_invoices_company_number": invoiceerrors.ErrInvoiceNumberConflict},
}

func mapRepositoryError(err error) error {
	return repositoryErrors.Map(err)
}
