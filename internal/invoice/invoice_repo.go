package invoice

import (
	"context"
	"database/sql"
	"time"

	"go-taxdesk/internal/engine"
	"go-taxdesk/internal/shared/connection"
	"go-taxdesk/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=invoice_repo.go -destination=mock/invoice_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, inv *Invoice) error
	FindAll(ctx context.Context, companyID string, filter InvoiceFilter, today time.Time) ([]Invoice, int64, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Invoice, error)
	Update(ctx context.Context, inv *Invoice) error
	ReplaceItems(ctx context.Context, invoiceID uuid.UUID, items []InvoiceItem) error
	UpdateStatus(ctx context.Context, companyID, id, status string) error
	Delete(ctx context.Context, companyID, id string) error
	ClientBelongsToCompany(ctx context.Context, companyID, clientID string) (bool, error)
	Summary(ctx context.Context, companyID string, today time.Time) ([]InvoiceSummary, error)
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

func (r *repository) Create(ctx context.Context, inv *Invoice) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

// FindAll pages invoices newest first. An "overdue" status filter matches sent
// invoices whose due date is before today.
func (r *repository) FindAll(ctx context.Context, companyID string, filter InvoiceFilter, today time.Time) ([]Invoice, int64, error) {
	var (
		invoices []Invoice
		total    int64
	)

	q := r.db.WithContext(ctx).Model(&Invoice{}).Scopes(tenant.Scope(companyID))

	switch filter.Status {
	case "":
	case engine.InvoiceStatusOverdue:
		q = q.Where("status = ? AND due_date < ?", engine.InvoiceStatusSent, today)
	case engine.InvoiceStatusSent:
		q = q.Where("status = ? AND due_date >= ?", engine.InvoiceStatusSent, today)
	default:
		q = q.Where("status = ?", filter.Status)
	}
	if filter.ClientID != "" {
		q = q.Where("client_id = ?", filter.ClientID)
	}
	if filter.DateFrom != "" {
		q = q.Where("date >= ?", filter.DateFrom)
	}
	if filter.DateTo != "" {
		q = q.Where("date <= ?", filter.DateTo)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.PageSize
	err := q.Order("date DESC, invoice_number DESC").
		Limit(filter.PageSize).
		Offset(offset).
		Find(&invoices).Error

	return invoices, total, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Invoice, error) {
	var inv Invoice
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&inv, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *repository) Update(ctx context.Context, inv *Invoice) error {
	return r.db.WithContext(ctx).Omit("Items").Save(inv).Error
}

func (r *repository) ReplaceItems(ctx context.Context, invoiceID uuid.UUID, items []InvoiceItem) error {
	if err := r.db.WithContext(ctx).Where("invoice_id = ?", invoiceID).Delete(&InvoiceItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *repository) UpdateStatus(ctx context.Context, companyID, id, status string) error {
	res := r.db.WithContext(ctx).
		Model(&Invoice{}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	res := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Invoice{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) ClientBelongsToCompany(ctx context.Context, companyID, clientID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("clients").
		Where("id = ? AND company_id = ? AND deleted_at IS NULL", clientID, companyID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Summary(ctx context.Context, companyID string, today time.Time) ([]InvoiceSummary, error) {
	var rows []InvoiceSummary
	err := r.db.WithContext(ctx).
		Model(&Invoice{}).
		Scopes(tenant.Scope(companyID)).
		Select(`CASE WHEN status = ? AND due_date < ? THEN ? ELSE status END AS status,
			COUNT(*) AS count,
			COALESCE(SUM(total), 0) AS total`,
			engine.InvoiceStatusSent, today, engine.InvoiceStatusOverdue).
		Group("1").
		Order("1").
		Scan(&rows).Error
	return rows, err
}
