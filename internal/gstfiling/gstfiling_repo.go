package gstfiling

import (
	"context"
	"database/sql"

	"go-taxdesk/internal/shared/connection"
	"go-taxdesk/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=gstfiling_repo.go -destination=mock/gstfiling_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, f *GSTFiling) error
	FindAll(ctx context.Context, companyID string, filter GSTFilingFilter) ([]GSTFiling, int64, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*GSTFiling, error)
	Update(ctx context.Context, f *GSTFiling) error
	Delete(ctx context.Context, companyID, id string) error
	ClientBelongsToCompany(ctx context.Context, companyID, clientID string) (bool, error)
	SummarizePeriod(ctx context.Context, companyID, taxPeriod string) (PeriodSummary, error)
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

func (r *repository) Create(ctx context.Context, f *GSTFiling) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *repository) FindAll(ctx context.Context, companyID string, filter GSTFilingFilter) ([]GSTFiling, int64, error) {
	var (
		filings []GSTFiling
		total   int64
	)

	q := r.db.WithContext(ctx).Model(&GSTFiling{}).Scopes(tenant.Scope(companyID))
	if filter.ClientID != "" {
		q = q.Where("client_id = ?", filter.ClientID)
	}
	if filter.FilingType != "" {
		q = q.Where("filing_type = ?", filter.FilingType)
	}
	if filter.TaxPeriod != "" {
		q = q.Where("tax_period = ?", filter.TaxPeriod)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("due_date DESC, filing_type ASC").
		Limit(filter.PageSize).
		Offset((filter.Page - 1) * filter.PageSize).
		Find(&filings).Error

	return filings, total, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*GSTFiling, error) {
	var f GSTFiling
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&f, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *repository) Update(ctx context.Context, f *GSTFiling) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	res := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&GSTFiling{}, "id = ?", id)
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

// SummarizePeriod sums the stored ledger columns. Cancelled filings are left out.
func (r *repository) SummarizePeriod(ctx context.Context, companyID, taxPeriod string) (PeriodSummary, error) {
	out := PeriodSummary{TaxPeriod: taxPeriod}
	err := r.db.WithContext(ctx).
		Model(&GSTFiling{}).
		Scopes(tenant.Scope(companyID)).
		Where("tax_period = ? AND status <> ?", taxPeriod, "cancelled").
		Select(`COUNT(*) AS filings,
			COALESCE(SUM(total_tax_liability), 0) AS total_tax_liability,
			COALESCE(SUM(total_itc), 0) AS total_itc,
			COALESCE(SUM(net_tax_payable), 0) AS net_tax_payable`).
		Scan(&out).Error
	return out, err
}
