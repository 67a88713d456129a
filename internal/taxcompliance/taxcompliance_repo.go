package taxcompliance

import (
	"context"
	"database/sql"

	"go-taxdesk/internal/shared/connection"
	"go-taxdesk/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=taxcompliance_repo.go -destination=mock/taxcompliance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, rec *TaxCompliance) error
	FindAll(ctx context.Context, companyID string, filter TaxComplianceFilter) ([]TaxCompliance, int64, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*TaxCompliance, error)
	FindCreatedOnOrBefore(ctx context.Context, companyID, date string) ([]TaxCompliance, error)
	Update(ctx context.Context, rec *TaxCompliance) error
	Delete(ctx context.Context, companyID, id string) error
	ClientBelongsToCompany(ctx context.Context, companyID, clientID string) (bool, error)
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

func (r *repository) Create(ctx context.Context, rec *TaxCompliance) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *repository) FindAll(ctx context.Context, companyID string, filter TaxComplianceFilter) ([]TaxCompliance, int64, error) {
	var (
		records []TaxCompliance
		total   int64
	)

	q := r.db.WithContext(ctx).Model(&TaxCompliance{}).Scopes(tenant.Scope(companyID))
	if filter.ClientID != "" {
		q = q.Where("client_id = ?", filter.ClientID)
	}
	if filter.TaxType != "" {
		q = q.Where("tax_type = ?", filter.TaxType)
	}
	if filter.AssessmentYear != "" {
		q = q.Where("assessment_year = ?", filter.AssessmentYear)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("due_date ASC").
		Limit(filter.PageSize).
		Offset((filter.Page - 1) * filter.PageSize).
		Find(&records).Error

	return records, total, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*TaxCompliance, error) {
	var rec TaxCompliance
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&rec, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// FindCreatedOnOrBefore returns records that existed by the end of date, oldest due first.
func (r *repository) FindCreatedOnOrBefore(ctx context.Context, companyID, date string) ([]TaxCompliance, error) {
	var records []TaxCompliance
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("created_at < (?::date + interval '1 day')", date).
		Order("due_date ASC").
		Find(&records).Error
	return records, err
}

func (r *repository) Update(ctx context.Context, rec *TaxCompliance) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	res := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&TaxCompliance{}, "id = ?", id)
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
