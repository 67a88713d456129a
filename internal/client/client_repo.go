package client

import (
	"context"
	"database/sql"

	"go-taxdesk/internal/shared/connection"
	"go-taxdesk/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=client_repo.go -destination=mock/client_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, c *Client) error
	FindAllByCompany(ctx context.Context, companyID string) ([]Client, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Client, error)
	Update(ctx context.Context, c *Client) error
	Delete(ctx context.Context, companyID, id string) error
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

func (r *repository) Create(ctx context.Context, c *Client) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Client, error) {
	var clients []Client
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("name ASC").
		Find(&clients).Error
	return clients, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Client, error) {
	var c Client
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) Update(ctx context.Context, c *Client) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	res := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Client{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
