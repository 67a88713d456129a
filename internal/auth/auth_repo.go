package auth

import (
	"context"
	"database/sql"
	"strings"

	"go-taxdesk/internal/shared/connection"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_repo.go -destination=mock/auth_repo_mock.go -package=mock

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
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

func (r *repository) Create(ctx context.Context, user *User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if err != nil {
		return nil, err
	}
	if err := r.resolveEffectiveRole(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	if err := r.resolveEffectiveRole(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// resolveEffectiveRole reports the most privileged role assigned through RBAC,
// falling back to the role stored on the user row.
func (r *repository) resolveEffectiveRole(ctx context.Context, user *User) error {
	var roleName string
	err := r.db.WithContext(ctx).
		Table("user_roles ur").
		Select("roles.name").
		Joins("JOIN roles ON roles.id = ur.role_id").
		Where("ur.user_id = ?", user.ID).
		Where("roles.company_id = ?", user.CompanyID).
		Order(`
			CASE UPPER(roles.name)
				WHEN 'OWNER' THEN 1
				WHEN 'ADMIN' THEN 2
				WHEN 'ACCOUNTANT' THEN 3
				WHEN 'STAFF' THEN 4
				ELSE 99
			END ASC`).
		Limit(1).
		Scan(&roleName).Error
	if err != nil {
		return err
	}

	if strings.TrimSpace(roleName) == "" {
		roleName = user.Role
	}
	if strings.TrimSpace(roleName) == "" {
		roleName = RoleStaff
	}
	user.Role = strings.ToUpper(strings.TrimSpace(roleName))
	return nil
}
