package company

import (
	"context"
	"errors"
	"strings"

	companyerrors "go-taxdesk/internal/company/errors"
	"go-taxdesk/internal/shared/taxid"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -destination=mock/company_service_mock.go -package=mock . Service
type Service interface {
	GetByID(ctx context.Context, id string) (*CompanyResponse, error)
	Update(ctx context.Context, id string, req UpdateCompanyRequest) (*CompanyResponse, error)

	UpsertRegistration(ctx context.Context, companyID string, req UpsertCompanyRegistrationRequest) error
	ListRegistrations(ctx context.Context, companyID string) ([]CompanyRegistrationResponse, error)
	DeleteRegistration(ctx context.Context, companyID string, regType RegistrationType) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("company.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("company.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) GetByID(ctx context.Context, id string) (*CompanyResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, companyerrors.ErrInvalidCompanyID
	}

	comp, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	return mapToResponse(comp), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateCompanyRequest) (*CompanyResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, companyerrors.ErrInvalidCompanyID
	}

	comp, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		comp.Name = name
	}
	if req.Phone != "" {
		comp.Phone = strings.TrimSpace(req.Phone)
	}
	if req.Address != "" {
		comp.Address = strings.TrimSpace(req.Address)
	}
	if req.IsActive != nil {
		comp.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, comp); err != nil {
		s.logger.Error("failed to update company", zap.String("company_id", id), zap.Error(err))
		return nil, err
	}

	return mapToResponse(comp), nil
}

func (s *service) UpsertRegistration(ctx context.Context, companyID string, req UpsertCompanyRegistrationRequest) error {
	id, err := uuid.Parse(companyID)
	if err != nil {
		return companyerrors.ErrInvalidCompanyID
	}

	regType := RegistrationType(strings.ToUpper(strings.TrimSpace(string(req.Type))))
	if !regType.Valid() {
		return companyerrors.ErrInvalidRegistrationType
	}

	number := taxid.Normalize(req.Number)
	if number == "" {
		return companyerrors.ErrMissingRequiredFields
	}
	if !validRegistrationNumber(regType, number) {
		return companyerrors.ErrInvalidRegistrationNumber
	}

	return s.repo.UpsertRegistration(ctx, &CompanyRegistration{
		CompanyID: id,
		Type:      regType,
		Number:    number,
		IssuedAt:  req.IssuedAt,
	})
}

func (s *service) ListRegistrations(ctx context.Context, companyID string) ([]CompanyRegistrationResponse, error) {
	id, err := uuid.Parse(companyID)
	if err != nil {
		return nil, companyerrors.ErrInvalidCompanyID
	}

	regs, err := s.repo.GetRegistrationsByCompanyID(ctx, id)
	if err != nil {
		return nil, err
	}

	result := make([]CompanyRegistrationResponse, 0, len(regs))
	for _, r := range regs {
		result = append(result, CompanyRegistrationResponse{
			ID:        r.ID.String(),
			Type:      r.Type,
			Number:    r.Number,
			IssuedAt:  r.IssuedAt,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		})
	}

	return result, nil
}

func (s *service) DeleteRegistration(ctx context.Context, companyID string, regType RegistrationType) error {
	id, err := uuid.Parse(companyID)
	if err != nil {
		return companyerrors.ErrInvalidCompanyID
	}

	regType = RegistrationType(strings.ToUpper(string(regType)))
	if !regType.Valid() {
		return companyerrors.ErrInvalidRegistrationType
	}

	deleted, err := s.repo.DeleteRegistration(ctx, id, regType)
	if err != nil {
		return err
	}
	if !deleted {
		return companyerrors.ErrRegistrationNotFound
	}
	return nil
}

func validRegistrationNumber(t RegistrationType, number string) bool {
	switch t {
	case RegistrationTypeGSTIN:
		return taxid.ValidGSTIN(number)
	case RegistrationTypePAN:
		return taxid.ValidPAN(number)
	case RegistrationTypeTAN:
		return taxid.ValidTAN(number)
	}
	// CIN has no fixed format check.
	return true
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return companyerrors.ErrCompanyNotFound
	}
	return err
}

func mapToResponse(c *Company) *CompanyResponse {
	return &CompanyResponse{
		ID:       c.ID.String(),
		Name:     c.Name,
		Email:    c.Email,
		Phone:    c.Phone,
		Address:  c.Address,
		IsActive: c.IsActive,
	}
}
