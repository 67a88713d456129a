package company_test

import (
	"context"
	"errors"
	"testing"

	"go-taxdesk/internal/company"
	companyerrors "go-taxdesk/internal/company/errors"
	companyMock "go-taxdesk/internal/company/mock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

func TestService_GetByID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := companyMock.NewMockRepository(ctrl)
	service := company.NewService(mockRepo)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		id := uuid.New()
		mockComp := &company.Company{
			ID:       id,
			Name:     "Shah & Co",
			Email:    "office@shahco.in",
			IsActive: true,
		}

		mockRepo.EXPECT().GetByID(ctx, id).Return(mockComp, nil)

		resp, err := service.GetByID(ctx, id.String())

		assert.NoError(t, err)
		assert.Equal(t, mockComp.Name, resp.Name)
		assert.Equal(t, mockComp.ID.String(), resp.ID)
	})

	t.Run("Not Found", func(t *testing.T) {
		id := uuid.New()
		mockRepo.EXPECT().GetByID(ctx, id).Return(nil, gorm.ErrRecordNotFound)

		_, err := service.GetByID(ctx, id.String())
		assert.ErrorIs(t, err, companyerrors.ErrCompanyNotFound)
	})

	t.Run("Invalid ID", func(t *testing.T) {
		_, err := service.GetByID(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, companyerrors.ErrInvalidCompanyID)
	})
}

func TestService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := companyMock.NewMockRepository(ctrl)
	service := company.NewService(mockRepo)
	ctx := context.Background()

	t.Run("Success Update Name", func(t *testing.T) {
		id := uuid.New()
		mockComp := &company.Company{
			ID:       id,
			Name:     "Old Name",
			Email:    "office@shahco.in",
			Phone:    "022-1234",
			IsActive: true,
		}

		mockRepo.EXPECT().GetByID(ctx, id).Return(mockComp, nil)
		mockRepo.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(func(ctx context.Context, c *company.Company) error {
			assert.Equal(t, "New Name", c.Name)
			assert.Equal(t, "022-1234", c.Phone)
			return nil
		})

		resp, err := service.Update(ctx, id.String(), company.UpdateCompanyRequest{
			Name: "  New Name ",
		})

		assert.NoError(t, err)
		assert.Equal(t, "New Name", resp.Name)
	})

	t.Run("Repository Failure", func(t *testing.T) {
		id := uuid.New()
		mockRepo.EXPECT().GetByID(ctx, id).Return(&company.Company{ID: id}, nil)
		mockRepo.EXPECT().Update(ctx, gomock.Any()).Return(errors.New("db down"))

		_, err := service.Update(ctx, id.String(), company.UpdateCompanyRequest{Name: "X"})
		assert.EqualError(t, err, "db down")
	})
}

func TestService_UpsertRegistration(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := companyMock.NewMockRepository(ctrl)
	service := company.NewService(mockRepo)
	ctx := context.Background()
	companyID := uuid.New()

	t.Run("Normalizes GSTIN", func(t *testing.T) {
		mockRepo.EXPECT().UpsertRegistration(ctx, gomock.Any()).DoAndReturn(func(ctx context.Context, reg *company.CompanyRegistration) error {
			assert.Equal(t, companyID, reg.CompanyID)
			assert.Equal(t, company.RegistrationTypeGSTIN, reg.Type)
			assert.Equal(t, "27ABCDE1234F1Z5", reg.Number)
			return nil
		})

		err := service.UpsertRegistration(ctx, companyID.String(), company.UpsertCompanyRegistrationRequest{
			Type:   "gstin",
			Number: " 27abcde1234f1z5 ",
		})
		assert.NoError(t, err)
	})

	t.Run("Rejects", func(t *testing.T) {
		tests := []struct {
			name string
			req  company.UpsertCompanyRegistrationRequest
			want error
		}{
			{"unknown type", company.UpsertCompanyRegistrationRequest{Type: "VAT", Number: "1"}, companyerrors.ErrInvalidRegistrationType},
			{"blank number", company.UpsertCompanyRegistrationRequest{Type: "PAN", Number: "  "}, companyerrors.ErrMissingRequiredFields},
			{"bad pan", company.UpsertCompanyRegistrationRequest{Type: "PAN", Number: "ABC123"}, companyerrors.ErrInvalidRegistrationNumber},
			{"bad tan", company.UpsertCompanyRegistrationRequest{Type: "TAN", Number: "ABCDE1234F"}, companyerrors.ErrInvalidRegistrationNumber},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				err := service.UpsertRegistration(ctx, companyID.String(), tt.req)
				assert.ErrorIs(t, err, tt.want)
			})
		}
	})

	t.Run("CIN is stored as given", func(t *testing.T) {
		mockRepo.EXPECT().UpsertRegistration(ctx, gomock.Any()).Return(nil)
		err := service.UpsertRegistration(ctx, companyID.String(), company.UpsertCompanyRegistrationRequest{
			Type:   company.RegistrationTypeCIN,
			Number: "U74999MH2019PTC123456",
		})
		assert.NoError(t, err)
	})
}

func TestService_DeleteRegistration(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := companyMock.NewMockRepository(ctrl)
	service := company.NewService(mockRepo)
	ctx := context.Background()
	companyID := uuid.New()

	t.Run("Deleted", func(t *testing.T) {
		mockRepo.EXPECT().DeleteRegistration(ctx, companyID, company.RegistrationTypePAN).Return(true, nil)
		assert.NoError(t, service.DeleteRegistration(ctx, companyID.String(), "pan"))
	})

	t.Run("Missing", func(t *testing.T) {
		mockRepo.EXPECT().DeleteRegistration(ctx, companyID, company.RegistrationTypeTAN).Return(false, nil)
		err := service.DeleteRegistration(ctx, companyID.String(), company.RegistrationTypeTAN)
		assert.ErrorIs(t, err, companyerrors.ErrRegistrationNotFound)
	})

	t.Run("Invalid type", func(t *testing.T) {
		err := service.DeleteRegistration(ctx, companyID.String(), "")
		assert.ErrorIs(t, err, companyerrors.ErrInvalidRegistrationType)
	})
}

func TestService_ListRegistrations(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := companyMock.NewMockRepository(ctrl)
	service := company.NewService(mockRepo)
	ctx := context.Background()
	companyID := uuid.New()

	mockRepo.EXPECT().GetRegistrationsByCompanyID(ctx, companyID).Return([]company.CompanyRegistration{
		{ID: uuid.New(), Type: company.RegistrationTypeGSTIN, Number: "27ABCDE1234F1Z5"},
		{ID: uuid.New(), Type: company.RegistrationTypePAN, Number: "ABCDE1234F"},
	}, nil)

	regs, err := service.ListRegistrations(ctx, companyID.String())
	assert.NoError(t, err)
	assert.Len(t, regs, 2)
	assert.Equal(t, company.RegistrationTypePAN, regs[1].Type)
}
