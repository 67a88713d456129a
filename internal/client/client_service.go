package client

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	clienterrors "go-taxdesk/internal/client/errors"
	"go-taxdesk/internal/shared/taxid"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	ClientAllKeyPrefix = "clients:all:"
	clientCacheTTL     = 30 * time.Minute
)

func GetClientAllKey(companyID string) string {
	return ClientAllKeyPrefix + companyID
}

//go:generate mockgen -source=client_service.go -destination=mock/client_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateClientRequest) (ClientResponse, error)
	GetAll(ctx context.Context, companyID string) ([]ClientResponse, error)
	GetByID(ctx context.Context, companyID, id string) (ClientResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateClientRequest) (ClientResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("client.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("client.service")
	}
	return &service{db: db, repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

type taxIdentity struct {
	pan          string
	gstin        string
	stateCode    string
	businessType BusinessType
}

// resolveTaxIdentity normalizes PAN/GSTIN and fills PAN from the GSTIN when
// only the latter is given.
func resolveTaxIdentity(pan, gstin string, bt BusinessType) (taxIdentity, error) {
	id := taxIdentity{
		pan:          taxid.Normalize(pan),
		gstin:        taxid.Normalize(gstin),
		businessType: BusinessType(strings.ToLower(strings.TrimSpace(string(bt)))),
	}
	if id.businessType == "" {
		id.businessType = BusinessIndividual
	}
	if !id.businessType.Valid() {
		return taxIdentity{}, clienterrors.ErrInvalidBusinessType
	}
	if id.pan != "" && !taxid.ValidPAN(id.pan) {
		return taxIdentity{}, clienterrors.ErrInvalidPAN
	}
	if id.gstin != "" {
		if !taxid.ValidGSTIN(id.gstin) {
			return taxIdentity{}, clienterrors.ErrInvalidGSTIN
		}
		embedded := taxid.PANFromGSTIN(id.gstin)
		if id.pan == "" {
			id.pan = embedded
		} else if id.pan != embedded {
			return taxIdentity{}, clienterrors.ErrPANGSTINMismatch
		}
		id.stateCode = taxid.StateCode(id.gstin)
	}
	return id, nil
}

func (s *service) Create(ctx context.Context, companyID string, req CreateClientRequest) (ClientResponse, error) {
	id, err := resolveTaxIdentity(req.PAN, req.GSTIN, req.BusinessType)
	if err != nil {
		return ClientResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ClientResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	c := &Client{
		ID:           uuid.New(),
		CompanyID:    uuid.MustParse(companyID),
		Name:         strings.TrimSpace(req.Name),
		ContactName:  strings.TrimSpace(req.ContactName),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:        strings.TrimSpace(req.Phone),
		PAN:          id.pan,
		GSTIN:        id.gstin,
		StateCode:    id.stateCode,
		BusinessType: id.businessType,
		Address:      strings.TrimSpace(req.Address),
		IsActive:     true,
	}

	if err := qtx.Create(ctx, c); err != nil {
		return ClientResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return ClientResponse{}, err
	}

	s.invalidate(ctx, companyID)
	return mapToResponse(*c), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]ClientResponse, error) {
	cacheKey := GetClientAllKey(companyID)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var resp []ClientResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		clients, err := s.repo.FindAllByCompany(ctx, companyID)
		if err != nil {
			return nil, err
		}

		resp := mapToListResponse(clients)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, jsonData, clientCacheTTL).Err(); err != nil {
					s.logger.Warn("failed to cache client list", zap.String("key", cacheKey), zap.Error(err))
				}
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]ClientResponse), nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (ClientResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return ClientResponse{}, clienterrors.ErrInvalidClientID
	}

	c, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return ClientResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*c), nil
}

func (s *service) Update(ctx context.Context, companyID, id string, req UpdateClientRequest) (ClientResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return ClientResponse{}, clienterrors.ErrInvalidClientID
	}

	taxID, err := resolveTaxIdentity(req.PAN, req.GSTIN, req.BusinessType)
	if err != nil {
		return ClientResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ClientResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	c, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return ClientResponse{}, mapRepositoryError(err)
	}

	c.Name = strings.TrimSpace(req.Name)
	c.ContactName = strings.TrimSpace(req.ContactName)
	c.Email = strings.ToLower(strings.TrimSpace(req.Email))
	c.Phone = strings.TrimSpace(req.Phone)
	c.PAN = taxID.pan
	c.GSTIN = taxID.gstin
	c.StateCode = taxID.stateCode
	c.BusinessType = taxID.businessType
	c.Address = strings.TrimSpace(req.Address)
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}

	if err := qtx.Update(ctx, c); err != nil {
		return ClientResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return ClientResponse{}, err
	}

	s.invalidate(ctx, companyID)
	return mapToResponse(*c), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return clienterrors.ErrInvalidClientID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Delete(ctx, companyID, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidate(ctx, companyID)
	return nil
}

func (s *service) invalidate(ctx context.Context, companyID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetClientAllKey(companyID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate cache", zap.String("key", cacheKey), zap.Error(err))
	}
}

func mapToResponse(c Client) ClientResponse {
	resp := ClientResponse{
		ID:           c.ID.String(),
		CompanyID:    c.CompanyID.String(),
		Name:         c.Name,
		ContactName:  c.ContactName,
		Email:        c.Email,
		Phone:        c.Phone,
		PAN:          c.PAN,
		GSTIN:        c.GSTIN,
		BusinessType: c.BusinessType,
		Address:      c.Address,
		StateCode:    c.StateCode,
		IsActive:     c.IsActive,
	}
	if !c.CreatedAt.IsZero() {
		resp.CreatedAt = c.CreatedAt.Format(time.RFC3339)
	}
	if !c.UpdatedAt.IsZero() {
		resp.UpdatedAt = c.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

func mapToListResponse(clients []Client) []ClientResponse {
	res := make([]ClientResponse, len(clients))
	for i, c := range clients {
		res[i] = mapToResponse(c)
	}
	return res
}
