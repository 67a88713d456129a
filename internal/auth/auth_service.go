package auth

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"strings"
	"time"

	autherrors "go-taxdesk/internal/auth/errors"
	"go-taxdesk/internal/company"
	companyerrors "go-taxdesk/internal/company/errors"
	"go-taxdesk/internal/rbac"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour

	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, resp AuthResponse, err error)

	RefreshToken(ctx context.Context, refreshToken string) (newAccessToken, newRefreshToken string, resp AuthResponse, err error)

	GetMe(ctx context.Context, userID string) (*AuthResponse, error)

	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)

	CreateUser(ctx context.Context, companyID string, req CreateUserRequest) (AuthResponse, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	companyRepo company.Repository
	rbac        rbac.Service
	logger      *zap.Logger
}

func NewService(db *sql.DB, repo Repository, companyRepo company.Repository, rbac rbac.Service, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{db: db, repo: repo, companyRepo: companyRepo, rbac: rbac, logger: l}
}

func (s *service) Login(ctx context.Context, email, password string) (accessToken, refreshToken string, resp AuthResponse, err error) {
	user, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return "", "", AuthResponse{}, autherrors.ErrUserInactive
	}

	if err := s.rbac.LoadCompanyPolicy(user.CompanyID.String()); err != nil {
		return "", "", AuthResponse{}, err
	}

	accessToken, refreshToken, err = s.issueTokens(user)
	if err != nil {
		return "", "", AuthResponse{}, err
	}

	return accessToken, refreshToken, toAuthResponse(user), nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, string, AuthResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	if typ, _ := claims["typ"].(string); typ != tokenTypeRefresh {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidUserID
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrUserNotFound
	}
	if !user.IsActive {
		return "", "", AuthResponse{}, autherrors.ErrUserInactive
	}

	newAccessToken, newRefreshToken, err := s.issueTokens(user)
	if err != nil {
		return "", "", AuthResponse{}, err
	}

	return newAccessToken, newRefreshToken, toAuthResponse(user), nil
}

func (s *service) GetMe(ctx context.Context, userID string) (*AuthResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, autherrors.ErrInvalidUserID
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, autherrors.ErrUserNotFound
	}

	resp := toAuthResponse(u)
	return &resp, nil
}

// Register creates the firm and its owner in one transaction, then grants the
// owner every permission.
func (s *service) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	email := normalizeEmail(req.Email)
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return AuthResponse{}, autherrors.ErrEmailAlreadyRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return AuthResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, err
	}

	companyEmail := normalizeEmail(req.CompanyEmail)
	if companyEmail == "" {
		companyEmail = email
	}

	comp := &company.Company{
		ID:       uuid.New(),
		Name:     strings.TrimSpace(req.CompanyName),
		Email:    companyEmail,
		IsActive: true,
	}
	user := &User{
		ID:        uuid.New(),
		CompanyID: comp.ID,
		Email:     email,
		Name:      strings.TrimSpace(req.Name),
		Password:  string(hashed),
		Role:      RoleOwner,
		IsActive:  true,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AuthResponse{}, err
	}
	defer tx.Rollback()

	if err := s.companyRepo.WithTx(tx).Create(ctx, comp); err != nil {
		if isUniqueViolation(err) {
			return AuthResponse{}, companyerrors.ErrCompanyAlreadyExists
		}
		return AuthResponse{}, err
	}

	if err := s.repo.WithTx(tx).Create(ctx, user); err != nil {
		if isUniqueViolation(err) {
			return AuthResponse{}, autherrors.ErrEmailAlreadyRegistered
		}
		return AuthResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return AuthResponse{}, err
	}

	if err := s.rbac.BootstrapOwner(comp.ID.String(), user.ID.String()); err != nil {
		s.logger.Error("failed to bootstrap owner role",
			zap.String("company_id", comp.ID.String()),
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return AuthResponse{}, err
	}

	s.logger.Info("firm registered", zap.String("company_id", comp.ID.String()))
	return toAuthResponse(user), nil
}

func (s *service) CreateUser(ctx context.Context, companyID string, req CreateUserRequest) (AuthResponse, error) {
	cid, err := uuid.Parse(companyID)
	if err != nil {
		return AuthResponse{}, companyerrors.ErrInvalidCompanyID
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, err
	}

	user := &User{
		ID:        uuid.New(),
		CompanyID: cid,
		Email:     normalizeEmail(req.Email),
		Name:      strings.TrimSpace(req.Name),
		Password:  string(hashed),
		Role:      RoleStaff,
		IsActive:  true,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if isUniqueViolation(err) {
			return AuthResponse{}, autherrors.ErrEmailAlreadyRegistered
		}
		return AuthResponse{}, err
	}

	if req.RoleID != "" {
		if err := s.rbac.AssignRole(companyID, req.RoleID, user.ID.String()); err != nil {
			return AuthResponse{}, err
		}
	}

	return toAuthResponse(user), nil
}

func (s *service) issueTokens(user *User) (string, string, error) {
	access, err := s.generateToken(user.ID.String(), user.CompanyID.String(), user.Role, tokenTypeAccess, AccessTokenTTL)
	if err != nil {
		return "", "", autherrors.ErrTokenGenerationFailed
	}
	refresh, err := s.generateToken(user.ID.String(), user.CompanyID.String(), user.Role, tokenTypeRefresh, RefreshTokenTTL)
	if err != nil {
		return "", "", autherrors.ErrTokenGenerationFailed
	}
	return access, refresh, nil
}

func (s *service) generateToken(userID, companyID, role, typ string, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":    userID,
		"company_id": companyID,
		"role":       role,
		"typ":        typ,
		"exp":        time.Now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func toAuthResponse(u *User) AuthResponse {
	return AuthResponse{
		ID:        u.ID.String(),
		CompanyID: u.CompanyID.String(),
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
	}
}
