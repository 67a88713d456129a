package rbac

import (
	"errors"
	"strings"
	"sync"

	rbacerrors "go-taxdesk/internal/rbac/errors"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OwnerRole is granted every permission when a firm signs up.
const OwnerRole = "OWNER"

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	LoadCompanyPolicy(companyID string) error
	Enforce(req EnforceRequest) (bool, error)

	ListRoles(companyID string) ([]RoleResponse, error)
	CreateRole(companyID string, req CreateRoleRequest) (RoleResponse, error)
	UpdateRolePermissions(companyID, roleID string, req UpdateRolePermissionsRequest) (RoleResponse, error)
	AssignRole(companyID, roleID, userID string) error
	ListPermissions() ([]PermissionResponse, error)
	BootstrapOwner(companyID, userID string) error
}

type service struct {
	repo     Repository
	enforcer *casbin.Enforcer
	mu       sync.Mutex
	logger   *zap.Logger
}

func NewService(repo Repository, enforcer *casbin.Enforcer, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &service{
		repo:     repo,
		enforcer: enforcer,
		logger:   l,
	}
}

func (s *service) LoadCompanyPolicy(companyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadCompanyPolicyUnlocked(companyID)
}

// The enforcer holds one firm's policy at a time; callers must hold s.mu.
func (s *service) loadCompanyPolicyUnlocked(companyID string) error {
	s.enforcer.ClearPolicy()

	userRoles, err := s.repo.GetUserRoles(companyID)
	if err != nil {
		return err
	}
	for _, ur := range userRoles {
		if _, err := s.enforcer.AddGroupingPolicy(ur.UserID, ur.RoleID, companyID); err != nil {
			return err
		}
	}

	rolePerms, err := s.repo.GetRolePermissions(companyID)
	if err != nil {
		return err
	}
	for _, rp := range rolePerms {
		if _, err := s.enforcer.AddPolicy(rp.RoleID, companyID, rp.Resource, rp.Action); err != nil {
			return err
		}
	}

	s.logger.Debug("rbac policy loaded",
		zap.String("company_id", companyID),
		zap.Int("user_roles", len(userRoles)),
		zap.Int("role_permissions", len(rolePerms)),
	)
	return nil
}

func (s *service) Enforce(req EnforceRequest) (bool, error) {
	if strings.TrimSpace(req.UserID) == "" || strings.TrimSpace(req.CompanyID) == "" ||
		strings.TrimSpace(req.Resource) == "" || strings.TrimSpace(req.Action) == "" {
		return false, rbacerrors.ErrMissingEnforceFields
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadCompanyPolicyUnlocked(req.CompanyID); err != nil {
		return false, err
	}

	allowed, err := s.enforcer.Enforce(req.UserID, req.CompanyID, req.Resource, req.Action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("user_id", req.UserID),
			zap.String("company_id", req.CompanyID),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce",
		zap.String("user_id", req.UserID),
		zap.String("company_id", req.CompanyID),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

func (s *service) ListRoles(companyID string) ([]RoleResponse, error) {
	roles, err := s.repo.ListRoles(companyID)
	if err != nil {
		return nil, err
	}

	resp := make([]RoleResponse, 0, len(roles))
	for _, role := range roles {
		perms, err := s.repo.GetPermissionsByRoleID(role.ID)
		if err != nil {
			return nil, err
		}
		resp = append(resp, mapRoleResponse(role, perms))
	}
	return resp, nil
}

func (s *service) CreateRole(companyID string, req CreateRoleRequest) (RoleResponse, error) {
	name := strings.ToUpper(strings.TrimSpace(req.Name))
	if _, err := s.repo.GetRoleByName(companyID, name); err == nil {
		return RoleResponse{}, rbacerrors.ErrRoleAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return RoleResponse{}, err
	}

	role := &RoleRow{CompanyID: companyID, Name: name, Description: req.Description}
	if err := s.repo.CreateRole(role); err != nil {
		return RoleResponse{}, err
	}

	if len(req.PermissionIDs) == 0 {
		return mapRoleResponse(*role, nil), nil
	}
	return s.setPermissions(*role, req.PermissionIDs)
}

func (s *service) UpdateRolePermissions(companyID, roleID string, req UpdateRolePermissionsRequest) (RoleResponse, error) {
	role, err := s.repo.GetRoleByID(companyID, roleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RoleResponse{}, rbacerrors.ErrRoleNotFound
		}
		return RoleResponse{}, err
	}
	return s.setPermissions(*role, req.PermissionIDs)
}

func (s *service) setPermissions(role RoleRow, permIDs []string) (RoleResponse, error) {
	all, err := s.repo.ListPermissions()
	if err != nil {
		return RoleResponse{}, err
	}
	known := make(map[string]bool, len(all))
	for _, p := range all {
		known[p.ID] = true
	}
	for _, id := range permIDs {
		if !known[id] {
			return RoleResponse{}, rbacerrors.ErrUnknownPermission
		}
	}

	if err := s.repo.UpdateRolePermissions(role.ID, permIDs); err != nil {
		return RoleResponse{}, err
	}

	perms, err := s.repo.GetPermissionsByRoleID(role.ID)
	if err != nil {
		return RoleResponse{}, err
	}
	return mapRoleResponse(role, perms), nil
}

func (s *service) AssignRole(companyID, roleID, userID string) error {
	if _, err := s.repo.GetRoleByID(companyID, roleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return rbacerrors.ErrRoleNotFound
		}
		return err
	}
	return s.repo.AssignUserRole(userID, roleID)
}

func (s *service) ListPermissions() ([]PermissionResponse, error) {
	perms, err := s.repo.ListPermissions()
	if err != nil {
		return nil, err
	}

	resp := make([]PermissionResponse, len(perms))
	for i, p := range perms {
		resp[i] = PermissionResponse{
			ID:       p.ID,
			Resource: p.Resource,
			Action:   p.Action,
			Label:    p.Label,
			Category: p.Category,
		}
	}
	return resp, nil
}

// BootstrapOwner creates the firm's OWNER role with every permission and assigns it to userID.
func (s *service) BootstrapOwner(companyID, userID string) error {
	role, err := s.repo.GetRoleByName(companyID, OwnerRole)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		role = &RoleRow{CompanyID: companyID, Name: OwnerRole, Description: "Firm owner"}
		err = s.repo.CreateRole(role)
	}
	if err != nil {
		return err
	}

	perms, err := s.repo.ListPermissions()
	if err != nil {
		return err
	}
	ids := make([]string, len(perms))
	for i, p := range perms {
		ids[i] = p.ID
	}
	if err := s.repo.UpdateRolePermissions(role.ID, ids); err != nil {
		return err
	}

	return s.repo.AssignUserRole(userID, role.ID)
}

func mapRoleResponse(role RoleRow, perms []PermissionRow) RoleResponse {
	names := make([]string, len(perms))
	for i, p := range perms {
		names[i] = p.Resource + ":" + p.Action
	}
	return RoleResponse{
		ID:          role.ID,
		Name:        role.Name,
		Description: role.Description,
		Permissions: names,
	}
}
