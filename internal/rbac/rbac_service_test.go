package rbac

import (
	"testing"

	rbacerrors "go-taxdesk/internal/rbac/errors"
	"go-taxdesk/internal/rbac/infra"

	"github.com/casbin/casbin/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// =========================================
// Fake Repository
// =========================================

type fakeRepo struct {
	userRoles   []UserRoleRow
	rolePerms   []RolePermissionRow
	roles       []RoleRow
	permissions []PermissionRow
	assigned    []UserRoleRow
	updated     map[string][]string
}

func (f *fakeRepo) GetUserRoles(companyID string) ([]UserRoleRow, error) {
	return f.userRoles, nil
}

func (f *fakeRepo) GetRolePermissions(companyID string) ([]RolePermissionRow, error) {
	return f.rolePerms, nil
}

func (f *fakeRepo) ListRoles(companyID string) ([]RoleRow, error) {
	return f.roles, nil
}

func (f *fakeRepo) GetRoleByID(companyID, id string) (*RoleRow, error) {
	for _, r := range f.roles {
		if r.ID == id && r.CompanyID == companyID {
			return &r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetRoleByName(companyID, name string) (*RoleRow, error) {
	for _, r := range f.roles {
		if r.Name == name && r.CompanyID == companyID {
			return &r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) CreateRole(role *RoleRow) error {
	role.ID = "role-" + role.Name
	f.roles = append(f.roles, *role)
	return nil
}

func (f *fakeRepo) ListPermissions() ([]PermissionRow, error) {
	return f.permissions, nil
}

func (f *fakeRepo) GetPermissionsByRoleID(roleID string) ([]PermissionRow, error) {
	var out []PermissionRow
	for _, id := range f.updated[roleID] {
		for _, p := range f.permissions {
			if p.ID == id {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

func (f *fakeRepo) UpdateRolePermissions(roleID string, permIDs []string) error {
	if f.updated == nil {
		f.updated = map[string][]string{}
	}
	f.updated[roleID] = permIDs
	return nil
}

func (f *fakeRepo) AssignUserRole(userID, roleID string) error {
	f.assigned = append(f.assigned, UserRoleRow{UserID: userID, RoleID: roleID})
	return nil
}

func newTestEnforcer(t *testing.T) *casbin.Enforcer {
	e, err := infra.NewEnforcerFromText()
	assert.NoError(t, err)
	return e
}

// =========================================
// TEST: Load + Enforce
// =========================================

func TestRBACService_Enforce(t *testing.T) {
	repo := &fakeRepo{
		userRoles: []UserRoleRow{{UserID: "user-1", RoleID: "role-accountant"}},
		rolePerms: []RolePermissionRow{{RoleID: "role-accountant", Resource: "invoice", Action: "read"}},
	}
	service := NewService(repo, newTestEnforcer(t))

	assert.NoError(t, service.LoadCompanyPolicy("company-1"))

	allowed, err := service.Enforce(EnforceRequest{
		UserID:    "user-1",
		CompanyID: "company-1",
		Resource:  "invoice",
		Action:    "read",
	})
	assert.NoError(t, err)
	assert.True(t, allowed)

	denied, err := service.Enforce(EnforceRequest{
		UserID:    "user-1",
		CompanyID: "company-1",
		Resource:  "payroll",
		Action:    "approve",
	})
	assert.NoError(t, err)
	assert.False(t, denied)
}

func TestRBACService_Enforce_MissingFields(t *testing.T) {
	service := NewService(&fakeRepo{}, newTestEnforcer(t))

	_, err := service.Enforce(EnforceRequest{CompanyID: "company-1", Resource: "invoice", Action: "read"})
	assert.ErrorIs(t, err, rbacerrors.ErrMissingEnforceFields)
}

func TestRBACService_BootstrapOwner(t *testing.T) {
	repo := &fakeRepo{
		permissions: []PermissionRow{
			{ID: "p1", Resource: "invoice", Action: "create"},
			{ID: "p2", Resource: "gst_filing", Action: "read"},
		},
	}
	service := NewService(repo, newTestEnforcer(t))

	err := service.BootstrapOwner("company-1", "user-1")

	assert.NoError(t, err)
	assert.Len(t, repo.roles, 1)
	assert.Equal(t, OwnerRole, repo.roles[0].Name)
	assert.Equal(t, []string{"p1", "p2"}, repo.updated["role-OWNER"])
	assert.Equal(t, []UserRoleRow{{UserID: "user-1", RoleID: "role-OWNER"}}, repo.assigned)
}

func TestRBACService_CreateRole(t *testing.T) {
	repo := &fakeRepo{
		roles:       []RoleRow{{ID: "role-OWNER", CompanyID: "company-1", Name: OwnerRole}},
		permissions: []PermissionRow{{ID: "p1", Resource: "invoice", Action: "read"}},
	}
	service := NewService(repo, newTestEnforcer(t))

	t.Run("creates role with permissions", func(t *testing.T) {
		resp, err := service.CreateRole("company-1", CreateRoleRequest{Name: "accountant", PermissionIDs: []string{"p1"}})
		assert.NoError(t, err)
		assert.Equal(t, "ACCOUNTANT", resp.Name)
		assert.Equal(t, []string{"invoice:read"}, resp.Permissions)
	})

	t.Run("duplicate name", func(t *testing.T) {
		_, err := service.CreateRole("company-1", CreateRoleRequest{Name: "owner"})
		assert.ErrorIs(t, err, rbacerrors.ErrRoleAlreadyExists)
	})

	t.Run("unknown permission", func(t *testing.T) {
		_, err := service.CreateRole("company-1", CreateRoleRequest{Name: "clerk", PermissionIDs: []string{"nope"}})
		assert.ErrorIs(t, err, rbacerrors.ErrUnknownPermission)
	})
}

func TestRBACService_AssignRole_NotFound(t *testing.T) {
	service := NewService(&fakeRepo{}, newTestEnforcer(t))

	err := service.AssignRole("company-1", "missing", "user-1")
	assert.ErrorIs(t, err, rbacerrors.ErrRoleNotFound)
}
