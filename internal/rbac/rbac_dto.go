package rbac

import "go-taxdesk/internal/domain"

type EnforceRequest = domain.EnforceRequest

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}

type CreateRoleRequest struct {
	Name          string   `json:"name" binding:"required,max=50"`
	Description   string   `json:"description"`
	PermissionIDs []string `json:"permission_ids"`
}

type UpdateRolePermissionsRequest struct {
	PermissionIDs []string `json:"permission_ids" binding:"required"`
}

type AssignRoleRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
}

type RoleResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
}

type PermissionResponse struct {
	ID       string `json:"id"`
	Resource string `json:"resource"`
	Action   string `json:"action"`
	Label    string `json:"label"`
	Category string `json:"category"`
}
