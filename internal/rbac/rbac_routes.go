package rbac

import (
	"go-taxdesk/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, service Service) {
	group := r.Group("/rbac")
	group.Use(middleware.AuthMiddleware())
	{
		group.POST("/enforce", handler.Enforce)

		group.GET("/roles", middleware.RBACAuthorize(service, "role", "read"), handler.ListRoles)
		group.POST("/roles", middleware.RBACAuthorize(service, "role", "manage"), handler.CreateRole)
		group.PUT("/roles/:id/permissions", middleware.RBACAuthorize(service, "role", "manage"), handler.UpdateRolePermissions)
		group.POST("/roles/:id/assign", middleware.RBACAuthorize(service, "role", "manage"), handler.AssignRole)
		group.GET("/permissions", middleware.RBACAuthorize(service, "role", "read"), handler.ListPermissions)
	}
}
