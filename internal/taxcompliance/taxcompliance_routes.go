package taxcompliance

import (
	"go-taxdesk/internal/middleware"
	"go-taxdesk/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	records := r.Group("/tax-compliances")
	records.Use(middleware.AuthMiddleware())
	{
		records.GET("", middleware.RBACAuthorize(rbacService, "tax_compliance", "read"), h.GetAll)
		records.GET("/as-of", middleware.RBACAuthorize(rbacService, "tax_compliance", "read"), h.AsOf)
		records.GET("/:id", middleware.RBACAuthorize(rbacService, "tax_compliance", "read"), h.GetByID)
		records.POST("", middleware.RBACAuthorize(rbacService, "tax_compliance", "create"), h.Create)
		records.PUT("/:id", middleware.RBACAuthorize(rbacService, "tax_compliance", "update"), h.Update)
		records.POST("/:id/cancel", middleware.RBACAuthorize(rbacService, "tax_compliance", "update"), h.Cancel)
		records.DELETE("/:id", middleware.RBACAuthorize(rbacService, "tax_compliance", "delete"), h.Delete)
	}
}
