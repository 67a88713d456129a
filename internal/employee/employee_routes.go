package employee

import (
	"go-taxdesk/internal/middleware"
	"go-taxdesk/internal/rbac"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegisterRoutes mounts /employees. /options feeds the payroll employee picker.
func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service, logger *zap.Logger) {
	can := func(action string) gin.HandlerFunc {
		return middleware.RBACAuthorize(rbacService, "employee", action)
	}

	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware(), middleware.ContextLogger(logger))
	{
		employees.GET("", middleware.RateLimitByUser(3, 10), can("read"), h.GetAll)
		employees.GET("/options", middleware.RateLimitByUser(5, 20), can("read"), h.GetOptions)
		employees.GET("/:id", middleware.RateLimitByUser(3, 10), can("read"), h.GetById)
		employees.POST("", middleware.RateLimitByUser(0.1, 1), can("create"), h.Create)
		employees.PUT("/:id", middleware.RateLimitByUser(0.5, 2), can("update"), h.Update)
		employees.DELETE("/:id", middleware.RateLimitByUser(0.05, 1), can("delete"), h.Delete)
	}
}
