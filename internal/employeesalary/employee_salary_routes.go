package employeesalary

import (
	"go-taxdesk/internal/middleware"
	"go-taxdesk/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	read := middleware.RBACAuthorize(rbacService, "salary", "read")
	write := middleware.RBACAuthorize(rbacService, "salary", "update")

	salaries := r.Group("/employee-salaries")
	salaries.Use(middleware.AuthMiddleware())
	{
		salaries.GET("", middleware.RateLimitByUser(1, 5), read, h.GetAll)
		salaries.GET("/effective", middleware.RateLimitByUser(2, 5), read, h.GetEffective)
		salaries.GET("/:id", middleware.RateLimitByUser(2, 5), read, h.GetById)

		salaries.POST("", middleware.RateLimitByUser(0.1, 1), write, h.Create)
		salaries.PUT("/:id", middleware.RateLimitByUser(0.1, 1), write, h.Update)
		salaries.DELETE("/:id", middleware.RateLimitByUser(0.05, 1), write, h.Delete)
	}
}
