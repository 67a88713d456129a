package company

import (
	"go-taxdesk/internal/middleware"
	"go-taxdesk/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	company := r.Group("/companies")
	company.Use(middleware.AuthMiddleware())
	{
		company.GET("/me",
			middleware.RateLimitByUser(2, 10),
			handler.GetMe,
		)

		company.PUT("/me",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "company", "update"),
			handler.UpdateMe,
		)

		company.GET("/me/registrations",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "company", "read"),
			handler.ListRegistrations,
		)

		company.PUT("/me/registrations",
			middleware.RateLimitByUser(0.5, 1),
			middleware.RBACAuthorize(rbacService, "company", "update"),
			handler.UpsertRegistration,
		)

		company.DELETE("/me/registrations/:type",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "company", "delete"),
			handler.DeleteRegistration,
		)
	}
}
