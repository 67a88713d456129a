package client

import (
	"go-taxdesk/internal/middleware"
	"go-taxdesk/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	clients := r.Group("/clients")
	clients.Use(middleware.AuthMiddleware())
	{
		clients.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "client", "read"),
			h.GetAll,
		)
		clients.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "client", "read"),
			h.GetByID,
		)
		clients.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "client", "create"),
			h.Create,
		)
		clients.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "client", "update"),
			h.Update,
		)
		clients.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "client", "delete"),
			h.Delete,
		)
	}
}
