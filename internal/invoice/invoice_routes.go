package invoice

import (
	"go-taxdesk/internal/middleware"
	"go-taxdesk/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service, rdb *redis.Client) {
	invoices := r.Group("/invoices")
	invoices.Use(middleware.AuthMiddleware())
	{
		invoices.GET("", middleware.RBACAuthorize(rbacService, "invoice", "read"), h.GetAll)
		invoices.GET("/summary", middleware.RBACAuthorize(rbacService, "invoice", "read"), h.Summary)
		invoices.GET("/:id", middleware.RBACAuthorize(rbacService, "invoice", "read"), h.GetByID)

		create := []gin.HandlerFunc{middleware.RateLimitByUser(0.5, 2)}
		if rdb != nil {
			create = append(create, middleware.Idempotency(rdb))
		}
		create = append(create, middleware.RBACAuthorize(rbacService, "invoice", "create"), h.Create)
		invoices.POST("", create...)

		invoices.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "invoice", "update"),
			h.Update,
		)
		invoices.PATCH("/:id/status",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "invoice", "update"),
			h.UpdateStatus,
		)
		invoices.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "invoice", "delete"),
			h.Delete,
		)
	}
}
