package payroll

import (
	"go-taxdesk/internal/middleware"
	"go-taxdesk/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RegisterRoutes mounts /payrolls. Creation is idempotent per Idempotency-Key
// when rdb is set.
func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service, rdb *redis.Client) {
	can := func(action string) gin.HandlerFunc {
		return middleware.RBACAuthorize(rbacService, "payroll", action)
	}

	payrolls := r.Group("/payrolls")
	payrolls.Use(middleware.AuthMiddleware())
	{
		payrolls.GET("", can("read"), h.GetAll)
		payrolls.GET("/:id", can("read"), h.GetById)
		payrolls.GET("/:id/breakdown", can("read"), h.GetBreakdown)
		payrolls.GET("/:id/payslip/download", can("read"), h.DownloadPayslip)

		create := []gin.HandlerFunc{}
		if rdb != nil {
			create = append(create, middleware.Idempotency(rdb))
		}
		payrolls.POST("", append(create, can("create"), h.Create)...)

		payrolls.PUT("/:id", can("update"), h.Update)
		payrolls.POST("/:id/regenerate", can("update"), h.Regenerate)
		payrolls.POST("/:id/cancel", can("update"), h.Cancel)
		payrolls.POST("/:id/approve", can("approve"), h.Approve)
		payrolls.POST("/:id/mark-paid", can("pay"), h.MarkAsPaid)
		payrolls.POST("/:id/payslip", middleware.RateLimitByUser(0.2, 1), can("approve"), h.GeneratePayslip)
		payrolls.DELETE("/:id", can("delete"), h.Delete)
	}
}
