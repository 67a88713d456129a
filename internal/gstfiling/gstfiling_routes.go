package gstfiling

import (
	"go-taxdesk/internal/middleware"
	"go-taxdesk/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service, rdb *redis.Client) {
	filings := r.Group("/gst-filings")
	filings.Use(middleware.AuthMiddleware())
	{
		filings.GET("", middleware.RBACAuthorize(rbacService, "gst_filing", "read"), h.GetAll)
		filings.GET("/summary", middleware.RBACAuthorize(rbacService, "gst_filing", "read"), h.Summary)
		filings.GET("/:id", middleware.RBACAuthorize(rbacService, "gst_filing", "read"), h.GetByID)
		if rdb != nil {
			filings.POST("",
				middleware.Idempotency(rdb),
				middleware.RBACAuthorize(rbacService, "gst_filing", "create"),
				h.Create,
			)
		} else {
			filings.POST("", middleware.RBACAuthorize(rbacService, "gst_filing", "create"), h.Create)
		}
		filings.PUT("/:id", middleware.RBACAuthorize(rbacService, "gst_filing", "update"), h.Update)
		filings.POST("/:id/file", middleware.RBACAuthorize(rbacService, "gst_filing", "file"), h.File)
		filings.POST("/:id/cancel", middleware.RBACAuthorize(rbacService, "gst_filing", "update"), h.Cancel)
		filings.DELETE("/:id", middleware.RBACAuthorize(rbacService, "gst_filing", "delete"), h.Delete)
	}
}
