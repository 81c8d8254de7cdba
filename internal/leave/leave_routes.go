package leave

import (
	"github.com/AlfahrezaRico/backend/internal/middleware"
	"github.com/AlfahrezaRico/backend/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	leaves := r.Group("/leave-requests")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.GET("", middleware.RBACAuthorize(rbacService, "leave_request", "read"), handler.GetRequests)
		leaves.GET("/:id", middleware.RBACAuthorize(rbacService, "leave_request", "read"), handler.GetRequestByID)
		leaves.POST("", middleware.RBACAuthorize(rbacService, "leave_request", "create"), handler.CreateRequest)
		leaves.PATCH("/:id/approve", middleware.RBACAuthorize(rbacService, "leave_request", "approve"), handler.Approve)
		leaves.PATCH("/:id/reject", middleware.RBACAuthorize(rbacService, "leave_request", "approve"), handler.Reject)
		leaves.PATCH("/:id/cancel", middleware.RBACAuthorize(rbacService, "leave_request", "update"), handler.Cancel)
	}

	quotas := r.Group("/leave-quotas")
	quotas.Use(middleware.AuthMiddleware())
	{
		quotas.GET("", middleware.RBACAuthorize(rbacService, "leave_quota", "read"), handler.GetQuotas)
		quotas.POST("", middleware.RBACAuthorize(rbacService, "leave_quota", "create"), handler.CreateQuota)
		quotas.PUT("/:id", middleware.RBACAuthorize(rbacService, "leave_quota", "update"), handler.UpdateQuota)
	}
}
