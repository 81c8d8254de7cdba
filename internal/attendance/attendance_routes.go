package attendance

import (
	"github.com/AlfahrezaRico/backend/internal/middleware"
	"github.com/AlfahrezaRico/backend/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	attendances := r.Group("/attendances")
	attendances.Use(middleware.AuthMiddleware())
	{
		attendances.GET("", middleware.RBACAuthorize(rbacService, "attendance", "read"), handler.GetByEmployee)
		attendances.GET("/export", middleware.RBACAuthorize(rbacService, "attendance", "read"), handler.ExportPeriod)
		attendances.POST("/clock-in", middleware.RBACAuthorize(rbacService, "attendance", "create"), handler.ClockIn)
		attendances.POST("/clock-out", middleware.RBACAuthorize(rbacService, "attendance", "update"), handler.ClockOut)
	}
}
