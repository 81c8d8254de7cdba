package payroll

import (
	"github.com/AlfahrezaRico/backend/internal/middleware"
	"github.com/AlfahrezaRico/backend/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	components := r.Group("/payroll-components")
	components.Use(middleware.AuthMiddleware())
	{
		components.GET("", middleware.RBACAuthorize(rbacService, "payroll_component", "read"), handler.GetAllComponents)
		components.POST("", middleware.RBACAuthorize(rbacService, "payroll_component", "create"), handler.CreateComponent)
		components.PUT("/:id", middleware.RBACAuthorize(rbacService, "payroll_component", "update"), handler.UpdateComponent)
		components.DELETE("/:id", middleware.RBACAuthorize(rbacService, "payroll_component", "delete"), handler.DeleteComponent)
	}

	payrolls := r.Group("/payrolls")
	payrolls.Use(middleware.AuthMiddleware())
	{
		payrolls.POST("/calculate", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.Calculate)
		payrolls.GET("", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.GetAll)
		payrolls.GET("/export", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.ExportPeriod)
		payrolls.GET("/:id", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.GetByID)
		payrolls.POST("", middleware.RBACAuthorize(rbacService, "payroll", "create"), handler.Create)
		payrolls.PATCH("/:id/status", middleware.RBACAuthorize(rbacService, "payroll", "update"), handler.UpdateStatus)
	}
}
