package salary

import (
	"github.com/AlfahrezaRico/backend/internal/middleware"
	"github.com/AlfahrezaRico/backend/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	salaries := r.Group("/salaries")
	salaries.Use(middleware.AuthMiddleware())
	{
		salaries.GET("", middleware.RBACAuthorize(rbacService, "salary", "read"), handler.GetAll)
		salaries.GET("/employee/:employeeId", middleware.RBACAuthorize(rbacService, "salary", "read"), handler.GetByEmployee)
		salaries.POST("", middleware.RBACAuthorize(rbacService, "salary", "create"), handler.Create)
		salaries.PUT("/:id", middleware.RBACAuthorize(rbacService, "salary", "update"), handler.Update)
		salaries.DELETE("/:id", middleware.RBACAuthorize(rbacService, "salary", "delete"), handler.Delete)
	}
}
