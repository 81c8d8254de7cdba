package rbac

import (
	"github.com/AlfahrezaRico/backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, service Service) {
	roles := r.Group("/rbac")
	roles.Use(middleware.AuthMiddleware())
	{
		roles.GET("/roles", middleware.RBACAuthorize(service, "rbac", "read"), handler.ListRoles)
		roles.POST("/roles", middleware.RBACAuthorize(service, "rbac", "manage"), handler.CreateRole)
		roles.DELETE("/roles/:id", middleware.RBACAuthorize(service, "rbac", "manage"), handler.DeleteRole)
		roles.PUT("/roles/:id/permissions", middleware.RBACAuthorize(service, "rbac", "manage"), handler.UpdateRolePermissions)
		roles.POST("/assignments", middleware.RBACAuthorize(service, "rbac", "manage"), handler.AssignRole)
		roles.GET("/permissions", middleware.RBACAuthorize(service, "rbac", "read"), handler.ListPermissions)
	}
}
