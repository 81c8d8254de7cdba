package nik

import (
	"github.com/AlfahrezaRico/backend/internal/middleware"
	"github.com/AlfahrezaRico/backend/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	configs := r.Group("/nik-configs")
	configs.Use(middleware.AuthMiddleware())
	{
		configs.GET("", middleware.RBACAuthorize(rbacService, "nik_config", "read"), handler.GetAllConfigs)
		configs.POST("", middleware.RBACAuthorize(rbacService, "nik_config", "create"), handler.CreateConfig)
		configs.PUT("/:id", middleware.RBACAuthorize(rbacService, "nik_config", "update"), handler.UpdateConfig)
	}

	niks := r.Group("/nik")
	niks.Use(middleware.AuthMiddleware())
	{
		niks.POST("/generate/:departmentId", middleware.RBACAuthorize(rbacService, "nik_config", "create"), handler.Generate)
		niks.POST("/validate", middleware.RBACAuthorize(rbacService, "nik_config", "read"), handler.ValidateFormat)
	}
}
