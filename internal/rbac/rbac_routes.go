package rbac

import (
	"dairy-erp/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	group := r.Group("/rbac")
	{
		group.GET("/policies", middleware.RBACAuthorize(rbacService, "rbac", "read"), handler.ListPolicies)
		group.POST("/enforce", middleware.RBACAuthorize(rbacService, "rbac", "read"), handler.Enforce)
		group.POST("/reload", middleware.RBACAuthorize(rbacService, "rbac", "manage"), handler.Reload)
	}
}
