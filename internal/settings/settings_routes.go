package settings

import (
	"dairy-erp/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	g := r.Group("/payroll-settings")
	{
		g.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "payroll_settings", "read"),
			handler.Get,
		)
		g.PUT("",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RBACAuthorize(rbacService, "payroll_settings", "update"),
			handler.Update,
		)
	}
}
