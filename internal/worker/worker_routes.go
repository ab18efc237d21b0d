package worker

import (
	"dairy-erp/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	workers := r.Group("/workers")
	{
		workers.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "worker", "read"),
			handler.GetAll,
		)

		workers.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "worker", "read"),
			handler.GetByID,
		)

		workers.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "worker", "create"),
			handler.Create,
		)

		workers.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "worker", "update"),
			handler.Update,
		)

		workers.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "worker", "delete"),
			handler.Delete,
		)
	}
}
