package advance

import (
	"dairy-erp/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService, rdb *redis.Client) {
	advances := r.Group("/advances")
	{
		advances.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "advance", "read"),
			handler.GetAll,
		)

		advances.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "advance", "create"),
			middleware.Idempotency(rdb),
			handler.Create,
		)

		advances.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "advance", "delete"),
			handler.Delete,
		)
	}
}
