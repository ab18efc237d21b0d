package salarybonus

import (
	"dairy-erp/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	bonuses := r.Group("/salary-bonuses")
	{
		bonuses.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "salary_bonus", "read"),
			handler.GetAll,
		)

		bonuses.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "salary_bonus", "update"),
			handler.Upsert,
		)
	}
}
