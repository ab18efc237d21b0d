package payroll

import (
	"dairy-erp/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	rdb *redis.Client,
) {
	payroll := r.Group("/payroll")
	{
		payroll.GET("/monthly-report/:worker_id",
			middleware.RateLimitByUser(5, 20),
			middleware.RBACAuthorize(rbacService, "payroll", "read"),
			handler.GetMonthlyReport,
		)
		payroll.GET("/preview",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "payroll", "read"),
			handler.Preview,
		)
		payroll.PUT("/working-days",
			middleware.RateLimitByUser(2, 10),
			middleware.RBACAuthorize(rbacService, "working_days", "update"),
			handler.UpdateWorkingDays,
		)
		payroll.POST("/generate",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "payroll", "create"),
			middleware.Idempotency(rdb),
			handler.Generate,
		)

		records := payroll.Group("/records")
		records.GET("", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.GetRecords)
		records.GET("/:id", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.GetRecordByID)
		records.GET("/:id/payslip", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.DownloadPayslip)
		records.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "payroll", "approve"), handler.Approve)
		records.POST("/:id/mark-paid", middleware.RBACAuthorize(rbacService, "payroll", "pay"), handler.MarkPaid)
		records.DELETE("/:id", middleware.RBACAuthorize(rbacService, "payroll", "delete"), handler.Delete)
	}
}
