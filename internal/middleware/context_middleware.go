package middleware

import (
	"dairy-erp/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ContextLogger copies the request id and the authenticated caller into
// the request context and attaches a logger carrying them, so services
// can read both through contextutil. It must run after AuthMiddleware.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetString("request_id")
		if rid == "" {
			rid = uuid.New().String()
			c.Header("X-Request-ID", rid)
		}

		ctx := c.Request.Context()
		ctx = contextutil.WithRequestID(ctx, rid)
		ctx = contextutil.WithUserID(ctx, c.GetString(ContextUserIDValidated))
		ctx = contextutil.WithRole(ctx, c.GetString(ContextRole))

		meta := contextutil.ExtractMetadata(ctx)
		ctx = contextutil.WithLogger(ctx, logger.With(meta.Fields()...))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
