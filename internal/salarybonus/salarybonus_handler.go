package salarybonus

import (
	"net/http"

	"dairy-erp/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("salarybonus.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salarybonus.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) Upsert(c *gin.Context) {
	var req UpsertSalaryBonusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http upsert salary bonus validation failed", zap.Error(err))
		response.ValidationError(c, err)
		return
	}

	resp, err := h.service.Upsert(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	var filter GetSalaryBonusesFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.ValidationError(c, err)
		return
	}

	resp, err := h.service.GetAll(c.Request.Context(), filter)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
