package quota

import (
	"net/http"

	"go-school/internal/domain"
	"go-school/internal/shared/apperror"
	"go-school/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("quota.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("quota.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("quota request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) List(c *gin.Context) {
	resp, err := h.service.ListQuotas(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Get(c *gin.Context) {
	role := domain.Role(c.Param("role"))

	a, err := h.service.GetDefaultQuota(c.Request.Context(), role)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, QuotaResponse{Role: string(role), Quota: a}, nil)
}

func (h *Handler) Update(c *gin.Context) {
	role := domain.Role(c.Param("role"))
	actorID := c.GetString("user_id")

	var req UpdateQuotaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http update quota validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.UpdateQuota(c.Request.Context(), actorID, role, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
