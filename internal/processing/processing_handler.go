package processing

import (
	"net/http"

	"go-school/internal/shared/apperror"
	"go-school/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	engine Engine
	logger *zap.Logger
}

func NewHandler(engine Engine, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("processing.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("processing.handler")
	}
	return &Handler{engine: engine, logger: l}
}

// Process settles one approved application on demand.
func (h *Handler) Process(c *gin.Context) {
	id := c.Param("id")
	h.logger.Debug("http process leave", zap.String("leave_id", id))

	resp, err := h.engine.ProcessOne(c.Request.Context(), id)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Warn("http process leave failed",
			zap.String("leave_id", id),
			zap.Int("status", httpErr.Status),
			zap.String("code", httpErr.Code),
		)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
