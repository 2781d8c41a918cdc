package balance

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
	l := zap.L().Named("balance.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("balance request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// GetMine is called when a dashboard session opens; it also performs the
// yearly reset check.
func (h *Handler) GetMine(c *gin.Context) {
	applicantID := c.GetString("user_id")
	role := domain.Role(c.GetString("role"))
	h.logger.Debug("http get own balance", zap.String("applicant_id", applicantID))

	a, err := h.service.EnsureCurrent(c.Request.Context(), applicantID, role)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, BalanceResponse{ApplicantID: applicantID, Role: string(role), Balance: a}, nil)
}

func (h *Handler) GetByApplicant(c *gin.Context) {
	applicantID := c.Param("applicant_id")
	role, err := domain.ParseApplicantRole(c.Query("role"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	a, err := h.service.GetCachedBalance(c.Request.Context(), applicantID, role)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, BalanceResponse{ApplicantID: applicantID, Role: string(role), Balance: a}, nil)
}

func (h *Handler) Set(c *gin.Context) {
	applicantID := c.Param("applicant_id")

	var req SetBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http set balance validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	role := domain.Role(req.Role)
	a := req.Allowance()
	if err := h.service.SetBalance(c.Request.Context(), applicantID, role, a); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, BalanceResponse{ApplicantID: applicantID, Role: req.Role, Balance: a}, nil)
}
