package leave

import (
	"errors"
	"io"
	"net/http"

	"go-school/internal/domain"
	leaveerrors "go-school/internal/leave/errors"
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
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("leave request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Submit(c *gin.Context) {
	applicantID := c.GetString("user_id")
	role := domain.Role(c.GetString("role"))
	h.logger.Debug("http submit leave", zap.String("applicant_id", applicantID))

	var req SubmitLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http submit leave validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Submit(c.Request.Context(), applicantID, role, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) ListMine(c *gin.Context) {
	h.list(c, c.GetString("user_id"))
}

func (h *Handler) ListByApplicant(c *gin.Context) {
	h.list(c, c.Param("applicant_id"))
}

func (h *Handler) list(c *gin.Context, applicantID string) {
	resp, err := h.service.ListForApplicant(c.Request.Context(), applicantID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	page, meta := response.Paginate(c, resp)
	response.Success(c, http.StatusOK, page, &meta)
}

func (h *Handler) ListPending(c *gin.Context) {
	resp, err := h.service.ListPending(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	page, meta := response.Paginate(c, resp)
	response.Success(c, http.StatusOK, page, &meta)
}

// GetByID hides other applicants' leave from non-admin callers.
func (h *Handler) GetByID(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	if domain.Role(c.GetString("role")) != domain.RoleAdmin && resp.ApplicantID != c.GetString("user_id") {
		h.writeServiceError(c, leaveerrors.ErrLeaveNotFound)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Approve(c *gin.Context) {
	req, ok := h.bindReview(c)
	if !ok {
		return
	}
	resp, err := h.service.Approve(c.Request.Context(), c.GetString("user_id"), c.Param("id"), req.DateBucket)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Reject(c *gin.Context) {
	req, ok := h.bindReview(c)
	if !ok {
		return
	}
	resp, err := h.service.Reject(c.Request.Context(), c.GetString("user_id"), c.Param("id"), req.DateBucket, req.RejectionReason)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// bindReview accepts an empty body; the bucket may also come from ?bucket=.
func (h *Handler) bindReview(c *gin.Context) (ReviewLeaveRequest, bool) {
	var req ReviewLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("http review leave validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return req, false
	}
	if req.DateBucket == "" {
		req.DateBucket = c.Query("bucket")
	}
	return req, true
}
