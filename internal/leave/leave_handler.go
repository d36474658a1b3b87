package leave

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"team-pulse/internal/domain"
	"team-pulse/internal/middleware"
	"team-pulse/internal/shared/apperror"
	"team-pulse/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	svc    Service
	logger *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{svc: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	if apperror.CodeOf(err) == apperror.CodeInternalError {
		h.logger.Error("leave request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	response.FromError(c, err)
}

func (h *Handler) identity(c *gin.Context) (domain.Identity, bool) {
	caller, ok := middleware.GetIdentity(c)
	if !ok {
		response.FromError(c, apperror.ErrUnauthorized)
	}
	return caller, ok
}

func (h *Handler) Apply(c *gin.Context) {
	caller, ok := h.identity(c)
	if !ok {
		return
	}

	var req ApplyLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.svc.Apply(c.Request.Context(), caller, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, res, nil)
}

func (h *Handler) Approve(c *gin.Context) {
	h.review(c, h.svc.Approve)
}

func (h *Handler) Reject(c *gin.Context) {
	h.review(c, h.svc.Reject)
}

type reviewFunc func(ctx context.Context, caller domain.Identity, id string, req ReviewLeaveRequest) (LeaveResponse, error)

// review accepts an empty body; the comment is optional.
func (h *Handler) review(c *gin.Context, fn reviewFunc) {
	caller, ok := h.identity(c)
	if !ok {
		return
	}

	var req ReviewLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BindError(c, err)
		return
	}

	res, err := fn(c.Request.Context(), caller, c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) Cancel(c *gin.Context) {
	caller, ok := h.identity(c)
	if !ok {
		return
	}

	res, err := h.svc.Cancel(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) ListMine(c *gin.Context) {
	caller, ok := h.identity(c)
	if !ok {
		return
	}

	res, err := h.svc.ListMine(c.Request.Context(), caller)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	items, meta := response.Paginate(res, page, pageSize)
	response.Success(c, http.StatusOK, items, &meta)
}

// ListTeam defaults to the caller's team; admins pass ?team_id=.
func (h *Handler) ListTeam(c *gin.Context) {
	caller, ok := h.identity(c)
	if !ok {
		return
	}

	res, err := h.svc.ListTeam(c.Request.Context(), caller, c.Query("team_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	caller, ok := h.identity(c)
	if !ok {
		return
	}

	res, err := h.svc.GetByID(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, res, nil)
}
