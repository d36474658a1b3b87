package notification

import (
	"net/http"

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
	l := zap.L().Named("notification.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.handler")
	}
	return &Handler{svc: service, logger: l}
}

func (h *Handler) List(c *gin.Context) {
	caller, ok := middleware.GetIdentity(c)
	if !ok {
		response.FromError(c, apperror.ErrUnauthorized)
		return
	}

	res, err := h.svc.List(c.Request.Context(), caller)
	if err != nil {
		h.logger.Error("list notifications failed", zap.Error(err))
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) MarkRead(c *gin.Context) {
	caller, ok := middleware.GetIdentity(c)
	if !ok {
		response.FromError(c, apperror.ErrUnauthorized)
		return
	}

	if err := h.svc.MarkRead(c.Request.Context(), caller, c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"read": true}, nil)
}
