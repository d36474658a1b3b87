package team

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
	l := zap.L().Named("team.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("team.handler")
	}
	return &Handler{svc: service, logger: l}
}

func (h *Handler) Create(c *gin.Context) {
	caller, ok := middleware.GetIdentity(c)
	if !ok {
		response.FromError(c, apperror.ErrUnauthorized)
		return
	}

	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.svc.Create(c.Request.Context(), caller, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res, nil)
}

func (h *Handler) List(c *gin.Context) {
	caller, ok := middleware.GetIdentity(c)
	if !ok {
		response.FromError(c, apperror.ErrUnauthorized)
		return
	}

	res, err := h.svc.List(c.Request.Context(), caller)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}
