package rbac

import (
	"net/http"

	"team-pulse/internal/middleware"
	"team-pulse/internal/shared/apperror"
	"team-pulse/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("rbac.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.handler")
	}
	return &Handler{service: service, logger: l}
}

// MyPermissions lists what the caller's role may do, for clients that hide
// actions the user cannot take.
func (h *Handler) MyPermissions(c *gin.Context) {
	id, ok := middleware.GetIdentity(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, apperror.ErrUnauthorized.Message, nil)
		return
	}

	perms, err := h.service.Permissions(id.Role)
	if err != nil {
		h.logger.Error("list permissions failed", zap.String("role", string(id.Role)), zap.Error(err))
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"role":        id.Role,
		"permissions": perms,
	}, nil)
}
