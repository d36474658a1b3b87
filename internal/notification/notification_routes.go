package notification

import (
	"team-pulse/internal/middleware"
	"team-pulse/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	authMW gin.HandlerFunc,
	rbacService middleware.RBACService,
) {
	notifications := r.Group("/notifications", authMW)
	{
		notifications.GET("",
			middleware.RBACAuthorize(rbacService, rbac.ResourceNotification, rbac.ActionRead),
			handler.List,
		)

		notifications.POST("/:id/read",
			middleware.RBACAuthorize(rbacService, rbac.ResourceNotification, rbac.ActionUpdate),
			handler.MarkRead,
		)
	}
}
