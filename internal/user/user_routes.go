package user

import (
	"team-pulse/internal/middleware"
	"team-pulse/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	authMW gin.HandlerFunc,
	userLimit gin.HandlerFunc,
	rbacService middleware.RBACService,
) {
	users := r.Group("/users", authMW, userLimit)
	{
		users.GET("",
			middleware.RBACAuthorize(rbacService, rbac.ResourceUser, rbac.ActionRead),
			handler.GetAll,
		)

		users.GET("/:id",
			middleware.RBACAuthorize(rbacService, rbac.ResourceUser, rbac.ActionRead),
			handler.GetByID,
		)

		users.POST("",
			middleware.RBACAuthorize(rbacService, rbac.ResourceUser, rbac.ActionCreate),
			handler.Create,
		)

		users.PATCH("/:id/status",
			middleware.RBACAuthorize(rbacService, rbac.ResourceUser, rbac.ActionUpdate),
			handler.ToggleStatus,
		)

		users.PATCH("/:id/team",
			middleware.RBACAuthorize(rbacService, rbac.ResourceUser, rbac.ActionUpdate),
			handler.AssignTeam,
		)
	}
}
