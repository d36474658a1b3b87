package leave

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
	idempotency gin.HandlerFunc,
	rbacService middleware.RBACService,
) {
	leaves := r.Group("/leaves", authMW, userLimit)
	{
		leaves.POST("",
			middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, rbac.ActionApply),
			idempotency,
			handler.Apply,
		)

		leaves.GET("/me",
			middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, rbac.ActionRead),
			handler.ListMine,
		)

		leaves.GET("/team",
			middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, rbac.ActionRead),
			handler.ListTeam,
		)

		leaves.GET("/:id",
			middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, rbac.ActionRead),
			handler.GetByID,
		)

		leaves.POST("/:id/approve",
			middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, rbac.ActionApprove),
			handler.Approve,
		)

		leaves.POST("/:id/reject",
			middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, rbac.ActionReject),
			handler.Reject,
		)

		leaves.POST("/:id/cancel",
			middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, rbac.ActionCancel),
			handler.Cancel,
		)
	}
}
