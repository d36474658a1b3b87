package team

import (
	"team-pulse/internal/middleware"
	"team-pulse/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authMW gin.HandlerFunc, rbacService middleware.RBACService) {
	teams := r.Group("/teams", authMW)
	{
		teams.POST("",
			middleware.RBACAuthorize(rbacService, rbac.ResourceTeam, rbac.ActionCreate),
			handler.Create,
		)
		teams.GET("",
			middleware.RBACAuthorize(rbacService, rbac.ResourceTeam, rbac.ActionRead),
			handler.List,
		)
	}
}
