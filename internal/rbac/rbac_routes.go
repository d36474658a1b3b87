package rbac

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authMW gin.HandlerFunc) {
	group := r.Group("/rbac", authMW)
	{
		group.GET("/permissions", handler.MyPermissions)
	}
}
