package auth

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	authMW gin.HandlerFunc,
	loginLimit gin.HandlerFunc,
	userLimit gin.HandlerFunc,
) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", loginLimit, handler.Register)
		auth.POST("/login", loginLimit, handler.Login)
		auth.POST("/logout", handler.Logout)
		auth.GET("/me", authMW, userLimit, handler.Me)
	}
}
