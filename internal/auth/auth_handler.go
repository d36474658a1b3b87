package auth

import (
	"net/http"
	"strings"
	"time"

	"team-pulse/internal/middleware"
	"team-pulse/internal/shared/apperror"
	"team-pulse/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const ClientTypeHeader = "X-Client-Type"

type Handler struct {
	svc          Service
	secureCookie bool
	cookieTTL    time.Duration
	logger       *zap.Logger
}

func NewHandler(service Service, secureCookie bool, cookieTTL time.Duration, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("auth.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.handler")
	}
	return &Handler{svc: service, secureCookie: secureCookie, cookieTTL: cookieTTL, logger: l}
}

// isWebClient treats explicit WEB clients and browsers as cookie consumers.
func isWebClient(c *gin.Context) bool {
	if ct := strings.TrimSpace(c.GetHeader(ClientTypeHeader)); ct != "" {
		return strings.EqualFold(ct, "WEB")
	}
	return strings.Contains(c.GetHeader("User-Agent"), "Mozilla")
}

func (h *Handler) setTokenCookie(c *gin.Context, value string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, res, nil)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	if isWebClient(c) {
		h.setTokenCookie(c, res.AccessToken, int(h.cookieTTL.Seconds()))
	}

	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) Me(c *gin.Context) {
	caller, ok := middleware.GetIdentity(c)
	if !ok {
		response.FromError(c, apperror.ErrUnauthorized)
		return
	}

	res, err := h.svc.Me(c.Request.Context(), caller)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) Logout(c *gin.Context) {
	h.setTokenCookie(c, "", -1)
	response.Success(c, http.StatusOK, gin.H{"message": "Logout success."}, nil)
}
