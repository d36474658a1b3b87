package middleware

import (
	"errors"
	"strings"

	autherrors "team-pulse/internal/auth/errors"
	"team-pulse/internal/domain"
	"team-pulse/internal/shared/apperror"
	"team-pulse/internal/shared/contextutil"
	"team-pulse/internal/shared/response"
	"team-pulse/internal/shared/token"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	AccessTokenCookie = "access_token"

	identityKey    = "identity"
	ctxUserID      = "user_id"
	ctxWorkspaceID = "workspace_id"
	ctxRole        = "role"
)

// AuthMiddleware verifies the bearer token (or the access_token cookie) and puts
// the caller identity on the gin context.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, _ := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if tokenString == "" {
			if cookie, err := c.Cookie(AccessTokenCookie); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			abortWith(c, autherrors.ErrTokenNotFound)
			return
		}

		id, err := token.Parse(secret, tokenString)
		if err != nil {
			errObj := autherrors.ErrInvalidToken
			if errors.Is(err, token.ErrTokenExpired) {
				errObj = autherrors.ErrTokenExpired
			}
			abortWith(c, errObj)
			return
		}

		SetIdentity(c, id)

		ctx := c.Request.Context()
		ctx = contextutil.WithUserID(ctx, id.UserID.String())
		ctx = contextutil.WithWorkspaceID(ctx, id.WorkspaceID.String())
		logger := contextutil.GetLogger(ctx, zap.L()).With(
			zap.String("user_id", id.UserID.String()),
			zap.String("workspace_id", id.WorkspaceID.String()),
		)
		ctx = contextutil.WithLogger(ctx, logger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// SetIdentity stores id on the gin context. Exported for handler tests.
func SetIdentity(c *gin.Context, id domain.Identity) {
	c.Set(identityKey, id)
	c.Set(ctxUserID, id.UserID.String())
	c.Set(ctxWorkspaceID, id.WorkspaceID.String())
	c.Set(ctxRole, string(id.Role))
}

func GetIdentity(c *gin.Context) (domain.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return domain.Identity{}, false
	}
	id, ok := v.(domain.Identity)
	return id, ok
}

func abortWith(c *gin.Context, err *apperror.AppError) {
	response.Abort(c, err.HTTPStatus(), err.Code, err.Message)
}
