package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"team-pulse/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func idempotencyRouter(t *testing.T) (*gin.Engine, redismock.ClientMock, *int, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rdb, mock := redismock.NewClientMock()
	id := newIdentity()
	calls := 0

	r := gin.New()
	r.POST("/leaves",
		func(c *gin.Context) {
			middleware.SetIdentity(c, id)
			c.Next()
		},
		middleware.Idempotency(rdb),
		func(c *gin.Context) {
			calls++
			c.JSON(http.StatusCreated, gin.H{"ok": true})
		},
	)
	return r, mock, &calls, id.UserID.String()
}

func TestIdempotency(t *testing.T) {
	t.Run("success no key passes through", func(t *testing.T) {
		r, mock, calls, _ := idempotencyRouter(t)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/leaves", nil))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, *calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success replays stored response", func(t *testing.T) {
		r, mock, calls, userID := idempotencyRouter(t)
		key := middleware.IdempotencyCacheKey("/leaves", userID, "abc")
		mock.ExpectGet(key).SetVal(`{"status":201,"body":"{\"ok\":true,\"data\":{\"id\":\"1\"}}"}`)

		req := httptest.NewRequest(http.MethodPost, "/leaves", nil)
		req.Header.Set(middleware.IdempotencyHeader, "abc")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "true", w.Header().Get(middleware.ReplayedHeader))
		assert.JSONEq(t, `{"ok":true,"data":{"id":"1"}}`, w.Body.String())
		assert.Equal(t, 0, *calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative request still in flight", func(t *testing.T) {
		r, mock, calls, userID := idempotencyRouter(t)
		key := middleware.IdempotencyCacheKey("/leaves", userID, "abc")
		mock.ExpectGet(key).RedisNil()
		mock.ExpectSetNX(key+":lock", "1", 30*time.Second).SetVal(false)

		req := httptest.NewRequest(http.MethodPost, "/leaves", nil)
		req.Header.Set(middleware.IdempotencyHeader, "abc")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "CONFLICT", decodeEnvelope(t, w).Error.Code)
		assert.Equal(t, 0, *calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
