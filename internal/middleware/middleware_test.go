package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-school/internal/domain"
	"go-school/internal/middleware"
	"go-school/internal/shared/contextutil"
	"go-school/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	assert.NoError(t, err)
	return token
}

type staticRBAC struct {
	allowed bool
	err     error
	got     domain.EnforceRequest
}

func (s *staticRBAC) Enforce(req domain.EnforceRequest) (bool, error) {
	s.got = req
	return s.allowed, s.err
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func() *gin.Engine {
		r := gin.New()
		r.GET("/me", middleware.AuthMiddleware(testSecret), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"user_id": c.GetString("user_id"),
				"role":    c.GetString("role"),
				"ctx_uid": contextutil.GetUserID(c.Request.Context()),
			})
		})
		return r
	}

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "valid bearer token",
			header:     "Bearer " + signToken(t, jwt.MapClaims{"user_id": "stu-1", "role": "student", "exp": time.Now().Add(time.Hour).Unix()}),
			wantStatus: http.StatusOK,
			wantBody:   `{"ctx_uid":"stu-1","role":"student","user_id":"stu-1"}`,
		},
		{
			name:       "missing token",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "expired token",
			header:     "Bearer " + signToken(t, jwt.MapClaims{"user_id": "stu-1", "role": "student", "exp": time.Now().Add(-time.Hour).Unix()}),
			wantStatus: http.StatusUnauthorized,
			wantBody:   `"Token has expired"`,
		},
		{
			name:       "token without user id",
			header:     "Bearer " + signToken(t, jwt.MapClaims{"role": "admin"}),
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			newRouter().ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.Contains(t, w.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestRBACAuthorize(t *testing.T) {
	gin.SetMode(gin.TestMode)

	run := func(rbac *staticRBAC, role string) *httptest.ResponseRecorder {
		r := gin.New()
		r.POST("/leaves/:id/approve", func(c *gin.Context) {
			c.Set("role", role)
			c.Next()
		}, middleware.RBACAuthorize(rbac, "leave", "review"), func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/leaves/1/approve", nil))
		return w
	}

	t.Run("allowed", func(t *testing.T) {
		rbac := &staticRBAC{allowed: true}
		w := run(rbac, "admin")
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, domain.EnforceRequest{Role: "admin", Resource: "leave", Action: "review"}, rbac.got)
	})

	t.Run("forbidden names the permission", func(t *testing.T) {
		w := run(&staticRBAC{}, "student")
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "leave:review")
	})

	t.Run("no role", func(t *testing.T) {
		w := run(&staticRBAC{allowed: true}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("enforcer failure", func(t *testing.T) {
		w := run(&staticRBAC{err: errors.New("policy load")}, "admin")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestIdempotency(t *testing.T) {
	gin.SetMode(gin.TestMode)

	const stored = `{"status":201,"body":{"ok":true,"data":{"id":"x"}}}`
	cacheKey := middleware.IdempotencyCacheKey("/leaves", "stu-1", "k1")
	lockKey := cacheKey + ":lock"

	newRouter := func(t *testing.T, calls *int) (*gin.Engine, redismock.ClientMock) {
		rdb, mock := redismock.NewClientMock()
		r := gin.New()
		r.POST("/leaves", func(c *gin.Context) {
			c.Set("user_id", "stu-1")
			c.Next()
		}, middleware.Idempotency(rdb, time.Hour, zap.NewNop()), func(c *gin.Context) {
			*calls++
			response.Success(c, http.StatusCreated, gin.H{"id": "x"}, nil)
		})
		return r, mock
	}

	post := func(r *gin.Engine) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/leaves", nil)
		req.Header.Set(middleware.IdempotencyHeader, "k1")
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("first request stores the response", func(t *testing.T) {
		calls := 0
		r, mock := newRouter(t, &calls)
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(true)
		mock.ExpectSet(cacheKey, stored, time.Hour).SetVal("OK")
		mock.ExpectDel(lockKey).SetVal(1)

		w := post(r)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("repeat is replayed", func(t *testing.T) {
		calls := 0
		r, mock := newRouter(t, &calls)
		mock.ExpectGet(cacheKey).SetVal(stored)

		w := post(r)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 0, calls)
		assert.Equal(t, "true", w.Header().Get("Idempotent-Replayed"))
		assert.JSONEq(t, `{"ok":true,"data":{"id":"x"}}`, w.Body.String())
	})

	t.Run("concurrent duplicate is rejected", func(t *testing.T) {
		calls := 0
		r, mock := newRouter(t, &calls)
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(false)

		w := post(r)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, 0, calls)
	})
}

func TestRateLimitByUser(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/leaves", func(c *gin.Context) {
		c.Set("user_id", c.GetHeader("X-User"))
		c.Next()
	}, middleware.RateLimitByUser(rate.Every(time.Hour), 1), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	send := func(user string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/leaves", nil)
		req.Header.Set("X-User", user)
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusNoContent, send("stu-1"))
	assert.Equal(t, http.StatusTooManyRequests, send("stu-1"))
	assert.Equal(t, http.StatusNoContent, send("stu-2"))
}
