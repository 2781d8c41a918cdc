package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-school/internal/bootstrap"
	"go-school/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type recordingAudit struct {
	entries []bootstrap.AuditLog
}

func (r *recordingAudit) Log(ctx context.Context, entry bootstrap.AuditLog) {
	r.entries = append(r.entries, entry)
}

func TestAuditTrail(t *testing.T) {
	gin.SetMode(gin.TestMode)

	audit := &recordingAudit{}
	r := gin.New()
	r.Use(middleware.AuditTrail(audit, map[string]string{
		"PUT /balances/:applicant_id": "BALANCE_SET",
	}))
	setUser := func(c *gin.Context) {
		c.Set("user_id", "adm-1")
		c.Set("role", "admin")
	}
	r.PUT("/balances/:applicant_id", setUser, func(c *gin.Context) {
		if c.Query("fail") != "" {
			c.Status(http.StatusBadRequest)
			return
		}
		c.Status(http.StatusOK)
	})
	r.GET("/balances/:applicant_id", setUser, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	serve := func(method, target string) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	}

	serve(http.MethodPut, "/balances/stu-1")
	serve(http.MethodPut, "/balances/stu-1?fail=1")
	serve(http.MethodGet, "/balances/stu-1")

	if assert.Len(t, audit.entries, 1) {
		entry := audit.entries[0]
		assert.Equal(t, "BALANCE_SET", entry.Action)
		assert.Equal(t, "adm-1", entry.Meta["actor_id"])
		assert.Equal(t, "stu-1", entry.Meta["applicant_id"])
		assert.Equal(t, http.StatusOK, entry.Meta["status"])
	}
}
