package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-school/internal/bootstrap"
	"go-school/internal/shared/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type recordingAudit struct {
	entries []bootstrap.AuditLog
}

func (r *recordingAudit) Log(ctx context.Context, entry bootstrap.AuditLog) {
	r.entries = append(r.entries, entry)
}

func TestRegisterModules_Routes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	audit := &recordingAudit{}
	cfg := config.Config{JWTSecret: "secret", Leave: config.LeaveConfig{SubmitRateLimitPerSec: 1, SubmitRateLimitBurst: 5}}

	err := registerModules(router, cfg, nil, nil, nil, audit, zap.NewNop())
	assert.NoError(t, err)

	registered := map[string]bool{}
	for _, r := range router.Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	for _, want := range []string{
		"GET /api/v1/quotas",
		"GET /api/v1/quotas/:role",
		"PUT /api/v1/quotas/:role",
		"GET /api/v1/balances/me",
		"GET /api/v1/balances/:applicant_id",
		"PUT /api/v1/balances/:applicant_id",
		"POST /api/v1/leaves",
		"GET /api/v1/leaves/me",
		"GET /api/v1/leaves/pending",
		"GET /api/v1/leaves/applicants/:applicant_id",
		"GET /api/v1/leaves/:id",
		"POST /api/v1/leaves/:id/approve",
		"POST /api/v1/leaves/:id/reject",
		"POST /api/v1/leaves/:id/process",
		"POST /api/v1/rbac/enforce",
	} {
		assert.True(t, registered[want], want)
	}
	for route := range auditedRoutes {
		assert.True(t, registered[route], route)
	}
	assert.Len(t, audit.entries, 1)
}

func TestRegisterModules_RequiresToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	err := registerModules(router, config.Config{JWTSecret: "secret"}, nil, nil, nil, &recordingAudit{}, zap.NewNop())
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/balances/me", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
