package balance_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-school/internal/balance"
	balanceMock "go-school/internal/balance/mock"
	"go-school/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

func TestBalanceHandler_GetMine(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("uses caller identity", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := balanceMock.NewMockService(ctrl)
		svc.EXPECT().
			EnsureCurrent(gomock.Any(), "stu-1", domain.RoleStudent).
			Return(domain.Allowance{Casual: 7, Medical: 15, Emergency: 5, Personal: 5}, nil)

		h := balance.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/balances/me", nil)
		c.Set("user_id", "stu-1")
		c.Set("role", "student")

		h.GetMine(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		var got balance.BalanceResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, "stu-1", got.ApplicantID)
		assert.Equal(t, 7, got.Balance.Casual)
	})

	t.Run("unexpected error is hidden", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := balanceMock.NewMockService(ctrl)
		svc.EXPECT().EnsureCurrent(gomock.Any(), gomock.Any(), gomock.Any()).Return(domain.Allowance{}, errors.New("pq: broken pipe"))

		h := balance.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/balances/me", nil)
		c.Set("user_id", "stu-1")
		c.Set("role", "student")

		h.GetMine(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.NotContains(t, env.Error.Message, "broken pipe")
	})
}

func TestBalanceHandler_GetByApplicant(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("role query is required", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := balanceMock.NewMockService(ctrl)

		h := balance.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/balances/stu-1", nil)
		c.Params = gin.Params{{Key: "applicant_id", Value: "stu-1"}}

		h.GetByApplicant(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("reads through cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := balanceMock.NewMockService(ctrl)
		svc.EXPECT().GetCachedBalance(gomock.Any(), "tch-1", domain.RoleTeacher).Return(domain.Allowance{Casual: 12}, nil)

		h := balance.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/balances/tch-1?role=teacher", nil)
		c.Params = gin.Params{{Key: "applicant_id", Value: "tch-1"}}

		h.GetByApplicant(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestBalanceHandler_Set(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := balanceMock.NewMockService(ctrl)
		svc.EXPECT().
			SetBalance(gomock.Any(), "stu-1", domain.RoleStudent, domain.Allowance{Casual: 3, Medical: 0, Emergency: 1, Personal: 2}).
			Return(nil)

		h := balance.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"role":"student","casual":3,"medical":0,"emergency":1,"personal":2}`
		c.Request = httptest.NewRequest(http.MethodPut, "/balances/stu-1", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "applicant_id", Value: "stu-1"}}

		h.Set(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing field rejected by binding", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := balanceMock.NewMockService(ctrl)

		h := balance.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"role":"student","casual":3,"emergency":1,"personal":2}`
		c.Request = httptest.NewRequest(http.MethodPut, "/balances/stu-1", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "applicant_id", Value: "stu-1"}}

		h.Set(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("negative value rejected by binding", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := balanceMock.NewMockService(ctrl)

		h := balance.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"role":"student","casual":-1,"medical":0,"emergency":1,"personal":2}`
		c.Request = httptest.NewRequest(http.MethodPut, "/balances/stu-1", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "applicant_id", Value: "stu-1"}}

		h.Set(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
	})
}
