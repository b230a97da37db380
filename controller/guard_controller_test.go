// api/controller/guard_controller_test.go
package controller_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	testify_mock "github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/anish-goyal/finboard/api/controller"
	"github.com/anish-goyal/finboard/api/guard"
	logger "github.com/anish-goyal/finboard/api/logging"
	"github.com/anish-goyal/finboard/api/service"
	"github.com/anish-goyal/finboard/api/test/mock"
	"github.com/anish-goyal/finboard/api/util"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logDir, err := os.MkdirTemp("", "controller-test")
	if err != nil {
		panic(err)
	}
	logger.InitLogger(logDir)
	code := m.Run()
	logger.Sync()
	os.RemoveAll(logDir)
	os.Exit(code)
}

func setupGuardRouter(auditService *mock.MockAuditService) *gin.Engine {
	ledger := guard.NewLedger()
	canonicalGuard := guard.NewGuard(ledger)
	eventBus := util.NewEventBus()
	eventBus.Start(context.Background())

	guardService := service.NewGuardService(
		canonicalGuard,
		ledger,
		auditService,
		util.NewNotificationService(),
		eventBus,
	)

	guardController := controller.NewGuardController(guardService, util.NewValidationUtil())
	router := gin.New()
	api := router.Group("/")
	guardController.RegisterRoutes(api)
	return router
}

const allowedOperationBody = `{
	"operation": {
		"id": "op-1",
		"type": "dashboard_view",
		"action": "view_balance",
		"method": "GET",
		"trigger_type": "button_click",
		"triggered_by": "user-42"
	},
	"context": {
		"confidence": 0.95,
		"evidence": {
			"source": "plaid",
			"timestamp": "2025-08-26T10:00:00Z",
			"data": {"balance": 100}
		}
	}
}`

func TestEvaluateOperation(t *testing.T) {
	router := setupGuardRouter(&mock.MockAuditService{})

	t.Run("AllowedOperation", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/guard/decisions", strings.NewReader(allowedOperationBody))
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var response struct {
			Decision     guard.Decision `json:"decision"`
			FailedChecks []string       `json:"failed_checks"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.True(t, response.Decision.Allowed)
		assert.Equal(t, guard.ModeAdvisory, response.Decision.Mode)
		assert.Empty(t, response.FailedChecks)
	})

	t.Run("BlockedOperationStillReturns200WithFailedChecks", func(t *testing.T) {
		body := strings.Replace(allowedOperationBody, `"confidence": 0.95`, `"confidence": 0.4`, 1)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/guard/decisions", strings.NewReader(body))
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var response struct {
			Decision     guard.Decision `json:"decision"`
			FailedChecks []string       `json:"failed_checks"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.False(t, response.Decision.Allowed)
		assert.Equal(t, []string{guard.CheckConfidence}, response.FailedChecks)
	})

	t.Run("MalformedOperationIs400", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/guard/decisions", strings.NewReader(`{"operation":{}}`))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestListDecisions(t *testing.T) {
	router := setupGuardRouter(&mock.MockAuditService{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/guard/decisions", strings.NewReader(allowedOperationBody))
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/guard/decisions", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Decisions []guard.Decision `json:"decisions"`
		Count     int              `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 1, response.Count)
	require.Len(t, response.Decisions, 1)
	assert.Equal(t, "op-1", response.Decisions[0].OperationID)
}

func TestExportDecisions(t *testing.T) {
	auditService := &mock.MockAuditService{}
	auditService.On("ExportDecisions", testify_mock.Anything, testify_mock.Anything, testify_mock.Anything).
		Return(1, nil)
	router := setupGuardRouter(auditService)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/guard/decisions", strings.NewReader(allowedOperationBody))
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("POST", "/guard/decisions/export", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"exported":1`)
	auditService.AssertExpectations(t)
}
