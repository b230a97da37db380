// api/controller/transaction_controller_test.go
package controller_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anish-goyal/finboard/api/backend"
	"github.com/anish-goyal/finboard/api/controller"
	"github.com/anish-goyal/finboard/api/guard"
	"github.com/anish-goyal/finboard/api/provenance"
	"github.com/anish-goyal/finboard/api/service"
	"github.com/anish-goyal/finboard/api/test/mock"
	"github.com/anish-goyal/finboard/api/util"
)

func setupTransactionRouter(backendURL string) *gin.Engine {
	ledger := guard.NewLedger()
	canonicalGuard := guard.NewGuard(ledger)
	eventBus := util.NewEventBus()
	eventBus.Start(context.Background())
	notificationSvc := util.NewNotificationService()

	guardService := service.NewGuardService(
		canonicalGuard,
		ledger,
		&mock.MockAuditService{},
		notificationSvc,
		eventBus,
	)
	transactionService := service.NewTransactionService(
		backend.NewClient(provenance.NewClient(&http.Client{}), backendURL),
		guardService,
		util.NewValidationUtil(),
		util.NewCacheService(),
		notificationSvc,
		eventBus,
	)

	transactionController := controller.NewTransactionController(transactionService)
	router := gin.New()
	api := router.Group("/")
	transactionController.RegisterRoutes(api)
	return router
}

// A write without human provenance must be refused before the backend is
// ever contacted. The backend URL here points nowhere on purpose: if the
// controller let the call through, the test would fail on the transport
// error instead of the expected 403.
func TestCreateTransactionBlockedByGuard(t *testing.T) {
	router := setupTransactionRouter("http://127.0.0.1:1")

	body := `{
		"transaction": {"account_id": "acc-1", "amount": 25.0, "currency": "USD"},
		"operation": {
			"id": "op-2",
			"type": "transaction_entry",
			"action": "create_transaction",
			"method": "POST",
			"trigger_type": "scheduled_job",
			"triggered_by": "cron"
		},
		"context": {"confidence": 0.99, "evidence": {"source": "import", "timestamp": "2025-08-26T10:00:00Z", "data": "csv"}}
	}`

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/transactions", strings.NewReader(body))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)

	var response struct {
		Code         string   `json:"code"`
		FailedChecks []string `json:"failed_checks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "operation_blocked", response.Code)
	assert.Contains(t, response.FailedChecks, guard.CheckHumanTrigger)
	assert.Contains(t, response.FailedChecks, guard.CheckReadOnlySafety)
}

func TestCreateTransactionAllowedReachesBackend(t *testing.T) {
	backendServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(provenance.CorrelationHeader)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"correlationId":"` + id + `","transaction":{"id":"tx-1","account_id":"acc-1","amount":25.0,"currency":"USD"}}`))
	}))
	defer backendServer.Close()

	router := setupTransactionRouter(backendServer.URL)

	body := `{
		"transaction": {"account_id": "acc-1", "amount": 25.0, "currency": "USD"},
		"operation": {
			"id": "op-3",
			"type": "transaction_entry",
			"action": "record_expense",
			"method": "GET",
			"trigger_type": "form_submit",
			"triggered_by": "user-42"
		},
		"context": {"confidence": 0.95, "evidence": {"source": "receipt", "timestamp": "2025-08-26T10:00:00Z", "data": "scan"}}
	}`

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/transactions", strings.NewReader(body))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"tx-1"`)
}
