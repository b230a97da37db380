// api/service/guard_service_test.go
package service_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	testify_mock "github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/anish-goyal/finboard/api/guard"
	logger "github.com/anish-goyal/finboard/api/logging"
	"github.com/anish-goyal/finboard/api/service"
	"github.com/anish-goyal/finboard/api/test/mock"
	"github.com/anish-goyal/finboard/api/util"
)

func TestMain(m *testing.M) {
	logDir, err := os.MkdirTemp("", "service-test")
	if err != nil {
		panic(err)
	}
	logger.InitLogger(logDir)
	code := m.Run()
	logger.Sync()
	os.RemoveAll(logDir)
	os.Exit(code)
}

func newGuardService(auditService *mock.MockAuditService) (*service.GuardService, *guard.Ledger) {
	ledger := guard.NewLedger()
	canonicalGuard := guard.NewGuard(ledger)
	eventBus := util.NewEventBus()
	eventBus.Start(context.Background())

	return service.NewGuardService(
		canonicalGuard,
		ledger,
		auditService,
		util.NewNotificationService(),
		eventBus,
	), ledger
}

func allowedInputs() (*guard.Operation, *guard.Context) {
	confidence := 0.95
	return &guard.Operation{
			ID:          "op-1",
			Type:        "dashboard_view",
			Action:      "view_balance",
			Method:      "GET",
			TriggerType: guard.TriggerUserClick,
			TriggeredBy: "user-42",
		}, &guard.Context{
			Confidence: &confidence,
			Evidence: &guard.Evidence{
				Source:    "plaid",
				Timestamp: "2025-08-26T10:00:00Z",
				Data:      "snapshot",
			},
		}
}

func TestGuardServiceEvaluate(t *testing.T) {
	guardService, ledger := newGuardService(&mock.MockAuditService{})

	op, opCtx := allowedInputs()
	decision := guardService.Evaluate(context.Background(), op, opCtx)

	assert.True(t, decision.Allowed)
	assert.Equal(t, guard.ModeAdvisory, decision.Mode)
	assert.Equal(t, 1, ledger.Len())

	// A blocked evaluation is returned as data, not an error
	op.Action = "delete_account"
	decision = guardService.Evaluate(context.Background(), op, opCtx)

	assert.False(t, decision.Allowed)
	assert.Equal(t, []string{guard.CheckReadOnlySafety}, decision.FailedChecks())
	assert.Equal(t, 2, ledger.Len())
}

func TestGuardServiceDecisionsIsSnapshot(t *testing.T) {
	guardService, _ := newGuardService(&mock.MockAuditService{})

	op, opCtx := allowedInputs()
	guardService.Evaluate(context.Background(), op, opCtx)

	decisions := guardService.Decisions()
	require.Len(t, decisions, 1)
	decisions[0].OperationID = "tampered"

	assert.Equal(t, "op-1", guardService.Decisions()[0].OperationID)
}

func TestGuardServiceExportDecisions(t *testing.T) {
	auditService := &mock.MockAuditService{}
	guardService, ledger := newGuardService(auditService)

	op, opCtx := allowedInputs()
	guardService.Evaluate(context.Background(), op, opCtx)
	guardService.Evaluate(context.Background(), nil, nil)

	auditService.On("ExportDecisions", testify_mock.Anything, "tenant-1", testify_mock.Anything).
		Return(2, nil)

	exported, err := guardService.ExportDecisions(context.Background(), "tenant-1")

	require.NoError(t, err)
	assert.Equal(t, 2, exported)
	// Export reads history; it never drains the ledger
	assert.Equal(t, 2, ledger.Len())
	auditService.AssertExpectations(t)
}

func TestGuardServiceExportFailure(t *testing.T) {
	auditService := &mock.MockAuditService{}
	guardService, _ := newGuardService(auditService)

	op, opCtx := allowedInputs()
	guardService.Evaluate(context.Background(), op, opCtx)

	auditService.On("ExportDecisions", testify_mock.Anything, "tenant-1", testify_mock.Anything).
		Return(0, errors.New("index unavailable"))

	exported, err := guardService.ExportDecisions(context.Background(), "tenant-1")

	assert.Error(t, err)
	assert.Equal(t, 0, exported)
}
