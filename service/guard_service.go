// api/service/guard_service.go
package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/anish-goyal/finboard/api/audit"
	"github.com/anish-goyal/finboard/api/guard"
	logger "github.com/anish-goyal/finboard/api/logging"
	"github.com/anish-goyal/finboard/api/util"
)

type IGuardService interface {
	Evaluate(ctx context.Context, op *guard.Operation, opCtx *guard.Context) guard.Decision
	Decisions() []guard.Decision
	ExportDecisions(ctx context.Context, tenantID string) (int, error)
	QueryExportedDecisions(ctx context.Context, from, to time.Time, tenantID, operationID string) ([]audit.DecisionRecord, error)
}

// GuardService fronts the canonical guard for the rest of the application.
// Every write-capable or AI-assisted operation is expected to pass through
// Evaluate before any network effect is attempted.
type GuardService struct {
	guard           *guard.Guard
	ledger          *guard.Ledger
	auditService    audit.Service
	notificationSvc *util.NotificationService
	eventBus        *util.EventBus
}

func NewGuardService(
	g *guard.Guard,
	ledger *guard.Ledger,
	auditService audit.Service,
	notificationSvc *util.NotificationService,
	eventBus *util.EventBus,
) *GuardService {
	return &GuardService{
		guard:           g,
		ledger:          ledger,
		auditService:    auditService,
		notificationSvc: notificationSvc,
		eventBus:        eventBus,
	}
}

// Evaluate runs the four checks and returns the decision. Blocked decisions
// are reported as data, never as errors; the ledger append happens inside
// the guard itself.
func (s *GuardService) Evaluate(ctx context.Context, op *guard.Operation, opCtx *guard.Context) guard.Decision {
	decision := s.guard.Decide(op, opCtx)

	if decision.Allowed {
		logger.Debug("Operation allowed",
			zap.String("operationID", decision.OperationID),
			zap.String("mode", string(decision.Mode)))
	} else {
		logger.Warn("Operation blocked",
			zap.String("operationID", decision.OperationID),
			zap.Strings("failedChecks", decision.FailedChecks()))
		if err := s.notificationSvc.NotifyBlockedOperation(ctx, decision); err != nil {
			logger.Warn("Failed to send blocked-operation notification", zap.Error(err))
		}
		s.eventBus.Publish(ctx, "guard.blocked", decision)
	}

	return decision
}

// Decisions returns a defensive copy of the in-process decision history.
func (s *GuardService) Decisions() []guard.Decision {
	return s.ledger.Snapshot()
}

// ExportDecisions pushes the current ledger snapshot to the durable audit
// store. The ledger itself is never cleared here: export is a read of
// history, not a transfer of ownership.
func (s *GuardService) ExportDecisions(ctx context.Context, tenantID string) (int, error) {
	snapshot := s.ledger.Snapshot()
	exported, err := s.auditService.ExportDecisions(ctx, tenantID, snapshot)
	if err != nil {
		logger.Error("Failed to export guard decisions",
			zap.Error(err),
			zap.Int("exported", exported),
			zap.Int("total", len(snapshot)))
		return exported, err
	}

	logger.Info("Exported guard decisions",
		zap.Int("count", exported),
		zap.String("tenantID", tenantID))
	return exported, nil
}

func (s *GuardService) QueryExportedDecisions(ctx context.Context, from, to time.Time, tenantID, operationID string) ([]audit.DecisionRecord, error) {
	return s.auditService.QueryDecisions(ctx, from, to, tenantID, operationID)
}
