// api/service/payroll_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/anish-goyal/finboard/api/backend"
	"github.com/anish-goyal/finboard/api/db"
	fin_errors "github.com/anish-goyal/finboard/api/errors"
	"github.com/anish-goyal/finboard/api/guard"
	logger "github.com/anish-goyal/finboard/api/logging"
	"github.com/anish-goyal/finboard/api/model"
	"github.com/anish-goyal/finboard/api/util"
)

// payrollLockTTL bounds how long a payroll run can hold the tenant lock if
// the process dies mid-run.
const payrollLockTTL = 5 * time.Minute

type IPayrollService interface {
	ListPayroll(ctx context.Context, tenantID string) ([]model.PayrollEntry, error)
	RunPayroll(ctx context.Context, run model.PayrollRun, op *guard.Operation, opCtx *guard.Context) (*model.PayrollRun, guard.Decision, error)
}

// PayrollService proxies payroll reads and gates payroll runs behind the
// canonical guard plus a per-tenant distributed lock.
type PayrollService struct {
	backendClient   *backend.Client
	guardService    IGuardService
	validationUtil  *util.ValidationUtil
	notificationSvc *util.NotificationService
	eventBus        *util.EventBus
}

func NewPayrollService(
	backendClient *backend.Client,
	guardService IGuardService,
	validationUtil *util.ValidationUtil,
	notificationSvc *util.NotificationService,
	eventBus *util.EventBus,
) *PayrollService {
	return &PayrollService{
		backendClient:   backendClient,
		guardService:    guardService,
		validationUtil:  validationUtil,
		notificationSvc: notificationSvc,
		eventBus:        eventBus,
	}
}

func (s *PayrollService) ListPayroll(ctx context.Context, tenantID string) ([]model.PayrollEntry, error) {
	entries, err := s.backendClient.ListPayroll(ctx, tenantID)
	if err != nil {
		return nil, mapBackendError(err, fin_errors.ErrReportNotFound, "failed to list payroll")
	}
	return entries, nil
}

// RunPayroll is the most sensitive write in the system: it is guarded, and a
// tenant can only have one run in flight at a time.
func (s *PayrollService) RunPayroll(ctx context.Context, run model.PayrollRun, op *guard.Operation, opCtx *guard.Context) (*model.PayrollRun, guard.Decision, error) {
	if err := s.validationUtil.ValidatePayrollRun(run); err != nil {
		return nil, guard.Decision{}, fmt.Errorf("invalid payroll run: %w", err)
	}

	decision := s.guardService.Evaluate(ctx, op, opCtx)
	if !decision.Allowed {
		return nil, decision, fin_errors.ErrOperationBlocked
	}

	lockName := fmt.Sprintf("payroll:%s", run.TenantID)
	locked, err := db.LockResource(ctx, lockName, payrollLockTTL)
	if err != nil {
		return nil, decision, fmt.Errorf("failed to acquire payroll lock: %w", err)
	}
	if !locked {
		return nil, decision, fmt.Errorf("payroll run already in progress for tenant %s", run.TenantID)
	}
	defer func() {
		if err := db.UnlockResource(ctx, lockName); err != nil {
			logger.Warn("Failed to release payroll lock", zap.Error(err), zap.String("tenantID", run.TenantID))
		}
	}()

	executed, err := s.backendClient.RunPayroll(ctx, run.TenantID, run)
	if err != nil {
		return nil, decision, mapBackendError(err, fin_errors.ErrReportNotFound, "failed to run payroll")
	}

	s.eventBus.Publish(ctx, "payroll.run", *executed)
	if err := s.notificationSvc.NotifyPayrollRun(ctx, *executed); err != nil {
		logger.Warn("Failed to send payroll notification", zap.Error(err), zap.String("runID", executed.ID))
	}

	logger.Info("Payroll run executed",
		zap.String("runID", executed.ID),
		zap.String("tenantID", executed.TenantID),
		zap.String("operationID", decision.OperationID))
	return executed, decision, nil
}
