// api/util/notification_service.go

package util

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/anish-goyal/finboard/api/guard"
	logger "github.com/anish-goyal/finboard/api/logging"
	"github.com/anish-goyal/finboard/api/model"
)

type NotificationService struct {
	// You might want to add dependencies here, such as a message queue client
}

func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// NotifyBlockedOperation surfaces a guard block to operators. The message
// names the failing checks so the user never sees a bare "access denied".
func (n *NotificationService) NotifyBlockedOperation(ctx context.Context, decision guard.Decision) error {
	logger.Warn("NOTIFICATION: Operation blocked by canonical guard",
		zap.String("operationID", decision.OperationID),
		zap.String("failedChecks", strings.Join(decision.FailedChecks(), ", ")),
		zap.String("advisory", decision.AdvisoryMessage))
	return nil
}

// NotifyProvenanceViolation flags a backend trust failure. This is an
// infrastructure misconfiguration, not a business-logic error, and is
// escalated differently from ordinary HTTP failures.
func (n *NotificationService) NotifyProvenanceViolation(ctx context.Context, url string, correlationID string) error {
	logger.Error("NOTIFICATION: Provenance violation detected",
		zap.String("url", url),
		zap.String("correlationID", correlationID))
	return n.NotifyAdmins(ctx, fmt.Sprintf("backend at %s returned a response without a correlation identifier", url))
}

func (n *NotificationService) NotifyTransactionChange(ctx context.Context, changeType string, transaction model.Transaction) error {
	switch changeType {
	case "created":
		logger.Info("NOTIFICATION: New transaction recorded",
			zap.String("transactionID", transaction.ID),
			zap.String("accountID", transaction.AccountID))
	default:
		return fmt.Errorf("unknown change type: %s", changeType)
	}

	// Here you would implement the actual notification logic
	// This could involve sending messages to a queue, calling an external API, etc.

	return nil
}

func (n *NotificationService) NotifyPayrollRun(ctx context.Context, run model.PayrollRun) error {
	logger.Info("NOTIFICATION: Payroll run executed",
		zap.String("runID", run.ID),
		zap.String("tenantID", run.TenantID))
	return nil
}

func (n *NotificationService) NotifyAdmins(ctx context.Context, message string) error {
	// Logic to notify all system administrators
	logger.Info("Notifying admins", zap.String("message", message))
	return nil
}
