// api/service/transaction_service.go
package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/anish-goyal/finboard/api/backend"
	fin_errors "github.com/anish-goyal/finboard/api/errors"
	"github.com/anish-goyal/finboard/api/guard"
	logger "github.com/anish-goyal/finboard/api/logging"
	"github.com/anish-goyal/finboard/api/model"
	"github.com/anish-goyal/finboard/api/provenance"
	"github.com/anish-goyal/finboard/api/util"
)

type ITransactionService interface {
	ListTransactions(ctx context.Context, tenantID string, criteria model.TransactionSearchCriteria, limit, offset int) ([]model.Transaction, error)
	CreateTransaction(ctx context.Context, tenantID string, transaction model.Transaction, op *guard.Operation, opCtx *guard.Context) (*model.Transaction, guard.Decision, error)
}

// TransactionService proxies transaction reads and gates transaction writes
// behind the canonical guard. The guard and the provenance wrapper are
// complementary: a decision that allows the write does not exempt the
// backend call from the provenance check, and vice versa.
type TransactionService struct {
	backendClient   *backend.Client
	guardService    IGuardService
	validationUtil  *util.ValidationUtil
	cacheService    *util.CacheService
	notificationSvc *util.NotificationService
	eventBus        *util.EventBus
}

func NewTransactionService(
	backendClient *backend.Client,
	guardService IGuardService,
	validationUtil *util.ValidationUtil,
	cacheService *util.CacheService,
	notificationSvc *util.NotificationService,
	eventBus *util.EventBus,
) *TransactionService {
	service := &TransactionService{
		backendClient:   backendClient,
		guardService:    guardService,
		validationUtil:  validationUtil,
		cacheService:    cacheService,
		notificationSvc: notificationSvc,
		eventBus:        eventBus,
	}

	// Set up event subscriptions
	eventBus.Subscribe("transaction.created", service.handleTransactionCreated)

	return service
}

func (s *TransactionService) handleTransactionCreated(ctx context.Context, event util.Event) error {
	transaction, ok := event.Payload.(model.Transaction)
	if !ok {
		logger.Error("Invalid event payload type", zap.Any("payload", event.Payload))
		return fmt.Errorf("invalid event payload type: %T", event.Payload)
	}

	logger.Info("Transaction created event received", zap.String("transactionID", transaction.ID))

	// The cached account balance is stale once a transaction lands
	if err := s.cacheService.DeleteAccount(ctx, transaction.TenantID, transaction.AccountID); err != nil {
		logger.Warn("Failed to invalidate cached account",
			zap.Error(err),
			zap.String("accountID", transaction.AccountID))
	}

	if err := s.notificationSvc.NotifyTransactionChange(ctx, "created", transaction); err != nil {
		logger.Warn("Failed to send transaction notification", zap.Error(err), zap.String("transactionID", transaction.ID))
	}

	return nil
}

func (s *TransactionService) ListTransactions(ctx context.Context, tenantID string, criteria model.TransactionSearchCriteria, limit, offset int) ([]model.Transaction, error) {
	if limit < 0 || offset < 0 {
		return nil, fin_errors.ErrInvalidPagination
	}
	if criteria.From != nil && criteria.To != nil && criteria.To.Before(*criteria.From) {
		return nil, fin_errors.ErrInvalidSearchCriteria
	}

	transactions, err := s.backendClient.ListTransactions(ctx, tenantID, criteria, limit, offset)
	if err != nil {
		return nil, mapBackendError(err, fin_errors.ErrTransactionNotFound, "failed to list transactions")
	}
	return transactions, nil
}

// CreateTransaction evaluates the guard before any network effect. A blocked
// decision short-circuits the call entirely, the backend never sees the
// request, and the decision is returned so the caller can explain which
// checks failed.
func (s *TransactionService) CreateTransaction(ctx context.Context, tenantID string, transaction model.Transaction, op *guard.Operation, opCtx *guard.Context) (*model.Transaction, guard.Decision, error) {
	if err := s.validationUtil.ValidateTransaction(transaction); err != nil {
		return nil, guard.Decision{}, fmt.Errorf("invalid transaction: %w", err)
	}

	decision := s.guardService.Evaluate(ctx, op, opCtx)
	if !decision.Allowed {
		return nil, decision, fin_errors.ErrOperationBlocked
	}

	transaction.TenantID = tenantID
	created, err := s.backendClient.CreateTransaction(ctx, tenantID, transaction)
	if err != nil {
		var pvErr *provenance.ProvenanceError
		if errors.As(err, &pvErr) {
			if nerr := s.notificationSvc.NotifyProvenanceViolation(ctx, pvErr.URL, pvErr.CorrelationID); nerr != nil {
				logger.Warn("Failed to send provenance-violation notification", zap.Error(nerr))
			}
		}
		return nil, decision, mapBackendError(err, fin_errors.ErrTransactionNotFound, "failed to create transaction")
	}

	s.eventBus.Publish(ctx, "transaction.created", *created)

	logger.Info("Transaction created",
		zap.String("transactionID", created.ID),
		zap.String("accountID", created.AccountID),
		zap.String("operationID", decision.OperationID))
	return created, decision, nil
}
