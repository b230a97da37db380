// api/service/account_service.go
package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/anish-goyal/finboard/api/backend"
	fin_errors "github.com/anish-goyal/finboard/api/errors"
	logger "github.com/anish-goyal/finboard/api/logging"
	"github.com/anish-goyal/finboard/api/model"
	"github.com/anish-goyal/finboard/api/provenance"
	"github.com/anish-goyal/finboard/api/util"
)

type IAccountService interface {
	ListAccounts(ctx context.Context, tenantID string) ([]model.Account, error)
	GetAccount(ctx context.Context, tenantID, accountID string) (*model.Account, error)
}

// AccountService proxies account reads to the remote backend with a
// cache-aside layer. Reads are not guarded: plain data reads may go through
// the provenance wrapper with no guard evaluation at all.
type AccountService struct {
	backendClient *backend.Client
	cacheService  *util.CacheService
}

func NewAccountService(backendClient *backend.Client, cacheService *util.CacheService) *AccountService {
	return &AccountService{
		backendClient: backendClient,
		cacheService:  cacheService,
	}
}

func (s *AccountService) ListAccounts(ctx context.Context, tenantID string) ([]model.Account, error) {
	accounts, err := s.backendClient.ListAccounts(ctx, tenantID)
	if err != nil {
		return nil, mapBackendError(err, fin_errors.ErrAccountNotFound, "failed to list accounts")
	}
	return accounts, nil
}

func (s *AccountService) GetAccount(ctx context.Context, tenantID, accountID string) (*model.Account, error) {
	cached, err := s.cacheService.GetAccount(ctx, tenantID, accountID)
	if err != nil {
		logger.Warn("Account cache lookup failed", zap.Error(err), zap.String("accountID", accountID))
	}
	if cached != nil {
		logger.Debug("Cache hit for account", zap.String("accountID", accountID))
		return cached, nil
	}

	account, err := s.backendClient.GetAccount(ctx, tenantID, accountID)
	if err != nil {
		return nil, mapBackendError(err, fin_errors.ErrAccountNotFound, "failed to fetch account")
	}

	if err := s.cacheService.SetAccount(ctx, *account); err != nil {
		logger.Warn("Failed to cache account", zap.Error(err), zap.String("accountID", account.ID))
	}

	return account, nil
}

// mapBackendError folds backend failures into the service error taxonomy
// while keeping provenance violations recognizable: a missing correlation
// identifier must stay distinguishable from an ordinary HTTP failure all the
// way up to the response the user sees.
func mapBackendError(err error, notFound error, message string) error {
	if provenance.IsProvenanceViolation(err) {
		return err
	}

	var httpErr *provenance.HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.Status == 404 {
			return notFound
		}
		return fmt.Errorf("%s: %w", message, err)
	}

	if errors.Is(err, provenance.ErrTransport) || errors.Is(err, provenance.ErrMalformedBody) {
		return fmt.Errorf("%w: %v", fin_errors.ErrBackendUnavailable, err)
	}

	return fmt.Errorf("%s: %w", message, err)
}
