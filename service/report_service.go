// api/service/report_service.go
package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/anish-goyal/finboard/api/backend"
	fin_errors "github.com/anish-goyal/finboard/api/errors"
	logger "github.com/anish-goyal/finboard/api/logging"
	"github.com/anish-goyal/finboard/api/model"
	"github.com/anish-goyal/finboard/api/util"
)

type IReportService interface {
	GetReport(ctx context.Context, tenantID, reportID string) (*model.Report, error)
	BuildOverview(ctx context.Context, tenantID string) (*model.Report, error)
}

// ReportService serves prebuilt backend reports through a cache and
// assembles the dashboard overview by fanning out to the backend.
type ReportService struct {
	backendClient *backend.Client
	cacheService  *util.CacheService
}

func NewReportService(backendClient *backend.Client, cacheService *util.CacheService) *ReportService {
	return &ReportService{
		backendClient: backendClient,
		cacheService:  cacheService,
	}
}

func (s *ReportService) GetReport(ctx context.Context, tenantID, reportID string) (*model.Report, error) {
	cached, err := s.cacheService.GetReport(ctx, tenantID, reportID)
	if err != nil {
		logger.Warn("Report cache lookup failed", zap.Error(err), zap.String("reportID", reportID))
	}
	if cached != nil {
		logger.Debug("Cache hit for report", zap.String("reportID", reportID))
		return cached, nil
	}

	report, err := s.backendClient.GetReport(ctx, tenantID, reportID)
	if err != nil {
		return nil, mapBackendError(err, fin_errors.ErrReportNotFound, "failed to fetch report")
	}

	if err := s.cacheService.SetReport(ctx, *report); err != nil {
		logger.Warn("Failed to cache report", zap.Error(err), zap.String("reportID", report.ID))
	}

	return report, nil
}

// BuildOverview fetches accounts, recent transactions, and payroll
// concurrently and folds them into a single overview report.
func (s *ReportService) BuildOverview(ctx context.Context, tenantID string) (*model.Report, error) {
	var (
		accounts     []model.Account
		transactions []model.Transaction
		payroll      []model.PayrollEntry
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		accounts, err = s.backendClient.ListAccounts(gctx, tenantID)
		return err
	})
	g.Go(func() error {
		var err error
		transactions, err = s.backendClient.ListTransactions(gctx, tenantID, model.TransactionSearchCriteria{}, 50, 0)
		return err
	})
	g.Go(func() error {
		var err error
		payroll, err = s.backendClient.ListPayroll(gctx, tenantID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, mapBackendError(err, fin_errors.ErrReportNotFound, "failed to build overview")
	}

	totals := map[string]float64{}
	for _, account := range accounts {
		totals["balance"] += account.Balance
	}
	for _, transaction := range transactions {
		totals["recent_activity"] += transaction.Amount
	}
	for _, entry := range payroll {
		totals["payroll_net"] += entry.NetPay
	}

	report := &model.Report{
		TenantID:     tenantID,
		Kind:         "overview",
		Totals:       totals,
		Accounts:     accounts,
		Transactions: transactions,
		Payroll:      payroll,
		GeneratedAt:  time.Now().UTC(),
	}

	logger.Debug("Overview report built",
		zap.String("tenantID", tenantID),
		zap.Int("accounts", len(accounts)),
		zap.Int("transactions", len(transactions)),
		zap.Int("payrollEntries", len(payroll)))
	return report, nil
}
