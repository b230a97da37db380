// api/audit/service.go
package audit

import (
	"context"
	"time"

	"github.com/anish-goyal/finboard/api/guard"
)

type Service interface {
	ExportDecisions(ctx context.Context, tenantID string, decisions []guard.Decision) (int, error)
	QueryDecisions(ctx context.Context, from, to time.Time, tenantID, operationID string) ([]DecisionRecord, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ExportDecisions(ctx context.Context, tenantID string, decisions []guard.Decision) (int, error) {
	exported := 0
	now := time.Now().UTC()
	for _, decision := range decisions {
		record := DecisionRecord{
			Decision:   decision,
			TenantID:   tenantID,
			ExportedAt: now,
		}
		if err := s.repo.IndexDecision(ctx, record); err != nil {
			return exported, err
		}
		exported++
	}
	return exported, nil
}

func (s *service) QueryDecisions(ctx context.Context, from, to time.Time, tenantID, operationID string) ([]DecisionRecord, error) {
	return s.repo.QueryDecisions(ctx, from, to, tenantID, operationID)
}
