// test/mock/audit.go
package mock

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/anish-goyal/finboard/api/audit"
	"github.com/anish-goyal/finboard/api/guard"
)

// MockAuditService is a mock implementation of audit.Service
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) ExportDecisions(ctx context.Context, tenantID string, decisions []guard.Decision) (int, error) {
	args := m.Called(ctx, tenantID, decisions)
	return args.Int(0), args.Error(1)
}

func (m *MockAuditService) QueryDecisions(ctx context.Context, from, to time.Time, tenantID, operationID string) ([]audit.DecisionRecord, error) {
	args := m.Called(ctx, from, to, tenantID, operationID)
	return args.Get(0).([]audit.DecisionRecord), args.Error(1)
}
