// test/mock/audit.go
package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/soxlite/api/audit"
)

// MockAuditService is a mock implementation of audit.Service
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) RecordScan(ctx context.Context, record audit.ScanRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockAuditService) QueryScans(ctx context.Context, query audit.ScanQuery) ([]audit.ScanRecord, error) {
	args := m.Called(ctx, query)
	scans, _ := args.Get(0).([]audit.ScanRecord)
	return scans, args.Error(1)
}

func (m *MockAuditService) Enabled() bool {
	return m.Called().Bool(0)
}
