// test/mock/cache.go
package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/soxlite/api/model"
)

// MockReportCache is a mock implementation of util.ReportCache
type MockReportCache struct {
	mock.Mock
}

func (m *MockReportCache) GetReport(ctx context.Context, key string) (*model.Report, error) {
	args := m.Called(ctx, key)
	report, _ := args.Get(0).(*model.Report)
	return report, args.Error(1)
}

func (m *MockReportCache) SetReport(ctx context.Context, key string, report *model.Report) error {
	return m.Called(ctx, key, report).Error(0)
}

func (m *MockReportCache) GetMetrics(ctx context.Context, key string) (*model.MetricsSnapshot, error) {
	args := m.Called(ctx, key)
	snapshot, _ := args.Get(0).(*model.MetricsSnapshot)
	return snapshot, args.Error(1)
}

func (m *MockReportCache) SetMetrics(ctx context.Context, key string, snapshot model.MetricsSnapshot) error {
	return m.Called(ctx, key, snapshot).Error(0)
}
