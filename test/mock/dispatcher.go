// test/mock/dispatcher.go
package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/soxlite/api/model"
)

// MockDispatcher is a mock implementation of notifier.Dispatcher
type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Dispatch(ctx context.Context, framework model.Framework, findings []model.Finding) bool {
	return m.Called(ctx, framework, findings).Bool(0)
}

func (m *MockDispatcher) Send(ctx context.Context, framework model.Framework, alerts []string) error {
	return m.Called(ctx, framework, alerts).Error(0)
}
