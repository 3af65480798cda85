package history

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/huangsam/cpitrend/internal/contract"
	"github.com/huangsam/cpitrend/schema"
)

// MockHistoryManager is a mock implementation of HistoryManager for testing.
type MockHistoryManager struct {
	mock.Mock
}

var _ contract.HistoryManager = &MockHistoryManager{} // Compile-time check

// GetHistoryStore implements the HistoryManager interface.
func (m *MockHistoryManager) GetHistoryStore() contract.HistoryStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.HistoryStore)
	return store
}

// MockHistoryStore is a mock implementation of HistoryStore for testing.
type MockHistoryStore struct {
	mock.Mock
}

var _ contract.HistoryStore = &MockHistoryStore{} // Compile-time check

// BeginRun implements the HistoryStore interface.
func (m *MockHistoryStore) BeginRun(ctx context.Context, startTime time.Time, dataset, seriesName string, configParams map[string]any) (int64, error) {
	args := m.Called(ctx, startTime, dataset, seriesName, configParams)
	return args.Get(0).(int64), args.Error(1)
}

// EndRun implements the HistoryStore interface.
func (m *MockHistoryStore) EndRun(ctx context.Context, runID int64, endTime time.Time, summary schema.RunSummary) error {
	args := m.Called(ctx, runID, endTime, summary)
	return args.Error(0)
}

// RecordObservations implements the HistoryStore interface.
func (m *MockHistoryStore) RecordObservations(ctx context.Context, runID int64, rows []schema.ReportRow) error {
	args := m.Called(ctx, runID, rows)
	return args.Error(0)
}

// GetStatus implements the HistoryStore interface.
func (m *MockHistoryStore) GetStatus(ctx context.Context) (schema.HistoryStatus, error) {
	args := m.Called(ctx)
	return args.Get(0).(schema.HistoryStatus), args.Error(1)
}

// Close implements the HistoryStore interface.
func (m *MockHistoryStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
