package store

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockStore is a mock implementation of Store using testify/mock.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) RecordAttempt(ctx context.Context, a Attempt) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockStore) History(ctx context.Context, sessionID string, limit int) ([]Attempt, error) {
	args := m.Called(ctx, sessionID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Attempt), args.Error(1)
}

func (m *MockStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
