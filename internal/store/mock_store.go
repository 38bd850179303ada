package store

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockStore is a mock implementation of Store using testify/mock.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Schema(ctx context.Context) ([]Table, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Table), args.Error(1)
}

func (m *MockStore) Query(ctx context.Context, sql string) (Result, error) {
	args := m.Called(ctx, sql)
	return args.Get(0).(Result), args.Error(1)
}
