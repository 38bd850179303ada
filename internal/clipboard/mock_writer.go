package clipboard

import "github.com/stretchr/testify/mock"

// MockWriter is a mock implementation of Writer using testify/mock.
type MockWriter struct {
	mock.Mock
}

func (m *MockWriter) WriteAll(text string) error {
	args := m.Called(text)
	return args.Error(0)
}
