package llm

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockTranslator is a mock implementation of Translator using testify/mock.
type MockTranslator struct {
	mock.Mock
}

func (m *MockTranslator) Translate(ctx context.Context, question, schema string) (Translation, error) {
	args := m.Called(ctx, question, schema)
	return args.Get(0).(Translation), args.Error(1)
}
