package mocks

import (
	"github.com/stretchr/testify/mock"

	"expertap/internal/parser"
)

// MockDecisionParser is a mock implementation of port.DecisionParser.
type MockDecisionParser struct {
	mock.Mock
}

func (m *MockDecisionParser) Parse(text, filename string) (*parser.ParsedDecision, error) {
	args := m.Called(text, filename)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parser.ParsedDecision), args.Error(1)
}
