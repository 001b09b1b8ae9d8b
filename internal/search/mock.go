package search

import (
	"github.com/stretchr/testify/mock"
)

// MockProvider is a mock implementation of Provider for testing.
type MockProvider struct {
	mock.Mock
}

// Match provides a mock function with given fields: c, pattern.
func (_m *MockProvider) Match(c Candidate, pattern string) bool {
	ret := _m.Called(c, pattern)
	if rf, ok := ret.Get(0).(func(Candidate, string) bool); ok {
		return rf(c, pattern)
	}
	return ret.Bool(0)
}

// Name provides a mock function with given fields: .
func (_m *MockProvider) Name() string {
	ret := _m.Called()
	return ret.String(0)
}
