package aitime

import (
	"context"
	"sync"
	"time"

	aierrors "github.com/hrygo/aitime/internal/errors"
)

// MockTimeService is a mock implementation of TimeService for testing.
// It answers from a fixed table of expressions.
type MockTimeService struct {
	mu     sync.Mutex
	ranges map[string]TimeRange
	calls  []string
}

// NewMockTimeService creates a new MockTimeService.
func NewMockTimeService() *MockTimeService {
	return &MockTimeService{ranges: make(map[string]TimeRange)}
}

// Set registers the answer for input.
func (m *MockTimeService) Set(input string, tr TimeRange) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ranges[input] = tr
}

// Calls returns the inputs seen so far, in call order.
func (m *MockTimeService) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *MockTimeService) lookup(input string) (TimeRange, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, input)
	tr, ok := m.ranges[input]
	if !ok {
		return TimeRange{}, aierrors.UnparseableTime(input, nil)
	}
	return tr, nil
}

// Normalize returns the start of the registered range.
func (m *MockTimeService) Normalize(_ context.Context, input string, _ string) (time.Time, error) {
	tr, err := m.lookup(input)
	return tr.Start, err
}

// ParseNaturalTime returns the registered range.
func (m *MockTimeService) ParseNaturalTime(_ context.Context, input string, _ time.Time) (TimeRange, error) {
	return m.lookup(input)
}

// ParseBatch returns the registered ranges in order.
func (m *MockTimeService) ParseBatch(ctx context.Context, inputs []string, reference time.Time) ([]TimeRange, error) {
	out := make([]TimeRange, 0, len(inputs))
	for _, input := range inputs {
		tr, err := m.ParseNaturalTime(ctx, input, reference)
		if err != nil {
			return nil, err
		}
		out = append(out, tr)
	}
	return out, nil
}

var _ TimeService = (*MockTimeService)(nil)
