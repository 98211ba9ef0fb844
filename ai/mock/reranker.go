package mock

import "context"

// MockReranker is a test double for ai.Reranker.
// It allows custom behavior injection via function fields.
type MockReranker struct {
	// ScoreFunc is called by Score if set.
	// If nil, scores decrease with candidate position, preserving the
	// retrieval order after a descending sort.
	ScoreFunc func(ctx context.Context, query string, candidates []string) ([]float32, error)

	callCount int
}

// NewMockReranker creates a mock reranker with default deterministic behavior.
// Note: Returns concrete type to allow test assertions via GetMockReranker().
func NewMockReranker() *MockReranker {
	return &MockReranker{}
}

// Score delegates to ScoreFunc or produces position-based scores.
func (m *MockReranker) Score(ctx context.Context, query string, candidates []string) ([]float32, error) {
	m.callCount++

	if m.ScoreFunc != nil {
		return m.ScoreFunc(ctx, query, candidates)
	}

	scores := make([]float32, len(candidates))
	for i := range candidates {
		scores[i] = 1 - float32(i)/float32(len(candidates)+1)
	}
	return scores, nil
}

// CallCount returns how many times the reranker was invoked.
func (m *MockReranker) CallCount() int {
	return m.callCount
}
