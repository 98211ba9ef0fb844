package mock

import (
	"context"
	"encoding/json"
)

// MockCompleter is a test double for ai.Completer.
// It allows custom behavior injection via function fields.
type MockCompleter struct {
	// CompleteFunc is called by Complete if set.
	// If nil, returns an empty string.
	CompleteFunc func(ctx context.Context, prompt string) (string, error)

	// CompleteJSONFunc is called by CompleteJSON if set.
	// If nil, returns an empty JSON object.
	CompleteJSONFunc func(ctx context.Context, prompt string) (json.RawMessage, error)

	// Prompts records every prompt received, in call order.
	Prompts []string

	completeCalls int
	jsonCalls     int
}

// NewMockCompleter creates a mock completer with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockCompleter().
func NewMockCompleter() *MockCompleter {
	return &MockCompleter{}
}

// Complete records the prompt and delegates to CompleteFunc.
func (m *MockCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	m.completeCalls++
	m.Prompts = append(m.Prompts, prompt)

	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, prompt)
	}
	return "", nil
}

// CompleteJSON records the prompt and delegates to CompleteJSONFunc.
func (m *MockCompleter) CompleteJSON(ctx context.Context, prompt string) (json.RawMessage, error) {
	m.jsonCalls++
	m.Prompts = append(m.Prompts, prompt)

	if m.CompleteJSONFunc != nil {
		return m.CompleteJSONFunc(ctx, prompt)
	}
	return json.RawMessage(`{}`), nil
}

// CompleteCallCount returns how many times Complete was invoked.
func (m *MockCompleter) CompleteCallCount() int {
	return m.completeCalls
}

// JSONCallCount returns how many times CompleteJSON was invoked.
func (m *MockCompleter) JSONCallCount() int {
	return m.jsonCalls
}
