package planner

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veldt/corpusqa/ai/mock"
	"github.com/veldt/corpusqa/core"
)

func TestNewPlanner(t *testing.T) {
	t.Run("valid configuration", func(t *testing.T) {
		p, err := NewPlanner(mock.NewMockProvider())
		require.NoError(t, err)
		assert.NotNil(t, p)
	})

	t.Run("nil provider", func(t *testing.T) {
		_, err := NewPlanner(nil)
		assert.Equal(t, ErrAIProviderRequired, err)
	})
}

func TestPlanAndResearch(t *testing.T) {
	provider := mock.NewMockProvider().(*mock.MockProvider)
	completer := provider.GetMockCompleter()

	completer.CompleteJSONFunc = func(ctx context.Context, prompt string) (json.RawMessage, error) {
		return json.RawMessage(`{
			"What is the claim deadline?": ["Claims must be filed within 90 days.", "The deadline is 90 days from the incident.", "You have three months to file."],
			"What documents are required?": ["A claim form and receipts.", "Proof of loss documentation.", "An itemized invoice."]
		}`), nil
	}

	p, err := NewPlanner(provider)
	require.NoError(t, err)

	plan := p.PlanAndResearch(context.Background(), "How do I file a claim?")
	require.Len(t, plan, 2)
	assert.Len(t, plan["What is the claim deadline?"], 3)
	assert.Len(t, plan["What documents are required?"], 3)
	assert.Equal(t, 1, completer.JSONCallCount())
}

func TestPlanAndResearch_PromptContainsQuestion(t *testing.T) {
	provider := mock.NewMockProvider().(*mock.MockProvider)
	completer := provider.GetMockCompleter()

	var seen string
	completer.CompleteJSONFunc = func(ctx context.Context, prompt string) (json.RawMessage, error) {
		seen = prompt
		return json.RawMessage(`{"q": ["a", "b", "c"]}`), nil
	}

	p, err := NewPlanner(provider)
	require.NoError(t, err)

	p.PlanAndResearch(context.Background(), `Does "flood" damage count?`)
	assert.Contains(t, seen, `\"flood\"`, "question must be embedded as a JSON string literal")
}

func TestPlanAndResearch_FallsBackToIdentityPlan(t *testing.T) {
	question := "What is the deductible?"
	identity := core.IdentityPlan(question)

	cases := []struct {
		name string
		fn   func(ctx context.Context, prompt string) (json.RawMessage, error)
	}{
		{
			name: "completion error",
			fn: func(ctx context.Context, prompt string) (json.RawMessage, error) {
				return nil, errors.New("model unavailable")
			},
		},
		{
			name: "malformed JSON",
			fn: func(ctx context.Context, prompt string) (json.RawMessage, error) {
				return json.RawMessage(`{"unterminated`), nil
			},
		},
		{
			name: "wrong shape",
			fn: func(ctx context.Context, prompt string) (json.RawMessage, error) {
				return json.RawMessage(`["just", "an", "array"]`), nil
			},
		},
		{
			name: "empty plan",
			fn: func(ctx context.Context, prompt string) (json.RawMessage, error) {
				return json.RawMessage(`{}`), nil
			},
		},
		{
			name: "sub-question without hypotheticals",
			fn: func(ctx context.Context, prompt string) (json.RawMessage, error) {
				return json.RawMessage(`{"sub": []}`), nil
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			provider := mock.NewMockProvider().(*mock.MockProvider)
			provider.GetMockCompleter().CompleteJSONFunc = tc.fn

			p, err := NewPlanner(provider)
			require.NoError(t, err)

			plan := p.PlanAndResearch(context.Background(), question)
			assert.Equal(t, identity, plan)
		})
	}
}
