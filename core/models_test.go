package core

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDFromContent(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		a := IDFromContent("the policy covers maternity expenses")
		b := IDFromContent("the policy covers maternity expenses")
		assert.Equal(t, a, b)
	})

	t.Run("distinct content distinct ids", func(t *testing.T) {
		a := IDFromContent("grace period of thirty days")
		b := IDFromContent("waiting period of thirty-six months")
		assert.NotEqual(t, a, b)
	})
}

func TestIdentityPlan(t *testing.T) {
	plan := IdentityPlan("What is the grace period?")
	require.NoError(t, plan.Validate())
	require.Len(t, plan, 1)
	assert.Equal(t, []string{"What is the grace period?"}, plan["What is the grace period?"])
}

func TestResearchPlanValidate(t *testing.T) {
	t.Run("empty plan", func(t *testing.T) {
		assert.ErrorIs(t, ResearchPlan{}.Validate(), ErrEmptyPlan)
	})

	t.Run("empty sub-question", func(t *testing.T) {
		plan := ResearchPlan{"": {"a hypothetical"}}
		assert.ErrorIs(t, plan.Validate(), ErrEmptySubQuestion)
	})

	t.Run("no hypotheticals", func(t *testing.T) {
		plan := ResearchPlan{"sub": {}}
		assert.ErrorIs(t, plan.Validate(), ErrEmptyHypotheticals)
	})

	t.Run("valid", func(t *testing.T) {
		plan := ResearchPlan{"sub": {"h1", "h2", "h3"}}
		assert.NoError(t, plan.Validate())
	})
}

func TestContextPool_Dedup(t *testing.T) {
	pool := NewContextPool()
	pool.Add("alpha", "beta", "alpha")
	pool.Add("beta")
	pool.Add("")

	assert.Equal(t, 2, pool.Len())
	assert.ElementsMatch(t, []string{"alpha", "beta"}, pool.Texts())
}

func TestContextPool_ConcurrentAdd(t *testing.T) {
	pool := NewContextPool()
	texts := []string{"one", "two", "three", "four"}

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pool.Add(texts...)
		}()
	}
	wg.Wait()

	assert.Equal(t, len(texts), pool.Len())
	assert.ElementsMatch(t, texts, pool.Texts())
}

func TestContextPool_Merge(t *testing.T) {
	a := NewContextPool()
	a.Add("shared", "only-a")
	b := NewContextPool()
	b.Add("shared", "only-b")

	a.Merge(b)
	assert.Equal(t, 3, a.Len())
	a.Merge(nil) // no-op
	assert.Equal(t, 3, a.Len())
}
