package orchestrator

import "sync"

// answerCache memoizes single-question answers within one run. It is
// cleared at the start of every run so stale answers never cross
// request batches.
type answerCache struct {
	mu      sync.Mutex
	answers map[string]string
}

func newAnswerCache() *answerCache {
	return &answerCache{answers: make(map[string]string)}
}

func (c *answerCache) get(question string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	answer, ok := c.answers[question]
	return answer, ok
}

func (c *answerCache) set(question, answer string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.answers[question] = answer
}

func (c *answerCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.answers = make(map[string]string)
}
