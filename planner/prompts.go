package planner

import (
	"encoding/json"
	"fmt"
)

const planningPromptTemplate = `You are a master of logical reasoning and query planning. Your task is to analyze the user's question and create a research plan.

Follow these steps in your reasoning process:
1.  **Decomposition**: First, break down the user's question into a series of simpler, self-contained sub-questions. If the question is already simple, treat it as a single sub-question.
2.  **Hypothetical Generation**: For each sub-question you identified, generate three different and detailed hypothetical answers. These answers should be plausible and information-rich to be used for a vector search.

Your final output MUST be a single, valid JSON object. The keys of the object should be the sub-questions you generated, and the value for each key should be an array of the three hypothetical answers for that sub-question.

User Question: %s
`

// planningPrompt embeds the question as a JSON string literal so quotes
// and newlines in user input cannot break the prompt structure.
func planningPrompt(question string) string {
	quoted, err := json.Marshal(question)
	if err != nil {
		quoted = []byte(fmt.Sprintf("%q", question))
	}
	return fmt.Sprintf(planningPromptTemplate, quoted)
}
