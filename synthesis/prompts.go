package synthesis

import (
	"fmt"
	"strings"
)

const batchPromptTemplate = `You are a precise and factual insurance policy assistant. Your task is to answer multiple questions about the policy based ONLY on the provided 'Source Text'.

CRITICAL RULES:
- Answer each question CONCISELY (1-2 sentences maximum)
- Use ONLY information from the Source Text
- Be direct and factual
- If information is not found, respond exactly: "%s"
- Number your answers to match the question numbers

Source Text:
%s

Questions to Answer:
%s

Instructions:
Provide your answers in this exact format:
1. [Answer to question 1]
2. [Answer to question 2]
... and so on for all questions.

Final Answers:
`

const retryPromptTemplate = `You are a precise and factual insurance policy assistant. Answer ONLY the listed question numbers based ONLY on the provided 'Source Text'.

CRITICAL RULES:
- Answer CONCISELY (1-2 sentences maximum)
- Use ONLY information from the Source Text
- Be direct and factual
- If information is not found, respond exactly: "%s"
- Number your answers to match the ORIGINAL question numbers provided below

Source Text:
%s

Questions to Answer (use these original numbers in your answers):
%s

Final Answers:
`

const singlePromptTemplate = `You are a precise and factual writing assistant. Your primary goal is to answer the user's question as CONCISELY as possible based ONLY on the provided 'Source Text'.

Follow this internal Chain of Thought, but DO NOT output the thought process. Your final output should only be the answer text.

1.  **Synthesize**: First, find the most direct and relevant information in the 'Source Text' to answer the 'User's Original Question'.
2.  **Critique for Brevity**: Second, critically review your answer. Ask yourself: "Is this the shortest possible answer that is still accurate and complete? Have I included unnecessary details, examples, or lists? Can I say this in fewer words?"
3.  **Refine for Conciseness**: Finally, rewrite the answer to be as brief and to-the-point as possible. Summarize the key information into a single, clear sentence or two.

**CRITICAL RULES:**
-   **BE BRIEF**: Do not provide long, multi-paragraph explanations.
-   **SUMMARIZE**: Do not list out all details. Summarize the key finding.
-   **DIRECT ANSWERS**: Get straight to the point.

---
Source Text:
%s
---
User's Original Question:
"%s"
---
Final, Concise Answer:
`

func batchPrompt(questions []string, contextText string) string {
	var b strings.Builder
	for i, q := range questions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	return fmt.Sprintf(batchPromptTemplate, NotFoundSentinel, contextText, strings.TrimRight(b.String(), "\n"))
}

// retryPrompt restates only the unanswered questions, keeping their
// original numbers so the retry response merges back by position.
func retryPrompt(questions []string, missing []int, contextText string) string {
	var b strings.Builder
	for _, num := range missing {
		fmt.Fprintf(&b, "%d. %s\n", num, questions[num-1])
	}
	return fmt.Sprintf(retryPromptTemplate, NotFoundSentinel, contextText, strings.TrimRight(b.String(), "\n"))
}

func singlePrompt(question string, contextText string) string {
	return fmt.Sprintf(singlePromptTemplate, contextText, question)
}
