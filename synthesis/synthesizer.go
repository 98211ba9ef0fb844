// Copyright 2025 Veldt Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package synthesis

import (
	"context"
	"log/slog"
	"strings"

	"github.com/veldt/corpusqa/ai"
)

const (
	// NotFoundSentinel is the exact answer text for questions the source
	// text cannot answer. Prompts instruct the model to emit it verbatim
	// and it also fills any slot left unanswered after all tries.
	NotFoundSentinel = "Information not found in the policy document"

	// ErrorPlaceholder is returned by AnswerOne when the completion call
	// itself fails.
	ErrorPlaceholder = "[An error occurred while generating the final answer.]"

	// defaultMaxTries caps completion calls per batch: one full pass
	// plus at most one retry covering only the unanswered questions.
	defaultMaxTries = 2
)

// Synthesizer produces grounded answers from retrieved context, either
// for a whole batch of questions in as few completion calls as possible
// or for a single question.
type Synthesizer struct {
	completer ai.Completer
	maxTries  int
	logger    *slog.Logger
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithMaxTries sets the completion call budget per batch. Values below
// one are clamped to one.
func WithMaxTries(tries int) Option {
	return func(s *Synthesizer) {
		if tries < 1 {
			tries = 1
		}
		s.maxTries = tries
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Synthesizer) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
	}
}

// NewSynthesizer creates a new answer synthesizer backed by the
// provider's completion model.
func NewSynthesizer(provider ai.Provider, opts ...Option) (*Synthesizer, error) {
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	s := &Synthesizer{
		completer: provider.Completer(),
		maxTries:  defaultMaxTries,
		logger:    slog.Default().With("component", "synthesis"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// AnswerBatch answers every question against the shared context in at
// most maxTries completion calls. The first call covers all questions;
// if some numbered answers are missing from the response, a single
// retry restates only those questions under their original numbers.
// Slots still empty after the retry are filled with NotFoundSentinel.
//
// The returned slice is always aligned with questions. An error is
// returned only when no completion attempt produced any text, meaning
// nothing at all could be synthesized.
func (s *Synthesizer) AnswerBatch(ctx context.Context, questions []string, contexts []string) ([]string, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	contextText := joinContexts(contexts)
	answers := make(map[int]string)
	anyText := false

	s.logger.Info("answering question batch", "questions", len(questions))
	for try := 1; try <= s.maxTries; try++ {
		missing := missingIndices(questions, answers)
		if len(missing) == 0 {
			break
		}

		var prompt string
		if try == 1 {
			prompt = batchPrompt(questions, contextText)
		} else {
			s.logger.Info("retrying unanswered questions", "attempt", try, "missing", len(missing))
			prompt = retryPrompt(questions, missing, contextText)
		}

		response, err := s.completer.Complete(ctx, prompt)
		if err != nil {
			// A failed call still consumes a try.
			s.logger.Warn("batch completion failed", "attempt", try, "error", err)
			continue
		}

		anyText = true
		for num, ans := range parseNumberedAnswers(response) {
			if _, ok := answers[num]; !ok {
				answers[num] = ans
			}
		}
	}

	if !anyText {
		return nil, ErrBatchSynthesisFailed
	}

	results := make([]string, len(questions))
	for i := range questions {
		if ans, ok := answers[i+1]; ok && ans != "" {
			results[i] = ans
		} else {
			results[i] = NotFoundSentinel
		}
	}
	return results, nil
}

// AnswerOne answers a single question against its own context. The call
// never fails outward: a completion error yields ErrorPlaceholder so
// the caller always has an answer slot to report.
func (s *Synthesizer) AnswerOne(ctx context.Context, question string, contexts []string) string {
	response, err := s.completer.Complete(ctx, singlePrompt(question, joinContexts(contexts)))
	if err != nil {
		s.logger.Warn("single-question completion failed", "error", err)
		return ErrorPlaceholder
	}
	return strings.TrimSpace(response)
}

// missingIndices returns the 1-based question numbers with no usable
// answer, in question order.
func missingIndices(questions []string, answers map[int]string) []int {
	var missing []int
	for i := range questions {
		if ans, ok := answers[i+1]; !ok || ans == "" {
			missing = append(missing, i+1)
		}
	}
	return missing
}

func joinContexts(contexts []string) string {
	return strings.Join(contexts, "\n\n---\n\n")
}
