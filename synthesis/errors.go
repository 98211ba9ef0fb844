package synthesis

import "errors"

var (
	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrNoQuestions is returned when a batch holds no questions.
	ErrNoQuestions = errors.New("no questions to answer")

	// ErrBatchSynthesisFailed indicates every completion attempt for a
	// batch failed before producing any text.
	ErrBatchSynthesisFailed = errors.New("batch synthesis produced no text")
)
