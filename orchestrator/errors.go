package orchestrator

import "errors"

var (
	// ErrStoreRequired is returned when a vector store is not provided.
	ErrStoreRequired = errors.New("vector store required")

	// ErrActiveIndexRequired is returned when an active index holder is not provided.
	ErrActiveIndexRequired = errors.New("active index holder required")

	// ErrIngesterRequired is returned when an ingester is not provided.
	ErrIngesterRequired = errors.New("ingester required")

	// ErrSearcherRequired is returned when a searcher is not provided.
	ErrSearcherRequired = errors.New("searcher required")

	// ErrPlannerRequired is returned when a planner is not provided.
	ErrPlannerRequired = errors.New("planner required")

	// ErrSynthesizerRequired is returned when a synthesizer is not provided.
	ErrSynthesizerRequired = errors.New("synthesizer required")

	// ErrDocumentPathRequired is returned when a source document path is not provided.
	ErrDocumentPathRequired = errors.New("document path required")

	// ErrNoQuestions is returned when a run holds no questions.
	ErrNoQuestions = errors.New("no questions to answer")

	// ErrIndexUnavailable indicates no index could be attached or rebuilt.
	ErrIndexUnavailable = errors.New("vector index unavailable")
)
