package ingestion

import "errors"

var (
	// ErrExtractorRequired is returned when a text extractor is not provided.
	ErrExtractorRequired = errors.New("extractor required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrStoreRequired is returned when a vector store is not provided.
	ErrStoreRequired = errors.New("vector store required")

	// ErrActiveIndexRequired is returned when an active index holder is not provided.
	ErrActiveIndexRequired = errors.New("active index holder required")

	// ErrIndexNameRequired is returned when an index name is not provided.
	ErrIndexNameRequired = errors.New("index name required")

	// ErrTextSplitterRequired is returned when a nil text splitter is supplied.
	ErrTextSplitterRequired = errors.New("text splitter required")

	// ErrNoChunks indicates the document produced no text chunks.
	ErrNoChunks = errors.New("document produced no chunks")

	// ErrIndexNeverReady indicates the index did not report ready before
	// the polling deadline.
	ErrIndexNeverReady = errors.New("index not ready before deadline")
)
