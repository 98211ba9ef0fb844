package extract

import "errors"

var (
	// ErrExtraction indicates the source document could not be read or parsed.
	// Ingestion treats this as fatal for the request that triggered it.
	ErrExtraction = errors.New("document extraction failed")
)
