// Package ingestion rebuilds the corpus vector index from the source
// document.
//
// The Pipeline type extracts the document text, splits it into
// overlapping token-sized chunks, embeds every chunk, and replaces the
// named index using drop-and-recreate semantics before upserting all
// vectors in batches. Embedding and upsert batches run concurrently on a
// worker pool so ingestion does not stall request handling.
//
// Ingestion is a single-writer, run-to-completion operation; concurrent
// ingestion calls are not supported.
package ingestion
