// Package orchestrator coordinates the end-to-end question answering
// workflow.
//
// A run first makes sure a vector index is attached, reusing an
// existing one or rebuilding from the source document. It then gathers
// shared context for the whole batch concurrently and answers every
// question through batched synthesis. Only when batched synthesis
// produces nothing at all does the run degrade to a per-question
// pipeline with query planning, widening retrieval retries, and
// single-answer synthesis; failures there are confined to the question
// that caused them.
package orchestrator
