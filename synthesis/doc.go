// Package synthesis turns retrieved context into final answers.
//
// The batch path answers every question in a single completion call and
// retries once for any question whose numbered answer is missing from
// the response. The single-question path produces one concise answer
// and is used by the per-question fallback pipeline.
package synthesis
