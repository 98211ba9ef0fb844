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


package ai

import (
	"context"
	"encoding/json"
)

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Completer generates text completions from prompts.
// Implementations must be thread-safe for concurrent use.
type Completer interface {
	// Complete sends a single prompt and returns the model's text response.
	Complete(ctx context.Context, prompt string) (string, error)

	// CompleteJSON sends a single prompt with structured output requested
	// and returns the raw JSON value produced by the model. Implementations
	// strip code fences and attempt repair of common formatting defects
	// before returning; a response that still is not valid JSON is an error.
	CompleteJSON(ctx context.Context, prompt string) (json.RawMessage, error)
}

// Reranker scores query/candidate pairs with a pairwise relevance model.
// More accurate than vector similarity alone, at higher cost.
// Implementations must be thread-safe for concurrent use.
type Reranker interface {
	// Score returns one relevance score per candidate, aligned with the
	// input order. len(result) == len(candidates) on success.
	Score(ctx context.Context, query string, candidates []string) ([]float32, error)
}

// Provider aggregates AI services for convenient initialization and
// lifecycle management. A provider creates and manages the Embedder,
// Completer and Reranker instances, ensuring they share configuration.
type Provider interface {
	// Embedder returns the text embedding service.
	Embedder() Embedder

	// Completer returns the completion service.
	Completer() Completer

	// Reranker returns the pairwise relevance scoring service.
	Reranker() Reranker

	// Close releases resources held by the provider and its services.
	Close() error
}
