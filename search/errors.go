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


package search

import "errors"

var (
	// ErrIndexNotReady is returned when retrieval is attempted with no
	// attached index. The orchestrator reacts by triggering ingestion.
	ErrIndexNotReady = errors.New("no vector index attached")

	// ErrActiveIndexRequired is returned when an active index holder is not provided.
	ErrActiveIndexRequired = errors.New("active index holder required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrScoreCountMismatch is returned when the reranker yields a score
	// count different from the candidate count.
	ErrScoreCountMismatch = errors.New("reranker score count mismatch")
)
