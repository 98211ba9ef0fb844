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


package core

import "errors"

// Domain validation errors
var (
	// ErrEmptyPlan indicates a ResearchPlan with no sub-questions.
	ErrEmptyPlan = errors.New("research plan cannot be empty")

	// ErrEmptySubQuestion indicates a ResearchPlan keyed by an empty string.
	ErrEmptySubQuestion = errors.New("sub-question cannot be empty")

	// ErrEmptyHypotheticals indicates a sub-question with no hypothetical answers.
	ErrEmptyHypotheticals = errors.New("sub-question requires at least one hypothetical answer")

	// ErrEmptyChunkText indicates a Chunk with no text content.
	ErrEmptyChunkText = errors.New("chunk text cannot be empty")
)
