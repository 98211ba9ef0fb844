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


// Package search provides two-stage retrieval over the document corpus.
//
// The Searcher type first fetches candidate chunks by embedding
// similarity, then rescores every (query, chunk) pair with a pairwise
// relevance model. The second stage is more accurate but costlier, so
// the retrieval stage over-fetches and the rerank stage truncates.
package search
