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

import (
	"context"
	"log/slog"
	"sort"

	"github.com/veldt/corpusqa/ai"
	"github.com/veldt/corpusqa/vecstore"
)

// Searcher provides two-stage retrieval over the attached vector index:
// an embedding-based nearest-neighbor fetch followed by a pairwise
// relevance rerank.
type Searcher struct {
	active   *vecstore.Active
	embedder ai.Embedder
	reranker ai.Reranker
	logger   *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new searcher reading the process-wide attached index.
func NewSearcher(active *vecstore.Active, provider ai.Provider, opts ...Option) (*Searcher, error) {
	if active == nil {
		return nil, ErrActiveIndexRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	s := &Searcher{
		active:   active,
		embedder: provider.Embedder(),
		reranker: provider.Reranker(),
		logger:   slog.Default().With("component", "searcher"),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// SearchAndRerank embeds the query, fetches the topK nearest chunks from
// the attached index, reranks every (query, chunk) pair with the pairwise
// relevance model, and returns the top topN chunk texts in descending
// score order. Ties keep their retrieval order.
//
// Returns ErrIndexNotReady when no index is attached. Zero retrieval
// matches yield an empty slice, not an error.
func (s *Searcher) SearchAndRerank(ctx context.Context, query string, topK, topN int) ([]string, error) {
	idx := s.active.Get()
	if idx == nil {
		return nil, ErrIndexNotReady
	}

	embedding, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		s.logger.Error("error generating embedding for query", "query", query, "err", err)
		return nil, err
	}

	matches, err := idx.Query(ctx, embedding, topK)
	if err != nil {
		s.logger.Error("error querying index", "index", idx.Name(), "err", err)
		return nil, err
	}

	if len(matches) == 0 {
		s.logger.Warn("no relevant chunks found for query", "query", query)
		return []string{}, nil
	}

	texts := make([]string, len(matches))
	for i, match := range matches {
		texts[i] = match.Text
	}

	scores, err := s.reranker.Score(ctx, query, texts)
	if err != nil {
		s.logger.Error("error reranking retrieved chunks", "count", len(texts), "err", err)
		return nil, err
	}
	if len(scores) != len(texts) {
		return nil, ErrScoreCountMismatch
	}

	order := make([]int, len(texts))
	for i := range order {
		order[i] = i
	}
	// Stable: equal scores preserve retrieval order.
	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})

	if topN > len(order) {
		topN = len(order)
	}
	reranked := make([]string, 0, topN)
	for _, i := range order[:topN] {
		reranked = append(reranked, texts[i])
	}

	s.logger.Debug("search and rerank complete",
		"query", query, "retrieved", len(texts), "returned", len(reranked))
	return reranked, nil
}
