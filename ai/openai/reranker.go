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


package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/veldt/corpusqa/ai"
)

const rerankTimeout = 60 * time.Second

// Reranker implements ai.Reranker against a Jina/Cohere-compatible
// /rerank HTTP endpoint serving a cross-encoder model.
type Reranker struct {
	endpoint string
	model    string
	token    string
	client   *http.Client
	logger   *slog.Logger
}

type rerankRequest struct {
	Model     string   `json:"model"`
	Query     string   `json:"query"`
	Documents []string `json:"documents"`
}

type rerankResponse struct {
	Results []struct {
		Index          int     `json:"index"`
		RelevanceScore float32 `json:"relevance_score"`
	} `json:"results"`
}

// newReranker is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newReranker(config *ai.Config) (*Reranker, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Reranker{
		endpoint: config.RerankHost + "/rerank",
		model:    config.RerankModel,
		token:    config.Token,
		client:   &http.Client{Timeout: rerankTimeout},
		logger:   slog.Default().With("component", "reranker"),
	}, nil
}

// NewReranker creates a new reranker using the provided configuration.
//
// Returns ai.Reranker interface to enforce abstraction.
func NewReranker(config *ai.Config) (ai.Reranker, error) {
	return newReranker(config)
}

// Score returns one relevance score per candidate, aligned with the input
// order. The endpoint returns results ranked by score with their original
// indices; scores are mapped back into input positions.
func (r *Reranker) Score(ctx context.Context, query string, candidates []string) ([]float32, error) {
	if len(candidates) == 0 {
		return []float32{}, nil
	}

	body, err := json.Marshal(rerankRequest{
		Model:     r.model,
		Query:     query,
		Documents: candidates,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+r.token)

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Error("rerank request failed", "err", err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("rerank request failed: %d, %s", resp.StatusCode, string(payload))
	}

	var parsed rerankResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("rerank response decode: %w", err)
	}

	scores := make([]float32, len(candidates))
	seen := 0
	for _, result := range parsed.Results {
		if result.Index < 0 || result.Index >= len(candidates) {
			return nil, fmt.Errorf("rerank response index %d out of range", result.Index)
		}
		scores[result.Index] = result.RelevanceScore
		seen++
	}
	if seen != len(candidates) {
		r.logger.Warn("rerank response covered fewer documents than requested",
			"requested", len(candidates), "scored", seen)
	}

	return scores, nil
}
