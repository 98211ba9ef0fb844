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

package planner

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/veldt/corpusqa/ai"
	"github.com/veldt/corpusqa/core"
)

// Planner decomposes a user question into sub-questions, each paired
// with hypothetical answers used as additional retrieval probes.
type Planner struct {
	completer ai.Completer
	logger    *slog.Logger
}

// Option configures a Planner.
type Option func(*Planner)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Planner) {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
	}
}

// NewPlanner creates a new query planner backed by the provider's
// completion model.
func NewPlanner(provider ai.Provider, opts ...Option) (*Planner, error) {
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	p := &Planner{
		completer: provider.Completer(),
		logger:    slog.Default().With("component", "planner"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// PlanAndResearch produces a research plan for the question. Planning is
// best effort: any model failure, malformed response, or empty plan
// degrades to the identity plan mapping the question to itself, so the
// caller always receives a usable plan.
func (p *Planner) PlanAndResearch(ctx context.Context, question string) core.ResearchPlan {
	raw, err := p.completer.CompleteJSON(ctx, planningPrompt(question))
	if err != nil {
		p.logger.Warn("planning call failed, falling back to identity plan", "error", err)
		return core.IdentityPlan(question)
	}

	var plan core.ResearchPlan
	if err := json.Unmarshal(raw, &plan); err != nil {
		p.logger.Warn("planning response not decodable, falling back to identity plan", "error", err)
		return core.IdentityPlan(question)
	}

	if err := plan.Validate(); err != nil {
		p.logger.Warn("planning response invalid, falling back to identity plan", "error", err)
		return core.IdentityPlan(question)
	}

	p.logger.Debug("research plan ready", "sub_questions", len(plan))
	return plan
}
