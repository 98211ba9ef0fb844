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


package corpusqa

import (
	"context"
	"log/slog"

	"github.com/veldt/corpusqa/ai"
	"github.com/veldt/corpusqa/ai/openai"
	"github.com/veldt/corpusqa/extract"
	"github.com/veldt/corpusqa/ingestion"
	"github.com/veldt/corpusqa/orchestrator"
	"github.com/veldt/corpusqa/planner"
	"github.com/veldt/corpusqa/search"
	"github.com/veldt/corpusqa/synthesis"
	"github.com/veldt/corpusqa/vecstore"
	badgerstore "github.com/veldt/corpusqa/vecstore/badger"
)

// App wires the full question answering stack: vector store, AI
// provider, ingestion pipeline, retrieval, planning, synthesis, and the
// orchestrator that ties them together.
type App struct {
	store        *badgerstore.Store
	active       *vecstore.Active
	provider     ai.Provider
	pipeline     *ingestion.Pipeline
	orchestrator *orchestrator.Orchestrator
	logger       *slog.Logger
}

// AppOption configures an App.
type AppOption func(*appOptions)

type appOptions struct {
	aiConfig *ai.Config
	inMemory bool
}

// WithAIConfig sets the AI provider configuration.
// Default is ai.DefaultConfig().
func WithAIConfig(config *ai.Config) AppOption {
	return func(o *appOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithInMemoryStore keeps the vector store in memory instead of on
// disk. Intended for tests and throwaway environments.
func WithInMemoryStore() AppOption {
	return func(o *appOptions) {
		o.inMemory = true
	}
}

// NewApp builds the application. storePath is the vector store
// directory, documentPath the corpus source document, and indexName the
// vector index the service reads and rebuilds.
func NewApp(storePath, documentPath, indexName string, opts ...AppOption) (*App, error) {
	options := &appOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	store, err := badgerstore.OpenStore(storePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	provider, err := openai.NewProvider(options.aiConfig)
	if err != nil {
		store.Close()
		return nil, err
	}

	active := vecstore.NewActive()

	pipeline, err := ingestion.NewPipeline(extract.NewFileExtractor(), provider, store, active, indexName)
	if err != nil {
		provider.Close()
		store.Close()
		return nil, err
	}

	searcher, err := search.NewSearcher(active, provider)
	if err != nil {
		pipeline.Release()
		provider.Close()
		store.Close()
		return nil, err
	}

	questionPlanner, err := planner.NewPlanner(provider)
	if err != nil {
		pipeline.Release()
		provider.Close()
		store.Close()
		return nil, err
	}

	synthesizer, err := synthesis.NewSynthesizer(provider)
	if err != nil {
		pipeline.Release()
		provider.Close()
		store.Close()
		return nil, err
	}

	orch, err := orchestrator.NewOrchestrator(store, active, pipeline, searcher, questionPlanner, synthesizer, documentPath)
	if err != nil {
		pipeline.Release()
		provider.Close()
		store.Close()
		return nil, err
	}

	return &App{
		store:        store,
		active:       active,
		provider:     provider,
		pipeline:     pipeline,
		orchestrator: orch,
		logger:       slog.Default(),
	}, nil
}

// Run answers a batch of questions through the orchestrated workflow.
func (a *App) Run(ctx context.Context, questions []string) ([]string, error) {
	return a.orchestrator.Run(ctx, questions)
}

// Ingest rebuilds the vector index from the document at path.
func (a *App) Ingest(ctx context.Context, path string) error {
	return a.pipeline.Ingest(ctx, path)
}

// AttachExistingIndex opens and attaches the configured index when the
// store already holds one. Returns false when no index exists yet.
func (a *App) AttachExistingIndex(ctx context.Context) (bool, error) {
	names, err := a.store.List(ctx)
	if err != nil {
		return false, err
	}
	for _, name := range names {
		if name == a.pipeline.IndexName() {
			idx, err := a.store.Open(ctx, name)
			if err != nil {
				return false, err
			}
			a.active.Attach(idx)
			a.logger.Info("attached existing index", "index", name)
			return true, nil
		}
	}
	return false, nil
}

// Close releases every component. The app must not be used afterwards.
func (a *App) Close() error {
	a.orchestrator.Release()
	a.pipeline.Release()

	if err := a.provider.Close(); err != nil {
		a.logger.Error("error closing AI provider", "err", err)
	}
	if err := a.store.Close(); err != nil {
		a.logger.Error("error closing vector store", "err", err)
		return err
	}
	return nil
}
