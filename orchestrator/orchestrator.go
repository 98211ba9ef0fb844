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

package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/veldt/corpusqa/core"
	"github.com/veldt/corpusqa/vecstore"
)

const (
	// Retrieval breadth when gathering shared context for a batch.
	batchTopK = 30

	// Candidates kept after reranking, for both pipelines.
	rerankTopN = 5

	// Retrieval attempts in the single-question fallback pipeline.
	fallbackMaxAttempts = 2

	// NoContextMessage is the answer for a question whose retrieval
	// produced nothing even after widening.
	NoContextMessage = "I couldn't find specific information about this in the policy document. Please try rephrasing your question or contact customer support for detailed policy information."

	processingErrorFormat = "An error occurred while processing the question: %s"
)

// QuestionPlanner produces research plans for the fallback pipeline.
type QuestionPlanner interface {
	PlanAndResearch(ctx context.Context, question string) core.ResearchPlan
}

// AnswerSynthesizer produces final answers from retrieved context.
type AnswerSynthesizer interface {
	AnswerBatch(ctx context.Context, questions []string, contexts []string) ([]string, error)
	AnswerOne(ctx context.Context, question string, contexts []string) string
}

// ContextSearcher performs two-stage retrieval.
type ContextSearcher interface {
	SearchAndRerank(ctx context.Context, query string, topK, topN int) ([]string, error)
}

// Ingester rebuilds the corpus index from the source document.
type Ingester interface {
	Ingest(ctx context.Context, documentPath string) error
	IndexName() string
}

// Orchestrator runs the end-to-end question answering workflow: ensure
// an index exists, gather shared context for the whole batch, answer in
// bulk, and fall back to a per-question pipeline when bulk synthesis
// fails entirely.
type Orchestrator struct {
	store        vecstore.Store
	active       *vecstore.Active
	ingester     Ingester
	searcher     ContextSearcher
	planner      QuestionPlanner
	synthesizer  AnswerSynthesizer
	documentPath string
	pool         *ants.Pool
	cache        *answerCache
	logger       *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator) error

// WithPoolSize sets the worker pool size for concurrent retrieval.
// Default is runtime.NumCPU(), with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(o *Orchestrator) error {
		if size < 1 {
			size = 1
		}
		if o.pool != nil {
			o.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		o.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
		return nil
	}
}

// NewOrchestrator creates the workflow orchestrator. documentPath names
// the source document used to rebuild the index when none exists.
func NewOrchestrator(
	store vecstore.Store,
	active *vecstore.Active,
	ingester Ingester,
	searcher ContextSearcher,
	planner QuestionPlanner,
	synthesizer AnswerSynthesizer,
	documentPath string,
	opts ...Option,
) (*Orchestrator, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if active == nil {
		return nil, ErrActiveIndexRequired
	}
	if ingester == nil {
		return nil, ErrIngesterRequired
	}
	if searcher == nil {
		return nil, ErrSearcherRequired
	}
	if planner == nil {
		return nil, ErrPlannerRequired
	}
	if synthesizer == nil {
		return nil, ErrSynthesizerRequired
	}
	if documentPath == "" {
		return nil, ErrDocumentPathRequired
	}

	poolSize := runtime.NumCPU()
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	o := &Orchestrator{
		store:        store,
		active:       active,
		ingester:     ingester,
		searcher:     searcher,
		planner:      planner,
		synthesizer:  synthesizer,
		documentPath: documentPath,
		pool:         pool,
		cache:        newAnswerCache(),
		logger:       slog.Default().With("component", "orchestrator"),
	}

	for _, opt := range opts {
		if optErr := opt(o); optErr != nil {
			o.Release()
			return nil, optErr
		}
	}

	return o, nil
}

// Run answers every question in order. The returned slice is aligned
// with questions; individual failures surface as answer text, and only
// a failure to provision the index fails the whole run.
func (o *Orchestrator) Run(ctx context.Context, questions []string) ([]string, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	if err := o.ensureIndex(ctx); err != nil {
		return nil, err
	}

	// Answers must be fresh per batch.
	o.cache.clear()

	o.logger.Info("processing question batch", "questions", len(questions))
	contexts := o.gatherBatchContext(ctx, questions)

	answers, err := o.synthesizer.AnswerBatch(ctx, questions, contexts)
	if err == nil {
		o.logger.Info("batch synthesis complete", "answers", len(answers))
		return answers, nil
	}

	o.logger.Warn("batch synthesis failed, processing questions individually", "error", err)
	answers = make([]string, len(questions))
	for i, question := range questions {
		answers[i] = o.answerSingle(ctx, question)
	}
	return answers, nil
}

// ensureIndex attaches an existing index when one is available and
// otherwise rebuilds it from the source document. A populated index
// never triggers re-ingestion.
func (o *Orchestrator) ensureIndex(ctx context.Context) error {
	if o.active.Attached() {
		return nil
	}

	names, err := o.store.List(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIndexUnavailable, err)
	}
	for _, name := range names {
		if name == o.ingester.IndexName() {
			idx, err := o.store.Open(ctx, name)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrIndexUnavailable, err)
			}
			o.logger.Info("using existing index", "index", name)
			o.active.Attach(idx)
			return nil
		}
	}

	o.logger.Info("no index found, ingesting source document", "path", o.documentPath)
	if err := o.ingester.Ingest(ctx, o.documentPath); err != nil {
		return fmt.Errorf("%w: %w", ErrIndexUnavailable, err)
	}
	return nil
}

// gatherBatchContext retrieves and deduplicates context for every
// question concurrently. A question whose retrieval fails contributes
// nothing; shared context from the rest still covers it.
func (o *Orchestrator) gatherBatchContext(ctx context.Context, questions []string) []string {
	pool := core.NewContextPool()
	var wg sync.WaitGroup

	for _, question := range questions {
		wg.Add(1)
		if err := o.pool.Submit(func() {
			defer wg.Done()
			texts, err := o.searcher.SearchAndRerank(ctx, question, batchTopK, rerankTopN)
			if err != nil {
				o.logger.Warn("could not gather context for question", "question", question, "error", err)
				return
			}
			pool.Add(texts...)
		}); err != nil {
			wg.Done()
			o.logger.Warn("could not schedule retrieval for question", "question", question, "error", err)
		}
	}
	wg.Wait()

	o.logger.Info("gathered batch context", "chunks", pool.Len())
	return pool.Texts()
}

// answerSingle runs the fallback pipeline for one question, converting
// any error or panic into the per-question error message so one bad
// question never poisons the rest of the batch.
func (o *Orchestrator) answerSingle(ctx context.Context, question string) (answer string) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("panic while processing question", "question", question, "panic", r)
			answer = fmt.Sprintf(processingErrorFormat, question)
		}
	}()

	answer, err := o.runSingleQuestion(ctx, question)
	if err != nil {
		o.logger.Error("error processing question", "question", question, "error", err)
		return fmt.Sprintf(processingErrorFormat, question)
	}
	return answer
}

// runSingleQuestion plans the question, retrieves context per
// sub-question and hypothetical answer with widening retries, and
// synthesizes a single concise answer.
func (o *Orchestrator) runSingleQuestion(ctx context.Context, question string) (string, error) {
	if answer, ok := o.cache.get(question); ok {
		o.logger.Debug("answer served from cache", "question", question)
		return answer, nil
	}

	plan := o.planner.PlanAndResearch(ctx, question)
	o.logger.Info("research plan generated", "question", question, "sub_questions", len(plan))

	chunks := core.NewContextPool()
	for attempt := 0; attempt < fallbackMaxAttempts; attempt++ {
		topK := retrievalBreadth(attempt, len(plan))
		attemptChunks, err := o.retrievePlanContext(ctx, plan, topK)
		if err != nil {
			return "", err
		}

		chunks.Merge(attemptChunks)
		o.logger.Debug("retrieval attempt complete",
			"attempt", attempt+1, "top_k", topK, "chunks", attemptChunks.Len())
		if attemptChunks.Len() > 0 {
			break
		}
	}

	if chunks.Len() == 0 {
		o.logger.Warn("no relevant chunks found after all attempts", "question", question)
		return NoContextMessage, nil
	}

	answer := o.synthesizer.AnswerOne(ctx, question, chunks.Texts())
	o.cache.set(question, answer)
	return answer, nil
}

// retrievePlanContext fans retrieval out across every (sub-question,
// hypothetical answer) pair of the plan.
func (o *Orchestrator) retrievePlanContext(ctx context.Context, plan core.ResearchPlan, topK int) (*core.ContextPool, error) {
	pool := core.NewContextPool()
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	for _, hypotheticals := range plan {
		wg.Add(1)
		if err := o.pool.Submit(func() {
			defer wg.Done()
			for _, probe := range hypotheticals {
				texts, err := o.searcher.SearchAndRerank(ctx, probe, topK, rerankTopN)
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
					return
				}
				pool.Add(texts...)
			}
		}); err != nil {
			wg.Done()
			return nil, err
		}
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return pool, nil
}

// retrievalBreadth picks the nearest-neighbor fetch size for a fallback
// retrieval attempt: a focused fetch first, then a wide one when the
// first attempt found nothing. Multi-part plans start wider.
func retrievalBreadth(attempt, planSize int) int {
	if attempt > 0 {
		return 60
	}
	if planSize > 1 {
		return 40
	}
	return 20
}

// Release releases the worker pool.
// The orchestrator should not be used after calling Release.
func (o *Orchestrator) Release() {
	if o.pool != nil {
		o.pool.Release()
	}
}
