package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/tmc/langchaingo/textsplitter"
	"github.com/veldt/corpusqa/ai"
	"github.com/veldt/corpusqa/core"
	"github.com/veldt/corpusqa/extract"
	"github.com/veldt/corpusqa/vecstore"
)

const (
	// Nominal chunk size in tokens, with ~15% overlap between
	// consecutive chunks. Splitting is deterministic for a given
	// configuration and input text.
	chunkSizeTokens    = 512
	chunkOverlapTokens = 76
	tokenizerModel     = "gpt-4"

	embedBatchSize  = 64
	upsertBatchSize = 100

	readyPollInterval = 500 * time.Millisecond
	readyPollTimeout  = 60 * time.Second
)

// Pipeline rebuilds the corpus vector index from the source document:
// extract, split into overlapping chunks, embed, drop-and-recreate the
// named index, upsert in batches, and attach the fresh handle.
//
// Ingestion is single-writer and runs to completion; overlapping calls
// are not supported.
type Pipeline struct {
	extractor extract.Extractor
	embedder  ai.Embedder
	store     vecstore.Store
	active    *vecstore.Active
	indexName string
	splitter  textsplitter.TextSplitter
	pool      *ants.Pool
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for embedding and upsert batches.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		if p.pool != nil {
			p.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithTextSplitter replaces the token splitter used to chunk the
// document text.
func WithTextSplitter(splitter textsplitter.TextSplitter) Option {
	return func(p *Pipeline) error {
		if splitter == nil {
			return ErrTextSplitterRequired
		}
		p.splitter = splitter
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline for the named index.
func NewPipeline(
	extractor extract.Extractor,
	provider ai.Provider,
	store vecstore.Store,
	active *vecstore.Active,
	indexName string,
	opts ...Option,
) (*Pipeline, error) {
	if extractor == nil {
		return nil, ErrExtractorRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}
	if store == nil {
		return nil, ErrStoreRequired
	}
	if active == nil {
		return nil, ErrActiveIndexRequired
	}
	if indexName == "" {
		return nil, ErrIndexNameRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		extractor: extractor,
		embedder:  provider.Embedder(),
		store:     store,
		active:    active,
		indexName: indexName,
		splitter: textsplitter.NewTokenSplitter(
			textsplitter.WithChunkSize(chunkSizeTokens),
			textsplitter.WithChunkOverlap(chunkOverlapTokens),
			textsplitter.WithModelName(tokenizerModel),
		),
		pool:   pool,
		logger: slog.Default().With("component", "ingestion"),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// IndexName returns the name of the index this pipeline rebuilds.
func (p *Pipeline) IndexName() string {
	return p.indexName
}

// Ingest extracts the document at documentPath, splits and embeds it, and
// replaces the named index with a fresh one holding every chunk vector.
// On success the new index is attached as the active handle.
func (p *Pipeline) Ingest(ctx context.Context, documentPath string) error {
	p.logger.Info("ingesting document", "path", documentPath, "index", p.indexName)

	text, err := p.extractor.Extract(documentPath)
	if err != nil {
		return err
	}

	texts, err := p.splitter.SplitText(text)
	if err != nil {
		return fmt.Errorf("splitting text: %w", err)
	}
	if len(texts) == 0 {
		return ErrNoChunks
	}
	p.logger.Info("split document into chunks", "chunks", len(texts))

	chunks := buildChunks(text, texts)

	if err := p.embedChunks(ctx, chunks); err != nil {
		return err
	}
	dim := len(chunks[0].Vector)

	if err := p.rebuildIndex(ctx, dim); err != nil {
		return err
	}

	idx, err := p.store.Open(ctx, p.indexName)
	if err != nil {
		return err
	}

	if err := p.upsertChunks(ctx, idx, chunks); err != nil {
		return err
	}

	p.active.Attach(idx)
	p.logger.Info("ingestion complete", "index", p.indexName, "chunks", len(chunks), "dimension", dim)
	return nil
}

// buildChunks assigns content-hash IDs and best-effort source offsets.
// Offsets are located by forward substring search; the tokenizer round
// trip can occasionally reflow whitespace, in which case the previous
// offset is carried forward.
func buildChunks(full string, texts []string) []core.Chunk {
	chunks := make([]core.Chunk, len(texts))
	searchFrom := 0
	for i, t := range texts {
		offset := searchFrom
		if at := strings.Index(full[searchFrom:], t); at >= 0 {
			offset = searchFrom + at
			searchFrom = offset + 1
		}
		chunks[i] = core.Chunk{
			Id:     core.IDFromContent(t),
			Text:   t,
			Offset: offset,
		}
	}
	return chunks
}

// embedChunks fills in chunk vectors, fanning embedding batches out on
// the worker pool.
func (p *Pipeline) embedChunks(ctx context.Context, chunks []core.Chunk) error {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	for start := 0; start < len(chunks); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		wg.Add(1)
		submitErr := p.pool.Submit(func() {
			defer wg.Done()

			texts := make([]string, len(batch))
			for i, c := range batch {
				texts[i] = c.Text
			}

			vectors, err := p.embedder.EmbedTexts(ctx, texts)
			if err == nil && len(vectors) != len(batch) {
				err = fmt.Errorf("embedding result mismatch: expected %d, received %d", len(batch), len(vectors))
			}

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			for i := range batch {
				batch[i].Vector = vectors[i]
			}
		})
		if submitErr != nil {
			wg.Done()
			return submitErr
		}
	}
	wg.Wait()

	if firstErr != nil {
		return fmt.Errorf("embedding chunks: %w", firstErr)
	}
	return nil
}

// rebuildIndex drops any existing index of the configured name, creates a
// fresh one with the embedding dimension, and polls until it is ready.
func (p *Pipeline) rebuildIndex(ctx context.Context, dim int) error {
	existing, err := p.store.List(ctx)
	if err != nil {
		return err
	}
	for _, name := range existing {
		if name == p.indexName {
			p.logger.Info("deleting existing index", "index", p.indexName)
			if err := p.store.Delete(ctx, p.indexName); err != nil {
				return err
			}
			break
		}
	}

	if err := p.store.Create(ctx, p.indexName, dim, vecstore.MetricCosine); err != nil {
		return err
	}

	deadline := time.Now().Add(readyPollTimeout)
	for {
		ready, err := p.store.Ready(ctx, p.indexName)
		if err != nil {
			return err
		}
		if ready {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("%w: %q", ErrIndexNeverReady, p.indexName)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(readyPollInterval):
		}
	}
}

// upsertChunks writes all chunk vectors in batches fanned out on the
// worker pool.
func (p *Pipeline) upsertChunks(ctx context.Context, idx vecstore.Index, chunks []core.Chunk) error {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	for start := 0; start < len(chunks); start += upsertBatchSize {
		end := start + upsertBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		wg.Add(1)
		submitErr := p.pool.Submit(func() {
			defer wg.Done()
			if err := idx.Upsert(ctx, batch...); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		})
		if submitErr != nil {
			wg.Done()
			return submitErr
		}
	}
	wg.Wait()

	if firstErr != nil {
		return fmt.Errorf("upserting chunks: %w", firstErr)
	}
	return nil
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
