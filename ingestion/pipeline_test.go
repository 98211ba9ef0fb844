package ingestion

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/textsplitter"
	"github.com/veldt/corpusqa/ai/mock"
	"github.com/veldt/corpusqa/core"
	"github.com/veldt/corpusqa/extract"
	"github.com/veldt/corpusqa/vecstore"
	badgerstore "github.com/veldt/corpusqa/vecstore/badger"
)

const testIndexName = "corpus"

// sentenceSplitter avoids the tokenizer dependency in tests by splitting
// on sentence boundaries.
func sentenceSplitter() textsplitter.TextSplitter {
	return textsplitter.NewRecursiveCharacter(
		textsplitter.WithSeparators([]string{". ", "\n"}),
		textsplitter.WithChunkSize(64),
		textsplitter.WithChunkOverlap(8),
	)
}

func newTestPipeline(t *testing.T) (*Pipeline, *badgerstore.Store, *vecstore.Active) {
	t.Helper()

	store, err := badgerstore.OpenStore("", true)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	active := vecstore.NewActive()
	p, err := NewPipeline(
		extract.NewFileExtractor(),
		mock.NewMockProvider(),
		store,
		active,
		testIndexName,
		WithTextSplitter(sentenceSplitter()),
		WithPoolSize(2),
	)
	require.NoError(t, err)
	t.Cleanup(p.Release)

	return p, store, active
}

func writeDocument(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "document.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNewPipeline(t *testing.T) {
	store, err := badgerstore.OpenStore("", true)
	require.NoError(t, err)
	defer store.Close()

	extractor := extract.NewFileExtractor()
	provider := mock.NewMockProvider()
	active := vecstore.NewActive()

	t.Run("valid configuration", func(t *testing.T) {
		p, err := NewPipeline(extractor, provider, store, active, testIndexName)
		require.NoError(t, err)
		assert.Equal(t, testIndexName, p.IndexName())
		p.Release()
	})

	t.Run("nil extractor", func(t *testing.T) {
		_, err := NewPipeline(nil, provider, store, active, testIndexName)
		assert.Equal(t, ErrExtractorRequired, err)
	})

	t.Run("nil provider", func(t *testing.T) {
		_, err := NewPipeline(extractor, nil, store, active, testIndexName)
		assert.Equal(t, ErrAIProviderRequired, err)
	})

	t.Run("nil store", func(t *testing.T) {
		_, err := NewPipeline(extractor, provider, nil, active, testIndexName)
		assert.Equal(t, ErrStoreRequired, err)
	})

	t.Run("nil active holder", func(t *testing.T) {
		_, err := NewPipeline(extractor, provider, store, nil, testIndexName)
		assert.Equal(t, ErrActiveIndexRequired, err)
	})

	t.Run("empty index name", func(t *testing.T) {
		_, err := NewPipeline(extractor, provider, store, active, "")
		assert.Equal(t, ErrIndexNameRequired, err)
	})

	t.Run("nil splitter", func(t *testing.T) {
		_, err := NewPipeline(extractor, provider, store, active, testIndexName, WithTextSplitter(nil))
		assert.Equal(t, ErrTextSplitterRequired, err)
	})
}

func TestIngest(t *testing.T) {
	p, store, active := newTestPipeline(t)
	ctx := context.Background()

	content := "Coverage begins on the policy effective date. " +
		"Claims must be filed within ninety days of the incident. " +
		"Pre-existing conditions are excluded for the first year. " +
		"Premium payments are due on the first of each month."
	path := writeDocument(t, content)

	require.NoError(t, p.Ingest(ctx, path))

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{testIndexName}, names)

	idx := active.Get()
	require.NotNil(t, idx, "ingestion must attach the fresh index")
	assert.Equal(t, testIndexName, idx.Name())

	provider := mock.NewMockProvider().(*mock.MockProvider)
	vector, err := provider.GetMockEmbedder().EmbedText(ctx, "filing deadlines")
	require.NoError(t, err)

	matches, err := idx.Query(ctx, vector, 100)
	require.NoError(t, err)
	require.NotEmpty(t, matches)

	var indexed strings.Builder
	for _, m := range matches {
		indexed.WriteString(m.Text)
		indexed.WriteString(" ")
	}
	assert.Contains(t, indexed.String(), "ninety days")
	assert.Contains(t, indexed.String(), "Premium payments")
}

func TestIngest_ReplacesExistingIndex(t *testing.T) {
	p, store, active := newTestPipeline(t)
	ctx := context.Background()

	first := writeDocument(t, "The original policy text covers water damage only.")
	require.NoError(t, p.Ingest(ctx, first))

	second := filepath.Join(t.TempDir(), "revised.txt")
	require.NoError(t, os.WriteFile(second, []byte("The revised policy text covers fire damage only."), 0o600))
	require.NoError(t, p.Ingest(ctx, second))

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{testIndexName}, names)

	idx := active.Get()
	require.NotNil(t, idx)

	provider := mock.NewMockProvider().(*mock.MockProvider)
	vector, err := provider.GetMockEmbedder().EmbedText(ctx, "The original policy text covers water damage only.")
	require.NoError(t, err)

	matches, err := idx.Query(ctx, vector, 10)
	require.NoError(t, err)
	for _, m := range matches {
		assert.NotContains(t, m.Text, "water damage", "old index contents must not survive a rebuild")
	}
}

func TestIngest_ExtractionFailure(t *testing.T) {
	p, _, active := newTestPipeline(t)

	err := p.Ingest(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, extract.ErrExtraction)
	assert.Nil(t, active.Get(), "a failed ingestion must not attach an index")
}

func TestIngest_EmptyDocument(t *testing.T) {
	p, _, _ := newTestPipeline(t)

	path := writeDocument(t, "")
	err := p.Ingest(context.Background(), path)
	assert.ErrorIs(t, err, ErrNoChunks)
}

func TestIngest_DeterministicChunkIDs(t *testing.T) {
	ctx := context.Background()
	content := "Deductibles reset annually. " + strings.Repeat("Each covered loss reduces the remaining limit. ", 8)
	path := writeDocument(t, content)

	ids := func() []core.ID {
		p, _, active := newTestPipeline(t)
		require.NoError(t, p.Ingest(ctx, path))
		idx := active.Get()
		require.NotNil(t, idx)

		provider := mock.NewMockProvider().(*mock.MockProvider)
		vector, err := provider.GetMockEmbedder().EmbedText(ctx, "Deductibles reset annually.")
		require.NoError(t, err)

		matches, err := idx.Query(ctx, vector, 100)
		require.NoError(t, err)
		out := make([]core.ID, len(matches))
		for i, m := range matches {
			out[i] = m.Id
		}
		return out
	}

	assert.Equal(t, ids(), ids(), "the same document must produce the same chunk IDs")
}
