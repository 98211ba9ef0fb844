package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veldt/corpusqa/ai/mock"
	"github.com/veldt/corpusqa/core"
	"github.com/veldt/corpusqa/vecstore"
	badgerstore "github.com/veldt/corpusqa/vecstore/badger"
)

func newAttachedIndex(t *testing.T, chunks ...core.Chunk) *vecstore.Active {
	t.Helper()
	store, err := badgerstore.OpenStore("", true)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	require.NoError(t, store.Create(ctx, "corpus", 8, vecstore.MetricCosine))
	idx, err := store.Open(ctx, "corpus")
	require.NoError(t, err)
	if len(chunks) > 0 {
		require.NoError(t, idx.Upsert(ctx, chunks...))
	}

	active := vecstore.NewActive()
	active.Attach(idx)
	return active
}

func embeddedChunk(embedder *mock.MockEmbedder, text string) core.Chunk {
	vector, _ := embedder.EmbedText(context.Background(), text)
	return core.Chunk{Id: core.IDFromContent(text), Text: text, Vector: vector}
}

func TestNewSearcher(t *testing.T) {
	provider := mock.NewMockProvider()
	active := vecstore.NewActive()

	t.Run("valid configuration", func(t *testing.T) {
		s, err := NewSearcher(active, provider)
		require.NoError(t, err)
		assert.NotNil(t, s)
	})

	t.Run("nil active holder", func(t *testing.T) {
		_, err := NewSearcher(nil, provider)
		assert.Equal(t, ErrActiveIndexRequired, err)
	})

	t.Run("nil provider", func(t *testing.T) {
		_, err := NewSearcher(active, nil)
		assert.Equal(t, ErrAIProviderRequired, err)
	})
}

func TestSearchAndRerank_NoIndexAttached(t *testing.T) {
	s, err := NewSearcher(vecstore.NewActive(), mock.NewMockProvider())
	require.NoError(t, err)

	_, err = s.SearchAndRerank(context.Background(), "query", 10, 5)
	assert.ErrorIs(t, err, ErrIndexNotReady)
}

func TestSearchAndRerank_EmptyIndex(t *testing.T) {
	active := newAttachedIndex(t)
	s, err := NewSearcher(active, mock.NewMockProvider())
	require.NoError(t, err)

	texts, err := s.SearchAndRerank(context.Background(), "query", 10, 5)
	require.NoError(t, err)
	assert.Empty(t, texts)
}

func TestSearchAndRerank_RerankerOrdersResults(t *testing.T) {
	provider := mock.NewMockProvider().(*mock.MockProvider)
	embedder := provider.GetMockEmbedder()

	active := newAttachedIndex(t,
		embeddedChunk(embedder, "chunk alpha"),
		embeddedChunk(embedder, "chunk beta"),
		embeddedChunk(embedder, "chunk gamma"),
	)

	// Reranker inverts whatever order retrieval produced.
	provider.GetMockReranker().ScoreFunc = func(ctx context.Context, query string, candidates []string) ([]float32, error) {
		scores := make([]float32, len(candidates))
		for i, c := range candidates {
			switch c {
			case "chunk gamma":
				scores[i] = 0.9
			case "chunk beta":
				scores[i] = 0.5
			default:
				scores[i] = 0.1
			}
		}
		return scores, nil
	}

	s, err := NewSearcher(active, provider)
	require.NoError(t, err)

	texts, err := s.SearchAndRerank(context.Background(), "chunk alpha", 10, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"chunk gamma", "chunk beta"}, texts)
}

func TestSearchAndRerank_StableTieBreak(t *testing.T) {
	provider := mock.NewMockProvider().(*mock.MockProvider)
	embedder := provider.GetMockEmbedder()

	// Retrieval order is determined by similarity to the query text;
	// the query is identical to "first" so that chunk retrieves first.
	first := embeddedChunk(embedder, "tie candidate one")
	second := embeddedChunk(embedder, "tie candidate two")
	active := newAttachedIndex(t, first, second)

	provider.GetMockReranker().ScoreFunc = func(ctx context.Context, query string, candidates []string) ([]float32, error) {
		return make([]float32, len(candidates)), nil // all equal
	}

	s, err := NewSearcher(active, provider)
	require.NoError(t, err)

	texts, err := s.SearchAndRerank(context.Background(), "tie candidate one", 10, 2)
	require.NoError(t, err)
	require.Len(t, texts, 2)
	assert.Equal(t, "tie candidate one", texts[0], "equal scores must preserve retrieval order")
}

func TestSearchAndRerank_TopNTruncation(t *testing.T) {
	provider := mock.NewMockProvider().(*mock.MockProvider)
	embedder := provider.GetMockEmbedder()

	active := newAttachedIndex(t,
		embeddedChunk(embedder, "one"),
		embeddedChunk(embedder, "two"),
		embeddedChunk(embedder, "three"),
		embeddedChunk(embedder, "four"),
	)

	s, err := NewSearcher(active, provider)
	require.NoError(t, err)

	texts, err := s.SearchAndRerank(context.Background(), "one", 10, 2)
	require.NoError(t, err)
	assert.Len(t, texts, 2)
}

func TestSearchAndRerank_ScoreCountMismatch(t *testing.T) {
	provider := mock.NewMockProvider().(*mock.MockProvider)
	embedder := provider.GetMockEmbedder()

	active := newAttachedIndex(t, embeddedChunk(embedder, "sole chunk"))

	provider.GetMockReranker().ScoreFunc = func(ctx context.Context, query string, candidates []string) ([]float32, error) {
		return []float32{}, nil
	}

	s, err := NewSearcher(active, provider)
	require.NoError(t, err)

	_, err = s.SearchAndRerank(context.Background(), "sole chunk", 10, 1)
	assert.ErrorIs(t, err, ErrScoreCountMismatch)
}
