package corpusqa

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veldt/corpusqa/vecstore"
)

func TestNewApp(t *testing.T) {
	t.Run("create new app", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "corpus_db")
		app, err := NewApp(tmpDir, "./data/policy.pdf", "corpus")
		require.NoError(t, err)
		require.NotNil(t, app)
		defer app.Close()

		assert.NotNil(t, app.store)
		assert.NotNil(t, app.active)
		assert.NotNil(t, app.provider)
		assert.NotNil(t, app.pipeline)
		assert.NotNil(t, app.orchestrator)
		assert.NotNil(t, app.logger)
	})

	t.Run("error with invalid store path", func(t *testing.T) {
		// A file where a directory is expected.
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		require.NoError(t, os.WriteFile(tmpFile, []byte("test"), 0o644))

		app, err := NewApp(tmpFile, "./data/policy.pdf", "corpus")
		assert.Error(t, err)
		assert.Nil(t, app)
	})

	t.Run("in-memory store", func(t *testing.T) {
		app, err := NewApp("", "./data/policy.pdf", "corpus", WithInMemoryStore())
		require.NoError(t, err)
		require.NotNil(t, app)
		assert.NoError(t, app.Close())
	})
}

func TestApp_Close(t *testing.T) {
	app, err := NewApp(t.TempDir(), "./data/policy.pdf", "corpus")
	require.NoError(t, err)
	require.NotNil(t, app)

	assert.NoError(t, app.Close())
}

func TestApp_AttachExistingIndex(t *testing.T) {
	ctx := context.Background()

	t.Run("no index yet", func(t *testing.T) {
		app, err := NewApp("", "./data/policy.pdf", "corpus", WithInMemoryStore())
		require.NoError(t, err)
		defer app.Close()

		attached, err := app.AttachExistingIndex(ctx)
		require.NoError(t, err)
		assert.False(t, attached)
		assert.False(t, app.active.Attached())
	})

	t.Run("attaches existing index", func(t *testing.T) {
		app, err := NewApp("", "./data/policy.pdf", "corpus", WithInMemoryStore())
		require.NoError(t, err)
		defer app.Close()

		require.NoError(t, app.store.Create(ctx, "corpus", 8, vecstore.MetricCosine))

		attached, err := app.AttachExistingIndex(ctx)
		require.NoError(t, err)
		assert.True(t, attached)
		require.True(t, app.active.Attached())
		assert.Equal(t, "corpus", app.active.Get().Name())
	})

	t.Run("ignores indexes under other names", func(t *testing.T) {
		app, err := NewApp("", "./data/policy.pdf", "corpus", WithInMemoryStore())
		require.NoError(t, err)
		defer app.Close()

		require.NoError(t, app.store.Create(ctx, "unrelated", 8, vecstore.MetricCosine))

		attached, err := app.AttachExistingIndex(ctx)
		require.NoError(t, err)
		assert.False(t, attached)
	})
}
