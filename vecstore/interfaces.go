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


package vecstore

import (
	"context"

	"github.com/veldt/corpusqa/core"
)

// MetricCosine is the only supported similarity metric. Vectors are
// normalized on write so queries reduce to a dot product.
const MetricCosine = "cosine"

// Store manages named vector indexes.
// Implementations must be thread-safe for concurrent use.
type Store interface {
	// Create creates a new empty index with the given name, embedding
	// dimension and metric. Returns ErrIndexExists if the name is taken
	// and ErrUnsupportedMetric for anything but MetricCosine.
	Create(ctx context.Context, name string, dim int, metric string) error

	// Delete removes the named index and all its vectors.
	// Deleting an absent index returns ErrIndexNotFound.
	Delete(ctx context.Context, name string) error

	// Ready reports whether the named index is ready to accept upserts
	// and queries. Callers poll this after Create.
	Ready(ctx context.Context, name string) (bool, error)

	// List returns the names of all existing indexes.
	List(ctx context.Context) ([]string, error)

	// Open returns a handle to the named index.
	// Returns ErrIndexNotFound if it does not exist.
	Open(ctx context.Context, name string) (Index, error)

	// Close releases the store's resources.
	Close() error
}

// Index is a handle to one named vector index.
// Implementations must be thread-safe for concurrent use.
type Index interface {
	// Name returns the index name.
	Name() string

	// Dimension returns the configured embedding width.
	Dimension() int

	// Upsert stores the chunks' vectors with their text as payload.
	// A chunk whose vector length differs from the index dimension is
	// rejected with ErrDimensionMismatch. Re-upserting an existing ID
	// overwrites it.
	Upsert(ctx context.Context, chunks ...core.Chunk) error

	// Query returns up to k matches ranked by cosine similarity to the
	// given vector, each carrying its stored chunk text. An empty index
	// yields an empty slice, not an error.
	Query(ctx context.Context, vector []float32, k int) ([]core.Match, error)
}
