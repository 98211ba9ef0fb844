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


package badger

import (
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/dgraph-io/badger/v4"
	"github.com/veldt/corpusqa/core"
	"github.com/veldt/corpusqa/vecstore"
)

// index is a handle to one named index inside a Store.
type index struct {
	store *Store
	name  string
	dim   int
}

var _ vecstore.Index = (*index)(nil)

// Name returns the index name.
func (ix *index) Name() string {
	return ix.name
}

// Dimension returns the configured embedding width.
func (ix *index) Dimension() int {
	return ix.dim
}

// Upsert stores the chunks' vectors with their text as payload.
// Vectors are normalized on write so cosine similarity reduces to a dot
// product at query time.
func (ix *index) Upsert(ctx context.Context, chunks ...core.Chunk) error {
	for _, chunk := range chunks {
		if len(chunk.Vector) != ix.dim {
			return fmt.Errorf("%w: chunk %d has %d, index %q wants %d",
				vecstore.ErrDimensionMismatch, chunk.Id, len(chunk.Vector), ix.name, ix.dim)
		}
	}

	return ix.store.WithTx(func(tx *badger.Txn) error {
		for _, chunk := range chunks {
			stored := chunk
			stored.Vector = normalize(chunk.Vector)

			bs := make([]byte, core.ChunkMUS.Size(stored))
			core.ChunkMUS.Marshal(stored, bs)

			if err := tx.Set(makeVectorKey(ix.name, stored.Id), bs); err != nil {
				return err
			}
		}
		return nil
	}, true)
}

// Query returns up to k matches ranked by cosine similarity.
func (ix *index) Query(ctx context.Context, vector []float32, k int) ([]core.Match, error) {
	if len(vector) != ix.dim {
		return nil, fmt.Errorf("%w: query has %d, index %q wants %d",
			vecstore.ErrDimensionMismatch, len(vector), ix.name, ix.dim)
	}
	if k < 1 {
		return []core.Match{}, nil
	}

	query := normalize(vector)

	var matches []core.Match
	err := ix.store.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeVectorPrefix(ix.name)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var chunk core.Chunk
			err := iter.Item().Value(func(val []byte) error {
				var err error
				chunk, _, err = core.ChunkMUS.Unmarshal(val)
				if err != nil {
					return fmt.Errorf("%w: %v", vecstore.ErrSerializationFailed, err)
				}
				return nil
			})
			if err != nil {
				return err
			}

			// Stored vectors are normalized; dot product is cosine similarity.
			matches = append(matches, core.Match{
				Id:    chunk.Id,
				Score: dotProduct(query, chunk.Vector),
				Text:  chunk.Text,
			})
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	// Sort by similarity descending
	slices.SortFunc(matches, func(a, b core.Match) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return 0
	})

	if len(matches) > k {
		matches = matches[:k]
	}
	if matches == nil {
		matches = []core.Match{}
	}
	return matches, nil
}

// dotProduct calculates the dot product of two vectors.
func dotProduct(a, b []float32) float32 {
	var sum float32
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	for i := 0; i < minLen; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

// normalize returns a unit-length copy of v. A zero vector is returned as is.
func normalize(v []float32) []float32 {
	var norm float64
	for _, x := range v {
		norm += float64(x) * float64(x)
	}
	if norm == 0 {
		return slices.Clone(v)
	}
	scale := float32(1 / math.Sqrt(norm))
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = x * scale
	}
	return out
}
