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
	"log/slog"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/veldt/corpusqa/vecstore"
)

// Store implements vecstore.Store on a BadgerDB instance. Each named
// index is a manifest record plus a key range of vector records.
type Store struct {
	db     *badger.DB
	logger *slog.Logger
}

var _ vecstore.Store = (*Store)(nil)

// badgerLoggerAdapter adapts slog.Logger to badger.Logger interface.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Info(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// OpenStore opens a BadgerDB-backed vector store at the specified path.
// Creates the directory if it doesn't exist. With inMemory set, nothing
// touches disk; used by tests.
func OpenStore(filePath string, inMemory bool) (*Store, error) {
	var opts badger.Options

	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		info, err := os.Stat(filePath)
		if err != nil {
			if os.IsNotExist(err) {
				if err := os.MkdirAll(filePath, 0755); err != nil {
					return nil, err
				}
				info, err = os.Stat(filePath)
				if err != nil {
					return nil, err
				}
			} else {
				return nil, err
			}
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", filePath)
		}
		opts = badger.DefaultOptions(filePath)
	}

	opts.Logger = &badgerLoggerAdapter{logger: slog.Default()}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Store{
		db:     db,
		logger: slog.Default().With("component", "vecstore"),
	}, nil
}

// Close closes the BadgerDB database.
func (s *Store) Close() error {
	return s.db.Close()
}

// WithTx executes a function within a BadgerDB transaction.
// If isWrite is true, creates a read-write transaction.
// The transaction is automatically discarded if fn returns an error.
func (s *Store) WithTx(fn func(tx *badger.Txn) error, isWrite bool) error {
	tx := s.db.NewTransaction(isWrite)
	defer tx.Discard()
	if err := fn(tx); err != nil {
		return err
	}
	if isWrite {
		return tx.Commit()
	}
	return nil
}

// Create creates a new empty index with the given name and dimension.
func (s *Store) Create(ctx context.Context, name string, dim int, metric string) error {
	if metric != vecstore.MetricCosine {
		return fmt.Errorf("%w: %q", vecstore.ErrUnsupportedMetric, metric)
	}
	if dim < 1 {
		return fmt.Errorf("%w: dimension %d", vecstore.ErrDimensionMismatch, dim)
	}

	m := manifest{
		Dimension: dim,
		Metric:    metric,
		CreatedAt: time.Now().UnixMicro(),
	}

	return s.WithTx(func(tx *badger.Txn) error {
		key := makeManifestKey(name)
		_, err := tx.Get(key)
		if err == nil {
			return fmt.Errorf("%w: %q", vecstore.ErrIndexExists, name)
		}
		if err != badger.ErrKeyNotFound {
			return err
		}
		return tx.Set(key, marshalManifest(m))
	}, true)
}

// Delete removes the named index and all its vectors.
func (s *Store) Delete(ctx context.Context, name string) error {
	err := s.WithTx(func(tx *badger.Txn) error {
		key := makeManifestKey(name)
		if _, err := tx.Get(key); err != nil {
			if err == badger.ErrKeyNotFound {
				return fmt.Errorf("%w: %q", vecstore.ErrIndexNotFound, name)
			}
			return err
		}
		return tx.Delete(key)
	}, true)
	if err != nil {
		return err
	}

	// Vector records can exceed one transaction; drop the whole key range.
	if err := s.db.DropPrefix(makeVectorPrefix(name)); err != nil {
		return err
	}

	s.logger.Info("deleted index", "index", name)
	return nil
}

// Ready reports whether the named index can accept upserts and queries.
// A badger index is ready as soon as its manifest exists; the poll
// contract is kept for store implementations with provisioning delay.
func (s *Store) Ready(ctx context.Context, name string) (bool, error) {
	_, err := s.readManifest(name)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// List returns the names of all existing indexes.
func (s *Store) List(ctx context.Context) ([]string, error) {
	var names []string
	err := s.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(manifestPrefix + ":")
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			names = append(names, nameFromManifestKey(iter.Item().Key()))
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return names, nil
}

// Open returns a handle to the named index.
func (s *Store) Open(ctx context.Context, name string) (vecstore.Index, error) {
	m, err := s.readManifest(name)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, fmt.Errorf("%w: %q", vecstore.ErrIndexNotFound, name)
		}
		return nil, err
	}

	return &index{
		store: s,
		name:  name,
		dim:   m.Dimension,
	}, nil
}

func (s *Store) readManifest(name string) (manifest, error) {
	var m manifest
	err := s.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeManifestKey(name))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			var err error
			m, err = unmarshalManifest(val)
			return err
		})
	}, false)
	return m, err
}
