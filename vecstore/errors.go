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

import "errors"

var (
	// ErrIndexNotFound indicates the named index does not exist.
	ErrIndexNotFound = errors.New("index not found")

	// ErrIndexExists indicates an index with that name already exists.
	ErrIndexExists = errors.New("index already exists")

	// ErrUnsupportedMetric indicates a metric other than cosine was requested.
	ErrUnsupportedMetric = errors.New("unsupported similarity metric")

	// ErrDimensionMismatch indicates a vector whose length differs from
	// the index's configured dimension.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrStoreClosed indicates the store backend is closed.
	ErrStoreClosed = errors.New("store is closed")

	// ErrSerializationFailed indicates a payload could not be decoded.
	ErrSerializationFailed = errors.New("serialization failed")
)
