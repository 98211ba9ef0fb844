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

import "sync"

// Active holds the process-wide attached index handle. Ingestion replaces
// it after a rebuild; retrieval reads it on every search. The handle lives
// for the process lifetime once attached.
type Active struct {
	mu  sync.RWMutex
	idx Index
}

// NewActive creates an empty holder.
func NewActive() *Active {
	return &Active{}
}

// Attach replaces the held index.
func (a *Active) Attach(idx Index) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.idx = idx
}

// Get returns the held index, or nil if none is attached.
func (a *Active) Get() Index {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.idx
}

// Attached reports whether an index is held.
func (a *Active) Attached() bool {
	return a.Get() != nil
}
