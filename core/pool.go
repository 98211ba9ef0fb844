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


package core

import "sync"

// ContextPool accumulates unique chunk texts across retrieval calls.
// Membership is whole-string equality, never substring or fuzzy matching.
// Safe for concurrent use; insertion order is not preserved because the
// consumers treat the pool as an unordered set.
type ContextPool struct {
	mu    sync.Mutex
	texts map[string]struct{}
}

// NewContextPool creates an empty pool.
func NewContextPool() *ContextPool {
	return &ContextPool{texts: make(map[string]struct{})}
}

// Add inserts the given texts, collapsing duplicates by content equality.
// Empty strings are ignored.
func (p *ContextPool) Add(texts ...string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, t := range texts {
		if t == "" {
			continue
		}
		p.texts[t] = struct{}{}
	}
}

// Merge adds every text held by other into p.
func (p *ContextPool) Merge(other *ContextPool) {
	if other == nil {
		return
	}
	p.Add(other.Texts()...)
}

// Texts returns a snapshot of the unique texts in the pool.
func (p *ContextPool) Texts() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.texts))
	for t := range p.texts {
		out = append(out, t)
	}
	return out
}

// Len returns the number of unique texts in the pool.
func (p *ContextPool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.texts)
}
