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

import (
	"encoding/binary"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// Chunk IDs are generated by content hashing so that identical text
// always maps to the same identity.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Chunk is a bounded slice of extracted corpus text together with its
// embedding vector. Chunks are produced once per ingestion and are
// immutable afterwards. Identity is the content-hash ID; deduplication
// across retrieval calls compares whole Text strings.
type Chunk struct {
	Id     ID
	Text   string
	Vector []float32 // Embedding; length must equal the index dimension
	Offset int       // Byte offset of the chunk start in the source text
}

// Match is a ranked result from a vector index query.
type Match struct {
	Id    ID
	Score float32
	Text  string
}

// ResearchPlan maps each sub-question to the hypothetical answers
// generated for it. The hypothetical answers exist only to improve
// retrieval similarity and are never shown to users.
//
// A plan is never empty: when planning fails, callers fall back to
// IdentityPlan.
type ResearchPlan map[string][]string

// IdentityPlan returns the minimal valid plan for a question: the
// question itself as its only sub-question and only hypothetical answer.
func IdentityPlan(question string) ResearchPlan {
	return ResearchPlan{question: []string{question}}
}

// Validate reports whether the plan satisfies the ResearchPlan contract.
func (p ResearchPlan) Validate() error {
	if len(p) == 0 {
		return ErrEmptyPlan
	}
	for sub, hypos := range p {
		if sub == "" {
			return ErrEmptySubQuestion
		}
		if len(hypos) == 0 {
			return ErrEmptyHypotheticals
		}
	}
	return nil
}
