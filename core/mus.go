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
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// vectorMUS serializes embedding vectors as length-prefixed raw float32s.
var vectorMUS = ord.NewSliceSer[float32](raw.Float32)

// ChunkMUS is the MUS format serializer for Chunk values stored as
// vector index payloads.
var ChunkMUS = chunkMUS{}

type chunkMUS struct{}

// Marshal writes c into bs and returns the number of bytes written.
// bs must be at least Size(c) bytes long.
func (chunkMUS) Marshal(c Chunk, bs []byte) (n int) {
	n = varint.Uint64.Marshal(uint64(c.Id), bs)
	n += ord.String.Marshal(c.Text, bs[n:])
	n += vectorMUS.Marshal(c.Vector, bs[n:])
	n += varint.Int.Marshal(c.Offset, bs[n:])
	return n
}

// Unmarshal reads a Chunk from bs.
func (chunkMUS) Unmarshal(bs []byte) (c Chunk, n int, err error) {
	id, n, err := varint.Uint64.Unmarshal(bs)
	if err != nil {
		return
	}
	c.Id = ID(id)

	var n1 int
	c.Text, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}

	c.Vector, n1, err = vectorMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}

	c.Offset, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	return
}

// Size returns the serialized size of c in bytes.
func (chunkMUS) Size(c Chunk) (size int) {
	size = varint.Uint64.Size(uint64(c.Id))
	size += ord.String.Size(c.Text)
	size += vectorMUS.Size(c.Vector)
	size += varint.Int.Size(c.Offset)
	return size
}

// Skip advances past one serialized Chunk in bs.
func (chunkMUS) Skip(bs []byte) (n int, err error) {
	n, err = varint.Uint64.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = vectorMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	return
}
