// Package vecstore defines the vector index service consumed by the
// ingestion and retrieval layers: named indexes with a fixed embedding
// dimension and cosine metric, batch upserts carrying chunk text payloads,
// and similarity queries.
//
// The badger subpackage provides the persistent implementation.
package vecstore
