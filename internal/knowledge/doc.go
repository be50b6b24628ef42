// Package knowledge stores and retrieves knowledge base passages.
//
// A Passage is an immutable fragment of an uploaded course document together
// with its provenance metadata. Passages are embedded once at write time and
// persisted in PostgreSQL with pgvector; similarity search uses cosine
// distance over a fixed 768-dimension embedding space. Every passage in the
// store must come from the same embedder model, otherwise similarity ranking
// silently degrades, which is why the dimension is pinned in both the schema
// and VectorDimension.
package knowledge
