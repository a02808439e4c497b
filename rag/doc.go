// Package rag implements the retrieval-augmented generation layer: a standard
// vector-store query path (Service), an OpenAI embedder, an in-memory vector
// store, markdown answer rendering, and an AdvancedService that runs hybrid
// retrieval side by side with the standard path, A/B tests the two, and
// persists evaluation results.
package rag
