package rag

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
)

// InMemoryVectorStore keeps embedded documents in memory and searches them by
// cosine similarity. Safe for concurrent use.
type InMemoryVectorStore struct {
	mu   sync.RWMutex
	docs []Document
}

// NewInMemoryVectorStore creates an empty in-memory vector store.
func NewInMemoryVectorStore() *InMemoryVectorStore {
	return &InMemoryVectorStore{}
}

// Add stores documents. Every document must already carry an embedding.
func (s *InMemoryVectorStore) Add(ctx context.Context, docs []Document) error {
	for _, doc := range docs {
		if len(doc.Embedding) == 0 {
			return fmt.Errorf("document %q has no embedding", doc.ID)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = append(s.docs, docs...)
	return nil
}

// Search returns the k documents most similar to the embedding, best first.
// Ties keep insertion order.
func (s *InMemoryVectorStore) Search(ctx context.Context, embedding []float32, k int) ([]DocumentSearchResult, error) {
	if k <= 0 {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]DocumentSearchResult, 0, len(s.docs))
	for _, doc := range s.docs {
		results = append(results, DocumentSearchResult{
			Document: doc,
			Score:    cosineSimilarity(embedding, doc.Embedding),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// Count reports the number of stored documents.
func (s *InMemoryVectorStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// cosineSimilarity computes cosine similarity between two embeddings. Vectors of
// mismatched length or zero norm score 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0.0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
