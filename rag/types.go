package rag

import "context"

// Document is one retrievable unit of corpus text.
type Document struct {
	ID        string         `json:"id"`
	Content   string         `json:"content"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Embedding []float32      `json:"embedding,omitempty"`
}

// DocumentSearchResult pairs a document with its similarity score.
type DocumentSearchResult struct {
	Document Document `json:"document"`
	Score    float64  `json:"score"`
}

// Embedder turns text into embedding vectors.
type Embedder interface {
	EmbedDocument(ctx context.Context, text string) ([]float32, error)
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
}

// VectorStore stores embedded documents and answers nearest-neighbor queries.
type VectorStore interface {
	Add(ctx context.Context, docs []Document) error
	Search(ctx context.Context, embedding []float32, k int) ([]DocumentSearchResult, error)
	Count() int
}

// RetrievalConfig controls one vector retrieval.
type RetrievalConfig struct {
	K              int     `json:"k"`
	ScoreThreshold float64 `json:"score_threshold"`
	IncludeScores  bool    `json:"include_scores"`
}

// QueryResult is the outcome of one baseline RAG query.
type QueryResult struct {
	Query      string         `json:"query"`
	Answer     string         `json:"answer"`
	Sources    []Document     `json:"sources"`
	Context    string         `json:"context"`
	Confidence float64        `json:"confidence"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}
