package rag

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/tmc/langchaingo/llms"

	"github.com/smartborrow/smartborrow-go/corpus"
	"github.com/smartborrow/smartborrow-go/log"
)

const answerPromptTemplate = `You are a financial aid assistant. Answer the question using only the context below.

Context:
%s

Question: %s

Answer:`

// Service is the standard RAG query path: embed the query, retrieve the nearest
// corpus documents, and optionally generate an answer with an LLM. Without a
// model the assembled context is returned as the answer.
type Service struct {
	store    VectorStore
	embedder Embedder
	model    llms.Model
	config   RetrievalConfig
	logger   log.Logger
}

// NewService creates a baseline RAG service. model may be nil; config zero
// values default to K=4, ScoreThreshold=0.
func NewService(store VectorStore, embedder Embedder, model llms.Model, config RetrievalConfig, logger log.Logger) *Service {
	if config.K == 0 {
		config.K = 4
	}
	if logger == nil {
		logger = log.GetDefaultLogger()
	}

	return &Service{
		store:    store,
		embedder: embedder,
		model:    model,
		config:   config,
		logger:   logger,
	}
}

// LoadCorpus derives documents from the knowledge corpus, embeds them, and adds
// them to the vector store. Concept definitions and numeric fact contexts each
// become one document.
func (s *Service) LoadCorpus(ctx context.Context, c *corpus.Corpus) error {
	docs := CorpusDocuments(c)
	if len(docs) == 0 {
		s.logger.Warn("corpus produced no documents to index")
		return nil
	}

	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.Content
	}

	embeddings, err := s.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return fmt.Errorf("failed to embed corpus documents: %w", err)
	}
	for i := range docs {
		docs[i].Embedding = embeddings[i]
	}

	if err := s.store.Add(ctx, docs); err != nil {
		return fmt.Errorf("failed to add corpus documents: %w", err)
	}

	s.logger.Info("indexed %d corpus documents", len(docs))
	return nil
}

// Query runs one standard RAG retrieval. An empty retrieval returns a fixed
// no-information answer with zero confidence rather than an error.
func (s *Service) Query(ctx context.Context, query string) (*QueryResult, error) {
	queryEmbedding, err := s.embedder.EmbedDocument(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	results, err := s.store.Search(ctx, queryEmbedding, s.config.K)
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}

	if s.config.ScoreThreshold > 0 {
		filtered := results[:0]
		for _, r := range results {
			if r.Score >= s.config.ScoreThreshold {
				filtered = append(filtered, r)
			}
		}
		results = filtered
	}

	if len(results) == 0 {
		return &QueryResult{
			Query:   query,
			Answer:  "No relevant information found.",
			Sources: []Document{},
		}, nil
	}

	sources := make([]Document, len(results))
	for i, r := range results {
		sources[i] = r.Document
	}
	retrievalContext := s.buildContext(results)
	confidence := meanScore(results)

	answer := retrievalContext
	if s.model != nil {
		prompt := fmt.Sprintf(answerPromptTemplate, retrievalContext, query)
		generated, err := llms.GenerateFromSinglePrompt(ctx, s.model, prompt)
		if err != nil {
			return nil, fmt.Errorf("answer generation failed: %w", err)
		}
		answer = generated
	}

	return &QueryResult{
		Query:      query,
		Answer:     answer,
		Sources:    sources,
		Context:    retrievalContext,
		Confidence: confidence,
		Metadata: map[string]any{
			"num_documents": len(sources),
			"avg_score":     confidence,
		},
	}, nil
}

// buildContext assembles the retrieved documents into a prompt context block.
func (s *Service) buildContext(results []DocumentSearchResult) string {
	var b strings.Builder
	for i, r := range results {
		fmt.Fprintf(&b, "Document %d:\n", i+1)
		if s.config.IncludeScores {
			fmt.Fprintf(&b, "Score: %.4f\n", r.Score)
		}
		if source, ok := r.Document.Metadata["source"]; ok {
			fmt.Fprintf(&b, "Source: %v\n", source)
		}
		fmt.Fprintf(&b, "Content: %s\n\n", r.Document.Content)
	}
	return b.String()
}

func meanScore(results []DocumentSearchResult) float64 {
	if len(results) == 0 {
		return 0.0
	}
	var total float64
	for _, r := range results {
		total += r.Score
	}
	return total / float64(len(results))
}

// CorpusDocuments flattens the corpus into retrievable documents: one per
// concept (definition plus requirements and procedures) and one per numeric
// fact with context. Document order is deterministic.
func CorpusDocuments(c *corpus.Corpus) []Document {
	var docs []Document

	names := make([]string, 0, len(c.Knowledge))
	for name := range c.Knowledge {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		concept := c.Knowledge[name]
		parts := make([]string, 0, 1+len(concept.Requirements)+len(concept.Procedures))
		if concept.Definition != "" {
			parts = append(parts, concept.Definition)
		}
		parts = append(parts, concept.Requirements...)
		parts = append(parts, concept.Procedures...)

		content := strings.TrimSpace(strings.Join(parts, " "))
		if content == "" {
			continue
		}
		docs = append(docs, Document{
			ID:      "concept:" + name,
			Content: content,
			Metadata: map[string]any{
				"type":   "concept",
				"source": name,
			},
		})
	}

	for i, fact := range c.NumericalFacts {
		if fact.Context == "" {
			continue
		}
		docs = append(docs, Document{
			ID:      fmt.Sprintf("fact:%d", i),
			Content: fact.Context,
			Metadata: map[string]any{
				"type":     "numerical_fact",
				"source":   fact.Document,
				"value":    fact.Value,
				"category": fact.Category,
			},
		})
	}

	return docs
}
