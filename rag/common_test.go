package rag

import (
	"context"
	"hash/fnv"
	"strings"

	"github.com/smartborrow/smartborrow-go/corpus"
	"github.com/smartborrow/smartborrow-go/log"
)

const fakeEmbeddingDim = 16

// fakeEmbedder produces deterministic bag-of-words embeddings: each word is
// hashed into one of 16 buckets, so texts sharing words get similar vectors.
type fakeEmbedder struct{}

func (fakeEmbedder) EmbedDocument(ctx context.Context, text string) ([]float32, error) {
	return hashEmbed(text), nil
}

func (fakeEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		embeddings[i] = hashEmbed(text)
	}
	return embeddings, nil
}

func hashEmbed(text string) []float32 {
	vec := make([]float32, fakeEmbeddingDim)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		h.Write([]byte(word))
		vec[h.Sum32()%fakeEmbeddingDim]++
	}
	// Guarantee a nonzero vector even for empty text.
	vec[0] += 1e-3
	return vec
}

// failingEmbedder always errors.
type failingEmbedder struct{ err error }

func (f failingEmbedder) EmbedDocument(ctx context.Context, text string) ([]float32, error) {
	return nil, f.err
}

func (f failingEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	return nil, f.err
}

func ragTestCorpus() *corpus.Corpus {
	pellFact := corpus.NumericalFact{
		Value:    "$7,395",
		Unit:     "dollars",
		Category: "pell_grant",
		Context:  "maximum Pell Grant amount for 2024-25 is $7,395",
		Document: "federal_pell_grant_program.pdf",
	}
	return &corpus.Corpus{
		NumericalFacts: []corpus.NumericalFact{pellFact},
		Knowledge: map[string]corpus.Concept{
			"pell_grant": {
				Definition:      "The Federal Pell Grant is need-based aid for undergraduate students.",
				Requirements:    []string{"Demonstrate exceptional financial need through the FAFSA"},
				NumericalData:   []corpus.NumericalFact{pellFact},
				SourceDocuments: []string{"federal_pell_grant_program.pdf"},
			},
		},
		ComplaintCategories: map[string]corpus.ComplaintCategory{},
		FAQs: []corpus.FAQ{
			{
				Question: "What is the maximum Pell Grant amount?",
				Answer:   "The maximum Pell Grant award for the 2024-25 award year is $7,395.",
				Category: "grants",
			},
		},
		ExpandedCategories: map[string]corpus.ExpandedCategory{},
	}
}

func ragQuietLogger() log.Logger {
	return &log.NoOpLogger{}
}
