package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartborrow/smartborrow-go/corpus"
)

func TestKnowledgeRetriever_FindRelatedConcepts(t *testing.T) {
	r := NewKnowledgeRetriever(testCorpus(), quietLogger())

	t.Run("ranks the defining concept first", func(t *testing.T) {
		pell := testCorpus().Knowledge["pell_grant"]
		related := r.FindRelatedConcepts(pell.Definition, 5)
		require.NotEmpty(t, related)
		assert.Equal(t, "pell_grant", related[0].Concept)

		for _, other := range related[1:] {
			assert.Less(t, other.Similarity, related[0].Similarity)
		}
	})

	t.Run("annotates concept content", func(t *testing.T) {
		related := r.FindRelatedConcepts("maximum pell grant amount", 5)
		require.NotEmpty(t, related)
		assert.NotEmpty(t, related[0].Definition)
		assert.NotEmpty(t, related[0].Requirements)
		assert.NotEmpty(t, related[0].NumericalData)
	})

	t.Run("unrelated query yields nothing", func(t *testing.T) {
		assert.Empty(t, r.FindRelatedConcepts("quantum chromodynamics lattice", 5))
	})

	t.Run("respects topK", func(t *testing.T) {
		related := r.FindRelatedConcepts("federal loans and grants for students", 1)
		assert.LessOrEqual(t, len(related), 1)
	})
}

func TestKnowledgeRetriever_ExtractNumericalContext(t *testing.T) {
	r := NewKnowledgeRetriever(testCorpus(), quietLogger())

	t.Run("literal number mention dominates", func(t *testing.T) {
		facts := r.ExtractNumericalContext("is it $7,395 now")
		require.NotEmpty(t, facts)
		assert.Equal(t, "$7,395", facts[0].Value)
		assert.GreaterOrEqual(t, facts[0].RelevanceScore, 2.0)
	})

	t.Run("category mention scores", func(t *testing.T) {
		facts := r.ExtractNumericalContext("pell_grant maximum")
		require.NotEmpty(t, facts)
		assert.Equal(t, "pell_grant", facts[0].Category)
	})

	t.Run("sorted descending and capped", func(t *testing.T) {
		facts := r.ExtractNumericalContext("loans grants interest subsidized pell")
		assert.LessOrEqual(t, len(facts), 10)
		for i := 1; i < len(facts); i++ {
			assert.GreaterOrEqual(t, facts[i-1].RelevanceScore, facts[i].RelevanceScore)
		}
	})
}

func TestKnowledgeRetriever_CrossDocumentLinking(t *testing.T) {
	c := testCorpus()
	// Give one fact a context that names the concept verbatim.
	c.NumericalFacts = append(c.NumericalFacts, corpus.NumericalFact{
		Value:    "$6,895",
		Unit:     "dollars",
		Category: "pell_grant",
		Context:  "the pell_grant maximum award was $6,895 for 2022-23",
		Document: "archive.pdf",
	})
	r := NewKnowledgeRetriever(c, quietLogger())

	links := r.CrossDocumentLinking("maximum pell grant award amount")
	require.NotEmpty(t, links)
	assert.Equal(t, "pell_grant", links[0].Concept)
	require.NotEmpty(t, links[0].NumericalData)
	assert.Equal(t, "$6,895", links[0].NumericalData[0].Value)
	assert.LessOrEqual(t, len(links[0].NumericalData), 5)
}

func TestKnowledgeRetriever_RetrieveKnowledge(t *testing.T) {
	r := NewKnowledgeRetriever(testCorpus(), quietLogger())

	results := r.RetrieveKnowledge("What is the maximum Pell Grant amount?")
	assert.Equal(t, "What is the maximum Pell Grant amount?", results.Query)
	assert.Equal(t,
		len(results.NumericalContext)+len(results.RelatedConcepts)+len(results.CrossDocumentLinks),
		results.TotalResults)
	assert.NotEmpty(t, results.RelatedConcepts)
}

func TestKnowledgeRetriever_EmptyCorpus(t *testing.T) {
	r := NewKnowledgeRetriever(emptyCorpus(), quietLogger())

	results := r.RetrieveKnowledge("anything at all")
	assert.Zero(t, results.TotalResults)
	assert.Empty(t, results.RelatedConcepts)
	assert.Empty(t, results.NumericalContext)
	assert.Empty(t, results.CrossDocumentLinks)
}

func TestKnowledgeRetriever_ConceptDetails(t *testing.T) {
	r := NewKnowledgeRetriever(testCorpus(), quietLogger())

	t.Run("known concept", func(t *testing.T) {
		details, ok := r.ConceptDetails("pell_grant")
		require.True(t, ok)
		assert.Equal(t, "pell_grant", details.Concept)
		assert.NotEmpty(t, details.Definition)
	})

	t.Run("unknown concept", func(t *testing.T) {
		_, ok := r.ConceptDetails("crypto_loans")
		assert.False(t, ok)
	})
}
