package retrieval

import (
	"sort"
	"strings"

	"github.com/smartborrow/smartborrow-go/corpus"
	"github.com/smartborrow/smartborrow-go/log"
	"github.com/smartborrow/smartborrow-go/tfidf"
)

// Thresholds and caps for knowledge retrieval.
const (
	conceptSimilarityThreshold = 0.1
	defaultConceptTopK         = 5
	maxNumericalContext        = 10
	maxLinkedFactsPerConcept   = 5
)

// RelatedConcept is a concept ranked by TF-IDF cosine similarity to a query,
// annotated with the concept's content and linked numeric facts.
type RelatedConcept struct {
	Concept       string                 `json:"concept"`
	Similarity    float64                `json:"similarity"`
	Definition    string                 `json:"definition"`
	Requirements  []string               `json:"requirements"`
	Procedures    []string               `json:"procedures"`
	NumericalData []corpus.NumericalFact `json:"numerical_data"`
}

// ScoredFact is a numeric fact with query-relevance attached.
type ScoredFact struct {
	corpus.NumericalFact
	RelevanceScore float64 `json:"relevance_score"`
}

// CrossDocumentLink ties a related concept to numeric facts whose context
// mentions the concept by name.
type CrossDocumentLink struct {
	Concept       string                 `json:"concept"`
	Similarity    float64                `json:"similarity"`
	NumericalData []corpus.NumericalFact `json:"numerical_data"`
	Definition    string                 `json:"definition"`
	Requirements  []string               `json:"requirements"`
	Procedures    []string               `json:"procedures"`
}

// KnowledgeResults aggregates one knowledge retrieval. TotalResults is the plain
// sum of the three list lengths, without deduplication.
type KnowledgeResults struct {
	Query              string              `json:"query"`
	NumericalContext   []ScoredFact        `json:"numerical_context"`
	RelatedConcepts    []RelatedConcept    `json:"related_concepts"`
	CrossDocumentLinks []CrossDocumentLink `json:"cross_document_links"`
	TotalResults       int                 `json:"total_results"`
}

// KnowledgeRetriever finds concepts semantically related to a query and
// cross-links them to supporting numeric facts. The TF-IDF index is built once
// at construction over each concept's definition, requirements, and procedures.
type KnowledgeRetriever struct {
	knowledge map[string]corpus.Concept
	facts     []corpus.NumericalFact

	vectorizer     *tfidf.Vectorizer
	conceptNames   []string
	conceptVectors []tfidf.Vector

	logger log.Logger
}

// NewKnowledgeRetriever builds the concept TF-IDF index (max 1000 features,
// unigrams and bigrams). Concepts without any text are excluded from the index
// but remain available for lookups.
func NewKnowledgeRetriever(c *corpus.Corpus, logger log.Logger) *KnowledgeRetriever {
	if logger == nil {
		logger = log.GetDefaultLogger()
	}

	r := &KnowledgeRetriever{
		knowledge:  c.Knowledge,
		facts:      c.NumericalFacts,
		vectorizer: tfidf.NewVectorizer(tfidf.WithMaxFeatures(1000), tfidf.WithNgramRange(1, 2)),
		logger:     logger,
	}

	var docs []string
	for _, name := range sortedKeys(c.Knowledge) {
		concept := c.Knowledge[name]
		parts := make([]string, 0, 1+len(concept.Requirements)+len(concept.Procedures))
		if concept.Definition != "" {
			parts = append(parts, concept.Definition)
		}
		parts = append(parts, concept.Requirements...)
		parts = append(parts, concept.Procedures...)

		text := strings.TrimSpace(strings.Join(parts, " "))
		if text == "" {
			continue
		}
		r.conceptNames = append(r.conceptNames, name)
		docs = append(docs, text)
	}

	r.vectorizer.Fit(docs)
	if r.vectorizer.Fitted() {
		r.conceptVectors = make([]tfidf.Vector, len(docs))
		for i, doc := range docs {
			r.conceptVectors[i] = r.vectorizer.Transform(doc)
		}
	}

	logger.Info("built concept embeddings for %d concepts", len(r.conceptNames))
	return r
}

// FindRelatedConcepts ranks concepts by cosine similarity to the query and
// returns up to topK with similarity above 0.1, most similar first. An unfitted
// index (no concept text) yields an empty list.
func (r *KnowledgeRetriever) FindRelatedConcepts(query string, topK int) []RelatedConcept {
	if !r.vectorizer.Fitted() || topK <= 0 {
		return nil
	}

	queryVec := r.vectorizer.Transform(query)

	type scored struct {
		idx int
		sim float64
	}
	candidates := make([]scored, 0, len(r.conceptVectors))
	for i, vec := range r.conceptVectors {
		sim := tfidf.Cosine(queryVec, vec)
		if sim > conceptSimilarityThreshold {
			candidates = append(candidates, scored{idx: i, sim: sim})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].sim > candidates[j].sim
	})
	if len(candidates) > topK {
		candidates = candidates[:topK]
	}

	related := make([]RelatedConcept, 0, len(candidates))
	for _, c := range candidates {
		name := r.conceptNames[c.idx]
		concept := r.knowledge[name]
		related = append(related, RelatedConcept{
			Concept:       name,
			Similarity:    c.sim,
			Definition:    concept.Definition,
			Requirements:  concept.Requirements,
			Procedures:    concept.Procedures,
			NumericalData: concept.NumericalData,
		})
	}
	return related
}

// ExtractNumericalContext scores every numeric fact against the query: +2.0 when
// the fact's value contains a number mentioned in the query, +0.1 per word shared
// between the fact's context and the query, +1.0 when a query word appears in the
// fact's category. Facts with positive relevance are returned, highest first,
// capped at 10.
func (r *KnowledgeRetriever) ExtractNumericalContext(query string) []ScoredFact {
	queryNumbers := queryNumberPattern.FindAllString(query, -1)
	queryWords := wordSet(query)

	var relevant []ScoredFact
	for _, fact := range r.facts {
		var score float64

		for _, num := range queryNumbers {
			if strings.Contains(fact.Value, num) {
				score += 2.0
			}
		}

		if fact.Context != "" {
			score += float64(overlapCount(queryWords, wordSet(fact.Context))) * 0.1
		}

		if fact.Category != "" {
			category := strings.ToLower(fact.Category)
			for w := range queryWords {
				if strings.Contains(category, w) {
					score += 1.0
					break
				}
			}
		}

		if score > 0 {
			relevant = append(relevant, ScoredFact{NumericalFact: fact, RelevanceScore: score})
		}
	}

	sort.SliceStable(relevant, func(i, j int) bool {
		return relevant[i].RelevanceScore > relevant[j].RelevanceScore
	})
	if len(relevant) > maxNumericalContext {
		relevant = relevant[:maxNumericalContext]
	}
	return relevant
}

// CrossDocumentLinking attaches to each top related concept the numeric facts
// whose context mentions the concept name, up to 5 per concept. Concepts with no
// mentioning facts are omitted.
func (r *KnowledgeRetriever) CrossDocumentLinking(query string) []CrossDocumentLink {
	var links []CrossDocumentLink

	for _, concept := range r.FindRelatedConcepts(query, defaultConceptTopK) {
		conceptLower := strings.ToLower(concept.Concept)

		var linked []corpus.NumericalFact
		for _, fact := range r.facts {
			if fact.Context == "" {
				continue
			}
			if strings.Contains(strings.ToLower(fact.Context), conceptLower) {
				linked = append(linked, fact)
				if len(linked) == maxLinkedFactsPerConcept {
					break
				}
			}
		}

		if len(linked) > 0 {
			links = append(links, CrossDocumentLink{
				Concept:       concept.Concept,
				Similarity:    concept.Similarity,
				NumericalData: linked,
				Definition:    concept.Definition,
				Requirements:  concept.Requirements,
				Procedures:    concept.Procedures,
			})
		}
	}

	return links
}

// RetrieveKnowledge runs numerical-context extraction, concept ranking, and
// cross-document linking for one query.
func (r *KnowledgeRetriever) RetrieveKnowledge(query string) KnowledgeResults {
	numericalContext := r.ExtractNumericalContext(query)
	relatedConcepts := r.FindRelatedConcepts(query, defaultConceptTopK)
	crossLinks := r.CrossDocumentLinking(query)

	results := KnowledgeResults{
		Query:              query,
		NumericalContext:   numericalContext,
		RelatedConcepts:    relatedConcepts,
		CrossDocumentLinks: crossLinks,
		TotalResults:       len(numericalContext) + len(relatedConcepts) + len(crossLinks),
	}

	r.logger.Debug("knowledge retrieval completed for query: %s", query)
	return results
}

// ConceptDetails returns a concept's content plus the numeric facts mentioning
// it, or false when the concept is unknown.
func (r *KnowledgeRetriever) ConceptDetails(name string) (RelatedConcept, bool) {
	concept, ok := r.knowledge[name]
	if !ok {
		return RelatedConcept{}, false
	}

	nameLower := strings.ToLower(name)
	var related []corpus.NumericalFact
	for _, fact := range r.facts {
		if strings.Contains(strings.ToLower(fact.Context), nameLower) {
			related = append(related, fact)
			if len(related) == maxNumericalContext {
				break
			}
		}
	}

	return RelatedConcept{
		Concept:       name,
		Definition:    concept.Definition,
		Requirements:  concept.Requirements,
		Procedures:    concept.Procedures,
		NumericalData: related,
	}, true
}
