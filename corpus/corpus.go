// Package corpus defines the static knowledge stores consumed by the retrieval
// engine: numeric facts, structured financial-aid concepts, complaint taxonomies,
// FAQ entries, and expanded query categories.
//
// All stores are produced by an offline ingestion pipeline as JSON files, loaded
// once at process start, and treated as immutable afterwards. Retrievers receive a
// *Corpus at construction; nothing in this package mutates a loaded corpus.
package corpus

// NumericalFact is a single extracted numeric data point, such as a loan limit or
// an interest rate, with the surrounding context it was extracted from.
// Duplicates across documents are expected and scored independently.
type NumericalFact struct {
	Value         string `json:"value"`
	Unit          string `json:"unit"`
	Category      string `json:"category"`
	Context       string `json:"context"`
	Document      string `json:"document"`
	PageReference string `json:"page_reference,omitempty"`
}

// Concept is a named financial-aid topic (e.g. "pell_grant") with its definition,
// eligibility requirements, procedures, and linked numeric facts.
type Concept struct {
	Definition      string          `json:"definition"`
	Requirements    []string        `json:"requirements"`
	Procedures      []string        `json:"procedures"`
	RelatedConcepts []string        `json:"related_concepts"`
	NumericalData   []NumericalFact `json:"numerical_data"`
	SourceDocuments []string        `json:"source_documents"`
}

// ComplaintCategory summarizes one category of consumer complaints. It is used
// only for query intent classification, never for answer content.
type ComplaintCategory struct {
	ComplaintCount  int      `json:"complaint_count"`
	Percentage      float64  `json:"percentage"`
	CommonKeywords  []string `json:"common_keywords"`
	CommonCompanies []string `json:"common_companies"`
	CommonIssues    []string `json:"common_issues"`
}

// FAQ is a single question/answer pair derived from complaint narratives.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category"`
}

// ExpandedCategory carries synthetic keyword expansions for one complaint
// category, used to generate alternative query phrasings.
type ExpandedCategory struct {
	OriginalCategory string   `json:"original_category"`
	ExpandedKeywords []string `json:"expanded_keywords"`
	SimilarScenarios []string `json:"similar_scenarios"`
}

// Corpus aggregates every static store the retrievers depend on. A zero-valued
// Corpus is usable: every retriever degrades to empty results on empty stores.
type Corpus struct {
	NumericalFacts      []NumericalFact
	Knowledge           map[string]Concept
	ComplaintCategories map[string]ComplaintCategory
	FAQs                []FAQ
	ExpandedCategories  map[string]ExpandedCategory
}

// Stats reports the size of each store, mirroring what the retrievers log at
// construction time.
type Stats struct {
	NumericalFacts      int `json:"numerical_facts"`
	Concepts            int `json:"concepts"`
	ComplaintCategories int `json:"complaint_categories"`
	FAQs                int `json:"faq_entries"`
	ExpandedCategories  int `json:"expanded_categories"`
}

// Stats returns the store sizes of the corpus.
func (c *Corpus) Stats() Stats {
	return Stats{
		NumericalFacts:      len(c.NumericalFacts),
		Concepts:            len(c.Knowledge),
		ComplaintCategories: len(c.ComplaintCategories),
		FAQs:                len(c.FAQs),
		ExpandedCategories:  len(c.ExpandedCategories),
	}
}
