package retrieval

import (
	"sort"
	"strings"

	"github.com/smartborrow/smartborrow-go/corpus"
	"github.com/smartborrow/smartborrow-go/log"
)

// SearchType selects which numerical matching strategies run. It is a closed
// enum: an unknown value runs nothing and yields zero matches.
type SearchType int

const (
	// SearchHybrid runs all four strategies.
	SearchHybrid SearchType = iota
	// SearchExact runs exact value lookup only.
	SearchExact
	// SearchFuzzy runs fuzzy value matching only.
	SearchFuzzy
	// SearchCategory runs category word-overlap matching only.
	SearchCategory
	// SearchContext runs context word-overlap matching only.
	SearchContext
)

// String returns the name of the search type.
func (s SearchType) String() string {
	switch s {
	case SearchHybrid:
		return "hybrid"
	case SearchExact:
		return "exact"
	case SearchFuzzy:
		return "fuzzy"
	case SearchCategory:
		return "category"
	case SearchContext:
		return "context"
	default:
		return "unknown"
	}
}

// Default fuzzy-match threshold and merged-result cap.
const (
	DefaultFuzzyThreshold = 0.8
	maxMergedMatches      = 20
)

// NumericalMatch is a query-time match against one numeric fact. Confidence is
// always in [0,1] by construction of the scoring formulas.
type NumericalMatch struct {
	Value      string   `json:"value"`
	Unit       string   `json:"unit"`
	Category   string   `json:"category"`
	Context    string   `json:"context"`
	Confidence float64  `json:"confidence"`
	ExactMatch bool     `json:"exact_match"`
	QueryTerms []string `json:"query_terms"`
}

// NumericalResults is the per-strategy breakdown of one numerical retrieval.
// AllMatches is the confidence-sorted union capped at 20; TotalMatches counts
// every strategy's matches before the cap.
type NumericalResults struct {
	Query           string           `json:"query"`
	ExactMatches    []NumericalMatch `json:"exact_matches"`
	FuzzyMatches    []NumericalMatch `json:"fuzzy_matches"`
	CategoryMatches []NumericalMatch `json:"category_matches"`
	ContextMatches  []NumericalMatch `json:"context_matches"`
	AllMatches      []NumericalMatch `json:"all_matches"`
	TotalMatches    int              `json:"total_matches"`
}

// NumericalRetriever matches numbers mentioned in queries against a static
// catalog of numeric facts. The indices are built once at construction and never
// mutated, so a single instance is safe for concurrent queries.
type NumericalRetriever struct {
	facts []corpus.NumericalFact

	valueIndex    map[string][]corpus.NumericalFact
	categoryIndex map[string][]corpus.NumericalFact
	unitIndex     map[string][]corpus.NumericalFact

	// Sorted index keys keep map iteration deterministic.
	valueKeys    []string
	categoryKeys []string

	logger log.Logger
}

// NewNumericalRetriever builds the value, category, and unit indices from the
// corpus facts.
func NewNumericalRetriever(c *corpus.Corpus, logger log.Logger) *NumericalRetriever {
	if logger == nil {
		logger = log.GetDefaultLogger()
	}

	r := &NumericalRetriever{
		facts:         c.NumericalFacts,
		valueIndex:    map[string][]corpus.NumericalFact{},
		categoryIndex: map[string][]corpus.NumericalFact{},
		unitIndex:     map[string][]corpus.NumericalFact{},
		logger:        logger,
	}

	for _, fact := range c.NumericalFacts {
		if v := strings.ToLower(fact.Value); v != "" {
			r.valueIndex[v] = append(r.valueIndex[v], fact)
		}
		if cat := strings.ToLower(fact.Category); cat != "" {
			r.categoryIndex[cat] = append(r.categoryIndex[cat], fact)
		}
		if u := strings.ToLower(fact.Unit); u != "" {
			r.unitIndex[u] = append(r.unitIndex[u], fact)
		}
	}

	r.valueKeys = sortedKeys(r.valueIndex)
	r.categoryKeys = sortedKeys(r.categoryIndex)

	logger.Info("built numerical indices: %d values, %d categories, %d units",
		len(r.valueIndex), len(r.categoryIndex), len(r.unitIndex))
	return r
}

// ExactValueMatch finds facts whose value equals an extracted query entity,
// case-insensitively. Matches carry the entity's extraction confidence.
func (r *NumericalRetriever) ExactValueMatch(query string) []NumericalMatch {
	var matches []NumericalMatch

	for _, entity := range ExtractNumericalEntities(query) {
		entityValue := strings.ToLower(entity.Value)
		for _, fact := range r.valueIndex[entityValue] {
			matches = append(matches, NumericalMatch{
				Value:      fact.Value,
				Unit:       fact.Unit,
				Category:   fact.Category,
				Context:    fact.Context,
				Confidence: entity.Confidence,
				ExactMatch: true,
				QueryTerms: []string{entityValue},
			})
		}
	}

	return matches
}

// FuzzyValueMatch finds facts whose value is similar to an extracted query
// entity at or above threshold. Confidence is damped to 80% of the entity's
// extraction confidence.
func (r *NumericalRetriever) FuzzyValueMatch(query string, threshold float64) []NumericalMatch {
	var matches []NumericalMatch

	for _, entity := range ExtractNumericalEntities(query) {
		entityValue := strings.ToLower(entity.Value)
		for _, value := range r.valueKeys {
			if valueSimilarity(entityValue, value) < threshold {
				continue
			}
			for _, fact := range r.valueIndex[value] {
				matches = append(matches, NumericalMatch{
					Value:      fact.Value,
					Unit:       fact.Unit,
					Category:   fact.Category,
					Context:    fact.Context,
					Confidence: entity.Confidence * 0.8,
					ExactMatch: false,
					QueryTerms: []string{entityValue},
				})
			}
		}
	}

	return matches
}

// CategorySearch matches facts whose category shares words with the query.
// Confidence is the overlap fraction of the query word set, so word order in the
// query cannot change the result.
func (r *NumericalRetriever) CategorySearch(query string) []NumericalMatch {
	queryWords := wordSet(query)
	if len(queryWords) == 0 {
		return nil
	}
	queryTerms := sortedWords(queryWords)

	var matches []NumericalMatch
	for _, category := range r.categoryKeys {
		overlap := overlapCount(queryWords, wordSet(category))
		if overlap == 0 {
			continue
		}
		confidence := float64(overlap) / float64(len(queryWords))
		for _, fact := range r.categoryIndex[category] {
			matches = append(matches, NumericalMatch{
				Value:      fact.Value,
				Unit:       fact.Unit,
				Category:   fact.Category,
				Context:    fact.Context,
				Confidence: confidence,
				ExactMatch: false,
				QueryTerms: queryTerms,
			})
		}
	}

	return matches
}

// ContextSearch matches facts whose free-text context shares words with the
// query. Relevance below 0.1 is noise and gets dropped.
func (r *NumericalRetriever) ContextSearch(query string) []NumericalMatch {
	queryWords := wordSet(query)
	if len(queryWords) == 0 {
		return nil
	}
	queryTerms := sortedWords(queryWords)

	var matches []NumericalMatch
	for _, fact := range r.facts {
		if fact.Context == "" {
			continue
		}
		overlap := overlapCount(queryWords, wordSet(fact.Context))
		if overlap == 0 {
			continue
		}
		relevance := float64(overlap) / float64(len(queryWords))
		if relevance <= 0.1 {
			continue
		}
		matches = append(matches, NumericalMatch{
			Value:      fact.Value,
			Unit:       fact.Unit,
			Category:   fact.Category,
			Context:    fact.Context,
			Confidence: relevance,
			ExactMatch: false,
			QueryTerms: queryTerms,
		})
	}

	return matches
}

// Retrieve runs the strategies selected by searchType and merges their matches
// into a confidence-sorted list capped at 20. An empty catalog yields zero
// matches; Retrieve never fails.
func (r *NumericalRetriever) Retrieve(query string, searchType SearchType) NumericalResults {
	results := NumericalResults{Query: query}

	if searchType == SearchExact || searchType == SearchHybrid {
		results.ExactMatches = r.ExactValueMatch(query)
	}
	if searchType == SearchFuzzy || searchType == SearchHybrid {
		results.FuzzyMatches = r.FuzzyValueMatch(query, DefaultFuzzyThreshold)
	}
	if searchType == SearchCategory || searchType == SearchHybrid {
		results.CategoryMatches = r.CategorySearch(query)
	}
	if searchType == SearchContext || searchType == SearchHybrid {
		results.ContextMatches = r.ContextSearch(query)
	}

	results.TotalMatches = len(results.ExactMatches) + len(results.FuzzyMatches) +
		len(results.CategoryMatches) + len(results.ContextMatches)

	all := make([]NumericalMatch, 0, results.TotalMatches)
	all = append(all, results.ExactMatches...)
	all = append(all, results.FuzzyMatches...)
	all = append(all, results.CategoryMatches...)
	all = append(all, results.ContextMatches...)
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Confidence > all[j].Confidence
	})
	if len(all) > maxMergedMatches {
		all = all[:maxMergedMatches]
	}
	results.AllMatches = all

	r.logger.Debug("numerical retrieval completed: %d matches found", results.TotalMatches)
	return results
}

// Stats reports index sizes.
func (r *NumericalRetriever) Stats() map[string]int {
	return map[string]int{
		"total_items":       len(r.facts),
		"unique_values":     len(r.valueIndex),
		"unique_categories": len(r.categoryIndex),
		"unique_units":      len(r.unitIndex),
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
