package retrieval

import (
	"fmt"
	"sort"
	"strings"

	"github.com/smartborrow/smartborrow-go/corpus"
	"github.com/smartborrow/smartborrow-go/log"
	"github.com/smartborrow/smartborrow-go/tfidf"
)

// Channel weights for the combined score. A channel contributes only when it
// found something; absent channels are omitted without renormalizing, so the
// combined score is a lower bound rather than a probability.
const (
	knowledgeWeight = 0.4
	numericalWeight = 0.3
	complaintWeight = 0.2
	faqWeight       = 0.1

	// Per-channel saturation points: results beyond these counts stop raising
	// the channel's share of the combined score.
	knowledgeSaturation = 10.0
	numericalSaturation = 20.0
	faqSaturation       = 5.0

	intentSimilarityThreshold = 0.1
	maxAlternateIntents       = 3
	defaultFAQTopK            = 5
	expansionKeywordCount     = 3
)

// Retrieval method names reported in HybridResult.
const (
	MethodKnowledge = "knowledge"
	MethodNumerical = "numerical"
	MethodComplaint = "complaint"
	MethodFAQ       = "faq"
	MethodHybrid    = "hybrid"
	MethodError     = "error"
)

// Intent is one complaint category matched to a query.
type Intent struct {
	Category       string   `json:"category"`
	Confidence     float64  `json:"confidence"`
	ComplaintCount int      `json:"complaint_count"`
	CommonKeywords []string `json:"common_keywords"`
	CommonIssues   []string `json:"common_issues"`
}

// IntentClassification is the outcome of complaint-taxonomy intent matching.
// When nothing clears the similarity threshold the intent falls back to
// "general" with confidence 0.5.
type IntentClassification struct {
	Intent     string   `json:"intent"`
	Confidence float64  `json:"confidence"`
	AllIntents []Intent `json:"all_intents,omitempty"`
}

// FAQMatch is an FAQ entry with keyword-overlap relevance attached.
type FAQMatch struct {
	corpus.FAQ
	RelevanceScore float64 `json:"relevance_score"`
}

// ComplaintResults carries the intent signal and query expansions attached to a
// hybrid result when complaint data is in use.
type ComplaintResults struct {
	IntentClassification IntentClassification `json:"intent_classification"`
	RelevantCategories   []Intent             `json:"relevant_categories"`
	QueryExpansion       []string             `json:"query_expansion"`
}

// FAQResults carries FAQ keyword matches for a hybrid result.
type FAQResults struct {
	Matches      []FAQMatch `json:"matches"`
	TotalMatches int        `json:"total_matches"`
}

// HybridResult is the fused outcome of one hybrid retrieval. CombinedScore is in
// [0,1]; RetrievalMethod names the dominant channel, "hybrid" when every channel
// came back empty, or "error" when retrieval failed internally.
type HybridResult struct {
	Query            string           `json:"query"`
	KnowledgeResults KnowledgeResults `json:"knowledge_results"`
	NumericalResults NumericalResults `json:"numerical_results"`
	ComplaintResults ComplaintResults `json:"complaint_results"`
	FAQResults       FAQResults       `json:"faq_results"`
	CombinedScore    float64          `json:"combined_score"`
	RetrievalMethod  string           `json:"retrieval_method"`
}

// HybridRetriever fuses knowledge, numerical, complaint-intent, and FAQ
// retrieval into one scored, explainable result.
type HybridRetriever struct {
	knowledge *KnowledgeRetriever
	numerical *NumericalRetriever

	complaintCategories map[string]corpus.ComplaintCategory
	faqs                []corpus.FAQ
	expandedCategories  map[string]corpus.ExpandedCategory
	expandedNames       []string

	intentVectorizer *tfidf.Vectorizer
	intentNames      []string
	intentVectors    []tfidf.Vector

	logger log.Logger
}

// NewHybridRetriever builds the component retrievers and the complaint-intent
// TF-IDF index (max 500 features over category keywords and issues).
func NewHybridRetriever(c *corpus.Corpus, logger log.Logger) *HybridRetriever {
	if logger == nil {
		logger = log.GetDefaultLogger()
	}

	h := &HybridRetriever{
		knowledge:           NewKnowledgeRetriever(c, logger),
		numerical:           NewNumericalRetriever(c, logger),
		complaintCategories: c.ComplaintCategories,
		faqs:                c.FAQs,
		expandedCategories:  c.ExpandedCategories,
		expandedNames:       sortedKeys(c.ExpandedCategories),
		intentVectorizer:    tfidf.NewVectorizer(tfidf.WithMaxFeatures(500), tfidf.WithNgramRange(1, 2)),
		logger:              logger,
	}

	var docs []string
	for _, name := range sortedKeys(c.ComplaintCategories) {
		category := c.ComplaintCategories[name]
		parts := append([]string{}, category.CommonKeywords...)
		parts = append(parts, category.CommonIssues...)

		text := strings.TrimSpace(strings.Join(parts, " "))
		if text == "" {
			continue
		}
		h.intentNames = append(h.intentNames, name)
		docs = append(docs, text)
	}

	h.intentVectorizer.Fit(docs)
	if h.intentVectorizer.Fitted() {
		h.intentVectors = make([]tfidf.Vector, len(docs))
		for i, doc := range docs {
			h.intentVectors[i] = h.intentVectorizer.Transform(doc)
		}
	}

	logger.Info("built complaint embeddings for %d categories", len(h.intentNames))
	return h
}

// ClassifyQueryIntent maps a query to the closest complaint category by TF-IDF
// cosine similarity, with up to 3 alternates above the threshold. Used as a
// routing signal, never for answer content.
func (h *HybridRetriever) ClassifyQueryIntent(query string) IntentClassification {
	general := IntentClassification{Intent: "general", Confidence: 0.5}
	if !h.intentVectorizer.Fitted() {
		return general
	}

	queryVec := h.intentVectorizer.Transform(query)

	type scored struct {
		idx int
		sim float64
	}
	candidates := make([]scored, 0, len(h.intentVectors))
	for i, vec := range h.intentVectors {
		sim := tfidf.Cosine(queryVec, vec)
		if sim > intentSimilarityThreshold {
			candidates = append(candidates, scored{idx: i, sim: sim})
		}
	}
	if len(candidates) == 0 {
		return general
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].sim > candidates[j].sim
	})
	if len(candidates) > maxAlternateIntents {
		candidates = candidates[:maxAlternateIntents]
	}

	intents := make([]Intent, 0, len(candidates))
	for _, c := range candidates {
		name := h.intentNames[c.idx]
		category := h.complaintCategories[name]
		intents = append(intents, Intent{
			Category:       name,
			Confidence:     c.sim,
			ComplaintCount: category.ComplaintCount,
			CommonKeywords: category.CommonKeywords,
			CommonIssues:   category.CommonIssues,
		})
	}

	return IntentClassification{
		Intent:     intents[0].Category,
		Confidence: intents[0].Confidence,
		AllIntents: intents,
	}
}

// SearchFAQs scores FAQ entries by keyword overlap: question overlap counts
// half-weight, answer overlap 0.3, and a query word appearing in the category
// adds a full point. Returns up to topK matches, most relevant first.
func (h *HybridRetriever) SearchFAQs(query string, topK int) []FAQMatch {
	if len(h.faqs) == 0 || topK <= 0 {
		return nil
	}

	queryWords := wordSet(query)

	var matches []FAQMatch
	for _, faq := range h.faqs {
		var score float64

		if faq.Question != "" {
			score += float64(overlapCount(queryWords, wordSet(faq.Question))) * 0.5
		}
		if faq.Answer != "" {
			score += float64(overlapCount(queryWords, wordSet(faq.Answer))) * 0.3
		}
		if faq.Category != "" {
			category := strings.ToLower(faq.Category)
			for w := range queryWords {
				if strings.Contains(category, w) {
					score += 1.0
					break
				}
			}
		}

		if score > 0 {
			matches = append(matches, FAQMatch{FAQ: faq, RelevanceScore: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].RelevanceScore > matches[j].RelevanceScore
	})
	if len(matches) > topK {
		matches = matches[:topK]
	}
	return matches
}

// ExpandQuery returns the query plus one variant per expanded category whose
// keyword set overlaps the query, with the category's top-3 keywords appended.
// The variants are reported to callers as context; they are not re-fed into
// scoring.
func (h *HybridRetriever) ExpandQuery(query string) []string {
	expanded := []string{query}
	queryWords := wordSet(query)

	for _, name := range h.expandedNames {
		category := h.expandedCategories[name]
		categoryText := name + " " + strings.Join(category.ExpandedKeywords, " ")
		if overlapCount(queryWords, wordSet(categoryText)) == 0 {
			continue
		}

		keywords := category.ExpandedKeywords
		if len(keywords) > expansionKeywordCount {
			keywords = keywords[:expansionKeywordCount]
		}
		expanded = append(expanded, query+" "+strings.Join(keywords, " "))
	}

	return expanded
}

// RetrieveHybrid runs every retrieval channel for the query and fuses them into
// one scored result. Channel failures never escape: an internal panic is
// converted into a zero-valued result tagged "error", returned alongside the
// error so callers can still tell failure apart from an empty corpus.
func (h *HybridRetriever) RetrieveHybrid(query string, useFAQ, useComplaints bool) (result HybridResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("hybrid retrieval failed: %v", r)
			h.logger.Error("error in hybrid retrieval: %v", r)
			result = HybridResult{Query: query, RetrievalMethod: MethodError}
		}
	}()

	intent := h.ClassifyQueryIntent(query)
	expansions := h.ExpandQuery(query)

	knowledgeResults := h.knowledge.RetrieveKnowledge(query)
	numericalResults := h.numerical.Retrieve(query, SearchHybrid)

	var complaintResults ComplaintResults
	if useComplaints {
		complaintResults = ComplaintResults{
			IntentClassification: intent,
			RelevantCategories:   intent.AllIntents,
			QueryExpansion:       expansions,
		}
	}

	var faqResults FAQResults
	if useFAQ {
		matches := h.SearchFAQs(query, defaultFAQTopK)
		faqResults = FAQResults{Matches: matches, TotalMatches: len(matches)}
	}

	result = HybridResult{
		Query:            query,
		KnowledgeResults: knowledgeResults,
		NumericalResults: numericalResults,
		ComplaintResults: complaintResults,
		FAQResults:       faqResults,
		CombinedScore:    combinedScore(knowledgeResults, numericalResults, complaintResults, faqResults),
		RetrievalMethod:  dominantMethod(knowledgeResults, numericalResults, complaintResults, faqResults),
	}

	h.logger.Debug("hybrid retrieval completed for query: %s", query)
	return result, nil
}

// combinedScore fuses the channels: 0.4 knowledge + 0.3 numerical +
// 0.2 complaint-intent confidence + 0.1 FAQ, each clamped to [0,1] before
// weighting and included only when the channel found something.
func combinedScore(knowledge KnowledgeResults, numerical NumericalResults,
	complaint ComplaintResults, faq FAQResults) float64 {

	var score float64

	if knowledge.TotalResults > 0 {
		score += clamp01(float64(knowledge.TotalResults)/knowledgeSaturation) * knowledgeWeight
	}
	if numerical.TotalMatches > 0 {
		score += clamp01(float64(numerical.TotalMatches)/numericalSaturation) * numericalWeight
	}
	if complaint.IntentClassification.Confidence > 0 {
		score += complaint.IntentClassification.Confidence * complaintWeight
	}
	if faq.TotalMatches > 0 {
		score += clamp01(float64(faq.TotalMatches)/faqSaturation) * faqWeight
	}

	return score
}

// dominantMethod picks the channel with the highest raw count (confidence for
// the complaint channel). Ties go to the earlier channel in
// knowledge > numerical > complaint > faq order; all-zero falls back to
// "hybrid".
func dominantMethod(knowledge KnowledgeResults, numerical NumericalResults,
	complaint ComplaintResults, faq FAQResults) string {

	methods := []struct {
		name  string
		score float64
	}{
		{MethodKnowledge, float64(knowledge.TotalResults)},
		{MethodNumerical, float64(numerical.TotalMatches)},
		{MethodComplaint, complaint.IntentClassification.Confidence},
		{MethodFAQ, float64(faq.TotalMatches)},
	}

	best := methods[0]
	for _, m := range methods[1:] {
		if m.score > best.score {
			best = m
		}
	}
	if best.score > 0 {
		return best.name
	}
	return MethodHybrid
}

func clamp01(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < 0 {
		return 0
	}
	return v
}

// Stats reports the sizes of every store backing the hybrid retriever.
func (h *HybridRetriever) Stats() map[string]int {
	return map[string]int{
		"knowledge_concepts":    len(h.knowledge.knowledge),
		"numerical_data_points": len(h.numerical.facts),
		"complaint_categories":  len(h.complaintCategories),
		"faq_entries":           len(h.faqs),
		"expanded_categories":   len(h.expandedCategories),
	}
}

// Knowledge exposes the component knowledge retriever for single-channel
// comparisons.
func (h *HybridRetriever) Knowledge() *KnowledgeRetriever {
	return h.knowledge
}

// Numerical exposes the component numerical retriever for single-channel
// comparisons.
func (h *HybridRetriever) Numerical() *NumericalRetriever {
	return h.numerical
}
