// Package tfidf implements a small TF-IDF vectorizer with cosine similarity,
// used for concept matching and query intent classification.
//
// The vectorizer lowercases input, tokenizes on alphanumeric runs, removes
// English stop words, forms unigrams and bigrams, caps the vocabulary at a
// configurable number of features selected by corpus term count, and produces
// L2-normalized sparse vectors with smoothed IDF weighting. Fitting and
// transformation are fully deterministic: feature-selection ties are broken
// lexicographically.
package tfidf

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// Vector is a sparse L2-normalized feature vector keyed by feature index.
type Vector map[int]float64

// Vectorizer converts documents into TF-IDF vectors over a fixed vocabulary
// learned by Fit. A zero-valued or unfitted vectorizer transforms everything to
// an empty vector.
type Vectorizer struct {
	maxFeatures int
	ngramMin    int
	ngramMax    int

	vocab  map[string]int
	idf    []float64
	fitted bool
}

// Option configures a Vectorizer.
type Option func(*Vectorizer)

// WithMaxFeatures caps the vocabulary at n features, selected by total corpus
// term count (highest first, ties broken lexicographically).
func WithMaxFeatures(n int) Option {
	return func(v *Vectorizer) { v.maxFeatures = n }
}

// WithNgramRange sets the n-gram sizes to extract, inclusive on both ends.
func WithNgramRange(min, max int) Option {
	return func(v *Vectorizer) {
		v.ngramMin = min
		v.ngramMax = max
	}
}

// NewVectorizer creates a vectorizer with the retrieval engine defaults:
// 1000 features, unigrams and bigrams, English stop words.
func NewVectorizer(opts ...Option) *Vectorizer {
	v := &Vectorizer{
		maxFeatures: 1000,
		ngramMin:    1,
		ngramMax:    2,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Fit learns the vocabulary and IDF weights from docs. Documents that produce no
// usable terms are still counted towards the IDF denominator. Fitting an empty or
// all-stop-word corpus leaves the vectorizer unfitted.
func (v *Vectorizer) Fit(docs []string) {
	termCount := make(map[string]int)
	docFreq := make(map[string]int)

	for _, doc := range docs {
		terms := v.terms(doc)
		seen := make(map[string]bool, len(terms))
		for _, t := range terms {
			termCount[t]++
			if !seen[t] {
				seen[t] = true
				docFreq[t]++
			}
		}
	}

	if len(termCount) == 0 {
		v.fitted = false
		return
	}

	selected := make([]string, 0, len(termCount))
	for t := range termCount {
		selected = append(selected, t)
	}
	sort.Slice(selected, func(i, j int) bool {
		if termCount[selected[i]] != termCount[selected[j]] {
			return termCount[selected[i]] > termCount[selected[j]]
		}
		return selected[i] < selected[j]
	})
	if v.maxFeatures > 0 && len(selected) > v.maxFeatures {
		selected = selected[:v.maxFeatures]
	}
	// Feature indices follow lexicographic vocabulary order, so repeated fits over
	// the same corpus assign identical indices.
	sort.Strings(selected)

	n := float64(len(docs))
	v.vocab = make(map[string]int, len(selected))
	v.idf = make([]float64, len(selected))
	for i, t := range selected {
		v.vocab[t] = i
		// Smoothed IDF: ln((1+n)/(1+df)) + 1.
		v.idf[i] = math.Log((1+n)/(1+float64(docFreq[t]))) + 1
	}
	v.fitted = true
}

// Fitted reports whether Fit produced a usable vocabulary.
func (v *Vectorizer) Fitted() bool {
	return v.fitted
}

// VocabularySize returns the number of learned features.
func (v *Vectorizer) VocabularySize() int {
	return len(v.vocab)
}

// Transform converts text into an L2-normalized TF-IDF vector over the fitted
// vocabulary. Unfitted vectorizers and texts with no known terms produce an
// empty vector.
func (v *Vectorizer) Transform(text string) Vector {
	vec := Vector{}
	if !v.fitted {
		return vec
	}

	for _, t := range v.terms(text) {
		if idx, ok := v.vocab[t]; ok {
			vec[idx] += v.idf[idx]
		}
	}

	var norm float64
	for _, w := range vec {
		norm += w * w
	}
	if norm == 0 {
		return vec
	}
	norm = math.Sqrt(norm)
	for idx := range vec {
		vec[idx] /= norm
	}
	return vec
}

// terms tokenizes text and expands it into the configured n-gram set.
func (v *Vectorizer) terms(text string) []string {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return nil
	}

	var terms []string
	for n := v.ngramMin; n <= v.ngramMax; n++ {
		if n < 1 {
			continue
		}
		for i := 0; i+n <= len(tokens); i++ {
			terms = append(terms, strings.Join(tokens[i:i+n], " "))
		}
	}
	return terms
}

// Tokenize lowercases text, splits it on non-alphanumeric runs, and removes
// single-character tokens and English stop words.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < 2 || isStopWord(f) {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// Cosine returns the cosine similarity between two sparse vectors. Vectors
// produced by Transform are already L2-normalized, so this reduces to the dot
// product, but the norms are recomputed to keep the function safe for arbitrary
// input.
func Cosine(a, b Vector) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	if len(b) < len(a) {
		a, b = b, a
	}

	var dot, normA, normB float64
	for idx, w := range a {
		normA += w * w
		if bw, ok := b[idx]; ok {
			dot += w * bw
		}
	}
	for _, w := range b {
		normB += w * w
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
