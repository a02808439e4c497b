package retrieval

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// Entity types recognized by ExtractNumericalEntities.
const (
	EntityDollarAmount = "dollar_amount"
	EntityPercentage   = "percentage"
	EntityNumber       = "number"
	EntityYear         = "year"
)

// Patterns for numeric entity extraction. Years are restricted to 1900-2099.
var (
	dollarPattern  = regexp.MustCompile(`\$[\d,]+(?:\.\d{2})?`)
	percentPattern = regexp.MustCompile(`\d+(?:\.\d+)?%`)
	numberPattern  = regexp.MustCompile(`\b\d+(?:,\d{3})*(?:\.\d+)?\b`)
	yearPattern    = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)

	// Query-side numeric mentions used for numerical-context relevance.
	queryNumberPattern = regexp.MustCompile(`\$[\d,]+|\d+%|\d+\.\d+`)
)

// NumericalEntity is a number-like token extracted from a query, tagged with the
// extraction confidence of its pattern.
type NumericalEntity struct {
	Type       string  `json:"type"`
	Value      string  `json:"value"`
	Confidence float64 `json:"confidence"`
}

// ExtractNumericalEntities extracts dollar amounts, percentages, bare numbers,
// and 4-digit years from a query. Amounts, percentages, and years carry full
// confidence; bare numbers are ambiguous and carry 0.8.
func ExtractNumericalEntities(query string) []NumericalEntity {
	var entities []NumericalEntity

	for _, m := range dollarPattern.FindAllString(query, -1) {
		entities = append(entities, NumericalEntity{Type: EntityDollarAmount, Value: m, Confidence: 1.0})
	}
	for _, m := range percentPattern.FindAllString(query, -1) {
		entities = append(entities, NumericalEntity{Type: EntityPercentage, Value: m, Confidence: 1.0})
	}
	for _, m := range numberPattern.FindAllString(query, -1) {
		entities = append(entities, NumericalEntity{Type: EntityNumber, Value: m, Confidence: 0.8})
	}
	for _, m := range yearPattern.FindAllString(query, -1) {
		entities = append(entities, NumericalEntity{Type: EntityYear, Value: m, Confidence: 1.0})
	}

	return entities
}

// valueSimilarity scores two value strings: 1.0 on equality, 0.9 on equality
// after stripping non-alphanumerics, otherwise Jaccard similarity over the
// character sets of the stripped forms.
func valueSimilarity(a, b string) float64 {
	if a == b {
		return 1.0
	}

	cleanA := stripNonAlnum(strings.ToLower(a))
	cleanB := stripNonAlnum(strings.ToLower(b))
	if cleanA == cleanB {
		return 0.9
	}

	setA := runeSet(cleanA)
	setB := runeSet(cleanB)
	if len(setA) == 0 || len(setB) == 0 {
		return 0.0
	}

	intersection := 0
	for r := range setA {
		if setB[r] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}

func stripNonAlnum(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func runeSet(s string) map[rune]bool {
	set := make(map[rune]bool, len(s))
	for _, r := range s {
		set[r] = true
	}
	return set
}

// wordSet splits text into a lowercase whitespace-delimited word set.
func wordSet(text string) map[string]bool {
	set := map[string]bool{}
	for _, w := range strings.Fields(strings.ToLower(text)) {
		set[w] = true
	}
	return set
}

// overlapCount counts words present in both sets.
func overlapCount(a, b map[string]bool) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for w := range a {
		if b[w] {
			n++
		}
	}
	return n
}

// sortedWords returns the words of a set in lexicographic order, so match
// metadata stays deterministic.
func sortedWords(set map[string]bool) []string {
	words := make([]string, 0, len(set))
	for w := range set {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}
