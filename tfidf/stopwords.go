package tfidf

// English stop words removed before n-gram formation.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true,
	"but": true, "in": true, "on": true, "at": true, "to": true,
	"for": true, "of": true, "with": true, "by": true, "from": true,
	"is": true, "are": true, "was": true, "were": true, "be": true,
	"been": true, "being": true, "have": true, "has": true, "had": true,
	"do": true, "does": true, "did": true, "will": true, "would": true,
	"could": true, "should": true, "may": true, "might": true, "must": true,
	"shall": true, "can": true, "this": true, "that": true, "these": true,
	"those": true, "what": true, "which": true, "who": true, "whom": true,
	"where": true, "when": true, "how": true, "why": true, "not": true,
	"no": true, "nor": true, "if": true, "then": true, "than": true,
	"so": true, "as": true, "about": true, "into": true, "between": true,
	"i": true, "me": true, "my": true, "we": true, "our": true,
	"you": true, "your": true, "he": true, "she": true, "it": true,
	"its": true, "they": true, "them": true, "their": true, "there": true,
	"here": true, "all": true, "any": true, "each": true, "more": true,
	"most": true, "other": true, "some": true, "such": true, "only": true,
	"own": true, "same": true, "too": true, "very": true, "just": true,
	"also": true, "both": true, "up": true, "down": true, "out": true,
	"over": true, "under": true, "again": true, "once": true, "while": true,
	"during": true, "before": true, "after": true, "above": true, "below": true,
	"through": true, "against": true, "until": true, "because": true, "am": true,
}

func isStopWord(w string) bool {
	return stopWords[w]
}
