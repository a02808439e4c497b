// Package retrieval implements the SmartBorrow hybrid retrieval core.
//
// Three retrievers build on a read-only corpus.Corpus injected at construction:
//
//   - NumericalRetriever matches numbers, dollar amounts, percentages, and years
//     mentioned in a query against a catalog of extracted numeric facts, using
//     exact, fuzzy, category, and context strategies.
//   - KnowledgeRetriever ranks financial-aid concepts by TF-IDF cosine similarity
//     to the query and cross-links them to supporting numeric facts.
//   - HybridRetriever fuses both with complaint-category intent classification and
//     FAQ keyword matching into a single weighted combined score, reporting the
//     dominant retrieval channel.
//
// All retrieval is synchronous, deterministic, and free of shared mutable state:
// one retriever instance may serve concurrent read-only queries.
package retrieval
