// SmartBorrow - Hybrid Retrieval for Student Financial Aid
//
// SmartBorrow is a retrieval engine over a structured student financial aid
// corpus: numeric facts mined from federal aid documents, concept knowledge,
// complaint-category statistics, and FAQs. It fuses four retrieval channels
// (knowledge, numerical, complaint intent, FAQ) into one scored, explainable
// result, and runs the hybrid path side by side with a standard vector RAG
// pipeline for A/B evaluation.
//
// # Quick Start
//
// Install the package:
//
//	go get github.com/smartborrow/smartborrow-go
//
// Basic example:
//
//	package main
//
//	import (
//		"fmt"
//
//		"github.com/smartborrow/smartborrow-go/corpus"
//		"github.com/smartborrow/smartborrow-go/log"
//		"github.com/smartborrow/smartborrow-go/retrieval"
//	)
//
//	func main() {
//		c, err := corpus.Load("data/processed", nil)
//		if err != nil {
//			panic(err)
//		}
//
//		retriever := retrieval.NewHybridRetriever(c, log.GetDefaultLogger())
//		result, err := retriever.RetrieveHybrid("What is the maximum Pell Grant amount?", true, true)
//		if err != nil {
//			panic(err)
//		}
//
//		fmt.Printf("method=%s score=%.2f\n", result.RetrievalMethod, result.CombinedScore)
//	}
//
// # Packages
//
//   - corpus: loads the five processed JSON stores (numeric facts, structured
//     knowledge, complaint categories, FAQs, expanded categories).
//   - tfidf: deterministic TF-IDF vectorizer with unigrams+bigrams and cosine
//     similarity, backing the semantic channels.
//   - retrieval: the numerical, knowledge, and hybrid retrievers.
//   - rag: standard vector RAG service, OpenAI embedder, markdown answer
//     rendering, and the AdvancedService for A/B testing and evaluation.
//   - store: result persistence (file, memory, sqlite, postgres, redis).
//   - config: environment-driven settings.
//   - log: leveled logging with a golog adapter.
package smartborrow
