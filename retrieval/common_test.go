package retrieval

import (
	"github.com/smartborrow/smartborrow-go/corpus"
	"github.com/smartborrow/smartborrow-go/log"
)

// testCorpus builds a small but fully populated corpus shared by the retriever
// tests.
func testCorpus() *corpus.Corpus {
	pellFact := corpus.NumericalFact{
		Value:    "$7,395",
		Unit:     "dollars",
		Category: "pell_grant",
		Context:  "maximum Pell Grant amount for 2024-25 is $7,395",
		Document: "federal_pell_grant_program.pdf",
	}
	rateFact := corpus.NumericalFact{
		Value:    "5.50%",
		Unit:     "percent",
		Category: "direct_subsidized_loan interest rate",
		Context:  "interest rate for Direct Subsidized Loans first disbursed on or after July 1, 2023 is 5.50%",
		Document: "loan_terms.pdf",
	}
	limitFact := corpus.NumericalFact{
		Value:    "$5,500",
		Unit:     "dollars",
		Category: "direct_subsidized_loan limit",
		Context:  "first-year dependent undergraduates may borrow up to $5,500 in subsidized and unsubsidized loans",
		Document: "loan_limits.pdf",
	}

	return &corpus.Corpus{
		NumericalFacts: []corpus.NumericalFact{pellFact, rateFact, limitFact},
		Knowledge: map[string]corpus.Concept{
			"pell_grant": {
				Definition: "The Federal Pell Grant is need-based aid for undergraduate students that does not have to be repaid. The maximum Pell Grant amount changes each award year.",
				Requirements: []string{
					"Demonstrate exceptional financial need through the FAFSA",
					"Be an undergraduate student without a bachelor's degree",
				},
				Procedures: []string{
					"Complete the FAFSA each award year",
				},
				NumericalData:   []corpus.NumericalFact{pellFact},
				SourceDocuments: []string{"federal_pell_grant_program.pdf"},
			},
			"direct_subsidized_loan": {
				Definition: "Direct Subsidized Loans are federal student loans for undergraduates with financial need where the government pays the interest while the student is in school.",
				Requirements: []string{
					"Be enrolled at least half-time at an eligible school",
				},
				Procedures: []string{
					"Sign a Master Promissory Note",
				},
				SourceDocuments: []string{"loan_terms.pdf"},
			},
		},
		ComplaintCategories: map[string]corpus.ComplaintCategory{
			"repayment_trouble": {
				ComplaintCount: 1240,
				Percentage:     34.5,
				CommonKeywords: []string{"payment", "repayment", "forbearance", "deferment", "servicer"},
				CommonIssues:   []string{"trouble making monthly payments", "payment not applied correctly"},
			},
			"credit_reporting": {
				ComplaintCount: 610,
				Percentage:     17.0,
				CommonKeywords: []string{"credit", "report", "score", "delinquent", "dispute"},
				CommonIssues:   []string{"incorrect delinquency reported", "dispute not resolved"},
			},
		},
		FAQs: []corpus.FAQ{
			{
				Question: "What is the maximum Pell Grant amount?",
				Answer:   "The maximum Pell Grant award for the 2024-25 award year is $7,395.",
				Category: "grants",
			},
			{
				Question: "How do I dispute an incorrect delinquency on my credit report?",
				Answer:   "Contact your loan servicer first, then file a dispute with each credit bureau reporting the delinquency.",
				Category: "credit_reporting",
			},
		},
		ExpandedCategories: map[string]corpus.ExpandedCategory{
			"repayment_trouble": {
				OriginalCategory: "repayment_trouble",
				ExpandedKeywords: []string{"income-driven", "consolidation", "delinquency", "default", "rehabilitation"},
			},
		},
	}
}

// emptyCorpus returns a corpus with every store empty.
func emptyCorpus() *corpus.Corpus {
	return &corpus.Corpus{
		Knowledge:           map[string]corpus.Concept{},
		ComplaintCategories: map[string]corpus.ComplaintCategory{},
		ExpandedCategories:  map[string]corpus.ExpandedCategory{},
	}
}

func quietLogger() log.Logger {
	return &log.NoOpLogger{}
}
