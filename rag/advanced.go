package rag

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/smartborrow/smartborrow-go/log"
	"github.com/smartborrow/smartborrow-go/retrieval"
	"github.com/smartborrow/smartborrow-go/store"
)

// Method names accepted by RunABTest and CompareRetrievalMethods.
const (
	MethodHybrid    = "hybrid"
	MethodStandard  = "standard"
	MethodKnowledge = "knowledge"
	MethodNumerical = "numerical"

	// standardBaselineScore is the fixed score assigned to the standard RAG
	// path when comparing methods.
	standardBaselineScore = 0.5
)

// comparisonOrder fixes the method iteration order so recommendations are
// deterministic; earlier methods win ties.
var comparisonOrder = []string{MethodHybrid, MethodKnowledge, MethodNumerical, MethodStandard}

// HybridComparison is a side-by-side hybrid and standard retrieval for one
// query.
type HybridComparison struct {
	Query          string                 `json:"query"`
	Hybrid         retrieval.HybridResult `json:"hybrid"`
	Standard       *QueryResult           `json:"standard,omitempty"`
	ResponseTimeMS float64                `json:"response_time_ms"`
	Timestamp      string                 `json:"timestamp"`
}

// MethodComparison scores every retrieval method for one query and recommends
// the best.
type MethodComparison struct {
	Query          string             `json:"query"`
	Scores         map[string]float64 `json:"scores"`
	Recommendation string             `json:"recommendation"`
	Timestamp      string             `json:"timestamp"`
}

// PerformanceReport aggregates per-query measurements across methods.
type PerformanceReport struct {
	Records           []store.MetricRecord `json:"records"`
	MeanScores        map[string]float64   `json:"mean_scores"`
	MeanResponseTimes map[string]float64   `json:"mean_response_times"`
}

// ABTestStats summarizes the persisted A/B test history.
type ABTestStats struct {
	TotalTests     int                  `json:"total_tests"`
	WinCounts      map[string]int       `json:"win_counts"`
	MeanConfidence float64              `json:"mean_confidence"`
	RecentTests    []store.ABTestRecord `json:"recent_tests"`
}

// AdvancedService runs hybrid retrieval next to the standard RAG path and
// persists A/B tests and performance metrics. The mutex keeps this process the
// single writer to the result store, matching the whole-file semantics of the
// file backend.
type AdvancedService struct {
	hybrid   *retrieval.HybridRetriever
	baseline *Service
	results  store.ResultStore
	logger   log.Logger

	writeMu sync.Mutex
}

// NewAdvancedService wires the hybrid retriever, an optional baseline service,
// and a result store together.
func NewAdvancedService(hybrid *retrieval.HybridRetriever, baseline *Service, results store.ResultStore, logger log.Logger) *AdvancedService {
	if logger == nil {
		logger = log.GetDefaultLogger()
	}
	return &AdvancedService{
		hybrid:   hybrid,
		baseline: baseline,
		results:  results,
		logger:   logger,
	}
}

// QueryWithHybrid runs hybrid retrieval and, when a baseline service is
// configured, the standard RAG path for the same query. A baseline failure is
// logged and leaves Standard nil rather than failing the whole comparison.
func (s *AdvancedService) QueryWithHybrid(ctx context.Context, query string, useFAQ, useComplaints bool) (HybridComparison, error) {
	start := time.Now()

	hybridResult, err := s.hybrid.RetrieveHybrid(query, useFAQ, useComplaints)
	if err != nil {
		return HybridComparison{}, fmt.Errorf("hybrid retrieval failed: %w", err)
	}

	var standard *QueryResult
	if s.baseline != nil {
		standard, err = s.baseline.Query(ctx, query)
		if err != nil {
			s.logger.Warn("standard retrieval failed, continuing with hybrid only: %v", err)
			standard = nil
		}
	}

	return HybridComparison{
		Query:          query,
		Hybrid:         hybridResult,
		Standard:       standard,
		ResponseTimeMS: float64(time.Since(start).Microseconds()) / 1000.0,
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// RunABTest scores two methods on the same query, declares the higher scorer
// the winner with confidence equal to the score gap, and persists the outcome.
func (s *AdvancedService) RunABTest(ctx context.Context, query, methodA, methodB string) (store.ABTestRecord, error) {
	scoreA, err := s.methodScore(ctx, query, methodA)
	if err != nil {
		return store.ABTestRecord{}, err
	}
	scoreB, err := s.methodScore(ctx, query, methodB)
	if err != nil {
		return store.ABTestRecord{}, err
	}

	winner := methodA
	if scoreB > scoreA {
		winner = methodB
	}
	confidence := scoreA - scoreB
	if confidence < 0 {
		confidence = -confidence
	}

	record := store.ABTestRecord{
		TestID:     uuid.NewString(),
		Query:      query,
		Winner:     winner,
		Confidence: confidence,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.results.AppendABTest(ctx, record); err != nil {
		return store.ABTestRecord{}, fmt.Errorf("failed to persist ab test: %w", err)
	}

	s.logger.Info("ab test %s: %s vs %s, winner %s", record.TestID, methodA, methodB, winner)
	return record, nil
}

// EvaluatePerformance measures every method on every query, persists the
// per-query records, and reports per-method means.
func (s *AdvancedService) EvaluatePerformance(ctx context.Context, queries []string) (PerformanceReport, error) {
	report := PerformanceReport{
		MeanScores:        map[string]float64{},
		MeanResponseTimes: map[string]float64{},
	}
	counts := map[string]int{}

	for _, query := range queries {
		for _, method := range comparisonOrder {
			start := time.Now()
			score, err := s.methodScore(ctx, query, method)
			if err != nil {
				return PerformanceReport{}, err
			}
			elapsed := float64(time.Since(start).Microseconds()) / 1000.0

			record := store.MetricRecord{
				Query:        query,
				Method:       method,
				Score:        score,
				ResponseTime: elapsed,
				Timestamp:    time.Now().UTC().Format(time.RFC3339),
			}
			report.Records = append(report.Records, record)
			report.MeanScores[method] += score
			report.MeanResponseTimes[method] += elapsed
			counts[method]++

			s.writeMu.Lock()
			err = s.results.AppendMetric(ctx, record)
			s.writeMu.Unlock()
			if err != nil {
				return PerformanceReport{}, fmt.Errorf("failed to persist metric: %w", err)
			}
		}
	}

	for method, n := range counts {
		report.MeanScores[method] /= float64(n)
		report.MeanResponseTimes[method] /= float64(n)
	}
	return report, nil
}

// CompareRetrievalMethods scores every method on one query and recommends the
// highest scorer. Ties resolve toward the richer method.
func (s *AdvancedService) CompareRetrievalMethods(ctx context.Context, query string) (MethodComparison, error) {
	comparison := MethodComparison{
		Query:     query,
		Scores:    map[string]float64{},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	best := ""
	bestScore := -1.0
	for _, method := range comparisonOrder {
		score, err := s.methodScore(ctx, query, method)
		if err != nil {
			return MethodComparison{}, err
		}
		comparison.Scores[method] = score
		if score > bestScore {
			best = method
			bestScore = score
		}
	}
	comparison.Recommendation = best

	return comparison, nil
}

// ABTestStatistics summarizes the persisted test history: totals, per-method
// win counts, mean confidence, and the last 10 tests.
func (s *AdvancedService) ABTestStatistics(ctx context.Context) (ABTestStats, error) {
	records, err := s.results.ABTests(ctx)
	if err != nil {
		return ABTestStats{}, fmt.Errorf("failed to read ab tests: %w", err)
	}

	stats := ABTestStats{
		TotalTests: len(records),
		WinCounts:  map[string]int{},
	}
	if len(records) == 0 {
		return stats, nil
	}

	var totalConfidence float64
	for _, r := range records {
		stats.WinCounts[r.Winner]++
		totalConfidence += r.Confidence
	}
	stats.MeanConfidence = totalConfidence / float64(len(records))

	recent := records
	if len(recent) > 10 {
		recent = recent[len(recent)-10:]
	}
	stats.RecentTests = recent

	return stats, nil
}

// methodScore maps a method name to a comparable score in [0,1].
func (s *AdvancedService) methodScore(ctx context.Context, query, method string) (float64, error) {
	switch method {
	case MethodHybrid:
		result, err := s.hybrid.RetrieveHybrid(query, true, true)
		if err != nil {
			return 0, fmt.Errorf("hybrid retrieval failed: %w", err)
		}
		return result.CombinedScore, nil
	case MethodKnowledge:
		results := s.hybrid.Knowledge().RetrieveKnowledge(query)
		return saturate(float64(results.TotalResults) / 10.0), nil
	case MethodNumerical:
		results := s.hybrid.Numerical().Retrieve(query, retrieval.SearchHybrid)
		return saturate(float64(results.TotalMatches) / 20.0), nil
	case MethodStandard:
		return standardBaselineScore, nil
	default:
		return 0, fmt.Errorf("unknown retrieval method %q", method)
	}
}

func saturate(v float64) float64 {
	if v > 1 {
		return 1
	}
	return v
}
