// Package metrics defines the Prometheus collectors used by the search server
// and renders them in the text exposition format.
package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Metrics holds all Prometheus collectors for the search server.
type Metrics struct {
	DocsAddedTotal     prometheus.Counter
	DocsRejectedTotal  *prometheus.CounterVec
	DocsRemovedTotal   *prometheus.CounterVec
	IndexedDocuments   prometheus.Gauge
	IndexedTerms       prometheus.Gauge
	SearchQueriesTotal *prometheus.CounterVec
	SearchLatency      *prometheus.HistogramVec
	SearchResultsCount prometheus.Histogram
	MatchRequestsTotal *prometheus.CounterVec
}

// New creates all collectors and registers them on reg. A nil reg leaves
// them unregistered, which is convenient for tests and embedded use.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		DocsAddedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "search_docs_added_total",
				Help: "Total documents added to the index.",
			},
		),
		DocsRejectedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "search_docs_rejected_total",
				Help: "Documents rejected by AddDocument, by reason.",
			},
			[]string{"reason"},
		),
		DocsRemovedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "search_docs_removed_total",
				Help: "Documents removed from the index, by execution mode.",
			},
			[]string{"mode"},
		),
		IndexedDocuments: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "search_indexed_documents",
				Help: "Number of live documents.",
			},
		),
		IndexedTerms: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "search_indexed_terms",
				Help: "Number of distinct terms with at least one posting.",
			},
		),
		SearchQueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "search_queries_total",
				Help: "Total search queries by execution mode and result type (hit, zero_result, error).",
			},
			[]string{"mode", "result_type"},
		),
		SearchLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "search_latency_seconds",
				Help:    "Search query latency in seconds.",
				Buckets: []float64{0.00001, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"mode"},
		),
		SearchResultsCount: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "search_results_count",
				Help:    "Number of results returned per search query.",
				Buckets: []float64{0, 1, 2, 3, 4, 5, 10},
			},
		),
		MatchRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "search_match_requests_total",
				Help: "Total MatchDocument calls by execution mode and outcome (matched, excluded, empty, error).",
			},
			[]string{"mode", "outcome"},
		),
	}

	if reg != nil {
		reg.MustRegister(
			m.DocsAddedTotal,
			m.DocsRejectedTotal,
			m.DocsRemovedTotal,
			m.IndexedDocuments,
			m.IndexedTerms,
			m.SearchQueriesTotal,
			m.SearchLatency,
			m.SearchResultsCount,
			m.MatchRequestsTotal,
		)
	}
	return m
}

// RegisterParseCache exposes parse cache statistics read through stats on
// every scrape.
func RegisterParseCache(reg prometheus.Registerer, stats func() (hits, misses int64)) {
	if reg == nil {
		return
	}
	reg.MustRegister(
		prometheus.NewCounterFunc(
			prometheus.CounterOpts{
				Name: "search_parse_cache_hits_total",
				Help: "Query parse cache hits.",
			},
			func() float64 {
				hits, _ := stats()
				return float64(hits)
			},
		),
		prometheus.NewCounterFunc(
			prometheus.CounterOpts{
				Name: "search_parse_cache_misses_total",
				Help: "Query parse cache misses.",
			},
			func() float64 {
				_, misses := stats()
				return float64(misses)
			},
		),
	)
}

// Dump writes every metric family gathered from g in the Prometheus text
// format.
func Dump(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("writing metric family %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
