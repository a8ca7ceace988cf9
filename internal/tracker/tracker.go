// Package tracker records the outcome of recent search requests. It keeps
// a sliding window of the last WindowSize requests and reports how many of
// them returned nothing.
package tracker

import (
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/server"
)

// WindowSize is the number of requests remembered, one per minute of a day.
const WindowSize = 1440

// Searcher is the subset of *server.Server the tracker forwards to.
type Searcher interface {
	FindTopDocuments(mode server.Mode, rawQuery string) ([]server.Document, error)
	FindTopDocumentsByStatus(mode server.Mode, rawQuery string, status server.Status) ([]server.Document, error)
	FindTopDocumentsWithPredicate(mode server.Mode, rawQuery string, pred server.Predicate) ([]server.Document, error)
}

type Stats struct {
	TotalRequests     int64        `json:"total_requests" yaml:"total_requests"`
	FailedRequests    int64        `json:"failed_requests" yaml:"failed_requests"`
	WindowRequests    int          `json:"window_requests" yaml:"window_requests"`
	NoResultRequests  int          `json:"no_result_requests" yaml:"no_result_requests"`
	ZeroResultQueries []QueryCount `json:"zero_result_queries" yaml:"zero_result_queries"`
}

type QueryCount struct {
	Query string `json:"query" yaml:"query"`
	Count int    `json:"count" yaml:"count"`
}

type record struct {
	query   string
	results int
}

// Tracker forwards searches to a Searcher and remembers whether each
// successful one had results. Failed searches are counted but do not
// enter the window.
type Tracker struct {
	searcher Searcher

	mu       sync.Mutex
	window   []record
	head     int
	noResult int

	total  atomic.Int64
	failed atomic.Int64
	logger *slog.Logger
}

func New(searcher Searcher) *Tracker {
	return &Tracker{
		searcher: searcher,
		window:   make([]record, 0, WindowSize),
		logger:   slog.Default().With("component", "request-tracker"),
	}
}

func (t *Tracker) FindTopDocuments(mode server.Mode, rawQuery string) ([]server.Document, error) {
	docs, err := t.searcher.FindTopDocuments(mode, rawQuery)
	return t.observe(rawQuery, docs, err)
}

func (t *Tracker) FindTopDocumentsByStatus(mode server.Mode, rawQuery string, status server.Status) ([]server.Document, error) {
	docs, err := t.searcher.FindTopDocumentsByStatus(mode, rawQuery, status)
	return t.observe(rawQuery, docs, err)
}

func (t *Tracker) FindTopDocumentsWithPredicate(mode server.Mode, rawQuery string, pred server.Predicate) ([]server.Document, error) {
	docs, err := t.searcher.FindTopDocumentsWithPredicate(mode, rawQuery, pred)
	return t.observe(rawQuery, docs, err)
}

// NoResultRequests returns how many requests in the window returned no
// documents.
func (t *Tracker) NoResultRequests() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.noResult
}

func (t *Tracker) observe(query string, docs []server.Document, err error) ([]server.Document, error) {
	t.total.Add(1)
	if err != nil {
		t.failed.Add(1)
		t.logger.Debug("search request failed", "query", query, "error", err)
		return nil, err
	}
	t.push(record{query: query, results: len(docs)})
	return docs, nil
}

// push appends r, evicting the oldest record once the window is full.
func (t *Tracker) push(r record) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if r.results == 0 {
		t.noResult++
	}
	if len(t.window) < WindowSize {
		t.window = append(t.window, r)
		return
	}
	if t.window[t.head].results == 0 {
		t.noResult--
	}
	t.window[t.head] = r
	t.head = (t.head + 1) % WindowSize
}

// Stats summarises the window. ZeroResultQueries lists the ten most
// frequent queries that returned nothing.
func (t *Tracker) Stats() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()

	counts := make(map[string]int)
	for _, r := range t.window {
		if r.results == 0 {
			counts[r.query]++
		}
	}
	return Stats{
		TotalRequests:     t.total.Load(),
		FailedRequests:    t.failed.Load(),
		WindowRequests:    len(t.window),
		NoResultRequests:  t.noResult,
		ZeroResultQueries: topN(counts, 10),
	}
}

func topN(counts map[string]int, n int) []QueryCount {
	result := make([]QueryCount, 0, len(counts))
	for query, count := range counts {
		result = append(result, QueryCount{Query: query, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Query < result[j].Query
	})
	if len(result) > n {
		result = result[:n]
	}
	return result
}
