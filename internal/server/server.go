// Package server is the in-process search server: it validates and indexes
// documents, answers ranked TF-IDF queries and per-document matches, and
// removes documents, keeping the document store and the dual index in step.
//
// A Server follows a single-writer model. AddDocument and RemoveDocument
// must not run concurrently with each other or with any read. Reads may run
// concurrently with other reads, in either execution mode.
package server

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/documents"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/terms"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/tokenizer"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searcher/parser"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searcher/ranker"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/search-server/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/health"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/metrics"
)

type (
	Mode      = ranker.Mode
	Document  = ranker.Document
	Predicate = ranker.Predicate
	Status    = documents.Status
)

const (
	Sequential = ranker.Sequential
	Parallel   = ranker.Parallel
)

const (
	StatusActual     = documents.StatusActual
	StatusIrrelevant = documents.StatusIrrelevant
	StatusBanned     = documents.StatusBanned
	StatusRemoved    = documents.StatusRemoved
)

type Server struct {
	cfg     config.EngineConfig
	terms   *terms.Store
	docs    *documents.Store
	index   *index.DualIndex
	parser  *parser.Parser
	ranker  *ranker.Ranker
	reg     prometheus.Registerer
	metrics *metrics.Metrics
	logger  *slog.Logger
}

type Option func(*Server)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithRegisterer registers the server's collectors on reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(s *Server) {
		s.reg = reg
	}
}

// New builds an empty Server. Stop words come from cfg; an invalid stop word
// or threshold is reported as an error.
func New(cfg config.EngineConfig, opts ...Option) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	store, err := terms.NewStore(cfg.StopWords)
	if err != nil {
		return nil, fmt.Errorf("building term store: %w", err)
	}
	s := &Server{
		cfg:    cfg,
		terms:  store,
		docs:   documents.NewStore(),
		index:  index.NewDualIndex(store),
		parser: parser.New(store, cfg.ParseCacheSize),
		ranker: ranker.New(ranker.Options{
			Epsilon:     cfg.Epsilon,
			MaxResults:  cfg.MaxResults,
			BucketCount: cfg.BucketCount,
			Workers:     cfg.Workers,
		}),
		logger: slog.Default().With("component", "search-server"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.metrics = metrics.New(s.reg)
	metrics.RegisterParseCache(s.reg, s.parser.CacheStats)

	s.logger.Info("search server ready",
		"stop_words", len(cfg.StopWords),
		"max_results", cfg.MaxResults,
		"bucket_count", cfg.BucketCount,
		"workers", cfg.Workers,
	)
	return s, nil
}

// AddDocument indexes text under id. Nothing is modified unless every check
// passes.
func (s *Server) AddDocument(id int, text string, status Status, ratings []int) error {
	if id < 0 {
		s.metrics.DocsRejectedTotal.WithLabelValues("invalid_id").Inc()
		return apperrors.Newf(apperrors.ErrInvalidID, "document id %d is negative", id)
	}
	if s.docs.Contains(id) {
		s.metrics.DocsRejectedTotal.WithLabelValues("duplicate_id").Inc()
		return apperrors.Newf(apperrors.ErrDuplicateID, "document id %d is already indexed", id)
	}
	// Every token is a substring of text, so one pass covers both.
	if !tokenizer.IsValidWord(text) {
		s.metrics.DocsRejectedTotal.WithLabelValues("invalid_text").Inc()
		return apperrors.Newf(apperrors.ErrInvalidText, "document %d contains a control character", id)
	}

	words := tokenizer.Tokenize(text)
	ids := make([]terms.ID, 0, len(words))
	for _, w := range words {
		if s.terms.IsStopWord(w) {
			continue
		}
		ids = append(ids, s.terms.Intern(w))
	}
	s.index.Add(id, index.TermFrequencies(ids))
	s.docs.Insert(documents.Document{
		ID:     id,
		Text:   strings.Clone(text),
		Rating: documents.AverageRating(ratings),
		Status: status,
	})

	s.metrics.DocsAddedTotal.Inc()
	s.updateSizeGauges()
	s.logger.Debug("document indexed",
		"doc_id", id,
		"words", len(words),
		"indexed_words", len(ids),
		"status", status.String(),
	)
	return nil
}

// FindTopDocuments ranks documents with StatusActual.
func (s *Server) FindTopDocuments(mode Mode, rawQuery string) ([]Document, error) {
	return s.FindTopDocumentsByStatus(mode, rawQuery, StatusActual)
}

func (s *Server) FindTopDocumentsByStatus(mode Mode, rawQuery string, status Status) ([]Document, error) {
	return s.FindTopDocumentsWithPredicate(mode, rawQuery, ranker.ByStatus(status))
}

// FindTopDocumentsWithPredicate ranks the documents accepted by pred. A nil
// pred accepts every document.
func (s *Server) FindTopDocumentsWithPredicate(mode Mode, rawQuery string, pred Predicate) ([]Document, error) {
	start := time.Now()
	q, err := s.parser.Parse(rawQuery)
	if err != nil {
		s.metrics.SearchQueriesTotal.WithLabelValues(mode.String(), "error").Inc()
		return nil, err
	}
	results := s.ranker.Rank(mode, corpus{s}, q, pred)

	resultType := "hit"
	if len(results) == 0 {
		resultType = "zero_result"
	}
	s.metrics.SearchQueriesTotal.WithLabelValues(mode.String(), resultType).Inc()
	s.metrics.SearchLatency.WithLabelValues(mode.String()).Observe(time.Since(start).Seconds())
	s.metrics.SearchResultsCount.Observe(float64(len(results)))
	s.logger.Debug("query executed",
		"query", rawQuery,
		"mode", mode.String(),
		"plus_terms", q.Plus,
		"minus_terms", q.Minus,
		"results", len(results),
	)
	return results, nil
}

// RemoveDocument is a no-op for an unknown id.
func (s *Server) RemoveDocument(mode Mode, id int) {
	if !s.docs.Delete(id) {
		return
	}
	if mode == Parallel {
		s.index.RemoveParallel(id, s.cfg.Workers)
	} else {
		s.index.Remove(id)
	}
	s.metrics.DocsRemovedTotal.WithLabelValues(mode.String()).Inc()
	s.updateSizeGauges()
	s.logger.Debug("document removed", "doc_id", id, "mode", mode.String())
}

// GetWordFrequencies returns a copy of id's term frequencies, empty when id
// is unknown.
func (s *Server) GetWordFrequencies(id int) map[string]float64 {
	row, ok := s.index.Row(id)
	if !ok {
		return map[string]float64{}
	}
	out := make(map[string]float64, len(row))
	for term, tf := range row {
		out[s.terms.Word(term)] = tf
	}
	return out
}

// DocumentIDs yields live document ids in ascending order.
func (s *Server) DocumentIDs() iter.Seq[int] {
	return s.docs.IDs()
}

func (s *Server) DocumentCount() int {
	return s.docs.Len()
}

func (s *Server) StopWords() []string {
	return s.terms.StopWords()
}

// Verify checks the cross-structure invariants: the two indices mirror each
// other, every live term is interned exactly once, and every live document
// has exactly one forward row.
func (s *Server) Verify() error {
	if err := s.index.Verify(); err != nil {
		return fmt.Errorf("dual index: %w", err)
	}
	if s.terms.Len() != s.index.TermCount() {
		return fmt.Errorf("term table holds %d words but inverted index holds %d terms", s.terms.Len(), s.index.TermCount())
	}
	if s.index.DocCount() != s.docs.Len() {
		return fmt.Errorf("document store holds %d documents but forward index holds %d rows", s.docs.Len(), s.index.DocCount())
	}
	for id := range s.docs.IDs() {
		if _, ok := s.index.Row(id); !ok {
			return fmt.Errorf("document %d has no forward index row", id)
		}
	}
	return nil
}

// RegisterChecks adds the server's invariant probes to c.
func (s *Server) RegisterChecks(c *health.Checker) {
	c.Register("dual_index", func(ctx context.Context) health.ComponentHealth {
		if err := s.Verify(); err != nil {
			return health.ComponentHealth{Status: health.StatusDown, Message: err.Error()}
		}
		return health.ComponentHealth{
			Status:  health.StatusUp,
			Message: fmt.Sprintf("%d documents, %d terms", s.docs.Len(), s.index.TermCount()),
		}
	})
}

func (s *Server) updateSizeGauges() {
	s.metrics.IndexedDocuments.Set(float64(s.docs.Len()))
	s.metrics.IndexedTerms.Set(float64(s.index.TermCount()))
}

// corpus adapts the server's stores to ranker.Corpus.
type corpus struct {
	s *Server
}

func (c corpus) DocumentCount() int {
	return c.s.docs.Len()
}

func (c corpus) Postings(term string) (map[int]float64, bool) {
	id, ok := c.s.terms.Lookup(term)
	if !ok {
		return nil, false
	}
	return c.s.index.Postings(id)
}

func (c corpus) Document(id int) (documents.Document, bool) {
	return c.s.docs.Get(id)
}
