package server

import (
	"slices"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/Adithya-Monish-Kumar-K/search-server/pkg/errors"
)

// MatchDocument reports which plus-terms of rawQuery occur in document id.
// A document containing any minus-term matches nothing. The returned words
// are sorted and unique in both modes.
func (s *Server) MatchDocument(mode Mode, rawQuery string, id int) ([]string, Status, error) {
	q, err := s.parser.Parse(rawQuery)
	if err != nil {
		s.metrics.MatchRequestsTotal.WithLabelValues(mode.String(), "error").Inc()
		return nil, 0, err
	}
	doc, ok := s.docs.Get(id)
	if !ok {
		s.metrics.MatchRequestsTotal.WithLabelValues(mode.String(), "error").Inc()
		return nil, 0, apperrors.Newf(apperrors.ErrNotFound, "document id %d", id)
	}

	var (
		words    []string
		excluded bool
	)
	if mode == Parallel {
		words, excluded = s.matchParallel(q.Plus, q.Minus, id)
	} else {
		words, excluded = s.matchSequential(q.Plus, q.Minus, id)
	}

	outcome := "matched"
	switch {
	case excluded:
		outcome = "excluded"
	case len(words) == 0:
		outcome = "empty"
	}
	s.metrics.MatchRequestsTotal.WithLabelValues(mode.String(), outcome).Inc()
	return words, doc.Status, nil
}

func (s *Server) contains(id int, word string) bool {
	term, ok := s.terms.Lookup(word)
	return ok && s.index.Contains(id, term)
}

func (s *Server) matchSequential(plus, minus []string, id int) ([]string, bool) {
	for _, word := range minus {
		if s.contains(id, word) {
			return []string{}, true
		}
	}
	matched := make([]string, 0, len(plus))
	for _, word := range plus {
		if s.contains(id, word) {
			matched = append(matched, word)
		}
	}
	return matched, false
}

// matchParallel checks minus-terms for existence first, then filters the
// plus-terms, each step fanned out over the worker pool.
func (s *Server) matchParallel(plus, minus []string, id int) ([]string, bool) {
	var excluded atomic.Bool
	var g errgroup.Group
	s.limit(&g)
	for _, word := range minus {
		g.Go(func() error {
			if !excluded.Load() && s.contains(id, word) {
				excluded.Store(true)
			}
			return nil
		})
	}
	_ = g.Wait()
	if excluded.Load() {
		return []string{}, true
	}

	hits := make([]bool, len(plus))
	var f errgroup.Group
	s.limit(&f)
	for i, word := range plus {
		f.Go(func() error {
			hits[i] = s.contains(id, word)
			return nil
		})
	}
	_ = f.Wait()

	matched := make([]string, 0, len(plus))
	for i, word := range plus {
		if hits[i] {
			matched = append(matched, word)
		}
	}
	slices.Sort(matched)
	return slices.Compact(matched), false
}

func (s *Server) limit(g *errgroup.Group) {
	if s.cfg.Workers > 0 {
		g.SetLimit(s.cfg.Workers)
	}
}
