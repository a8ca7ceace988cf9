// Package parser turns raw query strings into sets of plus and minus terms.
package parser

import (
	"slices"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/tokenizer"
	apperrors "github.com/Adithya-Monish-Kumar-K/search-server/pkg/errors"
)

// Query holds sorted, deduplicated plus and minus terms. Queries may be
// shared through the parse cache and must be treated as read-only.
type Query struct {
	Plus  []string
	Minus []string
}

type StopWords interface {
	IsStopWord(word string) bool
}

type Parser struct {
	stopWords StopWords
	cache     *lru.Cache[string, Query]
	hits      atomic.Int64
	misses    atomic.Int64
}

// New returns a Parser. A cacheSize of zero disables memoisation.
func New(stopWords StopWords, cacheSize int) *Parser {
	p := &Parser{stopWords: stopWords}
	if cacheSize > 0 {
		// lru.New only fails on a non-positive size.
		p.cache, _ = lru.New[string, Query](cacheSize)
	}
	return p
}

func (p *Parser) Parse(raw string) (Query, error) {
	if p.cache != nil {
		if q, ok := p.cache.Get(raw); ok {
			p.hits.Add(1)
			return q, nil
		}
		p.misses.Add(1)
	}
	q, err := p.parse(raw)
	if err != nil {
		return Query{}, err
	}
	if p.cache != nil {
		p.cache.Add(raw, q)
	}
	return q, nil
}

// CacheStats returns parse cache hits and misses since construction.
func (p *Parser) CacheStats() (hits, misses int64) {
	return p.hits.Load(), p.misses.Load()
}

func (p *Parser) parse(raw string) (Query, error) {
	q := Query{
		Plus:  make([]string, 0),
		Minus: make([]string, 0),
	}
	for _, token := range tokenizer.Tokenize(raw) {
		word, minus, err := ParseWord(token)
		if err != nil {
			return Query{}, err
		}
		if p.stopWords != nil && p.stopWords.IsStopWord(word) {
			continue
		}
		if minus {
			q.Minus = append(q.Minus, word)
		} else {
			q.Plus = append(q.Plus, word)
		}
	}
	slices.Sort(q.Plus)
	q.Plus = slices.Compact(q.Plus)
	slices.Sort(q.Minus)
	q.Minus = slices.Compact(q.Minus)
	return q, nil
}

// ParseWord validates a single query token and strips a leading minus.
func ParseWord(token string) (word string, minus bool, err error) {
	if token == "" {
		return "", false, apperrors.New(apperrors.ErrEmptyQueryWord, "query contains an empty word")
	}
	word = token
	if word[0] == '-' {
		minus = true
		word = word[1:]
		if word == "" {
			return "", false, apperrors.Newf(apperrors.ErrMissingMinusTarget, "query word %q has no text after the minus", token)
		}
		if word[0] == '-' {
			return "", false, apperrors.Newf(apperrors.ErrDoubleMinus, "query word %q starts with more than one minus", token)
		}
	}
	if !tokenizer.IsValidWord(word) {
		return "", false, apperrors.Newf(apperrors.ErrInvalidQueryWord, "query word %q contains a control character", token)
	}
	return word, minus, nil
}
