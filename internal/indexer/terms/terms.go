// Package terms owns the stop-word set and the interned term table. Indexed
// words are interned once and referenced everywhere else by an ID, so index
// entries never point into document text. An ID stays valid until the index
// releases it; released IDs are handed out again by later Intern calls.
package terms

import (
	"sort"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/tokenizer"
	apperrors "github.com/Adithya-Monish-Kumar-K/search-server/pkg/errors"
)

type ID uint32

// Store is safe for concurrent readers. Intern and Release must not run
// concurrently with anything else.
type Store struct {
	stopWords map[string]struct{}
	ids       map[string]ID
	words     []string
	free      []ID
}

// NewStore builds a Store from stop words. Empty strings and duplicates are
// ignored; a stop word with a control character is an error.
func NewStore(stopWords []string) (*Store, error) {
	s := &Store{
		stopWords: make(map[string]struct{}, len(stopWords)),
		ids:       make(map[string]ID),
	}
	for _, w := range stopWords {
		if w == "" {
			continue
		}
		if !tokenizer.IsValidWord(w) {
			return nil, apperrors.Newf(apperrors.ErrInvalidStopWord, "stop word %q contains a control character", w)
		}
		s.stopWords[w] = struct{}{}
	}
	return s, nil
}

func (s *Store) IsStopWord(word string) bool {
	_, ok := s.stopWords[word]
	return ok
}

// StopWords returns the stop words in sorted order.
func (s *Store) StopWords() []string {
	out := make([]string, 0, len(s.stopWords))
	for w := range s.stopWords {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// Intern returns the ID for word. A word not yet interned takes a released
// slot if one is available, otherwise a new one.
func (s *Store) Intern(word string) ID {
	if id, ok := s.ids[word]; ok {
		return id
	}
	var id ID
	if n := len(s.free); n > 0 {
		id = s.free[n-1]
		s.free = s.free[:n-1]
		s.words[id] = word
	} else {
		id = ID(len(s.words))
		s.words = append(s.words, word)
	}
	s.ids[word] = id
	return id
}

// Release forgets the word behind id and makes its slot reusable. Releasing
// an ID that is not live is a no-op.
func (s *Store) Release(id ID) {
	if int(id) >= len(s.words) {
		return
	}
	word := s.words[id]
	if cur, ok := s.ids[word]; !ok || cur != id {
		return
	}
	delete(s.ids, word)
	s.words[id] = ""
	s.free = append(s.free, id)
}

func (s *Store) Lookup(word string) (ID, bool) {
	id, ok := s.ids[word]
	return id, ok
}

// Word panics on an ID that was not produced by this Store. A released ID
// maps to the empty string.
func (s *Store) Word(id ID) string {
	return s.words[id]
}

// Len is the number of live interned words.
func (s *Store) Len() int {
	return len(s.ids)
}
