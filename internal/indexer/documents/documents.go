// Package documents holds per-document metadata keyed by id together with
// the ordered set of live ids.
package documents

import (
	"iter"
	"slices"
	"sort"
)

type Status int

const (
	StatusActual Status = iota
	StatusIrrelevant
	StatusBanned
	StatusRemoved
)

func (s Status) String() string {
	switch s {
	case StatusActual:
		return "ACTUAL"
	case StatusIrrelevant:
		return "IRRELEVANT"
	case StatusBanned:
		return "BANNED"
	case StatusRemoved:
		return "REMOVED"
	default:
		return "UNKNOWN"
	}
}

// ParseStatus accepts the names produced by String, case-sensitively.
func ParseStatus(name string) (Status, bool) {
	for _, s := range []Status{StatusActual, StatusIrrelevant, StatusBanned, StatusRemoved} {
		if s.String() == name {
			return s, true
		}
	}
	return 0, false
}

type Document struct {
	ID     int
	Text   string
	Rating int
	Status Status
}

type Store struct {
	docs map[int]Document
	ids  []int
}

func NewStore() *Store {
	return &Store{
		docs: make(map[int]Document),
	}
}

// Insert stores doc. The caller guarantees doc.ID is not already present.
func (s *Store) Insert(doc Document) {
	s.docs[doc.ID] = doc
	pos := sort.SearchInts(s.ids, doc.ID)
	s.ids = slices.Insert(s.ids, pos, doc.ID)
}

// Delete reports whether a document was removed.
func (s *Store) Delete(id int) bool {
	if _, ok := s.docs[id]; !ok {
		return false
	}
	delete(s.docs, id)
	pos := sort.SearchInts(s.ids, id)
	s.ids = slices.Delete(s.ids, pos, pos+1)
	return true
}

func (s *Store) Get(id int) (Document, bool) {
	doc, ok := s.docs[id]
	return doc, ok
}

func (s *Store) Contains(id int) bool {
	_, ok := s.docs[id]
	return ok
}

func (s *Store) Len() int {
	return len(s.docs)
}

// IDs yields live document ids in ascending order.
func (s *Store) IDs() iter.Seq[int] {
	return func(yield func(int) bool) {
		for _, id := range s.ids {
			if !yield(id) {
				return
			}
		}
	}
}

// AverageRating truncates toward zero; no ratings yields 0.
func AverageRating(ratings []int) int {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return sum / len(ratings)
}
