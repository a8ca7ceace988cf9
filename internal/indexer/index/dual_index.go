// Package index keeps the inverted index (term -> doc -> tf) and the forward
// index (doc -> term -> tf) as exact mirrors of each other.
package index

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/terms"
)

// Releaser is told about every term whose last posting was removed.
// *terms.Store satisfies it.
type Releaser interface {
	Release(id terms.ID)
}

// DualIndex is not safe for concurrent mutation. Concurrent readers are fine
// as long as no Add or Remove is in flight.
type DualIndex struct {
	inverted map[terms.ID]map[int]float64
	forward  map[int]map[terms.ID]float64
	releaser Releaser
}

// NewDualIndex returns an empty index. r may be nil.
func NewDualIndex(r Releaser) *DualIndex {
	return &DualIndex{
		inverted: make(map[terms.ID]map[int]float64),
		forward:  make(map[int]map[terms.ID]float64),
		releaser: r,
	}
}

// Add records freqs as docID's postings. An empty freqs still creates a
// forward row so the document is known to the index.
func (d *DualIndex) Add(docID int, freqs map[terms.ID]float64) {
	row := make(map[terms.ID]float64, len(freqs))
	for term, tf := range freqs {
		row[term] = tf
		docs, ok := d.inverted[term]
		if !ok {
			docs = make(map[int]float64)
			d.inverted[term] = docs
		}
		docs[docID] = tf
	}
	d.forward[docID] = row
}

// Remove purges docID from both indices and reports whether it was present.
func (d *DualIndex) Remove(docID int) bool {
	row, ok := d.forward[docID]
	if !ok {
		return false
	}
	for term := range row {
		docs := d.inverted[term]
		delete(docs, docID)
		if len(docs) == 0 {
			d.dropTerm(term)
		}
	}
	delete(d.forward, docID)
	return true
}

// RemoveParallel is Remove with the per-term posting deletions spread over
// at most workers goroutines. Each term's posting map is touched by exactly
// one goroutine and the outer inverted map is only read until all of them
// have joined.
func (d *DualIndex) RemoveParallel(docID int, workers int) bool {
	row, ok := d.forward[docID]
	if !ok {
		return false
	}
	purge := make([]terms.ID, 0, len(row))
	for term := range row {
		purge = append(purge, term)
	}

	var g errgroup.Group
	if workers > 0 {
		g.SetLimit(workers)
	}
	for _, term := range purge {
		docs := d.inverted[term]
		g.Go(func() error {
			delete(docs, docID)
			return nil
		})
	}
	_ = g.Wait()

	for _, term := range purge {
		if len(d.inverted[term]) == 0 {
			d.dropTerm(term)
		}
	}
	delete(d.forward, docID)
	return true
}

func (d *DualIndex) dropTerm(term terms.ID) {
	delete(d.inverted, term)
	if d.releaser != nil {
		d.releaser.Release(term)
	}
}

// Postings returns the live posting map for term. Callers must not modify it.
func (d *DualIndex) Postings(term terms.ID) (map[int]float64, bool) {
	docs, ok := d.inverted[term]
	return docs, ok
}

// Row returns the live forward row for docID. Callers must not modify it.
func (d *DualIndex) Row(docID int) (map[terms.ID]float64, bool) {
	row, ok := d.forward[docID]
	return row, ok
}

func (d *DualIndex) Contains(docID int, term terms.ID) bool {
	_, ok := d.forward[docID][term]
	return ok
}

func (d *DualIndex) TermCount() int {
	return len(d.inverted)
}

func (d *DualIndex) DocCount() int {
	return len(d.forward)
}

// Verify checks that both indices hold exactly the same postings and that no
// term is left with an empty posting map.
func (d *DualIndex) Verify() error {
	forwardPostings := 0
	for docID, row := range d.forward {
		for term, tf := range row {
			forwardPostings++
			got, ok := d.inverted[term][docID]
			if !ok {
				return fmt.Errorf("posting (term %d, doc %d) missing from inverted index", term, docID)
			}
			if got != tf {
				return fmt.Errorf("posting (term %d, doc %d) frequency mismatch: forward %g, inverted %g", term, docID, tf, got)
			}
		}
	}
	invertedPostings := 0
	for term, docs := range d.inverted {
		if len(docs) == 0 {
			return fmt.Errorf("term %d has an empty posting map", term)
		}
		for docID := range docs {
			invertedPostings++
			if _, ok := d.forward[docID][term]; !ok {
				return fmt.Errorf("posting (term %d, doc %d) missing from forward index", term, docID)
			}
		}
	}
	if forwardPostings != invertedPostings {
		return fmt.Errorf("posting count mismatch: forward %d, inverted %d", forwardPostings, invertedPostings)
	}
	return nil
}
