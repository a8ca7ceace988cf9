// Package ranker scores documents against a parsed query with TF-IDF and
// returns the top results. The same algorithm runs either on the calling
// goroutine or fanned out over a worker pool with a sharded accumulator.
package ranker

import (
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/documents"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searcher/accumulator"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searcher/parser"
)

type Mode int

const (
	Sequential Mode = iota
	Parallel
)

func (m Mode) String() string {
	switch m {
	case Sequential:
		return "sequential"
	case Parallel:
		return "parallel"
	default:
		return "unknown"
	}
}

// Document is one ranked search hit.
type Document struct {
	ID        int     `json:"document_id" yaml:"id"`
	Relevance float64 `json:"relevance" yaml:"relevance"`
	Rating    int     `json:"rating" yaml:"rating"`
}

// Predicate decides whether a document may appear in the results.
type Predicate func(id int, status documents.Status, rating int) bool

func ByStatus(status documents.Status) Predicate {
	return func(_ int, s documents.Status, _ int) bool {
		return s == status
	}
}

// Corpus is the read-only view of the index the ranker needs.
type Corpus interface {
	DocumentCount() int
	Postings(term string) (map[int]float64, bool)
	Document(id int) (documents.Document, bool)
}

type Options struct {
	Epsilon     float64
	MaxResults  int
	BucketCount int
	Workers     int
}

type Ranker struct {
	opts Options
}

func New(opts Options) *Ranker {
	return &Ranker{opts: opts}
}

// Rank evaluates q against corpus and returns at most MaxResults documents.
// Both modes produce bit-identical relevances.
func (r *Ranker) Rank(mode Mode, corpus Corpus, q parser.Query, pred Predicate) []Document {
	var scores map[int]float64
	if mode == Parallel {
		scores = r.scoreParallel(corpus, q, pred)
	} else {
		scores = r.scoreSequential(corpus, q, pred)
	}
	return r.top(corpus, scores)
}

func (r *Ranker) scoreSequential(corpus Corpus, q parser.Query, pred Predicate) map[int]float64 {
	scores := make(map[int]float64)
	for _, term := range q.Plus {
		postings, ok := corpus.Postings(term)
		if !ok {
			continue
		}
		idf := inverseDocumentFrequency(corpus.DocumentCount(), len(postings))
		for docID, tf := range postings {
			if accepts(corpus, pred, docID) {
				// The conversion rounds the product, which keeps a fused
				// multiply-add from diverging from scoreParallel.
				scores[docID] += float64(tf * idf)
			}
		}
	}
	for _, term := range q.Minus {
		postings, ok := corpus.Postings(term)
		if !ok {
			continue
		}
		for docID := range postings {
			delete(scores, docID)
		}
	}
	return scores
}

type contribution struct {
	docID int
	score float64
}

// scoreParallel runs in three joined phases. Workers first score each
// plus-term, splitting the results by accumulator bucket. Each bucket group
// is then summed by a single goroutine in query term order, so every
// relevance is added up exactly as scoreSequential adds it. Minus-terms are
// erased last; an erase racing an accumulate for the same document would let
// the document back into the results.
func (r *Ranker) scoreParallel(corpus Corpus, q parser.Query, pred Predicate) map[int]float64 {
	acc := accumulator.New(r.opts.BucketCount)
	parts := r.opts.Workers
	if parts < 1 || parts > acc.BucketCount() {
		parts = acc.BucketCount()
	}

	// contribs[i][p] holds plus-term i's scores for documents in group p.
	contribs := make([][][]contribution, len(q.Plus))
	var score errgroup.Group
	r.limit(&score)
	for i, term := range q.Plus {
		score.Go(func() error {
			postings, ok := corpus.Postings(term)
			if !ok {
				return nil
			}
			idf := inverseDocumentFrequency(corpus.DocumentCount(), len(postings))
			groups := make([][]contribution, parts)
			for docID, tf := range postings {
				if accepts(corpus, pred, docID) {
					p := acc.Bucket(docID) % parts
					groups[p] = append(groups[p], contribution{docID: docID, score: float64(tf * idf)})
				}
			}
			contribs[i] = groups
			return nil
		})
	}
	_ = score.Wait()

	var sum errgroup.Group
	r.limit(&sum)
	for p := range parts {
		sum.Go(func() error {
			for _, groups := range contribs {
				if groups == nil {
					continue
				}
				for _, c := range groups[p] {
					acc.Accumulate(c.docID, c.score)
				}
			}
			return nil
		})
	}
	_ = sum.Wait()

	var minus errgroup.Group
	r.limit(&minus)
	for _, term := range q.Minus {
		minus.Go(func() error {
			postings, ok := corpus.Postings(term)
			if !ok {
				return nil
			}
			for docID := range postings {
				acc.Erase(docID)
			}
			return nil
		})
	}
	_ = minus.Wait()

	return acc.Materialize()
}

func (r *Ranker) limit(g *errgroup.Group) {
	if r.opts.Workers > 0 {
		g.SetLimit(r.opts.Workers)
	}
}

func (r *Ranker) top(corpus Corpus, scores map[int]float64) []Document {
	result := make([]Document, 0, len(scores))
	for docID, relevance := range scores {
		doc, _ := corpus.Document(docID)
		result = append(result, Document{
			ID:        docID,
			Relevance: relevance,
			Rating:    doc.Rating,
		})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	Sort(result, r.opts.Epsilon)
	if r.opts.MaxResults > 0 && len(result) > r.opts.MaxResults {
		result = result[:r.opts.MaxResults]
	}
	return result
}

// Sort orders docs by descending relevance. Relevances closer than epsilon
// count as equal and fall back to descending rating; remaining ties keep
// their input order.
func Sort(docs []Document, epsilon float64) {
	sort.SliceStable(docs, func(i, j int) bool {
		if math.Abs(docs[i].Relevance-docs[j].Relevance) < epsilon {
			return docs[i].Rating > docs[j].Rating
		}
		return docs[i].Relevance > docs[j].Relevance
	})
}

func accepts(corpus Corpus, pred Predicate, docID int) bool {
	doc, ok := corpus.Document(docID)
	if !ok {
		return false
	}
	return pred == nil || pred(docID, doc.Status, doc.Rating)
}

func inverseDocumentFrequency(totalDocs, docFreq int) float64 {
	return math.Log(float64(totalDocs) / float64(docFreq))
}
