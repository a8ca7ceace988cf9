// Package accumulator provides a score map partitioned into independently
// locked buckets so that many goroutines can add to document scores without
// contending on a single mutex.
package accumulator

import (
	"encoding/binary"
	"sync"

	"github.com/cespare/xxhash/v2"
)

const DefaultBucketCount = 101

type bucket struct {
	mu     sync.Mutex
	scores map[int]float64
}

type Accumulator struct {
	buckets []bucket
}

// New returns an Accumulator with bucketCount buckets; values below one
// fall back to DefaultBucketCount.
func New(bucketCount int) *Accumulator {
	if bucketCount < 1 {
		bucketCount = DefaultBucketCount
	}
	a := &Accumulator{
		buckets: make([]bucket, bucketCount),
	}
	for i := range a.buckets {
		a.buckets[i].scores = make(map[int]float64)
	}
	return a
}

// Bucket returns the index of the bucket that holds docID.
func (a *Accumulator) Bucket(docID int) int {
	var key [8]byte
	binary.LittleEndian.PutUint64(key[:], uint64(docID))
	return int(xxhash.Sum64(key[:]) % uint64(len(a.buckets)))
}

func (a *Accumulator) bucketFor(docID int) *bucket {
	return &a.buckets[a.Bucket(docID)]
}

func (a *Accumulator) Accumulate(docID int, delta float64) {
	b := a.bucketFor(docID)
	b.mu.Lock()
	b.scores[docID] += delta
	b.mu.Unlock()
}

func (a *Accumulator) Erase(docID int) {
	b := a.bucketFor(docID)
	b.mu.Lock()
	delete(b.scores, docID)
	b.mu.Unlock()
}

// Materialize merges every bucket into one map. It must only be called after
// all writers have finished.
func (a *Accumulator) Materialize() map[int]float64 {
	out := make(map[int]float64)
	for i := range a.buckets {
		b := &a.buckets[i]
		b.mu.Lock()
		for docID, score := range b.scores {
			out[docID] = score
		}
		b.mu.Unlock()
	}
	return out
}

func (a *Accumulator) BucketCount() int {
	return len(a.buckets)
}
