package accumulator

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccumulateAndErase(t *testing.T) {
	a := New(7)
	a.Accumulate(1, 0.5)
	a.Accumulate(1, 0.25)
	a.Accumulate(2, 1)
	a.Accumulate(8, 2)
	a.Erase(2)
	a.Erase(99)

	assert.Equal(t, map[int]float64{1: 0.75, 8: 2}, a.Materialize())
}

func TestNewFallsBackToDefault(t *testing.T) {
	assert.Equal(t, DefaultBucketCount, New(0).BucketCount())
	assert.Equal(t, 1, New(1).BucketCount())
}

func TestSingleBucket(t *testing.T) {
	a := New(1)
	for id := range 50 {
		assert.Zero(t, a.Bucket(id))
		a.Accumulate(id, 1)
	}
	assert.Len(t, a.Materialize(), 50)
}

func TestBucketIsStable(t *testing.T) {
	a := New(DefaultBucketCount)
	b := New(DefaultBucketCount)
	for id := range 1000 {
		got := a.Bucket(id)
		assert.GreaterOrEqual(t, got, 0)
		assert.Less(t, got, DefaultBucketCount)
		assert.Equal(t, got, b.Bucket(id))
	}
}

func TestConcurrentAccumulate(t *testing.T) {
	const (
		workers = 16
		docs    = 500
	)
	a := New(DefaultBucketCount)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range docs {
				a.Accumulate(id, 1)
			}
		}()
	}
	wg.Wait()

	wg.Add(1)
	go func() {
		defer wg.Done()
		for id := 0; id < docs; id += 2 {
			a.Erase(id)
		}
	}()
	wg.Wait()

	scores := a.Materialize()
	assert.Len(t, scores, docs/2)
	for id, score := range scores {
		assert.Equal(t, 1, id%2)
		assert.Equal(t, float64(workers), score)
	}
}

func BenchmarkAccumulateParallel(b *testing.B) {
	a := New(DefaultBucketCount)
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		id := 0
		for pb.Next() {
			a.Accumulate(id%10000, 0.1)
			id++
		}
	})
}
