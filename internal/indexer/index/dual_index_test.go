package index

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/terms"
)

func newTerms(t *testing.T) *terms.Store {
	t.Helper()
	s, err := terms.NewStore(nil)
	require.NoError(t, err)
	return s
}

func intern(s *terms.Store, words ...string) []terms.ID {
	ids := make([]terms.ID, len(words))
	for i, w := range words {
		ids[i] = s.Intern(w)
	}
	return ids
}

func TestTermFrequencies(t *testing.T) {
	s := newTerms(t)
	ids := intern(s, "cat", "dog", "cat", "rat", "cat")

	freqs := TermFrequencies(ids)
	require.Len(t, freqs, 3)
	assert.InDelta(t, 0.6, freqs[s.Intern("cat")], 1e-12)
	assert.InDelta(t, 0.2, freqs[s.Intern("dog")], 1e-12)
	assert.InDelta(t, 0.2, freqs[s.Intern("rat")], 1e-12)

	assert.Empty(t, TermFrequencies(nil))
}

func TestDualIndexAddMirrors(t *testing.T) {
	s := newTerms(t)
	d := NewDualIndex(s)
	d.Add(1, TermFrequencies(intern(s, "funny", "pet", "nasty", "rat")))
	d.Add(2, TermFrequencies(intern(s, "funny", "pet", "curly", "hair")))

	funny := s.Intern("funny")
	docs, ok := d.Postings(funny)
	require.True(t, ok)
	assert.Equal(t, map[int]float64{1: 0.25, 2: 0.25}, docs)
	assert.Equal(t, 6, d.TermCount())
	assert.Equal(t, 2, d.DocCount())
	assert.True(t, d.Contains(2, s.Intern("curly")))
	assert.False(t, d.Contains(1, s.Intern("curly")))

	row, ok := d.Row(1)
	require.True(t, ok)
	assert.Len(t, row, 4)
	assert.NoError(t, d.Verify())
}

func TestDualIndexAddEmptyRow(t *testing.T) {
	d := NewDualIndex(nil)
	d.Add(9, map[terms.ID]float64{})

	row, ok := d.Row(9)
	assert.True(t, ok)
	assert.Empty(t, row)
	assert.Equal(t, 1, d.DocCount())
	assert.True(t, d.Remove(9))
	assert.Equal(t, 0, d.DocCount())
}

func TestDualIndexRemove(t *testing.T) {
	for _, parallel := range []bool{false, true} {
		t.Run(fmt.Sprintf("parallel=%v", parallel), func(t *testing.T) {
			s := newTerms(t)
			d := NewDualIndex(s)
			d.Add(1, TermFrequencies(intern(s, "big", "cat", "nasty", "hair")))
			d.Add(2, TermFrequencies(intern(s, "big", "dog", "cat")))

			remove := d.Remove
			if parallel {
				remove = func(id int) bool { return d.RemoveParallel(id, 2) }
			}

			assert.True(t, remove(1))
			assert.False(t, remove(1))
			assert.False(t, remove(42))

			_, ok := d.Row(1)
			assert.False(t, ok)
			_, ok = s.Lookup("nasty")
			assert.False(t, ok, "term only used by removed doc must be released")
			_, ok = s.Lookup("hair")
			assert.False(t, ok)
			assert.Equal(t, 3, s.Len())
			docs, ok := d.Postings(s.Intern("cat"))
			require.True(t, ok)
			assert.Equal(t, map[int]float64{2: 1.0 / 3}, docs)
			assert.Equal(t, 3, d.TermCount())
			assert.NoError(t, d.Verify())
		})
	}
}

func TestDualIndexReleasesEmptiedTerms(t *testing.T) {
	for _, parallel := range []bool{false, true} {
		t.Run(fmt.Sprintf("parallel=%v", parallel), func(t *testing.T) {
			s := newTerms(t)
			d := NewDualIndex(s)
			for i := range 1000 {
				d.Add(1, TermFrequencies(intern(s, fmt.Sprintf("word%d", i), fmt.Sprintf("other%d", i))))
				if parallel {
					require.True(t, d.RemoveParallel(1, 4))
				} else {
					require.True(t, d.Remove(1))
				}
				require.Zero(t, s.Len())
				require.Zero(t, d.TermCount())
			}

			// Freed slots are reused, so IDs stay within the first two.
			for _, id := range intern(s, "cat", "dog") {
				assert.Less(t, int(id), 2)
			}
			assert.NoError(t, d.Verify())
		})
	}
}

func TestDualIndexVerifyDetectsDrift(t *testing.T) {
	s := newTerms(t)
	d := NewDualIndex(s)
	d.Add(1, TermFrequencies(intern(s, "cat", "dog")))

	d.inverted[s.Intern("cat")][1] = 0.9
	assert.ErrorContains(t, d.Verify(), "frequency mismatch")

	d.inverted[s.Intern("cat")][1] = 0.5
	delete(d.inverted[s.Intern("dog")], 1)
	assert.Error(t, d.Verify())
}

func BenchmarkDualIndexAdd(b *testing.B) {
	s, _ := terms.NewStore(nil)
	ids := intern(s, "this", "is", "a", "benchmark", "document", "with", "several", "terms")
	freqs := TermFrequencies(ids)
	d := NewDualIndex(nil)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d.Add(i, freqs)
	}
}
