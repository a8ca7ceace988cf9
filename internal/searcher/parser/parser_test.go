package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Adithya-Monish-Kumar-K/search-server/pkg/errors"
)

type stopSet map[string]struct{}

func (s stopSet) IsStopWord(word string) bool {
	_, ok := s[word]
	return ok
}

func newParser(cacheSize int) *Parser {
	return New(stopSet{"and": {}, "with": {}}, cacheSize)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantPlus  []string
		wantMinus []string
	}{
		{"empty", "", []string{}, []string{}},
		{"plus only", "curly dog", []string{"curly", "dog"}, []string{}},
		{"minus", "cat -dog", []string{"cat"}, []string{"dog"}},
		{"deduplicated and sorted", "rat cat rat -dog -dog", []string{"cat", "rat"}, []string{"dog"}},
		{"stop words dropped", "cat and -with dog", []string{"cat", "dog"}, []string{}},
		{"same word both signs", "cat -cat", []string{"cat"}, []string{"cat"}},
		{"inner minus is literal", "e-mail", []string{"e-mail"}, []string{}},
		{"case sensitive", "Cat cat", []string{"Cat", "cat"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := newParser(0).Parse(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPlus, q.Plus)
			assert.Equal(t, tt.wantMinus, q.Minus)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  error
	}{
		{"lone minus", "cat -", apperrors.ErrMissingMinusTarget},
		{"double minus", "--cat", apperrors.ErrDoubleMinus},
		{"control char", "ca\x11t", apperrors.ErrInvalidQueryWord},
		{"control char after minus", "-ca\x11t", apperrors.ErrInvalidQueryWord},
		{"tab inside word", "big\tdog", apperrors.ErrInvalidQueryWord},
		{"stop word still validated", "--and", apperrors.ErrDoubleMinus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newParser(8).Parse(tt.query)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, apperrors.IsQueryError(err))
		})
	}
}

func TestParseWordEmpty(t *testing.T) {
	_, _, err := ParseWord("")
	assert.ErrorIs(t, err, apperrors.ErrEmptyQueryWord)
}

func TestParseCache(t *testing.T) {
	p := newParser(2)

	first, err := p.Parse("cat -dog")
	require.NoError(t, err)
	second, err := p.Parse("cat -dog")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	hits, misses := p.CacheStats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)

	// Errors are never cached.
	_, err = p.Parse("--x")
	require.Error(t, err)
	_, err = p.Parse("--x")
	require.Error(t, err)
	hits, misses = p.CacheStats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(3), misses)
}

func TestParseWithoutCacheKeepsNoStats(t *testing.T) {
	p := newParser(0)
	_, err := p.Parse("cat")
	require.NoError(t, err)
	hits, misses := p.CacheStats()
	assert.Zero(t, hits)
	assert.Zero(t, misses)
}

func BenchmarkParse(b *testing.B) {
	queries := []struct {
		name  string
		query string
	}{
		{"simple", "curly dog"},
		{"with_minus", "funny pet -nasty -rat"},
		{"long", "distributed search analytics platform indexing query processing ranking caching sharding"},
	}
	for _, q := range queries {
		b.Run(q.name, func(b *testing.B) {
			p := newParser(0)
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_, _ = p.Parse(q.query)
			}
		})
	}
}
